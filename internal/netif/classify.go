package netif

import "strings"

// Kind is a cosmetic classification of an interface by its name
// prefix. It only picks the icon shown next to the chart; anything
// unrecognized falls back to KindUnknown.
type Kind int

const (
	KindUnknown Kind = iota
	KindVirtual
	KindDocker
	KindWifi
	KindWired
	KindBridge
	KindTunnel
)

// Classify maps an interface name to its Kind. Check order matters:
// docker comes before the broad "w" wifi catch-all, and the catch-all
// also swallows wg* devices, which therefore show the wifi icon.
func Classify(name string) Kind {
	n := strings.ToLower(name)
	switch {
	case hasAnyPrefix(n, "veth", "virbr"):
		return KindVirtual
	case strings.HasPrefix(n, "docker"):
		return KindDocker
	case strings.HasPrefix(n, "w"):
		return KindWifi
	case hasAnyPrefix(n, "eth", "en"):
		return KindWired
	case strings.HasPrefix(n, "br"):
		return KindBridge
	case hasAnyPrefix(n, "tun", "tap", "gpd"):
		return KindTunnel
	default:
		return KindUnknown
	}
}

// Icon returns the glyph drawn next to the interface name.
func (k Kind) Icon() string {
	switch k {
	case KindVirtual:
		return "🧬"
	case KindDocker:
		return "🐳"
	case KindWifi:
		return "🛜"
	case KindWired:
		return "🖧"
	case KindBridge:
		return "🌉"
	case KindTunnel:
		return "🔒"
	default:
		return "❓"
	}
}

// IsContainerBridge reports whether the interface carries bridged
// container traffic (docker's default bridge and compose networks).
func IsContainerBridge(name string) bool {
	return strings.HasPrefix(name, "docker") || strings.HasPrefix(name, "br-")
}

// ReverseColors reports whether the rx/tx chart colors should swap for
// this interface under the global reversal flag. On a container bridge
// the host's rx is the containers' tx and vice versa.
func ReverseColors(name string, enabled bool) bool {
	return enabled && IsContainerBridge(name)
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
