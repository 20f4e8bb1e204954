package netif

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		ifaceName string
		expected  Kind
	}{
		{"veth pair", "veth1a2b3c", KindVirtual},
		{"libvirt bridge", "virbr0", KindVirtual},
		{"docker bridge", "docker0", KindDocker},
		{"wifi wlan", "wlan0", KindWifi},
		{"wifi predictable name", "wlp3s0", KindWifi},
		{"wireguard swallowed by wifi catch-all", "wg0", KindWifi},
		{"wwan also wifi", "wwan0", KindWifi},
		{"wired eth", "eth0", KindWired},
		{"wired predictable name", "enp0s3", KindWired},
		{"plain bridge", "br0", KindBridge},
		{"compose bridge", "br-9f1c2d", KindBridge},
		{"tun device", "tun0", KindTunnel},
		{"tap device", "tap0", KindTunnel},
		{"gpd vpn", "gpd0", KindTunnel},
		{"uppercase normalized", "ETH0", KindWired},
		{"unknown", "foo0", KindUnknown},
		{"empty", "", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.ifaceName))
		})
	}
}

func TestKind_Icon(t *testing.T) {
	// Every kind has a non-empty glyph, and unknown has a fail-safe one.
	kinds := []Kind{KindUnknown, KindVirtual, KindDocker, KindWifi, KindWired, KindBridge, KindTunnel}
	for _, k := range kinds {
		assert.NotEmpty(t, k.Icon())
	}
	assert.Equal(t, "❓", KindUnknown.Icon())
	assert.Equal(t, "❓", Kind(99).Icon())
}

func TestIsContainerBridge(t *testing.T) {
	tests := []struct {
		ifaceName string
		expected  bool
	}{
		{"docker0", true},
		{"docker_gwbridge", true},
		{"br-9f1c2d", true},
		{"br0", false}, // plain bridges are not container bridges
		{"bridge0", false},
		{"eth0", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ifaceName, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsContainerBridge(tt.ifaceName))
		})
	}
}

func TestReverseColors(t *testing.T) {
	assert.True(t, ReverseColors("docker0", true))
	assert.True(t, ReverseColors("br-12ab", true))
	assert.False(t, ReverseColors("docker0", false))
	assert.False(t, ReverseColors("eth0", true))
}
