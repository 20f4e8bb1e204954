package stats

import "fmt"

// Binary unit multipliers (1024-based).
const (
	kb = 1 << 10
	mb = 1 << 20
	gb = 1 << 30
)

// FormatRate renders a bytes-per-second value with 1024-based units.
// These are the labels drawn on the charts, so they stay short.
func FormatRate(bytesPerSec float64) string {
	switch {
	case bytesPerSec >= gb:
		return fmt.Sprintf("%.1f GB/s", bytesPerSec/gb)
	case bytesPerSec >= mb:
		return fmt.Sprintf("%.1f MB/s", bytesPerSec/mb)
	case bytesPerSec >= kb:
		return fmt.Sprintf("%.1f KB/s", bytesPerSec/kb)
	default:
		return fmt.Sprintf("%.0f B/s", bytesPerSec)
	}
}
