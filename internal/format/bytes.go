// Package format holds small pure formatting helpers shared by the renderers.
package format

import "fmt"

const (
	kilo uint64 = 1024
	mega        = 1024 * kilo
	giga        = 1024 * mega
	tera        = 1024 * giga
	peta        = 1024 * tera
)

// HumanSize converts a byte count into a human-readable string using binary
// (1024-based) units, picking the largest unit where the scaled value is at
// least 1. The fractional part is truncated to two digits, so exactly 1024
// of a unit promotes to "1.00" of the next.
func HumanSize(bytes uint64) string {
	switch {
	case bytes < kilo:
		return fmt.Sprintf("%d B", bytes)
	case bytes < mega:
		return scaled(bytes, kilo, "KiB")
	case bytes < giga:
		return scaled(bytes, mega, "MiB")
	case bytes < tera:
		return scaled(bytes, giga, "GiB")
	case bytes < peta:
		return scaled(bytes, tera, "TiB")
	default:
		return scaled(bytes, peta, "PiB")
	}
}

func scaled(bytes, unit uint64, suffix string) string {
	whole := bytes / unit
	decimals := bytes % unit * 100 / unit
	return fmt.Sprintf("%d.%02d %s", whole, decimals, suffix)
}
