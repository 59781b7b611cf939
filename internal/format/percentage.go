package format

import "fmt"

// Percentage is a ratio with tenth-of-a-percent resolution. Keeping the raw
// tenths around lets callers threshold on them without re-deriving the ratio.
type Percentage struct {
	Tenths uint64
}

// FromRatio computes part/whole as a Percentage. A zero whole yields 0%.
func FromRatio(part, whole uint64) Percentage {
	if whole == 0 {
		return Percentage{}
	}
	return Percentage{Tenths: part * 1000 / whole}
}

func (p Percentage) String() string {
	return fmt.Sprintf("%d.%d", p.Tenths/10, p.Tenths%10)
}
