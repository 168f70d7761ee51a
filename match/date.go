// Package match resolves cross-store links: individuals by reference
// number, events by type and date proximity.
package match

// Proximity classifies how two calendar years relate under a tolerance.
type Proximity int

const (
	// Exact means both years are present and equal.
	Exact Proximity = iota
	// WithinTolerance means the years differ by at most the tolerance.
	WithinTolerance
	// OutOfTolerance means the years differ by more than the tolerance.
	OutOfTolerance
	// Incomparable means at least one year is absent. Callers treat
	// this as a non-match, never as a wildcard.
	Incomparable
)

func (p Proximity) String() string {
	switch p {
	case Exact:
		return "exact"
	case WithinTolerance:
		return "within-tolerance"
	case OutOfTolerance:
		return "out-of-tolerance"
	default:
		return "incomparable"
	}
}

// Two tolerance policies exist in the surrounding system. Narrow
// disambiguates among events already filtered to one type; Wide applies
// only where the type filter is structurally unavailable.
const (
	NarrowTolerance = 1
	WideTolerance   = 5
)

// Compare classifies the proximity of two years under an inclusive
// tolerance. A year of 0 means absent.
func Compare(yearA, yearB, toleranceYears int) Proximity {
	if yearA == 0 || yearB == 0 {
		return Incomparable
	}
	diff := yearA - yearB
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return Exact
	case diff <= toleranceYears:
		return WithinTolerance
	default:
		return OutOfTolerance
	}
}
