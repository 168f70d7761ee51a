package match

import (
	"strconv"

	"github.com/liseur-glitch/gedbridge/errors"
	"github.com/liseur-glitch/gedbridge/store"
)

// Candidate is a prospective relationship found in the source tree,
// with both participants already resolved to target person ids. A
// TagTypeID of 0 means the event-type mapping had no entry for the
// source token; a Year of 0 means the source date carried no year.
type Candidate struct {
	TagTypeID int
	Principal int
	Witness   int
	Year      int
}

// Matcher matches candidates against the target store's event rows.
// Events are indexed by principal once at construction.
type Matcher struct {
	byPrincipal map[int][]store.EventRow
}

// NewMatcher indexes the target events by their principals.
func NewMatcher(events []store.EventRow) *Matcher {
	index := make(map[int][]store.EventRow)
	for _, e := range events {
		index[e.Principal1] = append(index[e.Principal1], e)
		if e.Principal2 != 0 && e.Principal2 != e.Principal1 {
			index[e.Principal2] = append(index[e.Principal2], e)
		}
	}
	return &Matcher{byPrincipal: index}
}

// MatchEvent selects the principal's event matching the candidate,
// preferring an exact-year match over a within-tolerance match. Ties at
// the best proximity return ErrAmbiguous rather than a silent guess. A
// candidate whose witness is also a principal of the selected event is
// ErrSelfReferential: a source-data artifact where a person witnesses
// their own event.
//
// When the candidate carries a tag type the search is restricted to it;
// without one the type filter is structurally unavailable and all of
// the principal's events are scanned, so callers pass the wide
// tolerance in that case.
func (m *Matcher) MatchEvent(c Candidate, toleranceYears int) (int, error) {
	if c.Witness != 0 && c.Witness == c.Principal {
		return 0, errors.Wrapf(errors.ErrSelfReferential,
			"person %d is both principal and witness", c.Witness)
	}

	var exact, within []store.EventRow
	for _, e := range m.byPrincipal[c.Principal] {
		if c.TagTypeID != 0 && e.TypeID != c.TagTypeID {
			continue
		}
		switch Compare(c.Year, eventYear(e), toleranceYears) {
		case Exact:
			exact = append(exact, e)
		case WithinTolerance:
			within = append(within, e)
		}
	}

	best := exact
	if len(best) == 0 {
		best = within
	}

	switch len(best) {
	case 0:
		return 0, errors.NewNotFoundError(
			"no event of type %d for principal %d near year %d", c.TagTypeID, c.Principal, c.Year)
	case 1:
		e := best[0]
		if c.Witness != 0 && (c.Witness == e.Principal1 || c.Witness == e.Principal2) {
			return 0, errors.Wrapf(errors.ErrSelfReferential,
				"person %d is a principal of event %d", c.Witness, e.ID)
		}
		return e.ID, nil
	default:
		ids := make([]int, len(best))
		for i, e := range best {
			ids[i] = e.ID
		}
		return 0, errors.Wrapf(errors.ErrAmbiguous,
			"%d events tie for principal %d near year %d: %v", len(best), c.Principal, c.Year, ids)
	}
}

// eventYear extracts an event row's year as an int, 0 when absent. The
// store writes "0000" for unknown years; Atoi maps that to 0 too.
func eventYear(e store.EventRow) int {
	year, err := strconv.Atoi(store.ExtractYear(e.RawDate))
	if err != nil {
		return 0
	}
	return year
}
