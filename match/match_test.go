package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liseur-glitch/gedbridge/errors"
	"github.com/liseur-glitch/gedbridge/store"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name      string
		a, b, tol int
		want      Proximity
	}{
		{"equal years", 1850, 1850, 1, Exact},
		{"adjacent year within narrow tolerance", 1850, 1851, 1, WithinTolerance},
		{"two years out of narrow tolerance", 1850, 1852, 1, OutOfTolerance},
		{"missing year is incomparable", 1850, 0, 1, Incomparable},
		{"both missing", 0, 0, 1, Incomparable},
		{"inclusive wide bound", 1850, 1855, 5, WithinTolerance},
		{"just past wide bound", 1850, 1856, 5, OutOfTolerance},
		{"symmetric", 1851, 1850, 1, WithinTolerance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b, tt.tol))
		})
	}
}

func TestResolver(t *testing.T) {
	resolver := NewResolver([]store.Person{
		{ID: 1, Reference: "R100"},
		{ID: 2, Reference: " R200 "},
		{ID: 3, Reference: ""},
		{ID: 4, Reference: "R100"}, // duplicate, first wins
	})

	assert.Equal(t, 2, resolver.Size())

	id, err := resolver.Resolve("R100")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	id, err = resolver.Resolve("R200")
	require.NoError(t, err)
	assert.Equal(t, 2, id, "references are trimmed at build time")

	_, err = resolver.Resolve("R999")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	_, err = resolver.Resolve("")
	assert.True(t, errors.IsNotFound(err))
}

func testEvents() []store.EventRow {
	return []store.EventRow{
		{ID: 100, TypeID: 10, Principal1: 1, RawDate: "118500101"}, // 1850
		{ID: 101, TypeID: 10, Principal1: 1, RawDate: "118510101"}, // 1851
		{ID: 102, TypeID: 11, Principal1: 1, RawDate: "118500101"}, // other type
		{ID: 103, TypeID: 10, Principal1: 2, Principal2: 3, RawDate: "0(ABT 1850)"},
	}
}

func TestMatchEventExactPreferred(t *testing.T) {
	m := NewMatcher(testEvents())

	id, err := m.MatchEvent(Candidate{TagTypeID: 10, Principal: 1, Witness: 5, Year: 1850}, NarrowTolerance)
	require.NoError(t, err)
	assert.Equal(t, 100, id, "exact match beats the within-tolerance sibling")
}

func TestMatchEventWithinTolerance(t *testing.T) {
	m := NewMatcher([]store.EventRow{
		{ID: 100, TypeID: 10, Principal1: 1, RawDate: "118500101"},
	})

	id, err := m.MatchEvent(Candidate{TagTypeID: 10, Principal: 1, Witness: 5, Year: 1851}, NarrowTolerance)
	require.NoError(t, err)
	assert.Equal(t, 100, id)
}

func TestMatchEventAmbiguousTie(t *testing.T) {
	// Candidate year 1850 is equidistant from events in 1849 and 1851
	m := NewMatcher([]store.EventRow{
		{ID: 200, TypeID: 10, Principal1: 1, RawDate: "118490101"},
		{ID: 201, TypeID: 10, Principal1: 1, RawDate: "118510101"},
	})

	_, err := m.MatchEvent(Candidate{TagTypeID: 10, Principal: 1, Witness: 5, Year: 1850}, NarrowTolerance)
	require.Error(t, err)
	assert.True(t, errors.IsAmbiguous(err))
}

func TestMatchEventNotFound(t *testing.T) {
	m := NewMatcher(testEvents())

	_, err := m.MatchEvent(Candidate{TagTypeID: 10, Principal: 1, Witness: 5, Year: 1900}, NarrowTolerance)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestMatchEventIncomparableIsNonMatch(t *testing.T) {
	// Candidate without a year never matches, even with one candidate event
	m := NewMatcher([]store.EventRow{
		{ID: 100, TypeID: 10, Principal1: 1, RawDate: "118500101"},
	})

	_, err := m.MatchEvent(Candidate{TagTypeID: 10, Principal: 1, Witness: 5, Year: 0}, NarrowTolerance)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestMatchEventSelfReferential(t *testing.T) {
	m := NewMatcher(testEvents())

	t.Run("witness equals candidate principal", func(t *testing.T) {
		_, err := m.MatchEvent(Candidate{TagTypeID: 10, Principal: 1, Witness: 1, Year: 1850}, NarrowTolerance)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrSelfReferential))
	})

	t.Run("witness equals second principal of matched event", func(t *testing.T) {
		_, err := m.MatchEvent(Candidate{TagTypeID: 10, Principal: 2, Witness: 3, Year: 1850}, NarrowTolerance)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrSelfReferential))
	})
}

func TestMatchEventTypeFilter(t *testing.T) {
	m := NewMatcher(testEvents())

	id, err := m.MatchEvent(Candidate{TagTypeID: 11, Principal: 1, Witness: 5, Year: 1850}, NarrowTolerance)
	require.NoError(t, err)
	assert.Equal(t, 102, id)
}

func TestMatchEventUnfilteredWideScan(t *testing.T) {
	// Without a tag type the scan covers all the principal's events
	// under the wide policy.
	m := NewMatcher([]store.EventRow{
		{ID: 100, TypeID: 10, Principal1: 1, RawDate: "118500101"},
	})

	id, err := m.MatchEvent(Candidate{TagTypeID: 0, Principal: 1, Witness: 5, Year: 1854}, WideTolerance)
	require.NoError(t, err)
	assert.Equal(t, 100, id)

	_, err = m.MatchEvent(Candidate{TagTypeID: 0, Principal: 1, Witness: 5, Year: 1854}, NarrowTolerance)
	assert.True(t, errors.IsNotFound(err), "same candidate misses under the narrow policy")
}
