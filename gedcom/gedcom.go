// Package gedcom reads the hierarchical source tree exported by
// genealogy applications: level-numbered lines grouping individuals,
// families, their events, and shared-event participants.
package gedcom

// Participant is a secondary person attached to an event via _SHAR.
type Participant struct {
	ID   string // individual cross-reference, without @ delimiters
	Role string // ROLE value, "Witness" when absent
	Note string // concatenated NOTE lines
}

// Event is one life event under an individual or family record.
type Event struct {
	Tag          string // BIRT, DEAT, MARR, EVEN, ...
	Type         string // TYPE refinement for EVEN/FACT/OCCU
	Date         string // raw DATE value
	Participants []Participant
}

// Year returns the event's four-digit year, or "" when the date
// carries none.
func (e *Event) Year() string {
	return extractYear(e.Date)
}

// TypeToken returns the token identifying the event's category: the
// TYPE refinement when present, else the tag itself.
func (e *Event) TypeToken() string {
	if e.Type != "" {
		return e.Type
	}
	return e.Tag
}

// Individual is one person record.
type Individual struct {
	ID        string // cross-reference, without @ delimiters
	Reference string // REFN value correlating to the flat store
	Events    []Event
}

// Family is one family record. Its events (marriages) attach to the
// husband when present, otherwise the wife.
type Family struct {
	ID        string
	HusbandID string
	WifeID    string
	Events    []Event
}

// PrincipalID returns the individual the family's events belong to.
func (f *Family) PrincipalID() string {
	if f.HusbandID != "" {
		return f.HusbandID
	}
	return f.WifeID
}

// Tree is a fully scanned source file.
type Tree struct {
	Individuals []*Individual
	Families    []*Family
}

// Individual returns the individual with the given cross-reference id.
func (t *Tree) Individual(id string) (*Individual, bool) {
	for _, indi := range t.Individuals {
		if indi.ID == id {
			return indi, true
		}
	}
	return nil, false
}

// eventTags are the level-1 tags treated as events.
var eventTags = map[string]bool{
	"BIRT": true, "DEAT": true, "MARR": true,
	"EVEN": true, "FACT": true, "OCCU": true,
	"BAPM": true, "BURI": true, "CHR": true,
	"CENS": true, "GRAD": true, "RESI": true,
}

// extractYear returns the first four-digit token of a raw date value.
func extractYear(date string) string {
	start := -1
	digits := 0
	for i := 0; i <= len(date); i++ {
		if i < len(date) && date[i] >= '0' && date[i] <= '9' {
			if start < 0 {
				start = i
			}
			digits++
			continue
		}
		if digits == 4 {
			return date[start : start+4]
		}
		start = -1
		digits = 0
	}
	return ""
}
