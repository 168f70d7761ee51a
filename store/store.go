// Package store reads and writes the target flat record store: tag
// definitions carrying sentence blobs, persons, events, and witness rows.
package store

import "context"

// OriginCustom marks user-created tag definitions. Only these are
// touched by sentence injection.
const OriginCustom = 0

// TagDefinition is one row of the tag_types table. Sentence holds the
// decoded mini-language text; the single-byte store encoding is handled
// at the adapter boundary.
type TagDefinition struct {
	ID       int
	Origin   int
	Name     string
	Sentence string
}

// IsCustom reports whether the tag is user-created.
func (t *TagDefinition) IsCustom() bool {
	return t.Origin == OriginCustom
}

// Person is one row of the persons table.
type Person struct {
	ID        int
	Reference string
}

// EventRow is one row of the events table. Principal2 is 0 for
// single-principal events.
type EventRow struct {
	ID         int
	TypeID     int
	Principal1 int
	Principal2 int
	RawDate    string
}

// WitnessRow links a person to an event in a role.
type WitnessRow struct {
	ID       int
	EventID  int
	PersonID int
	Role     int
	Primary  bool
	Sequence int
	Memo     string
}

// Key identifies a witness row for duplicate detection. Two rows with
// the same key are the same relationship.
func (w *WitnessRow) Key() WitnessKey {
	return WitnessKey{
		EventID:  w.EventID,
		PersonID: w.PersonID,
		Role:     w.Role,
	}
}

// WitnessKey is the duplicate-detection key: same event, same person,
// same role means the relationship already exists.
type WitnessKey struct {
	EventID  int
	PersonID int
	Role     int
}

// Stats summarizes the store's row counts.
type Stats struct {
	TagDefinitions int
	CustomTags     int
	Persons        int
	Events         int
	Witnesses      int
}

// Store is the row-level adapter over the flat record store.
type Store interface {
	// Tags returns all tag definitions ordered by id.
	Tags(ctx context.Context) ([]TagDefinition, error)
	// CustomTags returns only user-created tag definitions.
	CustomTags(ctx context.Context) ([]TagDefinition, error)
	// TagByID returns one tag definition, or ErrNotFound.
	TagByID(ctx context.Context, id int) (*TagDefinition, error)
	// UpdateTagSentence replaces one tag's sentence blob in a single
	// row update.
	UpdateTagSentence(ctx context.Context, id int, sentence string) error

	// Persons returns all person rows.
	Persons(ctx context.Context) ([]Person, error)
	// Events returns all event rows.
	Events(ctx context.Context) ([]EventRow, error)
	// Witnesses returns all witness rows.
	Witnesses(ctx context.Context) ([]WitnessRow, error)
	// AddWitness appends a witness row.
	AddWitness(ctx context.Context, w WitnessRow) error

	// Stats returns row counts for reporting.
	Stats(ctx context.Context) (*Stats, error)
}
