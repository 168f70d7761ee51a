package store

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/liseur-glitch/gedbridge/errors"
)

// Query constants
const (
	tagSelectQuery = `
		SELECT id, origin, name, sentence FROM tag_types ORDER BY id`

	tagSelectCustomQuery = `
		SELECT id, origin, name, sentence FROM tag_types WHERE origin = ? ORDER BY id`

	tagSelectByIDQuery = `
		SELECT id, origin, name, sentence FROM tag_types WHERE id = ?`

	tagUpdateSentenceQuery = `
		UPDATE tag_types SET sentence = ? WHERE id = ?`

	personSelectQuery = `
		SELECT id, reference FROM persons ORDER BY id`

	eventSelectQuery = `
		SELECT id, tag_type_id, principal1, principal2, raw_date FROM events ORDER BY id`

	witnessSelectQuery = `
		SELECT id, event_id, person_id, role, is_primary, sequence, memo
		FROM witnesses ORDER BY id`

	witnessInsertQuery = `
		INSERT INTO witnesses (event_id, person_id, role, is_primary, sequence, memo)
		VALUES (?, ?, ?, ?, ?, ?)`
)

// SQLStore implements Store over a SQLite database. The sentence blob
// is stored in the legacy single-byte codepage and transcoded at this
// boundary.
type SQLStore struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewSQLStore creates a store adapter over an open database.
func NewSQLStore(db *sql.DB, logger *zap.SugaredLogger) *SQLStore {
	return &SQLStore{db: db, logger: logger}
}

// Tags returns all tag definitions ordered by id.
func (s *SQLStore) Tags(ctx context.Context) ([]TagDefinition, error) {
	rows, err := s.db.QueryContext(ctx, tagSelectQuery)
	if err != nil {
		return nil, errors.Wrap(err, "query tag definitions")
	}
	defer rows.Close()
	return scanTags(rows)
}

// CustomTags returns only user-created tag definitions.
func (s *SQLStore) CustomTags(ctx context.Context) ([]TagDefinition, error) {
	rows, err := s.db.QueryContext(ctx, tagSelectCustomQuery, OriginCustom)
	if err != nil {
		return nil, errors.Wrap(err, "query custom tag definitions")
	}
	defer rows.Close()
	return scanTags(rows)
}

// TagByID returns one tag definition, or ErrNotFound.
func (s *SQLStore) TagByID(ctx context.Context, id int) (*TagDefinition, error) {
	var tag TagDefinition
	var blob []byte
	err := s.db.QueryRowContext(ctx, tagSelectByIDQuery, id).
		Scan(&tag.ID, &tag.Origin, &tag.Name, &blob)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("tag definition %d", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "query tag definition %d", id)
	}
	tag.Sentence = DecodeBlob(blob)
	return &tag, nil
}

// UpdateTagSentence replaces one tag's sentence blob in a single row
// update. A rejected update surfaces as ErrRowRejected so callers can
// apply partial-failure semantics.
func (s *SQLStore) UpdateTagSentence(ctx context.Context, id int, sentence string) error {
	blob, err := EncodeBlob(sentence)
	if err != nil {
		return errors.Wrapf(err, "encode sentence for tag %d", id)
	}

	result, err := s.db.ExecContext(ctx, tagUpdateSentenceQuery, blob, id)
	if err != nil {
		return errors.Wrapf(errors.ErrRowRejected, "update tag %d: %v", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "rows affected for tag %d", id)
	}
	if affected == 0 {
		return errors.NewNotFoundError("tag definition %d", id)
	}

	if s.logger != nil {
		s.logger.Debugw("Updated tag sentence", "tag", id, "bytes", len(blob))
	}
	return nil
}

// Persons returns all person rows.
func (s *SQLStore) Persons(ctx context.Context) ([]Person, error) {
	rows, err := s.db.QueryContext(ctx, personSelectQuery)
	if err != nil {
		return nil, errors.Wrap(err, "query persons")
	}
	defer rows.Close()

	var persons []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.Reference); err != nil {
			return nil, errors.Wrap(err, "scan person")
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

// Events returns all event rows.
func (s *SQLStore) Events(ctx context.Context) ([]EventRow, error) {
	rows, err := s.db.QueryContext(ctx, eventSelectQuery)
	if err != nil {
		return nil, errors.Wrap(err, "query events")
	}
	defer rows.Close()

	var events []EventRow
	for rows.Next() {
		var e EventRow
		if err := rows.Scan(&e.ID, &e.TypeID, &e.Principal1, &e.Principal2, &e.RawDate); err != nil {
			return nil, errors.Wrap(err, "scan event")
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Witnesses returns all witness rows.
func (s *SQLStore) Witnesses(ctx context.Context) ([]WitnessRow, error) {
	rows, err := s.db.QueryContext(ctx, witnessSelectQuery)
	if err != nil {
		return nil, errors.Wrap(err, "query witnesses")
	}
	defer rows.Close()

	var witnesses []WitnessRow
	for rows.Next() {
		var w WitnessRow
		if err := rows.Scan(&w.ID, &w.EventID, &w.PersonID, &w.Role, &w.Primary, &w.Sequence, &w.Memo); err != nil {
			return nil, errors.Wrap(err, "scan witness")
		}
		witnesses = append(witnesses, w)
	}
	return witnesses, rows.Err()
}

// AddWitness appends a witness row.
func (s *SQLStore) AddWitness(ctx context.Context, w WitnessRow) error {
	_, err := s.db.ExecContext(ctx, witnessInsertQuery,
		w.EventID, w.PersonID, w.Role, w.Primary, w.Sequence, w.Memo)
	if err != nil {
		return errors.Wrapf(errors.ErrRowRejected,
			"insert witness event=%d person=%d: %v", w.EventID, w.PersonID, err)
	}

	if s.logger != nil {
		s.logger.Debugw("Added witness row",
			"event", w.EventID, "person", w.PersonID, "role", w.Role)
	}
	return nil
}

// Stats returns row counts for reporting.
func (s *SQLStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM tag_types", &stats.TagDefinitions},
		{"SELECT COUNT(*) FROM tag_types WHERE origin = 0", &stats.CustomTags},
		{"SELECT COUNT(*) FROM persons", &stats.Persons},
		{"SELECT COUNT(*) FROM events", &stats.Events},
		{"SELECT COUNT(*) FROM witnesses", &stats.Witnesses},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, errors.Wrap(err, "count rows")
		}
	}
	return stats, nil
}

// scanTags reads tag rows, decoding the sentence blob.
func scanTags(rows *sql.Rows) ([]TagDefinition, error) {
	var tags []TagDefinition
	for rows.Next() {
		var tag TagDefinition
		var blob []byte
		if err := rows.Scan(&tag.ID, &tag.Origin, &tag.Name, &blob); err != nil {
			return nil, errors.Wrap(err, "scan tag definition")
		}
		tag.Sentence = DecodeBlob(blob)
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
