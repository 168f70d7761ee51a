package match

import (
	"strings"

	"github.com/liseur-glitch/gedbridge/errors"
	"github.com/liseur-glitch/gedbridge/store"
)

// Resolver links source-tree individuals to target-store persons via
// the stable reference number present on both sides. The index is built
// once per run; lookups are exact.
type Resolver struct {
	byReference map[string]int
}

// NewResolver builds the reference-number index. Persons without a
// reference are unreachable and skipped; on a duplicate reference the
// first person wins.
func NewResolver(persons []store.Person) *Resolver {
	index := make(map[string]int, len(persons))
	for _, p := range persons {
		ref := strings.TrimSpace(p.Reference)
		if ref == "" {
			continue
		}
		if _, exists := index[ref]; !exists {
			index[ref] = p.ID
		}
	}
	return &Resolver{byReference: index}
}

// Resolve returns the target person id carrying the reference number.
// ErrNotFound is a normal outcome: not every source individual exists
// in the target store.
func (r *Resolver) Resolve(reference string) (int, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return 0, errors.NewNotFoundError("empty reference number")
	}
	id, ok := r.byReference[reference]
	if !ok {
		return 0, errors.NewNotFoundError("no person with reference %q", reference)
	}
	return id, nil
}

// Size returns the number of indexed references.
func (r *Resolver) Size() int {
	return len(r.byReference)
}
