package config

import (
	"fmt"
	"strings"
)

// knownLanguages lists the sentence languages the store understands.
var knownLanguages = map[string]bool{
	"ENGLISH":   true,
	"ENGLISHUK": true,
	"FRENCH":    true,
}

// Validate checks configuration invariants before a run starts.
// It returns the first problem found; a run with invalid config
// must not touch the store.
func (c *Config) Validate() error {
	if c.Match.NarrowTolerance < 0 {
		return fmt.Errorf("match.narrow_tolerance must be >= 0, got %d", c.Match.NarrowTolerance)
	}
	if c.Match.WideTolerance < 0 {
		return fmt.Errorf("match.wide_tolerance must be >= 0, got %d", c.Match.WideTolerance)
	}
	if c.Match.WideTolerance < c.Match.NarrowTolerance {
		return fmt.Errorf("match.wide_tolerance (%d) must not be narrower than match.narrow_tolerance (%d)",
			c.Match.WideTolerance, c.Match.NarrowTolerance)
	}

	for _, lang := range c.Inject.Languages {
		if !knownLanguages[strings.ToUpper(lang)] {
			return fmt.Errorf("inject.languages contains unknown language %q", lang)
		}
	}

	return nil
}
