// Package mapping loads the TOML file correlating source-tree tokens
// with target-store names: event-type tokens to tag names, role tokens
// to per-language labels, and the expected role set per tag.
package mapping

import (
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/liseur-glitch/gedbridge/errors"
)

// RoleLabels is a role's display text in both supported languages.
type RoleLabels struct {
	English string `toml:"english"`
	French  string `toml:"french"`
}

// tagEntry describes one target tag in the mapping file.
type tagEntry struct {
	Roles []string `toml:"roles"`
}

// fileFormat mirrors the TOML layout.
type fileFormat struct {
	Events map[string]string     `toml:"events"`
	Roles  map[string]RoleLabels `toml:"roles"`
	Tags   map[string]tagEntry   `toml:"tags"`
}

// Mapping answers lookups with normalized keys, so "Témoin", "temoin"
// and "TEMOIN" all hit the same entry.
type Mapping struct {
	events map[string]string
	roles  map[string]RoleLabels
	tags   map[string][]string
}

// Load reads a mapping file.
func Load(path string) (*Mapping, error) {
	var raw fileFormat
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, errors.Wrapf(err, "load mapping file %s", path)
	}
	return build(raw), nil
}

// Parse reads mapping TOML from a string, mostly for tests.
func Parse(data string) (*Mapping, error) {
	var raw fileFormat
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parse mapping")
	}
	return build(raw), nil
}

// Empty returns a mapping with no entries. Every lookup misses, which
// drives callers onto their fallback paths.
func Empty() *Mapping {
	return build(fileFormat{})
}

func build(raw fileFormat) *Mapping {
	m := &Mapping{
		events: make(map[string]string, len(raw.Events)),
		roles:  make(map[string]RoleLabels, len(raw.Roles)),
		tags:   make(map[string][]string, len(raw.Tags)),
	}
	for token, name := range raw.Events {
		m.events[Normalize(token)] = name
	}
	for token, labels := range raw.Roles {
		if labels.French == "" {
			labels.French = labels.English
		}
		m.roles[Normalize(token)] = labels
	}
	for name, entry := range raw.Tags {
		m.tags[Normalize(name)] = entry.Roles
	}
	return m
}

// TagName maps a source event-type token to the target tag name.
func (m *Mapping) TagName(token string) (string, bool) {
	name, ok := m.events[Normalize(token)]
	return name, ok
}

// RoleLabels maps a source role token to its per-language labels.
func (m *Mapping) RoleLabels(token string) (RoleLabels, bool) {
	labels, ok := m.roles[Normalize(token)]
	return labels, ok
}

// RoleLabelsOrDefault falls back to the title-cased token in both
// languages when the role is not mapped.
func (m *Mapping) RoleLabelsOrDefault(token string) RoleLabels {
	if labels, ok := m.RoleLabels(token); ok {
		return labels
	}
	fallback := titleCase(token)
	return RoleLabels{English: fallback, French: fallback}
}

// ExpectedRoles returns the role labels a tag's sentence blob should
// define, or nil when the tag is not described in the file.
func (m *Mapping) ExpectedRoles(tagName string) []string {
	return m.tags[Normalize(tagName)]
}

// Normalize folds accents away and uppercases, matching how the
// mapping keys are compared on both sides.
func Normalize(s string) string {
	folded, _, err := transform.String(transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	), s)
	if err != nil {
		folded = s
	}
	return strings.ToUpper(strings.TrimSpace(folded))
}

func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
