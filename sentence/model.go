// Package sentence implements the codec for the sentence mini-language
// stored in TagDefinition memo blobs: a label section naming role ordinals
// per language, followed by per-language groups of phrase lines.
package sentence

import (
	"fmt"
	"sort"
	"strings"
)

// Language identifies a sentence language in canonical form.
type Language string

const (
	LangEnglish Language = "ENGLISH"
	LangFrench  Language = "FRENCH"
)

// SupportedLanguages is the fixed serialization order for languages.
var SupportedLanguages = []Language{LangEnglish, LangFrench}

// phraseMarkers maps a canonical language to the marker token used to
// introduce its phrase group. The store expects the historical token
// ENGLISHUK for English phrases, while label text uses ENGLISH. This is
// a fixed lookup, not something the codec infers.
var phraseMarkers = map[Language]string{
	LangEnglish: "ENGLISHUK",
	LangFrench:  "FRENCH",
}

// canonicalLanguage maps any marker token back to its canonical language.
func canonicalLanguage(marker string) Language {
	marker = strings.ToUpper(marker)
	if marker == "ENGLISHUK" {
		return LangEnglish
	}
	return Language(marker)
}

// ParseLanguage folds a user-supplied language name to canonical form,
// accepting marker tokens like ENGLISHUK.
func ParseLanguage(name string) Language {
	return canonicalLanguage(strings.TrimSpace(name))
}

// PhraseMarker returns the phrase-group marker token for a language.
func PhraseMarker(lang Language) string {
	if m, ok := phraseMarkers[lang]; ok {
		return m
	}
	return string(lang)
}

// Ordinal formats a role ordinal the way the store expects it.
func Ordinal(n int) string {
	return fmt.Sprintf("%05d", n)
}

// RoleLabel holds the per-language display text for one role ordinal.
type RoleLabel struct {
	Ordinal int
	Labels  map[Language]string
}

// PhraseKey identifies one phrase: a (role ordinal, language) pair.
type PhraseKey struct {
	Ordinal  int
	Language Language
}

// SentenceModel is the in-memory decomposition of one TagDefinition's
// mini-language blob.
type SentenceModel struct {
	roles   map[int]*RoleLabel
	phrases map[PhraseKey]string
}

// NewModel returns an empty SentenceModel.
func NewModel() *SentenceModel {
	return &SentenceModel{
		roles:   make(map[int]*RoleLabel),
		phrases: make(map[PhraseKey]string),
	}
}

// SetRoleLabel records the display text for a role ordinal in a language.
func (m *SentenceModel) SetRoleLabel(ordinal int, lang Language, text string) {
	role, ok := m.roles[ordinal]
	if !ok {
		role = &RoleLabel{Ordinal: ordinal, Labels: make(map[Language]string)}
		m.roles[ordinal] = role
	}
	role.Labels[lang] = text
}

// RoleLabelText returns the display text for (ordinal, lang), if present.
func (m *SentenceModel) RoleLabelText(ordinal int, lang Language) (string, bool) {
	role, ok := m.roles[ordinal]
	if !ok {
		return "", false
	}
	text, ok := role.Labels[lang]
	return text, ok
}

// HasRole reports whether the ordinal has any label.
func (m *SentenceModel) HasRole(ordinal int) bool {
	role, ok := m.roles[ordinal]
	return ok && len(role.Labels) > 0
}

// RoleOrdinals returns all role ordinals in ascending order.
func (m *SentenceModel) RoleOrdinals() []int {
	ordinals := make([]int, 0, len(m.roles))
	for n := range m.roles {
		ordinals = append(ordinals, n)
	}
	sort.Ints(ordinals)
	return ordinals
}

// FindRole returns the ordinal whose label matches text in any language,
// compared case-insensitively.
func (m *SentenceModel) FindRole(text string) (int, bool) {
	for _, ordinal := range m.RoleOrdinals() {
		for _, label := range m.roles[ordinal].Labels {
			if strings.EqualFold(label, text) {
				return ordinal, true
			}
		}
	}
	return 0, false
}

// NextRoleOrdinal returns the first unused role ordinal, starting at 1.
func (m *SentenceModel) NextRoleOrdinal() int {
	n := 1
	for m.HasRole(n) {
		n++
	}
	return n
}

// SetPhrase records phrase text for a (role, language) pair.
func (m *SentenceModel) SetPhrase(ordinal int, lang Language, text string) {
	m.phrases[PhraseKey{Ordinal: ordinal, Language: lang}] = text
}

// Phrase returns the phrase text for (ordinal, lang), if present.
func (m *SentenceModel) Phrase(ordinal int, lang Language) (string, bool) {
	text, ok := m.phrases[PhraseKey{Ordinal: ordinal, Language: lang}]
	return text, ok
}

// HasPhrase reports whether a phrase exists for (ordinal, lang).
func (m *SentenceModel) HasPhrase(ordinal int, lang Language) bool {
	_, ok := m.phrases[PhraseKey{Ordinal: ordinal, Language: lang}]
	return ok
}

// PhraseCount returns the number of stored phrases.
func (m *SentenceModel) PhraseCount() int {
	return len(m.phrases)
}

// RoleCount returns the number of roles with labels.
func (m *SentenceModel) RoleCount() int {
	return len(m.roles)
}

// phraseOrdinals returns ordinals having a phrase in lang, ascending.
func (m *SentenceModel) phraseOrdinals(lang Language) []int {
	var ordinals []int
	for key := range m.phrases {
		if key.Language == lang {
			ordinals = append(ordinals, key.Ordinal)
		}
	}
	sort.Ints(ordinals)
	return ordinals
}

// phraseLanguages returns every language having at least one phrase,
// supported languages first in fixed order, then any others sorted.
func (m *SentenceModel) phraseLanguages() []Language {
	seen := make(map[Language]bool)
	for key := range m.phrases {
		seen[key.Language] = true
	}

	var langs []Language
	for _, lang := range SupportedLanguages {
		if seen[lang] {
			langs = append(langs, lang)
			delete(seen, lang)
		}
	}

	var extras []string
	for lang := range seen {
		extras = append(extras, string(lang))
	}
	sort.Strings(extras)
	for _, lang := range extras {
		langs = append(langs, Language(lang))
	}
	return langs
}
