package sentence

import (
	"sort"
	"strings"

	"github.com/liseur-glitch/gedbridge/errors"
)

// crlf is the line terminator the consuming application requires,
// regardless of platform.
const crlf = "\r\n"

// Serialize renders a SentenceModel back into blob text. The layout is
// strict and deterministic: the label section first, one line per role
// ordered by ordinal, then one phrase group per language with the
// language marker emitted once and inherited by the group's lines.
//
// Returns ErrStructural if any phrase references a role ordinal that has
// no label; callers must add the RoleLabel before the phrase.
func Serialize(model *SentenceModel) (string, error) {
	for key := range model.phrases {
		if !model.HasRole(key.Ordinal) {
			return "", errors.Wrapf(errors.ErrStructural,
				"phrase for role %s in %s has no role label", Ordinal(key.Ordinal), key.Language)
		}
	}

	var b strings.Builder

	b.WriteString(labelsOpen)
	b.WriteString(crlf)
	for _, ordinal := range model.RoleOrdinals() {
		role := model.roles[ordinal]
		b.WriteString("[RL=")
		b.WriteString(Ordinal(ordinal))
		b.WriteString("]")
		for _, lang := range labelLanguages(role) {
			b.WriteString("[L=")
			b.WriteString(string(lang))
			b.WriteString("]")
			b.WriteString(role.Labels[lang])
		}
		b.WriteString(crlf)
	}
	b.WriteString(labelsClose)
	b.WriteString(crlf)

	langs := model.phraseLanguages()
	if len(langs) == 0 {
		// The store expects at least the primary group marker.
		langs = []Language{LangEnglish}
	}
	for _, lang := range langs {
		b.WriteString("[L=")
		b.WriteString(PhraseMarker(lang))
		b.WriteString("]")
		b.WriteString(crlf)
		for _, ordinal := range model.phraseOrdinals(lang) {
			text, _ := model.Phrase(ordinal, lang)
			b.WriteString("[R=")
			b.WriteString(Ordinal(ordinal))
			b.WriteString("]")
			b.WriteString(text)
			b.WriteString(crlf)
		}
	}

	return b.String(), nil
}

// labelLanguages returns a role's label languages in serialization order:
// supported languages first, then any others sorted.
func labelLanguages(role *RoleLabel) []Language {
	seen := make(map[Language]bool, len(role.Labels))
	for lang := range role.Labels {
		seen[lang] = true
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
