package sentence

import (
	"strconv"
	"strings"
)

// Label section delimiters and marker keys.
const (
	labelsOpen  = "[LABELS:]"
	labelsClose = "[:LABELS]"
)

// LineOutcome classifies how one input line was handled.
type LineOutcome int

const (
	// LineWellFormed lines matched the grammar exactly.
	LineWellFormed LineOutcome = iota
	// LineRecovered lines deviated but were folded into the model,
	// typically as trailing text of the preceding phrase.
	LineRecovered
	// LineRejected lines could not contribute anything and were dropped.
	LineRejected
)

// LineResult tags the outcome of parsing a single non-empty line.
type LineResult struct {
	Line    int // 1-based position in the blob
	Outcome LineOutcome
	Reason  string // empty for well-formed lines
}

// Parse decomposes a mini-language blob into a SentenceModel. It never
// fails: malformed content degrades line by line, and each non-empty
// line's outcome is tagged in the returned results. An empty blob yields
// an empty model.
func Parse(blob string) (*SentenceModel, []LineResult) {
	model := NewModel()
	if blob == "" {
		return model, nil
	}

	var results []LineResult
	inLabels := false
	currentLang := Language("")
	var lastPhrase *PhraseKey

	lines := strings.Split(blob, "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		num := i + 1

		switch {
		case line == labelsOpen:
			inLabels = true
			results = append(results, LineResult{Line: num, Outcome: LineWellFormed})

		case line == labelsClose:
			inLabels = false
			results = append(results, LineResult{Line: num, Outcome: LineWellFormed})

		case inLabels:
			results = append(results, parseLabelLine(model, num, line))

		default:
			result, lang, phrase := parsePhraseLine(model, num, line, currentLang, lastPhrase)
			currentLang = lang
			if phrase != nil {
				lastPhrase = phrase
			}
			results = append(results, result)
		}
	}

	return model, results
}

// parseLabelLine handles one line inside the label section. A line holds
// one or more role blocks: "[RL=00001][L=ENGLISH]Principal[L=FRENCH]Principal".
func parseLabelLine(model *SentenceModel, num int, line string) LineResult {
	if !strings.HasPrefix(line, "[RL=") {
		return LineResult{Line: num, Outcome: LineRejected, Reason: "label line without role marker"}
	}

	clean := true
	rest := line
	for rest != "" {
		key, value, tail, ok := takeMarker(rest)
		if !ok || key != "RL" {
			return LineResult{Line: num, Outcome: LineRejected, Reason: "malformed role marker"}
		}
		ordinal, err := strconv.Atoi(value)
		if err != nil {
			return LineResult{Line: num, Outcome: LineRejected, Reason: "non-numeric role ordinal"}
		}

		// Role block runs until the next [RL= marker.
		block := tail
		if next := strings.Index(tail, "[RL="); next >= 0 {
			block = tail[:next]
			rest = tail[next:]
		} else {
			rest = ""
		}

		if !parseLanguagePairs(model, ordinal, block) {
			clean = false
		}
	}

	if clean {
		return LineResult{Line: num, Outcome: LineWellFormed}
	}
	return LineResult{Line: num, Outcome: LineRecovered, Reason: "stray text in role block"}
}

// parseLanguagePairs extracts "[L=LANG]text" pairs from a role block.
// Returns false if the block carried text outside any language marker.
func parseLanguagePairs(model *SentenceModel, ordinal int, block string) bool {
	clean := true
	for block != "" {
		start := strings.Index(block, "[L=")
		if start < 0 {
			if strings.TrimSpace(block) != "" {
				clean = false
			}
			break
		}
		if strings.TrimSpace(block[:start]) != "" {
			clean = false
		}

		key, value, tail, ok := takeMarker(block[start:])
		if !ok || key != "L" {
			clean = false
			break
		}

		text := tail
		if next := strings.Index(tail, "[L="); next >= 0 {
			text = tail[:next]
			block = tail[next:]
		} else {
			block = ""
		}

		text = strings.TrimSpace(text)
		if text != "" {
			model.SetRoleLabel(ordinal, canonicalLanguage(value), text)
		}
	}
	return clean
}

// parsePhraseLine handles one line outside the label section. A line may
// open with a language marker, carry one or more "[R=00001]text" phrases,
// or be freeform trailing text of the previous phrase.
func parsePhraseLine(model *SentenceModel, num int, line string, lang Language, lastPhrase *PhraseKey) (LineResult, Language, *PhraseKey) {
	rest := line
	recovered := false
	var reason string

	// Optional leading language marker, possibly alone on the line.
	if strings.HasPrefix(rest, "[L=") {
		_, value, tail, ok := takeMarker(rest)
		if ok {
			lang = canonicalLanguage(value)
			rest = tail
			if rest == "" {
				return LineResult{Line: num, Outcome: LineWellFormed}, lang, nil
			}
		}
	}

	if !strings.HasPrefix(rest, "[R=") {
		// No recognized marker: fold into the previous phrase as
		// trailing text, or drop the line entirely.
		if lastPhrase != nil {
			text, _ := model.Phrase(lastPhrase.Ordinal, lastPhrase.Language)
			model.SetPhrase(lastPhrase.Ordinal, lastPhrase.Language, text+" "+strings.TrimSpace(rest))
			return LineResult{Line: num, Outcome: LineRecovered, Reason: "folded into previous phrase"}, lang, nil
		}
		return LineResult{Line: num, Outcome: LineRejected, Reason: "no phrase to attach freeform text to"}, lang, nil
	}

	if lang == "" {
		// Nothing to inherit; assume the primary language.
		lang = LangEnglish
		recovered = true
		reason = "phrase before any language marker"
	}

	var phrase *PhraseKey
	for rest != "" {
		key, value, tail, ok := takeMarker(rest)
		if !ok || key != "R" {
			recovered = true
			reason = "stray text after phrase"
			break
		}
		ordinal, err := strconv.Atoi(value)
		if err != nil {
			recovered = true
			reason = "non-numeric phrase ordinal"
			break
		}

		text := tail
		if next := strings.Index(tail, "[R="); next >= 0 {
			text = tail[:next]
			rest = tail[next:]
		} else {
			rest = ""
		}

		model.SetPhrase(ordinal, lang, strings.TrimSpace(text))
		phrase = &PhraseKey{Ordinal: ordinal, Language: lang}
	}

	if recovered {
		return LineResult{Line: num, Outcome: LineRecovered, Reason: reason}, lang, phrase
	}
	return LineResult{Line: num, Outcome: LineWellFormed}, lang, phrase
}

// takeMarker splits a leading "[KEY=VALUE]" marker off s.
func takeMarker(s string) (key, value, rest string, ok bool) {
	if !strings.HasPrefix(s, "[") {
		return "", "", s, false
	}
	end := strings.Index(s, "]")
	if end < 0 {
		return "", "", s, false
	}
	inner := s[1:end]
	eq := strings.Index(inner, "=")
	if eq < 0 {
		return "", "", s, false
	}
	return inner[:eq], inner[eq+1:], s[end+1:], true
}
