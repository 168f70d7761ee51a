package sentence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liseur-glitch/gedbridge/errors"
)

func buildModel(t *testing.T) *SentenceModel {
	t.Helper()
	m := NewModel()
	m.SetRoleLabel(1, LangEnglish, "Principal")
	m.SetRoleLabel(1, LangFrench, "Principal")
	m.SetRoleLabel(2, LangEnglish, "Witness")
	m.SetRoleLabel(2, LangFrench, "Témoin")
	m.SetPhrase(1, LangEnglish, "[P] <was|and [PO] were> notary act <[M]> <[D]> <[L]>")
	m.SetPhrase(1, LangFrench, "[P] <était|et [PO] étaient> notary act <[M]> <[D]> <[L]>")
	m.SetPhrase(2, LangEnglish, "[W] witnessed the notary act of [P] <and [PO]> <[M]> <[D]> <[L]>")
	m.SetPhrase(2, LangFrench, "[W] a témoigné lors de notary act de [P] <et [PO]> <[M]> <[D]> <[L]>")
	return m
}

func TestParseEmptyBlob(t *testing.T) {
	model, results := Parse("")
	assert.Equal(t, 0, model.RoleCount())
	assert.Equal(t, 0, model.PhraseCount())
	assert.Empty(t, results)
}

func TestParseLabelSection(t *testing.T) {
	blob := "[LABELS:]\r\n" +
		"[RL=00001][L=ENGLISH]Principal[L=FRENCH]Principal\r\n" +
		"[RL=00002][L=ENGLISH]Witness[L=FRENCH]Témoin\r\n" +
		"[:LABELS]\r\n"

	model, results := Parse(blob)

	assert.Equal(t, 2, model.RoleCount())
	text, ok := model.RoleLabelText(2, LangFrench)
	require.True(t, ok)
	assert.Equal(t, "Témoin", text)

	for _, r := range results {
		assert.Equal(t, LineWellFormed, r.Outcome, "line %d: %s", r.Line, r.Reason)
	}
}

func TestParsePhraseGroups(t *testing.T) {
	blob := "[LABELS:]\r\n" +
		"[RL=00001][L=ENGLISH]Principal\r\n" +
		"[:LABELS]\r\n" +
		"[L=ENGLISHUK]\r\n" +
		"[R=00001]english text\r\n" +
		"[L=FRENCH]\r\n" +
		"[R=00001]texte français\r\n"

	model, _ := Parse(blob)

	// ENGLISHUK marker canonicalizes to ENGLISH
	text, ok := model.Phrase(1, LangEnglish)
	require.True(t, ok)
	assert.Equal(t, "english text", text)

	text, ok = model.Phrase(1, LangFrench)
	require.True(t, ok)
	assert.Equal(t, "texte français", text)
}

func TestParseLanguageInheritance(t *testing.T) {
	blob := "[L=FRENCH]\r\n" +
		"[R=00001]premier\r\n" +
		"[R=00002]second\r\n"

	model, _ := Parse(blob)

	assert.True(t, model.HasPhrase(1, LangFrench))
	assert.True(t, model.HasPhrase(2, LangFrench))
	assert.False(t, model.HasPhrase(1, LangEnglish))
}

func TestParseLegacyContinuousStream(t *testing.T) {
	// Older blobs run all phrases of a group together on one line.
	blob := "[LABELS:]\r\n" +
		"[RL=00001][L=ENGLISH]Principal\r\n" +
		"[:LABELS]\r\n" +
		"[L=ENGLISHUK][R=00001]first text[R=00002]second text\r\n"

	model, _ := Parse(blob)

	text, ok := model.Phrase(1, LangEnglish)
	require.True(t, ok)
	assert.Equal(t, "first text", text)
	text, ok = model.Phrase(2, LangEnglish)
	require.True(t, ok)
	assert.Equal(t, "second text", text)
}

func TestParseFreeformFoldsIntoPreviousPhrase(t *testing.T) {
	blob := "[L=ENGLISHUK]\r\n" +
		"[R=00001]the first part\r\n" +
		"and the continuation\r\n"

	model, results := Parse(blob)

	text, ok := model.Phrase(1, LangEnglish)
	require.True(t, ok)
	assert.Equal(t, "the first part and the continuation", text)

	var recovered int
	for _, r := range results {
		if r.Outcome == LineRecovered {
			recovered++
		}
	}
	assert.Equal(t, 1, recovered)
}

func TestParseRejectsOrphanFreeform(t *testing.T) {
	model, results := Parse("no markers here at all\r\n")

	assert.Equal(t, 0, model.PhraseCount())
	require.Len(t, results, 1)
	assert.Equal(t, LineRejected, results[0].Outcome)
}

func TestSerializeRoleBeforePhrase(t *testing.T) {
	m := NewModel()
	m.SetPhrase(3, LangEnglish, "orphan phrase")

	_, err := Serialize(m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrStructural))
	assert.Contains(t, err.Error(), "00003")
}

func TestSerializeLayout(t *testing.T) {
	m := buildModel(t)

	out, err := Serialize(m)
	require.NoError(t, err)

	// Every line carries the CRLF terminator
	for _, line := range strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n") {
		assert.NotContains(t, line, "\r")
	}
	assert.True(t, strings.HasSuffix(out, "\r\n"))

	// Labels first, ordered by ordinal, languages in fixed order
	assert.True(t, strings.HasPrefix(out, "[LABELS:]\r\n[RL=00001][L=ENGLISH]Principal[L=FRENCH]Principal\r\n"))
	assert.Contains(t, out, "[RL=00002][L=ENGLISH]Witness[L=FRENCH]Témoin\r\n[:LABELS]\r\n")

	// English group uses the historical ENGLISHUK marker
	assert.Contains(t, out, "[L=ENGLISHUK]\r\n")
	assert.NotContains(t, out, "[L=ENGLISH]\r\n")
}

func TestSerializeGroupingInvariant(t *testing.T) {
	m := buildModel(t)

	out, err := Serialize(m)
	require.NoError(t, err)

	english := strings.Index(out, "[L=ENGLISHUK]")
	french := strings.Index(out, "[L=FRENCH]\r\n")
	require.Greater(t, english, 0)
	require.Greater(t, french, 0)
	assert.Less(t, english, french)

	// All English phrase lines sit between the two group markers
	englishGroup := out[english:french]
	assert.Contains(t, englishGroup, "[R=00001]")
	assert.Contains(t, englishGroup, "[R=00002]")
	frenchGroup := out[french:]
	assert.Contains(t, frenchGroup, "[R=00001]")
	assert.Contains(t, frenchGroup, "[R=00002]")
}

func TestSerializeEmptyModelEmitsPrimaryMarker(t *testing.T) {
	out, err := Serialize(NewModel())
	require.NoError(t, err)
	assert.Equal(t, "[LABELS:]\r\n[:LABELS]\r\n[L=ENGLISHUK]\r\n", out)
}

func TestRoundTripIdempotence(t *testing.T) {
	m := buildModel(t)

	first, err := Serialize(m)
	require.NoError(t, err)

	reparsed, results := Parse(first)
	for _, r := range results {
		assert.NotEqual(t, LineRejected, r.Outcome, "line %d: %s", r.Line, r.Reason)
	}

	second, err := Serialize(reparsed)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// And once more through the codec
	reparsed2, _ := Parse(second)
	third, err := Serialize(reparsed2)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestFindRole(t *testing.T) {
	m := buildModel(t)

	ordinal, ok := m.FindRole("témoin")
	require.True(t, ok)
	assert.Equal(t, 2, ordinal)

	_, ok = m.FindRole("Godparent")
	assert.False(t, ok)
}

func TestNextRoleOrdinal(t *testing.T) {
	m := NewModel()
	assert.Equal(t, 1, m.NextRoleOrdinal())

	m.SetRoleLabel(1, LangEnglish, "Principal")
	m.SetRoleLabel(2, LangEnglish, "Witness")
	assert.Equal(t, 3, m.NextRoleOrdinal())

	m.SetRoleLabel(4, LangEnglish, "Godparent")
	assert.Equal(t, 3, m.NextRoleOrdinal(), "fills the gap before extending")
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		kind RoleKind
		tag  string
		role string
		lang Language
		want string
	}{
		{
			name: "primary without role qualifier",
			kind: RolePrimary,
			tag:  "Notary act",
			role: "Principal",
			lang: LangEnglish,
			want: "[P] <was|and [PO] were> notary act <[M]> <[D]> <[L]>",
		},
		{
			name: "primary with role qualifier",
			kind: RolePrimary,
			tag:  "Notary act",
			role: "Principal seller",
			lang: LangEnglish,
			want: "[P] <was|and [PO] were> seller at notary act <[M]> <[D]> <[L]>",
		},
		{
			name: "secondary default witness",
			kind: RoleSecondary,
			tag:  "Notary act",
			role: "",
			lang: LangEnglish,
			want: "[W] witnessed the notary act of [P] <and [PO]> <[M]> <[D]> <[L]>",
		},
		{
			name: "secondary with named role",
			kind: RoleSecondary,
			tag:  "Baptism",
			role: "Godparent",
			lang: LangEnglish,
			want: "[W] <was|and [WO] were> godparent at baptism <[M]> <[D]> <[L]>",
		},
		{
			name: "french primary",
			kind: RolePrimary,
			tag:  "Notary act",
			role: "Principal",
			lang: LangFrench,
			want: "[P] <était|et [PO] étaient> notary act <[M]> <[D]> <[L]>",
		},
		{
			name: "french secondary default",
			kind: RoleSecondary,
			tag:  "Notary act",
			role: "",
			lang: LangFrench,
			want: "[W] a témoigné lors de notary act de [P] <et [PO]> <[M]> <[D]> <[L]>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.kind, tt.tag, tt.role, tt.lang)
			assert.Equal(t, tt.want, got)

			// Templates never embed instance data beyond the standard placeholders
			assert.NotContains(t, got, "{")
			assert.NotContains(t, got, "%")
		})
	}
}
