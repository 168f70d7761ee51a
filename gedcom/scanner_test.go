package gedcom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTree = `0 HEAD
1 SOUR gedbridge-test
0 @I1@ INDI
1 NAME Jean /DUPONT/
1 REFN R100
1 BIRT
2 DATE 10 OCT 1750
1 EVEN
2 TYPE Notary act
2 DATE 3 MAR 1780
2 _SHAR @I2@
3 ROLE Buyer
3 NOTE sold the family
3 CONT farm in Lyon
2 _SHAR @I3@
0 @I2@ INDI
1 NAME Marie /MARTIN/
1 REFN R200
0 @I3@ INDI
1 REFN R300
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 MARR
2 DATE 1775
2 _SHAR @I3@
3 ROLE Witness
0 TRLR
`

func TestScan(t *testing.T) {
	tree, err := Scan(strings.NewReader(sampleTree))
	require.NoError(t, err)

	require.Len(t, tree.Individuals, 3)
	require.Len(t, tree.Families, 1)

	jean := tree.Individuals[0]
	assert.Equal(t, "I1", jean.ID)
	assert.Equal(t, "R100", jean.Reference)
	require.Len(t, jean.Events, 2)

	birth := jean.Events[0]
	assert.Equal(t, "BIRT", birth.Tag)
	assert.Equal(t, "10 OCT 1750", birth.Date)
	assert.Equal(t, "1750", birth.Year())
	assert.Equal(t, "BIRT", birth.TypeToken())

	act := jean.Events[1]
	assert.Equal(t, "EVEN", act.Tag)
	assert.Equal(t, "Notary act", act.Type)
	assert.Equal(t, "Notary act", act.TypeToken())
	assert.Equal(t, "1780", act.Year())
	require.Len(t, act.Participants, 2)
	assert.Equal(t, "I2", act.Participants[0].ID)
	assert.Equal(t, "Buyer", act.Participants[0].Role)
	assert.Equal(t, "sold the family farm in Lyon", act.Participants[0].Note)
	assert.Equal(t, "I3", act.Participants[1].ID)
	assert.Equal(t, "Witness", act.Participants[1].Role, "role defaults to Witness")
}

func TestScanFamily(t *testing.T) {
	tree, err := Scan(strings.NewReader(sampleTree))
	require.NoError(t, err)

	fam := tree.Families[0]
	assert.Equal(t, "F1", fam.ID)
	assert.Equal(t, "I1", fam.HusbandID)
	assert.Equal(t, "I2", fam.WifeID)
	assert.Equal(t, "I1", fam.PrincipalID(), "husband preferred")

	require.Len(t, fam.Events, 1)
	assert.Equal(t, "MARR", fam.Events[0].Tag)
	assert.Equal(t, "1775", fam.Events[0].Year())
	require.Len(t, fam.Events[0].Participants, 1)
}

func TestFamilyPrincipalFallsBackToWife(t *testing.T) {
	fam := &Family{WifeID: "I9"}
	assert.Equal(t, "I9", fam.PrincipalID())
}

func TestScanSkipsMalformedLines(t *testing.T) {
	input := "garbage\n" +
		"0 @I1@ INDI\n" +
		"not a gedcom line\n" +
		"1 REFN R1\n"

	tree, err := Scan(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, tree.Individuals, 1)
	assert.Equal(t, "R1", tree.Individuals[0].Reference)
}

func TestScanFileWindows1252Fallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.ged")

	// "Témoin" with 0xE9 for é is not valid UTF-8
	content := []byte("0 @I1@ INDI\r\n1 EVEN\r\n2 TYPE Bapt\xeame\r\n2 _SHAR @I2@\r\n3 ROLE T\xe9moin\r\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	tree, err := ScanFile(path)
	require.NoError(t, err)
	require.Len(t, tree.Individuals, 1)
	require.Len(t, tree.Individuals[0].Events, 1)

	event := tree.Individuals[0].Events[0]
	assert.Equal(t, "Baptême", event.Type)
	require.Len(t, event.Participants, 1)
	assert.Equal(t, "Témoin", event.Participants[0].Role)
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"10 OCT 1750", "1750"},
		{"1750", "1750"},
		{"ABT 1802", "1802"},
		{"BET 1840 AND 1850", "1840"},
		{"12 JAN", ""},
		{"", ""},
		{"123", ""},
		{"12345", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractYear(tt.date), "date %q", tt.date)
	}
}
