package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMapping = `
[events]
"NOTARY ACT" = "Notary act"
"ACTE NOTARIÉ" = "Notary act"
BIRT = "Birth"

[roles.WITNESS]
english = "Witness"
french = "Témoin"

[roles.GODPARENT]
english = "Godparent"

[tags."Notary act"]
roles = ["Principal", "Buyer", "Seller", "Witness"]
`

func TestParseMapping(t *testing.T) {
	m, err := Parse(sampleMapping)
	require.NoError(t, err)

	name, ok := m.TagName("Notary Act")
	require.True(t, ok)
	assert.Equal(t, "Notary act", name)

	// Accents fold away in lookups
	name, ok = m.TagName("acte notarié")
	require.True(t, ok)
	assert.Equal(t, "Notary act", name)

	name, ok = m.TagName("acte notarie")
	require.True(t, ok)
	assert.Equal(t, "Notary act", name)

	_, ok = m.TagName("UNKNOWN EVENT")
	assert.False(t, ok)
}

func TestRoleLabels(t *testing.T) {
	m, err := Parse(sampleMapping)
	require.NoError(t, err)

	labels, ok := m.RoleLabels("witness")
	require.True(t, ok)
	assert.Equal(t, "Witness", labels.English)
	assert.Equal(t, "Témoin", labels.French)

	// Missing french falls back to english
	labels, ok = m.RoleLabels("godparent")
	require.True(t, ok)
	assert.Equal(t, "Godparent", labels.French)
}

func TestRoleLabelsOrDefault(t *testing.T) {
	m, err := Parse(sampleMapping)
	require.NoError(t, err)

	labels := m.RoleLabelsOrDefault("legal guardian")
	assert.Equal(t, "Legal Guardian", labels.English)
	assert.Equal(t, "Legal Guardian", labels.French)
}

func TestExpectedRoles(t *testing.T) {
	m, err := Parse(sampleMapping)
	require.NoError(t, err)

	roles := m.ExpectedRoles("NOTARY ACT")
	assert.Equal(t, []string{"Principal", "Buyer", "Seller", "Witness"}, roles)

	assert.Nil(t, m.ExpectedRoles("Birth"))
}

func TestLoadMappingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleMapping), 0644))

	m, err := Load(path)
	require.NoError(t, err)
	_, ok := m.TagName("BIRT")
	assert.True(t, ok)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestEmptyMapping(t *testing.T) {
	m := Empty()
	_, ok := m.TagName("BIRT")
	assert.False(t, ok)
	assert.Nil(t, m.ExpectedRoles("anything"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "TEMOIN", Normalize("Témoin"))
	assert.Equal(t, "TEMOIN", Normalize("  temoin "))
	assert.Equal(t, "ACTE NOTARIE", Normalize("acte notarié"))
	assert.Equal(t, "", Normalize(""))
}
