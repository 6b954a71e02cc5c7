package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsequenceScore(t *testing.T) {
	tables := Default()

	tests := []struct {
		consequence string
		want        int
	}{
		{"frameshift_variant", 10},
		{"nonsense_variant", 9},
		{"splice_site_variant", 8},
		{"missense_variant", 6},
		{"synonymous_variant", 2},
		{"intron_variant", 1},
		{"Unknown", 3},
		{"regulatory_region_variant", 3}, // not in the table
		{"", 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tables.ConsequenceScore(tt.consequence), "ConsequenceScore(%q)", tt.consequence)
	}
}

func TestConstraint(t *testing.T) {
	tables := Default()

	assert.Equal(t, 0.98, tables.Constraint("TP53"))
	assert.Equal(t, 0.95, tables.Constraint("BRCA1"))
	// Unknown genes take the neutral prior, not zero.
	assert.Equal(t, 0.5, tables.Constraint("NOTAGENE"))
}

func TestDrugs(t *testing.T) {
	tables := Default()

	brca := tables.Drugs("BRCA1")
	assert.Contains(t, brca.Drugs, "Olaparib")
	assert.Equal(t, "FDA Approved", brca.EvidenceLevel)

	unknown := tables.Drugs("NOTAGENE")
	assert.Empty(t, unknown.Drugs)
	assert.Equal(t, "No specific therapies", unknown.Indication)
	assert.Equal(t, "N/A", unknown.EvidenceLevel)
}

func TestDisease(t *testing.T) {
	tables := Default()

	cftr := tables.Disease("CFTR")
	assert.Equal(t, []string{"Cystic Fibrosis"}, cftr.Diseases)
	assert.Equal(t, "Autosomal Recessive", cftr.Inheritance)
	assert.True(t, tables.HasDiseaseData("CFTR"))

	unknown := tables.Disease("NOTAGENE")
	assert.Equal(t, []string{"Unknown"}, unknown.Diseases)
	assert.False(t, tables.HasDiseaseData("NOTAGENE"))
}

func TestIsActionable(t *testing.T) {
	tables := Default()

	assert.True(t, tables.IsActionable("BRCA1"))
	assert.True(t, tables.IsActionable("EGFR"))
	assert.False(t, tables.IsActionable("KRAS"))
	assert.False(t, tables.IsActionable("NOTAGENE"))
}

func TestPopulationKey(t *testing.T) {
	tables := Default()

	assert.Equal(t, "Non_Finnish_European", tables.PopulationKey("European"))
	assert.Equal(t, "East_Asian", tables.PopulationKey("East Asian"))
	assert.Equal(t, "African", tables.PopulationKey("African American"))
	assert.Equal(t, "Other", tables.PopulationKey("Martian"))
	assert.Equal(t, "Other", tables.PopulationKey(""))
}

func TestPopulationFrequency(t *testing.T) {
	tables := Default()

	// Known variant, known ancestry.
	assert.Equal(t, 0.0001, tables.PopulationFrequency("chr17:43044295:T>C", "European"))
	assert.Equal(t, 0.00008, tables.PopulationFrequency("chr17:43044295:T>C", "East Asian"))

	// Known variant, unmapped ancestry falls back to the Other bucket.
	assert.Equal(t, 0.00012, tables.PopulationFrequency("chr17:43044295:T>C", "Martian"))

	// Unknown variant resolves to the rare default, not zero.
	assert.Equal(t, DefaultPopulationFrequency, tables.PopulationFrequency("chr9:1:A>G", "European"))

	assert.True(t, tables.HasPopulationData("chr17:43044295:T>C"))
	assert.False(t, tables.HasPopulationData("chr9:1:A>G"))
}

func TestLoadFile_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge.json")
	content := `{
		"gene_constraint": {"MYGENE": 0.75},
		"actionable_genes": {"MYGENE": true}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tables, err := LoadFile(path)
	require.NoError(t, err)

	// Overridden sections are replaced wholesale.
	assert.Equal(t, 0.75, tables.Constraint("MYGENE"))
	assert.Equal(t, 0.5, tables.Constraint("TP53"))
	assert.True(t, tables.IsActionable("MYGENE"))
	assert.False(t, tables.IsActionable("BRCA1"))

	// Untouched sections keep their defaults.
	assert.Equal(t, 10, tables.ConsequenceScore("frameshift_variant"))
	assert.Contains(t, tables.Drugs("BRCA1").Drugs, "Olaparib")
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}
