package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads knowledge tables from a JSON file and merges them over the
// built-in defaults. Only the sections present in the file are replaced, so
// a host can override just the population frequencies or just the
// pharmacogenomics without re-stating everything else.
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge file: %w", err)
	}

	var overlay Tables
	if err := json.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse knowledge file %s: %w", path, err)
	}

	t := Default()
	if overlay.ConsequenceSeverity != nil {
		t.ConsequenceSeverity = overlay.ConsequenceSeverity
	}
	if overlay.GeneConstraint != nil {
		t.GeneConstraint = overlay.GeneConstraint
	}
	if overlay.Pharmacogenomics != nil {
		t.Pharmacogenomics = overlay.Pharmacogenomics
	}
	if overlay.DiseaseAssociations != nil {
		t.DiseaseAssociations = overlay.DiseaseAssociations
	}
	if overlay.ActionableGenes != nil {
		t.ActionableGenes = overlay.ActionableGenes
	}
	if overlay.AncestryPopulations != nil {
		t.AncestryPopulations = overlay.AncestryPopulations
	}
	if overlay.PopulationFrequencies != nil {
		t.PopulationFrequencies = overlay.PopulationFrequencies
	}

	return t, nil
}
