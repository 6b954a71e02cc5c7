// Package knowledge holds the static lookup tables consumed by the scoring
// and annotation pipeline: consequence severities, gene constraint,
// pharmacogenomics, disease associations and gnomAD population frequencies.
// Tables are immutable after construction and safe to share across
// goroutines without locking.
package knowledge

// DrugRecommendation describes curated gene-level pharmacogenomic guidance.
type DrugRecommendation struct {
	Drugs         []string `json:"drugs"`
	Indication    string   `json:"indication"`
	EvidenceLevel string   `json:"evidence_level"`
}

// DiseaseAssociation describes curated gene-disease knowledge.
type DiseaseAssociation struct {
	Diseases    []string `json:"diseases"`
	Inheritance string   `json:"inheritance"`
	Prevalence  string   `json:"prevalence"`
	Category    string   `json:"category"`
}

// Tables aggregates every static lookup the pipeline depends on.
// Construct once at process start and inject into each component.
type Tables struct {
	ConsequenceSeverity map[string]int                `json:"consequence_severity"`
	GeneConstraint      map[string]float64            `json:"gene_constraint"`
	Pharmacogenomics    map[string]DrugRecommendation `json:"pharmacogenomics"`
	DiseaseAssociations map[string]DiseaseAssociation `json:"disease_associations"`
	ActionableGenes     map[string]bool               `json:"actionable_genes"`
	AncestryPopulations map[string]string             `json:"ancestry_populations"`
	// PopulationFrequencies maps variant ID -> gnomAD population key -> AF.
	PopulationFrequencies map[string]map[string]float64 `json:"population_frequencies"`
}

// Lookup fallbacks. Unknown keys never error: every accessor resolves to a
// documented default so batch jobs complete on dirty data.
const (
	// UnknownConsequenceScore is the severity assigned to consequence terms
	// absent from the severity table.
	UnknownConsequenceScore = 3

	// NeutralGeneConstraint is the prior for genes without a constraint score.
	NeutralGeneConstraint = 0.5

	// DefaultPopulationFrequency is the conservative frequency for variants
	// absent from the population table: treated as rare, not as zero.
	DefaultPopulationFrequency = 0.0001

	// PopulationOther is the fallback gnomAD population bucket for
	// ancestries without an explicit mapping.
	PopulationOther = "Other"
)

// ConsequenceScore returns the severity rank for a consequence term,
// defaulting to UnknownConsequenceScore.
func (t *Tables) ConsequenceScore(consequence string) int {
	if s, ok := t.ConsequenceSeverity[consequence]; ok {
		return s
	}
	return UnknownConsequenceScore
}

// Constraint returns the gene constraint score in [0,1], defaulting to the
// neutral prior for unknown genes.
func (t *Tables) Constraint(gene string) float64 {
	if c, ok := t.GeneConstraint[gene]; ok {
		return c
	}
	return NeutralGeneConstraint
}

// Drugs returns the pharmacogenomic record for a gene. Unknown genes get an
// explicit no-therapy placeholder, never an empty result.
func (t *Tables) Drugs(gene string) DrugRecommendation {
	if d, ok := t.Pharmacogenomics[gene]; ok {
		return d
	}
	return DrugRecommendation{
		Drugs:         []string{},
		Indication:    "No specific therapies",
		EvidenceLevel: "N/A",
	}
}

// Disease returns the disease association for a gene. Unknown genes get an
// explicit Unknown placeholder.
func (t *Tables) Disease(gene string) DiseaseAssociation {
	if d, ok := t.DiseaseAssociations[gene]; ok {
		return d
	}
	return DiseaseAssociation{
		Diseases:    []string{"Unknown"},
		Inheritance: "Unknown",
		Prevalence:  "Unknown",
		Category:    "Unknown",
	}
}

// HasDiseaseData reports whether curated disease knowledge exists for a gene.
func (t *Tables) HasDiseaseData(gene string) bool {
	_, ok := t.DiseaseAssociations[gene]
	return ok
}

// IsActionable reports whether a gene has an approved targeted therapy.
func (t *Tables) IsActionable(gene string) bool {
	return t.ActionableGenes[gene]
}

// PopulationKey maps a patient ancestry to its gnomAD population bucket,
// falling back to PopulationOther.
func (t *Tables) PopulationKey(ancestry string) string {
	if k, ok := t.AncestryPopulations[ancestry]; ok {
		return k
	}
	return PopulationOther
}

// PopulationFrequency returns the allele frequency of a variant in the
// population bucket for the given ancestry. Variants absent from the table
// resolve to DefaultPopulationFrequency.
func (t *Tables) PopulationFrequency(variantID, ancestry string) float64 {
	key := t.PopulationKey(ancestry)
	pops, ok := t.PopulationFrequencies[variantID]
	if !ok {
		return DefaultPopulationFrequency
	}
	if f, ok := pops[key]; ok {
		return f
	}
	return DefaultPopulationFrequency
}

// HasPopulationData reports whether the population table covers a variant.
func (t *Tables) HasPopulationData(variantID string) bool {
	_, ok := t.PopulationFrequencies[variantID]
	return ok
}
