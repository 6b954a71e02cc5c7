// Package features maps variants to the fixed-order numeric feature vectors
// the pathogenicity predictors are trained on.
package features

import (
	"strings"

	"github.com/genoinsight/genoinsight/internal/knowledge"
	"github.com/genoinsight/genoinsight/internal/vcf"
)

// Feature indices. The order and count are frozen: predictors are trained
// against this exact layout, and changing it invalidates every persisted
// model.
const (
	IdxConsequenceScore = iota
	IdxCohortAF
	IdxQualityScore
	IdxIsCoding
	IdxGeneConstraint

	Count = 5
)

// Names lists the feature names in vector order.
var Names = [Count]string{
	"consequence_score",
	"allele_frequency",
	"quality_score",
	"is_coding",
	"gene_constraint",
}

// Vector is a fixed-order feature tuple.
type Vector [Count]float64

// Slice returns the vector as a []float64 copy.
func (v Vector) Slice() []float64 {
	out := make([]float64, Count)
	copy(out, v[:])
	return out
}

// Map returns the vector keyed by feature name, for explainability output.
func (v Vector) Map() map[string]float64 {
	m := make(map[string]float64, Count)
	for i, name := range Names {
		m[name] = v[i]
	}
	return m
}

// codingTerms mark a consequence as protein-coding for the is_coding flag.
var codingTerms = []string{"missense", "nonsense", "frameshift"}

// Extractor derives feature vectors from variants using the injected
// severity and constraint tables. Extraction is pure and deterministic:
// every missing field has a defined fallback, so Extract never fails on a
// syntactically valid variant.
type Extractor struct {
	tables *knowledge.Tables
}

// NewExtractor creates an extractor over the given knowledge tables.
func NewExtractor(tables *knowledge.Tables) *Extractor {
	return &Extractor{tables: tables}
}

// Extract maps a variant to its feature vector.
// Fallbacks: unknown consequence scores 3, missing quality coerces to 0,
// unknown gene takes the neutral constraint prior 0.5.
func (e *Extractor) Extract(v *vcf.Variant) Vector {
	var fv Vector
	fv[IdxConsequenceScore] = float64(e.tables.ConsequenceScore(v.Consequence))
	fv[IdxCohortAF] = v.CohortAF
	fv[IdxQualityScore] = v.QualOrZero()
	fv[IdxIsCoding] = isCoding(v.Consequence)
	fv[IdxGeneConstraint] = e.tables.Constraint(v.Gene)
	return fv
}

func isCoding(consequence string) float64 {
	for _, term := range codingTerms {
		if strings.Contains(consequence, term) {
			return 1
		}
	}
	return 0
}
