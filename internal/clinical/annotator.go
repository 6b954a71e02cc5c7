// Package clinical combines pathogenicity predictions with population and
// gene knowledge into structured clinical annotations and cohort reports.
package clinical

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/genoinsight/genoinsight/internal/knowledge"
	"github.com/genoinsight/genoinsight/internal/predict"
	"github.com/genoinsight/genoinsight/internal/vcf"
)

// Prediction-contract violations. Annotation never proceeds with partial
// prediction data; these are the only hard errors this package produces.
var (
	ErrNilPrediction         = errors.New("clinical: prediction is required")
	ErrMissingClassification = errors.New("clinical: prediction missing classification")
	ErrMissingProbability    = errors.New("clinical: prediction missing pathogenic probability")
)

// ACMG-style evidence codes.
const (
	CriterionLossOfFunction = "PVS1" // frameshift / nonsense consequence
	CriterionRarity         = "PM2"  // population frequency at or below rarity threshold
	CriterionComputational  = "PP3"  // ML classification supports pathogenic
	CriterionCommonVariant  = "BA1"  // stand-alone benign: common in population
	CriterionSilentVariant  = "BP7"  // synonymous consequence
)

// Criteria thresholds. The rarity bound is inclusive so that variants absent
// from the population table, which resolve to the rare default frequency,
// still count as rare.
const (
	rarityThreshold        = 1e-4
	commonVariantThreshold = 0.05
	// actionabilityOverrideAF is the population frequency above which a
	// variant is forced to the minimal tier: population evidence outranks
	// the model for common variants.
	actionabilityOverrideAF = 0.01
)

// Actionability tiers.
const (
	ActionabilityHigh     = "HIGH - Clinical action recommended"
	ActionabilityModerate = "MODERATE - Genetic counseling"
	ActionabilityLow      = "LOW - Monitoring"
	ActionabilityMinimal  = "MINIMAL - No clinical action indicated"
)

// Confidence tiers.
const (
	ConfidenceHigh     = "High"
	ConfidenceModerate = "Moderate"
	ConfidenceLow      = "Low"
)

// PopulationData records the ancestry-resolved population frequency used
// during annotation.
type PopulationData struct {
	PatientAncestry string  `json:"patient_ancestry"`
	PopulationKey   string  `json:"population_key"`
	AlleleFrequency float64 `json:"allele_frequency_in_population"`
	KnownVariant    bool    `json:"known_variant"`
}

// Annotation is the structured clinical annotation for one variant.
// Created once per variant, never mutated.
type Annotation struct {
	Variant            *vcf.Variant                 `json:"variant"`
	Prediction         *predict.Prediction          `json:"ml_classification"`
	Pharmacogenomics   knowledge.DrugRecommendation `json:"pharmacogenomics"`
	DiseaseAssociation knowledge.DiseaseAssociation `json:"disease_association"`
	ACMGCriteria       []string                     `json:"acmg_criteria"`
	Actionability      string                       `json:"clinical_actionability"`
	ConfidenceTier     string                       `json:"confidence_tier"`
	PatientSummary     string                       `json:"patient_impact"`
	PopulationData     PopulationData               `json:"population_data"`
}

// Annotator builds clinical annotations from predictions and the injected
// knowledge tables. Safe for concurrent use; the tables are read-only.
type Annotator struct {
	tables *knowledge.Tables
	logger *zap.Logger
}

// NewAnnotator creates an annotator over the given knowledge tables.
func NewAnnotator(tables *knowledge.Tables) *Annotator {
	return &Annotator{tables: tables, logger: zap.NewNop()}
}

// SetLogger sets the logger for annotation diagnostics.
func (a *Annotator) SetLogger(l *zap.Logger) {
	a.logger = l
}

// Annotate combines a variant and its prediction into a clinical annotation
// for the given patient ancestry. A prediction missing its classification or
// probability is a contract violation and fails immediately; every other
// unknown (gene, variant, ancestry) resolves to a documented default.
func (a *Annotator) Annotate(v *vcf.Variant, pred *predict.Prediction, ancestry string) (*Annotation, error) {
	if err := validatePrediction(pred); err != nil {
		return nil, err
	}

	popFreq := a.tables.PopulationFrequency(v.ID, ancestry)
	known := a.tables.HasPopulationData(v.ID)
	if !known {
		a.logger.Debug("variant absent from population table, using rare default",
			zap.String("variant_id", v.ID))
	}

	return &Annotation{
		Variant:            v,
		Prediction:         pred,
		Pharmacogenomics:   a.tables.Drugs(v.Gene),
		DiseaseAssociation: a.tables.Disease(v.Gene),
		ACMGCriteria:       a.deriveCriteria(v, pred, popFreq),
		Actionability:      a.assessActionability(v, pred, popFreq),
		ConfidenceTier:     a.confidenceTier(v, pred, known),
		PatientSummary:     patientSummary(v.Gene, pred.Classification),
		PopulationData: PopulationData{
			PatientAncestry: ancestry,
			PopulationKey:   a.tables.PopulationKey(ancestry),
			AlleleFrequency: popFreq,
			KnownVariant:    known,
		},
	}, nil
}

func validatePrediction(pred *predict.Prediction) error {
	if pred == nil {
		return ErrNilPrediction
	}
	if pred.Classification == "" {
		return fmt.Errorf("%w (variant %s)", ErrMissingClassification, pred.VariantID)
	}
	p := pred.PathogenicProbability
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w (variant %s)", ErrMissingProbability, pred.VariantID)
	}
	return nil
}

// deriveCriteria evaluates the ACMG-style evidence codes. Each criterion is
// independent; the result lists every code that applies, in a fixed order.
func (a *Annotator) deriveCriteria(v *vcf.Variant, pred *predict.Prediction, popFreq float64) []string {
	criteria := []string{}

	if strings.Contains(v.Consequence, "frameshift") || strings.Contains(v.Consequence, "nonsense") {
		criteria = append(criteria, CriterionLossOfFunction)
	}
	if popFreq <= rarityThreshold {
		criteria = append(criteria, CriterionRarity)
	}
	if isPathogenicCall(pred.Classification) {
		criteria = append(criteria, CriterionComputational)
	}
	if popFreq > commonVariantThreshold {
		criteria = append(criteria, CriterionCommonVariant)
	}
	if strings.Contains(v.Consequence, "synonymous") {
		criteria = append(criteria, CriterionSilentVariant)
	}

	return criteria
}

// assessActionability tiers the clinical response. Common variants are
// forced to the minimal tier regardless of the ML call.
func (a *Annotator) assessActionability(v *vcf.Variant, pred *predict.Prediction, popFreq float64) string {
	if popFreq > actionabilityOverrideAF {
		return ActionabilityMinimal
	}

	switch {
	case isPathogenicCall(pred.Classification) && a.tables.IsActionable(v.Gene):
		return ActionabilityHigh
	case isPathogenicCall(pred.Classification):
		return ActionabilityModerate
	case pred.Classification == predict.ClassUncertain:
		return ActionabilityLow
	default:
		return ActionabilityMinimal
	}
}

// Confidence-tier weights and bands. The score blends the prediction's own
// confidence with the presence of curated disease and population data.
const (
	confWeightPrediction = 0.5
	confWeightDisease    = 0.3
	confWeightPopulation = 0.2

	confBandHigh     = 0.8
	confBandModerate = 0.6
)

func (a *Annotator) confidenceTier(v *vcf.Variant, pred *predict.Prediction, popKnown bool) string {
	score := confWeightPrediction * pred.Confidence
	if a.tables.HasDiseaseData(v.Gene) {
		score += confWeightDisease
	}
	if popKnown {
		score += confWeightPopulation
	}

	switch {
	case score >= confBandHigh:
		return ConfidenceHigh
	case score >= confBandModerate:
		return ConfidenceModerate
	default:
		return ConfidenceLow
	}
}

func isPathogenicCall(classification string) bool {
	return classification == predict.ClassPathogenic || classification == predict.ClassLikelyPathogenic
}

func patientSummary(gene, classification string) string {
	switch classification {
	case predict.ClassPathogenic:
		return fmt.Sprintf("Significant genetic change in %s gene increases health risks.", gene)
	case predict.ClassLikelyPathogenic:
		return fmt.Sprintf("Genetic change in %s likely affects health.", gene)
	case predict.ClassUncertain:
		return fmt.Sprintf("Genetic change in %s needs more research.", gene)
	case predict.ClassLikelyBenign:
		return fmt.Sprintf("Genetic change in %s unlikely to affect health.", gene)
	case predict.ClassBenign:
		return fmt.Sprintf("Common variation in %s with no health concerns.", gene)
	default:
		return "Discuss with healthcare provider."
	}
}
