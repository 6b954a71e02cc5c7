// Package predict scores feature vectors for pathogenicity.
// It defines the probability-predictor capability boundary and the ensemble
// scorer that aggregates predictor outputs into a classified prediction.
package predict

import (
	"context"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/genoinsight/genoinsight/internal/features"
)

// Predictor maps a feature vector to a pathogenicity probability in [0,1].
// Implementations must be safe for concurrent use and must not train or
// otherwise mutate themselves inside Predict.
type Predictor interface {
	Name() string
	Predict(ctx context.Context, fv features.Vector) (float64, error)
}

// Classification labels, ordered from most to least pathogenic.
const (
	ClassPathogenic       = "Pathogenic"
	ClassLikelyPathogenic = "Likely Pathogenic"
	ClassUncertain        = "Uncertain Significance"
	ClassLikelyBenign     = "Likely Benign"
	ClassBenign           = "Benign"
)

// Classification probability thresholds (lower bound inclusive).
const (
	ThresholdPathogenic       = 0.90
	ThresholdLikelyPathogenic = 0.70
	ThresholdUncertain        = 0.30
	ThresholdLikelyBenign     = 0.10
)

// Scoring modes.
type Mode string

const (
	ModeSingle   Mode = "single"
	ModeEnsemble Mode = "ensemble"
)

// Prediction is the scorer output for one variant.
type Prediction struct {
	VariantID             string             `json:"variant_id"`
	Classification        string             `json:"classification"`
	PathogenicProbability float64            `json:"pathogenic_probability"`
	// Confidence is max(p, 1-p): the distance of the probability from the
	// 0.5 midpoint, always >= 0.5. It is not a calibrated confidence
	// interval and must not be read as one; downstream tiers were tuned
	// against this exact definition.
	Confidence   float64            `json:"confidence"`
	ModelUsed    string             `json:"model_used"`
	FeaturesUsed map[string]float64 `json:"features_used"`
}

// Classify maps a probability to its classification label. Total over [0,1]:
// the five buckets partition the interval with no gaps or overlaps.
func Classify(p float64) string {
	switch {
	case p >= ThresholdPathogenic:
		return ClassPathogenic
	case p >= ThresholdLikelyPathogenic:
		return ClassLikelyPathogenic
	case p >= ThresholdUncertain:
		return ClassUncertain
	case p >= ThresholdLikelyBenign:
		return ClassLikelyBenign
	default:
		return ClassBenign
	}
}

// DefaultEnsembleSize is the predictor count a full ensemble expects.
const DefaultEnsembleSize = 3

// Scorer aggregates one or more predictors into a single classification.
// The first predictor is the primary and backs single-mode scoring.
type Scorer struct {
	predictors   []Predictor
	ensembleSize int
	logger       *zap.Logger
}

// NewScorer creates a scorer over the given predictors. The primary must be
// non-nil; extra predictors participate in ensemble mode only.
func NewScorer(primary Predictor, extra ...Predictor) *Scorer {
	return &Scorer{
		predictors:   append([]Predictor{primary}, extra...),
		ensembleSize: DefaultEnsembleSize,
		logger:       zap.NewNop(),
	}
}

// SetLogger sets the logger used to record ensemble degradation.
func (s *Scorer) SetLogger(l *zap.Logger) {
	s.logger = l
}

// SetEnsembleSize overrides the expected ensemble predictor count.
func (s *Scorer) SetEnsembleSize(n int) {
	if n > 0 {
		s.ensembleSize = n
	}
}

// Predictors returns the names of the available predictors, primary first.
func (s *Scorer) Predictors() []string {
	names := make([]string, len(s.predictors))
	for i, p := range s.predictors {
		names[i] = p.Name()
	}
	return names
}

// Score produces a classified prediction for one feature vector.
// Single mode uses the primary predictor. Ensemble mode invokes every
// predictor concurrently and takes the unweighted arithmetic mean; if fewer
// predictors than the expected ensemble size are available it degrades to
// single mode, recording the fallback in ModelUsed rather than failing.
// Probabilities are rounded to 3 decimals only at this output boundary.
func (s *Scorer) Score(ctx context.Context, variantID string, fv features.Vector, mode Mode) (*Prediction, error) {
	modelUsed := string(ModeSingle)

	var prob float64
	if mode == ModeEnsemble {
		if len(s.predictors) < s.ensembleSize {
			s.logger.Warn("ensemble degraded to single predictor",
				zap.String("variant_id", variantID),
				zap.Int("available", len(s.predictors)),
				zap.Int("expected", s.ensembleSize))
			p, err := s.predictors[0].Predict(ctx, fv)
			if err != nil {
				return nil, fmt.Errorf("predict %s: %w", s.predictors[0].Name(), err)
			}
			prob = p
		} else {
			p, err := s.predictAll(ctx, fv)
			if err != nil {
				return nil, err
			}
			prob = p
			modelUsed = string(ModeEnsemble)
		}
	} else {
		p, err := s.predictors[0].Predict(ctx, fv)
		if err != nil {
			return nil, fmt.Errorf("predict %s: %w", s.predictors[0].Name(), err)
		}
		prob = p
	}

	return &Prediction{
		VariantID:             variantID,
		Classification:        Classify(prob),
		PathogenicProbability: round3(prob),
		Confidence:            round3(math.Max(prob, 1-prob)),
		ModelUsed:             modelUsed,
		FeaturesUsed:          fv.Map(),
	}, nil
}

// predictAll invokes every predictor concurrently and returns the mean.
func (s *Scorer) predictAll(ctx context.Context, fv features.Vector) (float64, error) {
	probs := make([]float64, len(s.predictors))
	errs := make([]error, len(s.predictors))

	var wg sync.WaitGroup
	wg.Add(len(s.predictors))
	for i, p := range s.predictors {
		go func() {
			defer wg.Done()
			probs[i], errs[i] = p.Predict(ctx, fv)
		}()
	}
	wg.Wait()

	sum := 0.0
	for i, err := range errs {
		if err != nil {
			return 0, fmt.Errorf("predict %s: %w", s.predictors[i].Name(), err)
		}
		sum += probs[i]
	}

	return sum / float64(len(s.predictors)), nil
}

func round3(p float64) float64 {
	return math.Round(p*1000) / 1000
}
