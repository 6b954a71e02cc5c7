package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/genoinsight/genoinsight/internal/features"
)

// Reference predictor implementations. Training happens offline in the
// model-management layer; these types only evaluate fixed coefficients, so
// Predict never has training side effects.

// LogisticModel is the interpretable baseline: a logistic regression over
// the raw feature vector.
type LogisticModel struct {
	Weights [features.Count]float64 `json:"weights"`
	Bias    float64                 `json:"bias"`
}

func (m *LogisticModel) Name() string { return "logistic_regression" }

func (m *LogisticModel) Predict(_ context.Context, fv features.Vector) (float64, error) {
	z := m.Bias
	for i, w := range m.Weights {
		z += w * fv[i]
	}
	return sigmoid(z), nil
}

// TreeNode is one node of a decision tree. Leaf nodes carry the predicted
// pathogenic probability; internal nodes route on feature <= threshold.
type TreeNode struct {
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *TreeNode `json:"left,omitempty"`
	Right     *TreeNode `json:"right,omitempty"`
	Leaf      bool      `json:"leaf,omitempty"`
	Value     float64   `json:"value,omitempty"`
}

func (n *TreeNode) eval(fv features.Vector) float64 {
	if n.Leaf {
		return n.Value
	}
	if fv[n.Feature] <= n.Threshold {
		return n.Left.eval(fv)
	}
	return n.Right.eval(fv)
}

// ForestModel is the primary production model: an averaged tree ensemble.
type ForestModel struct {
	Trees []*TreeNode `json:"trees"`
}

func (m *ForestModel) Name() string { return "random_forest" }

func (m *ForestModel) Predict(_ context.Context, fv features.Vector) (float64, error) {
	if len(m.Trees) == 0 {
		return 0, fmt.Errorf("forest model has no trees")
	}
	sum := 0.0
	for _, t := range m.Trees {
		sum += t.eval(fv)
	}
	return sum / float64(len(m.Trees)), nil
}

// Stump is a one-split decision stump used by the boosted model.
type Stump struct {
	Feature    int     `json:"feature"`
	Threshold  float64 `json:"threshold"`
	LeftValue  float64 `json:"left_value"`
	RightValue float64 `json:"right_value"`
}

func (s Stump) eval(fv features.Vector) float64 {
	if fv[s.Feature] <= s.Threshold {
		return s.LeftValue
	}
	return s.RightValue
}

// BoostedModel is the performance benchmark: additive stumps under a
// logistic link.
type BoostedModel struct {
	Bias         float64 `json:"bias"`
	LearningRate float64 `json:"learning_rate"`
	Stumps       []Stump `json:"stumps"`
}

func (m *BoostedModel) Name() string { return "gradient_boost" }

func (m *BoostedModel) Predict(_ context.Context, fv features.Vector) (float64, error) {
	z := m.Bias
	for _, s := range m.Stumps {
		z += m.LearningRate * s.eval(fv)
	}
	return sigmoid(z), nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// DefaultLogistic returns the baseline model with its shipped coefficients.
func DefaultLogistic() *LogisticModel {
	return &LogisticModel{
		Weights: [features.Count]float64{0.55, -45.0, 0.02, 1.2, 1.5},
		Bias:    -4.5,
	}
}

// DefaultForest returns the primary model with its shipped trees.
func DefaultForest() *ForestModel {
	leaf := func(v float64) *TreeNode { return &TreeNode{Leaf: true, Value: v} }
	return &ForestModel{
		Trees: []*TreeNode{
			{
				// Rare variants split on consequence severity.
				Feature: features.IdxCohortAF, Threshold: 0.001,
				Left: &TreeNode{
					Feature: features.IdxConsequenceScore, Threshold: 7,
					Left: &TreeNode{
						Feature: features.IdxIsCoding, Threshold: 0.5,
						Left:  leaf(0.45),
						Right: leaf(0.70),
					},
					Right: leaf(0.95),
				},
				Right: &TreeNode{
					Feature: features.IdxCohortAF, Threshold: 0.05,
					Left:    leaf(0.30),
					Right:   leaf(0.05),
				},
			},
			{
				Feature: features.IdxConsequenceScore, Threshold: 8,
				Left: &TreeNode{
					Feature: features.IdxConsequenceScore, Threshold: 5,
					Left:    leaf(0.15),
					Right: &TreeNode{
						Feature: features.IdxGeneConstraint, Threshold: 0.8,
						Left:    leaf(0.55),
						Right:   leaf(0.80),
					},
				},
				Right: leaf(0.90),
			},
			{
				Feature: features.IdxIsCoding, Threshold: 0.5,
				Left: &TreeNode{
					Feature: features.IdxCohortAF, Threshold: 0.0005,
					Left:    leaf(0.50),
					Right:   leaf(0.10),
				},
				Right: &TreeNode{
					Feature: features.IdxCohortAF, Threshold: 0.01,
					Left:    leaf(0.85),
					Right:   leaf(0.20),
				},
			},
		},
	}
}

// DefaultBoosted returns the benchmark model with its shipped stumps.
func DefaultBoosted() *BoostedModel {
	return &BoostedModel{
		Bias:         -1.0,
		LearningRate: 0.3,
		Stumps: []Stump{
			{Feature: features.IdxConsequenceScore, Threshold: 7.5, LeftValue: -1.2, RightValue: 2.4},
			{Feature: features.IdxCohortAF, Threshold: 0.005, LeftValue: 1.8, RightValue: -2.2},
			{Feature: features.IdxIsCoding, Threshold: 0.5, LeftValue: -0.8, RightValue: 1.0},
			{Feature: features.IdxGeneConstraint, Threshold: 0.75, LeftValue: -0.2, RightValue: 0.9},
			{Feature: features.IdxQualityScore, Threshold: 30, LeftValue: -0.5, RightValue: 0.3},
		},
	}
}

// DefaultPredictors returns the shipped three-model set, primary first.
func DefaultPredictors() (primary Predictor, extra []Predictor) {
	return DefaultForest(), []Predictor{DefaultLogistic(), DefaultBoosted()}
}

// modelFile is the on-disk envelope for persisted model coefficients.
type modelFile struct {
	Forest   *ForestModel   `json:"random_forest,omitempty"`
	Logistic *LogisticModel `json:"logistic_regression,omitempty"`
	Boosted  *BoostedModel  `json:"gradient_boost,omitempty"`
}

// SaveModels writes model coefficients to a JSON file, creating parent
// directories as needed.
func SaveModels(path string, forest *ForestModel, logistic *LogisticModel, boosted *BoostedModel) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create model directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(modelFile{Forest: forest, Logistic: logistic, Boosted: boosted}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal models: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write model file: %w", err)
	}
	return nil
}

// LoadModels reads persisted model coefficients. Models absent from the file
// fall back to the shipped defaults, so a host can override just one model.
func LoadModels(path string) (primary Predictor, extra []Predictor, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read model file: %w", err)
	}

	var mf modelFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, nil, fmt.Errorf("parse model file %s: %w", path, err)
	}

	if mf.Forest == nil {
		mf.Forest = DefaultForest()
	}
	if mf.Logistic == nil {
		mf.Logistic = DefaultLogistic()
	}
	if mf.Boosted == nil {
		mf.Boosted = DefaultBoosted()
	}

	return mf.Forest, []Predictor{mf.Logistic, mf.Boosted}, nil
}
