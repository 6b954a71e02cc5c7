package predict

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genoinsight/genoinsight/internal/features"
)

// rareFrameshift is a high-severity, rare, coding, constrained-gene vector.
func rareFrameshift() features.Vector {
	var fv features.Vector
	fv[features.IdxConsequenceScore] = 10
	fv[features.IdxCohortAF] = 0.0001
	fv[features.IdxQualityScore] = 55
	fv[features.IdxIsCoding] = 1
	fv[features.IdxGeneConstraint] = 1.0
	return fv
}

// commonSynonymous is a low-severity, common, non-coding vector.
func commonSynonymous() features.Vector {
	var fv features.Vector
	fv[features.IdxConsequenceScore] = 2
	fv[features.IdxCohortAF] = 0.2
	fv[features.IdxQualityScore] = 50
	fv[features.IdxIsCoding] = 0
	fv[features.IdxGeneConstraint] = 0.1
	return fv
}

func TestDefaultModels_ProbabilityRange(t *testing.T) {
	ctx := context.Background()
	primary, extra := DefaultPredictors()

	vectors := []features.Vector{
		rareFrameshift(),
		commonSynonymous(),
		{}, // all zeros
		{3, 0.5, 100, 1, 0.5},
	}

	for _, p := range append([]Predictor{primary}, extra...) {
		for _, fv := range vectors {
			prob, err := p.Predict(ctx, fv)
			require.NoError(t, err, p.Name())
			assert.GreaterOrEqual(t, prob, 0.0, "%s on %v", p.Name(), fv)
			assert.LessOrEqual(t, prob, 1.0, "%s on %v", p.Name(), fv)
		}
	}
}

func TestDefaultModels_SeparatePathogenicFromBenign(t *testing.T) {
	ctx := context.Background()
	primary, extra := DefaultPredictors()

	for _, p := range append([]Predictor{primary}, extra...) {
		patho, err := p.Predict(ctx, rareFrameshift())
		require.NoError(t, err)
		benign, err := p.Predict(ctx, commonSynonymous())
		require.NoError(t, err)
		assert.Greater(t, patho, benign, "%s should rank the frameshift above the common synonymous", p.Name())
	}
}

func TestDefaultForest_KnownPaths(t *testing.T) {
	ctx := context.Background()
	forest := DefaultForest()

	// Rare severe coding variant hits the high leaves of every tree:
	// (0.95 + 0.90 + 0.85) / 3.
	prob, err := forest.Predict(ctx, rareFrameshift())
	require.NoError(t, err)
	assert.InDelta(t, 0.9, prob, 1e-9)

	// Common benign variant: (0.05 + 0.15 + 0.10) / 3.
	prob, err = forest.Predict(ctx, commonSynonymous())
	require.NoError(t, err)
	assert.InDelta(t, 0.1, prob, 1e-9)
}

func TestForestModel_Empty(t *testing.T) {
	forest := &ForestModel{}
	_, err := forest.Predict(context.Background(), rareFrameshift())
	assert.Error(t, err)
}

func TestModelNames(t *testing.T) {
	assert.Equal(t, "random_forest", DefaultForest().Name())
	assert.Equal(t, "logistic_regression", DefaultLogistic().Name())
	assert.Equal(t, "gradient_boost", DefaultBoosted().Name())
}

func TestSaveLoadModels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "coefficients.json")

	logistic := DefaultLogistic()
	logistic.Bias = -2.0
	require.NoError(t, SaveModels(path, DefaultForest(), logistic, DefaultBoosted()))

	primary, extra, err := LoadModels(path)
	require.NoError(t, err)
	require.Len(t, extra, 2)

	assert.Equal(t, "random_forest", primary.Name())
	loaded, ok := extra[0].(*LogisticModel)
	require.True(t, ok)
	assert.Equal(t, -2.0, loaded.Bias)

	// Loaded coefficients evaluate identically to the originals.
	ctx := context.Background()
	want, err := logistic.Predict(ctx, rareFrameshift())
	require.NoError(t, err)
	got, err := loaded.Predict(ctx, rareFrameshift())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadModels_PartialFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "only-logistic.json")
	logistic := DefaultLogistic()
	logistic.Weights[0] = 9.9
	require.NoError(t, SaveModels(path, nil, logistic, nil))

	primary, extra, err := LoadModels(path)
	require.NoError(t, err)

	// Missing sections come back as the shipped defaults.
	forest, ok := primary.(*ForestModel)
	require.True(t, ok)
	assert.Len(t, forest.Trees, len(DefaultForest().Trees))

	loaded, ok := extra[0].(*LogisticModel)
	require.True(t, ok)
	assert.Equal(t, 9.9, loaded.Weights[0])
}

func TestLoadModels_MissingFile(t *testing.T) {
	_, _, err := LoadModels(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
