package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genoinsight/genoinsight/internal/clinical"
	"github.com/genoinsight/genoinsight/internal/features"
	"github.com/genoinsight/genoinsight/internal/knowledge"
	"github.com/genoinsight/genoinsight/internal/predict"
	"github.com/genoinsight/genoinsight/internal/vcf"
)

func newTestPipeline() *Pipeline {
	tables := knowledge.Default()
	primary, extra := predict.DefaultPredictors()
	return New(
		features.NewExtractor(tables),
		predict.NewScorer(primary, extra...),
		clinical.NewAnnotator(tables),
	)
}

func makeVariant(i int) *vcf.Variant {
	return &vcf.Variant{
		ID:          fmt.Sprintf("chr1:%d:A>G", i),
		Chrom:       "chr1",
		Pos:         int64(i),
		Ref:         "A",
		Alt:         "G",
		Qual:        50,
		QualKnown:   true,
		Filter:      "PASS",
		Gene:        "TP53",
		Consequence: "missense_variant",
		CohortAF:    0.0001,
	}
}

func TestProcess(t *testing.T) {
	p := newTestPipeline()

	ann, err := p.Process(context.Background(), makeVariant(100), "European")
	require.NoError(t, err)

	assert.Equal(t, "chr1:100:A>G", ann.Variant.ID)
	assert.NotEmpty(t, ann.Prediction.Classification)
	assert.Equal(t, "single", ann.Prediction.ModelUsed)
	assert.NotEmpty(t, ann.Actionability)
}

func TestProcess_EnsembleMode(t *testing.T) {
	p := newTestPipeline()
	p.SetMode(predict.ModeEnsemble)

	ann, err := p.Process(context.Background(), makeVariant(100), "European")
	require.NoError(t, err)
	assert.Equal(t, "ensemble", ann.Prediction.ModelUsed)
}

func TestRun_PreservesSourceOrder(t *testing.T) {
	p := newTestPipeline()
	p.SetWorkers(4)

	var variants []*vcf.Variant
	for i := range 200 {
		variants = append(variants, makeVariant(i))
	}

	res, err := p.Run(context.Background(), vcf.NewSliceSource(variants), "European")
	require.NoError(t, err)
	require.Len(t, res.Annotations, 200)
	assert.Equal(t, 0, res.Failed)
	assert.False(t, res.Truncated)

	for i, ann := range res.Annotations {
		assert.Equal(t, variants[i].ID, ann.Variant.ID)
	}
}

func TestRun_EmptySource(t *testing.T) {
	p := newTestPipeline()

	res, err := p.Run(context.Background(), vcf.NewSliceSource(nil), "European")
	require.NoError(t, err)
	assert.Empty(t, res.Annotations)
	assert.Equal(t, 0, res.Failed)
}

// failingPredictor errors on a marked variant and returns a fixed
// probability otherwise.
type failingPredictor struct{}

func (f failingPredictor) Name() string { return "flaky" }

func (f failingPredictor) Predict(_ context.Context, fv features.Vector) (float64, error) {
	// The quality feature doubles as a marker: makeVariant sets 50, the
	// poisoned variant sets 51.
	if fv[features.IdxQualityScore] == 51 {
		return 0, errors.New("model failure")
	}
	return 0.5, nil
}

func TestRun_CountsFailuresAndContinues(t *testing.T) {
	tables := knowledge.Default()
	p := New(
		features.NewExtractor(tables),
		predict.NewScorer(failingPredictor{}),
		clinical.NewAnnotator(tables),
	)

	variants := []*vcf.Variant{makeVariant(1), makeVariant(2), makeVariant(3)}
	variants[1].Qual = 51 // poisoned

	res, err := p.Run(context.Background(), vcf.NewSliceSource(variants), "European")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Annotations, 2)
	assert.Equal(t, "chr1:1:A>G", res.Annotations[0].Variant.ID)
	assert.Equal(t, "chr1:3:A>G", res.Annotations[1].Variant.ID)
}

func TestRun_CancelledContextTruncates(t *testing.T) {
	p := newTestPipeline()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var variants []*vcf.Variant
	for i := range 50 {
		variants = append(variants, makeVariant(i))
	}

	res, err := p.Run(ctx, vcf.NewSliceSource(variants), "European")
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.Empty(t, res.Annotations)
}

// erroringSource fails after yielding a few variants.
type erroringSource struct {
	remaining int
}

func (s *erroringSource) Next() (*vcf.Variant, error) {
	if s.remaining == 0 {
		return nil, errors.New("read failure")
	}
	s.remaining--
	return makeVariant(s.remaining), nil
}

func TestRun_SourceErrorIsFatal(t *testing.T) {
	p := newTestPipeline()

	_, err := p.Run(context.Background(), &erroringSource{remaining: 3}, "European")
	assert.ErrorContains(t, err, "read failure")
}
