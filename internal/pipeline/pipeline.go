// Package pipeline runs the per-variant scoring and annotation flow over a
// worker pool. Each variant's extract -> score -> annotate transformation is
// pure and independent, so a batch parallelizes freely; only the read-only
// knowledge tables are shared.
package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/genoinsight/genoinsight/internal/clinical"
	"github.com/genoinsight/genoinsight/internal/features"
	"github.com/genoinsight/genoinsight/internal/predict"
	"github.com/genoinsight/genoinsight/internal/vcf"
)

// Pipeline wires the feature extractor, ensemble scorer and clinical
// annotator into a batch processor.
type Pipeline struct {
	extractor *features.Extractor
	scorer    *predict.Scorer
	annotator *clinical.Annotator
	mode      predict.Mode
	workers   int
	logger    *zap.Logger
}

// New creates a pipeline in single-predictor mode with one worker per CPU.
func New(extractor *features.Extractor, scorer *predict.Scorer, annotator *clinical.Annotator) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		scorer:    scorer,
		annotator: annotator,
		mode:      predict.ModeSingle,
		logger:    zap.NewNop(),
	}
}

// SetMode selects single or ensemble scoring.
func (p *Pipeline) SetMode(mode predict.Mode) {
	p.mode = mode
}

// SetWorkers overrides the worker count. Zero or negative means NumCPU.
func (p *Pipeline) SetWorkers(n int) {
	p.workers = n
}

// SetLogger sets the logger for per-variant warnings.
func (p *Pipeline) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Process scores and annotates a single variant.
func (p *Pipeline) Process(ctx context.Context, v *vcf.Variant, ancestry string) (*clinical.Annotation, error) {
	fv := p.extractor.Extract(v)

	pred, err := p.scorer.Score(ctx, v.ID, fv, p.mode)
	if err != nil {
		return nil, fmt.Errorf("score variant %s: %w", v.ID, err)
	}

	ann, err := p.annotator.Annotate(v, pred, ancestry)
	if err != nil {
		return nil, fmt.Errorf("annotate variant %s: %w", v.ID, err)
	}

	return ann, nil
}

// workItem holds a variant queued for processing.
type workItem struct {
	seq     int
	variant *vcf.Variant
}

// workResult holds the annotation output for a single variant.
type workResult struct {
	seq     int
	variant *vcf.Variant
	ann     *clinical.Annotation
	err     error
}

// Result is the outcome of a batch run. Annotations appear in source order.
// Failed counts variants whose predictor or annotation failed (logged and
// skipped). Truncated is set when the context deadline cut the batch short;
// the partial annotations are still valid.
type Result struct {
	Annotations []*clinical.Annotation
	Failed      int
	Truncated   bool
}

// Run processes every variant from the source concurrently and collects the
// annotations in source order. A context cancellation stops the intake of
// new variants rather than aborting in-flight annotations, so partial
// results are always safe to use.
func (p *Pipeline) Run(ctx context.Context, src vcf.VariantSource, ancestry string) (*Result, error) {
	workers := p.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	items := make(chan workItem, 2*workers)
	var srcErr error
	truncated := false

	go func() {
		defer close(items)
		seq := 0
		for {
			if ctx.Err() != nil {
				truncated = true
				return
			}
			v, err := src.Next()
			if err != nil {
				srcErr = fmt.Errorf("read variant: %w", err)
				return
			}
			if v == nil {
				return
			}
			items <- workItem{seq: seq, variant: v}
			seq++
		}
	}()

	results := p.runWorkers(ctx, items, ancestry, workers)

	res := &Result{}
	collectOrdered(results, func(r workResult) {
		if r.err != nil {
			res.Failed++
			p.logger.Warn("failed to process variant",
				zap.String("variant_id", r.variant.ID),
				zap.Error(r.err))
			return
		}
		res.Annotations = append(res.Annotations, r.ann)
	})

	if srcErr != nil {
		return nil, srcErr
	}
	res.Truncated = truncated
	return res, nil
}

// runWorkers processes items using a pool of workers. Results arrive in
// completion order; collectOrdered restores sequence order.
func (p *Pipeline) runWorkers(ctx context.Context, items <-chan workItem, ancestry string, workers int) <-chan workResult {
	results := make(chan workResult, 2*workers)

	done := make(chan struct{})
	for range workers {
		go func() {
			defer func() { done <- struct{}{} }()
			for item := range items {
				ann, err := p.Process(ctx, item.variant, ancestry)
				results <- workResult{seq: item.seq, variant: item.variant, ann: ann, err: err}
			}
		}()
	}

	go func() {
		for range workers {
			<-done
		}
		close(results)
	}()

	return results
}

// collectOrdered calls fn for each result in sequence-number order,
// buffering out-of-order results until the next expected sequence arrives.
func collectOrdered(results <-chan workResult, fn func(workResult)) {
	pending := make(map[int]workResult)
	nextSeq := 0

	for r := range results {
		pending[r.seq] = r
		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			fn(rr)
		}
	}
}
