package rod

import (
	"context"
	"runtime"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"efazi/internal/reconcile"
	"efazi/internal/table"
)

// Pipeline runs the full batch: reconcile the three sources, then classify
// every merged row. Rows are classified concurrently (classification has no
// cross-row dependency) but the output preserves the join's row order so
// repeated runs diff cleanly.
type Pipeline struct {
	classifier *Classifier
}

// NewPipeline builds a pipeline with the given thresholds.
func NewPipeline(t Thresholds) *Pipeline {
	return &Pipeline{classifier: NewClassifier(t)}
}

// Classifier exposes the pipeline's classifier for single-row use.
func (p *Pipeline) Classifier() *Classifier {
	return p.classifier
}

// Run merges base against the two auxiliary sources and classifies every
// merged row. onRow, if non-nil, is called once per classified row (progress
// reporting); it must be safe for concurrent use.
func (p *Pipeline) Run(ctx context.Context, base, src1, src2 *table.Table, onRow func()) ([]OutcomeRecord, error) {
	runID := uuid.NewString()
	merged := reconcile.Merge(base, src1, src2)

	log.Info().
		Str("run", runID).
		Int("orders", len(base.Rows)).
		Int("merged", len(merged)).
		Msg("Classifying merged rows")

	out := make([]OutcomeRecord, len(merged))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, row := range merged {
		i, row := i, row
		g.Go(func() error {
			out[i] = p.classifier.Classify(row)
			if onRow != nil {
				onRow()
			}
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Str("run", runID).Int("rows", len(out)).Msg("Report complete")
	return out, nil
}
