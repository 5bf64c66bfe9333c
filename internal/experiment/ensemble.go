package experiment

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent experiments concurrently, one session each.
type Ensemble struct {
	registry *Registry
	logger   *slog.Logger
	limit    int
}

// NewEnsemble runs at most limit experiments at a time (no bound if
// limit <= 0).
func NewEnsemble(reg *Registry, limit int, logger *slog.Logger) *Ensemble {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Ensemble{registry: reg, logger: logger, limit: limit}
}

// Run returns one result per config, in config order. The first failure
// cancels the remaining runs.
func (e *Ensemble) Run(ctx context.Context, cfgs []Config) ([]*Result, error) {
	results := make([]*Result, len(cfgs))

	g, gctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}
	for i, cfg := range cfgs {
		g.Go(func() error {
			exp := New(cfg, e.logger.With("member", i))
			if err := exp.Setup(e.registry); err != nil {
				return err
			}
			res, err := exp.Run(gctx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
