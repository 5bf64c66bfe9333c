package force

import (
	"context"
	"unsafe"

	"github.com/san-kum/forcekit/internal/backend"
	"github.com/san-kum/forcekit/internal/vector"
	"golang.org/x/sync/errgroup"
)

// Fold combines the forces registered for B left to right in registration
// order, starting from identity.
func Fold[B backend.Backend[V], V any, S any](r *Registry[S], state *S, identity V, add func(acc, x V) V) V {
	acc := identity
	var x V
	for _, e := range r.entries(backend.IDOf[B]()) {
		e.computeInto(state, unsafe.Pointer(&x))
		acc = add(acc, x)
	}
	return acc
}

// Sum adds up the forces registered for B. An empty bucket sums to zero.
func Sum[B backend.Backend[V], V vector.Scalar, S any](r *Registry[S], state *S) V {
	return Fold[B, V, S](r, state, 0, func(acc, x V) V { return acc + x })
}

// Aggregate adds up composite forces registered for B using V.Add.
func Aggregate[B backend.Backend[V], V vector.Additive[V], S any](r *Registry[S], state *S) V {
	var zero V
	return Fold[B, V, S](r, state, zero, func(acc, x V) V { return acc.Add(x) })
}

// FoldParallel evaluates the forces registered for B concurrently, at most
// limit at a time (no bound if limit <= 0), then folds the results in
// registration order. The result is bit-identical to Fold.
func FoldParallel[B backend.Backend[V], V any, S any](ctx context.Context, r *Registry[S], state *S, identity V, add func(acc, x V) V, limit int) (V, error) {
	entries := r.entries(backend.IDOf[B]())
	results := make([]V, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e.computeInto(state, unsafe.Pointer(&results[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return identity, err
	}

	acc := identity
	for _, x := range results {
		acc = add(acc, x)
	}
	return acc, nil
}

// FoldEnergy is Fold over the energies of forces that report one.
// Forces without an energy are skipped.
func FoldEnergy[B backend.Backend[V], V any, S any](r *Registry[S], state *S, identity V, add func(acc, x V) V) V {
	acc := identity
	var x V
	for _, e := range r.entries(backend.IDOf[B]()) {
		if e.computeEnergyInto(state, unsafe.Pointer(&x)) {
			acc = add(acc, x)
		}
	}
	return acc
}

// SumEnergy adds up the energies of the forces registered for B.
func SumEnergy[B backend.Backend[V], V vector.Scalar, S any](r *Registry[S], state *S) V {
	return FoldEnergy[B, V, S](r, state, 0, func(acc, x V) V { return acc + x })
}
