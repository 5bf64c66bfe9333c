// Package system owns the force registry of one simulation session.
//
// A [System] is created empty, receives force registrations while a scene is
// set up, and is queried once per step for whichever backend the caller runs
// on. Independent replicas (for ensembles) are made with [System.Replicate];
// each replica holds its own registry.
//
// System instances are NOT thread-safe.
package system

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/san-kum/forcekit/internal/backend"
	"github.com/san-kum/forcekit/internal/force"
	"github.com/san-kum/forcekit/internal/vector"
)

type System[S any] struct {
	ID     uuid.UUID
	step   uint64
	forces *force.Registry[S]
	// base is the caller's logger; logger adds this session's ID.
	base   *slog.Logger
	logger *slog.Logger
}

// New creates a session with an empty registry. A nil logger discards output.
func New[S any](logger *slog.Logger) *System[S] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	id := uuid.New()
	sessLogger := logger.With("session", id.String())
	return &System[S]{
		ID:     id,
		forces: force.NewRegistry[S](sessLogger),
		base:   logger,
		logger: sessLogger,
	}
}

// AddForce registers f for backend B in the session's registry.
func AddForce[B backend.Backend[V], V any, S any, F force.Registrable[V, S]](s *System[S], f F) {
	force.AddForce[B, V](s.forces, f)
}

// ComputeFirst queries the first force registered for B.
func ComputeFirst[B backend.Backend[V], V any, S any](s *System[S], state *S) (V, bool) {
	return force.ComputeFirst[B, V](s.forces, state)
}

// Sum adds up every force registered for B.
func Sum[B backend.Backend[V], V vector.Scalar, S any](s *System[S], state *S) V {
	return force.Sum[B, V](s.forces, state)
}

// Aggregate adds up every composite force registered for B.
func Aggregate[B backend.Backend[V], V vector.Additive[V], S any](s *System[S], state *S) V {
	return force.Aggregate[B, V](s.forces, state)
}

// Forces exposes the registry for read access and folds.
func (s *System[S]) Forces() *force.Registry[S] { return s.forces }

// Step returns the number of completed steps.
func (s *System[S]) Step() uint64 { return s.step }

// Advance completes one step and returns the new step count.
func (s *System[S]) Advance() uint64 {
	s.step++
	return s.step
}

// Reset clears every registration and rewinds the step counter.
func (s *System[S]) Reset() {
	s.forces.Clear()
	s.step = 0
	s.logger.Info("session reset")
}

// Replicate returns n independent copies of the session. Each replica has
// its own ID, a cloned registry logging under that ID, and the current
// step count.
func (s *System[S]) Replicate(n int) []*System[S] {
	out := make([]*System[S], n)
	for i := range out {
		id := uuid.New()
		logger := s.base.With("session", id.String(), "parent", s.ID.String())
		out[i] = &System[S]{
			ID:     id,
			step:   s.step,
			forces: s.forces.CloneWithLogger(logger),
			base:   s.base,
			logger: logger,
		}
	}
	s.logger.Debug("session replicated", "replicas", n, "forces", s.forces.Len())
	return out
}
