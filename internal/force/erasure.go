package force

import (
	"fmt"
	"unsafe"

	"github.com/san-kum/forcekit/internal/backend"
	"github.com/san-kum/forcekit/internal/dynobj"
)

// Erased is one registered force with its backend, behind a uniform interface.
// The unexported methods seal the interface to this package.
type Erased[S any] interface {
	dynobj.Comparer
	dynobj.Cloner[Erased[S]]
	fmt.Stringer

	// BackendID returns the dispatch key this entry was registered under.
	BackendID() backend.ID
	Backend() backend.Info
	// ComputeBoxed evaluates the force and boxes the result.
	ComputeBoxed(state *S) any
	// HasEnergy reports whether the force also implements EnergyImpl.
	HasEnergy() bool
	// EnergyBoxed evaluates the energy, or returns false if the force has none.
	EnergyBoxed(state *S) (any, bool)

	// computeInto writes exactly one backend Vector at dst.
	// dst must point to a live value of that type owned by the caller.
	computeInto(state *S, dst unsafe.Pointer)
	computeEnergyInto(state *S, dst unsafe.Pointer) bool
}

type erased[F Registrable[V, S], B backend.Backend[V], V, S any] struct {
	impl F
	info backend.Info
}

func newErased[F Registrable[V, S], B backend.Backend[V], V, S any](f F) *erased[F, B, V, S] {
	return &erased[F, B, V, S]{
		impl: f,
		info: backend.Describe[B, V](),
	}
}

func (e *erased[F, B, V, S]) BackendID() backend.ID { return e.info.ID }
func (e *erased[F, B, V, S]) Backend() backend.Info { return e.info }

func (e *erased[F, B, V, S]) ComputeBoxed(state *S) any {
	return e.impl.Force(state)
}

func (e *erased[F, B, V, S]) HasEnergy() bool {
	_, ok := any(e.impl).(EnergyImpl[V, S])
	return ok
}

func (e *erased[F, B, V, S]) EnergyBoxed(state *S) (any, bool) {
	en, ok := any(e.impl).(EnergyImpl[V, S])
	if !ok {
		return nil, false
	}
	return en.Energy(state), true
}

func (e *erased[F, B, V, S]) computeInto(state *S, dst unsafe.Pointer) {
	//nolint:gosec // dst is a *V allocated by the registry for this entry's bucket
	*(*V)(dst) = e.impl.Force(state)
}

func (e *erased[F, B, V, S]) computeEnergyInto(state *S, dst unsafe.Pointer) bool {
	en, ok := any(e.impl).(EnergyImpl[V, S])
	if !ok {
		return false
	}
	//nolint:gosec // see computeInto
	*(*V)(dst) = en.Energy(state)
	return true
}

// DynEqual is true only for an entry of the same force type registered for
// the same backend with an equal force value.
func (e *erased[F, B, V, S]) DynEqual(other any) bool {
	o, ok := other.(*erased[F, B, V, S])
	if !ok {
		return false
	}
	return dynobj.Equal(e.impl, any(o.impl))
}

func (e *erased[F, B, V, S]) DynClone() Erased[S] {
	return &erased[F, B, V, S]{
		impl: dynobj.Clone(e.impl),
		info: e.info,
	}
}

func (e *erased[F, B, V, S]) String() string {
	return fmt.Sprintf("%T@%s", e.impl, e.info.ID)
}
