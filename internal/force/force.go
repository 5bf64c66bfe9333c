package force

// Impl computes a force of type V from a read-only state S.
// Implementations must be pure: same state, same result, no side effects.
type Impl[V, S any] interface {
	Force(state *S) V
}

// EnergyImpl is optionally implemented alongside Impl by forces that can
// also report their potential energy.
type EnergyImpl[V, S any] interface {
	Energy(state *S) V
}

// Registrable is the constraint on values accepted by AddForce.
// Comparability is required so registries can be compared entry by entry.
type Registrable[V, S any] interface {
	comparable
	Impl[V, S]
}

// Between is a pair of objects an interaction is computed between.
// Target is the one affected by Source.
type Between[A, B any] struct {
	Target A
	Source B
}
