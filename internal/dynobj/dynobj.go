// Package dynobj retrofits value equality and duplication onto values that are
// only reachable through an interface.
//
// Interface values in Go compare by dynamic type and value, but that comparison
// panics for non-comparable dynamic types and copies share any referenced
// memory. The helpers here make both operations explicit: an interface that
// embeds [Comparer] and [Cloner] can be compared and duplicated as a
// collection without knowing the concrete types behind it.
package dynobj

import "reflect"

// Comparer compares the receiver against an arbitrary value.
// It must return false whenever other has a different concrete type.
type Comparer interface {
	DynEqual(other any) bool
}

// Cloner produces an independent copy of the receiver as an I.
type Cloner[I any] interface {
	DynClone() I
}

// Equaler is implemented by types with their own notion of equality.
type Equaler[T any] interface {
	Equal(T) bool
}

// Cloneable is implemented by types that need more than a value copy to duplicate.
type Cloneable[T any] interface {
	Clone() T
}

// Equal reports whether other holds a T equal to self. A different dynamic
// type is never equal, even when the underlying bits coincide. When T is an
// interface type, values whose dynamic type cannot be compared with == are
// never equal.
func Equal[T comparable](self T, other any) bool {
	o, ok := other.(T)
	if !ok {
		return false
	}
	if eq, ok := any(self).(Equaler[T]); ok {
		return eq.Equal(o)
	}
	if !reflect.ValueOf(any(self)).Comparable() || !reflect.ValueOf(any(o)).Comparable() {
		return false
	}
	return self == o
}

// Clone duplicates v, preferring its Clone method when it has one.
func Clone[T any](v T) T {
	if c, ok := any(v).(Cloneable[T]); ok {
		return c.Clone()
	}
	return v
}

// Value adapts any comparable value to Comparer and Cloner.
type Value[T comparable] struct {
	V T
}

func Wrap[T comparable](v T) Value[T] {
	return Value[T]{V: v}
}

// DynEqual accepts either another Value[T] or a bare T.
func (v Value[T]) DynEqual(other any) bool {
	if o, ok := other.(Value[T]); ok {
		return Equal(v.V, any(o.V))
	}
	return Equal(v.V, other)
}

func (v Value[T]) DynClone() Comparer {
	return Value[T]{V: Clone(v.V)}
}

// SliceEqual compares two slices element-wise with DynEqual.
func SliceEqual[I Comparer](a, b []I) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].DynEqual(b[i]) {
			return false
		}
	}
	return true
}

// CloneSlice returns a new slice holding a DynClone of every element.
func CloneSlice[I Cloner[I]](s []I) []I {
	if s == nil {
		return nil
	}
	out := make([]I, len(s))
	for i, v := range s {
		out[i] = v.DynClone()
	}
	return out
}
