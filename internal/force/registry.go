package force

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unsafe"

	"github.com/san-kum/forcekit/internal/backend"
	"github.com/san-kum/forcekit/internal/dynobj"
)

var discard = slog.New(slog.DiscardHandler)

type bucket[S any] struct {
	info    backend.Info
	entries []Erased[S]
}

// Registry holds registered forces grouped by backend.
// The zero value is an empty registry ready to use.
type Registry[S any] struct {
	buckets map[backend.ID]*bucket[S]
	logger  *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry[S any](logger *slog.Logger) *Registry[S] {
	return &Registry[S]{
		buckets: make(map[backend.ID]*bucket[S]),
		logger:  logger,
	}
}

func (r *Registry[S]) log() *slog.Logger {
	if r.logger == nil {
		return discard
	}
	return r.logger
}

// AddForce registers f for backend B. Registrations for the same backend
// keep their call order; the bucket is created on first use.
func AddForce[B backend.Backend[V], V any, S any, F Registrable[V, S]](r *Registry[S], f F) {
	r.add(newErased[F, B, V, S](f))
}

func (r *Registry[S]) add(e Erased[S]) {
	if r.buckets == nil {
		r.buckets = make(map[backend.ID]*bucket[S])
	}
	id := e.BackendID()
	b, ok := r.buckets[id]
	if !ok {
		b = &bucket[S]{info: e.Backend()}
		r.buckets[id] = b
	}
	b.entries = append(b.entries, e)
	r.log().Debug("force registered",
		"force", e.String(),
		"backend", id.String(),
		"position", len(b.entries)-1,
	)
}

func (r *Registry[S]) entries(id backend.ID) []Erased[S] {
	b, ok := r.buckets[id]
	if !ok {
		return nil
	}
	return b.entries
}

// ComputeFirst evaluates the first force registered for B.
// It reports false if B has no registrations.
func ComputeFirst[B backend.Backend[V], V any, S any](r *Registry[S], state *S) (V, bool) {
	var out V
	entries := r.entries(backend.IDOf[B]())
	if len(entries) == 0 {
		return out, false
	}
	entries[0].computeInto(state, unsafe.Pointer(&out))
	return out, true
}

// ComputeAll evaluates every force registered for B in registration order.
func ComputeAll[B backend.Backend[V], V any, S any](r *Registry[S], state *S) []V {
	entries := r.entries(backend.IDOf[B]())
	if len(entries) == 0 {
		return nil
	}
	out := make([]V, len(entries))
	for i, e := range entries {
		e.computeInto(state, unsafe.Pointer(&out[i]))
	}
	return out
}

// Count returns the number of forces registered for B.
func Count[B any, S any](r *Registry[S]) int {
	return len(r.entries(backend.IDOf[B]()))
}

// Entries returns the forces registered for B in registration order.
// The returned slice is a copy; the entries themselves are immutable.
func Entries[B any, S any](r *Registry[S]) []Erased[S] {
	entries := r.entries(backend.IDOf[B]())
	if len(entries) == 0 {
		return nil
	}
	out := make([]Erased[S], len(entries))
	copy(out, entries)
	return out
}

// BucketLen returns the number of forces registered under id.
func (r *Registry[S]) BucketLen(id backend.ID) int {
	return len(r.entries(id))
}

// Len returns the number of forces across all backends.
func (r *Registry[S]) Len() int {
	n := 0
	for _, b := range r.buckets {
		n += len(b.entries)
	}
	return n
}

// Backends describes every backend with at least one registration,
// ordered by backend ID.
func (r *Registry[S]) Backends() []backend.Info {
	infos := make([]backend.Info, 0, len(r.buckets))
	for _, b := range r.buckets {
		infos = append(infos, b.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID.String() < infos[j].ID.String()
	})
	return infos
}

// Clear drops every registration.
func (r *Registry[S]) Clear() {
	n := r.Len()
	r.buckets = make(map[backend.ID]*bucket[S])
	r.log().Debug("forces cleared", "dropped", n)
}

// Clone returns an independent copy. Registering into either afterwards
// does not affect the other.
func (r *Registry[S]) Clone() *Registry[S] {
	return r.CloneWithLogger(r.logger)
}

// CloneWithLogger is Clone with the copy logging to logger instead of the
// original's logger. A nil logger discards output.
func (r *Registry[S]) CloneWithLogger(logger *slog.Logger) *Registry[S] {
	c := &Registry[S]{
		buckets: make(map[backend.ID]*bucket[S], len(r.buckets)),
		logger:  logger,
	}
	for id, b := range r.buckets {
		c.buckets[id] = &bucket[S]{
			info:    b.info,
			entries: dynobj.CloneSlice(b.entries),
		}
	}
	return c
}

// Equal reports whether both registries hold equal forces for the same
// backends in the same order.
func (r *Registry[S]) Equal(o *Registry[S]) bool {
	if r == o {
		return true
	}
	if r == nil || o == nil {
		return false
	}
	if len(r.buckets) != len(o.buckets) {
		return false
	}
	for id, b := range r.buckets {
		ob, ok := o.buckets[id]
		if !ok || !dynobj.SliceEqual(b.entries, ob.entries) {
			return false
		}
	}
	return true
}

func (r *Registry[S]) String() string {
	var sb strings.Builder
	sb.WriteString("Registry{")
	for i, info := range r.Backends() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %d", info.ID, r.BucketLen(info.ID))
	}
	sb.WriteString("}")
	return sb.String()
}
