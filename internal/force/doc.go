// Package force registers pluggable force computations per backend and
// evaluates them uniformly.
//
// A force is any comparable value implementing [Impl] for one output type V
// and one state type S. It is registered for a backend B whose output type is
// V; the pair is erased behind [Erased] and stored in a [Registry] bucket keyed
// by B's identity:
//
//	reg := force.NewRegistry[Frame](logger)
//	force.AddForce[backend.CPU[float64], float64](reg, Gravity{G: 9.81})
//	f, ok := force.ComputeFirst[backend.CPU[float64], float64](reg, &frame)
//	total := force.Sum[backend.CPU[float64], float64](reg, &frame)
//
// Because the bucket key and the result type come from the same type
// arguments, asking for the wrong output type of a backend does not compile.
// Asking for a backend with no registrations is not an error: ComputeFirst
// reports false and folds return their identity.
//
// # Evaluation paths
//
// Every entry exposes two paths. [Erased.ComputeBoxed] returns the result as
// an interface value and is always safe to call. The registry itself uses an
// unexported path that writes the result straight into a typed destination it
// owns (a local or a slice slot), which avoids boxing. That path is not
// reachable from outside this package.
//
// # Ordering
//
// Buckets keep insertion order. Folds run left to right in that order, so
// floating-point results are reproducible only if registration order is.
// [FoldParallel] evaluates entries concurrently but still folds in order and
// returns the same bits as [Fold].
//
// # Thread Safety
//
// A Registry is NOT safe for concurrent mutation. Concurrent reads (including
// FoldParallel) are safe as long as no goroutine calls AddForce or Clear.
package force
