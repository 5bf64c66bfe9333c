// Package forces provides small reference forces over a [Frame] clock.
//
// They exist to drive the CLI, the live view and benchmarks; none of them
// models a particular physical system.
//
//   - [Constant]: the same value every step
//   - [Ramp]: grows linearly with time
//   - [Spring]: restoring force towards a rest position, with energy
//   - [Along]: lifts a scalar force onto a fixed direction
package forces
