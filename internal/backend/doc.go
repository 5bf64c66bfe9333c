// Package backend describes the compute targets a force can be registered for.
//
// A backend pairs a device kind with an output ("Vector") type:
//
//   - [CPU]: host execution, always available
//   - [CUDA]: GPU execution, available when built with the cuda tag and a device is present
//
// Every instantiation is a distinct dispatch target, so CPU[float64] and
// CPU[float32] never share registrations:
//
//	backend.IDOf[backend.CPU[float64]]() != backend.IDOf[backend.CPU[float32]]()
//
// Build with CUDA support:
//
//	go build -tags cuda ./...
package backend
