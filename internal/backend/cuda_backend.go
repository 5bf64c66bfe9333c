package backend

import "github.com/san-kum/forcekit/internal/device"

// CUDA runs forces on the first CUDA device and produces V.
type CUDA[V any] struct{}

func (CUDA[V]) Name() string          { return "CUDA" }
func (CUDA[V]) Device() device.Device { return device.CUDA{Index: 0} }
func (CUDA[V]) Available() bool       { return cudaDeviceCount() > 0 }
func (CUDA[V]) Vector() V {
	var zero V
	return zero
}
