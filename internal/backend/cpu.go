package backend

import "github.com/san-kum/forcekit/internal/device"

// CPU runs forces on the host and produces V.
type CPU[V any] struct{}

func (CPU[V]) Name() string          { return "CPU" }
func (CPU[V]) Device() device.Device { return device.CPU{} }
func (CPU[V]) Available() bool       { return true }
func (CPU[V]) Vector() V {
	var zero V
	return zero
}
