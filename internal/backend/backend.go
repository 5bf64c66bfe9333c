package backend

import (
	"reflect"

	"github.com/san-kum/forcekit/internal/device"
)

// Backend is a compute target producing values of type V.
type Backend[V any] interface {
	Name() string
	Device() device.Device
	Available() bool
	// Vector returns the zero value of the output type. It ties the backend
	// to V so a query for the wrong output type does not compile.
	Vector() V
}

// ID is the dispatch key of a backend instantiation.
// The zero ID names no backend.
type ID struct {
	t reflect.Type
}

// IDOf returns the process-wide identity of backend type B.
func IDOf[B any]() ID {
	return ID{t: reflect.TypeFor[B]()}
}

func (id ID) IsZero() bool { return id.t == nil }

func (id ID) String() string {
	if id.t == nil {
		return "<none>"
	}
	return id.t.String()
}

// Info is a static description of a backend instantiation.
type Info struct {
	ID        ID
	Name      string
	Device    device.ID
	Vector    string
	Available bool
}

// Describe reports the static properties of B.
func Describe[B Backend[V], V any]() Info {
	var b B
	return Info{
		ID:        IDOf[B](),
		Name:      b.Name(),
		Device:    b.Device().ID(),
		Vector:    reflect.TypeFor[V]().String(),
		Available: b.Available(),
	}
}

// PreferredKind returns the fastest device kind present on this host.
func PreferredKind() device.Kind {
	if cudaDeviceCount() > 0 {
		return device.KindCUDA
	}
	return device.KindCPU
}
