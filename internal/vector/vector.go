// Package vector defines the output types forces produce.
package vector

import (
	"fmt"
	"math"
)

// Scalar is a constraint for built-in numeric outputs. Zero is the additive identity.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Float is a constraint for floating-point precisions.
type Float interface {
	~float32 | ~float64
}

// Additive is implemented by composite outputs that can be accumulated.
// The zero value of V must be the additive identity.
type Additive[V any] interface {
	Add(V) V
}

// Vec3 is a three-component vector of precision T.
type Vec3[T Float] struct {
	X, Y, Z T
}

func NewVec3[T Float](x, y, z T) Vec3[T] {
	return Vec3[T]{X: x, Y: y, Z: z}
}

func (v Vec3[T]) Add(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3[T]) Sub(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3[T]) Scale(f T) Vec3[T] {
	return Vec3[T]{v.X * f, v.Y * f, v.Z * f}
}

func (v Vec3[T]) Dot(o Vec3[T]) T {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Norm is computed in float64 regardless of T.
func (v Vec3[T]) Norm() float64 {
	x, y, z := float64(v.X), float64(v.Y), float64(v.Z)
	return math.Sqrt(x*x + y*y + z*z)
}

func (v Vec3[T]) String() string {
	return fmt.Sprintf("(%g, %g, %g)", float64(v.X), float64(v.Y), float64(v.Z))
}

// Magnitude converts any supported output to a single float64 for display.
// Unsupported types yield NaN.
func Magnitude(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case Vec3[float64]:
		return x.Norm()
	case Vec3[float32]:
		return x.Norm()
	default:
		return math.NaN()
	}
}
