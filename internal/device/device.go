// Package device names the compute targets forces run on.
package device

import "fmt"

// Kind is the family a device belongs to.
type Kind uint16

// Known device kinds. The numeric value is the TypeID of every ID of that kind.
const (
	KindCPU Kind = iota
	KindCUDA
	KindDistributed
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindCPU:
		return "CPU"
	case KindCUDA:
		return "CUDA"
	case KindDistributed:
		return "Distributed"
	default:
		return "Unknown"
	}
}

// ID uniquely names one physical or logical device instance.
// It is comparable and can be used as a map key.
type ID struct {
	TypeID  uint16
	IndexID uint32
}

func NewID(typeID uint16, indexID uint32) ID {
	return ID{TypeID: typeID, IndexID: indexID}
}

// Kind returns the device family encoded in TypeID.
func (id ID) Kind() Kind { return Kind(id.TypeID) }

func (id ID) String() string {
	return fmt.Sprintf("%d:%d", id.TypeID, id.IndexID)
}

// Device is implemented by every compute target.
type Device interface {
	ID() ID
	Kind() Kind
	String() string
}

// CPU is the host processor. There is exactly one.
type CPU struct{}

func (CPU) ID() ID         { return NewID(uint16(KindCPU), 0) }
func (CPU) Kind() Kind     { return KindCPU }
func (CPU) String() string { return "cpu" }

// CUDA is a GPU addressed by its CUDA ordinal.
type CUDA struct {
	Index uint32
}

func (c CUDA) ID() ID         { return NewID(uint16(KindCUDA), c.Index) }
func (c CUDA) Kind() Kind     { return KindCUDA }
func (c CUDA) String() string { return fmt.Sprintf("cuda:%d", c.Index) }
