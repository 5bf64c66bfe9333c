package force

type frame struct {
	step int
	x    float64
}

type constF64 struct {
	v float64
}

func (c constF64) Force(*frame) float64 { return c.v }

type constF32 struct {
	v float32
}

func (c constF32) Force(*frame) float32 { return c.v }

type constI8 struct {
	v int8
}

func (c constI8) Force(*frame) int8 { return c.v }

// spring reports both a restoring force and its potential energy.
type spring struct {
	k float64
}

func (s spring) Force(st *frame) float64  { return -s.k * st.x }
func (s spring) Energy(st *frame) float64 { return 0.5 * s.k * st.x * st.x }

// stepped depends on the state so tests can see it is actually read.
type stepped struct {
	scale float64
}

func (s stepped) Force(st *frame) float64 { return s.scale * float64(st.step) }

type body struct {
	mass float64
}

// pairForce acts on Target because of Source.
type pairForce struct {
	g float64
}

func (p pairForce) Force(st *Between[body, body]) float64 {
	return p.g * st.Target.mass * st.Source.mass
}

// weighted holds a slice, so it is only registrable behind an interface type.
type weighted struct {
	w []float64
}

func (s weighted) Force(*frame) float64 { return s.w[0] }
