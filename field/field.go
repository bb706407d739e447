// Package field simulates the decorative particle background: points that
// drift back to fixed rest positions on a spring, get pushed away by the
// pointer, and are joined by lines when they started close to each other.
//
// A Field is not safe for concurrent use. It is meant to be owned by the one
// goroutine that renders it; input handlers hand pointer updates to that
// goroutine instead of touching the field themselves.
package field

import (
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Particle is one point of the field.
type Particle struct {
	Rest  Vec3
	Pos   Vec3
	Vel   Vec3
	Color colorful.Color
}

// Connection joins two particles by index, A < B.
type Connection struct {
	A, B int
}

// Pointer is the pointer position in field space. An inactive pointer
// exerts no force.
type Pointer struct {
	Pos    Vec3
	Active bool
}

// NoPointer is the neutral pointer used before any input arrives.
var NoPointer = Pointer{}

// Field holds the particles and their precomputed connections.
type Field struct {
	params    Params
	particles []Particle
	links     []Connection
}

// New places p.Count particles uniformly inside the bounds box centred on
// the origin, colours them from the palette and links the close ones.
// Degenerate params (no particles, zero box) yield an empty field.
func New(p Params, rng *rand.Rand) *Field {
	f := &Field{params: p}
	if p.degenerate() {
		return f
	}
	palette, err := p.colors()
	if err != nil {
		return f
	}

	f.particles = make([]Particle, p.Count)
	for i := range f.particles {
		rest := Vec3{
			X: (rng.Float64() - 0.5) * p.Bounds.X,
			Y: (rng.Float64() - 0.5) * p.Bounds.Y,
			Z: (rng.Float64() - 0.5) * p.Bounds.Z,
		}
		f.particles[i] = Particle{
			Rest:  rest,
			Pos:   rest,
			Color: palette[rng.IntN(len(palette))],
		}
	}
	f.linkRest()
	return f
}

// FromRest builds a field from explicit rest positions. Colours are taken
// from the palette in order.
func FromRest(p Params, rest []Vec3) *Field {
	p.Count = len(rest)
	f := &Field{params: p}
	palette, err := p.colors()
	if err != nil || len(rest) == 0 {
		return f
	}
	f.particles = make([]Particle, len(rest))
	for i, r := range rest {
		f.particles[i] = Particle{Rest: r, Pos: r, Color: palette[i%len(palette)]}
	}
	f.linkRest()
	return f
}

// Link returns every pair of points closer than threshold. It is O(n²) and
// only meant for the few hundred points a background carries.
func Link(points []Vec3, threshold float64) []Connection {
	var out []Connection
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if points[i].Dist(points[j]) < threshold {
				out = append(out, Connection{A: i, B: j})
			}
		}
	}
	return out
}

// Force is the push magnitude felt at pos from a pointer at ptr:
// max(0, radius - distance).
func Force(pos, ptr Vec3, radius float64) float64 {
	return max(0, radius-pos.Dist(ptr))
}

// Step advances the field by one frame.
func (f *Field) Step(ptr Pointer) {
	if len(f.particles) == 0 {
		return
	}
	p := f.params
	for i := range f.particles {
		pt := &f.particles[i]

		if ptr.Active {
			away := pt.Pos.Sub(ptr.Pos)
			if force := max(0, p.InteractionRadius-away.Len()); force > 0 {
				dir := away.Normalize()
				if dir == (Vec3{}) {
					dir = Vec3{X: 1}
				}
				pt.Vel = pt.Vel.Add(dir.Scale(force * p.PushStrength))
			}
		}

		pt.Vel = pt.Vel.Add(pt.Rest.Sub(pt.Pos).Scale(p.Spring))
		pt.Vel = pt.Vel.Scale(p.Damping)
		pt.Pos = pt.Pos.Add(pt.Vel)
	}
}

func (f *Field) linkRest() {
	rest := make([]Vec3, len(f.particles))
	for i, pt := range f.particles {
		rest[i] = pt.Rest
	}
	f.links = Link(rest, f.params.LinkDistance)
}

// Len returns the number of particles.
func (f *Field) Len() int { return len(f.particles) }

// Particles returns the live particle slice. Callers must not retain it
// across Step calls from another goroutine.
func (f *Field) Particles() []Particle { return f.particles }

// Connections returns the connection set. It is fixed at construction:
// links join particles whose rest positions are close, however far the
// pointer has pushed them since.
func (f *Field) Connections() []Connection { return f.links }
