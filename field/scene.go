package field

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Camera is a perspective camera on the +Z axis looking at the origin.
type Camera struct {
	Distance float64
	// FOV is the vertical field of view in degrees.
	FOV float64
}

// DefaultCamera matches the page background: z = 10, 60° fov.
var DefaultCamera = Camera{Distance: 10, FOV: 60}

const nearPlane = 0.1

func (c Camera) halfTan() float64 {
	return math.Tan(c.FOV * math.Pi / 360)
}

// Viewport returns the visible width and height of the z = 0 plane for a
// screen of w×h pixels.
func (c Camera) Viewport(w, h float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	vh := 2 * c.Distance * c.halfTan()
	return vh * w / h, vh
}

// MapPointer maps a screen position onto the z = 0 plane. A zero-sized
// screen yields NoPointer.
func (c Camera) MapPointer(sx, sy, w, h float64) Pointer {
	vw, vh := c.Viewport(w, h)
	if vw == 0 || vh == 0 {
		return NoPointer
	}
	nx := sx/w*2 - 1
	ny := -(sy/h*2 - 1)
	return Pointer{Pos: Vec3{X: nx * vw / 2, Y: ny * vh / 2}, Active: true}
}

// Project maps v to screen pixels. ok is false for points behind the near
// plane.
func (c Camera) Project(v Vec3, w, h float64) (x, y, depth float64, ok bool) {
	depth = c.Distance - v.Z
	if depth < nearPlane || w <= 0 || h <= 0 {
		return 0, 0, depth, false
	}
	t := c.halfTan()
	nx := v.X / (depth * t * w / h)
	ny := v.Y / (depth * t)
	return (nx + 1) / 2 * w, (1 - ny) / 2 * h, depth, true
}

// Point is a projected particle. Visible points are in front of the camera
// and on screen. Behind points have no screen position: X and Y are zero
// and nothing, links included, should be drawn from them.
type Point struct {
	X, Y    float32
	Depth   float32
	Visible bool
	Behind  bool
	Color   colorful.Color
}

// Frame is one rendered tick of a scene. Links index into Points.
type Frame struct {
	Seq    uint64
	Width  float64
	Height float64
	Angle  float64
	Points []Point
	Links  []Connection
}

// Empty reports whether the frame has nothing to draw.
func (fr Frame) Empty() bool { return len(fr.Points) == 0 }

// MarshalBinary encodes the frame as little-endian
// uint32 seq, uint32 n, then n pairs of float32 x, y.
// Points behind the camera are sent as a NaN pair.
func (fr Frame) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 8+8*len(fr.Points))
	binary.LittleEndian.PutUint32(buf[0:], uint32(fr.Seq))
	binary.LittleEndian.PutUint32(buf[4:], uint32(len(fr.Points)))
	nan := math.Float32bits(float32(math.NaN()))
	off := 8
	for _, p := range fr.Points {
		x, y := math.Float32bits(p.X), math.Float32bits(p.Y)
		if p.Behind {
			x, y = nan, nan
		}
		binary.LittleEndian.PutUint32(buf[off:], x)
		binary.LittleEndian.PutUint32(buf[off+4:], y)
		off += 8
	}
	return buf, nil
}

// Scene drives a field from wall-clock time and screen-space pointer input.
// Like Field it belongs to a single goroutine.
type Scene struct {
	field   *Field
	camera  Camera
	width   float64
	height  float64
	pointer Pointer
	elapsed time.Duration
	seq     uint64
}

// NewScene wraps f for a w×h screen.
func NewScene(f *Field, cam Camera, w, h float64) *Scene {
	return &Scene{field: f, camera: cam, width: w, height: h}
}

// Field returns the simulated field.
func (s *Scene) Field() *Field { return s.field }

// Resize changes the screen size. The pointer is dropped because its
// mapping no longer holds.
func (s *Scene) Resize(w, h float64) {
	s.width, s.height = w, h
	s.pointer = NoPointer
}

// Size returns the screen size.
func (s *Scene) Size() (float64, float64) { return s.width, s.height }

// PointerMoved records a pointer position in screen pixels.
func (s *Scene) PointerMoved(sx, sy float64) {
	s.pointer = s.camera.MapPointer(sx, sy, s.width, s.height)
}

// PointerLeft drops the pointer; particles settle back to rest.
func (s *Scene) PointerLeft() { s.pointer = NoPointer }

// Pointer returns the last mapped pointer in world space.
func (s *Scene) Pointer() Pointer { return s.pointer }

// Angle is the current Y rotation of the whole field.
func (s *Scene) Angle() float64 {
	return s.elapsed.Seconds() * s.field.params.RotationSpeed
}

// Advance moves the clock by dt, steps the field once and returns the
// resulting frame.
func (s *Scene) Advance(dt time.Duration) Frame {
	if dt > 0 {
		s.elapsed += dt
	}
	ptr := s.pointer
	if ptr.Active {
		// particles live in the rotated group; bring the pointer into it
		ptr.Pos = ptr.Pos.RotateY(-s.Angle())
	}
	s.field.Step(ptr)
	s.seq++
	return s.Snapshot()
}

// Snapshot projects the current particle positions without stepping.
func (s *Scene) Snapshot() Frame {
	fr := Frame{Seq: s.seq, Width: s.width, Height: s.height, Angle: s.Angle()}
	if s.field.Len() == 0 || s.width <= 0 || s.height <= 0 {
		return fr
	}
	angle := fr.Angle
	fr.Points = make([]Point, s.field.Len())
	for i, pt := range s.field.particles {
		x, y, depth, ok := s.camera.Project(pt.Pos.RotateY(angle), s.width, s.height)
		fr.Points[i] = Point{
			X:       float32(x),
			Y:       float32(y),
			Depth:   float32(depth),
			Visible: ok && x >= 0 && x < s.width && y >= 0 && y < s.height,
			Behind:  !ok,
			Color:   pt.Color,
		}
	}
	fr.Links = s.field.links
	return fr
}
