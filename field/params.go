package field

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ErrInvalidParams is wrapped by every validation failure of Params.
var ErrInvalidParams = errors.New("invalid field params")

// Params configures a particle field. Distances are in model units and
// per-frame coefficients are applied once per Step.
type Params struct {
	Count             int      `yaml:"count"`
	Bounds            Vec3     `yaml:"bounds"`
	Palette           []string `yaml:"palette"`
	LinkDistance      float64  `yaml:"link_distance"`
	InteractionRadius float64  `yaml:"interaction_radius"`
	PushStrength      float64  `yaml:"push_strength"`
	Spring            float64  `yaml:"spring"`
	Damping           float64  `yaml:"damping"`
	// RotationSpeed is the Y rotation of the whole field in radians per second.
	RotationSpeed float64 `yaml:"rotation_speed"`
}

// DefaultParams returns the parameters of the portfolio background.
func DefaultParams() Params {
	return Params{
		Count:             100,
		Bounds:            Vec3{X: 15, Y: 15, Z: 10},
		Palette:           []string{"#22d3ee", "#3b82f6", "#8b5cf6"},
		LinkDistance:      3.5,
		InteractionRadius: 2,
		PushStrength:      0.05,
		Spring:            0.02,
		Damping:           0.9,
		RotationSpeed:     0.05,
	}
}

// Validate reports the first parameter outside its allowed range.
func (p Params) Validate() error {
	switch {
	case p.Count < 0:
		return fmt.Errorf("%w: count %d is negative", ErrInvalidParams, p.Count)
	case p.Bounds.X < 0 || p.Bounds.Y < 0 || p.Bounds.Z < 0:
		return fmt.Errorf("%w: bounds %+v has a negative side", ErrInvalidParams, p.Bounds)
	case p.Damping <= 0 || p.Damping >= 1:
		return fmt.Errorf("%w: damping %g must be in (0,1)", ErrInvalidParams, p.Damping)
	case p.Spring < 0:
		return fmt.Errorf("%w: spring %g is negative", ErrInvalidParams, p.Spring)
	case p.InteractionRadius < 0:
		return fmt.Errorf("%w: interaction radius %g is negative", ErrInvalidParams, p.InteractionRadius)
	case p.LinkDistance < 0:
		return fmt.Errorf("%w: link distance %g is negative", ErrInvalidParams, p.LinkDistance)
	}
	if _, err := p.colors(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// degenerate reports whether the params describe a field with nothing to draw.
func (p Params) degenerate() bool {
	return p.Count == 0 || p.Bounds == (Vec3{})
}

func (p Params) colors() ([]colorful.Color, error) {
	if len(p.Palette) == 0 {
		return []colorful.Color{{R: 1, G: 1, B: 1}}, nil
	}
	out := make([]colorful.Color, 0, len(p.Palette))
	for _, hex := range p.Palette {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette color %q: %w", hex, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// DecodeParams reads YAML params on top of DefaultParams, so a file only
// needs to name the values it changes.
func DecodeParams(r io.Reader) (Params, error) {
	p := DefaultParams()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Params{}, fmt.Errorf("decode field params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// LoadParams reads params from a YAML file. An empty path yields the defaults.
func LoadParams(path string) (Params, error) {
	if path == "" {
		return DefaultParams(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Params{}, fmt.Errorf("open field params: %w", err)
	}
	defer f.Close()
	return DecodeParams(f)
}
