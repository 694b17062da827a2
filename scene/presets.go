package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/ByteArena/impulse2d"
)

var presets = map[string]func() *Spec{
	"unconstrained": UnconstrainedPreset,
	"chain":         ChainPreset,
}

// Preset returns a fresh copy of a built-in scene.
func Preset(name string) (*Spec, error) {
	f, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("scene: preset %q: %w", name, ErrUnknownPreset)
	}
	return f(), nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnconstrainedPreset is a single 2x2 box falling under gravity.
func UnconstrainedPreset() *Spec {
	mass := 1.0
	inertia := 1.0

	return &Spec{
		Name: "unconstrained",
		World: WorldSpec{
			Dt:         impulse2d.UnconstrainedTimeStep,
			Iterations: impulse2d.DefaultIterations,
			Beta:       impulse2d.DefaultBaumgarte,
		},
		Bodies: []BodySpec{
			{
				Name:    "box",
				Shape:   []Vec{{1, -1}, {-1, -1}, {-1, 1}, {1, 1}},
				Center:  Vec{0, 13},
				Mass:    &mass,
				Inertia: &inertia,
				Forces: []ForceSpec{
					{Force: Vec{0, -impulse2d.StandardGravity}},
				},
			},
		},
		Run: RunSpec{Duration: 1.5},
	}
}

// ChainPreset hangs 16 links at 45 degrees from a static bar, each pulled
// down by gravity, the last one also pulled sideways at its tip.
func ChainPreset() *Spec {
	const links = 16

	spec := &Spec{
		Name: "chain",
		World: WorldSpec{
			Dt:         impulse2d.DefaultTimeStep,
			Iterations: impulse2d.DefaultIterations,
			Beta:       impulse2d.DefaultBaumgarte,
		},
		Bodies: []BodySpec{
			{
				Name:   "ground",
				Shape:  []Vec{{10, -1}, {0, -1}, {-10, -1}, {-10, 1}, {10, 1}},
				Center: Vec{0, 15},
				Static: true,
			},
		},
		Run: RunSpec{Duration: 10},
	}

	d := math.Sqrt(2) / 2
	for i := 0; i < links; i++ {
		mass := 1.0 / 5
		inertia := 1.0 / 5
		spec.Bodies = append(spec.Bodies, BodySpec{
			Name:    fmt.Sprintf("link%d", i),
			Shape:   []Vec{{0, -0.5}, {-0.1, -0.3}, {-0.1, 0.3}, {0, 0.5}, {0.1, 0.3}, {0.1, -0.3}},
			Center:  Vec{d/2 + float64(i)*d, 14 - d/2 - float64(i)*d},
			Angle:   impulse2d.Pi / 4,
			Mass:    &mass,
			Inertia: &inertia,
			Forces: []ForceSpec{
				{Force: Vec{0, -impulse2d.StandardGravity}},
			},
		})
	}

	spec.Joints = append(spec.Joints, JointSpec{A: "ground", VertexA: 1, B: "link0", VertexB: 3})
	for i := 0; i < links-1; i++ {
		spec.Joints = append(spec.Joints, JointSpec{
			A:       fmt.Sprintf("link%d", i),
			VertexA: 0,
			B:       fmt.Sprintf("link%d", i+1),
			VertexB: 3,
		})
	}

	tip := 0
	last := &spec.Bodies[len(spec.Bodies)-1]
	last.Forces = append(last.Forces, ForceSpec{Force: Vec{1, 0}, Vertex: &tip})

	return spec
}
