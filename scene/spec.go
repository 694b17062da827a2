package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ByteArena/impulse2d"
	"gopkg.in/yaml.v3"
)

// Vec is a 2D vector written as a two element YAML sequence.
type Vec [2]float64

func (v Vec) Vec2() impulse2d.Vec2 {
	return impulse2d.MakeVec2(v[0], v[1])
}

func VecOf(v impulse2d.Vec2) Vec {
	return Vec{v.X, v.Y}
}

// Spec describes a world and everything in it.
type Spec struct {
	Name   string      `yaml:"name"`
	World  WorldSpec   `yaml:"world"`
	Bodies []BodySpec  `yaml:"bodies"`
	Joints []JointSpec `yaml:"joints,omitempty"`
	Run    RunSpec     `yaml:"run,omitempty"`

	// Directory that relative script paths are resolved against.
	Dir string `yaml:"-"`
}

// WorldSpec holds the solver settings. Zero values select the defaults.
type WorldSpec struct {
	Dt         float64 `yaml:"dt,omitempty"`
	Iterations int     `yaml:"iterations,omitempty"`
	Beta       float64 `yaml:"beta,omitempty"`
}

type RunSpec struct {
	Duration float64 `yaml:"duration,omitempty"`
}

// BodySpec describes one body. Exactly one of Shape and Box is set.
//
// Mass comes from Density times the polygon area when Density is set, else
// from Mass, else 1, and is never below MinMass. Inertia defaults to the
// polygon moment about the body origin.
type BodySpec struct {
	Name            string      `yaml:"name"`
	Shape           []Vec       `yaml:"shape,omitempty"`
	Box             *Vec        `yaml:"box,omitempty"`
	Center          Vec         `yaml:"center"`
	Angle           float64     `yaml:"angle,omitempty"`
	Static          bool        `yaml:"static,omitempty"`
	Mass            *float64    `yaml:"mass,omitempty"`
	Density         *float64    `yaml:"density,omitempty"`
	Inertia         *float64    `yaml:"inertia,omitempty"`
	Velocity        Vec         `yaml:"velocity"`
	AngularVelocity float64     `yaml:"angular_velocity,omitempty"`
	Recenter        bool        `yaml:"recenter,omitempty"`
	Forces          []ForceSpec `yaml:"forces,omitempty"`
}

// ForceSpec is a standing force. Without Vertex it acts at the center of
// mass. Script names a tengo file, Source holds a program inline; either one
// rewrites the force before every step.
type ForceSpec struct {
	Force  Vec    `yaml:"force"`
	Vertex *int   `yaml:"vertex,omitempty"`
	Script string `yaml:"script,omitempty"`
	Source string `yaml:"source,omitempty"`
}

// JointSpec pins vertex VertexA of body A to vertex VertexB of body B.
type JointSpec struct {
	A       string `yaml:"a"`
	VertexA int    `yaml:"vertex_a"`
	B       string `yaml:"b"`
	VertexB int    `yaml:"vertex_b"`
}

func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", path, err)
	}

	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	spec.Dir = filepath.Dir(path)

	return spec, nil
}

func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("scene: unmarshal: %w", err)
	}
	return &spec, nil
}

func Marshal(spec *Spec) ([]byte, error) {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("scene: marshal %s: %w", spec.Name, err)
	}
	return data, nil
}

// Settings returns the world settings with defaults filled in.
func (s WorldSpec) Settings() (dt float64, iterations int, beta float64) {
	dt, iterations, beta = s.Dt, s.Iterations, s.Beta
	if dt == 0 {
		dt = impulse2d.DefaultTimeStep
	}
	if iterations == 0 {
		iterations = impulse2d.DefaultIterations
	}
	if beta == 0 {
		beta = impulse2d.DefaultBaumgarte
	}
	return dt, iterations, beta
}

// BodyName returns the name a body is registered under.
func (s *Spec) BodyName(index int) string {
	if name := s.Bodies[index].Name; name != "" {
		return name
	}
	return fmt.Sprintf("body%d", index)
}

func (b *BodySpec) vertices() []impulse2d.Vec2 {
	if b.Box != nil {
		hw, hh := b.Box[0]/2, b.Box[1]/2
		return []impulse2d.Vec2{{X: hw, Y: -hh}, {X: -hw, Y: -hh}, {X: -hw, Y: hh}, {X: hw, Y: hh}}
	}

	res := make([]impulse2d.Vec2, len(b.Shape))
	for i, v := range b.Shape {
		res[i] = v.Vec2()
	}
	return res
}

func (b *BodySpec) vertexCount() int {
	if b.Box != nil {
		return 4
	}
	return len(b.Shape)
}
