package script

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ByteArena/impulse2d"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ErrNotNumber is returned when a program leaves fx or fy holding something
// other than an int or a float.
var ErrNotNumber = errors.New("script: force component is not a number")

// Variables visible to every force program. fx and fy start out as the
// current standing force and are read back after the run.
var inputNames = []string{"t", "dt", "x", "y", "angle", "vx", "vy", "w", "fx", "fy"}

// Input is the body state a program sees for one step.
type Input struct {
	T               float64
	Dt              float64
	Position        impulse2d.Vec2
	Angle           float64
	Velocity        impulse2d.Vec2
	AngularVelocity float64
	Force           impulse2d.Vec2
}

// Output is what a program decided for one step.
type Output struct {
	Force impulse2d.Vec2
}

// ForceProgram is a tengo program compiled once and run every step.
// It is not safe for concurrent use.
type ForceProgram struct {
	name     string
	compiled *tengo.Compiled
}

// Compile compiles src as a force program. Only the math module can be imported.
func Compile(name string, src []byte) (*ForceProgram, error) {
	s := tengo.NewScript(src)
	for _, n := range inputNames {
		if err := s.Add(n, 0.0); err != nil {
			return nil, fmt.Errorf("script: %s: add %s: %w", name, n, err)
		}
	}
	s.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	return &ForceProgram{
		name:     name,
		compiled: compiled,
	}, nil
}

// Load reads and compiles a program from disk.
func Load(path string) (*ForceProgram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	return Compile(path, data)
}

func (p *ForceProgram) Name() string {
	return p.name
}

// Eval runs the program once against in.
func (p *ForceProgram) Eval(ctx context.Context, in Input) (Output, error) {
	values := map[string]float64{
		"t":     in.T,
		"dt":    in.Dt,
		"x":     in.Position.X,
		"y":     in.Position.Y,
		"angle": in.Angle,
		"vx":    in.Velocity.X,
		"vy":    in.Velocity.Y,
		"w":     in.AngularVelocity,
		"fx":    in.Force.X,
		"fy":    in.Force.Y,
	}
	for _, n := range inputNames {
		if err := p.compiled.Set(n, values[n]); err != nil {
			return Output{}, fmt.Errorf("script: %s: set %s: %w", p.name, n, err)
		}
	}

	if err := p.compiled.RunContext(ctx); err != nil {
		return Output{}, fmt.Errorf("script: run %s: %w", p.name, err)
	}

	fx, err := p.number("fx")
	if err != nil {
		return Output{}, err
	}
	fy, err := p.number("fy")
	if err != nil {
		return Output{}, err
	}

	return Output{Force: impulse2d.MakeVec2(fx, fy)}, nil
}

func (p *ForceProgram) number(name string) (float64, error) {
	v := p.compiled.Get(name)
	switch v.ValueType() {
	case "int", "float":
		return v.Float(), nil
	}
	return 0, fmt.Errorf("script: %s: %s is %s: %w", p.name, name, v.ValueType(), ErrNotNumber)
}
