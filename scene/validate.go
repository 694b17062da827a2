package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/ByteArena/impulse2d"
)

var (
	ErrInvalidWorld    = errors.New("invalid world settings")
	ErrNoShape         = errors.New("body has no shape")
	ErrDegenerateShape = errors.New("shape has no area")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrDuplicateBody   = errors.New("duplicate body name")
	ErrUnknownBody     = errors.New("unknown body")
	ErrVertexRange     = errors.New("vertex index out of range")
	ErrScriptSource    = errors.New("force has both script and source")
	ErrUnknownPreset   = errors.New("unknown preset")
)

// Validate checks everything the engine itself takes on trust: finite
// numbers, vertex ranges, body references and solver settings.
func (s *Spec) Validate() error {
	dt, iterations, beta := s.World.Settings()
	if !impulse2d.IsValid(dt) || dt <= 0 {
		return fmt.Errorf("scene: dt %v: %w", dt, ErrInvalidWorld)
	}
	if iterations < 1 {
		return fmt.Errorf("scene: iterations %d: %w", iterations, ErrInvalidWorld)
	}
	if !impulse2d.IsValid(beta) || beta <= 0 || beta > 1 {
		return fmt.Errorf("scene: beta %v: %w", beta, ErrInvalidWorld)
	}
	if !impulse2d.IsValid(s.Run.Duration) || s.Run.Duration < 0 {
		return fmt.Errorf("scene: duration %v: %w", s.Run.Duration, ErrInvalidNumber)
	}

	names := make(map[string]int, len(s.Bodies))
	for i := range s.Bodies {
		name := s.BodyName(i)
		if _, ok := names[name]; ok {
			return fmt.Errorf("scene: body %q: %w", name, ErrDuplicateBody)
		}
		names[name] = i

		if err := s.Bodies[i].validate(); err != nil {
			return fmt.Errorf("scene: body %q: %w", name, err)
		}
	}

	for i, j := range s.Joints {
		a, ok := names[j.A]
		if !ok {
			return fmt.Errorf("scene: joint %d: body %q: %w", i, j.A, ErrUnknownBody)
		}
		b, ok := names[j.B]
		if !ok {
			return fmt.Errorf("scene: joint %d: body %q: %w", i, j.B, ErrUnknownBody)
		}
		if err := checkVertex(j.VertexA, s.Bodies[a].vertexCount()); err != nil {
			return fmt.Errorf("scene: joint %d: body %q: %w", i, j.A, err)
		}
		if err := checkVertex(j.VertexB, s.Bodies[b].vertexCount()); err != nil {
			return fmt.Errorf("scene: joint %d: body %q: %w", i, j.B, err)
		}
	}

	return nil
}

func (b *BodySpec) validate() error {
	if b.Box != nil && len(b.Shape) > 0 {
		return fmt.Errorf("both shape and box given: %w", ErrNoShape)
	}
	if b.Box == nil && len(b.Shape) == 0 {
		return ErrNoShape
	}
	if b.Box != nil && !(b.Box[0] > 0 && b.Box[1] > 0 && finite(b.Box[0], b.Box[1])) {
		return fmt.Errorf("box %v: %w", *b.Box, ErrInvalidNumber)
	}
	for i, v := range b.Shape {
		if !v.Vec2().IsValid() {
			return fmt.Errorf("vertex %d: %w", i, ErrInvalidNumber)
		}
	}

	if !finite(b.Center[0], b.Center[1], b.Angle, b.Velocity[0], b.Velocity[1], b.AngularVelocity) {
		return fmt.Errorf("pose or velocity: %w", ErrInvalidNumber)
	}
	for _, p := range []struct {
		name  string
		value *float64
	}{{"mass", b.Mass}, {"density", b.Density}, {"inertia", b.Inertia}} {
		if p.value != nil && (!finite(*p.value) || *p.value < 0) {
			return fmt.Errorf("%s %v: %w", p.name, *p.value, ErrInvalidNumber)
		}
	}

	needsArea := b.Recenter || (!b.Static && b.Density != nil) || (!b.Static && b.Inertia == nil && b.Box == nil)
	if needsArea && math.Abs(polygonArea(b.vertices())) == 0 {
		return ErrDegenerateShape
	}

	for i, f := range b.Forces {
		if !f.Force.Vec2().IsValid() {
			return fmt.Errorf("force %d: %w", i, ErrInvalidNumber)
		}
		if f.Vertex != nil {
			if err := checkVertex(*f.Vertex, b.vertexCount()); err != nil {
				return fmt.Errorf("force %d: %w", i, err)
			}
		}
		if f.Script != "" && f.Source != "" {
			return fmt.Errorf("force %d: %w", i, ErrScriptSource)
		}
	}

	return nil
}

func checkVertex(index, count int) error {
	if index < 0 || index >= count {
		return fmt.Errorf("vertex %d of %d: %w", index, count, ErrVertexRange)
	}
	return nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if !impulse2d.IsValid(v) {
			return false
		}
	}
	return true
}
