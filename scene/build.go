package scene

import (
	"context"
	"fmt"
	"math"
	"path/filepath"

	"github.com/ByteArena/impulse2d"
	"github.com/ByteArena/impulse2d/script"
	"github.com/jakecoffman/cp"
)

// MinMass is the smallest mass a dynamic body is given.
const MinMass = 0.001

// Scene is a world built from a Spec, with bodies indexed by name.
type Scene struct {
	Name     string
	World    *impulse2d.World
	Bodies   map[string]*impulse2d.Body
	Order    []string
	Joints   []*impulse2d.Joint
	Drivers  []*script.ForceDriver
	Duration float64

	stepCtx context.Context
	err     error
}

// Build validates spec and constructs its world. Script paths are resolved
// against spec.Dir.
func Build(spec *Spec) (*Scene, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	dt, iterations, beta := spec.World.Settings()
	s := &Scene{
		Name:     spec.Name,
		World:    impulse2d.NewWorld(dt, iterations, beta),
		Bodies:   make(map[string]*impulse2d.Body, len(spec.Bodies)),
		Order:    make([]string, 0, len(spec.Bodies)),
		Duration: spec.Run.Duration,
	}

	for i := range spec.Bodies {
		name := spec.BodyName(i)
		bs := &spec.Bodies[i]

		def := bodyDef(bs)
		def.UserData = name
		body := s.World.CreateBody(&def)
		s.Bodies[name] = body
		s.Order = append(s.Order, name)

		for k, fs := range bs.Forces {
			point := impulse2d.AtCenterOfMass
			if fs.Vertex != nil {
				point = impulse2d.AtVertex(*fs.Vertex)
			}
			id := body.AddForce(fs.Force.Vec2(), point)

			program, err := forceProgram(spec, name, k, fs)
			if err != nil {
				return nil, err
			}
			if program != nil {
				s.Drivers = append(s.Drivers, script.NewForceDriver(program, body, id))
			}
		}
	}

	for _, js := range spec.Joints {
		def := impulse2d.MakeJointDef()
		def.BodyA = s.Bodies[js.A]
		def.VertexA = js.VertexA
		def.BodyB = s.Bodies[js.B]
		def.VertexB = js.VertexB
		s.Joints = append(s.Joints, s.World.CreateJoint(&def))
	}

	if len(s.Drivers) > 0 {
		s.World.SetStepListener(impulse2d.StepListenerFuncs{Pre: s.applyDrivers})
	}

	return s, nil
}

func forceProgram(spec *Spec, body string, index int, fs ForceSpec) (*script.ForceProgram, error) {
	switch {
	case fs.Source != "":
		program, err := script.Compile(fmt.Sprintf("%s.forces[%d]", body, index), []byte(fs.Source))
		if err != nil {
			return nil, fmt.Errorf("scene: body %q: %w", body, err)
		}
		return program, nil
	case fs.Script != "":
		path := fs.Script
		if !filepath.IsAbs(path) && spec.Dir != "" {
			path = filepath.Join(spec.Dir, path)
		}
		program, err := script.Load(path)
		if err != nil {
			return nil, fmt.Errorf("scene: body %q: %w", body, err)
		}
		return program, nil
	}
	return nil, nil
}

func bodyDef(bs *BodySpec) impulse2d.BodyDef {
	def := impulse2d.MakeBodyDef()
	def.Shape = bs.vertices()
	def.Center = bs.Center.Vec2()
	def.Angle = bs.Angle
	def.LinearVelocity = bs.Velocity.Vec2()
	def.AngularVelocity = bs.AngularVelocity

	if bs.Recenter {
		centroid := cp.CentroidForPoly(len(def.Shape), toCP(def.Shape))
		offset := impulse2d.MakeVec2(centroid.X, centroid.Y)
		for i := range def.Shape {
			def.Shape[i] = impulse2d.Vec2Sub(def.Shape[i], offset)
		}
		def.Center = impulse2d.Vec2Add(def.Center, impulse2d.Vec2Mat22Mul(impulse2d.MakeMat22FromAngle(def.Angle), offset))
	}

	if bs.Static {
		def.InvMass = 0
		def.InvI = 0
		return def
	}

	mass, inertia := MassProperties(bs, def.Shape)
	def.InvMass = 1 / mass
	if inertia > 0 {
		def.InvI = 1 / inertia
	} else {
		def.InvI = 0
	}

	return def
}

// MassProperties returns the mass and the moment of inertia about the body
// origin for a dynamic body with the given local shape.
func MassProperties(bs *BodySpec, shape []impulse2d.Vec2) (mass float64, inertia float64) {
	switch {
	case bs.Density != nil:
		mass = *bs.Density * math.Abs(polygonArea(shape))
	case bs.Mass != nil:
		mass = *bs.Mass
	default:
		mass = 1
	}
	if mass < MinMass {
		mass = MinMass
	}

	switch {
	case bs.Inertia != nil:
		inertia = *bs.Inertia
	case bs.Box != nil:
		inertia = cp.MomentForBox(mass, bs.Box[0], bs.Box[1])
	default:
		inertia = cp.MomentForPoly(mass, len(shape), toCP(shape), cp.Vector{}, 0)
	}

	return mass, inertia
}

func polygonArea(shape []impulse2d.Vec2) float64 {
	if len(shape) < 3 {
		return 0
	}
	return cp.AreaForPoly(len(shape), toCP(shape), 0)
}

func toCP(shape []impulse2d.Vec2) []cp.Vector {
	res := make([]cp.Vector, len(shape))
	for i, v := range shape {
		res[i] = cp.Vector{X: v.X, Y: v.Y}
	}
	return res
}

func (s *Scene) applyDrivers(world *impulse2d.World) {
	if s.err != nil {
		return
	}
	ctx := s.stepCtx
	if ctx == nil {
		// World.Step called directly.
		ctx = context.Background()
	}
	for _, d := range s.Drivers {
		if err := d.Apply(ctx, world); err != nil {
			s.err = err
			return
		}
	}
}

// Step advances the world by one time step, running the force programs first.
// When a program fails the step still runs with that force left at its
// previous value. The error is returned and every later Step returns it
// without stepping.
func (s *Scene) Step(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	s.stepCtx = ctx
	s.World.Step()
	s.stepCtx = nil
	return s.err
}

// Steps returns how many steps cover duration seconds of simulated time.
func (s *Scene) Steps(duration float64) int {
	n := math.Ceil(duration/s.World.GetTimeStep() - 1e-9)
	if n < 0 {
		return 0
	}
	return int(n)
}

// Run steps the scene for duration seconds, or for the scene's own duration
// when duration is zero. onStep, if not nil, is called after every step and
// stops the run by returning an error.
func (s *Scene) Run(ctx context.Context, duration float64, onStep func(*Scene) error) error {
	if duration == 0 {
		duration = s.Duration
	}

	for i, n := 0, s.Steps(duration); i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(ctx); err != nil {
			return err
		}
		if onStep != nil {
			if err := onStep(s); err != nil {
				return err
			}
		}
	}

	return nil
}

// Body returns the named body.
func (s *Scene) Body(name string) (*impulse2d.Body, error) {
	b, ok := s.Bodies[name]
	if !ok {
		return nil, fmt.Errorf("scene: body %q: %w", name, ErrUnknownBody)
	}
	return b, nil
}
