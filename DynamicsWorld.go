package impulse2d

import (
	"fmt"
	"io"
)

/// The world class manages all physics entities and the dynamic simulation.
/// Bodies and joints are only ever appended; insertion order is the order in
/// which they are integrated and solved.
///
/// A world is not safe for concurrent use. Step runs to completion before it
/// returns, so a driver may stop stepping between any two calls.

var World_Flags = struct {
	E_locked int
}{
	E_locked: 0x0001,
}

type World struct {
	M_flags int

	M_bodies []*Body
	M_joints []*Joint

	M_dt         float64
	M_iterations int
	M_beta       float64

	M_stepCount int

	M_listener StepListenerInterface

	M_profile Profile
}

func (world World) GetBodyList() []*Body {
	res := make([]*Body, len(world.M_bodies))
	copy(res, world.M_bodies)
	return res
}

func (world World) GetJointList() []*Joint {
	res := make([]*Joint, len(world.M_joints))
	copy(res, world.M_joints)
	return res
}

func (world World) GetBodyCount() int {
	return len(world.M_bodies)
}

func (world World) GetJointCount() int {
	return len(world.M_joints)
}

func (world World) GetTimeStep() float64 {
	return world.M_dt
}

func (world World) GetIterations() int {
	return world.M_iterations
}

func (world World) GetBaumgarte() float64 {
	return world.M_beta
}

/// Number of completed steps.
func (world World) GetStepCount() int {
	return world.M_stepCount
}

/// Elapsed simulated time. There is no variable time stepping, so this is
/// always the step count times the time step.
func (world World) GetTime() float64 {
	return float64(world.M_stepCount) * world.M_dt
}

func (world World) IsLocked() bool {
	return (world.M_flags & World_Flags.E_locked) == World_Flags.E_locked
}

func (world World) GetProfile() Profile {
	return world.M_profile
}

/// Register a listener called around every step. Pass nil to remove it.
func (world *World) SetStepListener(listener StepListenerInterface) {
	world.M_listener = listener
}

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// World stepping
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

/// Construct a world.
/// @param dt the fixed time step in seconds.
/// @param iterations the number of joint solver sweeps per step.
/// @param beta the position bias factor, in (0, 1].
func MakeWorld(dt float64, iterations int, beta float64) World {

	world := World{}

	world.M_flags = 0

	world.M_bodies = nil
	world.M_joints = nil

	world.M_dt = dt
	world.M_iterations = iterations
	world.M_beta = beta

	world.M_stepCount = 0

	world.M_listener = nil

	world.M_profile = MakeProfile()

	return world
}

func NewWorld(dt float64, iterations int, beta float64) *World {
	res := MakeWorld(dt, iterations, beta)
	return &res
}

/// The configuration used for jointed scenes: dt 1/240, 4 iterations, beta 0.2.
func NewDefaultWorld() *World {
	return NewWorld(DefaultTimeStep, DefaultIterations, DefaultBaumgarte)
}

/// The configuration used for scenes without joints: dt 1/60.
func NewUnconstrainedWorld() *World {
	return NewWorld(UnconstrainedTimeStep, DefaultIterations, DefaultBaumgarte)
}

/// Append a body. Warning: this function is locked during callbacks.
func (world *World) AddBody(b *Body) {
	Assert(world.IsLocked() == false)
	Assert(b.M_world == nil)

	b.M_world = world
	world.M_bodies = append(world.M_bodies, b)
}

/// Create a body from a definition and append it.
func (world *World) CreateBody(def *BodyDef) *Body {
	b := NewBodyFromDef(def)
	world.AddBody(b)
	return b
}

/// Append a joint. Warning: this function is locked during callbacks.
/// The joint's bodies must be added to this world before the next step.
func (world *World) AddJoint(j *Joint) {
	Assert(world.IsLocked() == false)

	j.SetIndex(len(world.M_joints))
	world.M_joints = append(world.M_joints, j)
}

/// Create a joint from a definition and append it.
func (world *World) CreateJoint(def *JointDef) *Joint {
	j := NewJointFromDef(def)
	world.AddJoint(j)
	return j
}

/// Take a time step. This integrates the standing forces, solves the joints
/// and integrates the positions, in that order.
/// Every joint must connect bodies that have been added to this world.
func (world *World) Step() {
	stepTimer := MakeTimer()

	world.M_flags |= World_Flags.E_locked
	defer func() {
		world.M_flags &= ^World_Flags.E_locked
	}()

	if world.M_listener != nil {
		world.M_listener.PreStep(world)
	}

	step := MakeTimeStep()
	step.Dt = world.M_dt
	step.Iterations = world.M_iterations
	step.Beta = world.M_beta

	island := MakeIsland(len(world.M_bodies), len(world.M_joints))
	for _, b := range world.M_bodies {
		island.AddBody(b)
	}
	for _, j := range world.M_joints {
		Assert(j.M_bodyA.M_world == world && j.M_bodyB.M_world == world)
		island.AddJoint(j)
	}

	island.Solve(&world.M_profile, step)

	world.M_stepCount++

	if world.M_listener != nil {
		world.M_listener.PostStep(world)
	}

	world.M_profile.Step = stepTimer.GetMilliseconds()
}

/// Write the pose of every body, one line each, in insertion order:
/// "<step>(<index>): <x> <y> <angle>".
func (world World) Dump(w io.Writer) error {
	for i, b := range world.M_bodies {
		if _, err := fmt.Fprintf(w, "%v(%d): %4.3f %4.3f %4.3f\n", world.M_stepCount, i, b.M_center.X, b.M_center.Y, b.M_angle); err != nil {
			return err
		}
	}
	return nil
}
