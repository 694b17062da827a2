package impulse2d

/// This is an internal class. It stages the state of every body of a world in
/// compact arrays for the duration of one step and writes it back at the end.
type Island struct {
	M_bodies []*Body
	M_joints []*Joint

	M_positions  []Position
	M_velocities []Velocity

	M_bodyCount  int
	M_jointCount int

	M_bodyCapacity  int
	M_jointCapacity int
}

func (island *Island) AddBody(body *Body) {
	Assert(island.M_bodyCount < island.M_bodyCapacity)
	body.M_islandIndex = island.M_bodyCount
	island.M_bodies[island.M_bodyCount] = body
	island.M_bodyCount++
}

func (island *Island) AddJoint(joint *Joint) {
	Assert(island.M_jointCount < island.M_jointCapacity)
	island.M_joints[island.M_jointCount] = joint
	island.M_jointCount++
}

/*
Position Correction Notes
=========================
There is no separate position solver. A fraction (beta) of the position error
is fed back into the velocity error of every joint (Baumgarte). The error
measure is the squared separation of the two pinned vertices, see
Joint.InitVelocityConstraints.

Symplectic Euler
================
v2 = v1 + h * M^-1 * f
v2 is corrected by the joint impulses
x2 = x1 + h * v2

Static bodies (zero inverse mass) keep their position and angle regardless of
the velocity stored on them.
*/

func MakeIsland(bodyCapacity int, jointCapacity int) Island {

	island := Island{}

	island.M_bodyCapacity = bodyCapacity
	island.M_jointCapacity = jointCapacity
	island.M_bodyCount = 0
	island.M_jointCount = 0

	island.M_bodies = make([]*Body, bodyCapacity)
	island.M_joints = make([]*Joint, jointCapacity)

	island.M_velocities = make([]Velocity, bodyCapacity)
	island.M_positions = make([]Position, bodyCapacity)

	return island
}

func (island *Island) Solve(profile *Profile, step TimeStep) {

	timer := MakeTimer()

	h := step.Dt

	// Integrate standing forces. Initialize the body state.
	for i := 0; i < island.M_bodyCount; i++ {
		b := island.M_bodies[i]

		c := b.M_center
		a := b.M_angle
		v := b.M_linearVelocity
		w := b.M_angularVelocity

		if b.M_invMass != 0.0 {
			rotation := b.GetRotationMatrix()

			// Each force changes the velocities independently.
			for _, f := range b.M_forces {
				v.OperatorPlusInplace(Vec2MulScalar(h*b.M_invMass, f.Force))

				if vertex, ok := f.Point.GetVertex(); ok {
					// The lever arm is the rotated local vertex, i.e. vertex minus center
					// in world orientation.
					torque := Vec2Cross(Vec2Mat22Mul(rotation, b.M_shape[vertex]), f.Force)
					w += h * b.M_invI * torque
				}
			}
		}

		island.M_positions[i].C = c
		island.M_positions[i].A = a
		island.M_velocities[i].V = v
		island.M_velocities[i].W = w
	}

	profile.IntegrateForces = timer.GetMilliseconds()
	timer.Reset()

	// Solver data
	solverData := MakeSolverData()
	solverData.Step = step
	solverData.Positions = island.M_positions
	solverData.Velocities = island.M_velocities

	// Initialize velocity constraints.
	for i := 0; i < island.M_jointCount; i++ {
		island.M_joints[i].InitVelocityConstraints(solverData)
	}

	profile.SolveInit = timer.GetMilliseconds()

	// Solve velocity constraints. Always the full number of sweeps.
	timer.Reset()
	for i := 0; i < step.Iterations; i++ {
		for j := 0; j < island.M_jointCount; j++ {
			island.M_joints[j].SolveVelocityConstraints(solverData)
		}
	}

	profile.SolveVelocity = timer.GetMilliseconds()

	// Integrate positions
	timer.Reset()
	for i := 0; i < island.M_bodyCount; i++ {
		b := island.M_bodies[i]

		v := island.M_velocities[i].V
		w := island.M_velocities[i].W

		b.M_linearVelocity = v
		b.M_angularVelocity = w

		if b.M_invMass == 0.0 {
			continue
		}

		c := island.M_positions[i].C
		a := island.M_positions[i].A

		c.OperatorPlusInplace(Vec2MulScalar(h, v))
		a += h * w

		island.M_positions[i].C = c
		island.M_positions[i].A = a

		b.M_center = c
		b.M_angle = a
	}

	profile.IntegratePositions = timer.GetMilliseconds()
}
