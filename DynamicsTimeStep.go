package impulse2d

/// Profiling data of the last step. Times are in milliseconds.
type Profile struct {
	Step               float64
	IntegrateForces    float64
	SolveInit          float64
	SolveVelocity      float64
	IntegratePositions float64
}

func MakeProfile() Profile {
	return Profile{}
}

/// This is an internal structure.
type TimeStep struct {
	Dt         float64 // time step
	Iterations int
	Beta       float64 // position bias factor
}

func MakeTimeStep() TimeStep {
	return TimeStep{}
}

/// This is an internal structure.
type Position struct {
	C Vec2
	A float64
}

/// This is an internal structure.
type Velocity struct {
	V Vec2
	W float64
}

/// Solver Data
type SolverData struct {
	Step       TimeStep
	Positions  []Position
	Velocities []Velocity
}

func MakeSolverData() SolverData {
	return SolverData{}
}
