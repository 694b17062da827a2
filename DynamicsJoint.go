package impulse2d

/// Joint definitions are used to construct joints.
type JointDef struct {

	/// Use this to attach application specific data to your joints.
	UserData interface{}

	/// The first attached body.
	BodyA *Body

	/// Index of the pinned vertex in the first body's shape.
	VertexA int

	/// The second attached body.
	BodyB *Body

	/// Index of the pinned vertex in the second body's shape.
	VertexB int
}

func MakeJointDef() JointDef {
	res := JointDef{}
	res.UserData = nil
	res.BodyA = nil
	res.VertexA = 0
	res.BodyB = nil
	res.VertexB = 0

	return res
}

/// A joint pins one vertex of bodyA to one vertex of bodyB: both points must
/// occupy the same world position. The topology is fixed at construction.
/// The bodies are owned by the world, not by the joint.
type Joint struct {
	M_bodyA   *Body
	M_bodyB   *Body
	M_vertexA int
	M_vertexB int
	M_index   int

	M_userData interface{}

	// Solver temp
	M_indexA  int
	M_indexB  int
	M_invMass Vec6 // diagonal inverse mass, [mB, mB, iB, mA, mA, iA]
	M_J       Vec6
	M_bias    float64
}

func NewJoint(bodyA *Body, vertexA int, bodyB *Body, vertexB int) *Joint {
	def := MakeJointDef()
	def.BodyA = bodyA
	def.VertexA = vertexA
	def.BodyB = bodyB
	def.VertexB = vertexB

	return NewJointFromDef(&def)
}

func NewJointFromDef(def *JointDef) *Joint {
	res := Joint{}

	res.M_bodyA = def.BodyA
	res.M_bodyB = def.BodyB
	res.M_vertexA = def.VertexA
	res.M_vertexB = def.VertexB
	res.M_index = 0
	res.M_userData = def.UserData

	return &res
}

func (j Joint) GetBodyA() *Body {
	return j.M_bodyA
}

func (j Joint) GetBodyB() *Body {
	return j.M_bodyB
}

func (j Joint) GetVertexA() int {
	return j.M_vertexA
}

func (j Joint) GetVertexB() int {
	return j.M_vertexB
}

/// Get the pinned vertex of bodyA in world coordinates.
func (j Joint) GetAnchorA() Vec2 {
	return j.M_bodyA.GetWorldVertex(j.M_vertexA)
}

/// Get the pinned vertex of bodyB in world coordinates.
func (j Joint) GetAnchorB() Vec2 {
	return j.M_bodyB.GetWorldVertex(j.M_vertexB)
}

/// The constraint value C = |pA - pB|^2 at the current poses.
func (j Joint) GetSeparationSquared() float64 {
	return Vec2DistanceSquared(j.GetAnchorA(), j.GetAnchorB())
}

/// Position in the world's joint list.
func (j Joint) GetIndex() int {
	return j.M_index
}

func (j *Joint) SetIndex(index int) {
	j.M_index = index
}

func (j Joint) GetUserData() interface{} {
	return j.M_userData
}

func (j *Joint) SetUserData(data interface{}) {
	j.M_userData = data
}

func anchorFromPosition(position Position, local Vec2) Vec2 {
	return Vec2Add(position.C, Vec2Mat22Mul(MakeMat22FromAngle(position.A), local))
}

// The Jacobian, effective mass and bias only depend on positions, which do not
// change during the velocity iterations, so they are computed once per step.
func (j *Joint) InitVelocityConstraints(data SolverData) {
	j.M_indexA = j.M_bodyA.M_islandIndex
	j.M_indexB = j.M_bodyB.M_islandIndex

	mA := j.M_bodyA.M_invMass
	mB := j.M_bodyB.M_invMass
	iA := j.M_bodyA.M_invI
	iB := j.M_bodyB.M_invI

	j.M_invMass = Vec6{mB, mB, iB, mA, mA, iA}

	cA := data.Positions[j.M_indexA].C
	cB := data.Positions[j.M_indexB].C
	pA := anchorFromPosition(data.Positions[j.M_indexA], j.M_bodyA.M_shape[j.M_vertexA])
	pB := anchorFromPosition(data.Positions[j.M_indexB], j.M_bodyB.M_shape[j.M_vertexB])

	dAB := Vec2Sub(pA, pB)
	dBA := Vec2Sub(pB, pA)

	// C = dot(pA - pB, pA - pB)
	// J = dC/d[vB wB vA wA]
	//   = 2 [pB-pA, (pA-pB) x (pB-cB), pA-pB, (pB-pA) x (pA-cA)]
	j.M_J = Vec6MulScalar(2.0, Vec6{
		dBA.X, dBA.Y, Vec2Cross(dAB, Vec2Sub(pB, cB)),
		dAB.X, dAB.Y, Vec2Cross(dBA, Vec2Sub(pA, cA)),
	})

	// The bias is proportional to the squared separation, not to the separation
	// as in most sequential impulse solvers. Large separations are therefore
	// corrected much more aggressively and small ones much more gently. Existing
	// scenes are tuned against this, so keep it.
	C := Vec2Dot(dAB, dAB)
	j.M_bias = data.Step.Beta / data.Step.Dt * C
}

func (j *Joint) SolveVelocityConstraints(data SolverData) {
	vA := data.Velocities[j.M_indexA].V
	wA := data.Velocities[j.M_indexA].W
	vB := data.Velocities[j.M_indexB].V
	wB := data.Velocities[j.M_indexB].W

	v := MakeVec6(vB, wB, vA, wA)

	denominator := Vec6Dot(j.M_J, Vec6Mul(j.M_invMass, j.M_J))
	if denominator <= DegenerateMassTolerance && denominator >= -DegenerateMassTolerance {
		return
	}

	lambda := -(Vec6Dot(j.M_J, v) + j.M_bias) / denominator

	v = Vec6Add(v, Vec6Mul(j.M_invMass, Vec6MulScalar(lambda, j.M_J)))

	data.Velocities[j.M_indexB].V = MakeVec2(v[0], v[1])
	data.Velocities[j.M_indexB].W = v[2]
	data.Velocities[j.M_indexA].V = MakeVec2(v[3], v[4])
	data.Velocities[j.M_indexA].W = v[5]
}
