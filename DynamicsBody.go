package impulse2d

/// Where a standing force acts on a body: at the center of mass (no torque)
/// or at one of the body's shape vertices.
type ForcePoint struct {
	M_vertex   int
	M_atVertex bool
}

/// A force applied at the center of mass produces no torque.
var AtCenterOfMass = ForcePoint{}

/// A force applied at a shape vertex. The index is not range checked; an index
/// outside the shape panics during the next step.
func AtVertex(index int) ForcePoint {
	return ForcePoint{
		M_vertex:   index,
		M_atVertex: true,
	}
}

/// Returns the vertex index and true, or 0 and false for the center of mass.
func (point ForcePoint) GetVertex() (int, bool) {
	return point.M_vertex, point.M_atVertex
}

func (point ForcePoint) IsCenterOfMass() bool {
	return !point.M_atVertex
}

/// A standing force stays attached to its body and is re-applied on every
/// step until it is changed with SetForce or removed with ClearForces.
type StandingForce struct {
	Force Vec2
	Point ForcePoint
}

/// Identifies a standing force on the body that returned it.
type ForceID int

/// A body definition holds all the data needed to construct a rigid body.
/// You can safely re-use body definitions; the shape is copied.
type BodyDef struct {

	/// Polygon vertices relative to the center of mass.
	Shape []Vec2

	/// The world position of the center of mass.
	Center Vec2

	/// The world angle of the body in radians.
	Angle float64

	/// Inverse mass. Zero makes the body immovable.
	InvMass float64

	/// Inverse rotational inertia about the center of mass. Zero prevents rotation.
	InvI float64

	/// The linear velocity of the center of mass in world co-ordinates.
	LinearVelocity Vec2

	/// The angular velocity of the body.
	AngularVelocity float64

	/// Use this to store application specific body data.
	UserData interface{}
}

/// This constructor sets the body definition default values: a static body at the origin.
func MakeBodyDef() BodyDef {
	return BodyDef{
		Shape:           nil,
		Center:          MakeVec2(0, 0),
		Angle:           0.0,
		InvMass:         0.0,
		InvI:            0.0,
		LinearVelocity:  MakeVec2(0, 0),
		AngularVelocity: 0.0,
		UserData:        nil,
	}
}

type Body struct {
	M_shape []Vec2 // local vertices, fixed for the body's lifetime

	M_center Vec2
	M_angle  float64

	M_linearVelocity  Vec2
	M_angularVelocity float64

	M_forces []StandingForce

	M_invMass float64
	M_invI    float64

	// Index into the island arrays during a step.
	M_islandIndex int

	M_world *World

	M_userData interface{}
}

/// Construct a body. The shape is copied.
func NewBody(shape []Vec2, center Vec2, angle float64, invMass float64, invI float64, linearVelocity Vec2, angularVelocity float64) *Body {
	def := MakeBodyDef()
	def.Shape = shape
	def.Center = center
	def.Angle = angle
	def.InvMass = invMass
	def.InvI = invI
	def.LinearVelocity = linearVelocity
	def.AngularVelocity = angularVelocity

	return NewBodyFromDef(&def)
}

func NewBodyFromDef(bd *BodyDef) *Body {
	body := &Body{}

	body.M_shape = make([]Vec2, len(bd.Shape))
	copy(body.M_shape, bd.Shape)

	body.M_center = bd.Center
	body.M_angle = bd.Angle

	body.M_linearVelocity = bd.LinearVelocity
	body.M_angularVelocity = bd.AngularVelocity

	body.M_invMass = bd.InvMass
	body.M_invI = bd.InvI

	body.M_forces = nil
	body.M_islandIndex = 0
	body.M_world = nil
	body.M_userData = bd.UserData

	return body
}

/// Get the world position of the center of mass.
func (body Body) GetPosition() Vec2 {
	return body.M_center
}

/// Get the angle in radians.
func (body Body) GetAngle() float64 {
	return body.M_angle
}

/// Set the position of the center of mass and the rotation angle.
/// Static bodies can be moved this way; the engine itself never moves them.
func (body *Body) SetTransform(center Vec2, angle float64) {
	body.M_center = center
	body.M_angle = angle
}

func (body *Body) SetLinearVelocity(v Vec2) {
	body.M_linearVelocity = v
}

func (body Body) GetLinearVelocity() Vec2 {
	return body.M_linearVelocity
}

func (body *Body) SetAngularVelocity(w float64) {
	body.M_angularVelocity = w
}

func (body Body) GetAngularVelocity() float64 {
	return body.M_angularVelocity
}

func (body Body) GetInvMass() float64 {
	return body.M_invMass
}

func (body Body) GetInvInertia() float64 {
	return body.M_invI
}

/// Get the mass. Immovable bodies report zero.
func (body Body) GetMass() float64 {
	if body.M_invMass == 0.0 {
		return 0.0
	}
	return 1.0 / body.M_invMass
}

/// Get the rotational inertia about the center of mass. Bodies that cannot rotate report zero.
func (body Body) GetInertia() float64 {
	if body.M_invI == 0.0 {
		return 0.0
	}
	return 1.0 / body.M_invI
}

/// Static bodies have infinite mass and are never moved by the solver.
func (body Body) IsStatic() bool {
	return body.M_invMass == 0.0
}

/// Get a copy of the local shape vertices.
func (body Body) GetShape() []Vec2 {
	res := make([]Vec2, len(body.M_shape))
	copy(res, body.M_shape)
	return res
}

func (body Body) GetVertexCount() int {
	return len(body.M_shape)
}

/// The rotation matrix for the current angle. Recomputed on every call.
func (body Body) GetRotationMatrix() Mat22 {
	return MakeMat22FromAngle(body.M_angle)
}

/// The world position of one shape vertex.
func (body Body) GetWorldVertex(index int) Vec2 {
	return Vec2Add(body.M_center, Vec2Mat22Mul(body.GetRotationMatrix(), body.M_shape[index]))
}

/// Get the shape in world coordinates. The returned slice is freshly allocated.
func (body Body) GetWorldVertices() []Vec2 {
	rotation := body.GetRotationMatrix()
	res := make([]Vec2, len(body.M_shape))
	for i, v := range body.M_shape {
		res[i] = Vec2Add(body.M_center, Vec2Mat22Mul(rotation, v))
	}
	return res
}

/// Get the world velocity of a point attached to this body.
func (body Body) GetLinearVelocityFromWorldPoint(worldPoint Vec2) Vec2 {
	r := Vec2Sub(worldPoint, body.M_center)
	return Vec2Add(body.M_linearVelocity, MakeVec2(-body.M_angularVelocity*r.Y, body.M_angularVelocity*r.X))
}

/// Attach a standing force. It is applied on every step from now on.
func (body *Body) AddForce(force Vec2, point ForcePoint) ForceID {
	body.M_forces = append(body.M_forces, StandingForce{
		Force: force,
		Point: point,
	})
	return ForceID(len(body.M_forces) - 1)
}

/// Replace the vector of a standing force, keeping its application point.
func (body *Body) SetForce(id ForceID, force Vec2) {
	body.M_forces[id].Force = force
}

/// Get a copy of the standing forces in insertion order.
func (body Body) GetForces() []StandingForce {
	res := make([]StandingForce, len(body.M_forces))
	copy(res, body.M_forces)
	return res
}

/// Remove every standing force. Previously returned ForceIDs become invalid.
func (body *Body) ClearForces() {
	body.M_forces = nil
}

func (body *Body) SetUserData(data interface{}) {
	body.M_userData = data
}

func (body Body) GetUserData() interface{} {
	return body.M_userData
}

/// Get the parent world of this body, or nil before it is added.
func (body Body) GetWorld() *World {
	return body.M_world
}
