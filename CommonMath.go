package impulse2d

import (
	"math"
)

/// This function is used to ensure that a floating point number is not a NaN or infinity.
func IsValid(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

///////////////////////////////////////////////////////////////////////////////
/// A 2D column vector.
///////////////////////////////////////////////////////////////////////////////
type Vec2 struct {
	X, Y float64
}

func MakeVec2(xIn, yIn float64) Vec2 {
	return Vec2{
		X: xIn,
		Y: yIn,
	}
}

/// Add a vector to this vector.
func (v *Vec2) OperatorPlusInplace(other Vec2) {
	v.X += other.X
	v.Y += other.Y
}

/// Does this vector contain finite coordinates?
func (v Vec2) IsValid() bool {
	return IsValid(v.X) && IsValid(v.Y)
}

///////////////////////////////////////////////////////////////////////////////
/// A 2-by-2 matrix. Stored in column-major order.
///////////////////////////////////////////////////////////////////////////////
type Mat22 struct {
	Ex, Ey Vec2
}

/// Construct this matrix using scalars.
func MakeMat22FromScalars(a11, a12, a21, a22 float64) Mat22 {
	return Mat22{
		Ex: MakeVec2(a11, a21),
		Ey: MakeVec2(a12, a22),
	}
}

/// The rotation matrix for an angle in radians:
/// [cos(a) -sin(a)]
/// [sin(a)  cos(a)]
func MakeMat22FromAngle(anglerad float64) Mat22 {
	s, c := math.Sincos(anglerad)
	return MakeMat22FromScalars(c, -s, s, c)
}

///////////////////////////////////////////////////////////////////////////////
/// The velocity space of a two-body constraint, ordered
/// [vB.x, vB.y, wB, vA.x, vA.y, wA].
///////////////////////////////////////////////////////////////////////////////
type Vec6 [6]float64

func MakeVec6(bodyBLinear Vec2, bodyBAngular float64, bodyALinear Vec2, bodyAAngular float64) Vec6 {
	return Vec6{
		bodyBLinear.X, bodyBLinear.Y, bodyBAngular,
		bodyALinear.X, bodyALinear.Y, bodyAAngular,
	}
}

///////////////////////////////////////////////////////////////////////////////
// Functions acting on vectors and matrices
///////////////////////////////////////////////////////////////////////////////

/// Perform the dot product on two vectors.
func Vec2Dot(a, b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

/// Perform the cross product on two vectors. In 2D this produces a scalar.
func Vec2Cross(a, b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

/// Multiply a matrix times a vector.
func Vec2Mat22Mul(A Mat22, v Vec2) Vec2 {
	return MakeVec2(A.Ex.X*v.X+A.Ey.X*v.Y, A.Ex.Y*v.X+A.Ey.Y*v.Y)
}

/// Add two vectors component-wise.
func Vec2Add(a, b Vec2) Vec2 {
	return MakeVec2(a.X+b.X, a.Y+b.Y)
}

/// Subtract two vectors component-wise.
func Vec2Sub(a, b Vec2) Vec2 {
	return MakeVec2(a.X-b.X, a.Y-b.Y)
}

func Vec2MulScalar(s float64, a Vec2) Vec2 {
	return MakeVec2(s*a.X, s*a.Y)
}

func Vec2Equals(a, b Vec2) bool {
	return a.X == b.X && a.Y == b.Y
}

func Vec2DistanceSquared(a, b Vec2) float64 {
	c := Vec2Sub(a, b)
	return Vec2Dot(c, c)
}

/// Summed left to right so results are reproducible bit for bit.
func Vec6Dot(a, b Vec6) float64 {
	sum := 0.0
	for i := 0; i < 6; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

/// Component-wise product.
func Vec6Mul(a, b Vec6) Vec6 {
	var res Vec6
	for i := 0; i < 6; i++ {
		res[i] = a[i] * b[i]
	}
	return res
}

func Vec6MulScalar(s float64, a Vec6) Vec6 {
	var res Vec6
	for i := 0; i < 6; i++ {
		res[i] = s * a[i]
	}
	return res
}

func Vec6Add(a, b Vec6) Vec6 {
	var res Vec6
	for i := 0; i < 6; i++ {
		res[i] = a[i] + b[i]
	}
	return res
}
