package impulse2d_test

import (
	"math"
	"testing"

	"github.com/ByteArena/impulse2d"
	"github.com/go-gl/mathgl/mgl64"
)

var unitBox = []impulse2d.Vec2{{X: 1, Y: -1}, {X: -1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1}}

func TestWorldSingleStep(t *testing.T) {
	world := impulse2d.NewWorld(1.0/60.0, impulse2d.DefaultIterations, impulse2d.DefaultBaumgarte)
	body := impulse2d.NewBody(unitBox, impulse2d.MakeVec2(0, 13), 0, 1, 1, impulse2d.MakeVec2(0, 0), 0)
	body.AddForce(impulse2d.MakeVec2(0, -9.81), impulse2d.AtCenterOfMass)
	world.AddBody(body)

	world.Step()

	v := body.GetLinearVelocity()
	if !mgl64.FloatEqualThreshold(v.X, 0, 1e-6) || !mgl64.FloatEqualThreshold(v.Y, -0.1635, 1e-6) {
		t.Fatalf("linear velocity after one step = %v, want (0, -0.1635)", v)
	}

	c := body.GetPosition()
	if !mgl64.FloatEqualThreshold(c.X, 0, 1e-6) || !mgl64.FloatEqualThreshold(c.Y, 12.997275, 1e-6) {
		t.Fatalf("center after one step = %v, want (0, 12.997275)", c)
	}

	if body.GetAngularVelocity() != 0 || body.GetAngle() != 0 {
		t.Fatalf("center of mass force rotated the body: w=%v angle=%v", body.GetAngularVelocity(), body.GetAngle())
	}
}

func TestWorldFreeFall(t *testing.T) {
	const (
		g    = 9.81
		mass = 2.0
		y0   = 40.0
	)

	cases := []struct {
		name  string
		dt    float64
		steps int
	}{
		{"60hz_one_second", 1.0 / 60.0, 60},
		{"240hz_half_second", 1.0 / 240.0, 120},
		{"single_step", 1.0 / 30.0, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			world := impulse2d.NewWorld(c.dt, impulse2d.DefaultIterations, impulse2d.DefaultBaumgarte)
			body := impulse2d.NewBody(unitBox, impulse2d.MakeVec2(3, y0), 0.3, 1/mass, 1/(mass/12*8), impulse2d.MakeVec2(0, 0), 0)
			body.AddForce(impulse2d.MakeVec2(0, -g*mass), impulse2d.AtCenterOfMass)
			world.AddBody(body)

			for i := 0; i < c.steps; i++ {
				world.Step()
			}

			n := float64(c.steps)
			wantVy := -g * n * c.dt
			wantY := y0 - g*c.dt*c.dt*n*(n+1)/2

			if got := body.GetLinearVelocity().Y; !mgl64.FloatEqualThreshold(got, wantVy, 1e-9) {
				t.Fatalf("vy = %v, want %v", got, wantVy)
			}
			if got := body.GetPosition().Y; !mgl64.FloatEqualThreshold(got, wantY, 1e-9) {
				t.Fatalf("y = %v, want %v", got, wantY)
			}
			if got := body.GetPosition().X; got != 3 {
				t.Fatalf("x drifted to %v", got)
			}
			if got := body.GetAngle(); got != 0.3 {
				t.Fatalf("angle changed to %v", got)
			}
			if got := world.GetTime(); !mgl64.FloatEqualThreshold(got, n*c.dt, 1e-12) {
				t.Fatalf("time = %v, want %v", got, n*c.dt)
			}
		})
	}
}

func TestWorldCenterOfMassForceIsTorqueFree(t *testing.T) {
	shapes := map[string][]impulse2d.Vec2{
		"box":      unitBox,
		"triangle": {{X: 2, Y: 0}, {X: -1, Y: 1.5}, {X: -1, Y: -1.5}},
		"sliver":   {{X: 5, Y: 0.1}, {X: -5, Y: 0.1}, {X: -5, Y: -0.1}, {X: 5, Y: -0.1}},
	}

	for name, shape := range shapes {
		t.Run(name, func(t *testing.T) {
			world := impulse2d.NewUnconstrainedWorld()
			body := impulse2d.NewBody(shape, impulse2d.MakeVec2(0, 0), 1.1, 0.5, 0.25, impulse2d.MakeVec2(0, 0), 0.7)
			body.AddForce(impulse2d.MakeVec2(13, -4), impulse2d.AtCenterOfMass)
			body.AddForce(impulse2d.MakeVec2(-2, 9), impulse2d.AtCenterOfMass)
			world.AddBody(body)

			for i := 0; i < 30; i++ {
				world.Step()
				if body.GetAngularVelocity() != 0.7 {
					t.Fatalf("step %d: angular velocity = %v, want 0.7", i, body.GetAngularVelocity())
				}
			}
		})
	}
}

func TestWorldVertexForceTorque(t *testing.T) {
	dt := 1.0 / 60.0
	world := impulse2d.NewWorld(dt, 1, 0.2)
	body := impulse2d.NewBody(unitBox, impulse2d.MakeVec2(0, 0), 0, 1, 0.5, impulse2d.MakeVec2(0, 0), 0)
	// Vertex 3 is (1, 1); pushing it down turns the body clockwise.
	body.AddForce(impulse2d.MakeVec2(0, -1), impulse2d.AtVertex(3))
	world.AddBody(body)

	world.Step()

	want := dt * 0.5 * -1
	if got := body.GetAngularVelocity(); !mgl64.FloatEqualThreshold(got, want, 1e-12) {
		t.Fatalf("angular velocity = %v, want %v", got, want)
	}
	if got := body.GetLinearVelocity().Y; !mgl64.FloatEqualThreshold(got, -dt, 1e-12) {
		t.Fatalf("vy = %v, want %v", got, -dt)
	}
}

func TestWorldVertexForceUsesRotatedLever(t *testing.T) {
	dt := 1.0 / 60.0
	world := impulse2d.NewWorld(dt, 1, 0.2)
	// Rotated by 90 degrees local vertex (1, 0) sits at (0, 1) relative to the center.
	body := impulse2d.NewBody([]impulse2d.Vec2{{X: 1, Y: 0}, {X: -1, Y: 0.5}, {X: -1, Y: -0.5}}, impulse2d.MakeVec2(5, 5), math.Pi/2, 1, 1, impulse2d.MakeVec2(0, 0), 0)
	body.AddForce(impulse2d.MakeVec2(1, 0), impulse2d.AtVertex(0))
	world.AddBody(body)

	world.Step()

	// cross((0, 1), (1, 0)) = -1
	if got := body.GetAngularVelocity(); !mgl64.FloatEqualThreshold(got, -dt, 1e-12) {
		t.Fatalf("angular velocity = %v, want %v", got, -dt)
	}
}

func TestWorldStaticBodiesNeverMove(t *testing.T) {
	world, bodies := makeChainWorld(impulse2d.DefaultIterations, impulse2d.DefaultBaumgarte)
	ground := bodies[0]

	// Forces and a stray velocity on a static body have no effect on its pose.
	ground.AddForce(impulse2d.MakeVec2(100, 100), impulse2d.AtVertex(0))
	ground.SetLinearVelocity(impulse2d.MakeVec2(3, -2))
	ground.SetAngularVelocity(4)

	center := ground.GetPosition()
	angle := ground.GetAngle()

	for i := 0; i < 500; i++ {
		world.Step()
	}

	if !impulse2d.Vec2Equals(ground.GetPosition(), center) {
		t.Fatalf("static center moved from %v to %v", center, ground.GetPosition())
	}
	if ground.GetAngle() != angle {
		t.Fatalf("static angle changed from %v to %v", angle, ground.GetAngle())
	}
}

func TestWorldDegenerateJointIsNoop(t *testing.T) {
	world := impulse2d.NewDefaultWorld()
	a := impulse2d.NewBody(unitBox, impulse2d.MakeVec2(0, 0), 0, 0, 0, impulse2d.MakeVec2(1, 2), 0.5)
	b := impulse2d.NewBody(unitBox, impulse2d.MakeVec2(7, 3), 0.2, 0, 0, impulse2d.MakeVec2(-1, 0), -0.25)
	world.AddBody(a)
	world.AddBody(b)
	world.AddJoint(impulse2d.NewJoint(a, 0, b, 2))

	for i := 0; i < 100; i++ {
		world.Step()
	}

	if v := a.GetLinearVelocity(); v.X != 1 || v.Y != 2 || a.GetAngularVelocity() != 0.5 {
		t.Fatalf("body A velocity changed: %v %v", v, a.GetAngularVelocity())
	}
	if v := b.GetLinearVelocity(); v.X != -1 || v.Y != 0 || b.GetAngularVelocity() != -0.25 {
		t.Fatalf("body B velocity changed: %v %v", v, b.GetAngularVelocity())
	}
}

func TestWorldDeterminism(t *testing.T) {
	worldA, bodiesA := makeChainWorld(impulse2d.DefaultIterations, impulse2d.DefaultBaumgarte)
	worldB, bodiesB := makeChainWorld(impulse2d.DefaultIterations, impulse2d.DefaultBaumgarte)

	for step := 0; step < 300; step++ {
		worldA.Step()
		worldB.Step()

		for i := range bodiesA {
			a, b := bodiesA[i], bodiesB[i]
			if !impulse2d.Vec2Equals(a.GetPosition(), b.GetPosition()) ||
				a.GetAngle() != b.GetAngle() ||
				!impulse2d.Vec2Equals(a.GetLinearVelocity(), b.GetLinearVelocity()) ||
				a.GetAngularVelocity() != b.GetAngularVelocity() {
				t.Fatalf("step %d body %d diverged", step, i)
			}
		}
	}
}

func meanSeparation(world *impulse2d.World, steps int) float64 {
	total := 0.0
	for i := 0; i < steps; i++ {
		world.Step()
		for _, j := range world.GetJointList() {
			total += j.GetSeparationSquared()
		}
	}
	return total / float64(steps)
}

func TestWorldMoreIterationsReduceSeparation(t *testing.T) {
	for _, beta := range []float64{0.1, 0.2} {
		previous := math.Inf(1)
		for _, iterations := range []int{1, 2, 4, 8} {
			world, _ := makeChainWorld(iterations, beta)
			mean := meanSeparation(world, 240)
			if mean >= previous {
				t.Fatalf("beta %v: %d iterations mean separation %v, not below %v", beta, iterations, mean, previous)
			}
			previous = mean
		}
	}
}

func TestWorldJointPullsBodiesTogether(t *testing.T) {
	world := impulse2d.NewDefaultWorld()
	anchor := impulse2d.NewBody(unitBox, impulse2d.MakeVec2(0, 0), 0, 0, 0, impulse2d.MakeVec2(0, 0), 0)
	bob := impulse2d.NewBody(unitBox, impulse2d.MakeVec2(2.5, -2.5), 0, 1, 1.5, impulse2d.MakeVec2(0, 0), 0)
	world.AddBody(anchor)
	world.AddBody(bob)
	joint := impulse2d.NewJoint(anchor, 0, bob, 2)
	world.AddJoint(joint)

	initial := joint.GetSeparationSquared()
	if !mgl64.FloatEqualThreshold(initial, 0.5, 1e-12) {
		t.Fatalf("initial separation = %v, want 0.5", initial)
	}

	for i := 0; i < 240; i++ {
		world.Step()
	}

	if final := joint.GetSeparationSquared(); final >= initial/10 {
		t.Fatalf("separation went from %v to %v", initial, final)
	}
}

func TestWorldStepListener(t *testing.T) {
	world := impulse2d.NewUnconstrainedWorld()
	body := impulse2d.NewBody(unitBox, impulse2d.MakeVec2(0, 0), 0, 1, 1, impulse2d.MakeVec2(0, 0), 0)
	id := body.AddForce(impulse2d.MakeVec2(0, 0), impulse2d.AtCenterOfMass)
	world.AddBody(body)

	var pre, post []int
	world.SetStepListener(impulse2d.StepListenerFuncs{
		Pre: func(w *impulse2d.World) {
			if !w.IsLocked() {
				t.Fatalf("world not locked in PreStep")
			}
			pre = append(pre, w.GetStepCount())
			// Push only during the first step.
			if w.GetStepCount() == 0 {
				body.SetForce(id, impulse2d.MakeVec2(60, 0))
			} else {
				body.SetForce(id, impulse2d.MakeVec2(0, 0))
			}
		},
		Post: func(w *impulse2d.World) {
			post = append(post, w.GetStepCount())
		},
	})

	for i := 0; i < 3; i++ {
		world.Step()
	}

	if len(pre) != 3 || pre[0] != 0 || pre[2] != 2 {
		t.Fatalf("PreStep saw step counts %v", pre)
	}
	if len(post) != 3 || post[0] != 1 || post[2] != 3 {
		t.Fatalf("PostStep saw step counts %v", post)
	}
	if got := body.GetLinearVelocity().X; !mgl64.FloatEqualThreshold(got, 1, 1e-12) {
		t.Fatalf("vx = %v, want 1 after a one-step push", got)
	}
	if world.IsLocked() {
		t.Fatalf("world still locked after step")
	}
}

func TestWorldLockedDuringStep(t *testing.T) {
	world := impulse2d.NewUnconstrainedWorld()
	world.SetStepListener(impulse2d.StepListenerFuncs{
		Pre: func(w *impulse2d.World) {
			w.AddBody(impulse2d.NewBody(unitBox, impulse2d.MakeVec2(0, 0), 0, 1, 1, impulse2d.MakeVec2(0, 0), 0))
		},
	})

	defer func() {
		if recover() == nil {
			t.Fatalf("adding a body while stepping did not panic")
		}
	}()
	world.Step()
}

func TestWorldConfiguration(t *testing.T) {
	world := impulse2d.NewDefaultWorld()
	if world.GetTimeStep() != 1.0/240.0 || world.GetIterations() != 4 || world.GetBaumgarte() != 0.2 {
		t.Fatalf("default world = %v %v %v", world.GetTimeStep(), world.GetIterations(), world.GetBaumgarte())
	}

	unconstrained := impulse2d.NewUnconstrainedWorld()
	if unconstrained.GetTimeStep() != 1.0/60.0 {
		t.Fatalf("unconstrained dt = %v", unconstrained.GetTimeStep())
	}

	a := world.CreateBody(&impulse2d.BodyDef{Shape: unitBox, InvMass: 1, InvI: 1})
	def := impulse2d.MakeBodyDef()
	def.Shape = unitBox
	b := world.CreateBody(&def)

	jd := impulse2d.MakeJointDef()
	jd.BodyA = a
	jd.VertexA = 1
	jd.BodyB = b
	jd.VertexB = 2
	j := world.CreateJoint(&jd)

	if world.GetBodyCount() != 2 || world.GetJointCount() != 1 {
		t.Fatalf("counts = %d bodies, %d joints", world.GetBodyCount(), world.GetJointCount())
	}
	if a.GetWorld() != world || j.GetIndex() != 0 {
		t.Fatalf("ownership not recorded")
	}
	if list := world.GetBodyList(); list[0] != a || list[1] != b {
		t.Fatalf("insertion order lost")
	}
}

func TestWorldJointToForeignBodyPanics(t *testing.T) {
	world := impulse2d.NewDefaultWorld()
	bystander := impulse2d.NewBody(unitBox, impulse2d.MakeVec2(10, 0), 0, 1, 1, impulse2d.MakeVec2(0, 0), 0)
	world.AddBody(bystander)
	a := impulse2d.NewBody(unitBox, impulse2d.MakeVec2(0, 0), 0, 1, 1, impulse2d.MakeVec2(0, 0), 0)
	world.AddBody(a)
	b := impulse2d.NewBody(unitBox, impulse2d.MakeVec2(5, 0), 0, 1, 1, impulse2d.MakeVec2(0, 0), 0)
	world.AddJoint(impulse2d.NewJoint(a, 0, b, 1))

	defer func() {
		if recover() == nil {
			t.Fatalf("stepping a joint to a body outside the world did not panic")
		}
		if v := bystander.GetLinearVelocity(); v.X != 0 || v.Y != 0 {
			t.Fatalf("bystander moved: v=%v", v)
		}
	}()
	world.Step()
}

func TestWorldJointBeforeBodies(t *testing.T) {
	world := impulse2d.NewDefaultWorld()
	a := impulse2d.NewBody(unitBox, impulse2d.MakeVec2(0, 0), 0, 1, 1, impulse2d.MakeVec2(0, 0), 0)
	b := impulse2d.NewBody(unitBox, impulse2d.MakeVec2(5, 0), 0, 1, 1, impulse2d.MakeVec2(0, 0), 0)
	world.AddJoint(impulse2d.NewJoint(a, 0, b, 1))
	world.AddBody(a)
	world.AddBody(b)

	world.Step()
	if a.GetLinearVelocity().X <= 0 || b.GetLinearVelocity().X >= 0 {
		t.Fatalf("joint did not pull: vA=%v vB=%v", a.GetLinearVelocity(), b.GetLinearVelocity())
	}
}

func TestWorldUnlockedAfterPanic(t *testing.T) {
	world := impulse2d.NewDefaultWorld()
	box := impulse2d.NewBody(unitBox, impulse2d.MakeVec2(0, 0), 0, 1, 1, impulse2d.MakeVec2(0, 0), 0)
	box.AddForce(impulse2d.MakeVec2(1, 0), impulse2d.AtVertex(9))
	world.AddBody(box)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("force on a missing vertex did not panic")
			}
		}()
		world.Step()
	}()

	if world.IsLocked() {
		t.Fatalf("world still locked after a panicking step")
	}
	box.ClearForces()
	world.AddBody(impulse2d.NewBody(unitBox, impulse2d.MakeVec2(4, 0), 0, 1, 1, impulse2d.MakeVec2(0, 0), 0))
	world.Step()
	if world.GetBodyCount() != 2 {
		t.Fatalf("body count = %d, want 2", world.GetBodyCount())
	}
}

func TestWorldSelfJoint(t *testing.T) {
	world := impulse2d.NewDefaultWorld()
	body := impulse2d.NewBody(unitBox, impulse2d.MakeVec2(0, 0), 0, 1, 1, impulse2d.MakeVec2(0, 0), 0)
	world.AddBody(body)
	joint := world.CreateJoint(&impulse2d.JointDef{BodyA: body, VertexA: 0, BodyB: body, VertexB: 2})
	separation := joint.GetSeparationSquared()

	// Each iteration pushes both ends apart along the diagonal and the
	// body A half of the update is the one kept.
	world.Step()
	v := body.GetLinearVelocity()
	if mgl64.Abs(v.X+96) > 1e-9 || mgl64.Abs(v.Y-96) > 1e-9 || body.GetAngularVelocity() != 0 {
		t.Fatalf("v=%v w=%v, want (-96, 96) and 0", v, body.GetAngularVelocity())
	}
	if got := joint.GetSeparationSquared(); mgl64.Abs(got-separation) > 1e-9 {
		t.Fatalf("rigid separation changed: %v -> %v", separation, got)
	}
	if !body.GetPosition().IsValid() || !impulse2d.IsValid(body.GetAngle()) {
		t.Fatalf("invalid state: %v %v", body.GetPosition(), body.GetAngle())
	}
}

func TestWorldInfiniteInertiaNeverRotates(t *testing.T) {
	world := impulse2d.NewWorld(0.5, 1, 0.2)
	body := impulse2d.NewBody(unitBox, impulse2d.MakeVec2(0, 0), 0, 1, 0, impulse2d.MakeVec2(0, 0), 0)
	body.AddForce(impulse2d.MakeVec2(0, 4), impulse2d.AtVertex(0))
	world.AddBody(body)

	for i := 1; i <= 3; i++ {
		world.Step()
		if body.GetAngularVelocity() != 0 || body.GetAngle() != 0 {
			t.Fatalf("step %d: w=%v angle=%v", i, body.GetAngularVelocity(), body.GetAngle())
		}
		if got := body.GetLinearVelocity().Y; got != float64(2*i) {
			t.Fatalf("step %d: vy = %v, want %v", i, got, float64(2*i))
		}
	}
}
