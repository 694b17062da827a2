package script

import (
	"context"
	"fmt"

	"github.com/ByteArena/impulse2d"
)

// ForceDriver updates one standing force of a body from a program before
// every step.
type ForceDriver struct {
	Program *ForceProgram
	Body    *impulse2d.Body
	Force   impulse2d.ForceID
}

func NewForceDriver(program *ForceProgram, body *impulse2d.Body, force impulse2d.ForceID) *ForceDriver {
	return &ForceDriver{
		Program: program,
		Body:    body,
		Force:   force,
	}
}

// Apply evaluates the program against the body's state at the start of the
// coming step and stores the result as the standing force.
func (d *ForceDriver) Apply(ctx context.Context, world *impulse2d.World) error {
	forces := d.Body.GetForces()
	if int(d.Force) < 0 || int(d.Force) >= len(forces) {
		return fmt.Errorf("script: %s: force %d not on body", d.Program.Name(), d.Force)
	}

	out, err := d.Program.Eval(ctx, Input{
		T:               world.GetTime(),
		Dt:              world.GetTimeStep(),
		Position:        d.Body.GetPosition(),
		Angle:           d.Body.GetAngle(),
		Velocity:        d.Body.GetLinearVelocity(),
		AngularVelocity: d.Body.GetAngularVelocity(),
		Force:           forces[d.Force].Force,
	})
	if err != nil {
		return err
	}

	d.Body.SetForce(d.Force, out.Force)
	return nil
}
