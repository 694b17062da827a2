package impulse2d

/// Implement this interface to be called around every world step. This is
/// where drivers update standing forces from outside the core.
/// The world is locked during both calls: bodies and joints cannot be added.
type StepListenerInterface interface {
	/// Called before the forces of a step are integrated.
	PreStep(world *World)

	/// Called after positions have been integrated. GetStepCount already includes the step.
	PostStep(world *World)
}

/// Adapts plain functions to StepListenerInterface. Either function may be nil.
type StepListenerFuncs struct {
	Pre  func(world *World)
	Post func(world *World)
}

func (l StepListenerFuncs) PreStep(world *World) {
	if l.Pre != nil {
		l.Pre(world)
	}
}

func (l StepListenerFuncs) PostStep(world *World) {
	if l.Post != nil {
		l.Post(world)
	}
}
