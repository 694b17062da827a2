package impulse2d

import "math"

func Assert(a bool) {
	if !a {
		panic("impulse2d: assertion failed")
	}
}

const Pi = math.Pi

/// @file
/// Global tuning constants based on meters-kilograms-seconds (MKS) units.
///

/// Time step of the joint solver configuration. Chains of light links need a
/// small step to stay together with only a handful of iterations.
const DefaultTimeStep = 1.0 / 240.0

/// Gauss-Seidel sweeps over the joints per step.
const DefaultIterations = 4

/// This scale factor controls how fast joint separation is resolved. Ideally this would be 1 so
/// that separation is removed in one time step. However using values close to 1 often lead
/// to overshoot.
const DefaultBaumgarte = 0.2

/// Time step of the configuration for bodies that are never jointed.
const UnconstrainedTimeStep = 1.0 / 60.0

/// A joint whose effective mass denominator is at most this is treated as having no
/// mobility (both bodies immovable) and is skipped.
const DegenerateMassTolerance = 1e-15

/// Standard gravity used by the built-in scenes.
const StandardGravity = 9.81
