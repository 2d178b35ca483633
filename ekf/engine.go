package ekf

// FusionEngine is the numerical side of the estimator as seen by the
// channel supervisors: the current heading estimate, the scalar
// measurement update and the heading reset primitive.
type FusionEngine interface {
	// Yaw returns the current heading estimate, rad, in (-Pi, Pi].
	Yaw() float64

	// FuseYaw applies a scalar heading update from the given innovation
	// and observation variance. The engine may reject the update
	// internally (innovation gating); it fills the status record's
	// InnovationVariance, TestRatio, Fused and InnovationRejected fields
	// either way and reports whether the state was updated.
	FuseYaw(innovation, variance float64, status *AidSourceStatus) bool

	// ResetYawState replaces the heading component of the state and
	// inflates the associated covariance. It always succeeds.
	ResetYawState(yaw, variance float64)
}
