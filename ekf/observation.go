package ekf

import "math"

// yawObservation converts a vision sample into a heading observation and a
// floored observation variance. The variance never falls below the
// sensor-reported heading-axis variance, the configured noise floor or the
// absolute minimum.
func yawObservation(sample *VisionSample, noiseFloor float64) (obs, variance float64) {
	obs = EulerYaw(sample.Quat)
	variance = math.Max(sample.OrientationVar[2], math.Max(noiseFloor, minYawObsStdDev*minYawObsStdDev))
	return obs, variance
}

// yawInnovation is the signed angular residual between the predicted and
// observed heading, wrapped to (-Pi, Pi].
func yawInnovation(yaw, obs float64) float64 {
	return WrapPi(yaw - obs)
}

// deltaYawInnovation is the relative innovation used when the exclusivity
// veto forbids direct fusion: the wrapped difference between the change in
// the predicted heading and the change in the observed heading since the
// previous sample. Usable for diagnostic logging only, never for a state
// correction.
func deltaYawInnovation(yaw, yawPredPrev, sampleYaw, prevSampleYaw float64) float64 {
	return WrapPi(WrapPi(yaw-yawPredPrev) - WrapPi(sampleYaw-prevSampleYaw))
}
