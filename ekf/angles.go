package ekf

import (
	"math"

	"github.com/westphae/quaternion"
)

// WrapPi wraps an angle into the canonical range (-Pi, Pi].
func WrapPi(a float64) float64 {
	if !IsFinite(a) {
		return a
	}
	for a <= -Pi {
		a += 2 * Pi
	}
	for a > Pi {
		a -= 2 * Pi
	}
	return a
}

// EulerYaw extracts the heading angle from a body-to-earth rotation
// quaternion, rad, in (-Pi, Pi].
func EulerYaw(q quaternion.Quaternion) float64 {
	return math.Atan2(2*(q.W*q.Z+q.X*q.Y), 1-2*(q.Y*q.Y+q.Z*q.Z))
}

// YawQuat returns the rotation quaternion for a pure heading rotation.
func YawQuat(yaw float64) quaternion.Quaternion {
	return quaternion.Quaternion{W: math.Cos(yaw / 2), Z: math.Sin(yaw / 2)}
}

// SetQuatYaw returns q with its heading component replaced by yaw, leaving
// roll and pitch untouched.
func SetQuatYaw(q quaternion.Quaternion, yaw float64) quaternion.Quaternion {
	delta := WrapPi(yaw - EulerYaw(q))
	return quaternion.Prod(YawQuat(delta), q).Unit()
}
