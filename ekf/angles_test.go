package ekf

import (
	"math"
	"testing"

	"github.com/westphae/quaternion"
)

const tolerance = 1e-9

func TestWrapPi(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{-1, -1},
		{Pi, Pi},
		{-Pi, Pi},
		{Pi + 0.1, -Pi + 0.1},
		{-Pi - 0.1, Pi - 0.1},
		{2 * Pi, 0},
		{-2 * Pi, 0},
		{7 * Pi, Pi},
		{-7*Pi + 0.25, Pi + 0.25 - 2*Pi},
	}
	for _, c := range cases {
		got := WrapPi(c.in)
		if math.Abs(got-c.want) > tolerance {
			t.Errorf("WrapPi(%v) = %v, want %v", c.in, got, c.want)
		}
		if got <= -Pi || got > Pi {
			t.Errorf("WrapPi(%v) = %v, outside (-Pi, Pi]", c.in, got)
		}
	}
}

func TestWrapPiNonFinite(t *testing.T) {
	if !math.IsNaN(WrapPi(math.NaN())) {
		t.Error("WrapPi(NaN) should stay NaN")
	}
	if !math.IsInf(WrapPi(math.Inf(1)), 1) {
		t.Error("WrapPi(+Inf) should stay +Inf")
	}
}

func TestYawQuatRoundTrip(t *testing.T) {
	yaws := []float64{0, 0.1, 0.5, 1, 2, 3, -3, -2, -1, -0.5, -0.1, Pi - 1e-6, -Pi + 1e-6}
	for _, yaw := range yaws {
		got := EulerYaw(YawQuat(yaw))
		if math.Abs(WrapPi(got-yaw)) > 1e-6 {
			t.Errorf("EulerYaw(YawQuat(%v)) = %v", yaw, got)
		}
	}
}

// rollQuat and pitchQuat build elementary rotations so tilted orientations
// can be composed in the ZYX order.
func rollQuat(roll float64) quaternion.Quaternion {
	return quaternion.Quaternion{W: math.Cos(roll / 2), X: math.Sin(roll / 2)}
}

func pitchQuat(pitch float64) quaternion.Quaternion {
	return quaternion.Quaternion{W: math.Cos(pitch / 2), Y: math.Sin(pitch / 2)}
}

func TestEulerYawTilted(t *testing.T) {
	q := quaternion.Prod(YawQuat(1.2), pitchQuat(0.3), rollQuat(-0.2))
	if got := EulerYaw(q); math.Abs(got-1.2) > 1e-6 {
		t.Errorf("EulerYaw of tilted quat = %v, want 1.2", got)
	}
}

func TestSetQuatYawPreservesTilt(t *testing.T) {
	q := quaternion.Prod(YawQuat(0.4), pitchQuat(0.25), rollQuat(0.1))
	q2 := SetQuatYaw(q, -2.0)

	if got := EulerYaw(q2); math.Abs(WrapPi(got+2.0)) > 1e-6 {
		t.Errorf("yaw after SetQuatYaw = %v, want -2.0", got)
	}

	// Rotating a body-frame vector that only senses roll/pitch must give
	// the same result before and after the yaw change: take the earth
	// z-axis expressed in body frame.
	down := quaternion.Quaternion{Z: 1}
	before := quaternion.Prod(q.Conj(), down, q)
	after := quaternion.Prod(q2.Conj(), down, q2)
	if math.Abs(before.X-after.X) > 1e-6 ||
		math.Abs(before.Y-after.Y) > 1e-6 ||
		math.Abs(before.Z-after.Z) > 1e-6 {
		t.Errorf("tilt changed: before %+v after %+v", before, after)
	}
}
