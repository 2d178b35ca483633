// Package kalman provides a minimal heading filter implementing the
// ekf.FusionEngine contract: a two-state (heading, gyro-bias) Kalman filter
// with an innovation gate on the scalar heading update and covariance
// inflation on heading resets.
package kalman

import (
	"math"

	"github.com/skelterjohn/go.matrix"

	"github.com/jsr2022/PX4-Autopilot/ekf"
)

const (
	// defaultGate is the innovation gate in standard deviations.
	defaultGate = 5.0

	// Process noise per second: heading random walk and bias drift.
	qYaw  = 0.01
	qBias = 1e-5

	// minResetVariance floors the covariance set on a heading reset.
	minResetVariance = 0.01 * 0.01
)

// HeadingFilter tracks heading and heading-gyro bias. State order in the
// covariance matrix: yaw, bias.
type HeadingFilter struct {
	yaw  float64 // rad, wrapped to (-Pi, Pi]
	bias float64 // rad/s

	P *matrix.DenseMatrix // 2x2 covariance of state uncertainty

	// GateSize is the innovation gate in standard deviations. Updates
	// whose normalized innovation squared exceeds GateSize² are rejected.
	GateSize float64

	t uint64 // time of last propagation, µs
}

// NewHeadingFilter returns a filter with an unknown heading: the heading
// variance starts at (2Pi)² so the first observation dominates.
func NewHeadingFilter() *HeadingFilter {
	return &HeadingFilter{
		P: matrix.Diagonal([]float64{
			(2 * ekf.Pi) * (2 * ekf.Pi),
			0.05 * 0.05,
		}),
		GateSize: defaultGate,
	}
}

// Yaw returns the current heading estimate, rad, in (-Pi, Pi].
func (k *HeadingFilter) Yaw() float64 { return k.yaw }

// Bias returns the current gyro bias estimate, rad/s.
func (k *HeadingFilter) Bias() float64 { return k.bias }

// Covariance returns the heading variance, rad².
func (k *HeadingFilter) Covariance() float64 { return k.P.Get(0, 0) }

// Predict propagates the state to nowUs using the measured heading rate
// gyroZ, rad/s.
func (k *HeadingFilter) Predict(nowUs uint64, gyroZ float64) {
	if k.t == 0 {
		k.t = nowUs
		return
	}
	if nowUs <= k.t {
		return
	}
	dt := float64(nowUs-k.t) / 1e6
	k.t = nowUs

	k.yaw = ekf.WrapPi(k.yaw + (gyroZ-k.bias)*dt)

	// P = F P F' + Q with F = [[1, -dt], [0, 1]]
	ff := matrix.MakeDenseMatrix([]float64{
		1, -dt,
		0, 1,
	}, 2, 2)
	qq := matrix.Diagonal([]float64{qYaw * dt, qBias * dt})
	k.P = matrix.Sum(matrix.Product(ff, matrix.Product(k.P, ff.Transpose())), qq)
}

// FuseYaw applies a scalar heading update. The innovation is predicted
// minus observed, so the correction is subtracted. Returns false and marks
// the status rejected when the normalized innovation fails the gate.
func (k *HeadingFilter) FuseYaw(innovation, variance float64, status *ekf.AidSourceStatus) bool {
	s := k.P.Get(0, 0) + variance
	status.InnovationVariance = s
	status.TestRatio = (innovation * innovation) / (k.GateSize * k.GateSize * s)

	if status.TestRatio > 1 || !ekf.IsFinite(status.TestRatio) {
		status.InnovationRejected = true
		return false
	}

	// K = P H' / s with H = [1 0]
	hh := matrix.MakeDenseMatrix([]float64{1, 0}, 1, 2)
	kk := matrix.Scaled(matrix.Product(k.P, hh.Transpose()), 1/s)

	k.yaw = ekf.WrapPi(k.yaw - kk.Get(0, 0)*innovation)
	k.bias -= kk.Get(1, 0) * innovation

	k.P = matrix.Product(matrix.Difference(matrix.Eye(2), matrix.Product(kk, hh)), k.P)

	status.InnovationRejected = false
	status.Fused = true
	return true
}

// ResetYawState replaces the heading state and inflates its covariance;
// the bias cross terms are dropped since they no longer describe the new
// heading.
func (k *HeadingFilter) ResetYawState(yaw, variance float64) {
	k.yaw = ekf.WrapPi(yaw)
	k.P.Set(0, 0, math.Max(variance, minResetVariance))
	k.P.Set(0, 1, 0)
	k.P.Set(1, 0, 0)
}
