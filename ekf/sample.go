package ekf

import "github.com/westphae/quaternion"

// PositionFrame tags the reference frame of an external-vision sample.
// The tag decides whether the sample can be fused directly against the
// global heading state and whether activating on it requires, or itself
// establishes, yaw alignment.
type PositionFrame int32

const (
	// LocalFrameUnknown marks a sample whose frame the source did not
	// declare. Treated as not earth-referenced.
	LocalFrameUnknown PositionFrame = iota

	// LocalFrameNED marks an earth-referenced (north-east-down) sample.
	LocalFrameNED

	// LocalFrameFRD marks a body-relative (front-right-down) sample.
	LocalFrameFRD
)

func (f PositionFrame) String() string {
	switch f {
	case LocalFrameNED:
		return "NED"
	case LocalFrameFRD:
		return "FRD"
	default:
		return "unknown"
	}
}

// VisionSample is one timestamped external-vision measurement.
type VisionSample struct {
	TimeUs uint64 // sample time, µs

	Quat           quaternion.Quaternion // body-to-frame orientation
	OrientationVar [3]float64            // per-axis orientation variance, rad²

	PosFrame PositionFrame

	// Reset is the source's discontinuity flag: true when the source
	// re-localized and its output is not continuous with earlier samples.
	Reset bool

	// Quality is the source's self-reported quality metric.
	Quality int32
}
