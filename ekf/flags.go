package ekf

// ControlFlags holds the estimator-wide mode flags and the per-channel
// activation flags. Each flag is an explicit named boolean so that its
// read and write sites can be enumerated and tested independently.
//
// Invariant: at most one of the absolute-heading channels (EvYaw, MagHdg,
// GPSYaw) is true at a time; the HeadingArbiter enforces this on
// activation of a body-frame source.
type ControlFlags struct {
	TiltAlign bool // initial tilt alignment is complete
	YawAlign  bool // an absolute heading reference has been established
	GPS       bool // GPS position/velocity fusion is engaged
	InAir     bool // the vehicle is airborne

	EvYaw  bool // external-vision heading fusion is active
	MagHdg bool // magnetometer heading fusion is active
	GPSYaw bool // GPS (dual-antenna) heading fusion is active

	EvYawFault bool // the vision heading channel was declared faulty
}

// InformationEvents latches one-shot notifications for the outer estimator
// loop. The loop reads and clears them once per cycle.
type InformationEvents struct {
	ResetYawToVision        bool
	StartingVisionYawFusion bool
}
