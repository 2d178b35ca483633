package ekf

// StateContext is the shared estimator state handed by reference to every
// channel supervisor call. The outer loop owns it, advances Now once per
// cycle and consumes Events afterwards.
//
// A channel supervisor reads Now, Engine and Flags, and may mutate only:
// the orientation state (through Engine.ResetYawState / Engine.FuseYaw),
// Flags.YawAlign, its own activation and fault flags, and Events. Stopping
// a competing channel goes through the HeadingArbiter, never by writing
// another channel's flag directly.
type StateContext struct {
	// Now is the delayed IMU sample time driving this cycle, µs,
	// monotonic.
	Now uint64

	Engine FusionEngine
	Flags  ControlFlags
	Events InformationEvents

	Sink EventSink
}

func (c *StateContext) info(msg string, args ...any) {
	if c.Sink != nil {
		c.Sink.Info(msg, args...)
	}
}

func (c *StateContext) warn(msg string, args ...any) {
	if c.Sink != nil {
		c.Sink.Warn(msg, args...)
	}
}
