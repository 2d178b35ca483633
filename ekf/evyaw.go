package ekf

// EvYawFusion supervises the external-vision heading channel: it decides
// each cycle whether to activate the channel, fuse its observation, reset
// the heading state to it, or stop it, and it owns the channel's bounded
// reset-retry budget.
type EvYawFusion struct {
	params  *Params
	arbiter *HeadingArbiter

	status    AidSourceStatus
	inhibited bool

	// resetsAvailable is the remaining in-air recovery resets for the
	// current activation. Refilled on every Inactive->Active transition.
	resetsAvailable int

	// Previous-sample cache for the delta innovation. Updated every
	// cycle whatever the fusion outcome.
	prevSampleYaw float64
	yawPredPrev   float64
}

const evYawName = "EV yaw"

// NewEvYawFusion builds the vision heading supervisor. The arbiter is
// consulted when a body-frame activation must stop competing heading
// channels; it may be nil when the channel runs alone.
func NewEvYawFusion(params *Params, arbiter *HeadingArbiter) *EvYawFusion {
	return &EvYawFusion{params: params, arbiter: arbiter, resetsAvailable: yawResetBudget}
}

// Name identifies the channel to the heading arbiter and the event sink.
func (f *EvYawFusion) Name() string { return evYawName }

// Active reports whether the channel is the active heading contributor.
func (f *EvYawFusion) Active(ctx *StateContext) bool { return ctx.Flags.EvYaw }

// Status exposes the channel's aiding-source record for logging and tests.
func (f *EvYawFusion) Status() *AidSourceStatus { return &f.status }

// ResetsAvailable returns the remaining recovery-reset budget.
func (f *EvYawFusion) ResetsAvailable() int { return f.resetsAvailable }

// SetInhibited sets the administrative inhibit. While inhibited the
// continuing conditions fail and the channel soft-stops.
func (f *EvYawFusion) SetInhibited(inhibited bool) { f.inhibited = inhibited }

// Control runs one supervisor cycle for the latest vision sample.
// startingGate is the caller's cross-channel starting check (common data
// availability etc.); it is ANDed into the starting conditions. Control
// never fails: every path finishes the cycle's work for this channel and
// returns to the scheduler.
func (f *EvYawFusion) Control(ctx *StateContext, sample *VisionSample, startingGate bool) {
	f.run(ctx, sample, startingGate)

	// The previous-sample cache feeds the delta innovation next cycle;
	// it advances regardless of what the state machine did.
	f.prevSampleYaw = EulerYaw(sample.Quat)
	f.yawPredPrev = ctx.Engine.Yaw()
}

func (f *EvYawFusion) run(ctx *StateContext, sample *VisionSample, startingGate bool) {
	st := &f.status
	st.Reset()
	st.TimestampSample = sample.TimeUs

	st.Observation, st.ObservationVariance = yawObservation(sample, f.params.EvAttNoise)
	st.Innovation = yawInnovation(ctx.Engine.Yaw(), st.Observation)

	veto := evYawExclusivityVeto(&ctx.Flags, sample.PosFrame)
	if veto {
		// Direct fusion is not permitted; log a delta innovation instead.
		st.Innovation = deltaYawInnovation(ctx.Engine.Yaw(), f.yawPredPrev, st.Observation, f.prevSampleYaw)
	}

	continuing := evYawContinuingConditions(f.params, &ctx.Flags, f.inhibited, st, veto)
	starting := evYawStartingConditions(continuing, startingGate, st, ctx.Now)
	quality := evQualitySufficient(f.params, sample)

	if !ctx.Flags.EvYaw {
		if starting {
			f.start(ctx, sample, st)
		}
		return
	}

	st.FusionEnabled = true

	if !continuing {
		ctx.warn("stopping fusion, continuing conditions failing", "channel", evYawName)
		f.Stop(ctx)
		return
	}

	if sample.Reset {
		if !quality {
			// The source has reset but its quality is insufficient;
			// stop and resume once quality is acceptable.
			ctx.warn("stopping fusion, source reset with insufficient quality", "channel", evYawName)
			f.Stop(ctx)
			return
		}
		ctx.info("reset to observation", "channel", evYawName)
		ctx.Events.ResetYawToVision = true
		ctx.Engine.ResetYawState(st.Observation, st.ObservationVariance)
		st.setTimeLastFuse(ctx.Now)
	} else if quality {
		if ctx.Engine.FuseYaw(st.Innovation, st.ObservationVariance, st) {
			st.setTimeLastFuse(ctx.Now)
		}
	} else {
		st.InnovationRejected = true
	}

	if isTimedOut(st.TimeLastFuse, ctx.Now, f.params.NoAidTimeoutMax) {
		f.recoverOrStop(ctx, starting, quality, st)
	}
}

// recoverOrStop handles a fusion timeout three ways: a bounded recovery
// reset while budget remains and the data looks good, a declared fault when
// a reset already failed to fix a channel whose starting checks still pass,
// or a plain stop when the outage looks environmental.
func (f *EvYawFusion) recoverOrStop(ctx *StateContext, starting, quality bool, st *AidSourceStatus) {
	switch {
	case f.resetsAvailable > 0 && quality:
		ctx.warn("fusion failing, resetting", "channel", evYawName)
		ctx.Events.ResetYawToVision = true
		// The recovery reset targets the innovation, not the
		// observation as the discontinuity reset does.
		ctx.Engine.ResetYawState(st.Innovation, st.ObservationVariance)
		st.setTimeLastFuse(ctx.Now)
		if ctx.Flags.InAir {
			f.resetsAvailable--
		}

	case starting:
		// A reset did not fix a channel that otherwise looks healthy:
		// the sensor itself is suspect.
		ctx.warn("stopping fusion, sensor declared faulty", "channel", evYawName)
		ctx.Flags.EvYawFault = true
		f.Stop(ctx)

	default:
		ctx.warn("stopping fusion, fusion failing", "channel", evYawName)
		f.Stop(ctx)
	}
}

// start performs the Inactive->Active transition. Earth-frame samples may
// join an already-aligned heading or establish alignment themselves;
// body-frame samples demand exclusive control of the heading and clear the
// alignment flag, since a relative fix carries no absolute heading truth.
func (f *EvYawFusion) start(ctx *StateContext, sample *VisionSample, st *AidSourceStatus) {
	switch sample.PosFrame {
	case LocalFrameNED:
		if ctx.Flags.YawAlign {
			ctx.info("starting fusion", "channel", evYawName)
		} else {
			ctx.info("starting fusion, resetting state", "channel", evYawName)
			ctx.Engine.ResetYawState(st.Observation, st.ObservationVariance)
			ctx.Flags.YawAlign = true
		}

		st.setTimeLastFuse(ctx.Now)
		ctx.Events.StartingVisionYawFusion = true
		ctx.Flags.EvYaw = true

	case LocalFrameFRD:
		// A body-frame fix excludes every other absolute heading claim.
		if f.arbiter != nil {
			f.arbiter.StopCompeting(ctx, evYawName)
		}

		ctx.info("starting fusion, resetting state", "channel", evYawName)
		ctx.Engine.ResetYawState(st.Observation, st.ObservationVariance)
		st.setTimeLastFuse(ctx.Now)

		ctx.Events.StartingVisionYawFusion = true
		ctx.Flags.YawAlign = false
		ctx.Flags.EvYaw = true
	}

	if ctx.Flags.EvYaw {
		f.resetsAvailable = yawResetBudget
	}
}

// Stop disengages the channel: the status record is cleared and the
// activation flag dropped. Idempotent, and not a fault by itself.
func (f *EvYawFusion) Stop(ctx *StateContext) {
	if ctx.Flags.EvYaw {
		f.status.Reset()
		ctx.Flags.EvYaw = false
	}
}
