package ekf

// evYawContinuingConditions reports whether it is currently safe to keep
// using the vision heading channel: the channel is enabled in the options,
// the filter has completed tilt alignment, the channel is not
// administratively inhibited, the observation is numerically valid and the
// exclusivity veto does not apply.
func evYawContinuingConditions(p *Params, flags *ControlFlags, inhibited bool, st *AidSourceStatus, veto bool) bool {
	return (p.EvCtrl&EvCtrlYaw) != 0 &&
		flags.TiltAlign &&
		!inhibited &&
		IsFinite(st.Observation) &&
		IsFinite(st.ObservationVariance) &&
		!veto
}

// evYawStartingConditions reports whether the channel may begin or resume:
// the continuing conditions hold, the caller's common starting gate holds
// and the channel has not fused within the start cooldown. The cooldown
// prevents rapid re-activation thrash.
func evYawStartingConditions(continuing, callerGate bool, st *AidSourceStatus, now uint64) bool {
	return callerGate && continuing && isTimedOut(st.TimeLastFuse, now, startCooldownUs)
}

// evYawExclusivityVeto reports whether the GPS-aligned-heading veto applies:
// with GPS fusion engaged and an absolute heading reference already
// established, only earth-referenced vision heading is compatible with the
// GPS heading consistency checks.
func evYawExclusivityVeto(flags *ControlFlags, frame PositionFrame) bool {
	return flags.GPS && flags.YawAlign && frame != LocalFrameNED
}

// evQualitySufficient reports whether the sample's self-reported quality
// clears the configured minimum. A non-positive minimum disables the check.
func evQualitySufficient(p *Params, sample *VisionSample) bool {
	return p.EvQualityMin <= 0 || sample.Quality >= p.EvQualityMin
}
