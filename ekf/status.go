package ekf

// AidSourceStatus records one aiding channel's current observation,
// innovation and fusion bookkeeping. It is owned by the estimator and
// mutated only by the channel's own supervisor, once per cycle.
type AidSourceStatus struct {
	TimestampSample uint64 // time of the measurement used this cycle, µs

	Observation         float64 // scalar measurement, rad for heading channels
	ObservationVariance float64 // observation noise variance, always > 0 once set

	Innovation         float64 // predicted minus observed, wrapped to (-Pi, Pi]
	InnovationVariance float64 // innovation variance reported by the fusion engine
	TestRatio          float64 // normalized innovation squared relative to the gate

	InnovationRejected bool // innovation computed but not applied this cycle
	Fused              bool // a state update from this channel happened this cycle
	FusionEnabled      bool // the channel is the active contributor

	// TimeLastFuse is the time of the last successful state update, µs.
	// It never decreases; timeout detection and the start cooldown poll it.
	TimeLastFuse uint64
}

// Reset clears the per-cycle observation and fusion-outcome fields.
// TimeLastFuse is preserved so the start cooldown keeps its meaning across
// a stop/start of the channel.
func (s *AidSourceStatus) Reset() {
	s.TimestampSample = 0
	s.Observation = 0
	s.ObservationVariance = 0
	s.Innovation = 0
	s.InnovationVariance = 0
	s.TestRatio = 0
	s.InnovationRejected = false
	s.Fused = false
	s.FusionEnabled = false
}

// setTimeLastFuse advances TimeLastFuse, never rewinding it.
func (s *AidSourceStatus) setTimeLastFuse(t uint64) {
	if t > s.TimeLastFuse {
		s.TimeLastFuse = t
	}
}
