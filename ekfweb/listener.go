package ekfweb

import (
	"github.com/jsr2022/PX4-Autopilot/sim"
)

// Snapshot converts one simulation cycle into a broadcastable message.
func Snapshot(r *sim.Runner, rec sim.CycleRecord) *ChannelData {
	st := r.Vision.Status()
	flags := r.Ctx.Flags
	return &ChannelData{
		T: rec.TUs,

		Observation:         st.Observation,
		ObservationVariance: st.ObservationVariance,
		Innovation:          st.Innovation,
		InnovationVariance:  st.InnovationVariance,
		TestRatio:           st.TestRatio,
		InnovationRejected:  st.InnovationRejected,
		FusionEnabled:       st.FusionEnabled,
		TimeLastFuse:        st.TimeLastFuse,

		Yaw:             r.Filter.Yaw(),
		YawVariance:     r.Filter.Covariance(),
		YawAlign:        flags.YawAlign,
		EvYaw:           flags.EvYaw,
		MagHdg:          flags.MagHdg,
		GPSYaw:          flags.GPSYaw,
		EvYawFault:      flags.EvYawFault,
		ResetsAvailable: rec.ResetsAvailable,
	}
}
