package ekf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func healthyStatus() *AidSourceStatus {
	return &AidSourceStatus{Observation: 0.5, ObservationVariance: 0.01}
}

func TestContinuingConditions(t *testing.T) {
	p := DefaultParams()
	flags := &ControlFlags{TiltAlign: true}

	assert.True(t, evYawContinuingConditions(p, flags, false, healthyStatus(), false))

	t.Run("channel disabled", func(t *testing.T) {
		disabled := *p
		disabled.EvCtrl = EvCtrlHPos | EvCtrlVel
		assert.False(t, evYawContinuingConditions(&disabled, flags, false, healthyStatus(), false))
	})

	t.Run("tilt not aligned", func(t *testing.T) {
		assert.False(t, evYawContinuingConditions(p, &ControlFlags{}, false, healthyStatus(), false))
	})

	t.Run("inhibited", func(t *testing.T) {
		assert.False(t, evYawContinuingConditions(p, flags, true, healthyStatus(), false))
	})

	t.Run("non-finite observation", func(t *testing.T) {
		st := healthyStatus()
		st.Observation = math.NaN()
		assert.False(t, evYawContinuingConditions(p, flags, false, st, false))
	})

	t.Run("non-finite variance", func(t *testing.T) {
		st := healthyStatus()
		st.ObservationVariance = math.Inf(1)
		assert.False(t, evYawContinuingConditions(p, flags, false, st, false))
	})

	t.Run("exclusivity veto", func(t *testing.T) {
		assert.False(t, evYawContinuingConditions(p, flags, false, healthyStatus(), true))
	})
}

func TestStartingConditionsCooldown(t *testing.T) {
	st := healthyStatus()

	// Never fused: may start as soon as the cooldown has elapsed from
	// time zero.
	assert.True(t, evYawStartingConditions(true, true, st, 2e6))

	st.setTimeLastFuse(10e6)
	assert.False(t, evYawStartingConditions(true, true, st, 10e6+startCooldownUs))
	assert.True(t, evYawStartingConditions(true, true, st, 10e6+startCooldownUs+1))

	// Starting is strictly stricter than continuing.
	assert.False(t, evYawStartingConditions(false, true, st, 20e6))
	assert.False(t, evYawStartingConditions(true, false, st, 20e6))
}

func TestExclusivityVeto(t *testing.T) {
	aligned := &ControlFlags{GPS: true, YawAlign: true}

	assert.False(t, evYawExclusivityVeto(aligned, LocalFrameNED))
	assert.True(t, evYawExclusivityVeto(aligned, LocalFrameFRD))
	assert.True(t, evYawExclusivityVeto(aligned, LocalFrameUnknown))

	// Without GPS or without alignment the veto never applies.
	assert.False(t, evYawExclusivityVeto(&ControlFlags{GPS: true}, LocalFrameFRD))
	assert.False(t, evYawExclusivityVeto(&ControlFlags{YawAlign: true}, LocalFrameFRD))
}

func TestQualitySufficient(t *testing.T) {
	p := DefaultParams()
	p.EvQualityMin = 20

	assert.True(t, evQualitySufficient(p, &VisionSample{Quality: 20}))
	assert.True(t, evQualitySufficient(p, &VisionSample{Quality: 90}))
	assert.False(t, evQualitySufficient(p, &VisionSample{Quality: 19}))

	p.EvQualityMin = 0
	assert.True(t, evQualitySufficient(p, &VisionSample{Quality: 0}))
}
