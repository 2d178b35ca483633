package sim

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/jsr2022/PX4-Autopilot/ekf"
	"github.com/jsr2022/PX4-Autopilot/kalman"
)

// CycleRecord captures one estimator cycle for analysis.
type CycleRecord struct {
	TUs uint64

	TrueYaw      float64
	SourceYaw    float64 // true heading plus the source's localization offset
	EstimatedYaw float64

	Observation float64
	Innovation  float64

	Active          bool
	Rejected        bool
	YawAlign        bool
	ResetsAvailable int
}

// Runner drives the estimator cycle-by-cycle through a scenario.
type Runner struct {
	Scenario Scenario

	Ctx    *ekf.StateContext
	Filter *kalman.HeadingFilter
	Vision *ekf.EvYawFusion

	Mag    *ekf.MagFusion
	GPSYaw *ekf.GPSYawFusion
	GPS    *ekf.GPSFusion

	noise distuv.Normal

	trueYaw float64
	offset  float64 // accumulated source re-localization offset
	tUs     uint64
}

// NewRunner wires a full channel set: the vision heading supervisor under
// test, the competing channels behind a heading arbiter, and the reference
// heading filter as the fusion engine. The magnetometer channel starts
// active so body-frame scenarios exercise the exclusivity rule.
func NewRunner(sc Scenario, params *ekf.Params, sink ekf.EventSink) *Runner {
	filter := kalman.NewHeadingFilter()

	ctx := &ekf.StateContext{Engine: filter, Sink: sink}
	ctx.Flags.TiltAlign = true
	ctx.Flags.InAir = true
	ctx.Flags.MagHdg = true
	ctx.Flags.YawAlign = true

	mag := &ekf.MagFusion{}
	gpsYaw := &ekf.GPSYawFusion{}
	gps := &ekf.GPSFusion{}
	arbiter := ekf.NewHeadingArbiter(mag, gpsYaw, gps)

	vision := ekf.NewEvYawFusion(params, arbiter)
	arbiter.Register(vision)

	return &Runner{
		Scenario: sc,
		Ctx:      ctx,
		Filter:   filter,
		Vision:   vision,
		Mag:      mag,
		GPSYaw:   gpsYaw,
		GPS:      gps,
		noise: distuv.Normal{
			Mu:    0,
			Sigma: sc.YawNoise,
			Src:   rand.NewSource(sc.Seed),
		},
	}
}

// Run steps through the whole scenario and returns the per-cycle records.
func (r *Runner) Run() []CycleRecord {
	n := int(r.Scenario.DurationUs / r.Scenario.StepUs)
	records := make([]CycleRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, r.Step())
	}
	return records
}

// Step advances the simulation by one estimator cycle.
func (r *Runner) Step() CycleRecord {
	sc := r.Scenario
	prev := r.tUs
	r.tUs += sc.StepUs
	dt := float64(sc.StepUs) / 1e6

	r.trueYaw = ekf.WrapPi(r.trueYaw + sc.TurnRate*dt)

	r.Ctx.Now = r.tUs
	r.Filter.Predict(r.tUs, sc.TurnRate+sc.GyroBias)

	reset := false
	for _, d := range sc.Discontinuities {
		if d > prev && d <= r.tUs {
			r.offset = ekf.WrapPi(r.offset + sc.JumpRad)
			reset = true
		}
	}

	quality := sc.Quality
	for _, w := range sc.QualityDropouts {
		if w.contains(r.tUs) {
			quality = 0
		}
	}

	obsYaw := ekf.WrapPi(r.trueYaw + r.offset + r.noise.Rand())
	sample := &ekf.VisionSample{
		TimeUs:         r.tUs,
		Quat:           ekf.YawQuat(obsYaw),
		OrientationVar: [3]float64{0, 0, sc.YawNoise * sc.YawNoise},
		PosFrame:       sc.Frame,
		Reset:          reset,
		Quality:        quality,
	}

	r.Vision.Control(r.Ctx, sample, true)

	st := r.Vision.Status()
	return CycleRecord{
		TUs:             r.tUs,
		TrueYaw:         r.trueYaw,
		SourceYaw:       ekf.WrapPi(r.trueYaw + r.offset),
		EstimatedYaw:    r.Filter.Yaw(),
		Observation:     st.Observation,
		Innovation:      st.Innovation,
		Active:          r.Ctx.Flags.EvYaw,
		Rejected:        st.InnovationRejected,
		YawAlign:        r.Ctx.Flags.YawAlign,
		ResetsAvailable: r.Vision.ResetsAvailable(),
	}
}
