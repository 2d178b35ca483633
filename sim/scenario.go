// Package sim replays synthetic external-vision heading scenarios through
// the channel supervisor. It synthesizes a "true" heading track, corrupts
// it into noisy vision samples with scripted discontinuities and quality
// dropouts, and checks how the supervisor and a reference heading filter
// track it.
package sim

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jsr2022/PX4-Autopilot/ekf"
)

// Window is a half-open time interval [FromUs, ToUs), µs.
type Window struct {
	FromUs uint64 `yaml:"from_us"`
	ToUs   uint64 `yaml:"to_us"`
}

func (w Window) contains(t uint64) bool { return t >= w.FromUs && t < w.ToUs }

// Scenario scripts one simulation run.
type Scenario struct {
	Name string `yaml:"name"`

	DurationUs uint64 `yaml:"duration_us"`
	StepUs     uint64 `yaml:"step_us"`

	// TurnRate is the true heading rate, rad/s. The simulated gyro
	// measures it exactly apart from GyroBias.
	TurnRate float64 `yaml:"turn_rate"`
	GyroBias float64 `yaml:"gyro_bias"`

	// YawNoise is the standard deviation of the vision heading
	// observation, rad.
	YawNoise float64 `yaml:"yaw_noise"`

	Frame     ekf.PositionFrame `yaml:"-"`
	FrameName string            `yaml:"frame"`
	Quality   int32             `yaml:"quality"`

	// QualityDropouts are windows during which the source reports zero
	// quality. Long dropouts drive the fusion-timeout paths.
	QualityDropouts []Window `yaml:"quality_dropouts"`

	// Discontinuities are times at which the source re-localizes: the
	// sample carries the reset flag and the source heading jumps by
	// JumpRad from then on.
	Discontinuities []uint64 `yaml:"discontinuities"`
	JumpRad         float64  `yaml:"jump_rad"`

	Seed uint64 `yaml:"seed"`
}

// DefaultScenario is a one-minute gentle turn with a mid-run source
// re-localization and a short quality dropout.
func DefaultScenario() Scenario {
	return Scenario{
		Name:       "gentle-turn",
		DurationUs: 60e6,
		StepUs:     1e5,
		TurnRate:   0.05,
		GyroBias:   0.002,
		YawNoise:   0.02,
		Frame:      ekf.LocalFrameNED,
		Quality:    80,
		QualityDropouts: []Window{
			{FromUs: 40e6, ToUs: 41e6},
		},
		Discontinuities: []uint64{25e6},
		JumpRad:         0.4,
		Seed:            1,
	}
}

// ParseFrame converts a frame name into its tag.
func ParseFrame(name string) (ekf.PositionFrame, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NED":
		return ekf.LocalFrameNED, nil
	case "FRD":
		return ekf.LocalFrameFRD, nil
	case "", "UNKNOWN":
		return ekf.LocalFrameUnknown, nil
	default:
		return ekf.LocalFrameUnknown, fmt.Errorf("unknown frame %q", name)
	}
}

// LoadScenario reads a YAML scenario, starting from the defaults.
func LoadScenario(path string) (Scenario, error) {
	sc := DefaultScenario()
	data, err := os.ReadFile(path)
	if err != nil {
		return sc, fmt.Errorf("reading scenario: %w", err)
	}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return sc, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if sc.FrameName != "" {
		if sc.Frame, err = ParseFrame(sc.FrameName); err != nil {
			return sc, fmt.Errorf("scenario %s: %w", path, err)
		}
	}
	if sc.StepUs == 0 || sc.DurationUs == 0 {
		return sc, fmt.Errorf("scenario %s: step_us and duration_us must be positive", path)
	}
	return sc, nil
}
