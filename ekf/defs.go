// Package ekf implements the aiding-source control layer of an extended
// Kalman filter attitude/position estimator: per-channel supervisors that
// decide when a sensor channel may activate, fuse, reset the filter state
// or be declared faulty. The numerical measurement update itself lives
// behind the FusionEngine interface.
package ekf

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	Pi    = math.Pi
	Small = 1e-9
)

const (
	// minYawObsStdDev is the absolute floor on any heading observation
	// standard deviation, rad.
	minYawObsStdDev = 0.01

	// startCooldownUs is the minimum time since the last successful fuse
	// before a stopped channel may start again, µs.
	startCooldownUs = uint64(1e6)

	// yawResetBudget is the number of automatic recovery resets permitted
	// per activation of a yaw aiding channel.
	yawResetBudget = 5
)

// EvCtrl bits select which external-vision observations the estimator may
// consume.
const (
	EvCtrlHPos int32 = 1 << iota
	EvCtrlVPos
	EvCtrlVel
	EvCtrlYaw
)

// Params holds the estimator options read by the channel supervisors.
// Supervisors never write to it.
type Params struct {
	// EvCtrl is the external-vision control bitmask (EvCtrl* bits).
	EvCtrl int32 `yaml:"ev_ctrl"`

	// EvAttNoise is the noise floor for vision attitude observations, rad.
	EvAttNoise float64 `yaml:"ev_att_noise"`

	// EvQualityMin is the minimum vision quality metric required to fuse
	// or reset; zero or negative disables the check.
	EvQualityMin int32 `yaml:"ev_quality_min"`

	// NoAidTimeoutMax is the maximum time a channel may go without a
	// successful fuse before it is considered failing, µs.
	NoAidTimeoutMax uint64 `yaml:"no_aid_timeout_max"`
}

// DefaultParams returns the stock tuning.
func DefaultParams() *Params {
	return &Params{
		EvCtrl:          EvCtrlYaw,
		EvAttNoise:      0.05,
		EvQualityMin:    0,
		NoAidTimeoutMax: uint64(1e6),
	}
}

// LoadParams reads a YAML tuning file, applying defaults for any option the
// file omits.
func LoadParams(path string) (*Params, error) {
	p := DefaultParams()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading params: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing params %s: %w", path, err)
	}
	if p.EvAttNoise <= 0 {
		return nil, fmt.Errorf("params %s: ev_att_noise must be positive, got %g", path, p.EvAttNoise)
	}
	if p.NoAidTimeoutMax == 0 {
		return nil, fmt.Errorf("params %s: no_aid_timeout_max must be positive", path)
	}
	return p, nil
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// isTimedOut reports whether more than timeout µs have elapsed between the
// last event and now.
func isTimedOut(last, now, timeout uint64) bool {
	return last+timeout < now
}
