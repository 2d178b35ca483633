// Package ekfweb serves a live view of the heading channel over a
// websocket: every estimator cycle one ChannelData message is broadcast to
// all connected clients.
package ekfweb

const Port = 8000

// ChannelData is the per-cycle snapshot broadcast to clients.
type ChannelData struct {
	T uint64 `json:"t_us"`

	// Aiding-source record
	Observation         float64 `json:"observation"`
	ObservationVariance float64 `json:"observation_variance"`
	Innovation          float64 `json:"innovation"`
	InnovationVariance  float64 `json:"innovation_variance"`
	TestRatio           float64 `json:"test_ratio"`
	InnovationRejected  bool    `json:"innovation_rejected"`
	FusionEnabled       bool    `json:"fusion_enabled"`
	TimeLastFuse        uint64  `json:"time_last_fuse"`

	// Estimator state
	Yaw             float64 `json:"yaw"`
	YawVariance     float64 `json:"yaw_variance"`
	YawAlign        bool    `json:"yaw_align"`
	EvYaw           bool    `json:"ev_yaw"`
	MagHdg          bool    `json:"mag_hdg"`
	GPSYaw          bool    `json:"gps_yaw"`
	EvYawFault      bool    `json:"ev_yaw_fault"`
	ResetsAvailable int     `json:"resets_available"`
}
