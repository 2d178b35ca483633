package ekf

// Competing heading channels. Only their stop semantics matter to the
// vision heading supervisor: each clears its own status record and
// activation flag when stopped. Their full per-cycle supervisors follow
// the same shape as EvYawFusion and are out of this layer's hands.

// MagFusion is the magnetometer heading channel.
type MagFusion struct {
	status AidSourceStatus
}

func (m *MagFusion) Name() string { return "mag heading" }

// Active reports whether magnetometer heading fusion is engaged.
func (m *MagFusion) Active(ctx *StateContext) bool { return ctx.Flags.MagHdg }

// Status exposes the channel's aiding-source record.
func (m *MagFusion) Status() *AidSourceStatus { return &m.status }

// Stop disengages magnetometer heading fusion. Idempotent.
func (m *MagFusion) Stop(ctx *StateContext) {
	if ctx.Flags.MagHdg {
		m.status.Reset()
		ctx.Flags.MagHdg = false
		ctx.info("stopping fusion", "channel", m.Name())
	}
}

// GPSYawFusion is the GPS (dual-antenna) heading channel.
type GPSYawFusion struct {
	status AidSourceStatus
}

func (g *GPSYawFusion) Name() string { return "GPS yaw" }

func (g *GPSYawFusion) Active(ctx *StateContext) bool { return ctx.Flags.GPSYaw }

func (g *GPSYawFusion) Status() *AidSourceStatus { return &g.status }

func (g *GPSYawFusion) Stop(ctx *StateContext) {
	if ctx.Flags.GPSYaw {
		g.status.Reset()
		ctx.Flags.GPSYaw = false
		ctx.info("stopping fusion", "channel", g.Name())
	}
}

// GPSFusion is the GPS position/velocity channel. It competes for the
// heading because its consistency checks depend on a validated heading
// reference.
type GPSFusion struct {
	status AidSourceStatus
}

func (g *GPSFusion) Name() string { return "GPS" }

func (g *GPSFusion) Active(ctx *StateContext) bool { return ctx.Flags.GPS }

func (g *GPSFusion) Status() *AidSourceStatus { return &g.status }

func (g *GPSFusion) Stop(ctx *StateContext) {
	if ctx.Flags.GPS {
		g.status.Reset()
		ctx.Flags.GPS = false
		ctx.info("stopping fusion", "channel", g.Name())
	}
}
