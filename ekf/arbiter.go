package ekf

// HeadingChannel is any aiding channel contributing to the heading
// estimate. Stop must be idempotent and safe to call on an inactive
// channel.
type HeadingChannel interface {
	Name() string
	Active(ctx *StateContext) bool
	Stop(ctx *StateContext)
}

// HeadingArbiter owns the exclusivity policy between heading channels:
// before a channel that demands exclusive control of the heading
// activates, every competing channel is stopped synchronously, within the
// same cycle.
type HeadingArbiter struct {
	channels []HeadingChannel
}

// NewHeadingArbiter builds an arbiter over the given channels. More can be
// added later with Register.
func NewHeadingArbiter(channels ...HeadingChannel) *HeadingArbiter {
	return &HeadingArbiter{channels: channels}
}

// Register adds a channel to the arbitrated set.
func (a *HeadingArbiter) Register(ch HeadingChannel) {
	a.channels = append(a.channels, ch)
}

// StopCompeting stops every registered channel except the named one.
func (a *HeadingArbiter) StopCompeting(ctx *StateContext, except string) {
	for _, ch := range a.channels {
		if ch.Name() != except {
			ch.Stop(ctx)
		}
	}
}

// ActiveHeadingChannels returns the names of the currently active heading
// channels, for diagnostics.
func (a *HeadingArbiter) ActiveHeadingChannels(ctx *StateContext) []string {
	var active []string
	for _, ch := range a.channels {
		if ch.Active(ctx) {
			active = append(active, ch.Name())
		}
	}
	return active
}
