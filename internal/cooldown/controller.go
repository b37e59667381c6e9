// Package cooldown implements the per-source rate-limit admission gate.
//
// Each source is either Ready (zero seconds remaining) or Blocked. A
// rate-limit outcome blocks the source for the server-supplied wait or
// its configured fixed window; a periodic tick counts the block down; a
// successful fetch clears it immediately. This is a client-side gate
// protecting the externally imposed quota, not a distributed limiter.
package cooldown

import (
	"sync"

	"github.com/mmdoo7123/marketpulse/internal/domain"
	"github.com/mmdoo7123/marketpulse/internal/metrics"
)

type sourceState struct {
	remaining int
	window    int
}

// Controller tracks cooldown state for every configured source. All
// methods are safe for concurrent use; tick, success, and rate-limit
// updates commute, so their relative order within one second does not
// change the final state.
type Controller struct {
	mu     sync.Mutex
	states map[domain.Source]*sourceState
}

// NewController creates a controller with every source Ready. windows
// holds the fixed fallback window in seconds per source, used when a
// rate-limit response carries no explicit wait time.
func NewController(windows map[domain.Source]int) *Controller {
	states := make(map[domain.Source]*sourceState, len(windows))
	for src, window := range windows {
		states[src] = &sourceState{window: window}
	}
	return &Controller{states: states}
}

// CanFetch reports whether a new fetch for src is currently permitted.
func (c *Controller) CanFetch(src domain.Source) bool {
	return c.SecondsRemaining(src) == 0
}

// SecondsRemaining returns the remaining block time for src, zero when
// Ready. Unconfigured sources are always Ready.
func (c *Controller) SecondsRemaining(src domain.Source) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.states[src]; ok {
		return st.remaining
	}
	return 0
}

// Status returns the externally visible cooldown state of src.
func (c *Controller) Status(src domain.Source) domain.CooldownStatus {
	remaining := c.SecondsRemaining(src)
	return domain.CooldownStatus{
		Blocked:          remaining > 0,
		SecondsRemaining: remaining,
	}
}

// OnFetchSuccess clears any pending block for src. A success always
// unblocks, regardless of how much cooldown was left.
func (c *Controller) OnFetchSuccess(src domain.Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.states[src]; ok {
		st.remaining = 0
		c.publish(src, st)
	}
}

// OnRateLimited blocks src for waitSeconds, or for its fixed window when
// waitSeconds is not positive (server signaled a rate limit without an
// explicit wait time).
func (c *Controller) OnRateLimited(src domain.Source, waitSeconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.states[src]
	if !ok {
		return
	}
	if waitSeconds <= 0 {
		waitSeconds = st.window
	}
	st.remaining = waitSeconds
	metrics.RateLimitsTotal.WithLabelValues(string(src)).Inc()
	c.publish(src, st)
}

// Tick decrements every blocked source by one second, floored at zero.
// Ready sources are untouched.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for src, st := range c.states {
		if st.remaining > 0 {
			st.remaining--
			c.publish(src, st)
		}
	}
}

// AnyBlocked reports whether at least one source is currently blocked.
func (c *Controller) AnyBlocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, st := range c.states {
		if st.remaining > 0 {
			return true
		}
	}
	return false
}

// publish mirrors the state into the cooldown gauge. Caller holds c.mu.
func (c *Controller) publish(src domain.Source, st *sourceState) {
	metrics.CooldownSecondsRemaining.WithLabelValues(string(src)).Set(float64(st.remaining))
}
