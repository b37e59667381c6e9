package cooldown

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Runner drives the controller's one-second tick from an injected clock,
// so tests can advance time deterministically with a fake clock.
type Runner struct {
	controller *Controller
	clock      clockwork.Clock
}

// NewRunner creates a runner ticking the given controller.
func NewRunner(controller *Controller, clock clockwork.Clock) *Runner {
	return &Runner{controller: controller, clock: clock}
}

// Run ticks the controller once per second until ctx is cancelled.
// Ticking a fully Ready controller is a no-op, so the loop does not need
// to start and stop with individual blocks.
func (r *Runner) Run(ctx context.Context) {
	ticker := r.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			r.controller.Tick()
		}
	}
}
