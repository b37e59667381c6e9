package cooldown

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmdoo7123/marketpulse/internal/domain"
)

func newTestController() *Controller {
	return NewController(map[domain.Source]int{
		domain.SourcePosts: 900,
		domain.SourceNews:  60,
	})
}

func TestController_StartsReady(t *testing.T) {
	c := newTestController()

	for _, src := range domain.Sources {
		assert.True(t, c.CanFetch(src))
		assert.Equal(t, 0, c.SecondsRemaining(src))
		assert.Equal(t, domain.CooldownStatus{Blocked: false, SecondsRemaining: 0}, c.Status(src))
	}
}

func TestController_RateLimitWithServerWait(t *testing.T) {
	c := newTestController()

	c.OnRateLimited(domain.SourcePosts, 45)

	assert.False(t, c.CanFetch(domain.SourcePosts))
	assert.Equal(t, 45, c.SecondsRemaining(domain.SourcePosts))

	for i := 0; i < 45; i++ {
		c.Tick()
	}
	assert.True(t, c.CanFetch(domain.SourcePosts))
	assert.Equal(t, 0, c.SecondsRemaining(domain.SourcePosts))
}

func TestController_RateLimitFallsBackToFixedWindow(t *testing.T) {
	c := newTestController()

	c.OnRateLimited(domain.SourcePosts, 0)
	assert.Equal(t, 900, c.SecondsRemaining(domain.SourcePosts))

	c.OnRateLimited(domain.SourceNews, -3)
	assert.Equal(t, 60, c.SecondsRemaining(domain.SourceNews))
}

func TestController_TickIsMonotoneAndFloorsAtZero(t *testing.T) {
	c := newTestController()
	c.OnRateLimited(domain.SourceNews, 3)

	prev := c.SecondsRemaining(domain.SourceNews)
	for i := 0; i < 10; i++ {
		c.Tick()
		cur := c.SecondsRemaining(domain.SourceNews)
		assert.LessOrEqual(t, cur, prev)
		assert.GreaterOrEqual(t, cur, 0)
		prev = cur
	}
	assert.Equal(t, 0, c.SecondsRemaining(domain.SourceNews))
}

func TestController_SuccessAlwaysClears(t *testing.T) {
	c := newTestController()

	c.OnRateLimited(domain.SourcePosts, 500)
	c.OnFetchSuccess(domain.SourcePosts)

	assert.True(t, c.CanFetch(domain.SourcePosts))
	assert.Equal(t, 0, c.SecondsRemaining(domain.SourcePosts))
}

func TestController_SourcesAreIndependent(t *testing.T) {
	c := newTestController()

	c.OnRateLimited(domain.SourcePosts, 120)

	assert.False(t, c.CanFetch(domain.SourcePosts))
	assert.True(t, c.CanFetch(domain.SourceNews))

	c.OnRateLimited(domain.SourceNews, 10)
	c.OnFetchSuccess(domain.SourcePosts)

	assert.True(t, c.CanFetch(domain.SourcePosts))
	assert.Equal(t, 10, c.SecondsRemaining(domain.SourceNews))
}

func TestController_UnconfiguredSourceIsAlwaysReady(t *testing.T) {
	c := NewController(map[domain.Source]int{domain.SourcePosts: 900})

	c.OnRateLimited(domain.SourceNews, 30)
	assert.True(t, c.CanFetch(domain.SourceNews))
	assert.Equal(t, 0, c.SecondsRemaining(domain.SourceNews))
}

func TestController_BlockedScenario120Ticks(t *testing.T) {
	c := newTestController()

	c.OnRateLimited(domain.SourceNews, 120)
	assert.Equal(t, domain.CooldownStatus{Blocked: true, SecondsRemaining: 120}, c.Status(domain.SourceNews))

	for i := 0; i < 120; i++ {
		c.Tick()
	}
	assert.Equal(t, domain.CooldownStatus{Blocked: false, SecondsRemaining: 0}, c.Status(domain.SourceNews))
}

func TestController_AnyBlocked(t *testing.T) {
	c := newTestController()
	assert.False(t, c.AnyBlocked())

	c.OnRateLimited(domain.SourceNews, 2)
	assert.True(t, c.AnyBlocked())

	c.Tick()
	c.Tick()
	assert.False(t, c.AnyBlocked())
}
