package auditboard

import (
	"context"
	"time"
)

// throttle blocks until at least c.interval has passed since the previous
// dispatch, then records the new dispatch time. The slot is reserved before
// sleeping so the recorded time is the moment the caller is released. A
// canceled sleep gives the slot back unless a later caller has taken one.
func (c *Client) throttle(ctx context.Context) error {
	c.mu.Lock()
	now := c.clock.Now()
	var wait time.Duration
	if !c.lastDispatch.IsZero() {
		if elapsed := now.Sub(c.lastDispatch); elapsed < c.interval {
			wait = c.interval - elapsed
		}
	}
	previous := c.lastDispatch
	reserved := now.Add(wait)
	c.lastDispatch = reserved
	c.mu.Unlock()

	if wait <= 0 {
		return nil
	}

	c.metrics.observeThrottle(wait)
	if err := c.clock.Sleep(ctx, wait); err != nil {
		c.mu.Lock()
		if c.lastDispatch.Equal(reserved) {
			c.lastDispatch = previous
		}
		c.mu.Unlock()
		return err
	}
	return nil
}

// MinInterval returns the minimum spacing enforced between dispatches.
func (c *Client) MinInterval() time.Duration {
	return c.interval
}
