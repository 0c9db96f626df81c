package tui

import (
	"time"

	"github.com/hay-kot/a4s/internal/core/notify"
)

const (
	defaultToastTTL   = 5 * time.Second
	defaultMaxToasts  = 4
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 48
)

type toast struct {
	notification notify.Notification
	remaining    time.Duration
}

// ToastController manages the lifecycle of active toast notifications.
// It handles push, eviction, TTL countdown, and dismissal.
type ToastController struct {
	toasts  []toast
	ttl     time.Duration
	ticking bool
}

// NewToastController creates a controller whose toasts live for ttl.
// A non-positive ttl falls back to defaultToastTTL.
func NewToastController(ttl time.Duration) *ToastController {
	if ttl <= 0 {
		ttl = defaultToastTTL
	}
	return &ToastController{ttl: ttl}
}

// Push adds a notification to the toast stack. If the stack exceeds
// defaultMaxToasts, the oldest toast is evicted. Errors stay on screen twice
// as long as other levels.
func (c *ToastController) Push(n notify.Notification) {
	ttl := c.ttl
	if n.Level == notify.LevelError {
		ttl *= 2
	}
	c.toasts = append(c.toasts, toast{notification: n, remaining: ttl})
	if len(c.toasts) > defaultMaxToasts {
		c.toasts = c.toasts[len(c.toasts)-defaultMaxToasts:]
	}
}

// Tick decrements the remaining TTL on all toasts by d and removes
// any that have expired.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest (bottom-most) toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

// HasToasts returns true if there are any active toasts.
func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

// Toasts returns the current active toast slice.
func (c *ToastController) Toasts() []toast {
	return c.toasts
}

// SetTTL changes the lifetime of toasts pushed from now on. A non-positive
// ttl falls back to defaultToastTTL.
func (c *ToastController) SetTTL(ttl time.Duration) {
	if ttl <= 0 {
		ttl = defaultToastTTL
	}
	c.ttl = ttl
}

// Ticking returns whether the tick timer is currently running.
func (c *ToastController) Ticking() bool {
	return c.ticking
}

// SetTicking sets the tick timer state.
func (c *ToastController) SetTicking(v bool) {
	c.ticking = v
}
