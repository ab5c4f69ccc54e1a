package clock

import "time"

// Clock abstracts time.Now so the billing core stays deterministic under test.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant. Tests advance it explicitly.
type FixedClock struct {
	t time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t.UTC()}
}

func (c *FixedClock) Now() time.Time {
	return c.t
}

func (c *FixedClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func (c *FixedClock) Set(t time.Time) {
	c.t = t.UTC()
}
