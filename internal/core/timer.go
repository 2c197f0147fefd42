package core

import "time"

// Pacer fires at most once per interval when polled from a frame loop. The
// viewer uses it to space out automatic reseeds.
type Pacer struct {
	interval    time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewPacer constructs a Pacer firing every interval (one second when
// interval <= 0).
func NewPacer(interval time.Duration) *Pacer {
	p := &Pacer{now: time.Now}
	p.SetInterval(interval)
	return p
}

// SetInterval changes the firing interval. It is safe to call from the main loop.
func (p *Pacer) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	p.interval = interval
}

// Interval returns the configured interval.
func (p *Pacer) Interval() time.Duration { return p.interval }

// Reset discards accumulated time so the next firing is a full interval away.
func (p *Pacer) Reset() {
	p.accumulator = 0
	p.last = time.Time{}
}

// Ready reports whether a full interval elapsed since the previous firing.
func (p *Pacer) Ready() bool {
	now := p.now()
	if p.last.IsZero() {
		p.last = now
	}
	p.accumulator += now.Sub(p.last)
	p.last = now
	if p.accumulator >= p.interval {
		p.accumulator -= p.interval
		return true
	}
	return false
}
