package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrBreakerOpen = errors.New("circuit breaker is open")

type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half_open"
)

// BreakerConfig tunes a Breaker. Zero values select the defaults.
type BreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = 5
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 15 * time.Second
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = 1
	}
	return c
}

// Breaker trips after a run of consecutive failures and probes the
// dependency with a bounded number of half-open requests before closing
// again.
type Breaker struct {
	mu  sync.Mutex
	cfg BreakerConfig
	now func() time.Time

	state     BreakerState
	failures  int
	openedAt  time.Time
	probes    int
	probeWins int
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	return &Breaker{
		cfg:   cfg.withDefaults(),
		now:   time.Now,
		state: BreakerClosed,
	}
}

// Allow reports whether a request may proceed right now.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrBreakerOpen
		}
		b.state = BreakerHalfOpen
		b.probes = 0
		b.probeWins = 0
	}

	if b.state == BreakerHalfOpen {
		if b.probes >= b.cfg.HalfOpenMaxReq {
			return ErrBreakerOpen
		}
		b.probes++
	}

	return nil
}

func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		b.failures = 0
	case BreakerHalfOpen:
		if b.probes > 0 {
			b.probes--
		}
		b.probeWins++
		if b.probeWins >= b.cfg.HalfOpenMaxReq && b.probes == 0 {
			b.state = BreakerClosed
			b.failures = 0
			b.openedAt = time.Time{}
		}
	}
}

func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	case BreakerHalfOpen:
		if b.probes > 0 {
			b.probes--
		}
		b.trip()
	case BreakerOpen:
		b.openedAt = b.now()
	}
}

func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return BreakerHalfOpen
	}
	return b.state
}

func (b *Breaker) trip() {
	b.state = BreakerOpen
	b.openedAt = b.now()
	b.probes = 0
	b.probeWins = 0
}
