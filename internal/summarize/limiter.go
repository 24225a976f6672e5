package summarize

import "time"

// Limiter enforces a minimum wall-clock gap between consecutive completion
// calls. One instance is shared by every summarization pass since they share
// one outbound rate limit. Clock and sleep are injected so tests can run
// with fake time.
type Limiter struct {
    minDelay time.Duration
    now      func() time.Time
    sleep    func(time.Duration)
    last     time.Time
}

func NewLimiter(minDelay time.Duration) *Limiter {
    return &Limiter{minDelay: minDelay, now: time.Now, sleep: time.Sleep}
}

// NewLimiterWithClock is for tests.
func NewLimiterWithClock(minDelay time.Duration, now func() time.Time, sleep func(time.Duration)) *Limiter {
    return &Limiter{minDelay: minDelay, now: now, sleep: sleep}
}

// Wait blocks until at least minDelay has passed since the previous call,
// then records the new call timestamp.
func (l *Limiter) Wait() {
    if !l.last.IsZero() {
        if gap := l.minDelay - l.now().Sub(l.last); gap > 0 {
            l.sleep(gap)
        }
    }
    l.last = l.now()
}
