// Package ratelimit throttles outreach actions: a rolling 24h ceiling on
// how many actions may run, plus a minimum wall-clock gap between two
// consecutive actions.
package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Limiter owns its window state exclusively and is safe for concurrent
// use. State lives in memory for the duration of a run; it is not
// persisted, so a restart starts a fresh window (matching how the ledger
// alone carries cross-run guarantees).
type Limiter struct {
	mu         sync.Mutex
	maxPerDay  int
	minDelay   time.Duration
	maxDelay   time.Duration
	actions    []time.Time
	lastAction time.Time

	// now is swappable in tests.
	now func() time.Time
}

// Stats is a read-only snapshot of today's quota.
type Stats struct {
	ActionsToday int       `json:"actions_today"`
	MaxActions   int       `json:"max_actions"`
	Remaining    int       `json:"remaining"`
	LastAction   time.Time `json:"last_action,omitzero"`
}

const window = 24 * time.Hour

// New builds a limiter. minDelay is the enforced gap between actions;
// maxDelay only bounds the jitter reported by NextDelay. The enforced
// wait deliberately uses the fixed minimum rather than the jittered
// draw (see DESIGN.md).
func New(maxPerDay int, minDelay, maxDelay time.Duration) *Limiter {
	return &Limiter{
		maxPerDay: maxPerDay,
		minDelay:  minDelay,
		maxDelay:  maxDelay,
		now:       time.Now,
	}
}

// CanPerformAction reports whether an action may run now. When the daily
// ceiling is reached it returns false immediately, without sleeping.
// Otherwise, if the last action was less than the minimum delay ago, it
// blocks for the remainder before returning true. The wait is
// interruptible: a cancelled context aborts with ctx.Err() and no state
// change. The lock is never held across the sleep.
func (l *Limiter) CanPerformAction(ctx context.Context) (bool, error) {
	l.mu.Lock()
	now := l.now()
	l.pruneLocked(now)

	if len(l.actions) >= l.maxPerDay {
		l.mu.Unlock()
		return false, nil
	}

	var wait time.Duration
	if !l.lastAction.IsZero() {
		if elapsed := now.Sub(l.lastAction); elapsed < l.minDelay {
			wait = l.minDelay - elapsed
		}
	}
	l.mu.Unlock()

	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-timer.C:
		}
	}
	return true, nil
}

// RecordAction marks an action as taken now. It never sleeps; the next
// caller of CanPerformAction pays the spacing wait.
func (l *Limiter) RecordAction() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	l.actions = append(l.actions, now)
	l.lastAction = now
}

// NextDelay draws a suggested pause uniformly from [minDelay, maxDelay].
// Informational only: logged as backoff guidance, never enforced.
func (l *Limiter) NextDelay() time.Duration {
	if l.maxDelay <= l.minDelay {
		return l.minDelay
	}
	return l.minDelay + time.Duration(rand.Int63n(int64(l.maxDelay-l.minDelay)))
}

// DailyStats prunes the window and returns today's usage.
func (l *Limiter) DailyStats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pruneLocked(l.now())

	remaining := l.maxPerDay - len(l.actions)
	if remaining < 0 {
		remaining = 0
	}
	return Stats{
		ActionsToday: len(l.actions),
		MaxActions:   l.maxPerDay,
		Remaining:    remaining,
		LastAction:   l.lastAction,
	}
}

// pruneLocked drops timestamps older than the rolling window. Callers
// must hold mu.
func (l *Limiter) pruneLocked(now time.Time) {
	cutoff := now.Add(-window)
	kept := l.actions[:0]
	for _, t := range l.actions {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.actions = kept
}
