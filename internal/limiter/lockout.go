package limiter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of a pgx pool the lockout uses.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Lockout blocks login attempts for an (email, client) pair after repeated failures.
// Rows live in the login_lockouts table so every replica sees the same state.
type Lockout struct {
	q        Querier
	window   time.Duration
	maxFails int
	blockFor time.Duration
	now      func() time.Time
}

// NewLockout constructs a lockout that blocks for blockFor once maxFails failures
// land within window of each other.
func NewLockout(q Querier, window time.Duration, maxFails int, blockFor time.Duration) *Lockout {
	return &Lockout{q: q, window: window, maxFails: maxFails, blockFor: blockFor, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (l *Lockout) WithClock(now func() time.Time) *Lockout {
	l.now = now
	return l
}

// Allow reports whether a login may be attempted and, if not, how long to wait.
func (l *Lockout) Allow(ctx context.Context, emailHash, ipHash string) (bool, time.Duration, error) {
	const q = `SELECT blocked_until FROM login_lockouts WHERE email_hash = $1 AND ip_hash = $2`
	var blockedUntil time.Time
	err := l.q.QueryRow(ctx, q, emailHash, ipHash).Scan(&blockedUntil)
	if errors.Is(err, pgx.ErrNoRows) {
		return true, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	if now := l.now(); blockedUntil.After(now) {
		return false, blockedUntil.Sub(now), nil
	}
	return true, 0, nil
}

// Success forgets earlier failures of the pair.
func (l *Lockout) Success(ctx context.Context, emailHash, ipHash string) error {
	const q = `DELETE FROM login_lockouts WHERE email_hash = $1 AND ip_hash = $2`
	_, err := l.q.Exec(ctx, q, emailHash, ipHash)
	return err
}

// Failure records a failed attempt. It reports true with the block duration when
// this failure triggers a block. A failure older than window restarts the count.
func (l *Lockout) Failure(ctx context.Context, emailHash, ipHash string) (bool, time.Duration, error) {
	const q = `
INSERT INTO login_lockouts (email_hash, ip_hash, fail_count, updated_at)
VALUES ($1, $2, 1, $3)
ON CONFLICT (email_hash, ip_hash) DO UPDATE SET
  fail_count = CASE WHEN login_lockouts.updated_at < $4 THEN 1 ELSE login_lockouts.fail_count + 1 END,
  updated_at = $3
RETURNING fail_count`
	now := l.now()
	var fails int
	if err := l.q.QueryRow(ctx, q, emailHash, ipHash, now, now.Add(-l.window)).Scan(&fails); err != nil {
		return false, 0, err
	}
	if fails < l.maxFails {
		return false, 0, nil
	}

	const block = `UPDATE login_lockouts SET fail_count = 0, blocked_until = $3 WHERE email_hash = $1 AND ip_hash = $2`
	if _, err := l.q.Exec(ctx, block, emailHash, ipHash, now.Add(l.blockFor)); err != nil {
		return false, 0, err
	}
	return true, l.blockFor, nil
}
