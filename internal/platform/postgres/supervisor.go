// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/sixcities/internal/platform/constants"
)

var (
	// ErrConnection is returned when every connection attempt failed.
	ErrConnection = errors.New("postgres: unable to establish connection")

	// ErrAlreadyConnected is returned by Connect on a live supervisor.
	ErrAlreadyConnected = errors.New("postgres: already connected")

	// ErrNotConnected is returned by Disconnect and Conn before Connect succeeded.
	ErrNotConnected = errors.New("postgres: not connected")
)

// Closer is the handle a [Supervisor] owns. *pgxpool.Pool satisfies it.
type Closer interface {
	Close()
}

// DialFunc opens one connection handle. It is called once per attempt.
type DialFunc[T Closer] func(ctx context.Context, dsn string) (T, error)

// RetryPolicy bounds how long Connect keeps trying.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// DefaultRetryPolicy is five attempts one second apart.
var DefaultRetryPolicy = RetryPolicy{
	Attempts: constants.ConnectRetryCount,
	Backoff:  constants.ConnectRetryBackoff,
}

// Supervisor owns the single storage connection of the process.
//
// # Lifecycle
//
// Disconnected -> Connect -> Connected -> Disconnect -> Disconnected.
// Connect retries a failed dial with a fixed backoff until the attempt budget
// is spent, then fails with [ErrConnection].
type Supervisor[T Closer] struct {
	dial   DialFunc[T]
	policy RetryPolicy
	logger *slog.Logger

	mu        sync.Mutex
	conn      T
	connected bool
}

// NewSupervisor wires a dial step with a retry policy.
func NewSupervisor[T Closer](dial DialFunc[T], policy RetryPolicy, logger *slog.Logger) *Supervisor[T] {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	return &Supervisor[T]{dial: dial, policy: policy, logger: logger}
}

/*
Connect dials the database, retrying on failure.

Parameters:
  - ctx: context.Context (cancellation aborts the backoff wait)
  - dsn: string

Returns:
  - error: ErrAlreadyConnected, ErrConnection (wrapping the last dial error) or ctx.Err()
*/
func (supervisor *Supervisor[T]) Connect(ctx context.Context, dsn string) error {
	supervisor.mu.Lock()
	defer supervisor.mu.Unlock()

	if supervisor.connected {
		return ErrAlreadyConnected
	}

	var lastErr error
	for attempt := 1; attempt <= supervisor.policy.Attempts; attempt++ {

		// ── 1. Dial ───────────────────────────────────────────────────────
		conn, err := supervisor.dial(ctx, dsn)
		if err == nil {
			supervisor.conn = conn
			supervisor.connected = true
			supervisor.logger.Info("database_connected", slog.Int("attempt", attempt))
			return nil
		}

		lastErr = err
		supervisor.logger.Warn("database_connect_attempt_failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", supervisor.policy.Attempts),
			slog.Any("error", err),
		)

		if attempt == supervisor.policy.Attempts {
			break
		}

		// ── 2. Backoff ────────────────────────────────────────────────────
		timer := time.NewTimer(supervisor.policy.Backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %w", ErrConnection, ctx.Err())
		case <-timer.C:
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrConnection, supervisor.policy.Attempts, lastErr)
}

// Disconnect closes the owned handle.
func (supervisor *Supervisor[T]) Disconnect() error {
	supervisor.mu.Lock()
	defer supervisor.mu.Unlock()

	if !supervisor.connected {
		return ErrNotConnected
	}

	supervisor.conn.Close()

	var zero T
	supervisor.conn = zero
	supervisor.connected = false

	supervisor.logger.Info("database_disconnected")
	return nil
}

// Conn returns the live handle.
func (supervisor *Supervisor[T]) Conn() (T, error) {
	supervisor.mu.Lock()
	defer supervisor.mu.Unlock()

	if !supervisor.connected {
		var zero T
		return zero, ErrNotConnected
	}
	return supervisor.conn, nil
}
