// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sixcities/internal/platform/postgres"
)

// fakeConn records whether it was closed.
type fakeConn struct {
	closed bool
}

func (conn *fakeConn) Close() { conn.closed = true }

// flakyDialer fails the first failures calls.
type flakyDialer struct {
	failures int
	calls    int
}

func (dialer *flakyDialer) Dial(_ context.Context, _ string) (*fakeConn, error) {
	dialer.calls++
	if dialer.calls <= dialer.failures {
		return nil, errors.New("connection refused")
	}
	return &fakeConn{}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

var fastPolicy = postgres.RetryPolicy{Attempts: 5, Backoff: time.Millisecond}

/*
TestSupervisor_Connect covers the retry budget.
*/
func TestSupervisor_Connect(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		wantCalls int
		wantErr   bool
	}{
		{"first_attempt", 0, 1, false},
		{"fourth_attempt", 3, 4, false},
		{"last_attempt", 4, 5, false},
		{"exhausted", 10, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialer := &flakyDialer{failures: tt.failures}
			supervisor := postgres.NewSupervisor(dialer.Dial, fastPolicy, discardLogger())

			err := supervisor.Connect(context.Background(), "postgres://localhost/test")

			assert.Equal(t, tt.wantCalls, dialer.calls)
			if tt.wantErr {
				assert.ErrorIs(t, err, postgres.ErrConnection)
				_, connErr := supervisor.Conn()
				assert.ErrorIs(t, connErr, postgres.ErrNotConnected)
				return
			}
			require.NoError(t, err)
			conn, err := supervisor.Conn()
			require.NoError(t, err)
			assert.NotNil(t, conn)
		})
	}
}

/*
TestSupervisor_Lifecycle checks double connect and disconnect.
*/
func TestSupervisor_Lifecycle(t *testing.T) {
	dialer := &flakyDialer{}
	supervisor := postgres.NewSupervisor(dialer.Dial, fastPolicy, discardLogger())

	assert.ErrorIs(t, supervisor.Disconnect(), postgres.ErrNotConnected)

	require.NoError(t, supervisor.Connect(context.Background(), "dsn"))
	assert.ErrorIs(t, supervisor.Connect(context.Background(), "dsn"), postgres.ErrAlreadyConnected)
	assert.Equal(t, 1, dialer.calls)

	conn, err := supervisor.Conn()
	require.NoError(t, err)

	require.NoError(t, supervisor.Disconnect())
	assert.True(t, conn.closed)
	assert.ErrorIs(t, supervisor.Disconnect(), postgres.ErrNotConnected)

	// Reconnect after a clean disconnect
	require.NoError(t, supervisor.Connect(context.Background(), "dsn"))
}

/*
TestSupervisor_ContextCancelStopsBackoff ensures a cancelled context does
not wait out the remaining attempts.
*/
func TestSupervisor_ContextCancelStopsBackoff(t *testing.T) {
	dialer := &flakyDialer{failures: 10}
	slowPolicy := postgres.RetryPolicy{Attempts: 5, Backoff: time.Hour}
	supervisor := postgres.NewSupervisor(dialer.Dial, slowPolicy, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := supervisor.Connect(ctx, "dsn")
	assert.ErrorIs(t, err, postgres.ErrConnection)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, dialer.calls)
}
