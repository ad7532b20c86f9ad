package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestNewHealthMonitor verifies that NewHealthMonitor creates a properly
// configured instance with sane defaults.
func TestNewHealthMonitor(t *testing.T) {
	c := New("http://localhost:9999")
	monitor := NewHealthMonitor(c, zap.NewNop(), 5*time.Second)
	defer monitor.Stop()

	assert.NotNil(t, monitor)
	assert.Equal(t, 5*time.Second, monitor.interval)
	assert.Equal(t, 2*time.Second, monitor.timeout)
	assert.Equal(t, 3, monitor.maxFailures)
	assert.Equal(t, StatusUnknown, monitor.Status())
	assert.False(t, monitor.IsHealthy())
	assert.True(t, monitor.LastHealthy().IsZero())
}

// TestHealthMonitorHealthy verifies the monitor reports healthy while
// checks succeed.
func TestHealthMonitorHealthy(t *testing.T) {
	monitor := NewHealthMonitor(New("http://localhost:9999"), zap.NewNop(), 25*time.Millisecond)
	defer monitor.Stop()

	var mu sync.Mutex
	checkCalls := 0
	monitor.SetCheckFunction(func(ctx context.Context) error {
		mu.Lock()
		checkCalls++
		mu.Unlock()
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go monitor.Start(ctx)

	// Wait for several check cycles
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	calls := checkCalls
	mu.Unlock()

	// Initial check plus at least 2 interval checks
	assert.GreaterOrEqual(t, calls, 3, "Expected at least 3 health checks")
	assert.Equal(t, StatusHealthy, monitor.Status())
	assert.True(t, monitor.IsHealthy())
	assert.False(t, monitor.LastHealthy().IsZero())
}

// TestHealthMonitorFailureThreshold verifies the server is only marked
// unhealthy after consecutive failures, and that recovery is immediate.
func TestHealthMonitorFailureThreshold(t *testing.T) {
	monitor := NewHealthMonitor(New("http://localhost:9999"), zap.NewNop(), 20*time.Millisecond)
	defer monitor.Stop()

	var mu sync.Mutex
	failing := true
	monitor.SetCheckFunction(func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		if failing {
			return errors.New("connection refused")
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go monitor.Start(ctx)

	// After maxFailures checks the status should flip to unhealthy
	require.Eventually(t, func() bool {
		return monitor.Status() == StatusUnhealthy
	}, time.Second, 10*time.Millisecond, "Expected unhealthy after repeated failures")

	// Let checks succeed again: one success restores healthy
	mu.Lock()
	failing = false
	mu.Unlock()

	require.Eventually(t, func() bool {
		return monitor.Status() == StatusHealthy
	}, time.Second, 10*time.Millisecond, "Expected recovery to healthy")
}

// TestHealthMonitorSingleFailureDoesNotFlap verifies one failed check
// leaves a healthy status untouched.
func TestHealthMonitorSingleFailureDoesNotFlap(t *testing.T) {
	monitor := NewHealthMonitor(New("http://localhost:9999"), zap.NewNop(), 15*time.Millisecond)
	defer monitor.Stop()

	var mu sync.Mutex
	calls := 0
	monitor.SetCheckFunction(func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 2 {
			return errors.New("blip")
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go monitor.Start(ctx)

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, StatusHealthy, monitor.Status(),
		"A single failed check should not mark the server unhealthy")
}

// TestHealthMonitorOnChange verifies status transitions fire the callback.
func TestHealthMonitorOnChange(t *testing.T) {
	monitor := NewHealthMonitor(New("http://localhost:9999"), zap.NewNop(), 15*time.Millisecond)
	defer monitor.Stop()

	var mu sync.Mutex
	var transitions []Status
	monitor.SetOnChange(func(s Status) {
		mu.Lock()
		transitions = append(transitions, s)
		mu.Unlock()
	})

	monitor.SetCheckFunction(func(ctx context.Context) error {
		return errors.New("down")
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go monitor.Start(ctx)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(transitions) > 0
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, StatusUnhealthy, transitions[0])
}

// TestHealthMonitorDefaultCheck verifies the default check hits /health.
func TestHealthMonitorDefaultCheck(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	monitor := NewHealthMonitor(New(server.URL), zap.NewNop(), 20*time.Millisecond)
	defer monitor.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go monitor.Start(ctx)

	require.Eventually(t, func() bool {
		return monitor.IsHealthy()
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, paths)
	assert.Equal(t, "/health", paths[0])
}

// TestHealthMonitorStop verifies Stop terminates the loop.
func TestHealthMonitorStop(t *testing.T) {
	monitor := NewHealthMonitor(New("http://localhost:9999"), zap.NewNop(), 10*time.Millisecond)
	monitor.SetCheckFunction(func(ctx context.Context) error { return nil })

	done := make(chan struct{})
	go func() {
		monitor.Start(nil)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	monitor.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Monitor loop did not stop")
	}
}
