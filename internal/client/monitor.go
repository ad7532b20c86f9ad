package client

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status describes the monitor's view of the remote server.
type Status string

const (
	// StatusUnknown means no health check has completed yet
	StatusUnknown Status = "unknown"
	// StatusHealthy means the last health check succeeded
	StatusHealthy Status = "healthy"
	// StatusUnhealthy means checks failed maxFailures times in a row
	StatusUnhealthy Status = "unhealthy"
)

// HealthMonitor polls the clipd server's /health endpoint and tracks
// connectivity for UI surfaces: an editor session uses it to tell the user
// whether auto-save can be expected to succeed.
// Thread-safe: all methods are safe for concurrent access.
type HealthMonitor struct {
	client      *Client
	logger      *zap.Logger
	checkFunc   func(ctx context.Context) error // Function to perform health check
	onChange    func(Status)                    // Callback on status transitions
	ctx         context.Context
	cancel      context.CancelFunc
	lastCheck   time.Time // Timestamp of the last check attempt
	lastHealthy time.Time // Timestamp of the last successful check
	status      Status
	interval    time.Duration // How often to check server health
	timeout     time.Duration // Per-check timeout
	fails       int           // Consecutive failed checks
	maxFailures int           // Failures before marking unhealthy
	mu          sync.RWMutex
	wg          sync.WaitGroup
}

// NewHealthMonitor creates a monitor that checks the server every interval.
// The server is marked unhealthy after 3 consecutive failures; a single
// successful check marks it healthy again.
func NewHealthMonitor(c *Client, logger *zap.Logger, interval time.Duration) *HealthMonitor {
	ctx, cancel := context.WithCancel(context.Background())

	return &HealthMonitor{
		client:      c,
		logger:      logger,
		interval:    interval,
		timeout:     2 * time.Second,
		maxFailures: 3,
		status:      StatusUnknown,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// SetOnChange sets the callback invoked on every status transition.
// The callback runs on its own goroutine so slow handlers can't stall
// the check loop.
func (h *HealthMonitor) SetOnChange(callback func(Status)) {
	h.onChange = callback
}

// SetCheckFunction overrides the default health check. Used by tests and
// custom health probes.
func (h *HealthMonitor) SetCheckFunction(checkFunc func(ctx context.Context) error) {
	h.checkFunc = checkFunc
}

// Start begins the monitoring loop in the current goroutine, blocking
// until ctx or the monitor's internal context is canceled. An initial
// check runs immediately so the status is populated without waiting a
// full interval.
func (h *HealthMonitor) Start(ctx context.Context) {
	h.wg.Add(1)
	defer h.wg.Done()

	if ctx == nil {
		ctx = h.ctx
	}
	if h.checkFunc == nil {
		h.checkFunc = h.defaultHealthCheck
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.logger.Debug("health monitor started", zap.Duration("interval", h.interval))

	h.check()

	for {
		select {
		case <-ticker.C:
			h.check()
		case <-ctx.Done():
			h.logger.Debug("health monitor stopping")
			return
		case <-h.ctx.Done():
			h.logger.Debug("health monitor stopping")
			return
		}
	}
}

// Stop shuts down the monitor and waits for the loop to exit.
func (h *HealthMonitor) Stop() {
	h.cancel()
	h.wg.Wait()
}

// Status returns the current server status.
func (h *HealthMonitor) Status() Status {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

// IsHealthy reports whether the last check cycle found the server healthy.
func (h *HealthMonitor) IsHealthy() bool {
	return h.Status() == StatusHealthy
}

// LastHealthy returns when the server last passed a health check.
// Zero if it never has.
func (h *HealthMonitor) LastHealthy() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastHealthy
}

// check performs a single health check and updates the tracked status,
// firing the OnChange callback on transitions.
func (h *HealthMonitor) check() {
	ctx, cancel := context.WithTimeout(h.ctx, h.timeout)
	err := h.checkFunc(ctx)
	cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastCheck = time.Now()
	previous := h.status

	if err != nil {
		h.fails++
		h.logger.Debug("health check failed",
			zap.Int("consecutive", h.fails),
			zap.Int("threshold", h.maxFailures),
			zap.Error(err))

		if h.fails >= h.maxFailures {
			h.status = StatusUnhealthy
		}
	} else {
		if previous == StatusUnhealthy {
			h.logger.Info("server recovered")
		}
		h.status = StatusHealthy
		h.fails = 0
		h.lastHealthy = time.Now()
	}

	if h.status != previous && h.onChange != nil {
		// Deliver off the lock
		status := h.status
		go h.onChange(status)
	}
}

// defaultHealthCheck delegates to the client's Health call.
func (h *HealthMonitor) defaultHealthCheck(ctx context.Context) error {
	return h.client.Health(ctx)
}
