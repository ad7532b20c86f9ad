// Package client provides the Go client for the clipd HTTP API along with
// connectivity monitoring for long-lived editor sessions.
//
// # Overview
//
// The client wraps the server's REST endpoints behind typed methods:
//
//	Create(ctx, content)      POST   /api/clips
//	Get(ctx, id)              GET    /api/clips/{id}
//	Update(ctx, id, content)  PUT    /api/clips/{id}
//	Delete(ctx, id)           DELETE /api/clips/{id}
//	List(ctx)                 GET    /api/clips
//	Health(ctx)               GET    /health
//
// Unknown IDs surface as ErrNotFound so callers use errors.Is rather than
// HTTP status codes. All other failures carry the underlying transport or
// status error.
//
// # Health Monitoring
//
// HealthMonitor polls /health on an interval and tracks a three-state
// status (unknown, healthy, unhealthy). A server is only marked unhealthy
// after several consecutive failures, so one dropped request doesn't flap
// the UI; a single success marks it healthy again. Sessions subscribe via
// SetOnChange to surface connectivity to the user.
//
// # Retries
//
// CreateWithRetry retries clipboard creation with a fixed delay, covering
// the "open the editor before the server finished booting" case.
package client
