package api

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/ignite/pagecraft/internal/pkg/httputil"
)

// HealthStatus represents the overall health of the system.
type HealthStatus struct {
	Status  string                    `json:"status"` // "healthy", "degraded", "unhealthy"
	Version string                    `json:"version"`
	Uptime  string                    `json:"uptime"`
	Checks  map[string]ComponentCheck `json:"checks"`
}

// ComponentCheck represents the health of a single component.
type ComponentCheck struct {
	Status  string `json:"status"` // "up", "down", "degraded", "not_configured"
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}

// Pinger is implemented by the object storage archive.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports on the optional backing services. Every
// dependency may be nil; the service runs on in-memory state without them.
type HealthChecker struct {
	db          *sql.DB
	redisClient redis.UniversalClient
	archive     Pinger
	startTime   time.Time
}

// NewHealthChecker creates a new HealthChecker.
func NewHealthChecker(db *sql.DB, redisClient redis.UniversalClient, archive Pinger) *HealthChecker {
	return &HealthChecker{
		db:          db,
		redisClient: redisClient,
		archive:     archive,
		startTime:   time.Now(),
	}
}

const healthVersion = "1.0.0"

// HandleHealth returns the status of every component. Always 200; the
// status field carries the verdict.
//
//	GET /health
func (hc *HealthChecker) HandleHealth(w http.ResponseWriter, r *http.Request) {
	checks := hc.runAllChecks(r.Context())
	httputil.OK(w, HealthStatus{
		Status:  determineOverallStatus(checks),
		Version: healthVersion,
		Uptime:  formatUptime(time.Since(hc.startTime)),
		Checks:  checks,
	})
}

// HandleLiveness always returns 200 while the process is running.
//
//	GET /health/live
func (hc *HealthChecker) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]interface{}{
		"status": "alive",
		"uptime": formatUptime(time.Since(hc.startTime)),
	})
}

// HandleReadiness returns 503 when a configured dependency is down.
//
//	GET /health/ready
func (hc *HealthChecker) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	checks := hc.runAllChecks(r.Context())
	overall := determineOverallStatus(checks)

	ready := overall != "unhealthy"
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	httputil.JSON(w, status, map[string]interface{}{
		"ready":  ready,
		"status": overall,
		"checks": checks,
	})
}

// probe pings one backing service. A nil ping means not configured.
type probe struct {
	name    string
	timeout time.Duration
	slow    time.Duration
	ping    func(context.Context) error
}

func (hc *HealthChecker) probes() []probe {
	ps := []probe{
		{name: "database", timeout: 3 * time.Second, slow: time.Second},
		{name: "redis", timeout: 2 * time.Second, slow: 500 * time.Millisecond},
		{name: "s3", timeout: 3 * time.Second, slow: 2 * time.Second},
	}
	if hc.db != nil {
		ps[0].ping = hc.db.PingContext
	}
	if hc.redisClient != nil {
		ps[1].ping = func(ctx context.Context) error { return hc.redisClient.Ping(ctx).Err() }
	}
	if hc.archive != nil {
		ps[2].ping = hc.archive.Ping
	}
	return ps
}

func (hc *HealthChecker) runAllChecks(ctx context.Context) map[string]ComponentCheck {
	ps := hc.probes()
	results := make([]ComponentCheck, len(ps))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range ps {
		g.Go(func() error {
			results[i] = p.run(gctx)
			return nil
		})
	}
	_ = g.Wait()

	checks := make(map[string]ComponentCheck, len(ps))
	for i, p := range ps {
		checks[p.name] = results[i]
	}
	return checks
}

func (p probe) run(ctx context.Context) ComponentCheck {
	if p.ping == nil {
		return ComponentCheck{Status: "not_configured", Message: "using in-memory fallback"}
	}
	pingCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	err := p.ping(pingCtx)
	latency := time.Since(start)

	switch {
	case err != nil:
		return ComponentCheck{Status: "down", Latency: latency.String(), Message: fmt.Sprintf("ping failed: %v", err)}
	case latency > p.slow:
		return ComponentCheck{Status: "degraded", Latency: latency.String(), Message: fmt.Sprintf("slow response (%s)", latency)}
	}
	return ComponentCheck{Status: "up", Latency: latency.String(), Message: "connected"}
}

// determineOverallStatus is "unhealthy" when the database is down,
// "degraded" when anything else is down or slow, else "healthy".
func determineOverallStatus(checks map[string]ComponentCheck) string {
	if checks["database"].Status == "down" {
		return "unhealthy"
	}
	for _, c := range checks {
		if c.Status == "down" || c.Status == "degraded" {
			return "degraded"
		}
	}
	return "healthy"
}

func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
