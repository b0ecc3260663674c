package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Status represents the health status of the service or one of its dependencies.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult holds the outcome of a single dependency check.
type CheckResult struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Report is the aggregate readiness report for the service.
type Report struct {
	Status  Status                 `json:"status"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// Checker probes the dependencies the scheduling service needs to serve traffic.
// The plan store is required; readiness fails when it is unreachable.
type Checker struct {
	planStore *redis.Client
	version   string
}

// NewChecker creates a health checker for the given plan store client.
func NewChecker(planStore *redis.Client, version string) *Checker {
	return &Checker{
		planStore: planStore,
		version:   version,
	}
}

// Check probes every dependency and returns the aggregate report.
func (c *Checker) Check(ctx context.Context) *Report {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	report := &Report{
		Status:  StatusHealthy,
		Version: c.version,
		Checks:  make(map[string]CheckResult),
	}

	if c.planStore != nil {
		start := time.Now()
		if err := c.planStore.Ping(checkCtx).Err(); err != nil {
			report.Status = StatusUnhealthy
			report.Checks["plan_store"] = CheckResult{
				Status: StatusUnhealthy,
				Error:  err.Error(),
			}
		} else {
			report.Checks["plan_store"] = CheckResult{
				Status:    StatusHealthy,
				LatencyMs: time.Since(start).Milliseconds(),
			}
		}
	}

	return report
}

// LiveHandler returns a Gin handler for liveness probes.
func (c *Checker) LiveHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ReadyHandler returns a Gin handler for readiness probes.
func (c *Checker) ReadyHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		report := c.Check(ctx.Request.Context())

		httpStatus := http.StatusOK
		if report.Status != StatusHealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		ctx.JSON(httpStatus, report)
	}
}
