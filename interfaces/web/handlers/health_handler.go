package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"tps-admin/infrastructure/redis"
	"tps-admin/infrastructure/viewstate"
	"tps-admin/pkg/scheduler"
)

// Pinger is a remote dependency that can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	appName     string
	tpsAPI      Pinger
	redisClient *redis.RedisClient
	viewState   *viewstate.Store
	scheduler   scheduler.JobScheduler
}

// NewHealthHandler creates a new health handler. redisClient and jobs may be
// nil when those components are disabled.
func NewHealthHandler(
	appName string,
	tpsAPI Pinger,
	redisClient *redis.RedisClient,
	viewState *viewstate.Store,
	jobs scheduler.JobScheduler,
) *HealthHandler {
	return &HealthHandler{
		appName:     appName,
		tpsAPI:      tpsAPI,
		redisClient: redisClient,
		viewState:   viewState,
		scheduler:   jobs,
	}
}

// ComponentHealth represents health status of a component
type ComponentHealth struct {
	Status  string `json:"status"` // "ok", "error", "unavailable"
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// DetailedHealthResponse represents detailed health check response
type DetailedHealthResponse struct {
	Status     string                     `json:"status"` // "healthy", "degraded", "unhealthy"
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
	Metrics    *HealthMetrics             `json:"metrics,omitempty"`
}

// HealthMetrics reports in-process state
type HealthMetrics struct {
	MountedViews int                 `json:"mounted_views"`
	Jobs         []scheduler.JobInfo `json:"jobs,omitempty"`
}

// Health is the liveness probe.
// GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Server is running",
		"service": h.appName,
	})
}

// DetailedHealth checks the TPS API and Redis.
// GET /health/detailed
func (h *HealthHandler) DetailedHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	response := DetailedHealthResponse{
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentHealth),
		Metrics:    h.metrics(),
	}

	// the UI is useless without the TPS API
	apiHealth := h.checkTPSAPI(ctx)
	response.Components["tps_api"] = apiHealth

	redisHealth := h.checkRedis(ctx)
	response.Components["redis"] = redisHealth

	switch {
	case apiHealth.Status != "ok":
		response.Status = "unhealthy"
	case redisHealth.Status == "error":
		response.Status = "degraded"
	default:
		response.Status = "healthy"
	}

	statusCode := fiber.StatusOK
	if response.Status == "unhealthy" {
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(response)
}

func (h *HealthHandler) checkTPSAPI(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.tpsAPI == nil {
		return ComponentHealth{
			Status:  "error",
			Message: "TPS API not configured",
		}
	}

	if err := h.tpsAPI.Ping(ctx); err != nil {
		return ComponentHealth{
			Status:  "error",
			Message: "TPS API check failed: " + err.Error(),
		}
	}

	return ComponentHealth{
		Status:  "ok",
		Message: "Reachable",
		Latency: time.Since(start).String(),
	}
}

func (h *HealthHandler) checkRedis(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.redisClient == nil {
		return ComponentHealth{
			Status:  "unavailable",
			Message: "Redis not configured",
		}
	}

	if err := h.redisClient.Ping(ctx); err != nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Redis ping failed: " + err.Error(),
		}
	}

	return ComponentHealth{
		Status:  "ok",
		Message: "Connected",
		Latency: time.Since(start).String(),
	}
}

func (h *HealthHandler) metrics() *HealthMetrics {
	metrics := &HealthMetrics{}
	if h.viewState != nil {
		metrics.MountedViews = h.viewState.Len()
	}
	if h.scheduler != nil {
		metrics.Jobs = h.scheduler.ListJobs()
	}
	return metrics
}
