package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/abstratium/partner/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Pinger checks that a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PublicConfig is the configuration published to clients
// @name HandlerPublicConfig
type PublicConfig struct {
	LogLevel       string `json:"logLevel" example:"info"`
	BuildTimestamp string `json:"buildTimestamp" example:"2026-01-23T12:00:00Z"`
	DefaultCountry string `json:"defaultCountry" example:"CH"`
}

// SystemHandler serves health and public configuration
type SystemHandler struct {
	BaseHandler
	db        Pinger
	public    PublicConfig
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger, public PublicConfig) *SystemHandler {
	return &SystemHandler{
		db:        db,
		public:    public,
		startTime: time.Now(),
	}
}

// HealthResponse represents the health check response
// @name HandlerHealthResponse
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Database  string `json:"database" example:"ok"`
	GoVersion string `json:"goVersion" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// Health godoc
// @ID           health
// @Summary      Liveness and database check
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[HealthResponse]
// @Failure      503 {object} APIResponse[HealthResponse]
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Database:  "ok",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		c.JSON(http.StatusServiceUnavailable, dto.Response{Success: false, Data: resp})
		return
	}
	h.Success(c, resp)
}

// GetPublicConfig godoc
// @ID           getPublicConfig
// @Summary      Public client configuration
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[PublicConfig]
// @Router       /public/config [get]
func (h *SystemHandler) GetPublicConfig(c *gin.Context) {
	h.Success(c, h.public)
}
