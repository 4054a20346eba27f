package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/user-console/internal/application/dto"
)

// HealthHandler /health y /metrics.
type HealthHandler struct {
	app         string
	env         string
	promHandler nethttp.Handler
}

// NewHealthHandler construye el handler con el registro por defecto de Prometheus.
func NewHealthHandler(app, env string) *HealthHandler {
	return &HealthHandler{app: app, env: env, promHandler: promhttp.Handler()}
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok", App: h.app, Env: h.env})
}

// Metrics expone las métricas de Prometheus (store simulado y caché de usuarios).
func (h *HealthHandler) Metrics() fiber.Handler {
	return adaptor.HTTPHandler(h.promHandler)
}
