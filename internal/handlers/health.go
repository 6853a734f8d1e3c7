package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/plagiagia/OliveAIFarmer/internal/config"
	"github.com/plagiagia/OliveAIFarmer/internal/services"
	"gorm.io/gorm"
)

// HealthHandler handles the service health route
type HealthHandler struct {
	Cfg *config.Config
	DB  *gorm.DB
}

// HealthCheck handles GET /api/healthcheck
// @Summary Service health
// @Description Report database and Authorizer connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /healthcheck [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
