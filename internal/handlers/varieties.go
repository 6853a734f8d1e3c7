package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/plagiagia/OliveAIFarmer/internal/services"
	"github.com/plagiagia/OliveAIFarmer/internal/utils"
	"gorm.io/gorm"
)

// VarietyHandler handles olive variety knowledge base routes
type VarietyHandler struct {
	DB *gorm.DB
}

// ListVarieties handles GET /api/varieties
// @Summary List olive varieties
// @Description List the variety knowledge base
// @Tags Varieties
// @Produce json
// @Success 200 {array} models.OliveVariety
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /varieties [get]
func (h *VarietyHandler) ListVarieties(c *fiber.Ctx) error {
	varieties, err := services.ListVarieties(h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, varieties, fiber.StatusOK)
}

// GetVariety handles GET /api/varieties/:variety
// @Summary Get an olive variety
// @Description Get one variety with its tasks, risks and care guidelines, by id or name
// @Tags Varieties
// @Produce json
// @Param variety path string true "Variety ID or name"
// @Success 200 {object} models.OliveVariety
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /varieties/{variety} [get]
func (h *VarietyHandler) GetVariety(c *fiber.Ctx) error {
	variety, err := services.GetVariety(h.DB, c.Params("variety"))
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, variety, fiber.StatusOK)
}

// GetRecommendations handles GET /api/varieties/:variety/recommendations?month=
// @Summary Get monthly care advice
// @Description Get a variety's tasks, in-season risks and care recommendations for a month; defaults to the current month
// @Tags Varieties
// @Produce json
// @Param variety path string true "Variety ID or name"
// @Param month query int false "Month 1-12"
// @Success 200 {object} services.MonthlyAdvice
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /varieties/{variety}/recommendations [get]
func (h *VarietyHandler) GetRecommendations(c *fiber.Ctx) error {
	month := time.Now().Month()
	if m, err := queryInt(c, "month"); err != nil {
		return utils.CustomErrorResponse(c, err)
	} else if m != nil {
		month = time.Month(*m)
	}

	advice, err := services.AdviceForMonth(h.DB, c.Params("variety"), month)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, advice, fiber.StatusOK)
}
