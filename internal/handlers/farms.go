package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/plagiagia/OliveAIFarmer/internal/services"
	"github.com/plagiagia/OliveAIFarmer/internal/utils"
	"gorm.io/gorm"
)

// FarmHandler handles farm routes
type FarmHandler struct {
	DB *gorm.DB
}

// ListFarms handles GET /api/farms
// @Summary List farms
// @Description List the authenticated user's farms with tree counts
// @Tags Farms
// @Produce json
// @Success 200 {array} services.FarmView
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /farms [get]
func (h *FarmHandler) ListFarms(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	farms, err := services.ListFarms(h.DB, user.ID)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, farms, fiber.StatusOK)
}

// GetFarm handles GET /api/farms/:farmId
// @Summary Get a farm
// @Description Get one farm with tree count and lifetime harvest stats
// @Tags Farms
// @Produce json
// @Param farmId path string true "Farm ID"
// @Success 200 {object} services.FarmView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /farms/{farmId} [get]
func (h *FarmHandler) GetFarm(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	farm, err := services.GetFarm(h.DB, user.ID, c.Params("farmId"))
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, farm, fiber.StatusOK)
}

// GetFarmStats handles GET /api/farms/:farmId/stats
// @Summary Farm harvest stats
// @Description Lifetime harvest totals and averages for one farm
// @Tags Farms
// @Produce json
// @Param farmId path string true "Farm ID"
// @Success 200 {object} services.FarmStats
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /farms/{farmId}/stats [get]
func (h *FarmHandler) GetFarmStats(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	stats, err := services.GetFarmStats(h.DB, user.ID, c.Params("farmId"))
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, stats, fiber.StatusOK)
}

// CreateFarm handles POST /api/farms
// @Summary Create a farm
// @Description Register a farm, optionally planting its initial trees
// @Tags Farms
// @Accept json
// @Produce json
// @Param farm body services.CreateFarmInput true "Farm fields"
// @Success 201 {object} models.Farm
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /farms [post]
func (h *FarmHandler) CreateFarm(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	var input services.CreateFarmInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "farm.create")
	}

	farm, err := services.CreateFarm(h.DB, user.ID, input)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, farm, fiber.StatusCreated)
}

// UpdateFarm handles PUT /api/farms/:farmId
// @Summary Update a farm
// @Description Apply a partial update; a tree count change grows or shrinks the tree set
// @Tags Farms
// @Accept json
// @Produce json
// @Param farmId path string true "Farm ID"
// @Param farm body services.UpdateFarmInput true "Fields to change"
// @Success 200 {object} models.Farm
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /farms/{farmId} [put]
func (h *FarmHandler) UpdateFarm(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	var input services.UpdateFarmInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "farm.update")
	}

	farm, err := services.UpdateFarm(h.DB, user.ID, c.Params("farmId"), input)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, farm, fiber.StatusOK)
}

// DeleteFarm handles DELETE /api/farms/:farmId
// @Summary Delete a farm
// @Description Remove a farm and everything on it
// @Tags Farms
// @Produce json
// @Param farmId path string true "Farm ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /farms/{farmId} [delete]
func (h *FarmHandler) DeleteFarm(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	if err := services.DeleteFarm(h.DB, user.ID, c.Params("farmId")); err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, 1)
}
