package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/plagiagia/OliveAIFarmer/internal/services"
	"github.com/plagiagia/OliveAIFarmer/internal/types"
	"github.com/plagiagia/OliveAIFarmer/internal/utils"
	"gorm.io/gorm"
)

// HarvestHandler handles harvest routes
type HarvestHandler struct {
	DB *gorm.DB
}

// ListHarvests handles GET /api/harvests?farmId=&year=&incomplete=
// @Summary List harvests
// @Description List a farm's harvest rows, optionally filtered by year or open rows only
// @Tags Harvests
// @Produce json
// @Param farmId query string true "Farm ID"
// @Param year query int false "Season year"
// @Param incomplete query bool false "Only rows not yet completed"
// @Success 200 {array} models.Harvest
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /harvests [get]
func (h *HarvestHandler) ListHarvests(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	year, err := queryInt(c, "year")
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	harvests, err := services.ListHarvests(h.DB, user.ID, c.Query("farmId"), year, c.QueryBool("incomplete"))
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, harvests, fiber.StatusOK)
}

// GroupedHarvests handles GET /api/harvests/grouped?farmId=
// @Summary List harvest seasons
// @Description Group a farm's harvest rows into one season view per year
// @Tags Harvests
// @Produce json
// @Param farmId query string true "Farm ID"
// @Success 200 {array} services.SeasonView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /harvests/grouped [get]
func (h *HarvestHandler) GroupedHarvests(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	seasons, err := services.GroupedHarvests(h.DB, user.ID, c.Query("farmId"))
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, seasons, fiber.StatusOK)
}

// CreateHarvest handles POST /api/harvests
// @Summary Record a harvest
// @Description Record a harvest; joins the open season for the year as a daily collection when one exists
// @Tags Harvests
// @Accept json
// @Produce json
// @Param harvest body services.CreateHarvestInput true "Harvest fields"
// @Success 201 {object} models.Harvest
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /harvests [post]
func (h *HarvestHandler) CreateHarvest(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	var input services.CreateHarvestInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "harvest.create")
	}

	harvest, err := services.CreateHarvest(h.DB, user.ID, input)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, harvest, fiber.StatusCreated)
}

// UpdateHarvest handles PUT /api/harvests/:harvestId
// @Summary Update a harvest row
// @Description Apply a partial update; price changes propagate to the whole season
// @Tags Harvests
// @Accept json
// @Produce json
// @Param harvestId path string true "Harvest ID"
// @Param harvest body services.UpdateHarvestInput true "Fields to change"
// @Success 200 {object} models.Harvest
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /harvests/{harvestId} [put]
func (h *HarvestHandler) UpdateHarvest(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	var input services.UpdateHarvestInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "harvest.update")
	}
	input.HarvestID = c.Params("harvestId")

	harvest, err := services.UpdateHarvest(h.DB, user.ID, input)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, harvest, fiber.StatusOK)
}

// CompleteHarvest handles POST /api/harvests/:harvestId/complete
// @Summary Complete a harvest row
// @Description Mark one row completed, backfilling its date range from the season
// @Tags Harvests
// @Produce json
// @Param harvestId path string true "Harvest ID"
// @Success 200 {object} models.Harvest
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /harvests/{harvestId}/complete [post]
func (h *HarvestHandler) CompleteHarvest(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	harvest, err := services.CompleteHarvest(h.DB, user.ID, c.Params("harvestId"), time.Now())
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, harvest, fiber.StatusOK)
}

// CompleteHarvestYear handles POST /api/harvests/complete-year
// @Summary Complete a season
// @Description Complete every open row of a farm's season in one transaction
// @Tags Harvests
// @Accept json
// @Produce json
// @Param season body handlers.SeasonRequest true "Farm and year"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /harvests/complete-year [post]
func (h *HarvestHandler) CompleteHarvestYear(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	var req SeasonRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "harvest.completeYear")
	}

	completed, err := services.CompleteHarvestYear(h.DB, user.ID, req.FarmID, req.Year.Int(), time.Now())
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, int64(completed))
}

// DeleteHarvest handles DELETE /api/harvests/:harvestId and, with farmId and
// year query parameters instead of a path id, DELETE /api/harvests for a
// whole season.
// @Summary Delete a harvest row
// @Description Remove one harvest row
// @Tags Harvests
// @Produce json
// @Param harvestId path string true "Harvest ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /harvests/{harvestId} [delete]
func (h *HarvestHandler) DeleteHarvest(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	if err := services.DeleteHarvest(h.DB, user.ID, c.Params("harvestId")); err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, 1)
}

// DeleteHarvestYear handles DELETE /api/harvests?farmId=&year=
// @Summary Delete a season
// @Description Remove every row of a farm's season in one transaction
// @Tags Harvests
// @Produce json
// @Param farmId query string true "Farm ID"
// @Param year query int true "Season year"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /harvests [delete]
func (h *HarvestHandler) DeleteHarvestYear(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	year, err := queryInt(c, "year")
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	if year == nil {
		return utils.CustomErrorResponse(c, types.ValidationError("query parameter %q is required", "year"))
	}

	deleted, err := services.DeleteHarvestYear(h.DB, user.ID, c.Query("farmId"), *year)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, int64(deleted))
}

// SeasonRequest identifies one farm's season.
type SeasonRequest struct {
	FarmID string        `json:"farmId"`
	Year   types.FlexInt `json:"year"`
}
