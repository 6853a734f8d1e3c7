package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/plagiagia/OliveAIFarmer/internal/services"
	"github.com/plagiagia/OliveAIFarmer/internal/utils"
	"gorm.io/gorm"
)

// ActivityHandler handles care activity routes
type ActivityHandler struct {
	DB *gorm.DB
}

// ListActivities handles GET /api/activities?farmId=&type=
// @Summary List activities
// @Description List a farm's care activities with their linked trees
// @Tags Activities
// @Produce json
// @Param farmId query string true "Farm ID"
// @Param type query string false "Activity type filter"
// @Success 200 {array} models.Activity
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /activities [get]
func (h *ActivityHandler) ListActivities(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	activities, err := services.ListActivities(h.DB, user.ID, c.Query("farmId"), c.Query("type"))
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, activities, fiber.StatusOK)
}

// CreateActivity handles POST /api/activities
// @Summary Record an activity
// @Description Record a care task, linking it to individual trees
// @Tags Activities
// @Accept json
// @Produce json
// @Param activity body services.CreateActivityInput true "Activity fields"
// @Success 201 {object} models.Activity
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /activities [post]
func (h *ActivityHandler) CreateActivity(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	var input services.CreateActivityInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "activity.create")
	}

	activity, err := services.CreateActivity(h.DB, user.ID, input)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, activity, fiber.StatusCreated)
}

// UpdateActivity handles PUT /api/activities/:activityId
// @Summary Update an activity
// @Description Apply a partial update; a tree list replaces the linked set
// @Tags Activities
// @Accept json
// @Produce json
// @Param activityId path string true "Activity ID"
// @Param activity body services.UpdateActivityInput true "Fields to change"
// @Success 200 {object} models.Activity
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /activities/{activityId} [put]
func (h *ActivityHandler) UpdateActivity(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	var input services.UpdateActivityInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "activity.update")
	}

	activity, err := services.UpdateActivity(h.DB, user.ID, c.Params("activityId"), input)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, activity, fiber.StatusOK)
}

// DeleteActivity handles DELETE /api/activities/:activityId
// @Summary Delete an activity
// @Description Remove an activity and its tree links
// @Tags Activities
// @Produce json
// @Param activityId path string true "Activity ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /activities/{activityId} [delete]
func (h *ActivityHandler) DeleteActivity(c *fiber.Ctx) error {
	user, err := currentUser(c, h.DB)
	if err != nil {
		return utils.CustomErrorResponse(c, err)
	}

	if err := services.DeleteActivity(h.DB, user.ID, c.Params("activityId")); err != nil {
		return utils.CustomErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, 1)
}
