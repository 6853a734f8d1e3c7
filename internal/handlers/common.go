package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/plagiagia/OliveAIFarmer/internal/middleware"
	"github.com/plagiagia/OliveAIFarmer/internal/models"
	"github.com/plagiagia/OliveAIFarmer/internal/services"
	"github.com/plagiagia/OliveAIFarmer/internal/types"
	"gorm.io/gorm"
)

// currentUser resolves the authenticated session to the local user row,
// creating it on first request.
func currentUser(c *fiber.Ctx, db *gorm.DB) (*models.User, error) {
	session := middleware.SessionUser(c)
	if session == nil {
		return nil, &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "no authenticated user on request",
			Type:    "farm.authorization.user",
		}
	}
	return services.CurrentUser(db, session.ID, session.Email, session.GivenName, session.FamilyName)
}

// queryInt parses an optional integer query parameter.
func queryInt(c *fiber.Ctx, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, types.ValidationError("query parameter %q must be an integer", name)
	}
	return &n, nil
}
