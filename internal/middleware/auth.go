package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/plagiagia/OliveAIFarmer/internal/config"
	"github.com/plagiagia/OliveAIFarmer/internal/services"
	"github.com/plagiagia/OliveAIFarmer/internal/types"
)

// AuthAdmin validates that the request has admin role authorization
func AuthAdmin(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, cfg, []string{"admin"}, "farm.authorization.admin")
	}
}

// AuthFarmer validates that the request has user role authorization and
// stores the session identity for the handlers.
func AuthFarmer(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, cfg, []string{"user"}, "farm.authorization.user")
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, cfg *config.Config, roles []string, errorType string) error {
	// The Authorizer client needs the request origin, so it is initialized
	// on the first authenticated request rather than at startup.
	if !services.IsAuthorizerInitialized() {
		if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
			return &types.CustomError{
				Code:    fiber.StatusServiceUnavailable,
				Message: fmt.Sprintf("Authorizer unavailable: %v", err),
				Type:    errorType,
			}
		}
	}

	// Get session cookie
	session := c.Cookies("cookie_session")
	if session == "" {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Authorizer cookie \"cookie_session\" not found",
			Type:    errorType,
		}
	}

	// Validate session
	user, err := services.ValidateSession(session, roles)
	if err != nil {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Invalid session: %v", err),
			Type:    errorType,
		}
	}

	c.Locals("user", user)

	return c.Next()
}

// SessionUser pulls the validated session identity out of the request
// context. It is nil on routes that skip the auth middleware.
func SessionUser(c *fiber.Ctx) *services.SessionUser {
	user, _ := c.Locals("user").(*services.SessionUser)
	return user
}
