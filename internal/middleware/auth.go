// Package middleware contains the HTTP middleware for the soccer league API.
// Authentication runs on every protected route; role checks are attached per
// route so the authorization model is visible where the routes are declared.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mwessels/soccer-league/internal/auth"
	"github.com/mwessels/soccer-league/internal/config"
	"github.com/mwessels/soccer-league/internal/store"
)

// Locals keys set by Authenticate and read by handlers and RequireRole.
const (
	LocalUserID   = "userID"
	LocalUsername = "username"
	LocalRoles    = "roles"
)

// Authenticate accepts either a session token ("Authorization: Bearer
// <jwt>") or a raw API key in the Authorization header. On success it
// stores the user's identity and roles in the request context; on failure
// it answers 401 without hinting which part of the credential was wrong.
func Authenticate(cfg *config.Config, st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return unauthorized(c)
		}

		if tokenStr, ok := strings.CutPrefix(header, "Bearer "); ok {
			claims, err := auth.ParseToken(tokenStr, cfg.JWTSecret)
			if err != nil {
				return unauthorized(c)
			}
			c.Locals(LocalUserID, claims.UserID)
			c.Locals(LocalUsername, claims.Username)
			c.Locals(LocalRoles, claims.Roles)
			return c.Next()
		}

		// No Bearer prefix: treat the whole header as an API key.
		user, err := st.UserByAPIKey(header)
		if err != nil {
			return unauthorized(c)
		}
		roles, err := st.RolesForUser(user.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load user roles")
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalUsername, user.Name)
		c.Locals(LocalRoles, roles)
		return c.Next()
	}
}

// RequireRole lets the request through when the authenticated user holds at
// least one of the given roles, and answers 403 otherwise. It must run
// after Authenticate.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		held, _ := c.Locals(LocalRoles).([]string)
		for _, want := range roles {
			for _, have := range held {
				if have == want {
					return c.Next()
				}
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"Error":   true,
			"Message": "insufficient permissions",
		})
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"Error":   true,
		"Message": "invalid or missing credentials",
	})
}
