package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mwessels/soccer-league/internal/auth"
	"github.com/mwessels/soccer-league/internal/config"
	"github.com/mwessels/soccer-league/internal/store"
)

// LoginRequest is the JSON body for POST /login.
type LoginRequest struct {
	Email    string `json:"Email"`
	Password string `json:"Password"`
}

// CreateUserRequest is the JSON body for POST /users.
type CreateUserRequest struct {
	Name     string `json:"Name"`
	Email    string `json:"Email"`
	Password string `json:"Password"`
}

// Login verifies the credentials and issues a session token carrying the
// user's roles and actual competition/team grants. Unknown email and wrong
// password get the same answer, so the response never confirms whether an
// address is registered.
func Login(st *store.Store, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || req.Password == "" {
			return fail(c, fiber.StatusBadRequest, "email and password are required")
		}

		user, err := st.Authenticate(req.Email, req.Password)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fail(c, fiber.StatusUnauthorized, "invalid email or password")
			}
			return storeFail(c, err)
		}

		roles, err := st.RolesForUser(user.ID)
		if err != nil {
			return storeFail(c, err)
		}
		competitions, err := st.CompetitionGrantsForUser(user.ID)
		if err != nil {
			return storeFail(c, err)
		}
		teams, err := st.TeamGrantsForUser(user.ID)
		if err != nil {
			return storeFail(c, err)
		}

		token, err := auth.GenerateToken(auth.Claims{
			UserID:        user.ID,
			Username:      user.Name,
			Roles:         roles,
			Competitions:  competitions,
			Teams:         teams,
			DefaultTeamID: user.DefaultTeamID,
		}, cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, "could not issue token")
		}

		return respond(c, fiber.StatusOK, "Session", fiber.Map{
			"Token":         token,
			"Name":          user.Name,
			"Roles":         roles,
			"Competitions":  competitions,
			"Teams":         teams,
			"DefaultTeamID": user.DefaultTeamID,
		})
	}
}

// CreateUser registers a new account with a fresh API key. The plaintext
// password never touches the database; only the bcrypt hash is stored.
func CreateUser(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateUserRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.TrimSpace(req.Email)
		if req.Name == "" || req.Email == "" || req.Password == "" {
			return fail(c, fiber.StatusBadRequest, "name, email and password are required")
		}
		if !strings.Contains(req.Email, "@") {
			return fail(c, fiber.StatusBadRequest, "invalid email address")
		}

		user, err := st.CreateUser(req.Name, req.Email, req.Password)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusCreated, "User", fiber.Map{
			"UserID": user.ID,
			"Name":   user.Name,
			"Email":  user.Email,
		})
	}
}
