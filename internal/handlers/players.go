package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mwessels/soccer-league/internal/models"
	"github.com/mwessels/soccer-league/internal/store"
)

// CreatePlayerRequest is the JSON body for POST /players.
type CreatePlayerRequest struct {
	FirstName     string  `json:"FirstName"`
	SurName       string  `json:"SurName"`
	SurNamePrefix string  `json:"SurNamePrefix"`
	DateOfBirth   *string `json:"DateOfBirth"`
	RelationCode  string  `json:"RelationCode"`
	EmailAddress  string  `json:"EmailAddress"`
}

// GetPlayers handles GET /players.
func GetPlayers(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		players, err := st.Players()
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "Players", players)
	}
}

// CreatePlayer handles POST /players.
func CreatePlayer(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreatePlayerRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		req.FirstName = strings.TrimSpace(req.FirstName)
		req.SurName = strings.TrimSpace(req.SurName)
		if req.FirstName == "" || req.SurName == "" {
			return fail(c, fiber.StatusBadRequest, "first name and surname are required")
		}
		id, err := st.CreatePlayer(&models.Player{
			FirstName:     req.FirstName,
			SurName:       req.SurName,
			SurNamePrefix: strings.TrimSpace(req.SurNamePrefix),
			DateOfBirth:   req.DateOfBirth,
			RelationCode:  req.RelationCode,
			EmailAddress:  req.EmailAddress,
		})
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusCreated, "Player", fiber.Map{"PlayerID": id})
	}
}

// GetPlayerSeason handles GET /players/:playerID/seasons/:seasonID: the
// player's profile with the season's match stats and training attendance
// nested in.
func GetPlayerSeason(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		playerID, ok := paramID(c, "playerID")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid player id")
		}
		seasonID, ok := paramID(c, "seasonID")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid season id")
		}
		player, err := st.Player(playerID)
		if err != nil {
			return storeFail(c, err)
		}
		matchStats, err := st.PlayerSoccerMatchStats(playerID, seasonID)
		if err != nil {
			return storeFail(c, err)
		}
		trainings, err := st.PlayerTrainings(playerID, seasonID)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "Player", fiber.Map{
			"PlayerID":      player.ID,
			"FirstName":     player.FirstName,
			"SurName":       player.SurName,
			"SurNamePrefix": player.SurNamePrefix,
			"DateOfBirth":   player.DateOfBirth,
			"SoccerMatches": matchStats,
			"Trainings":     trainings,
		})
	}
}
