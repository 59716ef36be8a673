package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mwessels/soccer-league/internal/store"
)

// CreateMatchdayRequest is the JSON body for POST /matchdays.
type CreateMatchdayRequest struct {
	SeasonID uint   `json:"SeasonID"`
	Date     string `json:"Date"`
}

// GetSeasons handles GET /seasons.
func GetSeasons(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		seasons, err := st.Seasons()
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "Seasons", seasons)
	}
}

// GetSeason handles GET /seasons/:id. The response nests the season's
// matchdays and competitions, scoped strictly to this season.
func GetSeason(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid season id")
		}
		season, err := st.Season(id)
		if err != nil {
			return storeFail(c, err)
		}
		matchdays, err := st.MatchdaysBySeason(id)
		if err != nil {
			return storeFail(c, err)
		}
		competitions, err := st.CompetitionsBySeason(id)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "Season", fiber.Map{
			"SeasonID":     season.ID,
			"Description":  season.Description,
			"StartDate":    season.StartDate,
			"EndDate":      season.EndDate,
			"Matchdays":    matchdays,
			"Competitions": competitions,
		})
	}
}

// CreateMatchday handles POST /matchdays.
func CreateMatchday(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateMatchdayRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		if req.SeasonID == 0 || req.Date == "" {
			return fail(c, fiber.StatusBadRequest, "season id and date are required")
		}
		id, err := st.CreateMatchday(req.SeasonID, req.Date)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusCreated, "Matchday", fiber.Map{"MatchdayID": id})
	}
}
