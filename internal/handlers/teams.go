package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mwessels/soccer-league/internal/store"
)

// CreateTeamPlayerRequest is the JSON body for POST /teams/:teamID/players:
// it puts an existing player on a team's roster for one season.
type CreateTeamPlayerRequest struct {
	PlayerID      uint   `json:"PlayerID"`
	SeasonID      uint   `json:"SeasonID"`
	EffectiveDate string `json:"EffectiveDate"`
	JerseyNumber  *int   `json:"JerseyNumber"`
}

// GetTeams handles GET /teams.
func GetTeams(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teams, err := st.Teams()
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "Teams", teams)
	}
}

// GetTeam handles GET /teams/:teamID?seasonID=. With a season the response
// nests the season roster and the competitions the team plays in.
func GetTeam(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, ok := paramID(c, "teamID")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid team id")
		}
		team, err := st.Team(teamID)
		if err != nil {
			return storeFail(c, err)
		}

		payload := fiber.Map{
			"TeamID":       team.ID,
			"Name":         team.Name,
			"TeamLogoFile": team.TeamLogoFile,
		}
		if seasonID := c.QueryInt("seasonID"); seasonID > 0 {
			roster, err := st.SeasonTeamPlayers(teamID, uint(seasonID))
			if err != nil {
				return storeFail(c, err)
			}
			competitions, err := st.TeamCompetitionsBySeason(teamID, uint(seasonID))
			if err != nil {
				return storeFail(c, err)
			}
			payload["Players"] = roster
			payload["Competitions"] = competitions
		}
		return respond(c, fiber.StatusOK, "Team", payload)
	}
}

// CreateTeamPlayer handles POST /teams/:teamID/players.
func CreateTeamPlayer(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, ok := paramID(c, "teamID")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid team id")
		}
		var req CreateTeamPlayerRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		if req.PlayerID == 0 || req.SeasonID == 0 {
			return fail(c, fiber.StatusBadRequest, "player id and season id are required")
		}
		if req.EffectiveDate == "" {
			req.EffectiveDate = time.Now().UTC().Format("2006-01-02")
		}
		id, err := st.CreateTeamPlayer(teamID, req.PlayerID, req.SeasonID, req.EffectiveDate, req.JerseyNumber)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusCreated, "PlayerTeam", fiber.Map{"PlayerTeamID": id})
	}
}

// GetTeamMatches handles GET /teams/:teamID/seasons/:seasonID/matches:
// every match the team plays in the season, practice matches included.
func GetTeamMatches(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, ok := paramID(c, "teamID")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid team id")
		}
		seasonID, ok := paramID(c, "seasonID")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid season id")
		}
		matches, err := st.SoccerMatchesBySeasonAndTeam(seasonID, teamID)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "SoccerMatches", matches)
	}
}

// GetTeamPracticeMatches handles
// GET /teams/:teamID/seasons/:seasonID/practice-matches.
func GetTeamPracticeMatches(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, ok := paramID(c, "teamID")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid team id")
		}
		seasonID, ok := paramID(c, "seasonID")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid season id")
		}
		matches, err := st.PracticeMatchesBySeasonAndTeam(seasonID, teamID)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "PracticeMatches", matches)
	}
}

// GetTeamNextMatch handles GET /teams/:teamID/next-match?fromDate=. The
// reference date defaults to today; 404 when no unplayed match remains.
func GetTeamNextMatch(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, ok := paramID(c, "teamID")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid team id")
		}
		fromDate := c.Query("fromDate")
		if fromDate == "" {
			fromDate = time.Now().UTC().Format("2006-01-02")
		}
		fixture, err := st.TeamNextMatch(teamID, fromDate)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "NextMatch", fixture)
	}
}

// GetTeamLastResult handles GET /teams/:teamID/last-result: the most
// recently played match, 404 when the team has not played yet.
func GetTeamLastResult(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, ok := paramID(c, "teamID")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid team id")
		}
		fixture, err := st.TeamLastResult(teamID)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "LastResult", fixture)
	}
}
