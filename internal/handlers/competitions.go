package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mwessels/soccer-league/internal/store"
)

// CreateCompetitionRequest is the JSON body for POST /competitions.
type CreateCompetitionRequest struct {
	SeasonID uint   `json:"SeasonID"`
	Name     string `json:"Name"`
}

// CreateCompetitionRoundRequest is the JSON body for
// POST /competitions/:id/competition-rounds.
type CreateCompetitionRoundRequest struct {
	MatchdayID  uint   `json:"MatchdayID"`
	RoundNumber int    `json:"RoundNumber"`
	Description string `json:"Description"`
}

// CreateCompetitionTeamRequest is the JSON body for
// POST /competitions/:id/teams.
type CreateCompetitionTeamRequest struct {
	TeamID           uint   `json:"TeamID"`
	DefaultStartTime string `json:"DefaultStartTime"`
}

// GetCompetition handles GET /competitions/:id with the competition's
// rounds and teams nested in.
func GetCompetition(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid competition id")
		}
		competition, err := st.Competition(id)
		if err != nil {
			return storeFail(c, err)
		}
		rounds, err := st.CompetitionRoundsByCompetition(id)
		if err != nil {
			return storeFail(c, err)
		}
		teams, err := st.TeamsByCompetition(id)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "Competition", fiber.Map{
			"CompetitionID": competition.ID,
			"SeasonID":      competition.SeasonID,
			"Name":          competition.Name,
			"Rounds":        rounds,
			"Teams":         teams,
		})
	}
}

// CreateCompetition handles POST /competitions.
func CreateCompetition(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateCompetitionRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		if req.SeasonID == 0 || req.Name == "" {
			return fail(c, fiber.StatusBadRequest, "season id and name are required")
		}
		id, err := st.CreateCompetition(req.SeasonID, req.Name)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusCreated, "Competition", fiber.Map{"CompetitionID": id})
	}
}

// CreateCompetitionRound handles POST /competitions/:id/competition-rounds.
func CreateCompetitionRound(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		competitionID, ok := paramID(c, "id")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid competition id")
		}
		var req CreateCompetitionRoundRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		if req.MatchdayID == 0 || req.RoundNumber <= 0 {
			return fail(c, fiber.StatusBadRequest, "matchday id and round number are required")
		}
		id, err := st.CreateCompetitionRound(competitionID, req.MatchdayID, req.RoundNumber, req.Description)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusCreated, "CompetitionRound", fiber.Map{"CompetitionRoundID": id})
	}
}

// GetCompetitionRound handles GET /competition-rounds/:id with the round's
// matches nested in.
func GetCompetitionRound(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid competition round id")
		}
		round, err := st.CompetitionRound(id)
		if err != nil {
			return storeFail(c, err)
		}
		matches, err := st.SoccerMatchesByCompetitionRound(id)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "CompetitionRound", fiber.Map{
			"CompetitionRoundID": round.CompetitionRoundID,
			"CompetitionID":      round.CompetitionID,
			"RoundNumber":        round.RoundNumber,
			"Description":        round.Description,
			"Date":               round.Date,
			"Matches":            matches,
		})
	}
}

// CreateCompetitionTeam handles POST /competitions/:id/teams, enrolling a
// team into a competition.
func CreateCompetitionTeam(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		competitionID, ok := paramID(c, "id")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid competition id")
		}
		var req CreateCompetitionTeamRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		if req.TeamID == 0 {
			return fail(c, fiber.StatusBadRequest, "team id is required")
		}
		id, err := st.CreateCompetitionTeam(competitionID, req.TeamID, req.DefaultStartTime)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusCreated, "CompetitionTeam", fiber.Map{"CompetitionTeamID": id})
	}
}

// GetCompetitionMatches handles GET /competitions/:id/matches.
func GetCompetitionMatches(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid competition id")
		}
		matches, err := st.SoccerMatchesByCompetition(id)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "SoccerMatches", matches)
	}
}

// GetTeamCompetitionStats handles GET /competitions/:id/team-stats/:teamID:
// per-player goals, assists, cards, minutes, and appearances for one team
// within one competition.
func GetTeamCompetitionStats(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		competitionID, ok := paramID(c, "id")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid competition id")
		}
		teamID, ok := paramID(c, "teamID")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid team id")
		}
		stats, err := st.TeamCompetitionStats(competitionID, teamID)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "TeamCompetitionStats", stats)
	}
}

// GetCompetitionRanking handles GET /competitions/:id/ranking.
func GetCompetitionRanking(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid competition id")
		}
		ranking, err := st.RankingByCompetition(id)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "Ranking", ranking)
	}
}
