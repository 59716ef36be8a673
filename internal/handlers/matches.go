package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/mwessels/soccer-league/internal/live"
	"github.com/mwessels/soccer-league/internal/store"
)

// CreateSoccerMatchRequest is the JSON body for POST /soccer-matches.
// Competition matches name a round; practice matches leave the round empty
// and carry an explicit kickoff datetime instead.
type CreateSoccerMatchRequest struct {
	CompetitionRoundID *uint   `json:"CompetitionRoundID"`
	HomeTeamID         uint    `json:"HomeTeamID"`
	AwayTeamID         uint    `json:"AwayTeamID"`
	IsPracticeMatch    bool    `json:"IsPracticeMatch"`
	FallbackDateTime   *string `json:"FallbackDateTime"`
}

// UpdateScoreRequest is the JSON body for PUT /soccer-matches/:id.
type UpdateScoreRequest struct {
	HomeGoals *int `json:"HomeGoals"`
	AwayGoals *int `json:"AwayGoals"`
}

// ReplaceLineupRequest is the JSON body for PUT /soccer-matches/:id/lineup.
type ReplaceLineupRequest struct {
	FormationID uint                    `json:"FormationID"`
	Lineup      []store.LineupSelection `json:"Lineup"`
}

// CreateMatchEventRequest is the JSON body for
// POST /soccer-matches/:id/events.
type CreateMatchEventRequest struct {
	EventID                     uint  `json:"EventID"`
	PlayerID                    *uint `json:"PlayerID"`
	Minute                      int   `json:"Minute"`
	ReferenceSoccerMatchEventID *uint `json:"ReferenceSoccerMatchEventID"`
}

// scoreUpdate is the payload pushed to live watchers when a result comes
// in.
type scoreUpdate struct {
	SoccerMatchID uint `json:"SoccerMatchID"`
	HomeGoals     int  `json:"HomeGoals"`
	AwayGoals     int  `json:"AwayGoals"`
}

// GetSoccerMatch handles GET /soccer-matches/:id with the lineup and
// events nested in.
func GetSoccerMatch(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid match id")
		}
		match, err := st.SoccerMatchByID(id)
		if err != nil {
			return storeFail(c, err)
		}
		lineup, err := st.SoccerMatchLineup(id)
		if err != nil {
			return storeFail(c, err)
		}
		events, err := st.SoccerMatchEvents(id)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "SoccerMatch", fiber.Map{
			"SoccerMatchID":       match.SoccerMatchID,
			"SoccerMatchStatusID": match.SoccerMatchStatusID,
			"HomeTeamID":          match.HomeTeamID,
			"HomeTeam":            match.HomeTeam,
			"HomeGoals":           match.HomeGoals,
			"HomeLogo":            match.HomeLogo,
			"AwayTeamID":          match.AwayTeamID,
			"AwayTeam":            match.AwayTeam,
			"AwayGoals":           match.AwayGoals,
			"AwayLogo":            match.AwayLogo,
			"MatchDate":           match.MatchDate,
			"SeasonID":            match.SeasonID,
			"DefaultStartTime":    match.DefaultStartTime,
			"FormationID":         match.FormationID,
			"Formation":           match.Formation,
			"Lineup":              lineup,
			"Events":              events,
		})
	}
}

// CreateSoccerMatch handles POST /soccer-matches.
func CreateSoccerMatch(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateSoccerMatchRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		if req.HomeTeamID == 0 || req.AwayTeamID == 0 {
			return fail(c, fiber.StatusBadRequest, "home and away team are required")
		}
		if req.HomeTeamID == req.AwayTeamID {
			return fail(c, fiber.StatusBadRequest, "a team cannot play itself")
		}
		if req.IsPracticeMatch {
			if req.FallbackDateTime == nil || *req.FallbackDateTime == "" {
				return fail(c, fiber.StatusBadRequest, "practice matches need a fallback datetime")
			}
		} else if req.CompetitionRoundID == nil || *req.CompetitionRoundID == 0 {
			return fail(c, fiber.StatusBadRequest, "competition round is required")
		}
		id, err := st.CreateSoccerMatch(req.CompetitionRoundID, req.HomeTeamID, req.AwayTeamID, req.IsPracticeMatch, req.FallbackDateTime)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusCreated, "SoccerMatch", fiber.Map{"SoccerMatchID": id})
	}
}

// UpdateSoccerMatchScore handles PUT /soccer-matches/:id: it records the
// final score, flips the match to played, and pushes the result to
// everyone watching it live.
func UpdateSoccerMatchScore(st *store.Store, hub *live.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid match id")
		}
		var req UpdateScoreRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		if req.HomeGoals == nil || req.AwayGoals == nil || *req.HomeGoals < 0 || *req.AwayGoals < 0 {
			return fail(c, fiber.StatusBadRequest, "home and away goals are required")
		}
		if err := st.UpdateSoccerMatchScore(id, *req.HomeGoals, *req.AwayGoals); err != nil {
			return storeFail(c, err)
		}

		if hub != nil {
			payload, _ := json.Marshal(scoreUpdate{
				SoccerMatchID: id,
				HomeGoals:     *req.HomeGoals,
				AwayGoals:     *req.AwayGoals,
			})
			hub.BroadcastToMatch(id, payload)
		}
		return respond(c, fiber.StatusOK, "SoccerMatch", fiber.Map{
			"SoccerMatchID": id,
			"HomeGoals":     *req.HomeGoals,
			"AwayGoals":     *req.AwayGoals,
		})
	}
}

// ReplaceSoccerMatchLineup handles PUT /soccer-matches/:id/lineup.
func ReplaceSoccerMatchLineup(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid match id")
		}
		var req ReplaceLineupRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		if req.FormationID == 0 {
			return fail(c, fiber.StatusBadRequest, "formation is required")
		}
		for _, sel := range req.Lineup {
			if sel.PlayerID == 0 || sel.PositionID == 0 {
				return fail(c, fiber.StatusBadRequest, "every lineup entry needs a player and a position")
			}
		}
		if err := st.ReplaceLineup(id, req.FormationID, req.Lineup); err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "Lineup", fiber.Map{
			"SoccerMatchID": id,
			"FormationID":   req.FormationID,
			"NumPlayers":    len(req.Lineup),
		})
	}
}

// DeleteSoccerMatch handles DELETE /soccer-matches/:id. Deleting a match
// that no longer exists still answers 200.
func DeleteSoccerMatch(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid match id")
		}
		if err := st.DeleteSoccerMatch(id); err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "SoccerMatch", fiber.Map{"SoccerMatchID": id})
	}
}

// CreateSoccerMatchEvent handles POST /soccer-matches/:id/events.
func CreateSoccerMatchEvent(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		matchID, ok := paramID(c, "id")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid match id")
		}
		var req CreateMatchEventRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		if req.EventID == 0 {
			return fail(c, fiber.StatusBadRequest, "event id is required")
		}
		if req.Minute < 0 {
			return fail(c, fiber.StatusBadRequest, "minute cannot be negative")
		}
		id, err := st.CreateSoccerMatchEvent(matchID, req.EventID, req.PlayerID, req.Minute, req.ReferenceSoccerMatchEventID)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusCreated, "SoccerMatchEvent", fiber.Map{"SoccerMatchEventID": id})
	}
}

// DeleteSoccerMatchEvent handles DELETE /soccer-matches/:id/events/:eventID.
// Idempotent like the match delete.
func DeleteSoccerMatchEvent(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := paramID(c, "id"); !ok {
			return fail(c, fiber.StatusBadRequest, "invalid match id")
		}
		eventID, ok := paramID(c, "eventID")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid event id")
		}
		if err := st.DeleteSoccerMatchEvent(eventID); err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "SoccerMatchEvent", fiber.Map{"SoccerMatchEventID": eventID})
	}
}
