package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mwessels/soccer-league/internal/config"
	"github.com/mwessels/soccer-league/internal/live"
	"github.com/mwessels/soccer-league/internal/middleware"
	"github.com/mwessels/soccer-league/internal/models"
	"github.com/mwessels/soccer-league/internal/store"
)

// Register wires every route onto the app. Reads sit behind Authenticate;
// every state-changing route additionally requires the admin role, so the
// authorization model is uniform and visible in one place.
func Register(app *fiber.App, st *store.Store, cfg *config.Config, hub *live.Hub) {
	app.Get("/health", HealthCheck)
	app.Post("/login", Login(st, cfg))

	api := app.Group("/api/v1", middleware.Authenticate(cfg, st))
	admin := middleware.RequireRole(models.RoleAdmin)

	api.Post("/users", admin, CreateUser(st))

	api.Get("/seasons", GetSeasons(st))
	api.Get("/seasons/:id", GetSeason(st))
	api.Get("/seasons/:id/trainings", GetSeasonTrainings(st))
	api.Get("/seasons/:seasonID/teams/:teamID/training-overview", GetTrainingOverview(st))
	api.Post("/matchdays", admin, CreateMatchday(st))

	api.Get("/competitions/:id", GetCompetition(st))
	api.Get("/competitions/:id/matches", GetCompetitionMatches(st))
	api.Get("/competitions/:id/ranking", GetCompetitionRanking(st))
	api.Get("/competitions/:id/team-stats/:teamID", GetTeamCompetitionStats(st))
	api.Post("/competitions", admin, CreateCompetition(st))
	api.Post("/competitions/:id/competition-rounds", admin, CreateCompetitionRound(st))
	api.Post("/competitions/:id/teams", admin, CreateCompetitionTeam(st))
	api.Get("/competition-rounds/:id", GetCompetitionRound(st))

	api.Get("/teams", GetTeams(st))
	api.Get("/teams/:teamID", GetTeam(st))
	api.Get("/teams/:teamID/next-match", GetTeamNextMatch(st))
	api.Get("/teams/:teamID/last-result", GetTeamLastResult(st))
	api.Get("/teams/:teamID/seasons/:seasonID/matches", GetTeamMatches(st))
	api.Get("/teams/:teamID/seasons/:seasonID/practice-matches", GetTeamPracticeMatches(st))
	api.Post("/teams/:teamID/players", admin, CreateTeamPlayer(st))

	api.Get("/players", GetPlayers(st))
	api.Get("/players/:playerID/seasons/:seasonID", GetPlayerSeason(st))
	api.Post("/players", admin, CreatePlayer(st))

	api.Get("/soccer-matches/:id", GetSoccerMatch(st))
	api.Post("/soccer-matches", admin, CreateSoccerMatch(st))
	api.Put("/soccer-matches/:id", admin, UpdateSoccerMatchScore(st, hub))
	api.Put("/soccer-matches/:id/lineup", admin, ReplaceSoccerMatchLineup(st))
	api.Delete("/soccer-matches/:id", admin, DeleteSoccerMatch(st))
	api.Post("/soccer-matches/:id/events", admin, CreateSoccerMatchEvent(st))
	api.Delete("/soccer-matches/:id/events/:eventID", admin, DeleteSoccerMatchEvent(st))
	api.Get("/soccer-matches/:id/live", RequireWebSocketUpgrade, LiveMatchUpdates(hub))

	api.Get("/trainings/:trainingID", GetTraining(st))
	api.Post("/trainings", admin, CreateTraining(st))
	api.Post("/trainings/:trainingID", admin, SetTrainingAttendance(st))
	api.Delete("/trainings/:trainingID", admin, DeleteTraining(st))

	api.Get("/events", GetEvents(st))
	api.Get("/formations", GetFormations(st))
	api.Get("/formations/:id", GetFormationPositions(st))
}
