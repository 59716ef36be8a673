package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mwessels/soccer-league/internal/models"
	"github.com/mwessels/soccer-league/internal/store"
)

// CreateTrainingRequest is the JSON body for POST /trainings. Creating a
// training also creates one unattended attendance row per rostered player
// of the team and season.
type CreateTrainingRequest struct {
	SeasonID     uint   `json:"SeasonID"`
	TeamID       *uint  `json:"TeamID"`
	TrainingDate string `json:"TrainingDate"`
	IsBonus      bool   `json:"IsBonus"`
}

// SetAttendanceRequest is the JSON body for POST /trainings/:trainingID:
// a batch of attendance flips.
type SetAttendanceRequest struct {
	Attendance []store.AttendanceChange `json:"Attendance"`
}

// GetSeasonTrainings handles GET /seasons/:id/trainings. Optional query
// params narrow to one team (?teamID=) or the most recent n (?last=).
func GetSeasonTrainings(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		seasonID, ok := paramID(c, "id")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid season id")
		}

		var (
			trainings []store.TrainingRow
			err       error
		)
		switch {
		case c.QueryInt("teamID") > 0:
			trainings, err = st.TrainingsBySeasonAndTeam(seasonID, uint(c.QueryInt("teamID")))
		case c.QueryInt("last") > 0:
			trainings, err = st.LastTrainings(seasonID, c.QueryInt("last"))
		default:
			trainings, err = st.TrainingsBySeason(seasonID)
		}
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "Trainings", trainings)
	}
}

// GetTraining handles GET /trainings/:trainingID with the attendance
// roster nested in. ?teamID= narrows the roster to one team of the
// training's season.
func GetTraining(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "trainingID")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid training id")
		}
		training, err := st.Training(id)
		if err != nil {
			return storeFail(c, err)
		}
		var teamFilter *uint
		if v := c.QueryInt("teamID"); v > 0 {
			teamID := uint(v)
			teamFilter = &teamID
		}
		attendees, err := st.TrainingAttendees(id, teamFilter)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "Training", fiber.Map{
			"TrainingID":   training.ID,
			"SeasonID":     training.SeasonID,
			"TeamID":       training.TeamID,
			"TrainingDate": training.TrainingDate,
			"IsBonus":      training.IsBonus,
			"Players":      attendees,
		})
	}
}

// CreateTraining handles POST /trainings.
func CreateTraining(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateTrainingRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		if req.SeasonID == 0 || req.TrainingDate == "" {
			return fail(c, fiber.StatusBadRequest, "season id and training date are required")
		}
		training := models.Training{
			SeasonID:     req.SeasonID,
			TeamID:       req.TeamID,
			TrainingDate: req.TrainingDate,
			IsBonus:      req.IsBonus,
		}
		id, err := st.CreateTrainingWithAttendance(&training)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusCreated, "Training", fiber.Map{"TrainingID": id})
	}
}

// SetTrainingAttendance handles POST /trainings/:trainingID.
func SetTrainingAttendance(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "trainingID")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid training id")
		}
		if _, err := st.Training(id); err != nil {
			return storeFail(c, err)
		}
		var req SetAttendanceRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		if len(req.Attendance) == 0 {
			return fail(c, fiber.StatusBadRequest, "attendance list is empty")
		}
		for _, change := range req.Attendance {
			if change.PlayerID == 0 {
				return fail(c, fiber.StatusBadRequest, "every attendance entry needs a player")
			}
		}
		if err := st.SetAttendance(id, req.Attendance); err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "Training", fiber.Map{
			"TrainingID": id,
			"NumUpdated": len(req.Attendance),
		})
	}
}

// DeleteTraining handles DELETE /trainings/:trainingID. Idempotent.
func DeleteTraining(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "trainingID")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid training id")
		}
		if err := st.DeleteTraining(id); err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "Training", fiber.Map{"TrainingID": id})
	}
}

// GetTrainingOverview handles
// GET /seasons/:seasonID/teams/:teamID/training-overview.
func GetTrainingOverview(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		seasonID, ok := paramID(c, "seasonID")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid season id")
		}
		teamID, ok := paramID(c, "teamID")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid team id")
		}
		overview, err := st.TrainingOverview(seasonID, teamID)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "TrainingOverview", overview)
	}
}
