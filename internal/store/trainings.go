package store

import (
	"gorm.io/gorm"

	"github.com/mwessels/soccer-league/internal/models"
)

// TrainingRow is one training with attendance counted over its rows.
type TrainingRow struct {
	TrainingID   uint   `json:"TrainingID"`
	SeasonID     uint   `json:"SeasonID"`
	TeamID       *uint  `json:"TeamID"`
	TrainingDate string `json:"TrainingDate"`
	IsBonus      bool   `json:"IsBonus"`
	NumAttended  int    `json:"NumAttended"`
	NumPlayers   int    `json:"NumPlayers"`
}

// TrainingAttendee is one player's attendance row for a training.
type TrainingAttendee struct {
	PlayerID      uint   `json:"PlayerID"`
	FirstName     string `json:"FirstName"`
	SurName       string `json:"SurName"`
	SurNamePrefix string `json:"SurNamePrefix"`
	Name          string `json:"Name"`
	HasAttended   bool   `json:"HasAttended"`
}

// TrainingOverviewRow is one line of the per-player season attendance
// overview produced by the get_training_overview routine.
type TrainingOverviewRow struct {
	PlayerID       uint    `json:"PlayerID"`
	Name           string  `json:"Name"`
	NumAttended    int     `json:"NumAttended"`
	NumTrainings   int     `json:"NumTrainings"`
	AttendanceRate float64 `json:"AttendanceRate"`
}

// AttendanceChange flips one player's attendance flag for a training.
type AttendanceChange struct {
	PlayerID    uint `json:"PlayerID"`
	HasAttended bool `json:"HasAttended"`
}

const trainingCountsSelect = `t.id AS training_id, t.season_id, t.team_id, t.training_date, t.is_bonus,
	COALESCE(SUM(CASE WHEN plt.has_attended THEN 1 ELSE 0 END), 0) AS num_attended,
	COUNT(plt.id) AS num_players`

// TrainingsBySeason returns all trainings of a season with attendance
// counts.
func (s *Store) TrainingsBySeason(seasonID uint) ([]TrainingRow, error) {
	trainings := []TrainingRow{}
	err := s.db.Table("trainings t").
		Select(trainingCountsSelect).
		Joins("LEFT JOIN player_trainings plt ON plt.training_id = t.id").
		Where("t.season_id = ?", seasonID).
		Group("t.id, t.season_id, t.team_id, t.training_date, t.is_bonus").
		Order("t.training_date").
		Scan(&trainings).Error
	if err != nil {
		return nil, err
	}
	return trainings, nil
}

// TrainingsBySeasonAndTeam narrows TrainingsBySeason to one team.
func (s *Store) TrainingsBySeasonAndTeam(seasonID, teamID uint) ([]TrainingRow, error) {
	trainings := []TrainingRow{}
	err := s.db.Table("trainings t").
		Select(trainingCountsSelect).
		Joins("LEFT JOIN player_trainings plt ON plt.training_id = t.id").
		Where("t.season_id = ? AND t.team_id = ?", seasonID, teamID).
		Group("t.id, t.season_id, t.team_id, t.training_date, t.is_bonus").
		Order("t.training_date").
		Scan(&trainings).Error
	if err != nil {
		return nil, err
	}
	return trainings, nil
}

// LastTrainings returns the n most recent trainings of a season.
func (s *Store) LastTrainings(seasonID uint, n int) ([]TrainingRow, error) {
	trainings := []TrainingRow{}
	err := s.db.Table("trainings t").
		Select(trainingCountsSelect).
		Joins("LEFT JOIN player_trainings plt ON plt.training_id = t.id").
		Where("t.season_id = ?", seasonID).
		Group("t.id, t.season_id, t.team_id, t.training_date, t.is_bonus").
		Order("t.training_date DESC").
		Limit(n).
		Scan(&trainings).Error
	if err != nil {
		return nil, err
	}
	return trainings, nil
}

// Training fetches one training, ErrNotFound when missing.
func (s *Store) Training(id uint) (*models.Training, error) {
	var training models.Training
	if err := s.db.First(&training, id).Error; err != nil {
		return nil, one(err)
	}
	return &training, nil
}

// TrainingAttendees returns the attendance roster of one training. A
// non-nil teamID narrows the roster to players on that team in the
// training's season.
func (s *Store) TrainingAttendees(trainingID uint, teamID *uint) ([]TrainingAttendee, error) {
	attendees := []TrainingAttendee{}
	query := s.db.Table("player_trainings plt").
		Select(`p.id AS player_id, p.first_name, p.sur_name, p.sur_name_prefix,
			` + playerNameExpr + ` AS name,
			plt.has_attended`).
		Joins("JOIN players p ON plt.player_id = p.id").
		Where("plt.training_id = ?", trainingID)
	if teamID != nil {
		query = query.
			Joins("JOIN trainings t ON plt.training_id = t.id").
			Joins("JOIN player_teams pt ON pt.player_id = p.id AND pt.season_id = t.season_id").
			Where("pt.team_id = ?", *teamID)
	}
	err := query.Order("p.sur_name, p.first_name").Scan(&attendees).Error
	if err != nil {
		return nil, err
	}
	return attendees, nil
}

// CreateTrainingWithAttendance inserts a training and fans out one
// attendance row per rostered player of the training's season, all
// unattended, in a single transaction. A training with a team covers that
// team's roster; one without a team covers every player rostered in the
// season.
func (s *Store) CreateTrainingWithAttendance(training *models.Training) (uint, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(training).Error; err != nil {
			return err
		}
		var fanOut *gorm.DB
		if training.TeamID != nil {
			fanOut = tx.Exec(`
				INSERT INTO player_trainings (training_id, player_id, has_attended)
				SELECT ?, player_id, ? FROM player_teams
				WHERE season_id = ? AND team_id = ?`,
				training.ID, false, training.SeasonID, *training.TeamID)
		} else {
			fanOut = tx.Exec(`
				INSERT INTO player_trainings (training_id, player_id, has_attended)
				SELECT DISTINCT ?, player_id, ? FROM player_teams
				WHERE season_id = ?`,
				training.ID, false, training.SeasonID)
		}
		return fanOut.Error
	})
	if err != nil {
		return 0, err
	}
	return training.ID, nil
}

// SetAttendance applies a batch of attendance flips for one training in a
// transaction. Players without an attendance row are skipped rather than
// invented; the roster was fixed when the training was created.
func (s *Store) SetAttendance(trainingID uint, changes []AttendanceChange) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, change := range changes {
			err := tx.Model(&models.PlayerTraining{}).
				Where("training_id = ? AND player_id = ?", trainingID, change.PlayerID).
				Update("has_attended", change.HasAttended).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteTraining removes a training and its attendance rows. Idempotent.
func (s *Store) DeleteTraining(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("training_id = ?", id).
			Delete(&models.PlayerTraining{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Training{}, id).Error
	})
}

// TrainingOverview returns the per-player attendance summary for a season's
// team. The heavy lifting lives in the get_training_overview database
// routine shipped with the migrations.
func (s *Store) TrainingOverview(seasonID, teamID uint) ([]TrainingOverviewRow, error) {
	overview := []TrainingOverviewRow{}
	err := s.db.Raw("SELECT * FROM get_training_overview(?, ?)", seasonID, teamID).
		Scan(&overview).Error
	if err != nil {
		return nil, err
	}
	return overview, nil
}
