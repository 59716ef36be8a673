package store

import "github.com/mwessels/soccer-league/internal/models"

// PlayerRow is the list view of a player with the display name assembled
// from first name, surname prefix, and surname.
type PlayerRow struct {
	PlayerID      uint    `json:"PlayerID"`
	FirstName     string  `json:"FirstName"`
	SurName       string  `json:"SurName"`
	SurNamePrefix string  `json:"SurNamePrefix"`
	Name          string  `json:"Name"`
	DateOfBirth   *string `json:"DateOfBirth"`
	RelationCode  string  `json:"RelationCode"`
	EmailAddress  string  `json:"EmailAddress"`
}

// PlayerMatchStat is one match a player appeared in during a season, with
// the event tallies collapsed onto the row. DoubleYellowCard is a red card
// that references the second yellow; RedCard alone means a straight red.
type PlayerMatchStat struct {
	SoccerMatchID    uint    `json:"SoccerMatchID"`
	SeasonID         uint    `json:"SeasonID"`
	TeamID           uint    `json:"TeamID"`
	Position         *string `json:"Position"`
	PositionCode     *string `json:"PositionCode"`
	MatchDate        *string `json:"MatchDate"`
	FallbackDateTime *string `json:"FallbackDateTime"`
	IsHomeMatch      bool    `json:"IsHomeMatch"`
	OpponentTeam     string  `json:"OpponentTeam"`
	OpponentLogoUrl  string  `json:"OpponentLogoUrl"`
	TeamGoals        *int    `json:"TeamGoals"`
	OpponentGoals    *int    `json:"OpponentGoals"`
	CompetitionName  *string `json:"CompetitionName"`
	Goals            int     `json:"Goals"`
	Penalties        int     `json:"Penalties"`
	Assists          int     `json:"Assists"`
	YellowCard       bool    `json:"YellowCard"`
	RedCard          bool    `json:"RedCard"`
	DoubleYellowCard bool    `json:"DoubleYellowCard"`
}

// PlayerTrainingRow is one training of a season with the player's
// attendance.
type PlayerTrainingRow struct {
	TrainingID   uint   `json:"TrainingID"`
	TrainingDate string `json:"TrainingDate"`
	IsBonus      bool   `json:"IsBonus"`
	HasAttended  bool   `json:"HasAttended"`
}

// Players returns every registered player with display names.
func (s *Store) Players() ([]PlayerRow, error) {
	players := []PlayerRow{}
	err := s.db.Table("players p").
		Select(`p.id AS player_id, p.first_name, p.sur_name, p.sur_name_prefix,
			` + playerNameExpr + ` AS name,
			p.date_of_birth, p.relation_code, p.email_address`).
		Order("p.sur_name, p.first_name").
		Scan(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

// Player fetches a single player, ErrNotFound when missing.
func (s *Store) Player(id uint) (*models.Player, error) {
	var player models.Player
	if err := s.db.First(&player, id).Error; err != nil {
		return nil, one(err)
	}
	return &player, nil
}

// CreatePlayer registers a player and returns the identifier.
func (s *Store) CreatePlayer(player *models.Player) (uint, error) {
	if err := s.db.Create(player).Error; err != nil {
		return 0, err
	}
	return player.ID, nil
}

// PlayerSoccerMatchStats returns every match a player was in the lineup for
// during a season, seen from the player's team's perspective, with goals,
// assists, and cards aggregated per match.
func (s *Store) PlayerSoccerMatchStats(playerID, seasonID uint) ([]PlayerMatchStat, error) {
	stats := []PlayerMatchStat{}
	err := s.db.Raw(`
		SELECT sm.id AS soccer_match_id,
			se.id AS season_id,
			pt.team_id,
			fp.name AS position,
			fp.code AS position_code,
			md.date AS match_date,
			sm.fallback_date_time,
			CASE WHEN sm.home_team_id = pt.team_id THEN 1 ELSE 0 END AS is_home_match,
			t.name AS opponent_team,
			t.team_logo_file AS opponent_logo_url,
			CASE WHEN sm.home_team_id = pt.team_id THEN sm.home_goals ELSE sm.away_goals END AS team_goals,
			CASE WHEN sm.home_team_id = pt.team_id THEN sm.away_goals ELSE sm.home_goals END AS opponent_goals,
			c.name AS competition_name,
			COALESCE(ev.goals, 0) AS goals,
			COALESCE(ev.penalties, 0) AS penalties,
			COALESCE(ev.assists, 0) AS assists,
			COALESCE(ev.yellow_card, 0) AS yellow_card,
			COALESCE(ev.red_card, 0) AS red_card,
			COALESCE(ev.double_yellow_card, 0) AS double_yellow_card
		FROM player_soccer_matches pm
		JOIN soccer_matches sm ON pm.soccer_match_id = sm.id
		JOIN player_teams pt ON pm.player_id = pt.player_id AND pt.season_id = @season
		JOIN teams t ON t.id = CASE WHEN sm.home_team_id = pt.team_id THEN sm.away_team_id ELSE sm.home_team_id END
		JOIN seasons se ON se.id = @season
		LEFT JOIN formation_positions fp ON pm.position_id = fp.position_id
			AND (fp.formation_id = sm.formation_id OR fp.formation_id IS NULL)
		LEFT JOIN competition_rounds cr ON sm.competition_round_id = cr.id
		LEFT JOIN competitions c ON cr.competition_id = c.id
		LEFT JOIN matchdays md ON cr.matchday_id = md.id
		LEFT JOIN (
			SELECT soccer_match_id, player_id,
				SUM(CASE WHEN event_id = 1 THEN 1 ELSE 0 END) AS goals,
				SUM(CASE WHEN event_id = 5 THEN 1 ELSE 0 END) AS penalties,
				SUM(CASE WHEN event_id = 7 THEN 1 ELSE 0 END) AS assists,
				MAX(CASE WHEN event_id = 2 THEN 1 ELSE 0 END) AS yellow_card,
				MAX(CASE WHEN event_id = 3 THEN 1 ELSE 0 END) AS red_card,
				MAX(CASE WHEN event_id = 3 AND reference_soccer_match_event_id IS NOT NULL THEN 1 ELSE 0 END) AS double_yellow_card
			FROM soccer_match_events
			GROUP BY soccer_match_id, player_id
		) ev ON ev.soccer_match_id = sm.id AND ev.player_id = pm.player_id
		WHERE pm.player_id = @player
			AND (c.season_id = @season
				OR (sm.is_practice_match AND sm.fallback_date_time BETWEEN se.start_date AND se.end_date))
		ORDER BY md.date, sm.fallback_date_time, sm.id`,
		map[string]any{"player": playerID, "season": seasonID}).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// PlayerTrainings returns a player's attendance over all trainings of a
// season that have an attendance row for the player.
func (s *Store) PlayerTrainings(playerID, seasonID uint) ([]PlayerTrainingRow, error) {
	trainings := []PlayerTrainingRow{}
	err := s.db.Table("player_trainings plt").
		Select("t.id AS training_id, t.training_date, t.is_bonus, plt.has_attended").
		Joins("JOIN trainings t ON plt.training_id = t.id").
		Where("plt.player_id = ? AND t.season_id = ?", playerID, seasonID).
		Order("t.training_date").
		Scan(&trainings).Error
	if err != nil {
		return nil, err
	}
	return trainings, nil
}
