package store

import "github.com/mwessels/soccer-league/internal/models"

// RosterPlayer is one entry of a team's season roster.
type RosterPlayer struct {
	PlayerID      uint    `json:"PlayerID"`
	FirstName     string  `json:"FirstName"`
	SurName       string  `json:"SurName"`
	SurNamePrefix string  `json:"SurNamePrefix"`
	JerseyNumber  *int    `json:"JerseyNumber"`
	EffectiveDate string  `json:"EffectiveDate"`
	ExpiryDate    *string `json:"ExpiryDate"`
}

// TeamCompetitionRow is a competition a team participates in.
type TeamCompetitionRow struct {
	CompetitionID   uint   `json:"CompetitionID"`
	CompetitionName string `json:"CompetitionName"`
}

// TeamFixture is a team-centric view of one match: the opponent plus when
// the match is actually played (the fallback datetime if set, otherwise the
// matchday date with the home team's usual kickoff time).
type TeamFixture struct {
	TeamName           string `json:"TeamName"`
	OpponentName       string `json:"OpponentName"`
	OpponentLogoFile   string `json:"OpponentLogoFile"`
	IsHomeMatch        bool   `json:"IsHomeMatch"`
	TeamGoals          *int   `json:"TeamGoals"`
	OpponentGoals      *int   `json:"OpponentGoals"`
	ActualPlayDateTime string `json:"ActualPlayDateTime"`
	Competition        string `json:"Competition"`
}

// Teams returns every team.
func (s *Store) Teams() ([]models.Team, error) {
	teams := []models.Team{}
	if err := s.db.Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// Team fetches a single team.
func (s *Store) Team(id uint) (*models.Team, error) {
	var team models.Team
	if err := s.db.First(&team, id).Error; err != nil {
		return nil, one(err)
	}
	return &team, nil
}

// SeasonTeamPlayers returns the roster of a team for one season.
func (s *Store) SeasonTeamPlayers(teamID, seasonID uint) ([]RosterPlayer, error) {
	players := []RosterPlayer{}
	err := s.db.Table("player_teams pt").
		Select(`p.id AS player_id, p.first_name, p.sur_name, p.sur_name_prefix,
			pt.jersey_number, pt.effective_date, pt.expiry_date`).
		Joins("JOIN players p ON pt.player_id = p.id").
		Where("pt.team_id = ? AND pt.season_id = ?", teamID, seasonID).
		Order("p.sur_name").
		Scan(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

// CreateTeamPlayer adds a player to a team's roster for a season and
// returns the membership row's identifier.
func (s *Store) CreateTeamPlayer(teamID, playerID, seasonID uint, effectiveDate string, jerseyNumber *int) (uint, error) {
	pt := models.PlayerTeam{
		TeamID:        teamID,
		PlayerID:      playerID,
		SeasonID:      seasonID,
		EffectiveDate: effectiveDate,
		JerseyNumber:  jerseyNumber,
	}
	if err := s.db.Create(&pt).Error; err != nil {
		return 0, err
	}
	return pt.ID, nil
}

// TeamCompetitionsBySeason returns the competitions a team takes part in
// during one season.
func (s *Store) TeamCompetitionsBySeason(teamID, seasonID uint) ([]TeamCompetitionRow, error) {
	rows := []TeamCompetitionRow{}
	err := s.db.Table("competitions c").
		Select("c.id AS competition_id, c.name AS competition_name").
		Joins("JOIN competition_teams ct ON c.id = ct.competition_id").
		Where("ct.team_id = ? AND c.season_id = ?", teamID, seasonID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// teamFixtureSelect builds the team-centric fixture projection shared by
// TeamNextMatch and TeamLastResult.
const teamFixtureSelect = `
	CASE WHEN sm.home_team_id = @team THEN th.name ELSE ta.name END AS team_name,
	CASE WHEN sm.home_team_id = @team THEN ta.name ELSE th.name END AS opponent_name,
	CASE WHEN sm.home_team_id = @team THEN ta.team_logo_file ELSE th.team_logo_file END AS opponent_logo_file,
	CASE WHEN sm.home_team_id = @team THEN 1 ELSE 0 END AS is_home_match,
	CASE WHEN sm.home_team_id = @team THEN sm.home_goals ELSE sm.away_goals END AS team_goals,
	CASE WHEN sm.home_team_id = @team THEN sm.away_goals ELSE sm.home_goals END AS opponent_goals,
	COALESCE(sm.fallback_date_time, md.date || ' ' || ct.default_start_time) AS actual_play_date_time,
	c.name AS competition`

const teamFixtureJoins = `
	FROM soccer_matches sm
	JOIN competition_rounds cr ON sm.competition_round_id = cr.id
	JOIN competitions c ON cr.competition_id = c.id
	JOIN matchdays md ON cr.matchday_id = md.id
	JOIN competition_teams ct ON sm.home_team_id = ct.team_id AND ct.competition_id = cr.competition_id
	JOIN teams th ON sm.home_team_id = th.id
	JOIN teams ta ON sm.away_team_id = ta.id`

// TeamNextMatch returns the team's next unplayed fixture on or after the
// given date ("2006-01-02"), or ErrNotFound when nothing is scheduled.
func (s *Store) TeamNextMatch(teamID uint, fromDate string) (*TeamFixture, error) {
	var fixture TeamFixture
	result := s.db.Raw(`
		SELECT`+teamFixtureSelect+teamFixtureJoins+`
		WHERE sm.home_goals IS NULL AND sm.away_goals IS NULL
			AND (md.date >= @from OR sm.fallback_date_time >= @from)
			AND (sm.home_team_id = @team OR sm.away_team_id = @team)
		ORDER BY actual_play_date_time
		LIMIT 1`,
		map[string]any{"team": teamID, "from": fromDate}).
		Scan(&fixture)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &fixture, nil
}

// TeamLastResult returns the team's most recently played fixture, or
// ErrNotFound when the team has no results yet.
func (s *Store) TeamLastResult(teamID uint) (*TeamFixture, error) {
	var fixture TeamFixture
	result := s.db.Raw(`
		SELECT`+teamFixtureSelect+teamFixtureJoins+`
		WHERE sm.home_goals IS NOT NULL AND sm.away_goals IS NOT NULL
			AND (sm.home_team_id = @team OR sm.away_team_id = @team)
		ORDER BY actual_play_date_time DESC
		LIMIT 1`,
		map[string]any{"team": teamID}).
		Scan(&fixture)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &fixture, nil
}
