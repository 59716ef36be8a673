package store

import (
	"gorm.io/gorm"

	"github.com/mwessels/soccer-league/internal/models"
)

// MatchSummary is one fixture of a competition with both team names
// denormalized in.
type MatchSummary struct {
	SoccerMatchID       uint    `json:"SoccerMatchID"`
	CompetitionRoundID  uint    `json:"CompetitionRoundID"`
	HomeTeamID          uint    `json:"HomeTeamID"`
	HomeTeamName        string  `json:"HomeTeamName"`
	HomeTeamLogo        string  `json:"HomeTeamLogo"`
	HomeGoals           *int    `json:"HomeGoals"`
	AwayTeamID          uint    `json:"AwayTeamID"`
	AwayTeamName        string  `json:"AwayTeamName"`
	AwayTeamLogo        string  `json:"AwayTeamLogo"`
	AwayGoals           *int    `json:"AwayGoals"`
	SoccerMatchStatusID string  `json:"SoccerMatchStatusID"`
	MatchDate           string  `json:"MatchDate"`
	DefaultStartTime    string  `json:"DefaultStartTime"`
	RoundNumber         int     `json:"RoundNumber"`
}

// TeamMatchRow is a team-centric fixture row for a season: the opponent and
// the score from the team's perspective.
type TeamMatchRow struct {
	SoccerMatchID    uint    `json:"SoccerMatchID"`
	IsHomeMatch      bool    `json:"IsHomeMatch"`
	OpponentTeamID   uint    `json:"OpponentTeamID"`
	OpponentTeam     string  `json:"OpponentTeam"`
	OpponentLogoUrl  string  `json:"OpponentLogoUrl"`
	TeamGoals        *int    `json:"TeamGoals"`
	OpponentGoals    *int    `json:"OpponentGoals"`
	IsPracticeMatch  bool    `json:"IsPracticeMatch"`
	FallbackDateTime *string `json:"FallbackDateTime"`
	MatchDate        *string `json:"MatchDate"`
	DefaultStartTime *string `json:"DefaultStartTime"`
	RoundNumber      *int    `json:"RoundNumber"`
	CompetitionName  *string `json:"CompetitionName"`
}

// RoundMatchRow is a compact score line used inside a competition round.
type RoundMatchRow struct {
	CompetitionRoundID uint   `json:"CompetitionRoundID"`
	SoccerMatchID      uint   `json:"SoccerMatchID"`
	HomeTeamID         uint   `json:"HomeTeamID"`
	HomeTeam           string `json:"HomeTeam"`
	HomeGoals          *int   `json:"HomeGoals"`
	AwayTeamID         uint   `json:"AwayTeamID"`
	AwayTeam           string `json:"AwayTeam"`
	AwayGoals          *int   `json:"AwayGoals"`
}

// MatchDetail is the flattened single-match view with team names, logos,
// matchday, and formation denormalized in.
type MatchDetail struct {
	SoccerMatchID       uint    `json:"SoccerMatchID"`
	SoccerMatchStatusID string  `json:"SoccerMatchStatusID"`
	HomeTeamID          uint    `json:"HomeTeamID"`
	HomeTeam            string  `json:"HomeTeam"`
	HomeGoals           *int    `json:"HomeGoals"`
	HomeLogo            string  `json:"HomeLogo"`
	AwayTeamID          uint    `json:"AwayTeamID"`
	AwayTeam            string  `json:"AwayTeam"`
	AwayGoals           *int    `json:"AwayGoals"`
	AwayLogo            string  `json:"AwayLogo"`
	MatchDate           *string `json:"MatchDate"`
	SeasonID            *uint   `json:"SeasonID"`
	DefaultStartTime    *string `json:"DefaultStartTime"`
	Formation           *string `json:"Formation"`
	FormationID         *uint   `json:"FormationID"`
}

// LineupEntry is one player of a match's lineup with the position resolved
// against the match's formation.
type LineupEntry struct {
	PositionID       uint    `json:"PositionID"`
	PlayerID         uint    `json:"PlayerID"`
	FirstName        string  `json:"FirstName"`
	SurName          string  `json:"SurName"`
	SurNamePrefix    string  `json:"SurNamePrefix"`
	Position         *string `json:"Position"`
	PositionCode     *string `json:"PositionCode"`
	PositionTypeID   *uint   `json:"PositionTypeID"`
	PositionTypeName *string `json:"PositionTypeName"`
	GridPosition     *string `json:"GridPosition"`
}

// MatchEventRow is one recorded match event with the player and event
// taxonomy denormalized in.
type MatchEventRow struct {
	SoccerMatchEventID          uint    `json:"SoccerMatchEventID"`
	PlayerID                    *uint   `json:"PlayerID"`
	FirstName                   *string `json:"FirstName"`
	SurName                     *string `json:"SurName"`
	SurNamePrefix               *string `json:"SurNamePrefix"`
	EventID                     uint    `json:"EventID"`
	Minute                      int     `json:"Minute"`
	EventName                   string  `json:"EventName"`
	IsPrimaryEvent              bool    `json:"IsPrimaryEvent"`
	ReferenceSoccerMatchEventID *uint   `json:"ReferenceSoccerMatchEventID"`
}

// LineupSelection is the input for one lineup spot when replacing a match's
// lineup.
type LineupSelection struct {
	PlayerID   uint `json:"PlayerID"`
	PositionID uint `json:"PositionID"`
}

// SoccerMatchesByCompetition returns all fixtures of a competition.
func (s *Store) SoccerMatchesByCompetition(competitionID uint) ([]MatchSummary, error) {
	matches := []MatchSummary{}
	err := s.db.Table("soccer_matches sm").
		Select(`sm.id AS soccer_match_id, sm.competition_round_id,
			sm.home_team_id, th.name AS home_team_name, th.team_logo_file AS home_team_logo, sm.home_goals,
			sm.away_team_id, ta.name AS away_team_name, ta.team_logo_file AS away_team_logo, sm.away_goals,
			sm.soccer_match_status_id, md.date AS match_date, ct.default_start_time, cr.round_number`).
		Joins("JOIN competition_rounds cr ON sm.competition_round_id = cr.id AND cr.competition_id = ?", competitionID).
		Joins("JOIN competition_teams ct ON sm.home_team_id = ct.team_id AND ct.competition_id = ?", competitionID).
		Joins("JOIN matchdays md ON cr.matchday_id = md.id").
		Joins("JOIN teams th ON sm.home_team_id = th.id").
		Joins("JOIN teams ta ON sm.away_team_id = ta.id").
		Order("md.date, sm.id").
		Scan(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// SoccerMatchesBySeasonAndTeam returns every fixture a team plays in a
// season, competition matches and practice matches alike. Practice matches
// have no competition round; they belong to the season whose date range
// contains their fallback datetime.
func (s *Store) SoccerMatchesBySeasonAndTeam(seasonID, teamID uint) ([]TeamMatchRow, error) {
	matches := []TeamMatchRow{}
	err := s.db.Raw(`
		SELECT sm.id AS soccer_match_id,
			CASE WHEN sm.home_team_id = @team THEN 1 ELSE 0 END AS is_home_match,
			t.id AS opponent_team_id,
			t.name AS opponent_team,
			t.team_logo_file AS opponent_logo_url,
			CASE WHEN sm.home_team_id = @team THEN sm.home_goals ELSE sm.away_goals END AS team_goals,
			CASE WHEN sm.home_team_id = @team THEN sm.away_goals ELSE sm.home_goals END AS opponent_goals,
			sm.is_practice_match,
			sm.fallback_date_time,
			md.date AS match_date,
			ct.default_start_time,
			cr.round_number,
			c.name AS competition_name
		FROM soccer_matches sm
		LEFT JOIN competition_rounds cr ON sm.competition_round_id = cr.id
		LEFT JOIN competition_teams ct ON sm.home_team_id = ct.team_id AND ct.competition_id = cr.competition_id
		LEFT JOIN competitions c ON cr.competition_id = c.id
		LEFT JOIN matchdays md ON cr.matchday_id = md.id
		JOIN seasons se ON se.id = @season
		JOIN teams t ON t.id = CASE WHEN sm.home_team_id = @team THEN sm.away_team_id ELSE sm.home_team_id END
		WHERE (sm.home_team_id = @team OR sm.away_team_id = @team)
			AND (c.season_id = @season
				OR (sm.is_practice_match AND sm.fallback_date_time BETWEEN se.start_date AND se.end_date))`,
		map[string]any{"team": teamID, "season": seasonID}).
		Scan(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// PracticeMatchesBySeasonAndTeam returns only the practice matches a team
// plays within a season's date range.
func (s *Store) PracticeMatchesBySeasonAndTeam(seasonID, teamID uint) ([]TeamMatchRow, error) {
	matches := []TeamMatchRow{}
	err := s.db.Raw(`
		SELECT sm.id AS soccer_match_id,
			CASE WHEN sm.home_team_id = @team THEN 1 ELSE 0 END AS is_home_match,
			t.id AS opponent_team_id,
			t.name AS opponent_team,
			t.team_logo_file AS opponent_logo_url,
			CASE WHEN sm.home_team_id = @team THEN sm.home_goals ELSE sm.away_goals END AS team_goals,
			CASE WHEN sm.home_team_id = @team THEN sm.away_goals ELSE sm.home_goals END AS opponent_goals,
			sm.is_practice_match,
			sm.fallback_date_time
		FROM soccer_matches sm
		JOIN seasons se ON se.id = @season
		JOIN teams t ON t.id = CASE WHEN sm.home_team_id = @team THEN sm.away_team_id ELSE sm.home_team_id END
		WHERE (sm.home_team_id = @team OR sm.away_team_id = @team)
			AND sm.is_practice_match
			AND sm.fallback_date_time BETWEEN se.start_date AND se.end_date`,
		map[string]any{"team": teamID, "season": seasonID}).
		Scan(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// SoccerMatchesByCompetitionRound returns the score lines of one round.
func (s *Store) SoccerMatchesByCompetitionRound(competitionRoundID uint) ([]RoundMatchRow, error) {
	matches := []RoundMatchRow{}
	err := s.db.Table("soccer_matches sm").
		Select(`sm.competition_round_id, sm.id AS soccer_match_id,
			sm.home_team_id, th.name AS home_team, sm.home_goals,
			sm.away_team_id, ta.name AS away_team, sm.away_goals`).
		Joins("JOIN teams th ON sm.home_team_id = th.id").
		Joins("JOIN teams ta ON sm.away_team_id = ta.id").
		Where("sm.competition_round_id = ?", competitionRoundID).
		Order("sm.id").
		Scan(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// SoccerMatchByID fetches the flattened single-match view.
func (s *Store) SoccerMatchByID(id uint) (*MatchDetail, error) {
	var detail MatchDetail
	result := s.db.Table("soccer_matches sm").
		Select(`sm.id AS soccer_match_id, sm.soccer_match_status_id,
			sm.home_team_id, th.name AS home_team, sm.home_goals, th.team_logo_file AS home_logo,
			sm.away_team_id, ta.name AS away_team, sm.away_goals, ta.team_logo_file AS away_logo,
			md.date AS match_date, md.season_id, ct.default_start_time,
			f.description AS formation, f.id AS formation_id`).
		Joins("JOIN teams th ON sm.home_team_id = th.id").
		Joins("JOIN teams ta ON sm.away_team_id = ta.id").
		Joins("LEFT JOIN competition_rounds cr ON sm.competition_round_id = cr.id").
		Joins("LEFT JOIN competition_teams ct ON sm.home_team_id = ct.team_id AND ct.competition_id = cr.competition_id").
		Joins("LEFT JOIN matchdays md ON cr.matchday_id = md.id").
		Joins("LEFT JOIN formations f ON sm.formation_id = f.id").
		Where("sm.id = ?", id).
		Scan(&detail)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &detail, nil
}

// CreateSoccerMatch inserts a fixture and returns its identifier. Practice
// matches pass a nil round and a fallback datetime instead.
func (s *Store) CreateSoccerMatch(competitionRoundID *uint, homeTeamID, awayTeamID uint, isPractice bool, fallbackDateTime *string) (uint, error) {
	match := models.SoccerMatch{
		CompetitionRoundID:  competitionRoundID,
		HomeTeamID:          homeTeamID,
		AwayTeamID:          awayTeamID,
		SoccerMatchStatusID: models.MatchStatusScheduled,
		IsPracticeMatch:     isPractice,
		FallbackDateTime:    fallbackDateTime,
	}
	if err := s.db.Create(&match).Error; err != nil {
		return 0, err
	}
	return match.ID, nil
}

// UpdateSoccerMatchScore records a final score and marks the match played.
// Last writer wins; there is no concurrency check. ErrNotFound when the
// match does not exist.
func (s *Store) UpdateSoccerMatchScore(id uint, homeGoals, awayGoals int) error {
	result := s.db.Model(&models.SoccerMatch{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"home_goals":             homeGoals,
			"away_goals":             awayGoals,
			"soccer_match_status_id": models.MatchStatusPlayed,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceLineup sets a match's formation and replaces its entire lineup in
// one transaction: wipe the old entries, insert the new ones. Any failure
// rolls the whole operation back, so a match never ends up with a half
// lineup.
func (s *Store) ReplaceLineup(matchID uint, formationID uint, selections []LineupSelection) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SoccerMatch{}).
			Where("id = ?", matchID).
			Update("formation_id", formationID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("soccer_match_id = ?", matchID).
			Delete(&models.PlayerSoccerMatch{}).Error; err != nil {
			return err
		}

		for _, sel := range selections {
			entry := models.PlayerSoccerMatch{
				SoccerMatchID: matchID,
				PlayerID:      sel.PlayerID,
				PositionID:    sel.PositionID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteSoccerMatch removes a match together with its lineup and events in
// one transaction. Deleting a match that is already gone is a no-op.
func (s *Store) DeleteSoccerMatch(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("soccer_match_id = ?", id).
			Delete(&models.PlayerSoccerMatch{}).Error; err != nil {
			return err
		}
		if err := tx.Where("soccer_match_id = ?", id).
			Delete(&models.SoccerMatchEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SoccerMatch{}, id).Error
	})
}

// SoccerMatchLineup returns a match's lineup with positions resolved
// against the match's formation (formation-less rows are generic spots that
// apply to every formation).
func (s *Store) SoccerMatchLineup(matchID uint) ([]LineupEntry, error) {
	lineup := []LineupEntry{}
	err := s.db.Table("player_soccer_matches pm").
		Select(`pm.position_id, pm.player_id, p.first_name, p.sur_name, p.sur_name_prefix,
			fp.name AS position, fp.code AS position_code, fp.grid_position,
			pos.position_type_id, post.name AS position_type_name`).
		Joins("JOIN players p ON pm.player_id = p.id").
		Joins("JOIN soccer_matches m ON pm.soccer_match_id = m.id").
		Joins("LEFT JOIN formation_positions fp ON pm.position_id = fp.position_id AND (fp.formation_id = m.formation_id OR fp.formation_id IS NULL)").
		Joins("LEFT JOIN positions pos ON fp.position_id = pos.id").
		Joins("LEFT JOIN position_types post ON pos.position_type_id = post.id").
		Where("pm.soccer_match_id = ?", matchID).
		Scan(&lineup).Error
	if err != nil {
		return nil, err
	}
	return lineup, nil
}

// SoccerMatchEvents returns everything recorded during a match.
func (s *Store) SoccerMatchEvents(matchID uint) ([]MatchEventRow, error) {
	events := []MatchEventRow{}
	err := s.db.Table("soccer_match_events sme").
		Select(`sme.id AS soccer_match_event_id, sme.player_id,
			p.first_name, p.sur_name, p.sur_name_prefix,
			sme.event_id, sme.minute, e.name AS event_name, e.is_primary_event,
			sme.reference_soccer_match_event_id`).
		Joins("JOIN events e ON sme.event_id = e.id").
		Joins("LEFT JOIN players p ON sme.player_id = p.id").
		Where("sme.soccer_match_id = ?", matchID).
		Order("sme.minute, sme.id").
		Scan(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// CreateSoccerMatchEvent records a match event and returns its identifier.
// referenceID links composite events (second yellow → red, substitution
// on/off pairs).
func (s *Store) CreateSoccerMatchEvent(matchID, eventID uint, playerID *uint, minute int, referenceID *uint) (uint, error) {
	event := models.SoccerMatchEvent{
		SoccerMatchID:               matchID,
		EventID:                     eventID,
		PlayerID:                    playerID,
		Minute:                      minute,
		ReferenceSoccerMatchEventID: referenceID,
	}
	if err := s.db.Create(&event).Error; err != nil {
		return 0, err
	}
	return event.ID, nil
}

// DeleteSoccerMatchEvent removes one event. Idempotent.
func (s *Store) DeleteSoccerMatchEvent(id uint) error {
	return s.db.Delete(&models.SoccerMatchEvent{}, id).Error
}
