package store

import "github.com/mwessels/soccer-league/internal/models"

// CompetitionRoundRow is a round plus its matchday date and per-round match
// progress counters.
type CompetitionRoundRow struct {
	CompetitionRoundID uint   `json:"CompetitionRoundID"`
	CompetitionID      uint   `json:"CompetitionID"`
	MatchdayID         uint   `json:"MatchdayID"`
	Date               string `json:"Date"`
	RoundNumber        int    `json:"RoundNumber"`
	Description        string `json:"Description"`
	TotalMatches       int    `json:"TotalMatches"`
	PlayedMatches      int    `json:"PlayedMatches"`
}

// CompetitionTeamRow is a participating team with its registration details.
type CompetitionTeamRow struct {
	TeamID           uint   `json:"TeamID"`
	TeamName         string `json:"TeamName"`
	DefaultStartTime string `json:"DefaultStartTime"`
	TeamLogoFile     string `json:"TeamLogoFile"`
	PointsDeducted   int    `json:"PointsDeducted"`
}

// TeamCompetitionStat is one roster player's aggregate line for a
// competition: event tallies plus derived minutes and appearance counts.
type TeamCompetitionStat struct {
	PlayerID       uint   `json:"PlayerID"`
	FullName       string `json:"FullName"`
	SurName        string `json:"SurName"`
	Goals          int    `json:"Goals"`
	Penalties      int    `json:"Penalties"`
	Assists        int    `json:"Assists"`
	YellowCards    int    `json:"YellowCards"`
	RedCards       int    `json:"RedCards"`
	Minutes        int    `json:"Minutes"`
	Appearances    int    `json:"Appearances"`
	MatchesOnBench int    `json:"MatchesOnBench"`
}

// RankedTeam is one row of the competition standings as produced by the
// get_ranking_for_competition routine.
type RankedTeam struct {
	TeamID        uint   `json:"TeamID"`
	TeamName      string `json:"TeamName"`
	Played        int    `json:"Played"`
	Wins          int    `json:"Wins"`
	Draws         int    `json:"Draws"`
	Lost          int    `json:"Lost"`
	GoalsScored   int    `json:"GoalsScored"`
	GoalsConceded int    `json:"GoalsConceded"`
	GoalsDiff     int    `json:"GoalsDiff"`
	Points        int    `json:"Points"`
}

// CompetitionsBySeason returns all competitions of a season.
func (s *Store) CompetitionsBySeason(seasonID uint) ([]models.Competition, error) {
	competitions := []models.Competition{}
	if err := s.db.Where("season_id = ?", seasonID).Find(&competitions).Error; err != nil {
		return nil, err
	}
	return competitions, nil
}

// Competition fetches a single competition.
func (s *Store) Competition(id uint) (*models.Competition, error) {
	var competition models.Competition
	if err := s.db.First(&competition, id).Error; err != nil {
		return nil, one(err)
	}
	return &competition, nil
}

// CreateCompetition inserts a competition and returns its identifier.
func (s *Store) CreateCompetition(seasonID uint, name string) (uint, error) {
	competition := models.Competition{SeasonID: seasonID, Name: name}
	if err := s.db.Create(&competition).Error; err != nil {
		return 0, err
	}
	return competition.ID, nil
}

// CreateCompetitionRound inserts a round and returns its identifier.
func (s *Store) CreateCompetitionRound(competitionID, matchdayID uint, roundNumber int, description string) (uint, error) {
	round := models.CompetitionRound{
		CompetitionID: competitionID,
		MatchdayID:    matchdayID,
		RoundNumber:   roundNumber,
		Description:   description,
	}
	if err := s.db.Create(&round).Error; err != nil {
		return 0, err
	}
	return round.ID, nil
}

// CompetitionRound fetches one round with its matchday date.
func (s *Store) CompetitionRound(id uint) (*CompetitionRoundRow, error) {
	var row CompetitionRoundRow
	result := s.db.Table("competition_rounds cr").
		Select("cr.id AS competition_round_id, cr.competition_id, cr.matchday_id, m.date, cr.round_number, cr.description").
		Joins("JOIN matchdays m ON m.id = cr.matchday_id").
		Where("cr.id = ?", id).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &row, nil
}

// CompetitionRoundsByCompetition returns every round of a competition with
// its matchday date and how many of its matches have been played.
func (s *Store) CompetitionRoundsByCompetition(competitionID uint) ([]CompetitionRoundRow, error) {
	rows := []CompetitionRoundRow{}
	err := s.db.Table("competition_rounds cr").
		Select(`cr.id AS competition_round_id, cr.competition_id, cr.matchday_id, m.date,
			cr.round_number, cr.description,
			COALESCE(sm.num_matches, 0) AS total_matches,
			COALESCE(sm.num_played, 0) AS played_matches`).
		Joins("JOIN matchdays m ON cr.matchday_id = m.id").
		Joins(`LEFT JOIN (SELECT competition_round_id, COUNT(1) AS num_matches,
				SUM(CASE WHEN soccer_match_status_id = 'PLD' THEN 1 ELSE 0 END) AS num_played
			FROM soccer_matches
			GROUP BY competition_round_id) sm ON cr.id = sm.competition_round_id`).
		Where("cr.competition_id = ?", competitionID).
		Order("cr.round_number").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TeamsByCompetition returns the teams registered in a competition.
func (s *Store) TeamsByCompetition(competitionID uint) ([]CompetitionTeamRow, error) {
	rows := []CompetitionTeamRow{}
	err := s.db.Table("competition_teams ct").
		Select(`ct.team_id, t.name AS team_name, ct.default_start_time,
			t.team_logo_file, COALESCE(ct.points_deducted, 0) AS points_deducted`).
		Joins("JOIN teams t ON ct.team_id = t.id").
		Where("ct.competition_id = ?", competitionID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateCompetitionTeam registers a team in a competition and returns the
// join row's identifier.
func (s *Store) CreateCompetitionTeam(competitionID, teamID uint, defaultStartTime string) (uint, error) {
	ct := models.CompetitionTeam{
		CompetitionID:    competitionID,
		TeamID:           teamID,
		DefaultStartTime: defaultStartTime,
	}
	if err := s.db.Create(&ct).Error; err != nil {
		return 0, err
	}
	return ct.ID, nil
}

// TeamCompetitionStats aggregates every rostered player's event tallies,
// minutes played, and appearances for one team in one competition.
//
// Minutes: a lineup spot (starter or bench) is worth 90 minutes, corrected
// by the player's substitution event if there is one — a plain substitution
// means the player went off at that minute (played Minute), a substitution
// referencing another event means the player came on (played 90 - Minute).
func (s *Store) TeamCompetitionStats(competitionID, teamID uint) ([]TeamCompetitionStat, error) {
	stats := []TeamCompetitionStat{}
	err := s.db.Raw(`
		SELECT pt.player_id,
			`+playerNameExpr+` AS full_name,
			p.sur_name,
			COALESCE(ev.goals, 0) AS goals,
			COALESCE(ev.penalties, 0) AS penalties,
			COALESCE(ev.assists, 0) AS assists,
			COALESCE(ev.yellow_cards, 0) AS yellow_cards,
			COALESCE(ev.red_cards, 0) AS red_cards,
			COALESCE(ms.minutes, 0) AS minutes,
			COALESCE(ap.appearances, 0) AS appearances,
			COALESCE(ap.matches_on_bench, 0) AS matches_on_bench
		FROM player_teams pt
		JOIN players p ON pt.player_id = p.id
		JOIN competitions c ON c.id = ? AND c.season_id = pt.season_id
		LEFT JOIN (
			SELECT sme.player_id,
				SUM(CASE WHEN sme.event_id = 1 THEN 1 ELSE 0 END) AS goals,
				SUM(CASE WHEN sme.event_id = 5 THEN 1 ELSE 0 END) AS penalties,
				SUM(CASE WHEN sme.event_id = 7 THEN 1 ELSE 0 END) AS assists,
				SUM(CASE WHEN sme.event_id = 2 THEN 1 ELSE 0 END) AS yellow_cards,
				SUM(CASE WHEN sme.event_id = 3 THEN 1 ELSE 0 END) AS red_cards
			FROM soccer_match_events sme
			JOIN soccer_matches sm ON sme.soccer_match_id = sm.id
			JOIN competition_rounds cr ON sm.competition_round_id = cr.id
			WHERE cr.competition_id = ?
			GROUP BY sme.player_id
		) ev ON ev.player_id = pt.player_id
		LEFT JOIN (
			SELECT psm.player_id,
				SUM(CASE WHEN pos.position_type_id IN (1, 2) THEN
					90 - CASE
						WHEN sub.id IS NULL THEN 0
						WHEN sub.reference_soccer_match_event_id IS NOT NULL THEN sub.minute
						ELSE 90 - sub.minute
					END
				ELSE 0 END) AS minutes
			FROM player_soccer_matches psm
			JOIN soccer_matches sm ON psm.soccer_match_id = sm.id
			JOIN competition_rounds cr ON sm.competition_round_id = cr.id
			JOIN positions pos ON psm.position_id = pos.id
			LEFT JOIN soccer_match_events sub ON sub.soccer_match_id = psm.soccer_match_id
				AND sub.player_id = psm.player_id AND sub.event_id = 4
			WHERE cr.competition_id = ?
			GROUP BY psm.player_id
		) ms ON ms.player_id = pt.player_id
		LEFT JOIN (
			SELECT psm.player_id,
				SUM(CASE WHEN pos.position_type_id IN (1, 2) THEN 1 ELSE 0 END) AS appearances,
				SUM(CASE WHEN pos.position_type_id = 2 THEN 1 ELSE 0 END) AS matches_on_bench
			FROM player_soccer_matches psm
			JOIN soccer_matches sm ON psm.soccer_match_id = sm.id
			JOIN competition_rounds cr ON sm.competition_round_id = cr.id
			JOIN positions pos ON psm.position_id = pos.id
			WHERE cr.competition_id = ?
			GROUP BY psm.player_id
		) ap ON ap.player_id = pt.player_id
		WHERE pt.team_id = ?
		ORDER BY p.sur_name`,
		competitionID, competitionID, competitionID, competitionID, teamID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RankingByCompetition returns the standings table for a competition. The
// ranking itself is computed by the get_ranking_for_competition database
// routine (shipped with the schema migrations); this method only marshals
// its result set.
func (s *Store) RankingByCompetition(competitionID uint) ([]RankedTeam, error) {
	ranking := []RankedTeam{}
	err := s.db.Raw("SELECT * FROM get_ranking_for_competition(?)", competitionID).
		Scan(&ranking).Error
	if err != nil {
		return nil, err
	}
	return ranking, nil
}
