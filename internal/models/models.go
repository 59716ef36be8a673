// Package models defines the data structures that map to database tables.
// GORM uses these structs to generate SQL and map rows back to Go values.
//
// The data model represents an amateur soccer club's administration:
//   - A Season owns Matchdays (calendar dates) and Competitions.
//   - A Competition is split into CompetitionRounds, each tied to one
//     Matchday, and has participating CompetitionTeams.
//   - A SoccerMatch belongs to a CompetitionRound (practice matches don't)
//     and carries a Lineup (PlayerSoccerMatch rows) and match events.
//   - Player roster membership is season-scoped via PlayerTeam.
//   - Trainings track per-player attendance via PlayerTraining.
//
// The JSON tags mirror the field names the club's frontends already consume
// (PascalCase, entity-prefixed identifiers), which is why they differ from
// the snake_case column names GORM derives.
package models

import "time"

// --- Enums ---

// EventCode identifies the kind of a soccer match event. The numeric values
// are primary keys of the events reference table and are fixed by the seed
// migration; code 6 is deliberately absent (never used by the club's data).
type EventCode int

const (
	EventGoal         EventCode = 1
	EventYellowCard   EventCode = 2
	EventRedCard      EventCode = 3
	EventSubstitution EventCode = 4
	EventPenalty      EventCode = 5
	EventAssist       EventCode = 7
)

// Match status codes. A match starts scheduled and transitions to played the
// moment a final score is recorded.
const (
	MatchStatusScheduled = "SCH"
	MatchStatusPlayed    = "PLD"
)

// Position type identifiers: whether a lineup position is a starting spot or
// a bench spot. Used by appearance and minutes-played aggregates.
const (
	PositionTypeStarter = 1
	PositionTypeBench   = 2
)

// Role names. Only admin grants write access; any known user may read.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// --- Models ---

// User is an account that can call the API. ApiKey is a long-lived per-user
// credential accepted in the Authorization header as an alternative to a
// session token; it is unique across users.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"UserID"`
	Name          string    `gorm:"not null" json:"Name"`
	Email         string    `gorm:"uniqueIndex;not null" json:"Email"`
	PasswordHash  string    `gorm:"not null" json:"-"`
	ApiKey        string    `gorm:"uniqueIndex;not null" json:"-"`
	Status        int       `gorm:"not null;default:1" json:"Status"`
	DefaultTeamID *uint     `json:"DefaultTeamID"`
	CreatedAt     time.Time `json:"CreatedAt"`
}

// Role is a named permission level ("admin", "member").
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"RoleID"`
	Name string `gorm:"uniqueIndex;not null" json:"Name"`
}

// UserRole links a user to a role.
type UserRole struct {
	UserID uint `gorm:"primaryKey" json:"UserID"`
	RoleID uint `gorm:"primaryKey" json:"RoleID"`
	Role   Role `gorm:"foreignKey:RoleID" json:"-"`
}

// UserCompetition grants a user access to a competition. Login embeds these
// grants in the session token instead of a hardcoded context.
type UserCompetition struct {
	UserID        uint        `gorm:"primaryKey" json:"UserID"`
	CompetitionID uint        `gorm:"primaryKey" json:"CompetitionID"`
	Competition   Competition `gorm:"foreignKey:CompetitionID" json:"-"`
}

// UserTeam grants a user access to a team.
type UserTeam struct {
	UserID uint `gorm:"primaryKey" json:"UserID"`
	TeamID uint `gorm:"primaryKey" json:"TeamID"`
	Team   Team `gorm:"foreignKey:TeamID" json:"-"`
}

// Season is a playing year (e.g. "2015-2016"). Dates are ISO "2006-01-02"
// strings; the club's clients treat them as opaque date strings.
type Season struct {
	ID          uint   `gorm:"primaryKey" json:"SeasonID"`
	StartDate   string `gorm:"type:date;not null" json:"StartDate"`
	EndDate     string `gorm:"type:date;not null" json:"EndDate"`
	Description string `gorm:"not null" json:"Description"`
}

// Matchday is a calendar date within a season on which competition rounds
// are scheduled.
type Matchday struct {
	ID       uint   `gorm:"primaryKey" json:"MatchdayID"`
	SeasonID uint   `gorm:"not null;index" json:"SeasonID"`
	Date     string `gorm:"type:date;not null" json:"Date"`
}

// Competition is a league or cup within a season.
type Competition struct {
	ID                uint   `gorm:"primaryKey" json:"CompetitionID"`
	SeasonID          uint   `gorm:"not null;index" json:"SeasonID"`
	Name              string `gorm:"not null" json:"Name"`
	CompetitionTypeID *uint  `json:"CompetitionTypeID"`
}

// CompetitionRound is a numbered round of a competition, tied to one
// matchday.
type CompetitionRound struct {
	ID            uint   `gorm:"primaryKey" json:"CompetitionRoundID"`
	CompetitionID uint   `gorm:"not null;index" json:"CompetitionID"`
	MatchdayID    uint   `gorm:"not null" json:"MatchdayID"`
	RoundNumber   int    `gorm:"not null" json:"RoundNumber"`
	Description   string `json:"Description"`
}

// CompetitionTeam registers a team in a competition. DefaultStartTime is the
// team's usual kickoff time ("14:30:00") for home matches; PointsDeducted
// records a league penalty, if any.
type CompetitionTeam struct {
	ID               uint   `gorm:"primaryKey" json:"CompetitionTeamID"`
	CompetitionID    uint   `gorm:"not null;uniqueIndex:idx_competition_team" json:"CompetitionID"`
	TeamID           uint   `gorm:"not null;uniqueIndex:idx_competition_team" json:"TeamID"`
	DefaultStartTime string `json:"DefaultStartTime"`
	PointsDeducted   *int   `json:"PointsDeducted"`
}

// Team is a club side, ours or an opponent's.
type Team struct {
	ID           uint   `gorm:"primaryKey" json:"TeamID"`
	Name         string `gorm:"not null" json:"Name"`
	TeamLogoFile string `json:"TeamLogoFile"`
}

// Player is a person who can appear on rosters, lineups, and attendance
// sheets. SurNamePrefix holds Dutch tussenvoegsels ("van", "de"); display
// names concatenate the three name parts.
type Player struct {
	ID            uint    `gorm:"primaryKey" json:"PlayerID"`
	FirstName     string  `gorm:"not null" json:"FirstName"`
	SurName       string  `gorm:"not null" json:"SurName"`
	SurNamePrefix string  `json:"SurNamePrefix"`
	DateOfBirth   *string `gorm:"type:date" json:"DateOfBirth"`
	RelationCode  string  `json:"RelationCode"`
	EmailAddress  string  `json:"EmailAddress"`
}

// PlayerTeam is a season-scoped, time-bounded roster membership.
type PlayerTeam struct {
	ID            uint    `gorm:"primaryKey" json:"PlayerTeamID"`
	TeamID        uint    `gorm:"not null;index" json:"TeamID"`
	PlayerID      uint    `gorm:"not null;index" json:"PlayerID"`
	SeasonID      uint    `gorm:"not null;index" json:"SeasonID"`
	EffectiveDate string  `gorm:"type:date" json:"EffectiveDate"`
	ExpiryDate    *string `gorm:"type:date" json:"ExpiryDate"`
	JerseyNumber  *int    `json:"JerseyNumber"`
}

// SoccerMatch is one fixture. Goals stay null until the match has been
// played; recording a score flips SoccerMatchStatusID to "PLD". Practice
// matches have no competition round and are dated by FallbackDateTime.
type SoccerMatch struct {
	ID                 uint    `gorm:"primaryKey" json:"SoccerMatchID"`
	CompetitionRoundID *uint   `gorm:"index" json:"CompetitionRoundID"`
	HomeTeamID         uint    `gorm:"not null" json:"HomeTeamID"`
	AwayTeamID         uint    `gorm:"not null" json:"AwayTeamID"`
	HomeGoals          *int    `json:"HomeGoals"`
	AwayGoals          *int    `json:"AwayGoals"`
	SoccerMatchStatusID string `gorm:"not null;default:SCH" json:"SoccerMatchStatusID"`
	FormationID        *uint   `json:"FormationID"`
	IsPracticeMatch    bool    `gorm:"not null;default:false" json:"IsPracticeMatch"`
	FallbackDateTime   *string `json:"FallbackDateTime"`
}

// PlayerSoccerMatch is one lineup entry: a player's appearance in a match at
// a given position.
type PlayerSoccerMatch struct {
	ID            uint `gorm:"primaryKey" json:"PlayerSoccerMatchID"`
	SoccerMatchID uint `gorm:"not null;uniqueIndex:idx_match_player" json:"SoccerMatchID"`
	PlayerID      uint `gorm:"not null;uniqueIndex:idx_match_player" json:"PlayerID"`
	PositionID    uint `gorm:"not null" json:"PositionID"`
}

// SoccerMatchEvent records something that happened during a match.
// ReferenceSoccerMatchEventID links composite events: a red card referencing
// a yellow card expresses "second yellow equals red", and a substitution
// referencing another event marks the player coming on rather than going
// off.
type SoccerMatchEvent struct {
	ID                          uint  `gorm:"primaryKey" json:"SoccerMatchEventID"`
	SoccerMatchID               uint  `gorm:"not null;index" json:"SoccerMatchID"`
	EventID                     uint  `gorm:"not null" json:"EventID"`
	PlayerID                    *uint `json:"PlayerID"`
	Minute                      int   `gorm:"not null" json:"Minute"`
	ReferenceSoccerMatchEventID *uint `json:"ReferenceSoccerMatchEventID"`
}

// Training is a scheduled session for a season (and usually a team).
// IsBonus marks extra sessions that don't count against attendance quotas.
type Training struct {
	ID           uint   `gorm:"primaryKey" json:"TrainingID"`
	SeasonID     uint   `gorm:"not null;index" json:"SeasonID"`
	TeamID       *uint  `json:"TeamID"`
	TrainingDate string `gorm:"type:date;not null" json:"TrainingDate"`
	IsBonus      bool   `gorm:"not null;default:false" json:"IsBonus"`
}

// PlayerTraining is a per-player attendance row for one training. Rows are
// created in bulk (HasAttended=false) for the whole roster when the training
// is created.
type PlayerTraining struct {
	ID          uint `gorm:"primaryKey" json:"PlayerTrainingID"`
	TrainingID  uint `gorm:"not null;uniqueIndex:idx_training_player" json:"TrainingID"`
	PlayerID    uint `gorm:"not null;uniqueIndex:idx_training_player" json:"PlayerID"`
	HasAttended bool `gorm:"not null;default:false" json:"HasAttended"`
}

// Event is the reference taxonomy of things that can happen in a match
// (goal, card, substitution, ...). IsPrimaryEvent distinguishes events that
// stand on their own from ones that only qualify another event.
type Event struct {
	ID             uint   `gorm:"primaryKey" json:"EventID"`
	Name           string `gorm:"not null" json:"Name"`
	IsPrimaryEvent bool   `gorm:"not null;default:true" json:"IsPrimaryEvent"`
}

// Formation is a named arrangement of field positions (e.g. "4-3-3").
type Formation struct {
	ID          uint   `gorm:"primaryKey" json:"FormationID"`
	Description string `gorm:"not null" json:"Description"`
}

// PositionType classifies positions as starting or bench spots.
type PositionType struct {
	ID   uint   `gorm:"primaryKey" json:"PositionTypeID"`
	Name string `gorm:"not null" json:"Name"`
}

// Position is a lineup position a player can hold.
type Position struct {
	ID             uint `gorm:"primaryKey" json:"PositionID"`
	PositionTypeID uint `gorm:"not null" json:"PositionTypeID"`
}

// FormationPosition names and places a position within a formation. Rows
// with a null FormationID (bench spots, generic substitutes) apply to every
// formation.
type FormationPosition struct {
	ID           uint   `gorm:"primaryKey" json:"FormationPositionID"`
	FormationID  *uint  `gorm:"index" json:"FormationID"`
	PositionID   uint   `gorm:"not null" json:"PositionID"`
	Name         string `gorm:"not null" json:"Name"`
	Code         string `gorm:"not null" json:"Code"`
	GridPosition string `json:"GridPosition"`
}

// All lists every model in dependency order; tests hand this to
// AutoMigrate to build an in-memory schema that matches the SQL migrations.
func All() []any {
	return []any{
		&User{}, &Role{}, &UserRole{}, &UserCompetition{}, &UserTeam{},
		&Season{}, &Matchday{}, &Competition{}, &CompetitionRound{},
		&CompetitionTeam{}, &Team{}, &Player{}, &PlayerTeam{},
		&SoccerMatch{}, &PlayerSoccerMatch{}, &SoccerMatchEvent{},
		&Training{}, &PlayerTraining{},
		&Event{}, &Formation{}, &PositionType{}, &Position{}, &FormationPosition{},
	}
}
