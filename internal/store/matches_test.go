package store

import (
	"testing"

	"github.com/mwessels/soccer-league/internal/models"
)

func TestCreateAndReadSoccerMatch(t *testing.T) {
	st := newTestStore(t)
	f := seedCompetition(t, st)

	id, err := st.CreateSoccerMatch(&f.Round.ID, f.Home.ID, f.Away.ID, false, nil)
	if err != nil {
		t.Fatalf("CreateSoccerMatch: %v", err)
	}

	match, err := st.SoccerMatchByID(id)
	if err != nil {
		t.Fatalf("SoccerMatchByID: %v", err)
	}
	if match.SoccerMatchStatusID != models.MatchStatusScheduled {
		t.Errorf("status: got %q, want %q", match.SoccerMatchStatusID, models.MatchStatusScheduled)
	}
	if match.HomeTeam != "Borne 3" || match.AwayTeam != "Zenderen 2" {
		t.Errorf("teams: got %q vs %q", match.HomeTeam, match.AwayTeam)
	}
	if match.HomeGoals != nil || match.AwayGoals != nil {
		t.Error("a scheduled match should have no goals yet")
	}
	if match.MatchDate == nil || *match.MatchDate != "2025-09-14" {
		t.Errorf("match date: got %v", match.MatchDate)
	}
}

func TestSoccerMatchByID_NotFound(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.SoccerMatchByID(404); err != ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

// Recording a score must flip the match to played, and the new state must
// be visible on the next read.
func TestUpdateSoccerMatchScore(t *testing.T) {
	st := newTestStore(t)
	f := seedCompetition(t, st)
	id, err := st.CreateSoccerMatch(&f.Round.ID, f.Home.ID, f.Away.ID, false, nil)
	if err != nil {
		t.Fatalf("CreateSoccerMatch: %v", err)
	}

	if err := st.UpdateSoccerMatchScore(id, 3, 1); err != nil {
		t.Fatalf("UpdateSoccerMatchScore: %v", err)
	}

	match, err := st.SoccerMatchByID(id)
	if err != nil {
		t.Fatalf("SoccerMatchByID: %v", err)
	}
	if match.SoccerMatchStatusID != models.MatchStatusPlayed {
		t.Errorf("status after score: got %q, want %q", match.SoccerMatchStatusID, models.MatchStatusPlayed)
	}
	if match.HomeGoals == nil || *match.HomeGoals != 3 {
		t.Errorf("home goals: got %v", match.HomeGoals)
	}
	if match.AwayGoals == nil || *match.AwayGoals != 1 {
		t.Errorf("away goals: got %v", match.AwayGoals)
	}
}

func TestUpdateSoccerMatchScore_NotFound(t *testing.T) {
	st := newTestStore(t)
	if err := st.UpdateSoccerMatchScore(404, 1, 0); err != ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteSoccerMatch_Idempotent(t *testing.T) {
	st := newTestStore(t)
	f := seedCompetition(t, st)
	id, err := st.CreateSoccerMatch(&f.Round.ID, f.Home.ID, f.Away.ID, false, nil)
	if err != nil {
		t.Fatalf("CreateSoccerMatch: %v", err)
	}
	player := models.Player{FirstName: "Jan", SurName: "Jansen"}
	mustCreate(t, st, &player)
	mustCreate(t, st, &models.PlayerSoccerMatch{SoccerMatchID: id, PlayerID: player.ID, PositionID: 1})
	if _, err := st.CreateSoccerMatchEvent(id, uint(models.EventGoal), &player.ID, 12, nil); err != nil {
		t.Fatalf("CreateSoccerMatchEvent: %v", err)
	}

	if err := st.DeleteSoccerMatch(id); err != nil {
		t.Fatalf("DeleteSoccerMatch: %v", err)
	}
	if _, err := st.SoccerMatchByID(id); err != ErrNotFound {
		t.Errorf("after delete: got %v, want ErrNotFound", err)
	}
	events, err := st.SoccerMatchEvents(id)
	if err != nil {
		t.Fatalf("SoccerMatchEvents: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events should be gone, got %d", len(events))
	}

	// Second delete of the same match must not error.
	if err := st.DeleteSoccerMatch(id); err != nil {
		t.Errorf("second DeleteSoccerMatch: %v", err)
	}
}

func TestReplaceLineup(t *testing.T) {
	st := newTestStore(t)
	f := seedCompetition(t, st)
	id, err := st.CreateSoccerMatch(&f.Round.ID, f.Home.ID, f.Away.ID, false, nil)
	if err != nil {
		t.Fatalf("CreateSoccerMatch: %v", err)
	}

	formation := models.Formation{Description: "4-3-3"}
	mustCreate(t, st, &formation)
	keeper := models.Player{FirstName: "Jan", SurName: "Jansen"}
	striker := models.Player{FirstName: "Piet", SurNamePrefix: "van der", SurName: "Berg"}
	mustCreate(t, st, &keeper)
	mustCreate(t, st, &striker)
	mustCreate(t, st, &models.PositionType{ID: models.PositionTypeStarter, Name: "Starter"})
	mustCreate(t, st, &models.Position{ID: 1, PositionTypeID: models.PositionTypeStarter})
	mustCreate(t, st, &models.Position{ID: 10, PositionTypeID: models.PositionTypeStarter})
	mustCreate(t, st, &models.FormationPosition{FormationID: &formation.ID, PositionID: 1, Name: "Goalkeeper", Code: "GK"})
	mustCreate(t, st, &models.FormationPosition{FormationID: &formation.ID, PositionID: 10, Name: "Striker", Code: "ST"})

	err = st.ReplaceLineup(id, formation.ID, []LineupSelection{
		{PlayerID: keeper.ID, PositionID: 1},
		{PlayerID: striker.ID, PositionID: 10},
	})
	if err != nil {
		t.Fatalf("ReplaceLineup: %v", err)
	}

	lineup, err := st.SoccerMatchLineup(id)
	if err != nil {
		t.Fatalf("SoccerMatchLineup: %v", err)
	}
	if len(lineup) != 2 {
		t.Fatalf("lineup size: got %d, want 2", len(lineup))
	}

	// Replacing again wipes the previous lineup instead of appending.
	err = st.ReplaceLineup(id, formation.ID, []LineupSelection{
		{PlayerID: keeper.ID, PositionID: 1},
	})
	if err != nil {
		t.Fatalf("second ReplaceLineup: %v", err)
	}
	lineup, err = st.SoccerMatchLineup(id)
	if err != nil {
		t.Fatalf("SoccerMatchLineup: %v", err)
	}
	if len(lineup) != 1 {
		t.Errorf("lineup size after replace: got %d, want 1", len(lineup))
	}
	if lineup[0].Position == nil || *lineup[0].Position != "Goalkeeper" {
		t.Errorf("resolved position: got %v", lineup[0].Position)
	}
}

func TestReplaceLineup_MatchNotFound(t *testing.T) {
	st := newTestStore(t)
	err := st.ReplaceLineup(404, 1, nil)
	if err != ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestMatchEvents(t *testing.T) {
	st := newTestStore(t)
	f := seedCompetition(t, st)
	id, err := st.CreateSoccerMatch(&f.Round.ID, f.Home.ID, f.Away.ID, false, nil)
	if err != nil {
		t.Fatalf("CreateSoccerMatch: %v", err)
	}
	player := models.Player{FirstName: "Jan", SurName: "Jansen"}
	mustCreate(t, st, &player)

	goalID, err := st.CreateSoccerMatchEvent(id, uint(models.EventGoal), &player.ID, 55, nil)
	if err != nil {
		t.Fatalf("CreateSoccerMatchEvent: %v", err)
	}
	if _, err := st.CreateSoccerMatchEvent(id, uint(models.EventAssist), &player.ID, 55, &goalID); err != nil {
		t.Fatalf("create assist: %v", err)
	}

	events, err := st.SoccerMatchEvents(id)
	if err != nil {
		t.Fatalf("SoccerMatchEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events: got %d, want 2", len(events))
	}
	if events[0].EventName != "Goal" || events[0].Minute != 55 {
		t.Errorf("first event: %+v", events[0])
	}
	if events[1].ReferenceSoccerMatchEventID == nil || *events[1].ReferenceSoccerMatchEventID != goalID {
		t.Errorf("assist should reference the goal: %+v", events[1])
	}

	if err := st.DeleteSoccerMatchEvent(goalID); err != nil {
		t.Fatalf("DeleteSoccerMatchEvent: %v", err)
	}
	// Deleting an already-removed event is still fine.
	if err := st.DeleteSoccerMatchEvent(goalID); err != nil {
		t.Errorf("second DeleteSoccerMatchEvent: %v", err)
	}
}

func TestSoccerMatchesByCompetitionRound(t *testing.T) {
	st := newTestStore(t)
	f := seedCompetition(t, st)
	id, err := st.CreateSoccerMatch(&f.Round.ID, f.Home.ID, f.Away.ID, false, nil)
	if err != nil {
		t.Fatalf("CreateSoccerMatch: %v", err)
	}

	matches, err := st.SoccerMatchesByCompetitionRound(f.Round.ID)
	if err != nil {
		t.Fatalf("SoccerMatchesByCompetitionRound: %v", err)
	}
	if len(matches) != 1 || matches[0].SoccerMatchID != id {
		t.Fatalf("round matches: %+v", matches)
	}
	if matches[0].HomeTeam != "Borne 3" {
		t.Errorf("home team: got %q", matches[0].HomeTeam)
	}
}

func TestSoccerMatchesBySeasonAndTeam_IncludesPracticeMatches(t *testing.T) {
	st := newTestStore(t)
	f := seedCompetition(t, st)

	if _, err := st.CreateSoccerMatch(&f.Round.ID, f.Home.ID, f.Away.ID, false, nil); err != nil {
		t.Fatalf("create competition match: %v", err)
	}
	inSeason := "2025-10-03 19:30:00"
	if _, err := st.CreateSoccerMatch(nil, f.Home.ID, f.Away.ID, true, &inSeason); err != nil {
		t.Fatalf("create practice match: %v", err)
	}
	// A practice match outside the season's date range stays invisible.
	outOfSeason := "2024-05-01 19:30:00"
	if _, err := st.CreateSoccerMatch(nil, f.Home.ID, f.Away.ID, true, &outOfSeason); err != nil {
		t.Fatalf("create old practice match: %v", err)
	}

	matches, err := st.SoccerMatchesBySeasonAndTeam(f.Season.ID, f.Home.ID)
	if err != nil {
		t.Fatalf("SoccerMatchesBySeasonAndTeam: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches: got %d, want 2 (one competition, one practice)", len(matches))
	}
	for _, m := range matches {
		if !m.IsHomeMatch {
			t.Errorf("expected home match, got %+v", m)
		}
		if m.OpponentTeam != "Zenderen 2" {
			t.Errorf("opponent: got %q", m.OpponentTeam)
		}
	}

	practice, err := st.PracticeMatchesBySeasonAndTeam(f.Season.ID, f.Home.ID)
	if err != nil {
		t.Fatalf("PracticeMatchesBySeasonAndTeam: %v", err)
	}
	if len(practice) != 1 || !practice[0].IsPracticeMatch {
		t.Fatalf("practice matches: %+v", practice)
	}
}
