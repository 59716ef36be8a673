package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mwessels/soccer-league/internal/auth"
	"github.com/mwessels/soccer-league/internal/config"
	"github.com/mwessels/soccer-league/internal/live"
	"github.com/mwessels/soccer-league/internal/models"
	"github.com/mwessels/soccer-league/internal/store"
)

const testSecret = "handler-test-secret"

var testDBCounter uint64

// testApp bundles everything a handler test needs: the routed fiber app,
// the store, the hub, and ready-made credentials for an admin and a plain
// member.
type testApp struct {
	App         *fiber.App
	Store       *store.Store
	Hub         *live.Hub
	AdminToken  string
	MemberToken string
	AdminKey    string
}

// newTestApp builds the full HTTP surface on a unique in-memory SQLite
// database with two users seeded: an admin and a member.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	id := atomic.AddUint64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", id)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	seed := []any{
		&models.Role{ID: 1, Name: models.RoleAdmin},
		&models.Role{ID: 2, Name: models.RoleMember},
		&models.Event{ID: uint(models.EventGoal), Name: "Goal"},
		&models.Event{ID: uint(models.EventYellowCard), Name: "Yellow card"},
		&models.Event{ID: uint(models.EventRedCard), Name: "Red card"},
		&models.Event{ID: uint(models.EventSubstitution), Name: "Substitution"},
		&models.Event{ID: uint(models.EventPenalty), Name: "Penalty", IsPrimaryEvent: false},
		&models.Event{ID: uint(models.EventAssist), Name: "Assist", IsPrimaryEvent: false},
	}
	for _, row := range seed {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed reference data: %v", err)
		}
	}

	st := store.New(db)
	cfg := &config.Config{JWTSecret: testSecret, TokenTTL: time.Hour}
	hub := live.NewHub()
	go hub.Run()

	admin, err := st.CreateUser("Beheerder", "admin@example.com", "admin-secret")
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if err := db.Create(&models.UserRole{UserID: admin.ID, RoleID: 1}).Error; err != nil {
		t.Fatalf("grant admin role: %v", err)
	}
	member, err := st.CreateUser("Lid", "member@example.com", "member-secret")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if err := db.Create(&models.UserRole{UserID: member.ID, RoleID: 2}).Error; err != nil {
		t.Fatalf("grant member role: %v", err)
	}

	adminToken, err := auth.GenerateToken(auth.Claims{
		UserID: admin.ID, Username: admin.Name, Roles: []string{models.RoleAdmin},
	}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("admin token: %v", err)
	}
	memberToken, err := auth.GenerateToken(auth.Claims{
		UserID: member.ID, Username: member.Name, Roles: []string{models.RoleMember},
	}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("member token: %v", err)
	}

	app := fiber.New()
	Register(app, st, cfg, hub)

	return &testApp{
		App:         app,
		Store:       st,
		Hub:         hub,
		AdminToken:  adminToken,
		MemberToken: memberToken,
		AdminKey:    admin.ApiKey,
	}
}

// request performs one HTTP round trip against the app. A non-nil body is
// JSON encoded; a non-empty credential goes into the Authorization header
// as given (callers prepend "Bearer " for tokens).
func (ta *testApp) request(t *testing.T, method, path, credential string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = buf
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.Header.Set("Authorization", credential)
	}
	resp, err := ta.App.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// decode unmarshals a response body into a generic envelope map.
func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var envelope map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

// bearer formats a session token for the Authorization header.
func bearer(token string) string {
	return "Bearer " + token
}

// seedSeasonFixture creates a season/competition/round/matchday/teams chain
// directly through the store's database handle.
type seasonFixture struct {
	Season      models.Season
	Competition models.Competition
	Matchday    models.Matchday
	Round       models.CompetitionRound
	Home        models.Team
	Away        models.Team
}

func seedSeasonFixture(t *testing.T, st *store.Store) seasonFixture {
	t.Helper()
	db := st.DB()
	f := seasonFixture{
		Season: models.Season{Description: "2025/2026", StartDate: "2025-08-01", EndDate: "2026-06-30"},
		Home:   models.Team{Name: "Borne 3"},
		Away:   models.Team{Name: "Zenderen 2"},
	}
	for _, row := range []any{&f.Season, &f.Home, &f.Away} {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed fixture: %v", err)
		}
	}
	f.Competition = models.Competition{SeasonID: f.Season.ID, Name: "Reserve league"}
	f.Matchday = models.Matchday{SeasonID: f.Season.ID, Date: "2025-09-14"}
	if err := db.Create(&f.Competition).Error; err != nil {
		t.Fatalf("seed competition: %v", err)
	}
	if err := db.Create(&f.Matchday).Error; err != nil {
		t.Fatalf("seed matchday: %v", err)
	}
	f.Round = models.CompetitionRound{CompetitionID: f.Competition.ID, MatchdayID: f.Matchday.ID, RoundNumber: 1}
	if err := db.Create(&f.Round).Error; err != nil {
		t.Fatalf("seed round: %v", err)
	}
	for _, teamID := range []uint{f.Home.ID, f.Away.ID} {
		ct := models.CompetitionTeam{CompetitionID: f.Competition.ID, TeamID: teamID, DefaultStartTime: "14:30:00"}
		if err := db.Create(&ct).Error; err != nil {
			t.Fatalf("seed competition team: %v", err)
		}
	}
	return f
}

func TestHealthCheck_Public(t *testing.T) {
	ta := newTestApp(t)
	resp := ta.request(t, http.MethodGet, "/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
}

func TestLogin_Success(t *testing.T) {
	ta := newTestApp(t)
	resp := ta.request(t, http.MethodPost, "/login", "", LoginRequest{
		Email: "admin@example.com", Password: "admin-secret",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	envelope := decode(t, resp)
	if envelope["Error"] != false {
		t.Errorf("envelope Error: got %v", envelope["Error"])
	}
	session, ok := envelope["Session"].(map[string]any)
	if !ok {
		t.Fatalf("missing Session payload: %v", envelope)
	}
	token, _ := session["Token"].(string)
	if token == "" {
		t.Fatal("expected a session token")
	}
	claims, err := auth.ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != models.RoleAdmin {
		t.Errorf("token roles: got %v", claims.Roles)
	}
}

// The two login failure modes must be byte-for-byte identical so the API
// never confirms whether an email address is registered.
func TestLogin_FailuresIndistinguishable(t *testing.T) {
	ta := newTestApp(t)

	wrongPassword := ta.request(t, http.MethodPost, "/login", "", LoginRequest{
		Email: "admin@example.com", Password: "nope",
	})
	unknownEmail := ta.request(t, http.MethodPost, "/login", "", LoginRequest{
		Email: "ghost@example.com", Password: "admin-secret",
	})

	if wrongPassword.StatusCode != http.StatusUnauthorized || unknownEmail.StatusCode != http.StatusUnauthorized {
		t.Fatalf("statuses: got %d and %d, want 401 for both", wrongPassword.StatusCode, unknownEmail.StatusCode)
	}
	bodyA, _ := io.ReadAll(wrongPassword.Body)
	bodyB, _ := io.ReadAll(unknownEmail.Body)
	if !bytes.Equal(bodyA, bodyB) {
		t.Errorf("failure bodies differ: %s vs %s", bodyA, bodyB)
	}
}

func TestReads_RequireCredential(t *testing.T) {
	ta := newTestApp(t)
	resp := ta.request(t, http.MethodGet, "/api/v1/seasons", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no credential: got %d, want 401", resp.StatusCode)
	}

	resp = ta.request(t, http.MethodGet, "/api/v1/seasons", bearer(ta.MemberToken), nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("member token: got %d, want 200", resp.StatusCode)
	}

	// A raw API key in the Authorization header works too.
	resp = ta.request(t, http.MethodGet, "/api/v1/seasons", ta.AdminKey, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("api key: got %d, want 200", resp.StatusCode)
	}
}

func TestWrites_RequireAdminRole(t *testing.T) {
	ta := newTestApp(t)
	body := CreatePlayerRequest{FirstName: "Jan", SurName: "Jansen"}

	resp := ta.request(t, http.MethodPost, "/api/v1/players", bearer(ta.MemberToken), body)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("member write: got %d, want 403", resp.StatusCode)
	}

	resp = ta.request(t, http.MethodPost, "/api/v1/players", bearer(ta.AdminToken), body)
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("admin write: got %d, want 201", resp.StatusCode)
	}
}

func TestExpiredToken_Rejected(t *testing.T) {
	ta := newTestApp(t)
	expired, err := auth.GenerateToken(auth.Claims{UserID: 1, Roles: []string{models.RoleAdmin}}, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	resp := ta.request(t, http.MethodGet, "/api/v1/seasons", bearer(expired), nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expired token: got %d, want 401", resp.StatusCode)
	}
}

func TestGetSeason_ScopedComposite(t *testing.T) {
	ta := newTestApp(t)
	f := seedSeasonFixture(t, ta.Store)

	other := models.Season{Description: "2024/2025", StartDate: "2024-08-01", EndDate: "2025-06-30"}
	if err := ta.Store.DB().Create(&other).Error; err != nil {
		t.Fatalf("seed other season: %v", err)
	}
	if err := ta.Store.DB().Create(&models.Competition{SeasonID: other.ID, Name: "Old league"}).Error; err != nil {
		t.Fatalf("seed other competition: %v", err)
	}

	resp := ta.request(t, http.MethodGet, fmt.Sprintf("/api/v1/seasons/%d", f.Season.ID), bearer(ta.MemberToken), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	envelope := decode(t, resp)
	season := envelope["Season"].(map[string]any)
	competitions := season["Competitions"].([]any)
	if len(competitions) != 1 {
		t.Fatalf("competitions leaked across seasons: %v", competitions)
	}
	matchdays := season["Matchdays"].([]any)
	if len(matchdays) != 1 {
		t.Fatalf("matchdays leaked across seasons: %v", matchdays)
	}
}

func TestGetSeason_NotFound(t *testing.T) {
	ta := newTestApp(t)
	resp := ta.request(t, http.MethodGet, "/api/v1/seasons/999", bearer(ta.MemberToken), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("got %d, want 404", resp.StatusCode)
	}
}

func TestCreateUser_Conflict(t *testing.T) {
	ta := newTestApp(t)
	body := CreateUserRequest{Name: "Dubbel", Email: "admin@example.com", Password: "whatever1"}
	resp := ta.request(t, http.MethodPost, "/api/v1/users", bearer(ta.AdminToken), body)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate email: got %d, want 409", resp.StatusCode)
	}
}

func TestScoreUpdate_RoundTripAndBroadcast(t *testing.T) {
	ta := newTestApp(t)
	f := seedSeasonFixture(t, ta.Store)
	matchID, err := ta.Store.CreateSoccerMatch(&f.Round.ID, f.Home.ID, f.Away.ID, false, nil)
	if err != nil {
		t.Fatalf("CreateSoccerMatch: %v", err)
	}

	watcher := &live.Client{MatchID: matchID, Send: make(chan []byte, 1)}
	ta.Hub.Register(watcher)

	resp := ta.request(t, http.MethodPut, fmt.Sprintf("/api/v1/soccer-matches/%d", matchID),
		bearer(ta.AdminToken), UpdateScoreRequest{HomeGoals: intp(3), AwayGoals: intp(1)})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}

	// The new state is visible on the next read.
	resp = ta.request(t, http.MethodGet, fmt.Sprintf("/api/v1/soccer-matches/%d", matchID), bearer(ta.MemberToken), nil)
	envelope := decode(t, resp)
	match := envelope["SoccerMatch"].(map[string]any)
	if match["SoccerMatchStatusID"] != models.MatchStatusPlayed {
		t.Errorf("status after score: got %v, want PLD", match["SoccerMatchStatusID"])
	}
	if match["HomeGoals"].(float64) != 3 || match["AwayGoals"].(float64) != 1 {
		t.Errorf("score: got %v-%v", match["HomeGoals"], match["AwayGoals"])
	}

	// Live watchers got the update pushed.
	select {
	case payload := <-watcher.Send:
		var update scoreUpdate
		if err := json.Unmarshal(payload, &update); err != nil {
			t.Fatalf("unmarshal broadcast: %v", err)
		}
		if update.SoccerMatchID != matchID || update.HomeGoals != 3 || update.AwayGoals != 1 {
			t.Errorf("broadcast payload: %+v", update)
		}
	case <-time.After(time.Second):
		t.Error("no broadcast received")
	}
}

func TestDeleteSoccerMatch_Idempotent(t *testing.T) {
	ta := newTestApp(t)
	f := seedSeasonFixture(t, ta.Store)
	matchID, err := ta.Store.CreateSoccerMatch(&f.Round.ID, f.Home.ID, f.Away.ID, false, nil)
	if err != nil {
		t.Fatalf("CreateSoccerMatch: %v", err)
	}
	path := fmt.Sprintf("/api/v1/soccer-matches/%d", matchID)

	if resp := ta.request(t, http.MethodDelete, path, bearer(ta.AdminToken), nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("first delete: got %d, want 200", resp.StatusCode)
	}
	if resp := ta.request(t, http.MethodDelete, path, bearer(ta.AdminToken), nil); resp.StatusCode != http.StatusOK {
		t.Errorf("second delete: got %d, want 200", resp.StatusCode)
	}
	if resp := ta.request(t, http.MethodGet, path, bearer(ta.MemberToken), nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("read after delete: got %d, want 404", resp.StatusCode)
	}
}

func TestCreateSoccerMatch_Validation(t *testing.T) {
	ta := newTestApp(t)
	f := seedSeasonFixture(t, ta.Store)

	// A team cannot play itself.
	resp := ta.request(t, http.MethodPost, "/api/v1/soccer-matches", bearer(ta.AdminToken),
		CreateSoccerMatchRequest{CompetitionRoundID: &f.Round.ID, HomeTeamID: f.Home.ID, AwayTeamID: f.Home.ID})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("same team twice: got %d, want 400", resp.StatusCode)
	}

	// A practice match needs a kickoff datetime.
	resp = ta.request(t, http.MethodPost, "/api/v1/soccer-matches", bearer(ta.AdminToken),
		CreateSoccerMatchRequest{HomeTeamID: f.Home.ID, AwayTeamID: f.Away.ID, IsPracticeMatch: true})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("practice match without datetime: got %d, want 400", resp.StatusCode)
	}

	// A competition match needs a round.
	resp = ta.request(t, http.MethodPost, "/api/v1/soccer-matches", bearer(ta.AdminToken),
		CreateSoccerMatchRequest{HomeTeamID: f.Home.ID, AwayTeamID: f.Away.ID})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("competition match without round: got %d, want 400", resp.StatusCode)
	}
}

func TestCreateTraining_FanOut(t *testing.T) {
	ta := newTestApp(t)
	f := seedSeasonFixture(t, ta.Store)
	db := ta.Store.DB()
	for _, name := range []string{"Jan", "Piet"} {
		player := models.Player{FirstName: name, SurName: "Speler"}
		if err := db.Create(&player).Error; err != nil {
			t.Fatalf("seed player: %v", err)
		}
		pt := models.PlayerTeam{TeamID: f.Home.ID, PlayerID: player.ID, SeasonID: f.Season.ID, EffectiveDate: "2025-08-01"}
		if err := db.Create(&pt).Error; err != nil {
			t.Fatalf("seed roster: %v", err)
		}
	}

	resp := ta.request(t, http.MethodPost, "/api/v1/trainings", bearer(ta.AdminToken),
		CreateTrainingRequest{SeasonID: f.Season.ID, TeamID: &f.Home.ID, TrainingDate: "2025-09-02"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", resp.StatusCode)
	}
	envelope := decode(t, resp)
	trainingID := envelope["Training"].(map[string]any)["TrainingID"].(float64)

	resp = ta.request(t, http.MethodGet, fmt.Sprintf("/api/v1/trainings/%d", int(trainingID)), bearer(ta.MemberToken), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("read training: got %d, want 200", resp.StatusCode)
	}
	training := decode(t, resp)["Training"].(map[string]any)
	attendees := training["Players"].([]any)
	if len(attendees) != 2 {
		t.Fatalf("attendance rows: got %d, want 2", len(attendees))
	}
	for _, a := range attendees {
		if a.(map[string]any)["HasAttended"] != false {
			t.Errorf("attendance must start false: %v", a)
		}
	}
}

// A training posted without a team covers the whole season's roster, and
// the detail read can narrow the roster back down per team.
func TestCreateTraining_SeasonWideAndTeamFilter(t *testing.T) {
	ta := newTestApp(t)
	f := seedSeasonFixture(t, ta.Store)
	db := ta.Store.DB()
	rosters := map[string]uint{"Jan": f.Home.ID, "Piet": f.Home.ID, "Wim": f.Away.ID}
	for name, teamID := range rosters {
		player := models.Player{FirstName: name, SurName: "Speler"}
		if err := db.Create(&player).Error; err != nil {
			t.Fatalf("seed player: %v", err)
		}
		pt := models.PlayerTeam{TeamID: teamID, PlayerID: player.ID, SeasonID: f.Season.ID, EffectiveDate: "2025-08-01"}
		if err := db.Create(&pt).Error; err != nil {
			t.Fatalf("seed roster: %v", err)
		}
	}

	resp := ta.request(t, http.MethodPost, "/api/v1/trainings", bearer(ta.AdminToken),
		CreateTrainingRequest{SeasonID: f.Season.ID, TrainingDate: "2025-09-02"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", resp.StatusCode)
	}
	trainingID := int(decode(t, resp)["Training"].(map[string]any)["TrainingID"].(float64))

	resp = ta.request(t, http.MethodGet, fmt.Sprintf("/api/v1/trainings/%d", trainingID), bearer(ta.MemberToken), nil)
	all := decode(t, resp)["Training"].(map[string]any)["Players"].([]any)
	if len(all) != 3 {
		t.Fatalf("season-wide roster: got %d rows, want 3", len(all))
	}

	resp = ta.request(t, http.MethodGet,
		fmt.Sprintf("/api/v1/trainings/%d?teamID=%d", trainingID, f.Away.ID), bearer(ta.MemberToken), nil)
	away := decode(t, resp)["Training"].(map[string]any)["Players"].([]any)
	if len(away) != 1 {
		t.Fatalf("away roster: got %d rows, want 1", len(away))
	}
	if name := away[0].(map[string]any)["FirstName"]; name != "Wim" {
		t.Errorf("away attendee: got %v, want Wim", name)
	}
}

// The live-update route only speaks websocket; a plain GET is turned away
// before the upgrade handler runs.
func TestLiveRoute_RequiresUpgrade(t *testing.T) {
	ta := newTestApp(t)
	resp := ta.request(t, http.MethodGet, "/api/v1/soccer-matches/1/live", bearer(ta.MemberToken), nil)
	if resp.StatusCode != http.StatusUpgradeRequired {
		t.Errorf("plain GET: got %d, want %d", resp.StatusCode, http.StatusUpgradeRequired)
	}
	envelope := decode(t, resp)
	if envelope["Error"] != true {
		t.Errorf("envelope Error: got %v", envelope["Error"])
	}
}

func intp(v int) *int { return &v }
