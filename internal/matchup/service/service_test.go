package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	matchupModel "github.com/samarthbadyal/hoopsim/internal/matchup/model"
	"github.com/samarthbadyal/hoopsim/internal/matchup/repository"
	"github.com/samarthbadyal/hoopsim/internal/sim"
	teamModel "github.com/samarthbadyal/hoopsim/internal/team/model"
)

// Local test models keep sqlite-friendly column types; records written by
// the code under test map to them by table name.
type testTeam struct {
	TeamID    string `gorm:"primaryKey;column:team_id"`
	Name      string `gorm:"column:name;uniqueIndex"`
	City      string `gorm:"column:city"`
	LogoURL   string `gorm:"column:logo_url"`
	Wins      int    `gorm:"column:wins;not null;default:0"`
	Losses    int    `gorm:"column:losses;not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (testTeam) TableName() string { return "teams" }

type testPlayer struct {
	PlayerID    string  `gorm:"primaryKey;column:player_id"`
	FirstName   string  `gorm:"column:first_name"`
	LastName    string  `gorm:"column:last_name"`
	TeamID      *string `gorm:"column:team_id"`
	Position    string  `gorm:"column:position"`
	HeightCm    int     `gorm:"column:height_cm"`
	WeightLbs   int     `gorm:"column:weight_lbs"`
	Skill       int     `gorm:"column:skill"`
	Points      int     `gorm:"column:points;not null;default:0"`
	Assists     int     `gorm:"column:assists;not null;default:0"`
	Rebounds    int     `gorm:"column:rebounds;not null;default:0"`
	Steals      int     `gorm:"column:steals;not null;default:0"`
	Blocks      int     `gorm:"column:blocks;not null;default:0"`
	GamesPlayed int     `gorm:"column:games_played;not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (testPlayer) TableName() string { return "players" }

type testMatchup struct {
	MatchupID     string    `gorm:"primaryKey;column:matchup_id"`
	HomeTeamID    string    `gorm:"column:home_team_id"`
	AwayTeamID    string    `gorm:"column:away_team_id"`
	Date          time.Time `gorm:"column:date"`
	Location      string    `gorm:"column:location"`
	Simulated     bool      `gorm:"column:simulated;not null;default:false"`
	HomeTeamScore int       `gorm:"column:home_team_score;not null;default:0"`
	AwayTeamScore int       `gorm:"column:away_team_score;not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (testMatchup) TableName() string { return "matchups" }

type testStatLine struct {
	ID        int64  `gorm:"primaryKey;column:id"`
	MatchupID string `gorm:"column:matchup_id"`
	PlayerID  string `gorm:"column:player_id"`
	TeamID    string `gorm:"column:team_id"`
	Points    int    `gorm:"column:points"`
	Assists   int    `gorm:"column:assists"`
	Rebounds  int    `gorm:"column:rebounds"`
	Steals    int    `gorm:"column:steals"`
	Blocks    int    `gorm:"column:blocks"`
}

func (testStatLine) TableName() string { return "stat_lines" }

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&testTeam{}, &testPlayer{}, &testMatchup{}, &testStatLine{})
	require.NoError(t, err)

	return db
}

func newService(db *gorm.DB, seed int64) Service {
	logger := zap.NewNop().Sugar()
	repo := repository.New(db, logger)
	return New(repo, db, sim.New(rand.NewSource(seed)), logger)
}

func seedTeam(t *testing.T, db *gorm.DB, name string) string {
	id := uuid.NewString()
	require.NoError(t, db.Create(&testTeam{
		TeamID: id,
		Name:   name,
		City:   "Testville",
	}).Error)
	return id
}

func seedPlayer(t *testing.T, db *gorm.DB, teamID, first, last, pos string, skill, heightCm, weightLbs int) string {
	id := uuid.NewString()
	require.NoError(t, db.Create(&testPlayer{
		PlayerID:  id,
		FirstName: first,
		LastName:  last,
		TeamID:    &teamID,
		Position:  pos,
		HeightCm:  heightCm,
		WeightLbs: weightLbs,
		Skill:     skill,
	}).Error)
	return id
}

func seedMatchup(t *testing.T, db *gorm.DB, homeID, awayID string) string {
	id := uuid.NewString()
	require.NoError(t, db.Create(&testMatchup{
		MatchupID:  id,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		Date:       time.Now().Add(24 * time.Hour),
		Location:   "Test Arena",
	}).Error)
	return id
}

func getTeam(t *testing.T, db *gorm.DB, teamID string) testTeam {
	var team testTeam
	require.NoError(t, db.Where("team_id = ?", teamID).First(&team).Error)
	return team
}

func getPlayer(t *testing.T, db *gorm.DB, playerID string) testPlayer {
	var player testPlayer
	require.NoError(t, db.Where("player_id = ?", playerID).First(&player).Error)
	return player
}

func TestService_Simulate(t *testing.T) {
	ctx := context.Background()

	t.Run("score equals sum of roster points", func(t *testing.T) {
		db := setupTestDB(t)
		homeID := seedTeam(t, db, "Hawks")
		awayID := seedTeam(t, db, "Bulls")
		seedPlayer(t, db, homeID, "Al", "Ames", "PG", 85, 188, 180)
		seedPlayer(t, db, homeID, "Bo", "Burns", "C", 70, 211, 260)
		seedPlayer(t, db, awayID, "Cy", "Cole", "SF", 90, 201, 225)
		matchupID := seedMatchup(t, db, homeID, awayID)

		svc := newService(db, 42)
		resp, err := svc.Simulate(ctx, matchupID)
		require.NoError(t, err)

		assert.True(t, resp.Simulated)
		assert.Len(t, resp.PlayerStats, 3)

		homeSum, awaySum := 0, 0
		for _, line := range resp.PlayerStats {
			if line.TeamID == homeID {
				homeSum += line.Points
			} else {
				awaySum += line.Points
			}
		}
		assert.Equal(t, homeSum, resp.HomeTeamScore)
		assert.Equal(t, awaySum, resp.AwayTeamScore)
	})

	t.Run("winner and loser records update once", func(t *testing.T) {
		db := setupTestDB(t)
		homeID := seedTeam(t, db, "Hawks")
		awayID := seedTeam(t, db, "Bulls")
		homePlayer := seedPlayer(t, db, homeID, "Al", "Ames", "PG", 90, 190, 187)
		awayPlayer := seedPlayer(t, db, awayID, "Bo", "Burns", "C", 50, 210, 250)
		matchupID := seedMatchup(t, db, homeID, awayID)

		svc := newService(db, 42)
		resp, err := svc.Simulate(ctx, matchupID)
		require.NoError(t, err)

		home := getTeam(t, db, homeID)
		away := getTeam(t, db, awayID)
		switch {
		case resp.HomeTeamScore > resp.AwayTeamScore:
			assert.Equal(t, 1, home.Wins)
			assert.Equal(t, 0, home.Losses)
			assert.Equal(t, 0, away.Wins)
			assert.Equal(t, 1, away.Losses)
		case resp.AwayTeamScore > resp.HomeTeamScore:
			assert.Equal(t, 0, home.Wins)
			assert.Equal(t, 1, home.Losses)
			assert.Equal(t, 1, away.Wins)
			assert.Equal(t, 0, away.Losses)
		default:
			assert.Equal(t, 0, home.Wins+home.Losses)
			assert.Equal(t, 0, away.Wins+away.Losses)
		}

		assert.Equal(t, 1, getPlayer(t, db, homePlayer).GamesPlayed)
		assert.Equal(t, 1, getPlayer(t, db, awayPlayer).GamesPlayed)
	})

	t.Run("deterministic with fixed seed", func(t *testing.T) {
		// Two roster scenario: a PG (skill 90, 190cm, 187lbs) hosts a
		// C (skill 50, 210cm, 250lbs). Replaying the generator with the
		// same seed predicts every stat exactly.
		db := setupTestDB(t)
		homeID := seedTeam(t, db, "Hawks")
		awayID := seedTeam(t, db, "Bulls")
		homePlayer := seedPlayer(t, db, homeID, "Al", "Ames", "PG", 90, 190, 187)
		awayPlayer := seedPlayer(t, db, awayID, "Bo", "Burns", "C", 50, 210, 250)
		matchupID := seedMatchup(t, db, homeID, awayID)

		const seed = 1234
		replay := sim.New(rand.NewSource(seed))
		wantHome := replay.Line(sim.PlayerAttributes{Position: "PG", Skill: 90, HeightCm: 190, WeightLbs: 187})
		wantAway := replay.Line(sim.PlayerAttributes{Position: "C", Skill: 50, HeightCm: 210, WeightLbs: 250})

		svc := newService(db, seed)
		resp, err := svc.Simulate(ctx, matchupID)
		require.NoError(t, err)

		require.Len(t, resp.PlayerStats, 2)
		byPlayer := map[string]matchupModel.StatLineResponse{}
		for _, line := range resp.PlayerStats {
			byPlayer[line.PlayerID] = line
		}

		gotHome := byPlayer[homePlayer]
		assert.Equal(t, wantHome.Points, gotHome.Points)
		assert.Equal(t, wantHome.Assists, gotHome.Assists)
		assert.Equal(t, wantHome.Rebounds, gotHome.Rebounds)
		assert.Equal(t, wantHome.Steals, gotHome.Steals)
		assert.Equal(t, wantHome.Blocks, gotHome.Blocks)

		gotAway := byPlayer[awayPlayer]
		assert.Equal(t, wantAway.Points, gotAway.Points)
		assert.Equal(t, wantAway.Assists, gotAway.Assists)
		assert.Equal(t, wantAway.Rebounds, gotAway.Rebounds)
		assert.Equal(t, wantAway.Steals, gotAway.Steals)
		assert.Equal(t, wantAway.Blocks, gotAway.Blocks)

		assert.Equal(t, wantHome.Points, resp.HomeTeamScore)
		assert.Equal(t, wantAway.Points, resp.AwayTeamScore)
	})

	t.Run("second simulate is rejected without side effects", func(t *testing.T) {
		db := setupTestDB(t)
		homeID := seedTeam(t, db, "Hawks")
		awayID := seedTeam(t, db, "Bulls")
		homePlayer := seedPlayer(t, db, homeID, "Al", "Ames", "SG", 80, 196, 210)
		matchupID := seedMatchup(t, db, homeID, awayID)

		svc := newService(db, 7)
		_, err := svc.Simulate(ctx, matchupID)
		require.NoError(t, err)

		homeAfterFirst := getTeam(t, db, homeID)
		awayAfterFirst := getTeam(t, db, awayID)
		playerAfterFirst := getPlayer(t, db, homePlayer)

		_, err = svc.Simulate(ctx, matchupID)
		assert.ErrorIs(t, err, matchupModel.ErrAlreadySimulated)

		assert.Equal(t, homeAfterFirst.Wins, getTeam(t, db, homeID).Wins)
		assert.Equal(t, homeAfterFirst.Losses, getTeam(t, db, homeID).Losses)
		assert.Equal(t, awayAfterFirst.Wins, getTeam(t, db, awayID).Wins)
		assert.Equal(t, awayAfterFirst.Losses, getTeam(t, db, awayID).Losses)
		assert.Equal(t, 1, playerAfterFirst.GamesPlayed)
		assert.Equal(t, 1, getPlayer(t, db, homePlayer).GamesPlayed)

		var lineCount int64
		require.NoError(t, db.Model(&testStatLine{}).Where("matchup_id = ?", matchupID).Count(&lineCount).Error)
		assert.EqualValues(t, 1, lineCount)
	})

	t.Run("empty rosters tie leaves records untouched", func(t *testing.T) {
		db := setupTestDB(t)
		homeID := seedTeam(t, db, "Hawks")
		awayID := seedTeam(t, db, "Bulls")
		matchupID := seedMatchup(t, db, homeID, awayID)

		svc := newService(db, 42)
		resp, err := svc.Simulate(ctx, matchupID)
		require.NoError(t, err)

		assert.True(t, resp.Simulated)
		assert.Equal(t, 0, resp.HomeTeamScore)
		assert.Equal(t, 0, resp.AwayTeamScore)
		assert.Empty(t, resp.PlayerStats)

		home := getTeam(t, db, homeID)
		away := getTeam(t, db, awayID)
		assert.Equal(t, 0, home.Wins+home.Losses)
		assert.Equal(t, 0, away.Wins+away.Losses)
	})

	t.Run("matchup not found", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db, 42)

		_, err := svc.Simulate(ctx, "missing")
		assert.ErrorIs(t, err, matchupModel.ErrMatchupNotFound)
	})

	t.Run("missing team reference rejects without mutation", func(t *testing.T) {
		db := setupTestDB(t)
		homeID := seedTeam(t, db, "Hawks")
		matchupID := seedMatchup(t, db, homeID, "ghost-team")

		svc := newService(db, 42)
		_, err := svc.Simulate(ctx, matchupID)
		assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)

		var matchup testMatchup
		require.NoError(t, db.Where("matchup_id = ?", matchupID).First(&matchup).Error)
		assert.False(t, matchup.Simulated)
	})

	t.Run("player added after scheduling participates", func(t *testing.T) {
		db := setupTestDB(t)
		homeID := seedTeam(t, db, "Hawks")
		awayID := seedTeam(t, db, "Bulls")
		matchupID := seedMatchup(t, db, homeID, awayID)

		// Roster change between scheduling and simulation.
		lateID := seedPlayer(t, db, homeID, "Late", "Arrival", "PF", 75, 206, 245)

		svc := newService(db, 42)
		resp, err := svc.Simulate(ctx, matchupID)
		require.NoError(t, err)

		require.Len(t, resp.PlayerStats, 1)
		assert.Equal(t, lateID, resp.PlayerStats[0].PlayerID)
		assert.Equal(t, 1, getPlayer(t, db, lateID).GamesPlayed)
	})
}

func TestService_Simulate_Atomicity(t *testing.T) {
	ctx := context.Background()
	errInjected := errors.New("injected write failure")

	assertNoSideEffects := func(t *testing.T, db *gorm.DB, matchupID, homeID, awayID string, playerIDs []string) {
		t.Helper()

		var matchup testMatchup
		require.NoError(t, db.Where("matchup_id = ?", matchupID).First(&matchup).Error)
		assert.False(t, matchup.Simulated)
		assert.Equal(t, 0, matchup.HomeTeamScore)
		assert.Equal(t, 0, matchup.AwayTeamScore)

		home := getTeam(t, db, homeID)
		away := getTeam(t, db, awayID)
		assert.Equal(t, 0, home.Wins+home.Losses)
		assert.Equal(t, 0, away.Wins+away.Losses)

		for _, id := range playerIDs {
			player := getPlayer(t, db, id)
			assert.Equal(t, 0, player.GamesPlayed)
			assert.Equal(t, 0, player.Points)
		}

		var lineCount int64
		require.NoError(t, db.Model(&testStatLine{}).Count(&lineCount).Error)
		assert.EqualValues(t, 0, lineCount)
	}

	t.Run("stat line insert failure rolls back everything", func(t *testing.T) {
		db := setupTestDB(t)
		homeID := seedTeam(t, db, "Hawks")
		awayID := seedTeam(t, db, "Bulls")
		p1 := seedPlayer(t, db, homeID, "Al", "Ames", "PG", 90, 190, 187)
		p2 := seedPlayer(t, db, awayID, "Bo", "Burns", "C", 50, 210, 250)
		matchupID := seedMatchup(t, db, homeID, awayID)

		err := db.Callback().Create().Before("gorm:create").Register("inject_stat_line_failure", func(tx *gorm.DB) {
			if tx.Statement.Table == "stat_lines" {
				_ = tx.AddError(errInjected)
			}
		})
		require.NoError(t, err)

		svc := newService(db, 42)
		_, simErr := svc.Simulate(ctx, matchupID)
		require.Error(t, simErr)

		assertNoSideEffects(t, db, matchupID, homeID, awayID, []string{p1, p2})
	})

	t.Run("player aggregate failure rolls back team records", func(t *testing.T) {
		db := setupTestDB(t)
		homeID := seedTeam(t, db, "Hawks")
		awayID := seedTeam(t, db, "Bulls")
		p1 := seedPlayer(t, db, homeID, "Al", "Ames", "PG", 90, 190, 187)
		p2 := seedPlayer(t, db, awayID, "Bo", "Burns", "C", 50, 210, 250)
		matchupID := seedMatchup(t, db, homeID, awayID)

		err := db.Callback().Update().Before("gorm:update").Register("inject_player_failure", func(tx *gorm.DB) {
			if tx.Statement.Table == "players" {
				_ = tx.AddError(errInjected)
			}
		})
		require.NoError(t, err)

		svc := newService(db, 42)
		_, simErr := svc.Simulate(ctx, matchupID)
		require.Error(t, simErr)

		assertNoSideEffects(t, db, matchupID, homeID, awayID, []string{p1, p2})
	})
}

func TestService_CreateMatchup(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db := setupTestDB(t)
		homeID := seedTeam(t, db, "Hawks")
		awayID := seedTeam(t, db, "Bulls")

		svc := newService(db, 42)
		resp, err := svc.CreateMatchup(ctx, &matchupModel.CreateMatchupRequest{
			HomeTeamID: homeID,
			AwayTeamID: awayID,
			Date:       time.Now().Add(48 * time.Hour),
			Location:   "Test Arena",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.MatchupID)
		assert.False(t, resp.Simulated)
		assert.Equal(t, "Hawks", resp.HomeTeamName)
		assert.Equal(t, "Bulls", resp.AwayTeamName)
	})

	t.Run("same team on both sides", func(t *testing.T) {
		db := setupTestDB(t)
		teamID := seedTeam(t, db, "Hawks")

		svc := newService(db, 42)
		_, err := svc.CreateMatchup(ctx, &matchupModel.CreateMatchupRequest{
			HomeTeamID: teamID,
			AwayTeamID: teamID,
			Date:       time.Now().Add(48 * time.Hour),
			Location:   "Test Arena",
		})

		assert.ErrorIs(t, err, matchupModel.ErrSameTeam)
	})

	t.Run("date in the past", func(t *testing.T) {
		db := setupTestDB(t)
		homeID := seedTeam(t, db, "Hawks")
		awayID := seedTeam(t, db, "Bulls")

		svc := newService(db, 42)
		_, err := svc.CreateMatchup(ctx, &matchupModel.CreateMatchupRequest{
			HomeTeamID: homeID,
			AwayTeamID: awayID,
			Date:       time.Now().Add(-time.Hour),
			Location:   "Test Arena",
		})

		assert.ErrorIs(t, err, matchupModel.ErrDateInPast)
	})

	t.Run("unknown team", func(t *testing.T) {
		db := setupTestDB(t)
		homeID := seedTeam(t, db, "Hawks")

		svc := newService(db, 42)
		_, err := svc.CreateMatchup(ctx, &matchupModel.CreateMatchupRequest{
			HomeTeamID: homeID,
			AwayTeamID: "ghost-team",
			Date:       time.Now().Add(48 * time.Hour),
			Location:   "Test Arena",
		})

		assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
	})
}

func TestService_MatchupImmutability(t *testing.T) {
	ctx := context.Background()

	t.Run("simulated matchup rejects updates", func(t *testing.T) {
		db := setupTestDB(t)
		homeID := seedTeam(t, db, "Hawks")
		awayID := seedTeam(t, db, "Bulls")
		matchupID := seedMatchup(t, db, homeID, awayID)

		svc := newService(db, 42)
		_, err := svc.Simulate(ctx, matchupID)
		require.NoError(t, err)

		newLocation := "Elsewhere"
		_, err = svc.UpdateMatchup(ctx, matchupID, &matchupModel.UpdateMatchupRequest{
			Location: &newLocation,
		})
		assert.ErrorIs(t, err, matchupModel.ErrAlreadySimulated)
	})

	t.Run("simulated matchup rejects deletion", func(t *testing.T) {
		db := setupTestDB(t)
		homeID := seedTeam(t, db, "Hawks")
		awayID := seedTeam(t, db, "Bulls")
		matchupID := seedMatchup(t, db, homeID, awayID)

		svc := newService(db, 42)
		_, err := svc.Simulate(ctx, matchupID)
		require.NoError(t, err)

		err = svc.DeleteMatchup(ctx, matchupID)
		assert.ErrorIs(t, err, matchupModel.ErrAlreadySimulated)
	})

	t.Run("unsimulated matchup can be rescheduled and deleted", func(t *testing.T) {
		db := setupTestDB(t)
		homeID := seedTeam(t, db, "Hawks")
		awayID := seedTeam(t, db, "Bulls")
		matchupID := seedMatchup(t, db, homeID, awayID)

		svc := newService(db, 42)

		newDate := time.Now().Add(72 * time.Hour)
		resp, err := svc.UpdateMatchup(ctx, matchupID, &matchupModel.UpdateMatchupRequest{
			Date: &newDate,
		})
		require.NoError(t, err)
		assert.WithinDuration(t, newDate, resp.Date, time.Second)

		require.NoError(t, svc.DeleteMatchup(ctx, matchupID))

		_, err = svc.GetMatchup(ctx, matchupID)
		assert.ErrorIs(t, err, matchupModel.ErrMatchupNotFound)
	})
}
