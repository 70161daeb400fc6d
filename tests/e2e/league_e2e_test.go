//go:build e2e
// +build e2e

package e2e

import (
	"net/http"
	"sync"
	"time"

	matchupModel "github.com/samarthbadyal/hoopsim/internal/matchup/model"
	playerModel "github.com/samarthbadyal/hoopsim/internal/player/model"
	teamModel "github.com/samarthbadyal/hoopsim/internal/team/model"
)

func (s *E2ETestSuite) createTeam(name, city string) string {
	var resp teamModel.TeamResponse
	code := s.doRequest("POST", "/api/teams", map[string]string{"name": name, "city": city}, &resp)
	s.Require().Equal(http.StatusCreated, code)
	return resp.TeamID
}

func (s *E2ETestSuite) createPlayer(teamID, first, last, pos string, skill, heightCm, weightLbs int) string {
	var resp playerModel.PlayerResponse
	code := s.doRequest("POST", "/api/players", map[string]interface{}{
		"first_name": first,
		"last_name":  last,
		"team_id":    teamID,
		"position":   pos,
		"height_cm":  heightCm,
		"weight_lbs": weightLbs,
		"skill":      skill,
	}, &resp)
	s.Require().Equal(http.StatusCreated, code)
	return resp.PlayerID
}

func (s *E2ETestSuite) scheduleMatchup(homeID, awayID string) string {
	var resp matchupModel.MatchupResponse
	code := s.doRequest("POST", "/api/matchups", map[string]interface{}{
		"home_team_id": homeID,
		"away_team_id": awayID,
		"date":         time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"location":     "League Arena",
	}, &resp)
	s.Require().Equal(http.StatusCreated, code)
	return resp.MatchupID
}

func (s *E2ETestSuite) TestFullMatchdayFlow() {
	homeID := s.createTeam("Hawks", "Atlanta")
	awayID := s.createTeam("Bulls", "Chicago")
	s.createPlayer(homeID, "Al", "Ames", "PG", 90, 190, 187)
	s.createPlayer(homeID, "Bo", "Burns", "SF", 75, 201, 225)
	s.createPlayer(awayID, "Cy", "Cole", "C", 50, 210, 250)

	matchupID := s.scheduleMatchup(homeID, awayID)

	var simulated matchupModel.MatchupResponse
	code := s.doRequest("POST", "/api/matchups/"+matchupID+"/simulate", nil, &simulated)
	s.Require().Equal(http.StatusOK, code)
	s.Require().True(simulated.Simulated)
	s.Require().Len(simulated.PlayerStats, 3)

	homeSum, awaySum := 0, 0
	for _, line := range simulated.PlayerStats {
		if line.TeamID == homeID {
			homeSum += line.Points
		} else {
			awaySum += line.Points
		}
	}
	s.Equal(homeSum, simulated.HomeTeamScore)
	s.Equal(awaySum, simulated.AwayTeamScore)

	var standings teamModel.StandingsResponse
	code = s.doRequest("GET", "/api/teams/standings", nil, &standings)
	s.Require().Equal(http.StatusOK, code)
	s.Require().Equal(2, standings.Total)

	totalWins, totalLosses := 0, 0
	for _, entry := range standings.Standings {
		totalWins += entry.Wins
		totalLosses += entry.Losses
	}
	if simulated.HomeTeamScore != simulated.AwayTeamScore {
		s.Equal(1, totalWins)
		s.Equal(1, totalLosses)
	} else {
		s.Zero(totalWins)
		s.Zero(totalLosses)
	}

	var leaders playerModel.LeadersResponse
	code = s.doRequest("GET", "/api/players/leaders?stat=rebounds", nil, &leaders)
	s.Require().Equal(http.StatusOK, code)
	s.Len(leaders.Leaders, 3)
}

func (s *E2ETestSuite) TestSimulateIsOneShot() {
	homeID := s.createTeam("Hawks", "Atlanta")
	awayID := s.createTeam("Bulls", "Chicago")
	s.createPlayer(homeID, "Al", "Ames", "PG", 90, 190, 187)
	s.createPlayer(awayID, "Bo", "Burns", "C", 50, 210, 250)

	matchupID := s.scheduleMatchup(homeID, awayID)

	code := s.doRequest("POST", "/api/matchups/"+matchupID+"/simulate", nil, nil)
	s.Require().Equal(http.StatusOK, code)

	code = s.doRequest("POST", "/api/matchups/"+matchupID+"/simulate", nil, nil)
	s.Equal(http.StatusConflict, code)

	var gamesPlayed int
	err := s.db.Raw("SELECT games_played FROM players WHERE first_name = 'Al'").Scan(&gamesPlayed).Error
	s.Require().NoError(err)
	s.Equal(1, gamesPlayed)
}

func (s *E2ETestSuite) TestConcurrentSimulationSerializes() {
	// The FOR UPDATE row lock plus the guarded flag update must let exactly
	// one of many concurrent simulations commit.
	homeID := s.createTeam("Hawks", "Atlanta")
	awayID := s.createTeam("Bulls", "Chicago")
	s.createPlayer(homeID, "Al", "Ames", "PG", 90, 190, 187)
	s.createPlayer(awayID, "Bo", "Burns", "C", 50, 210, 250)

	matchupID := s.scheduleMatchup(homeID, awayID)

	const workers = 5
	var wg sync.WaitGroup
	codes := make([]int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = s.doRequest("POST", "/api/matchups/"+matchupID+"/simulate", nil, nil)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, code := range codes {
		switch code {
		case http.StatusOK:
			successes++
		case http.StatusConflict:
		default:
			s.T().Fatalf("unexpected status %d", code)
		}
	}
	s.Equal(1, successes)

	var lineCount int64
	err := s.db.Raw("SELECT COUNT(*) FROM stat_lines WHERE matchup_id = ?", matchupID).Scan(&lineCount).Error
	s.Require().NoError(err)
	s.EqualValues(2, lineCount)

	var totalWins int
	err = s.db.Raw("SELECT COALESCE(SUM(wins), 0) FROM teams").Scan(&totalWins).Error
	s.Require().NoError(err)
	s.LessOrEqual(totalWins, 1)
}

func (s *E2ETestSuite) TestDatabaseConstraintsHold() {
	// The schema rejects out-of-range values even if a client bypasses the
	// API validation layer.
	homeID := s.createTeam("Hawks", "Atlanta")

	err := s.db.Exec(`INSERT INTO players (player_id, first_name, last_name, position, height_cm, weight_lbs, skill)
		VALUES ('px', 'Bad', 'Skill', 'PG', 190, 187, 150)`).Error
	s.Error(err, "skill above 99 must violate the CHECK constraint")

	err = s.db.Exec(`INSERT INTO matchups (matchup_id, home_team_id, away_team_id, date, location)
		VALUES ('mx', ?, ?, now(), 'Arena')`, homeID, homeID).Error
	s.Error(err, "self-matchup must violate the CHECK constraint")
}

func (s *E2ETestSuite) TestTeamDeletionRules() {
	homeID := s.createTeam("Hawks", "Atlanta")
	awayID := s.createTeam("Bulls", "Chicago")
	s.scheduleMatchup(homeID, awayID)

	code := s.doRequest("DELETE", "/api/teams/"+homeID, nil, nil)
	s.Equal(http.StatusConflict, code)

	spareID := s.createTeam("Nets", "Brooklyn")
	playerID := s.createPlayer(spareID, "Al", "Ames", "PG", 90, 190, 187)

	code = s.doRequest("DELETE", "/api/teams/"+spareID, nil, nil)
	s.Equal(http.StatusOK, code)

	// The orphaned player survives without a team.
	var resp playerModel.PlayerResponse
	code = s.doRequest("GET", "/api/players/"+playerID, nil, &resp)
	s.Require().Equal(http.StatusOK, code)
	s.Nil(resp.TeamID)
}
