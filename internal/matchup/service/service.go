// Package service provides business logic layer for matchup module,
// including the game simulation core.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	matchupModel "github.com/samarthbadyal/hoopsim/internal/matchup/model"
	"github.com/samarthbadyal/hoopsim/internal/matchup/repository"
	playerModel "github.com/samarthbadyal/hoopsim/internal/player/model"
	"github.com/samarthbadyal/hoopsim/internal/sim"
	teamModel "github.com/samarthbadyal/hoopsim/internal/team/model"
)

// Service defines the interface for matchup business logic operations.
type Service interface {
	// CreateMatchup schedules a new matchup between two different teams.
	CreateMatchup(ctx context.Context, req *matchupModel.CreateMatchupRequest) (*matchupModel.MatchupResponse, error)

	// GetMatchup returns a matchup with stat lines if simulated.
	GetMatchup(ctx context.Context, matchupID string) (*matchupModel.MatchupResponse, error)

	// ListMatchups returns all matchups.
	ListMatchups(ctx context.Context) ([]matchupModel.MatchupResponse, error)

	// UpdateMatchup reschedules an unsimulated matchup.
	UpdateMatchup(ctx context.Context, matchupID string, req *matchupModel.UpdateMatchupRequest) (*matchupModel.MatchupResponse, error)

	// DeleteMatchup removes an unsimulated matchup.
	DeleteMatchup(ctx context.Context, matchupID string) error

	// Simulate plays out a scheduled matchup: generates a stat line per
	// roster player, derives team scores, updates win/loss records and
	// career totals, and freezes the matchup — all in one transaction.
	Simulate(ctx context.Context, matchupID string) (*matchupModel.MatchupResponse, error)
}

type service struct {
	repo      repository.Repository
	db        *gorm.DB
	generator *sim.Generator
	logger    *zap.SugaredLogger
}

// New creates a new matchup service instance. A nil generator falls back to
// a time-seeded one; tests pass a fixed-seed generator for determinism.
func New(repo repository.Repository, db *gorm.DB, generator *sim.Generator, logger *zap.SugaredLogger) Service {
	if generator == nil {
		generator = sim.New(nil)
	}
	return &service{
		repo:      repo,
		db:        db,
		generator: generator,
		logger:    logger,
	}
}

// CreateMatchup schedules a new matchup between two different teams.
func (s *service) CreateMatchup(
	ctx context.Context,
	req *matchupModel.CreateMatchupRequest,
) (*matchupModel.MatchupResponse, error) {
	if req.HomeTeamID == req.AwayTeamID {
		return nil, matchupModel.ErrSameTeam
	}
	if req.Location == "" {
		return nil, matchupModel.ErrInvalidLocation
	}
	if req.Date.Before(time.Now()) {
		return nil, matchupModel.ErrDateInPast
	}

	home, err := s.repo.GetTeam(ctx, req.HomeTeamID)
	if err != nil {
		return nil, err
	}
	away, err := s.repo.GetTeam(ctx, req.AwayTeamID)
	if err != nil {
		return nil, err
	}

	matchup := &matchupModel.Matchup{
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		Date:       req.Date,
		Location:   req.Location,
	}
	if err := s.repo.Create(ctx, matchup); err != nil {
		return nil, err
	}

	s.logger.Infow("matchup scheduled",
		"matchup_id", matchup.MatchupID,
		"home", home.Name,
		"away", away.Name,
		"date", matchup.Date,
	)
	return s.toResponse(ctx, matchup, home, away)
}

// GetMatchup returns a matchup with stat lines if simulated.
func (s *service) GetMatchup(ctx context.Context, matchupID string) (*matchupModel.MatchupResponse, error) {
	matchup, err := s.repo.GetByID(ctx, matchupID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, matchup, nil, nil)
}

// ListMatchups returns all matchups.
func (s *service) ListMatchups(ctx context.Context) ([]matchupModel.MatchupResponse, error) {
	matchups, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]matchupModel.MatchupResponse, 0, len(matchups))
	for i := range matchups {
		resp, err := s.toResponse(ctx, &matchups[i], nil, nil)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// UpdateMatchup reschedules an unsimulated matchup. A simulated matchup is
// an immutable historical record and rejects every edit.
func (s *service) UpdateMatchup(
	ctx context.Context,
	matchupID string,
	req *matchupModel.UpdateMatchupRequest,
) (*matchupModel.MatchupResponse, error) {
	matchup, err := s.repo.GetByID(ctx, matchupID)
	if err != nil {
		return nil, err
	}
	if matchup.Simulated {
		return nil, matchupModel.ErrAlreadySimulated
	}

	if req.HomeTeamID != nil {
		matchup.HomeTeamID = *req.HomeTeamID
	}
	if req.AwayTeamID != nil {
		matchup.AwayTeamID = *req.AwayTeamID
	}
	if matchup.HomeTeamID == matchup.AwayTeamID {
		return nil, matchupModel.ErrSameTeam
	}
	if req.Date != nil {
		if req.Date.Before(time.Now()) {
			return nil, matchupModel.ErrDateInPast
		}
		matchup.Date = *req.Date
	}
	if req.Location != nil {
		if *req.Location == "" {
			return nil, matchupModel.ErrInvalidLocation
		}
		matchup.Location = *req.Location
	}

	if req.HomeTeamID != nil {
		if _, err := s.repo.GetTeam(ctx, matchup.HomeTeamID); err != nil {
			return nil, err
		}
	}
	if req.AwayTeamID != nil {
		if _, err := s.repo.GetTeam(ctx, matchup.AwayTeamID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, matchup); err != nil {
		return nil, err
	}

	s.logger.Infow("matchup updated", "matchup_id", matchupID)
	return s.toResponse(ctx, matchup, nil, nil)
}

// DeleteMatchup removes an unsimulated matchup.
func (s *service) DeleteMatchup(ctx context.Context, matchupID string) error {
	matchup, err := s.repo.GetByID(ctx, matchupID)
	if err != nil {
		return err
	}
	if matchup.Simulated {
		return matchupModel.ErrAlreadySimulated
	}

	if err := s.repo.Delete(ctx, matchupID); err != nil {
		return err
	}

	s.logger.Infow("matchup deleted", "matchup_id", matchupID)
	return nil
}

// Simulate plays out a scheduled matchup. All writes — stat lines, team
// records, player career totals, and the matchup's own score/flag — commit
// in one transaction or not at all. Concurrent simulations of the same
// matchup resolve to one success and one ErrAlreadySimulated via the row
// lock in GetForSimulation and the check-and-set in MarkSimulated.
func (s *service) Simulate(ctx context.Context, matchupID string) (*matchupModel.MatchupResponse, error) {
	var simulated *matchupModel.Matchup

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		matchup, err := txRepo.GetForSimulation(ctx, matchupID)
		if err != nil {
			return err
		}
		if matchup.Simulated {
			return matchupModel.ErrAlreadySimulated
		}

		// Both team references must still resolve.
		if _, err := txRepo.GetTeam(ctx, matchup.HomeTeamID); err != nil {
			return err
		}
		if _, err := txRepo.GetTeam(ctx, matchup.AwayTeamID); err != nil {
			return err
		}

		// Rosters are read now, not at scheduling time. An empty roster
		// contributes no players and zero points; that is not an error.
		homeRoster, err := txRepo.GetRoster(ctx, matchup.HomeTeamID)
		if err != nil {
			return err
		}
		awayRoster, err := txRepo.GetRoster(ctx, matchup.AwayTeamID)
		if err != nil {
			return err
		}

		homeLines, homeScore := s.generateLines(matchupID, matchup.HomeTeamID, homeRoster)
		awayLines, awayScore := s.generateLines(matchupID, matchup.AwayTeamID, awayRoster)
		lines := append(homeLines, awayLines...)

		// Standings update. A tie changes neither record.
		switch {
		case homeScore > awayScore:
			if err := s.applyRecords(ctx, txRepo, matchup.HomeTeamID, matchup.AwayTeamID); err != nil {
				return err
			}
		case awayScore > homeScore:
			if err := s.applyRecords(ctx, txRepo, matchup.AwayTeamID, matchup.HomeTeamID); err != nil {
				return err
			}
		}

		// Career totals: each participating player gains the line's values
		// and exactly one game played.
		for i := range lines {
			if err := txRepo.ApplyStatLine(ctx, &lines[i]); err != nil {
				return err
			}
		}

		if err := txRepo.CreateStatLines(ctx, lines); err != nil {
			return err
		}

		// The matchup record goes last: if anything above failed, the flag
		// never flips and the transaction rolls everything back.
		if err := txRepo.MarkSimulated(ctx, matchupID, homeScore, awayScore); err != nil {
			return err
		}

		matchup.Simulated = true
		matchup.HomeTeamScore = homeScore
		matchup.AwayTeamScore = awayScore
		simulated = matchup
		return nil
	})

	if err != nil {
		if isConflictError(err) {
			s.logger.Warnw("simulation transaction conflict", "matchup_id", matchupID, "error", err)
			return nil, matchupModel.ErrSimulationConflict
		}
		return nil, err
	}

	s.logger.Infow("matchup simulated",
		"matchup_id", matchupID,
		"home_score", simulated.HomeTeamScore,
		"away_score", simulated.AwayTeamScore,
	)
	return s.toResponse(ctx, simulated, nil, nil)
}

// generateLines produces one stat line per roster player, tagged with the
// matchup and team, and returns the team score as the sum of points.
func (s *service) generateLines(
	matchupID, teamID string,
	roster []playerModel.Player,
) ([]matchupModel.StatLine, int) {
	lines := make([]matchupModel.StatLine, 0, len(roster))
	score := 0

	for i := range roster {
		p := &roster[i]
		line := s.generator.Line(sim.PlayerAttributes{
			Position:  p.Position,
			Skill:     p.Skill,
			HeightCm:  p.HeightCm,
			WeightLbs: p.WeightLbs,
		})
		lines = append(lines, matchupModel.StatLine{
			MatchupID: matchupID,
			PlayerID:  p.PlayerID,
			TeamID:    teamID,
			Points:    line.Points,
			Assists:   line.Assists,
			Rebounds:  line.Rebounds,
			Steals:    line.Steals,
			Blocks:    line.Blocks,
		})
		score += line.Points
	}

	return lines, score
}

// applyRecords gives the winner a win and the loser a loss.
func (s *service) applyRecords(
	ctx context.Context,
	repo repository.Repository,
	winnerID, loserID string,
) error {
	if err := repo.IncrementTeamRecord(ctx, winnerID, 1, 0); err != nil {
		return err
	}
	return repo.IncrementTeamRecord(ctx, loserID, 0, 1)
}

// conflictPatterns are backend messages for a transaction that lost to a
// concurrent writer; the operation rolled back and the caller may retry.
var conflictPatterns = []string{
	"could not serialize access",
	"deadlock detected",
	"database is locked",
	"database table is locked",
}

// isConflictError reports whether err is a commit conflict rather than a
// domain rejection.
func isConflictError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, matchupModel.ErrAlreadySimulated) ||
		errors.Is(err, matchupModel.ErrMatchupNotFound) ||
		errors.Is(err, teamModel.ErrTeamNotFound) {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range conflictPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// toResponse assembles a matchup response; the team rows are loaded when not
// already available.
func (s *service) toResponse(
	ctx context.Context,
	matchup *matchupModel.Matchup,
	home, away *teamModel.Team,
) (*matchupModel.MatchupResponse, error) {
	if home == nil {
		if t, err := s.repo.GetTeam(ctx, matchup.HomeTeamID); err == nil {
			home = t
		}
	}
	if away == nil {
		if t, err := s.repo.GetTeam(ctx, matchup.AwayTeamID); err == nil {
			away = t
		}
	}

	resp := &matchupModel.MatchupResponse{
		MatchupID:     matchup.MatchupID,
		HomeTeamID:    matchup.HomeTeamID,
		AwayTeamID:    matchup.AwayTeamID,
		Date:          matchup.Date,
		Location:      matchup.Location,
		Simulated:     matchup.Simulated,
		HomeTeamScore: matchup.HomeTeamScore,
		AwayTeamScore: matchup.AwayTeamScore,
		PlayerStats:   []matchupModel.StatLineResponse{},
	}
	if home != nil {
		resp.HomeTeamName = home.Name
	}
	if away != nil {
		resp.AwayTeamName = away.Name
	}

	if matchup.Simulated {
		lines, err := s.repo.GetStatLines(ctx, matchup.MatchupID)
		if err != nil {
			return nil, err
		}
		resp.PlayerStats = lines
	}

	return resp, nil
}
