// Package service provides business logic layer for player module.
package service

import (
	"context"

	"go.uber.org/zap"

	playerModel "github.com/samarthbadyal/hoopsim/internal/player/model"
	"github.com/samarthbadyal/hoopsim/internal/player/repository"
	teamModel "github.com/samarthbadyal/hoopsim/internal/team/model"
)

// defaultLeadersLimit caps leaderboard size.
const defaultLeadersLimit = 10

// Service defines the interface for player business logic operations.
type Service interface {
	// CreatePlayer creates a new player, optionally assigned to a team.
	CreatePlayer(ctx context.Context, req *playerModel.CreatePlayerRequest) (*playerModel.PlayerResponse, error)

	// GetPlayer returns a player with career and per-game stats.
	GetPlayer(ctx context.Context, playerID string) (*playerModel.PlayerResponse, error)

	// ListPlayers returns all players.
	ListPlayers(ctx context.Context) ([]playerModel.PlayerResponse, error)

	// UpdatePlayer updates player attributes and team assignment.
	UpdatePlayer(ctx context.Context, playerID string, req *playerModel.UpdatePlayerRequest) (*playerModel.PlayerResponse, error)

	// DeletePlayer deletes a player without simulated history.
	DeletePlayer(ctx context.Context, playerID string) error

	// GetLeaders returns the leaderboard for a stat category.
	GetLeaders(ctx context.Context, stat string) (*playerModel.LeadersResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new player service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// CreatePlayer creates a new player, optionally assigned to a team. The
// target roster must have room and the (first, last) name pair must be
// unique league-wide.
func (s *service) CreatePlayer(
	ctx context.Context,
	req *playerModel.CreatePlayerRequest,
) (*playerModel.PlayerResponse, error) {
	if req.FirstName == "" || req.LastName == "" {
		return nil, playerModel.ErrInvalidName
	}
	if !playerModel.IsValidPosition(req.Position) {
		return nil, playerModel.ErrInvalidPosition
	}
	if req.Skill == nil || *req.Skill < playerModel.MinSkill || *req.Skill > playerModel.MaxSkill {
		return nil, playerModel.ErrInvalidSkill
	}
	if req.HeightCm <= 0 || req.WeightLbs <= 0 {
		return nil, playerModel.ErrInvalidPhysicals
	}

	if req.TeamID != nil {
		if err := s.checkRosterRoom(ctx, *req.TeamID); err != nil {
			return nil, err
		}
	}

	player := &playerModel.Player{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		TeamID:    req.TeamID,
		Position:  req.Position,
		HeightCm:  req.HeightCm,
		WeightLbs: req.WeightLbs,
		Skill:     *req.Skill,
	}

	if err := s.repo.Create(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Infow("player created",
		"player_id", player.PlayerID,
		"name", player.FirstName+" "+player.LastName,
	)
	return toResponse(player), nil
}

// checkRosterRoom verifies the team exists and has roster room.
func (s *service) checkRosterRoom(ctx context.Context, teamID string) error {
	exists, err := s.repo.TeamExists(ctx, teamID)
	if err != nil {
		return err
	}
	if !exists {
		return teamModel.ErrTeamNotFound
	}

	count, err := s.repo.CountRoster(ctx, teamID)
	if err != nil {
		return err
	}
	if count >= teamModel.RosterLimit {
		return playerModel.ErrRosterFull
	}
	return nil
}

// GetPlayer returns a player with career and per-game stats.
func (s *service) GetPlayer(ctx context.Context, playerID string) (*playerModel.PlayerResponse, error) {
	player, err := s.repo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return toResponse(player), nil
}

// ListPlayers returns all players.
func (s *service) ListPlayers(ctx context.Context) ([]playerModel.PlayerResponse, error) {
	players, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]playerModel.PlayerResponse, 0, len(players))
	for i := range players {
		responses = append(responses, *toResponse(&players[i]))
	}
	return responses, nil
}

// UpdatePlayer updates player attributes and team assignment. Cumulative
// stats cannot be changed through this path.
func (s *service) UpdatePlayer(
	ctx context.Context,
	playerID string,
	req *playerModel.UpdatePlayerRequest,
) (*playerModel.PlayerResponse, error) {
	player, err := s.repo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		if *req.FirstName == "" {
			return nil, playerModel.ErrInvalidName
		}
		player.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		if *req.LastName == "" {
			return nil, playerModel.ErrInvalidName
		}
		player.LastName = *req.LastName
	}
	if req.Position != nil {
		if !playerModel.IsValidPosition(*req.Position) {
			return nil, playerModel.ErrInvalidPosition
		}
		player.Position = *req.Position
	}
	if req.Skill != nil {
		if *req.Skill < playerModel.MinSkill || *req.Skill > playerModel.MaxSkill {
			return nil, playerModel.ErrInvalidSkill
		}
		player.Skill = *req.Skill
	}
	if req.HeightCm != nil {
		if *req.HeightCm <= 0 {
			return nil, playerModel.ErrInvalidPhysicals
		}
		player.HeightCm = *req.HeightCm
	}
	if req.WeightLbs != nil {
		if *req.WeightLbs <= 0 {
			return nil, playerModel.ErrInvalidPhysicals
		}
		player.WeightLbs = *req.WeightLbs
	}
	if req.TeamID != nil {
		// Empty string unassigns the player.
		if *req.TeamID == "" {
			player.TeamID = nil
		} else if player.TeamID == nil || *player.TeamID != *req.TeamID {
			if err := s.checkRosterRoom(ctx, *req.TeamID); err != nil {
				return nil, err
			}
			player.TeamID = req.TeamID
		}
	}

	if err := s.repo.Update(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Infow("player updated", "player_id", playerID)
	return toResponse(player), nil
}

// DeletePlayer deletes a player. Players embedded in a simulated matchup's
// stat history cannot be removed; that history is immutable.
func (s *service) DeletePlayer(ctx context.Context, playerID string) error {
	if _, err := s.repo.GetByID(ctx, playerID); err != nil {
		return err
	}

	hasHistory, err := s.repo.HasStatLines(ctx, playerID)
	if err != nil {
		return err
	}
	if hasHistory {
		return playerModel.ErrPlayerHasHistory
	}

	if err := s.repo.Delete(ctx, playerID); err != nil {
		return err
	}

	s.logger.Infow("player deleted", "player_id", playerID)
	return nil
}

// GetLeaders returns the leaderboard for a stat category.
func (s *service) GetLeaders(ctx context.Context, stat string) (*playerModel.LeadersResponse, error) {
	leaders, err := s.repo.GetLeaders(ctx, stat, defaultLeadersLimit)
	if err != nil {
		return nil, err
	}

	return &playerModel.LeadersResponse{
		Stat:    stat,
		Leaders: leaders,
	}, nil
}

func toResponse(p *playerModel.Player) *playerModel.PlayerResponse {
	career := playerModel.CareerStats{
		Points:      p.Points,
		Assists:     p.Assists,
		Rebounds:    p.Rebounds,
		Steals:      p.Steals,
		Blocks:      p.Blocks,
		GamesPlayed: p.GamesPlayed,
	}
	return &playerModel.PlayerResponse{
		PlayerID:  p.PlayerID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		TeamID:    p.TeamID,
		Position:  p.Position,
		HeightCm:  p.HeightCm,
		WeightLbs: p.WeightLbs,
		Skill:     p.Skill,
		Career:    career,
		PerGame:   playerModel.NewPerGameStats(career),
	}
}
