// Package service provides business logic layer for team module.
package service

import (
	"context"

	"go.uber.org/zap"

	teamModel "github.com/samarthbadyal/hoopsim/internal/team/model"
	"github.com/samarthbadyal/hoopsim/internal/team/repository"
)

// Service defines the interface for team business logic operations.
type Service interface {
	// CreateTeam creates a new team with a unique name.
	CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.TeamResponse, error)

	// GetTeam returns a team with its roster.
	GetTeam(ctx context.Context, teamID string) (*teamModel.TeamResponse, error)

	// ListTeams returns all teams with their rosters.
	ListTeams(ctx context.Context) ([]teamModel.TeamResponse, error)

	// UpdateTeam updates team attributes (not win/loss counters).
	UpdateTeam(ctx context.Context, teamID string, req *teamModel.UpdateTeamRequest) (*teamModel.TeamResponse, error)

	// DeleteTeam deletes a team that is not referenced by any matchup.
	DeleteTeam(ctx context.Context, teamID string) error

	// GetStandings returns the league standings.
	GetStandings(ctx context.Context) (*teamModel.StandingsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new team service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// CreateTeam creates a new team with a unique name.
func (s *service) CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.TeamResponse, error) {
	if req.Name == "" {
		return nil, teamModel.ErrInvalidTeamName
	}
	if req.City == "" {
		return nil, teamModel.ErrInvalidCity
	}

	team, err := s.repo.Create(ctx, req.Name, req.City, req.LogoURL)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("team created", "team_id", team.TeamID, "name", team.Name)
	return &teamModel.TeamResponse{
		TeamID:  team.TeamID,
		Name:    team.Name,
		City:    team.City,
		LogoURL: team.LogoURL,
		Roster:  []teamModel.RosterPlayer{},
	}, nil
}

// GetTeam returns a team with its roster.
func (s *service) GetTeam(ctx context.Context, teamID string) (*teamModel.TeamResponse, error) {
	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	roster, err := s.repo.GetRoster(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return toResponse(team, roster), nil
}

// ListTeams returns all teams with their rosters.
func (s *service) ListTeams(ctx context.Context) ([]teamModel.TeamResponse, error) {
	teams, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]teamModel.TeamResponse, 0, len(teams))
	for i := range teams {
		roster, err := s.repo.GetRoster(ctx, teams[i].TeamID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *toResponse(&teams[i], roster))
	}

	return responses, nil
}

// UpdateTeam updates team attributes. Win/loss counters are owned by the
// simulation path and cannot be changed here.
func (s *service) UpdateTeam(
	ctx context.Context,
	teamID string,
	req *teamModel.UpdateTeamRequest,
) (*teamModel.TeamResponse, error) {
	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		team.Name = req.Name
	}
	if req.City != "" {
		team.City = req.City
	}
	if req.LogoURL != "" {
		team.LogoURL = req.LogoURL
	}

	if err := s.repo.Update(ctx, team); err != nil {
		return nil, err
	}

	roster, err := s.repo.GetRoster(ctx, teamID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("team updated", "team_id", teamID)
	return toResponse(team, roster), nil
}

// DeleteTeam deletes a team. Teams referenced by matchups (scheduled or
// already simulated) cannot be removed, because simulated matchups are an
// immutable historical record.
func (s *service) DeleteTeam(ctx context.Context, teamID string) error {
	if _, err := s.repo.GetByID(ctx, teamID); err != nil {
		return err
	}

	count, err := s.repo.CountMatchups(ctx, teamID)
	if err != nil {
		return err
	}
	if count > 0 {
		return teamModel.ErrTeamHasMatchups
	}

	if err := s.repo.Delete(ctx, teamID); err != nil {
		return err
	}

	s.logger.Infow("team deleted", "team_id", teamID)
	return nil
}

// GetStandings returns the league standings.
func (s *service) GetStandings(ctx context.Context) (*teamModel.StandingsResponse, error) {
	standings, err := s.repo.GetStandings(ctx)
	if err != nil {
		return nil, err
	}

	return &teamModel.StandingsResponse{
		Standings: standings,
		Total:     len(standings),
	}, nil
}

func toResponse(team *teamModel.Team, roster []teamModel.RosterPlayer) *teamModel.TeamResponse {
	if roster == nil {
		roster = []teamModel.RosterPlayer{}
	}
	return &teamModel.TeamResponse{
		TeamID:  team.TeamID,
		Name:    team.Name,
		City:    team.City,
		LogoURL: team.LogoURL,
		Wins:    team.Wins,
		Losses:  team.Losses,
		Roster:  roster,
	}
}
