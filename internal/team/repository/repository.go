// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	teamModel "github.com/samarthbadyal/hoopsim/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create creates a new team.
	Create(ctx context.Context, name, city, logoURL string) (*teamModel.Team, error)

	// GetByID finds a team by its id.
	GetByID(ctx context.Context, teamID string) (*teamModel.Team, error)

	// List returns all teams ordered by name.
	List(ctx context.Context) ([]teamModel.Team, error)

	// Update persists changed team attributes.
	Update(ctx context.Context, team *teamModel.Team) error

	// Delete removes a team and unassigns its roster players.
	Delete(ctx context.Context, teamID string) error

	// GetRoster returns the roster members of a team.
	GetRoster(ctx context.Context, teamID string) ([]teamModel.RosterPlayer, error)

	// CountMatchups returns how many matchups reference the team.
	CountMatchups(ctx context.Context, teamID string) (int64, error)

	// GetStandings returns all teams ordered by record.
	GetStandings(ctx context.Context) ([]teamModel.StandingsEntry, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create creates a new team.
func (r *repository) Create(ctx context.Context, name, city, logoURL string) (*teamModel.Team, error) {
	now := time.Now()
	team := &teamModel.Team{
		TeamID:    uuid.NewString(),
		Name:      name,
		City:      city,
		LogoURL:   logoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		if isDuplicateError(err) {
			return nil, teamModel.ErrTeamExists
		}
		return nil, err
	}

	return team, nil
}

// isDuplicateError checks if error is a unique constraint violation.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// GetByID finds a team by its id.
func (r *repository) GetByID(ctx context.Context, teamID string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		First(&team).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, err
	}

	return &team, nil
}

// List returns all teams ordered by name.
func (r *repository) List(ctx context.Context) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []teamModel.Team{}
	}
	return teams, nil
}

// Update persists changed team attributes.
func (r *repository) Update(ctx context.Context, team *teamModel.Team) error {
	err := r.db.WithContext(ctx).Save(team).Error
	if err != nil && isDuplicateError(err) {
		return teamModel.ErrTeamExists
	}
	return err
}

// Delete removes a team and unassigns its roster players.
func (r *repository) Delete(ctx context.Context, teamID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("players").
			Where("team_id = ?", teamID).
			Update("team_id", nil).Error; err != nil {
			return err
		}

		result := tx.Where("team_id = ?", teamID).Delete(&teamModel.Team{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return teamModel.ErrTeamNotFound
		}
		return nil
	})
}

// GetRoster returns the roster members of a team ordered by name.
func (r *repository) GetRoster(ctx context.Context, teamID string) ([]teamModel.RosterPlayer, error) {
	var roster []teamModel.RosterPlayer
	err := r.db.WithContext(ctx).
		Table("players").
		Select("player_id, first_name, last_name, position, skill").
		Where("team_id = ?", teamID).
		Order("last_name ASC, first_name ASC").
		Scan(&roster).Error
	if err != nil {
		return nil, err
	}
	if roster == nil {
		roster = []teamModel.RosterPlayer{}
	}
	return roster, nil
}

// CountMatchups returns how many matchups reference the team on either side.
func (r *repository) CountMatchups(ctx context.Context, teamID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("matchups").
		Where("home_team_id = ? OR away_team_id = ?", teamID, teamID).
		Count(&count).Error
	return count, err
}

// GetStandings returns all teams ordered by wins desc, losses asc, name asc.
func (r *repository) GetStandings(ctx context.Context) ([]teamModel.StandingsEntry, error) {
	var standings []teamModel.StandingsEntry
	err := r.db.WithContext(ctx).
		Table("teams").
		Select("team_id, name, city, wins, losses").
		Order("wins DESC, losses ASC, name ASC").
		Scan(&standings).Error
	if err != nil {
		return nil, err
	}
	if standings == nil {
		standings = []teamModel.StandingsEntry{}
	}
	return standings, nil
}
