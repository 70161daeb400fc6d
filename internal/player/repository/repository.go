// Package repository provides data access layer for player module.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	playerModel "github.com/samarthbadyal/hoopsim/internal/player/model"
)

// leaderColumns whitelists leaderboard stat categories to column names.
var leaderColumns = map[string]string{
	"points":   "points",
	"assists":  "assists",
	"rebounds": "rebounds",
	"steals":   "steals",
	"blocks":   "blocks",
}

// Repository defines the interface for player data access operations.
type Repository interface {
	// Create creates a new player.
	Create(ctx context.Context, player *playerModel.Player) error

	// GetByID finds a player by its id.
	GetByID(ctx context.Context, playerID string) (*playerModel.Player, error)

	// List returns all players ordered by name.
	List(ctx context.Context) ([]playerModel.Player, error)

	// Update persists changed player attributes.
	Update(ctx context.Context, player *playerModel.Player) error

	// Delete removes a player.
	Delete(ctx context.Context, playerID string) error

	// CountRoster returns the current roster size of a team.
	CountRoster(ctx context.Context, teamID string) (int64, error)

	// TeamExists reports whether a team row exists.
	TeamExists(ctx context.Context, teamID string) (bool, error)

	// HasStatLines reports whether the player appears in any simulated
	// matchup's stat lines.
	HasStatLines(ctx context.Context, playerID string) (bool, error)

	// GetLeaders returns the top players for a stat category, ordered by
	// per-game average. Players without games played are excluded.
	GetLeaders(ctx context.Context, stat string, limit int) ([]playerModel.LeaderEntry, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new player repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create creates a new player.
func (r *repository) Create(ctx context.Context, player *playerModel.Player) error {
	now := time.Now()
	if player.PlayerID == "" {
		player.PlayerID = uuid.NewString()
	}
	player.CreatedAt = now
	player.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(player).Error; err != nil {
		if isDuplicateError(err) {
			return playerModel.ErrPlayerExists
		}
		return err
	}
	return nil
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

// GetByID finds a player by its id.
func (r *repository) GetByID(ctx context.Context, playerID string) (*playerModel.Player, error) {
	var player playerModel.Player
	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		First(&player).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, playerModel.ErrPlayerNotFound
		}
		return nil, err
	}

	return &player, nil
}

// List returns all players ordered by name.
func (r *repository) List(ctx context.Context) ([]playerModel.Player, error) {
	var players []playerModel.Player
	err := r.db.WithContext(ctx).
		Order("last_name ASC, first_name ASC").
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	if players == nil {
		players = []playerModel.Player{}
	}
	return players, nil
}

// Update persists changed player attributes.
func (r *repository) Update(ctx context.Context, player *playerModel.Player) error {
	err := r.db.WithContext(ctx).Save(player).Error
	if err != nil && isDuplicateError(err) {
		return playerModel.ErrPlayerExists
	}
	return err
}

// Delete removes a player.
func (r *repository) Delete(ctx context.Context, playerID string) error {
	result := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Delete(&playerModel.Player{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return playerModel.ErrPlayerNotFound
	}
	return nil
}

// CountRoster returns the current roster size of a team.
func (r *repository) CountRoster(ctx context.Context, teamID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&playerModel.Player{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	return count, err
}

// TeamExists reports whether a team row exists.
func (r *repository) TeamExists(ctx context.Context, teamID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("teams").
		Where("team_id = ?", teamID).
		Count(&count).Error
	return count > 0, err
}

// HasStatLines reports whether the player appears in any stat line.
func (r *repository) HasStatLines(ctx context.Context, playerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("stat_lines").
		Where("player_id = ?", playerID).
		Count(&count).Error
	return count > 0, err
}

// GetLeaders returns the top players for a stat category ordered by
// per-game average desc, then total desc, then name.
func (r *repository) GetLeaders(ctx context.Context, stat string, limit int) ([]playerModel.LeaderEntry, error) {
	column, ok := leaderColumns[stat]
	if !ok {
		return nil, playerModel.ErrInvalidLeaderStat
	}

	var leaders []playerModel.LeaderEntry
	err := r.db.WithContext(ctx).
		Table("players").
		Select(fmt.Sprintf(`
			player_id,
			first_name,
			last_name,
			team_id,
			%s as total,
			games_played,
			CAST(%s AS REAL) / games_played as per_game
		`, column, column)).
		Where("games_played > 0").
		Order("per_game DESC, total DESC, last_name ASC, first_name ASC").
		Limit(limit).
		Scan(&leaders).Error

	if err != nil {
		return nil, err
	}
	if leaders == nil {
		leaders = []playerModel.LeaderEntry{}
	}
	return leaders, nil
}
