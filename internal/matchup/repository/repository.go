// Package repository provides data access layer for matchup module.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	matchupModel "github.com/samarthbadyal/hoopsim/internal/matchup/model"
	playerModel "github.com/samarthbadyal/hoopsim/internal/player/model"
	teamModel "github.com/samarthbadyal/hoopsim/internal/team/model"
)

// Repository defines the interface for matchup data access operations.
// The simulation path calls it with a transaction-scoped instance so that
// every write belongs to the same unit of work.
type Repository interface {
	// Create schedules a new matchup.
	Create(ctx context.Context, matchup *matchupModel.Matchup) error

	// GetByID finds a matchup by its id.
	GetByID(ctx context.Context, matchupID string) (*matchupModel.Matchup, error)

	// GetForSimulation loads a matchup for the simulation transaction,
	// locking the row on backends that support it.
	GetForSimulation(ctx context.Context, matchupID string) (*matchupModel.Matchup, error)

	// List returns all matchups ordered by date.
	List(ctx context.Context) ([]matchupModel.Matchup, error)

	// Update persists changed matchup attributes.
	Update(ctx context.Context, matchup *matchupModel.Matchup) error

	// Delete removes a matchup.
	Delete(ctx context.Context, matchupID string) error

	// GetTeam loads a team row.
	GetTeam(ctx context.Context, teamID string) (*teamModel.Team, error)

	// GetRoster returns the players currently assigned to a team.
	GetRoster(ctx context.Context, teamID string) ([]playerModel.Player, error)

	// IncrementTeamRecord adds to a team's win/loss counters.
	IncrementTeamRecord(ctx context.Context, teamID string, wins, losses int) error

	// ApplyStatLine folds one stat line into the player's cumulative totals
	// and increments games played by one.
	ApplyStatLine(ctx context.Context, line *matchupModel.StatLine) error

	// CreateStatLines inserts the per-player lines of a simulation.
	CreateStatLines(ctx context.Context, lines []matchupModel.StatLine) error

	// GetStatLines returns a matchup's stat lines with player names resolved.
	GetStatLines(ctx context.Context, matchupID string) ([]matchupModel.StatLineResponse, error)

	// MarkSimulated flips the simulated flag and writes the final scores,
	// guarded so the transition happens at most once.
	MarkSimulated(ctx context.Context, matchupID string, homeScore, awayScore int) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new matchup repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create schedules a new matchup.
func (r *repository) Create(ctx context.Context, matchup *matchupModel.Matchup) error {
	now := time.Now()
	if matchup.MatchupID == "" {
		matchup.MatchupID = uuid.NewString()
	}
	matchup.CreatedAt = now
	matchup.UpdatedAt = now

	return r.db.WithContext(ctx).Create(matchup).Error
}

// GetByID finds a matchup by its id.
func (r *repository) GetByID(ctx context.Context, matchupID string) (*matchupModel.Matchup, error) {
	var matchup matchupModel.Matchup
	err := r.db.WithContext(ctx).
		Where("matchup_id = ?", matchupID).
		First(&matchup).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, matchupModel.ErrMatchupNotFound
		}
		return nil, err
	}

	return &matchup, nil
}

// GetForSimulation loads a matchup inside the simulation transaction. On
// PostgreSQL the row is locked FOR UPDATE so concurrent simulations of the
// same matchup serialize; sqlite serializes writers on its own and rejects
// the locking clause, so it is only added for postgres. The guarded update
// in MarkSimulated keeps the one-shot invariant on every backend.
func (r *repository) GetForSimulation(ctx context.Context, matchupID string) (*matchupModel.Matchup, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var matchup matchupModel.Matchup
	err := query.
		Where("matchup_id = ?", matchupID).
		First(&matchup).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, matchupModel.ErrMatchupNotFound
		}
		return nil, err
	}

	return &matchup, nil
}

// List returns all matchups ordered by date.
func (r *repository) List(ctx context.Context) ([]matchupModel.Matchup, error) {
	var matchups []matchupModel.Matchup
	err := r.db.WithContext(ctx).
		Order("date ASC").
		Find(&matchups).Error
	if err != nil {
		return nil, err
	}
	if matchups == nil {
		matchups = []matchupModel.Matchup{}
	}
	return matchups, nil
}

// Update persists changed matchup attributes.
func (r *repository) Update(ctx context.Context, matchup *matchupModel.Matchup) error {
	return r.db.WithContext(ctx).Save(matchup).Error
}

// Delete removes a matchup.
func (r *repository) Delete(ctx context.Context, matchupID string) error {
	result := r.db.WithContext(ctx).
		Where("matchup_id = ?", matchupID).
		Delete(&matchupModel.Matchup{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return matchupModel.ErrMatchupNotFound
	}
	return nil
}

// GetTeam loads a team row.
func (r *repository) GetTeam(ctx context.Context, teamID string) (*teamModel.Team, error) {
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

// GetRoster returns the players currently assigned to a team. Rosters are
// read at simulation time, so late roster additions participate normally.
func (r *repository) GetRoster(ctx context.Context, teamID string) ([]playerModel.Player, error) {
	var players []playerModel.Player
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
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

// IncrementTeamRecord adds to a team's win/loss counters in place, so
// concurrent simulations of different matchups never lose updates.
func (r *repository) IncrementTeamRecord(ctx context.Context, teamID string, wins, losses int) error {
	result := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("team_id = ?", teamID).
		Updates(map[string]interface{}{
			"wins":       gorm.Expr("wins + ?", wins),
			"losses":     gorm.Expr("losses + ?", losses),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrTeamNotFound
	}
	return nil
}

// ApplyStatLine folds one stat line into the player's cumulative totals and
// increments games played by exactly one.
func (r *repository) ApplyStatLine(ctx context.Context, line *matchupModel.StatLine) error {
	result := r.db.WithContext(ctx).
		Model(&playerModel.Player{}).
		Where("player_id = ?", line.PlayerID).
		Updates(map[string]interface{}{
			"points":       gorm.Expr("points + ?", line.Points),
			"assists":      gorm.Expr("assists + ?", line.Assists),
			"rebounds":     gorm.Expr("rebounds + ?", line.Rebounds),
			"steals":       gorm.Expr("steals + ?", line.Steals),
			"blocks":       gorm.Expr("blocks + ?", line.Blocks),
			"games_played": gorm.Expr("games_played + 1"),
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return playerModel.ErrPlayerNotFound
	}
	return nil
}

// CreateStatLines inserts the per-player lines of a simulation.
func (r *repository) CreateStatLines(ctx context.Context, lines []matchupModel.StatLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

// GetStatLines returns a matchup's stat lines with player names resolved.
func (r *repository) GetStatLines(ctx context.Context, matchupID string) ([]matchupModel.StatLineResponse, error) {
	var lines []matchupModel.StatLineResponse
	err := r.db.WithContext(ctx).
		Table("stat_lines").
		Select(`
			stat_lines.player_id,
			players.first_name,
			players.last_name,
			stat_lines.team_id,
			stat_lines.points,
			stat_lines.assists,
			stat_lines.rebounds,
			stat_lines.steals,
			stat_lines.blocks
		`).
		Joins("LEFT JOIN players ON players.player_id = stat_lines.player_id").
		Where("stat_lines.matchup_id = ?", matchupID).
		Order("stat_lines.id ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []matchupModel.StatLineResponse{}
	}
	return lines, nil
}

// MarkSimulated flips the simulated flag and writes the final scores. The
// WHERE simulated = false guard makes the transition a check-and-set: if a
// concurrent transaction already flipped the flag, zero rows are affected
// and the caller aborts with ErrAlreadySimulated.
func (r *repository) MarkSimulated(ctx context.Context, matchupID string, homeScore, awayScore int) error {
	result := r.db.WithContext(ctx).
		Model(&matchupModel.Matchup{}).
		Where("matchup_id = ? AND simulated = ?", matchupID, false).
		Updates(map[string]interface{}{
			"simulated":       true,
			"home_team_score": homeScore,
			"away_team_score": awayScore,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return matchupModel.ErrAlreadySimulated
	}
	return nil
}
