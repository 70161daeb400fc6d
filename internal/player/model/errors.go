package model

import "errors"

var (
	// ErrPlayerExists indicates that a player with the same name pair already exists.
	ErrPlayerExists = errors.New("player name already exists")
	// ErrPlayerNotFound indicates that the requested player does not exist.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrInvalidName indicates that first or last name is missing.
	ErrInvalidName = errors.New("first and last name are required")
	// ErrInvalidPosition indicates that the position is not one of PG, SG, SF, PF, C.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrInvalidSkill indicates that the skill rating is outside 0-99.
	ErrInvalidSkill = errors.New("skill must be between 0 and 99")
	// ErrInvalidPhysicals indicates non-positive height or weight.
	ErrInvalidPhysicals = errors.New("height and weight must be positive")
	// ErrRosterFull indicates that the target team already carries the maximum roster.
	ErrRosterFull = errors.New("team roster is full")
	// ErrPlayerHasHistory indicates that the player appears in simulated matchup
	// stat lines and cannot be deleted.
	ErrPlayerHasHistory = errors.New("player appears in simulated matchup history")
	// ErrInvalidLeaderStat indicates an unknown leaderboard stat category.
	ErrInvalidLeaderStat = errors.New("invalid leaderboard stat")
)
