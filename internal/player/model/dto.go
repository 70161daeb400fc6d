// Package model provides domain models and DTOs for player module.
package model

// CreatePlayerRequest represents the request to create a player.
type CreatePlayerRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	TeamID    *string `json:"team_id"`
	Position  string  `json:"position" binding:"required"`
	HeightCm  int     `json:"height_cm" binding:"required"`
	WeightLbs int     `json:"weight_lbs" binding:"required"`
	Skill     *int    `json:"skill" binding:"required"`
}

// UpdatePlayerRequest represents the request to update player attributes.
// Cumulative stats are owned by the simulation path and not client-writable.
type UpdatePlayerRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	TeamID    *string `json:"team_id"`
	Position  *string `json:"position"`
	HeightCm  *int    `json:"height_cm"`
	WeightLbs *int    `json:"weight_lbs"`
	Skill     *int    `json:"skill"`
}

// CareerStats holds a player's cumulative totals.
type CareerStats struct {
	Points      int `json:"points"`
	Assists     int `json:"assists"`
	Rebounds    int `json:"rebounds"`
	Steals      int `json:"steals"`
	Blocks      int `json:"blocks"`
	GamesPlayed int `json:"games_played"`
}

// PerGameStats holds per-game averages, computed on read from the
// cumulative totals. Zero when no games have been played.
type PerGameStats struct {
	Points   float64 `json:"points"`
	Assists  float64 `json:"assists"`
	Rebounds float64 `json:"rebounds"`
	Steals   float64 `json:"steals"`
	Blocks   float64 `json:"blocks"`
}

// PlayerResponse represents a player in API responses.
type PlayerResponse struct {
	PlayerID  string       `json:"player_id"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	TeamID    *string      `json:"team_id,omitempty"`
	Position  string       `json:"position"`
	HeightCm  int          `json:"height_cm"`
	WeightLbs int          `json:"weight_lbs"`
	Skill     int          `json:"skill"`
	Career    CareerStats  `json:"career"`
	PerGame   PerGameStats `json:"per_game"`
}

// LeaderEntry represents one row of a stat leaderboard.
type LeaderEntry struct {
	PlayerID    string  `json:"player_id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	TeamID      *string `json:"team_id,omitempty"`
	Total       int     `json:"total"`
	GamesPlayed int     `json:"games_played"`
	PerGame     float64 `json:"per_game"`
}

// LeadersResponse represents a stat leaderboard.
type LeadersResponse struct {
	Stat    string        `json:"stat"`
	Leaders []LeaderEntry `json:"leaders"`
}

// NewPerGameStats derives per-game averages from cumulative totals.
func NewPerGameStats(c CareerStats) PerGameStats {
	if c.GamesPlayed == 0 {
		return PerGameStats{}
	}
	games := float64(c.GamesPlayed)
	return PerGameStats{
		Points:   float64(c.Points) / games,
		Assists:  float64(c.Assists) / games,
		Rebounds: float64(c.Rebounds) / games,
		Steals:   float64(c.Steals) / games,
		Blocks:   float64(c.Blocks) / games,
	}
}
