// Package model provides domain models and DTOs for matchup module.
package model

import "time"

// CreateMatchupRequest represents the request to schedule a matchup.
type CreateMatchupRequest struct {
	HomeTeamID string    `json:"home_team_id" binding:"required"`
	AwayTeamID string    `json:"away_team_id" binding:"required"`
	Date       time.Time `json:"date" binding:"required"`
	Location   string    `json:"location" binding:"required"`
}

// UpdateMatchupRequest represents the request to reschedule an unsimulated
// matchup.
type UpdateMatchupRequest struct {
	HomeTeamID *string    `json:"home_team_id"`
	AwayTeamID *string    `json:"away_team_id"`
	Date       *time.Time `json:"date"`
	Location   *string    `json:"location"`
}

// StatLineResponse represents one player's line in a simulated matchup.
type StatLineResponse struct {
	PlayerID  string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	TeamID    string `json:"team_id"`
	Points    int    `json:"points"`
	Assists   int    `json:"assists"`
	Rebounds  int    `json:"rebounds"`
	Steals    int    `json:"steals"`
	Blocks    int    `json:"blocks"`
}

// MatchupResponse represents a matchup in API responses. Scores and stat
// lines are meaningful only once Simulated is true.
type MatchupResponse struct {
	MatchupID     string             `json:"matchup_id"`
	HomeTeamID    string             `json:"home_team_id"`
	AwayTeamID    string             `json:"away_team_id"`
	HomeTeamName  string             `json:"home_team_name,omitempty"`
	AwayTeamName  string             `json:"away_team_name,omitempty"`
	Date          time.Time          `json:"date"`
	Location      string             `json:"location"`
	Simulated     bool               `json:"simulated"`
	HomeTeamScore int                `json:"home_team_score"`
	AwayTeamScore int                `json:"away_team_score"`
	PlayerStats   []StatLineResponse `json:"player_stats"`
}
