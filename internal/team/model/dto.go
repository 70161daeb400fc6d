// Package model provides domain models and DTOs for team module.
package model

// RosterPlayer represents a roster member in team API responses.
type RosterPlayer struct {
	PlayerID  string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Skill     int    `json:"skill"`
}

// CreateTeamRequest represents the request to create a team.
type CreateTeamRequest struct {
	Name    string `json:"name" binding:"required"`
	City    string `json:"city" binding:"required"`
	LogoURL string `json:"logo_url"`
}

// UpdateTeamRequest represents the request to update team attributes.
// Win/loss counters are not client-writable.
type UpdateTeamRequest struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	LogoURL string `json:"logo_url"`
}

// TeamResponse represents a team with its resolved roster.
type TeamResponse struct {
	TeamID  string         `json:"team_id"`
	Name    string         `json:"name"`
	City    string         `json:"city"`
	LogoURL string         `json:"logo_url,omitempty"`
	Wins    int            `json:"wins"`
	Losses  int            `json:"losses"`
	Roster  []RosterPlayer `json:"roster"`
}

// StandingsEntry represents one row in the league standings.
type StandingsEntry struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
	City   string `json:"city"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// StandingsResponse represents the full league standings.
type StandingsResponse struct {
	Standings []StandingsEntry `json:"standings"`
	Total     int              `json:"total"`
}
