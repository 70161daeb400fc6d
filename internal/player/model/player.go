package model

import (
	"time"

	"gorm.io/gorm"
)

// Valid player positions.
const (
	PositionPointGuard    = "PG"
	PositionShootingGuard = "SG"
	PositionSmallForward  = "SF"
	PositionPowerForward  = "PF"
	PositionCenter        = "C"
)

// Skill rating bounds.
const (
	MinSkill = 0
	MaxSkill = 99
)

var validPositions = map[string]bool{
	PositionPointGuard:    true,
	PositionShootingGuard: true,
	PositionSmallForward:  true,
	PositionPowerForward:  true,
	PositionCenter:        true,
}

// IsValidPosition reports whether pos is one of the five playable positions.
func IsValidPosition(pos string) bool {
	return validPositions[pos]
}

// Player represents a player entity in the system.
// Matches the players table schema. The cumulative stat columns only change
// as a side effect of a matchup simulation and never decrease.
type Player struct {
	PlayerID  string  `gorm:"primaryKey;column:player_id;type:varchar(36)"                          json:"player_id"`
	FirstName string  `gorm:"column:first_name;type:varchar(255);not null;uniqueIndex:idx_players_name" json:"first_name"`
	LastName  string  `gorm:"column:last_name;type:varchar(255);not null;uniqueIndex:idx_players_name"  json:"last_name"`
	TeamID    *string `gorm:"column:team_id;type:varchar(36);index:idx_players_team_id"             json:"team_id,omitempty"`
	Position  string  `gorm:"column:position;type:varchar(2);not null"                              json:"position"`
	HeightCm  int     `gorm:"column:height_cm;not null"                                             json:"height_cm"`
	WeightLbs int     `gorm:"column:weight_lbs;not null"                                            json:"weight_lbs"`
	Skill     int     `gorm:"column:skill;not null"                                                 json:"skill"`

	// Cumulative career totals.
	Points      int `gorm:"column:points;not null;default:0"       json:"points"`
	Assists     int `gorm:"column:assists;not null;default:0"      json:"assists"`
	Rebounds    int `gorm:"column:rebounds;not null;default:0"     json:"rebounds"`
	Steals      int `gorm:"column:steals;not null;default:0"       json:"steals"`
	Blocks      int `gorm:"column:blocks;not null;default:0"       json:"blocks"`
	GamesPlayed int `gorm:"column:games_played;not null;default:0" json:"games_played"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()" json:"-"`
}

// TableName specifies the table name for GORM.
func (Player) TableName() string {
	return "players"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (p *Player) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return nil
}
