package model

import (
	"time"

	"gorm.io/gorm"
)

// RosterLimit is the maximum number of players a team may carry.
const RosterLimit = 5

// Team represents a team entity in the system.
// Matches the teams table schema. Wins and losses only change as a side
// effect of a matchup simulation and never decrease.
type Team struct {
	TeamID    string    `gorm:"primaryKey;column:team_id;type:varchar(36)"                        json:"team_id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex:idx_teams_name" json:"name"`
	City      string    `gorm:"column:city;type:varchar(255);not null"                            json:"city"`
	LogoURL   string    `gorm:"column:logo_url;type:varchar(512)"                                 json:"logo_url,omitempty"`
	Wins      int       `gorm:"column:wins;not null;default:0"                                    json:"wins"`
	Losses    int       `gorm:"column:losses;not null;default:0"                                  json:"losses"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"         json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"         json:"-"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (t *Team) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}
