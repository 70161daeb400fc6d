package model

import (
	"time"

	"gorm.io/gorm"
)

// Matchup represents a scheduled (and possibly already-played) game between
// two teams. Matches the matchups table schema. The simulated flag flips at
// most once; scores and stat lines are written atomically with that flip and
// the record is immutable afterwards.
type Matchup struct {
	MatchupID     string    `gorm:"primaryKey;column:matchup_id;type:varchar(36)"                        json:"matchup_id"`
	HomeTeamID    string    `gorm:"column:home_team_id;type:varchar(36);not null;index:idx_matchups_home" json:"home_team_id"`
	AwayTeamID    string    `gorm:"column:away_team_id;type:varchar(36);not null;index:idx_matchups_away" json:"away_team_id"`
	Date          time.Time `gorm:"column:date;type:timestamptz;not null"                                json:"date"`
	Location      string    `gorm:"column:location;type:varchar(255);not null"                           json:"location"`
	Simulated     bool      `gorm:"column:simulated;not null;default:false"                              json:"simulated"`
	HomeTeamScore int       `gorm:"column:home_team_score;not null;default:0"                            json:"home_team_score"`
	AwayTeamScore int       `gorm:"column:away_team_score;not null;default:0"                            json:"away_team_score"`
	CreatedAt     time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"            json:"-"`
	UpdatedAt     time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"            json:"-"`
}

// TableName specifies the table name for GORM.
func (Matchup) TableName() string {
	return "matchups"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (m *Matchup) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now()
	return nil
}

// StatLine is one player's box-score contribution to one simulated matchup.
// Matches the stat_lines table schema. Rows are written exactly once, inside
// the simulation transaction, and never modified.
type StatLine struct {
	ID        int64  `gorm:"primaryKey;column:id;type:bigserial"                                      json:"-"`
	MatchupID string `gorm:"column:matchup_id;type:varchar(36);not null;index:idx_stat_lines_matchup" json:"matchup_id"`
	PlayerID  string `gorm:"column:player_id;type:varchar(36);not null;index:idx_stat_lines_player"   json:"player_id"`
	TeamID    string `gorm:"column:team_id;type:varchar(36);not null"                                 json:"team_id"`
	Points    int    `gorm:"column:points;not null;default:0"                                         json:"points"`
	Assists   int    `gorm:"column:assists;not null;default:0"                                        json:"assists"`
	Rebounds  int    `gorm:"column:rebounds;not null;default:0"                                       json:"rebounds"`
	Steals    int    `gorm:"column:steals;not null;default:0"                                         json:"steals"`
	Blocks    int    `gorm:"column:blocks;not null;default:0"                                         json:"blocks"`
}

// TableName specifies the table name for GORM.
func (StatLine) TableName() string {
	return "stat_lines"
}
