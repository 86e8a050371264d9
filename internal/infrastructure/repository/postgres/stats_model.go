package postgres

import (
	"time"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/stats"
)

type statsTableModel struct {
	ID                     int64     `db:"id"`
	PlayerID               string    `db:"player_id"`
	GameID                 string    `db:"game_id"`
	GameTime               time.Time `db:"game_time"`
	Points                 int       `db:"points"`
	Rebounds               int       `db:"rebounds"`
	Assists                int       `db:"assists"`
	Steals                 int       `db:"steals"`
	Blocks                 int       `db:"blocks"`
	Turnovers              int       `db:"turnovers"`
	FieldGoalsMade         int       `db:"fgm"`
	FieldGoalsAttempted    int       `db:"fga"`
	ThreePointersMade      int       `db:"tpm"`
	ThreePointersAttempted int       `db:"tpa"`
	FreeThrowsMade         int       `db:"ftm"`
	FreeThrowsAttempted    int       `db:"fta"`
	MinutesPlayed          int       `db:"minutes_played"`
	Started                bool      `db:"started"`
	DidNotPlay             bool      `db:"did_not_play"`
}

func (m statsTableModel) toDomain() stats.Record {
	return stats.Record{
		PlayerID:               m.PlayerID,
		GameID:                 m.GameID,
		GameTime:               m.GameTime.UTC(),
		Points:                 m.Points,
		Rebounds:               m.Rebounds,
		Assists:                m.Assists,
		Steals:                 m.Steals,
		Blocks:                 m.Blocks,
		Turnovers:              m.Turnovers,
		FieldGoalsMade:         m.FieldGoalsMade,
		FieldGoalsAttempted:    m.FieldGoalsAttempted,
		ThreePointersMade:      m.ThreePointersMade,
		ThreePointersAttempted: m.ThreePointersAttempted,
		FreeThrowsMade:         m.FreeThrowsMade,
		FreeThrowsAttempted:    m.FreeThrowsAttempted,
		MinutesPlayed:          m.MinutesPlayed,
		Started:                m.Started,
		DidNotPlay:             m.DidNotPlay,
	}
}
