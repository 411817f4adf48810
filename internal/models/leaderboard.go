package model

import (
	"database/sql"
)

type LeaderboardEntry struct {
	UserID     string         `json:"userId"`
	UserName   string         `json:"userName"`
	Avatar     sql.NullString `json:"avatar,omitempty"`
	Rank       int            `json:"rank"`
	TotalXP    int            `json:"totalXp"`
	CO2SavedKg float64        `json:"co2SavedKg"`
	PlantStage string         `json:"plantStage"`
}

type UserRank struct {
	UserID     string  `json:"userId"`
	Rank       int     `json:"rank"`
	TotalXP    int     `json:"totalXp"`
	TotalUsers int     `json:"totalUsers"`
	Percentile float64 `json:"percentile"` // Top X%
}
