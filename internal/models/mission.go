package model

import (
	"database/sql"
	"time"
)

// Statuts d'une mission
const (
	MissionStatusAvailable = "available"
	MissionStatusCompleted = "completed"
)

// Mission est une action suggérée à l'utilisateur. Les missions sont produites
// par un générateur externe (hors périmètre) et seulement stockées, listées et
// complétées ici.
type Mission struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	CO2SavedKg  float64        `json:"co2SavedKg"`
	MoneySaved  float64        `json:"moneySaved"`
	XPReward    int            `json:"xpReward"`
	MissionType string         `json:"missionType"` // daily, weekly, one_time
	Tips        []string       `json:"tips,omitempty"`
	Status      string         `json:"status"`
	CompletedAt sql.NullTime   `json:"completedAt,omitempty"`
	CreatedBy   sql.NullString `json:"createdBy,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
