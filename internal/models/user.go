package model

import (
	"time"
)

// DateFields contient les champs d'audit standard pour toutes les entités
type DateFields struct {
	CreatedBy *string   `json:"createdBy,omitempty"`
	UpdatedBy *string   `json:"updatedBy,omitempty"`
	DeletedAt time.Time `json:"deletedAt,omitempty"`
	DeletedBy *string   `json:"deletedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// UserProfile représente un utilisateur avec ses totaux cumulés.
// Les totaux sont un cache dérivé du ledger d'activités : ils doivent toujours
// pouvoir être recalculés à partir des événements (voir stats.TotalsFromEvents
// et le paramètre recompute de stats.SnapshotForUser).
type UserProfile struct {
	ID                     string    `json:"id,omitempty"`
	Name                   string    `json:"name"`
	Email                  string    `json:"email"`
	Avatar                 string    `json:"avatar,omitempty"`
	Timezone               string    `json:"timezone,omitempty"` // zone IANA pour les limites de journée (streak), UTC par défaut
	Provider               string    `json:"provider,omitempty"` // email, google, apple
	TotalXP                int       `json:"totalXp"`
	TotalCO2SavedKg        float64   `json:"totalCo2SavedKg"`
	TotalMoneySaved        float64   `json:"totalMoneySaved"`
	TotalMissionsCompleted int       `json:"totalMissionsCompleted"`
	JoinDate               time.Time `json:"joinDate,omitempty"`
	DateFields
}

// DayBoundaryLocation retourne la zone utilisée pour découper les journées
// du streak. UTC si aucune zone valide n'est renseignée.
func (u *UserProfile) DayBoundaryLocation() *time.Location {
	if u.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UserCreator contient les informations de l'utilisateur créateur d'une entité
type UserCreator struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}
