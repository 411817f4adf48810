package model

import (
	"time"
)

// Catégories d'activités reconnues par le moteur
const (
	CategoryTransportation = "transportation"
	CategoryFood           = "food"
	CategoryEnergy         = "energy"
	CategoryShopping       = "shopping"
	CategoryOther          = "other"
)

// Sources d'événements (origine de l'action)
const (
	SourceMission           = "mission"
	SourceFreeform          = "freeform"
	SourceReceiptCommitment = "receipt_commitment"
)

// ValidCategory vérifie qu'une catégorie fait partie de la liste fermée
func ValidCategory(category string) bool {
	switch category {
	case CategoryTransportation, CategoryFood, CategoryEnergy, CategoryShopping, CategoryOther:
		return true
	}
	return false
}

// ValidSource vérifie qu'une source fait partie de la liste fermée
func ValidSource(source string) bool {
	switch source {
	case SourceMission, SourceFreeform, SourceReceiptCommitment:
		return true
	}
	return false
}

// ActivityEvent est l'unité stockée dans le ledger : un enregistrement
// immuable d'une action qui rapporte XP et impact. Le triplet
// (user_id, source, source_ref) est unique pour empêcher le double comptage.
type ActivityEvent struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	OccurredAt time.Time  `json:"occurredAt"` // instant UTC
	Category   string     `json:"category"`
	Summary    string     `json:"summary"` // description courte affichée dans le feed
	UserInput  *string    `json:"userInput,omitempty"`
	Emoji      string     `json:"emoji,omitempty"`
	XPEarned   int        `json:"xpEarned"`
	CO2SavedKg float64    `json:"co2SavedKg"`
	MoneySaved float64    `json:"moneySaved"`
	Source     string     `json:"source"`
	SourceRef  string     `json:"sourceRef"`
	VoidedAt   *time.Time `json:"voidedAt,omitempty"` // correction par soft-void, jamais de mutation
	VoidedBy   *string    `json:"voidedBy,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// FeedItem est la vue "fil d'activité" renvoyée au client
type FeedItem struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Summary    string    `json:"summary"`
	Emoji      string    `json:"emoji"`
	XPEarned   int       `json:"xp_earned"`
	CO2SavedKg float64   `json:"co2_saved_kg,omitempty"`
	MoneySaved float64   `json:"money_saved,omitempty"`
	TimeAgo    string    `json:"time_ago"`
	CreatedAt  time.Time `json:"created_at"`
}
