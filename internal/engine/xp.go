package engine

import (
	model "github.com/EcoBloomApp/EcoBloom-backend/internal/models"
)

// Barème XP des activités libres. Les missions utilisent leur xp_reward stocké.
const (
	baseActivityXP = 10
	maxCO2XP       = 40
	maxActivityXP  = 50
)

// categoryBonusXP récompense davantage les catégories à fort levier
var categoryBonusXP = map[string]int{
	model.CategoryTransportation: 10,
	model.CategoryFood:           5,
	model.CategoryEnergy:         5,
	model.CategoryShopping:       5,
}

// XPForActivity calcule l'XP d'une activité libre : base 10, +5 par kg de CO2
// (plafonné à 40), bonus de catégorie, total plafonné à 50.
func XPForActivity(co2SavedKg float64, category string) int {
	co2XP := int(co2SavedKg * 5)
	if co2XP > maxCO2XP {
		co2XP = maxCO2XP
	}
	if co2XP < 0 {
		co2XP = 0
	}

	xp := baseActivityXP + co2XP + categoryBonusXP[category]
	if xp > maxActivityXP {
		xp = maxActivityXP
	}
	return xp
}
