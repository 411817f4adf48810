package services

import (
	model "github.com/EcoBloomApp/EcoBloom-backend/internal/models"
)

// Plafond de CO2 par activité libre, anti-exploitation
const MaxCO2PerActivityKg = 10.0

// EstimateMoneySaved donne une estimation d'économie en dollars selon la
// catégorie et le CO2 évité. Heuristiques simples ; le vrai barème vient de la
// table de facteurs d'émission externe quand elle est disponible.
func EstimateMoneySaved(category string, co2SavedKg float64) float64 {
	switch category {
	case model.CategoryTransportation:
		// ~0.60$ par km, ~0.25 kg de CO2 évité par km
		return (co2SavedKg / 0.25) * 0.60
	case model.CategoryFood:
		// Un repas végétal économise environ 3$
		return 3.0
	case model.CategoryEnergy:
		// 0.13$ par kWh, ~0.42 kg de CO2 par kWh
		return (co2SavedKg / 0.42) * 0.13
	}
	return 0.0
}

// CategoryEmoji retourne l'emoji affiché pour une catégorie
func CategoryEmoji(category string) string {
	switch category {
	case model.CategoryTransportation:
		return "🚌"
	case model.CategoryFood:
		return "🥗"
	case model.CategoryEnergy:
		return "⚡"
	case model.CategoryShopping:
		return "🛍️"
	}
	return "🌱"
}
