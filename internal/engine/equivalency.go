package engine

// Facteurs d'équivalence fixes. Conversions purement linéaires, aucun arrondi
// ici : le formatage est l'affaire de la présentation.
const (
	// KgCO2PerTreeYear : séquestration annuelle d'un arbre mature
	KgCO2PerTreeYear = 22.0
	// KgCO2PerMile : facteur d'émission moyen d'un véhicule particulier par mile
	KgCO2PerMile = 0.404
	// KgCO2PerLEDHour : écart d'émission par heure d'ampoule LED vs incandescente
	KgCO2PerLEDHour = 0.006
)

// TreesPlanted convertit des kg de CO2 en équivalent arbres plantés
func TreesPlanted(kg float64) float64 {
	return kg / KgCO2PerTreeYear
}

// MilesNotDriven convertit des kg de CO2 en équivalent miles non parcourus
func MilesNotDriven(kg float64) float64 {
	return kg / KgCO2PerMile
}

// LEDHours convertit des kg de CO2 en équivalent heures d'éclairage LED
func LEDHours(kg float64) float64 {
	return kg / KgCO2PerLEDHour
}
