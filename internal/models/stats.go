package model

// StatsSnapshot est LA forme canonique des statistiques dérivées, recalculée à
// chaque requête depuis le ledger. Toutes les surfaces du client consomment
// exactement cette structure : aucune variante locale n'est tolérée.
type StatsSnapshot struct {
	XP          XPStats          `json:"xp"`
	Plant       PlantStats       `json:"plant"`
	Impact      ImpactStats      `json:"impact"`
	Equivalents EquivalentsStats `json:"equivalents"`
}

type XPStats struct {
	TotalXP              int `json:"total_xp"`
	CurrentLevel         int `json:"current_level"`
	XPCurrentLevel       int `json:"xp_current_level"`
	XPToNextLevel        int `json:"xp_to_next_level"`
	LevelProgressPercent int `json:"level_progress_percent"`
}

type PlantStats struct {
	Stage         int    `json:"stage"`
	StageName     string `json:"stage_name"`
	XPToNextStage int    `json:"xp_to_next_stage"`
}

type ImpactStats struct {
	TotalCO2Saved          float64 `json:"total_co2_saved"`
	TotalMissionsCompleted int     `json:"total_missions_completed"`
	TotalMoneySaved        float64 `json:"total_money_saved"`
	CurrentStreakDays      int     `json:"current_streak_days"`
	LongestStreakDays      int     `json:"longest_streak_days"`
}

type EquivalentsStats struct {
	TreesPlanted   float64 `json:"trees_planted"`
	MilesNotDriven float64 `json:"miles_not_driven"`
	LEDHours       float64 `json:"led_hours"`
}

// StatsResponse est l'enveloppe exacte attendue par les pages existantes
type StatsResponse struct {
	Success bool          `json:"success"`
	Stats   StatsSnapshot `json:"stats"`
}
