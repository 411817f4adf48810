package model

// Bases de calcul du rythme mensuel (voir projection.Compute)
const (
	PaceBasisTrailing30d  = "trailing_30d"      // 30 jours complets d'historique
	PaceBasisExtrapolated = "extrapolated_thin" // historique mince, moyenne journalière x 30
)

// BestCaseCadenceMonthly : chaque mission disponible est supposée adoptée comme
// habitude mensuelle, son gain est donc ajouté une fois par mois au rythme courant.
const BestCaseCadenceMonthly = "monthly"

// HorizonProjection donne les kilos de CO2 projetés par horizon
type HorizonProjection struct {
	OneMonth  float64 `json:"1_month"`
	SixMonths float64 `json:"6_months"`
	OneYear   float64 `json:"1_year"`
}

type Projections struct {
	CurrentPace HorizonProjection `json:"current_pace"`
	BestCase    HorizonProjection `json:"best_case"`
}

type CategoryShare struct {
	Category   string  `json:"category"`
	Percentage int     `json:"percentage"`
	AmountKg   float64 `json:"amount_kg"`
}

type TopAction struct {
	Name  string  `json:"name"`
	CO2   float64 `json:"co2"`
	Count int     `json:"count"`
}

// ProjectionResult est la vue "impact futur" complète
type ProjectionResult struct {
	Success                  bool                   `json:"success"`
	Projections              Projections            `json:"projections"`
	CategoryBreakdown        []CategoryShare        `json:"category_breakdown"`
	TopActions               map[string][]TopAction `json:"top_actions"`
	MonthlyPaceKg            float64                `json:"monthly_pace_kg"`
	PaceBasis                string                 `json:"pace_basis"`
	BestCaseCadence          string                 `json:"best_case_cadence"`
	PotentialAnnualSavingsKg float64                `json:"potential_annual_savings_kg"`
}
