// Package projection calcule les projections d'impact CO2 (rythme courant et
// meilleur cas) à partir du ledger. Tout est pur : les missions disponibles
// sont un paramètre explicite, jamais un état ambiant, pour que la projection
// soit testable isolément.
package projection

import (
	"math"
	"sort"
	"time"

	model "github.com/EcoBloomApp/EcoBloom-backend/internal/models"
)

// trailingWindowDays : fenêtre d'observation du rythme mensuel
const trailingWindowDays = 30

// topActionsPerCategory : troncature d'affichage, le calcul porte sur tout
const topActionsPerCategory = 3

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// dayCount retourne le nombre de jours calendaires couverts par l'historique,
// du jour du premier événement à aujourd'hui inclus
func dayCount(first, now time.Time, loc *time.Location) int {
	f := first.In(loc)
	n := now.In(loc)
	firstDay := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	return int(today.Sub(firstDay).Hours()/24) + 1
}

// monthlyPace calcule le rythme mensuel observé. Avec au moins 30 jours
// d'historique c'est la somme glissante des 30 derniers jours ; avec moins,
// la moyenne journalière observée est extrapolée à 30 jours et la base de
// calcul est signalée pour que le client distingue une estimation mince d'une
// estimation mûre.
func monthlyPace(events []model.ActivityEvent, now time.Time, loc *time.Location) (float64, string) {
	if len(events) == 0 {
		return 0, model.PaceBasisExtrapolated
	}

	windowStart := now.Add(-trailingWindowDays * 24 * time.Hour)
	var windowSum float64
	for _, e := range events {
		if !e.OccurredAt.Before(windowStart) {
			windowSum += e.CO2SavedKg
		}
	}

	history := dayCount(events[0].OccurredAt, now, loc)
	if history >= trailingWindowDays {
		return windowSum, model.PaceBasisTrailing30d
	}

	daily := windowSum / float64(history)
	return daily * trailingWindowDays, model.PaceBasisExtrapolated
}

func horizons(monthly float64) model.HorizonProjection {
	return model.HorizonProjection{
		OneMonth:  round1(monthly),
		SixMonths: round1(monthly * 6),
		OneYear:   round1(monthly * 12),
	}
}

// categoryBreakdown ventile le CO2 cumulé par catégorie. Les pourcentages sont
// réconciliés par la méthode du plus fort reste pour sommer exactement à 100 ;
// un ledger vide (ou sans CO2) donne une liste vide, jamais une division par
// zéro.
func categoryBreakdown(events []model.ActivityEvent) []model.CategoryShare {
	amounts := make(map[string]float64)
	var total float64
	for _, e := range events {
		amounts[e.Category] += e.CO2SavedKg
		total += e.CO2SavedKg
	}
	if total <= 0 {
		return []model.CategoryShare{}
	}

	type share struct {
		category  string
		amount    float64
		floor     int
		remainder float64
	}
	shares := make([]share, 0, len(amounts))
	floorSum := 0
	for cat, amount := range amounts {
		exact := amount / total * 100
		f := int(math.Floor(exact))
		shares = append(shares, share{category: cat, amount: amount, floor: f, remainder: exact - float64(f)})
		floorSum += f
	}

	// Distribuer les points manquants aux plus forts restes
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].remainder != shares[j].remainder {
			return shares[i].remainder > shares[j].remainder
		}
		return shares[i].category < shares[j].category
	})
	for i := 0; i < 100-floorSum && i < len(shares); i++ {
		shares[i].floor++
	}

	// Ordre d'affichage : part décroissante
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].amount != shares[j].amount {
			return shares[i].amount > shares[j].amount
		}
		return shares[i].category < shares[j].category
	})

	breakdown := make([]model.CategoryShare, len(shares))
	for i, s := range shares {
		breakdown[i] = model.CategoryShare{
			Category:   s.category,
			Percentage: s.floor,
			AmountKg:   round1(s.amount),
		}
	}
	return breakdown
}

// topActions agrège les descriptions distinctes par catégorie, classées par
// CO2 cumulé décroissant, tronquées à 3 après calcul complet
func topActions(events []model.ActivityEvent) map[string][]model.TopAction {
	type agg struct {
		co2   float64
		count int
	}
	byCategory := make(map[string]map[string]*agg)
	for _, e := range events {
		actions, ok := byCategory[e.Category]
		if !ok {
			actions = make(map[string]*agg)
			byCategory[e.Category] = actions
		}
		a, ok := actions[e.Summary]
		if !ok {
			a = &agg{}
			actions[e.Summary] = a
		}
		a.co2 += e.CO2SavedKg
		a.count++
	}

	result := make(map[string][]model.TopAction, len(byCategory))
	for cat, actions := range byCategory {
		ranked := make([]model.TopAction, 0, len(actions))
		for name, a := range actions {
			ranked = append(ranked, model.TopAction{Name: name, CO2: round1(a.co2), Count: a.count})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].CO2 != ranked[j].CO2 {
				return ranked[i].CO2 > ranked[j].CO2
			}
			return ranked[i].Name < ranked[j].Name
		})
		if len(ranked) > topActionsPerCategory {
			ranked = ranked[:topActionsPerCategory]
		}
		result[cat] = ranked
	}
	return result
}

// Compute produit la projection complète. Le meilleur cas suppose que chaque
// mission disponible est adoptée comme habitude mensuelle : son gain s'ajoute
// une fois par mois au rythme courant (cadence fixée et exposée dans le
// résultat, voir model.BestCaseCadenceMonthly). Historique vide : toutes les
// valeurs à zéro, jamais d'erreur.
func Compute(events []model.ActivityEvent, availableMissions []model.Mission, loc *time.Location, now time.Time) model.ProjectionResult {
	if loc == nil {
		loc = time.UTC
	}

	pace, basis := monthlyPace(events, now, loc)

	var missionBoost float64
	for _, m := range availableMissions {
		missionBoost += m.CO2SavedKg
	}
	bestMonthly := pace + missionBoost

	return model.ProjectionResult{
		Success: true,
		Projections: model.Projections{
			CurrentPace: horizons(pace),
			BestCase:    horizons(bestMonthly),
		},
		CategoryBreakdown:        categoryBreakdown(events),
		TopActions:               topActions(events),
		MonthlyPaceKg:            round1(pace),
		PaceBasis:                basis,
		BestCaseCadence:          model.BestCaseCadenceMonthly,
		PotentialAnnualSavingsKg: round1(bestMonthly * 12),
	}
}
