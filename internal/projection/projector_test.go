package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/EcoBloomApp/EcoBloom-backend/internal/models"
)

var projNow = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

// event fabrique un événement minimal n jours avant projNow
func event(daysAgo int, category, summary string, co2 float64) model.ActivityEvent {
	return model.ActivityEvent{
		OccurredAt: projNow.AddDate(0, 0, -daysAgo),
		Category:   category,
		Summary:    summary,
		CO2SavedKg: co2,
	}
}

func TestComputeEmptyHistory(t *testing.T) {
	result := Compute(nil, nil, time.UTC, projNow)

	assert.True(t, result.Success)
	assert.Equal(t, 0.0, result.MonthlyPaceKg)
	assert.Equal(t, 0.0, result.Projections.CurrentPace.OneYear)
	assert.Equal(t, 0.0, result.PotentialAnnualSavingsKg)
	assert.Equal(t, model.PaceBasisExtrapolated, result.PaceBasis)
	// Liste vide, pas nil : le JSON doit contenir [] et non null
	assert.NotNil(t, result.CategoryBreakdown)
	assert.Empty(t, result.CategoryBreakdown)
}

func TestMonthlyPaceMatureHistory(t *testing.T) {
	// Premier événement il y a 40 jours : historique mûr, le rythme est la
	// somme glissante des 30 derniers jours (l'événement ancien est exclu)
	events := []model.ActivityEvent{
		event(40, model.CategoryTransportation, "Vélo au travail", 2.0),
		event(10, model.CategoryTransportation, "Vélo au travail", 3.0),
		event(2, model.CategoryFood, "Repas végétarien", 1.5),
	}

	result := Compute(events, nil, time.UTC, projNow)

	assert.Equal(t, 4.5, result.MonthlyPaceKg)
	assert.Equal(t, model.PaceBasisTrailing30d, result.PaceBasis)
	assert.Equal(t, 4.5, result.Projections.CurrentPace.OneMonth)
	assert.Equal(t, 27.0, result.Projections.CurrentPace.SixMonths)
	assert.Equal(t, 54.0, result.Projections.CurrentPace.OneYear)
}

func TestMonthlyPaceThinHistoryExtrapolated(t *testing.T) {
	// 10 jours d'historique seulement : moyenne journalière extrapolée à 30
	// jours, avec la base de calcul signalée
	events := []model.ActivityEvent{
		event(9, model.CategoryTransportation, "Vélo au travail", 2.0),
		event(0, model.CategoryFood, "Repas végétarien", 1.0),
	}

	result := Compute(events, nil, time.UTC, projNow)

	assert.Equal(t, 9.0, result.MonthlyPaceKg) // (3.0 / 10 jours) * 30
	assert.Equal(t, model.PaceBasisExtrapolated, result.PaceBasis)
	assert.Equal(t, 108.0, result.Projections.CurrentPace.OneYear)
}

func TestBestCaseAddsAvailableMissionsMonthly(t *testing.T) {
	events := []model.ActivityEvent{
		event(40, model.CategoryTransportation, "Vélo au travail", 2.0),
		event(10, model.CategoryTransportation, "Vélo au travail", 3.0),
		event(2, model.CategoryFood, "Repas végétarien", 1.5),
	}
	missions := []model.Mission{
		{CO2SavedKg: 2.0},
		{CO2SavedKg: 1.0},
	}

	result := Compute(events, missions, time.UTC, projNow)

	// Chaque mission disponible s'ajoute une fois par mois au rythme courant
	assert.Equal(t, model.BestCaseCadenceMonthly, result.BestCaseCadence)
	assert.Equal(t, 7.5, result.Projections.BestCase.OneMonth)
	assert.Equal(t, 45.0, result.Projections.BestCase.SixMonths)
	assert.Equal(t, 90.0, result.Projections.BestCase.OneYear)
	assert.Equal(t, 90.0, result.PotentialAnnualSavingsKg)
}

func TestCategoryBreakdownSumsToExactly100(t *testing.T) {
	// Trois tiers parfaits : les arrondis bruts donneraient 33+33+33=99,
	// le plus fort reste réconcilie à 100
	events := []model.ActivityEvent{
		event(1, model.CategoryTransportation, "Vélo au travail", 1.0),
		event(2, model.CategoryFood, "Repas végétarien", 1.0),
		event(3, model.CategoryEnergy, "Thermostat baissé", 1.0),
	}

	result := Compute(events, nil, time.UTC, projNow)

	require.Len(t, result.CategoryBreakdown, 3)
	sum := 0
	for _, share := range result.CategoryBreakdown {
		sum += share.Percentage
	}
	assert.Equal(t, 100, sum)

	// Parts égales : ordre alphabétique, le point supplémentaire va au
	// premier par le même départage
	assert.Equal(t, model.CategoryEnergy, result.CategoryBreakdown[0].Category)
	assert.Equal(t, 34, result.CategoryBreakdown[0].Percentage)
}

func TestCategoryBreakdownOrderedByAmount(t *testing.T) {
	events := []model.ActivityEvent{
		event(1, model.CategoryFood, "Repas végétarien", 1.0),
		event(2, model.CategoryTransportation, "Vélo au travail", 6.0),
		event(3, model.CategoryEnergy, "Thermostat baissé", 3.0),
	}

	result := Compute(events, nil, time.UTC, projNow)

	require.Len(t, result.CategoryBreakdown, 3)
	assert.Equal(t, model.CategoryTransportation, result.CategoryBreakdown[0].Category)
	assert.Equal(t, model.CategoryEnergy, result.CategoryBreakdown[1].Category)
	assert.Equal(t, model.CategoryFood, result.CategoryBreakdown[2].Category)
	assert.Equal(t, 60, result.CategoryBreakdown[0].Percentage)
}

func TestTopActionsAggregatedAndTruncated(t *testing.T) {
	events := []model.ActivityEvent{
		event(1, model.CategoryTransportation, "Vélo au travail", 2.0),
		event(2, model.CategoryTransportation, "Vélo au travail", 2.0),
		event(3, model.CategoryTransportation, "Bus au lieu de la voiture", 3.0),
		event(4, model.CategoryTransportation, "Covoiturage", 1.0),
		event(5, model.CategoryTransportation, "Trajet à pied", 0.5),
	}

	result := Compute(events, nil, time.UTC, projNow)

	actions := result.TopActions[model.CategoryTransportation]
	require.Len(t, actions, 3) // tronqué après calcul complet

	// Les occurrences d'une même action sont agrégées
	assert.Equal(t, "Vélo au travail", actions[0].Name)
	assert.Equal(t, 4.0, actions[0].CO2)
	assert.Equal(t, 2, actions[0].Count)

	assert.Equal(t, "Bus au lieu de la voiture", actions[1].Name)
	assert.Equal(t, "Covoiturage", actions[2].Name)
}

func TestComputeNilLocationDefaultsUTC(t *testing.T) {
	events := []model.ActivityEvent{
		event(0, model.CategoryFood, "Repas végétarien", 1.0),
	}

	result := Compute(events, nil, nil, projNow)

	assert.True(t, result.Success)
	assert.Equal(t, 30.0, result.MonthlyPaceKg)
}
