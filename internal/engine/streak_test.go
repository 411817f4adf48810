package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var streakNow = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

// daysAgo fabrique un horodatage n jours avant streakNow
func daysAgo(n int) time.Time {
	return streakNow.AddDate(0, 0, -n)
}

func TestStreakEmptyHistory(t *testing.T) {
	info := StreakFor(nil, time.UTC, streakNow)

	assert.Equal(t, 0, info.CurrentStreakDays)
	assert.Equal(t, 0, info.LongestStreakDays)
}

func TestStreakThreeConsecutiveDays(t *testing.T) {
	events := []time.Time{daysAgo(0), daysAgo(1), daysAgo(2)}
	info := StreakFor(events, time.UTC, streakNow)

	assert.Equal(t, 3, info.CurrentStreakDays)
	assert.Equal(t, 3, info.LongestStreakDays)
}

func TestStreakGapYesterdayBreaksRun(t *testing.T) {
	// Activité aujourd'hui et avant-hier : le trou d'hier coupe la série
	events := []time.Time{daysAgo(0), daysAgo(2)}
	info := StreakFor(events, time.UTC, streakNow)

	assert.Equal(t, 1, info.CurrentStreakDays)
	assert.Equal(t, 1, info.LongestStreakDays)
}

func TestStreakStaleHistoryZeroCurrent(t *testing.T) {
	// Série de 3 jours terminée il y a 3 jours : plus de streak courant,
	// mais elle reste candidate au record
	events := []time.Time{daysAgo(3), daysAgo(4), daysAgo(5)}
	info := StreakFor(events, time.UTC, streakNow)

	assert.Equal(t, 0, info.CurrentStreakDays)
	assert.Equal(t, 3, info.LongestStreakDays)
}

func TestStreakYesterdayStillCurrent(t *testing.T) {
	events := []time.Time{daysAgo(1), daysAgo(2)}
	info := StreakFor(events, time.UTC, streakNow)

	assert.Equal(t, 2, info.CurrentStreakDays)
}

func TestStreakMultipleEventsSameDayCountOnce(t *testing.T) {
	events := []time.Time{
		daysAgo(0), daysAgo(0).Add(-2 * time.Hour), daysAgo(0).Add(-5 * time.Hour),
		daysAgo(1),
	}
	info := StreakFor(events, time.UTC, streakNow)

	assert.Equal(t, 2, info.CurrentStreakDays)
	assert.Equal(t, 2, info.LongestStreakDays)
}

func TestStreakLongestInMiddleOfHistory(t *testing.T) {
	// Série de 4 jours il y a deux semaines, activité isolée aujourd'hui
	events := []time.Time{
		daysAgo(0),
		daysAgo(10), daysAgo(11), daysAgo(12), daysAgo(13),
	}
	info := StreakFor(events, time.UTC, streakNow)

	assert.Equal(t, 1, info.CurrentStreakDays)
	assert.Equal(t, 4, info.LongestStreakDays)
}

func TestStreakLongestTieKeepsEarliestRun(t *testing.T) {
	// Deux séries de 2 jours : le record reste 2, issu de la première
	events := []time.Time{
		daysAgo(0), daysAgo(1),
		daysAgo(8), daysAgo(9),
	}
	info := StreakFor(events, time.UTC, streakNow)

	assert.Equal(t, 2, info.CurrentStreakDays)
	assert.Equal(t, 2, info.LongestStreakDays)
}

func TestStreakDayBoundaryRespectsLocation(t *testing.T) {
	// 23h30 UTC le 14 juin = 15 juin 01h30 à Paris (UTC+2 en été) :
	// avec la zone Paris les deux événements tombent le même jour local
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata indisponible")
	}

	events := []time.Time{
		time.Date(2025, 6, 14, 23, 30, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC),
	}

	utcInfo := StreakFor(events, time.UTC, streakNow)
	parisInfo := StreakFor(events, paris, streakNow)

	assert.Equal(t, 2, utcInfo.CurrentStreakDays)
	assert.Equal(t, 1, parisInfo.CurrentStreakDays)
}

func TestStreakNilLocationDefaultsUTC(t *testing.T) {
	events := []time.Time{daysAgo(0), daysAgo(1)}

	assert.Equal(t, StreakFor(events, time.UTC, streakNow), StreakFor(events, nil, streakNow))
}
