package engine

import (
	"sort"
	"time"
)

// StreakInfo résume la continuité d'activité en jours calendaires
type StreakInfo struct {
	CurrentStreakDays int
	LongestStreakDays int
}

// dayKey ramène un instant à sa journée calendaire dans la zone donnée
func dayKey(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// StreakFor calcule le streak courant et le plus long sur des horodatages
// d'événements. Les jours sont découpés dans loc (UTC si nil), ancrés sur now.
//
// Le streak courant est la série de jours consécutifs se terminant aujourd'hui
// ou hier ; un trou de deux jours ou plus le remet à zéro. Le plus long streak
// est recalculé sur tout l'historique à chaque appel, jamais mis en cache, pour
// que les événements annulés ou rattrapés ne le désynchronisent pas. En cas
// d'égalité, la série chronologiquement la plus ancienne est conservée.
func StreakFor(timestamps []time.Time, loc *time.Location, now time.Time) StreakInfo {
	if loc == nil {
		loc = time.UTC
	}
	if len(timestamps) == 0 {
		return StreakInfo{}
	}

	// Réduire aux jours distincts, triés croissants
	seen := make(map[time.Time]struct{}, len(timestamps))
	for _, ts := range timestamps {
		seen[dayKey(ts, loc)] = struct{}{}
	}
	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	const day = 24 * time.Hour

	// Parcourir les séries consécutives ; > conserve la première série en cas d'égalité
	longest := 0
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == day {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}

	// La dernière série n'est "courante" que si elle touche aujourd'hui ou hier
	current := 0
	today := dayKey(now, loc)
	last := days[len(days)-1]
	if last.Equal(today) || last.Equal(today.Add(-day)) {
		current = 1
		for i := len(days) - 2; i >= 0; i-- {
			if days[i+1].Sub(days[i]) == day {
				current++
			} else {
				break
			}
		}
	}

	return StreakInfo{CurrentStreakDays: current, LongestStreakDays: longest}
}
