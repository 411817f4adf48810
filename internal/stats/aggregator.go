// Package stats compose le ledger et les calculateurs purs en une photographie
// unique des statistiques utilisateur (StatsSnapshot), recalculée à la demande.
package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/EcoBloomApp/EcoBloom-backend/internal/database"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/engine"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/ledger"
	model "github.com/EcoBloomApp/EcoBloom-backend/internal/models"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/scanner"
)

// Totals regroupe les cumuls dont dépend le snapshot. Ils proviennent soit du
// cache de la ligne users, soit d'une resommation du ledger : les deux chemins
// doivent donner exactement le même résultat, le cache n'est qu'une
// optimisation de lecture.
type Totals struct {
	TotalXP                int
	TotalCO2SavedKg        float64
	TotalMoneySaved        float64
	TotalMissionsCompleted int
}

// TotalsFromEvents resomme le ledger : chemin de recalcul de référence
func TotalsFromEvents(events []model.ActivityEvent) Totals {
	var t Totals
	for _, e := range events {
		t.TotalXP += e.XPEarned
		t.TotalCO2SavedKg += e.CO2SavedKg
		t.TotalMoneySaved += e.MoneySaved
		if e.Source == model.SourceMission {
			t.TotalMissionsCompleted++
		}
	}
	return t
}

// BuildSnapshot assemble la photographie complète à partir des cumuls et des
// événements. Fonction pure : deux appels sur les mêmes entrées produisent un
// résultat identique octet pour octet. Un historique vide donne l'état initial
// documenté : niveau 1, palier 1, streak 0, équivalents 0.
func BuildSnapshot(totals Totals, events []model.ActivityEvent, loc *time.Location, now time.Time) model.StatsSnapshot {
	level := engine.LevelFor(totals.TotalXP)
	plant := engine.PlantStageFor(totals.TotalXP)

	timestamps := make([]time.Time, len(events))
	for i, e := range events {
		timestamps[i] = e.OccurredAt
	}
	streak := engine.StreakFor(timestamps, loc, now)

	return model.StatsSnapshot{
		XP: model.XPStats{
			TotalXP:              totals.TotalXP,
			CurrentLevel:         level.Level,
			XPCurrentLevel:       level.XPIntoLevel,
			XPToNextLevel:        level.XPToNext,
			LevelProgressPercent: level.ProgressPercent,
		},
		Plant: model.PlantStats{
			Stage:         plant.Stage,
			StageName:     plant.StageName,
			XPToNextStage: plant.XPToNextStage,
		},
		Impact: model.ImpactStats{
			TotalCO2Saved:          totals.TotalCO2SavedKg,
			TotalMissionsCompleted: totals.TotalMissionsCompleted,
			TotalMoneySaved:        totals.TotalMoneySaved,
			CurrentStreakDays:      streak.CurrentStreakDays,
			LongestStreakDays:      streak.LongestStreakDays,
		},
		Equivalents: model.EquivalentsStats{
			TreesPlanted:   engine.TreesPlanted(totals.TotalCO2SavedKg),
			MilesNotDriven: engine.MilesNotDriven(totals.TotalCO2SavedKg),
			LEDHours:       engine.LEDHours(totals.TotalCO2SavedKg),
		},
	}
}

// GetUser charge le profil avec ses cumuls cachés
func GetUser(ctx context.Context, userID string) (*model.UserProfile, error) {
	user, err := scanner.ScanUserProfile(database.DB.QueryRow(ctx, `
		SELECT
			id, name, email, avatar, timezone, provider,
			total_xp, total_co2_saved_kg, total_money_saved, total_missions_completed,
			join_date, created_at, updated_at, created_by, updated_by
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`,
		userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ledger.ErrUnknownUser, userID)
		}
		return nil, fmt.Errorf("could not load user: %w", err)
	}
	return user, nil
}

// SnapshotForUser calcule la photographie courante. Avec recompute, les cumuls
// sont resommés depuis le ledger au lieu du cache de la ligne users ; les deux
// chemins doivent coïncider (le cache n'est jamais la source de vérité).
func SnapshotForUser(ctx context.Context, userID string, recompute bool) (model.StatsSnapshot, error) {
	user, err := GetUser(ctx, userID)
	if err != nil {
		return model.StatsSnapshot{}, err
	}

	events, err := ledger.ListForUser(ctx, userID, nil)
	if err != nil {
		return model.StatsSnapshot{}, err
	}

	totals := Totals{
		TotalXP:                user.TotalXP,
		TotalCO2SavedKg:        user.TotalCO2SavedKg,
		TotalMoneySaved:        user.TotalMoneySaved,
		TotalMissionsCompleted: user.TotalMissionsCompleted,
	}
	if recompute {
		totals = TotalsFromEvents(events)
	}

	return BuildSnapshot(totals, events, user.DayBoundaryLocation(), time.Now()), nil
}
