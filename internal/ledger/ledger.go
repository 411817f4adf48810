// Package ledger implémente le journal append-only des activités : la source
// de vérité unique de toutes les statistiques dérivées. Les événements ne sont
// jamais modifiés, seulement ajoutés ou soft-voidés.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/EcoBloomApp/EcoBloom-backend/internal/database"
	model "github.com/EcoBloomApp/EcoBloom-backend/internal/models"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/scanner"
)

// Taxonomie d'erreurs du ledger
var (
	// ErrDuplicateEvent : le triplet (user_id, source, source_ref) existe déjà.
	// Les appelants doivent le traiter comme un no-op idempotent, pas comme un
	// échec : les requêtes rejouées par le réseau doivent rester sûres.
	ErrDuplicateEvent = errors.New("duplicate event")
	// ErrUnknownUser : l'utilisateur cible n'existe pas
	ErrUnknownUser = errors.New("unknown user")
	// ErrMalformedEvent : événement rejeté avant insertion (catégorie inconnue,
	// quantités négatives...) ; l'invariant "quantités non négatives" du ledger
	// est inconditionnel
	ErrMalformedEvent = errors.New("malformed event")
)

// Validate rejette un événement malformé avant toute écriture
func Validate(e *model.ActivityEvent) error {
	if e.UserID == "" {
		return fmt.Errorf("%w: missing user id", ErrMalformedEvent)
	}
	if !model.ValidCategory(e.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrMalformedEvent, e.Category)
	}
	if !model.ValidSource(e.Source) {
		return fmt.Errorf("%w: unknown source %q", ErrMalformedEvent, e.Source)
	}
	if e.SourceRef == "" {
		return fmt.Errorf("%w: missing source ref", ErrMalformedEvent)
	}
	if e.XPEarned < 0 {
		return fmt.Errorf("%w: negative xp", ErrMalformedEvent)
	}
	if e.CO2SavedKg < 0 {
		return fmt.Errorf("%w: negative co2", ErrMalformedEvent)
	}
	if e.MoneySaved < 0 {
		return fmt.Errorf("%w: negative money", ErrMalformedEvent)
	}
	return nil
}

// Append insère un événement et incrémente les totaux cachés de l'utilisateur
// dans la même transaction : jamais d'incrément sans événement, ni l'inverse.
// La contrainte UNIQUE (user_id, source, source_ref) absorbe les doublons même
// sous requêtes concurrentes (double tap, retry réseau) ; dans ce cas l'état
// est inchangé et ErrDuplicateEvent est retourné.
func Append(ctx context.Context, e *model.ActivityEvent) (string, error) {
	if err := Validate(e); err != nil {
		return "", err
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Vérifier l'existence de l'utilisateur avant d'écrire
	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id=$1 AND deleted_at IS NULL)`,
		e.UserID,
	).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("could not check user: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrUnknownUser, e.UserID)
	}

	// ON CONFLICT DO NOTHING : aucun row retourné = doublon, rien n'est appliqué
	err = tx.QueryRow(ctx, `
		INSERT INTO activity_events(
			user_id, occurred_at, category, summary, user_input, emoji,
			xp_earned, co2_saved_kg, money_saved, source, source_ref, created_at
		) VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (user_id, source, source_ref) DO NOTHING
		RETURNING id`,
		e.UserID, e.OccurredAt.UTC(), e.Category, e.Summary, e.UserInput, e.Emoji,
		e.XPEarned, e.CO2SavedKg, e.MoneySaved, e.Source, e.SourceRef,
	).Scan(&e.ID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: (%s, %s, %s)", ErrDuplicateEvent, e.UserID, e.Source, e.SourceRef)
		}
		return "", fmt.Errorf("could not insert event: %w", err)
	}

	missions := 0
	if e.Source == model.SourceMission {
		missions = 1
	}

	_, err = tx.Exec(ctx, `
		UPDATE users SET
			total_xp = total_xp + $1,
			total_co2_saved_kg = total_co2_saved_kg + $2,
			total_money_saved = total_money_saved + $3,
			total_missions_completed = total_missions_completed + $4,
			updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL`,
		e.XPEarned, e.CO2SavedKg, e.MoneySaved, missions, e.UserID,
	)
	if err != nil {
		return "", fmt.Errorf("could not update user totals: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("could not commit append: %w", err)
	}

	return e.ID, nil
}

// ListForUser retourne les événements non voidés d'un utilisateur, triés par
// occurred_at croissant. since est optionnel (nil = tout l'historique).
func ListForUser(ctx context.Context, userID string, since *time.Time) ([]model.ActivityEvent, error) {
	query := `
		SELECT
			id, user_id, occurred_at, category, summary, user_input, emoji,
			xp_earned, co2_saved_kg, money_saved, source, source_ref,
			voided_at, voided_by, created_at
		FROM activity_events
		WHERE user_id = $1 AND voided_at IS NULL`
	args := []interface{}{userID}

	if since != nil {
		query += ` AND occurred_at >= $2`
		args = append(args, since.UTC())
	}
	query += ` ORDER BY occurred_at ASC`

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query events: %w", err)
	}
	defer rows.Close()

	var events []model.ActivityEvent
	for rows.Next() {
		event, err := scanner.ScanActivityEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan event row: %w", err)
		}
		events = append(events, *event)
	}

	return events, rows.Err()
}

// ListRecentForUser retourne les événements les plus récents d'abord, pour le
// fil d'activité (pagination limit/offset)
func ListRecentForUser(ctx context.Context, userID string, limit, offset int) ([]model.ActivityEvent, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT
			id, user_id, occurred_at, category, summary, user_input, emoji,
			xp_earned, co2_saved_kg, money_saved, source, source_ref,
			voided_at, voided_by, created_at
		FROM activity_events
		WHERE user_id = $1 AND voided_at IS NULL
		ORDER BY occurred_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("could not query events: %w", err)
	}
	defer rows.Close()

	var events []model.ActivityEvent
	for rows.Next() {
		event, err := scanner.ScanActivityEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan event row: %w", err)
		}
		events = append(events, *event)
	}

	return events, rows.Err()
}

// startOfDay retourne le début de la journée calendaire courante dans la zone
// donnée (nil = UTC). Même règle de découpage que le streak.
func startOfDay(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	n := now.In(loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
}

// CountToday compte les événements d'une source depuis le début de la journée
// calendaire de l'utilisateur (limite journalière des activités libres). La
// journée est découpée dans la même zone que le streak.
func CountToday(ctx context.Context, userID, source string, now time.Time, loc *time.Location) (int, error) {
	dayStart := startOfDay(now, loc)

	var count int
	err := database.DB.QueryRow(ctx, `
		SELECT COUNT(*) FROM activity_events
		WHERE user_id = $1 AND source = $2 AND occurred_at >= $3 AND voided_at IS NULL`,
		userID, source, dayStart,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("could not count events: %w", err)
	}
	return count, nil
}

// HasRecentInput cherche une activité libre au texte identique dans la fenêtre
// donnée (anti doublon involontaire)
func HasRecentInput(ctx context.Context, userID, input string, window time.Duration, now time.Time) (bool, error) {
	var exists bool
	err := database.DB.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM activity_events
			WHERE user_id = $1 AND source = $2
			AND LOWER(user_input) = LOWER($3)
			AND occurred_at >= $4 AND voided_at IS NULL
		)`,
		userID, model.SourceFreeform, input, now.UTC().Add(-window),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("could not check recent input: %w", err)
	}
	return exists, nil
}

// Void soft-voide un événement (correction) et retranche ses quantités des
// totaux cachés, dans la même transaction. L'événement reste en base pour
// l'audit ; les lectures dérivées l'ignorent. ownerID contraint l'UPDATE :
// un événement appartenant à un autre utilisateur n'est jamais touché.
func Void(ctx context.Context, eventID, ownerID, voidedBy string) error {
	if eventID == "" || ownerID == "" {
		return fmt.Errorf("%w: missing event or owner id", ErrMalformedEvent)
	}

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var e model.ActivityEvent
	err = tx.QueryRow(ctx, `
		UPDATE activity_events SET voided_at = NOW(), voided_by = $3
		WHERE id = $1 AND user_id = $2 AND voided_at IS NULL
		RETURNING user_id, xp_earned, co2_saved_kg, money_saved, source`,
		eventID, ownerID, voidedBy,
	).Scan(&e.UserID, &e.XPEarned, &e.CO2SavedKg, &e.MoneySaved, &e.Source)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("event not found or already voided")
		}
		return fmt.Errorf("could not void event: %w", err)
	}

	missions := 0
	if e.Source == model.SourceMission {
		missions = 1
	}

	_, err = tx.Exec(ctx, `
		UPDATE users SET
			total_xp = total_xp - $1,
			total_co2_saved_kg = total_co2_saved_kg - $2,
			total_money_saved = total_money_saved - $3,
			total_missions_completed = total_missions_completed - $4,
			updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL`,
		e.XPEarned, e.CO2SavedKg, e.MoneySaved, missions, e.UserID,
	)
	if err != nil {
		return fmt.Errorf("could not update user totals: %w", err)
	}

	return tx.Commit(ctx)
}
