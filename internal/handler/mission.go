package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lib/pq"

	"github.com/EcoBloomApp/EcoBloom-backend/internal/database"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/middleware"
	model "github.com/EcoBloomApp/EcoBloom-backend/internal/models"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/scanner"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/utils"
)

const missionColumns = `
	id, user_id, title, description, category,
	co2_saved_kg, money_saved, xp_reward, mission_type, tips,
	status, completed_at, created_by, created_at, updated_at`

// getMissionForUser charge une mission en vérifiant qu'elle appartient bien à
// l'utilisateur
func getMissionForUser(ctx context.Context, missionID, userID string) (*model.Mission, error) {
	return scanner.ScanMission(database.DB.QueryRow(ctx, `
		SELECT`+missionColumns+`
		FROM missions
		WHERE id = $1 AND user_id = $2`,
		missionID, userID,
	))
}

// listAvailableMissions retourne les missions non encore complétées d'un
// utilisateur (entrée explicite de la projection meilleur cas)
func listAvailableMissions(ctx context.Context, userID string) ([]model.Mission, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT`+missionColumns+`
		FROM missions
		WHERE user_id = $1 AND status = $2
		ORDER BY co2_saved_kg DESC`,
		userID, model.MissionStatusAvailable,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var missions []model.Mission
	for rows.Next() {
		mission, err := scanner.ScanMission(rows)
		if err != nil {
			return nil, err
		}
		missions = append(missions, *mission)
	}
	return missions, rows.Err()
}

// GetMissions retourne toutes les missions de l'utilisateur authentifié
func GetMissions(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	query := `
		SELECT` + missionColumns + `
		FROM missions
		WHERE user_id = $1`
	args := []interface{}{user.ID}

	// Filtre optionnel ?status=available|completed
	if status := r.URL.Query().Get("status"); status != "" {
		if status != model.MissionStatusAvailable && status != model.MissionStatusCompleted {
			utils.ErrorSimple(w, http.StatusBadRequest, "unknown status filter: "+status)
			return
		}
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := database.DB.Query(r.Context(), query, args...)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query missions", err)
		return
	}
	defer rows.Close()

	var missions []model.Mission
	for rows.Next() {
		mission, err := scanner.ScanMission(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan mission row", err)
			return
		}
		missions = append(missions, *mission)
	}

	utils.Success(w, missions)
}

// GetMissionById retourne une mission par son ID
func GetMissionById(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	missionID := vars["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	mission, err := getMissionForUser(r.Context(), missionID, user.ID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "mission not found", err)
		return
	}

	utils.Success(w, mission)
}

type SeedMissionsRequest struct {
	Missions []model.Mission `json:"missions"`
}

// SeedMissions enregistre un lot de missions produites par le générateur
// externe. Les missions existantes encore disponibles sont remplacées.
func SeedMissions(w http.ResponseWriter, r *http.Request) {
	var req SeedMissionsRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	for _, m := range req.Missions {
		if !model.ValidCategory(m.Category) {
			utils.ErrorSimple(w, http.StatusBadRequest, "unknown mission category: "+m.Category)
			return
		}
		if m.XPReward < 0 || m.CO2SavedKg < 0 || m.MoneySaved < 0 {
			utils.ErrorSimple(w, http.StatusBadRequest, "mission quantities must be non-negative")
			return
		}
	}

	ctx := r.Context()

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not begin transaction", err)
		return
	}
	defer tx.Rollback(ctx)

	// Les missions complétées restent : leurs événements sont déjà au ledger
	_, err = tx.Exec(ctx,
		`DELETE FROM missions WHERE user_id=$1 AND status=$2`,
		user.ID, model.MissionStatusAvailable,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not clear available missions", err)
		return
	}

	inserted := make([]model.Mission, 0, len(req.Missions))
	for _, m := range req.Missions {
		m.UserID = user.ID
		m.Status = model.MissionStatusAvailable
		if m.MissionType == "" {
			m.MissionType = "one_time"
		}

		err := tx.QueryRow(ctx, `
			INSERT INTO missions(
				user_id, title, description, category, co2_saved_kg, money_saved,
				xp_reward, mission_type, tips, status, created_by, created_at, updated_at
			) VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
			RETURNING id, created_at, updated_at`,
			m.UserID, m.Title, m.Description, m.Category, m.CO2SavedKg, m.MoneySaved,
			m.XPReward, m.MissionType, pq.Array(m.Tips), m.Status, user.ID,
		).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not insert mission", err)
			return
		}
		inserted = append(inserted, m)
	}

	if err := tx.Commit(ctx); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not commit missions", err)
		return
	}

	utils.Success(w, inserted)
}
