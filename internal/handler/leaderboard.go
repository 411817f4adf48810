package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/EcoBloomApp/EcoBloom-backend/internal/database"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/engine"
	model "github.com/EcoBloomApp/EcoBloom-backend/internal/models"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/utils"
)

// leaderboardStartDate calcule la date de début selon la période demandée
func leaderboardStartDate(period string, now time.Time) time.Time {
	switch period {
	case "daily":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "weekly":
		return now.AddDate(0, 0, -7)
	case "monthly":
		return now.AddDate(0, 0, -30)
	default:
		return time.Time{}
	}
}

// GetLeaderboard récupère le classement général par XP
func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	period := query.Get("period") // daily, weekly, monthly, all-time
	if period == "" {
		period = "all-time"
	}

	limit := utils.QueryInt(r, "limit", 50)
	if limit < 1 || limit > 100 {
		limit = 50
	}

	ctx := r.Context()

	var sqlQuery string
	var args []interface{}

	if period == "all-time" {
		// Le total cumulé vit déjà sur le profil utilisateur
		sqlQuery = `
			SELECT
				u.id,
				u.name,
				u.avatar,
				ROW_NUMBER() OVER (ORDER BY u.total_xp DESC, u.created_at ASC) as rank,
				u.total_xp,
				u.total_co2_saved_kg
			FROM users u
			WHERE u.deleted_at IS NULL
			ORDER BY rank
			LIMIT $1
		`
		args = []interface{}{limit}
	} else {
		startDate := leaderboardStartDate(period, time.Now())
		sqlQuery = `
			WITH user_scores AS (
				SELECT
					e.user_id,
					SUM(e.xp_earned) as xp,
					SUM(e.co2_saved_kg) as co2
				FROM activity_events e
				WHERE e.occurred_at >= $1 AND e.voided_at IS NULL
				GROUP BY e.user_id
			),
			ranked_users AS (
				SELECT
					us.user_id,
					us.xp,
					us.co2,
					ROW_NUMBER() OVER (ORDER BY us.xp DESC) as rank
				FROM user_scores us
			)
			SELECT
				ru.user_id,
				u.name,
				u.avatar,
				ru.rank,
				ru.xp,
				ru.co2
			FROM ranked_users ru
			INNER JOIN users u ON ru.user_id = u.id
			WHERE u.deleted_at IS NULL
			ORDER BY ru.rank
			LIMIT $2
		`
		args = []interface{}{startDate, limit}
	}

	rows, err := database.DB.Query(ctx, sqlQuery, args...)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query leaderboard", err)
		return
	}
	defer rows.Close()

	leaderboard := []model.LeaderboardEntry{}
	for rows.Next() {
		var entry model.LeaderboardEntry
		if err := rows.Scan(
			&entry.UserID, &entry.UserName, &entry.Avatar,
			&entry.Rank, &entry.TotalXP, &entry.CO2SavedKg,
		); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan leaderboard row", err)
			return
		}

		entry.PlantStage = engine.PlantStageFor(entry.TotalXP).StageName

		leaderboard = append(leaderboard, entry)
	}

	utils.Success(w, leaderboard)
}

// GetUserRank récupère le rang d'un utilisateur dans le classement all-time
func GetUserRank(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	ctx := r.Context()

	sqlQuery := `
		WITH ranked_users AS (
			SELECT
				u.id,
				u.total_xp,
				ROW_NUMBER() OVER (ORDER BY u.total_xp DESC, u.created_at ASC) as rank
			FROM users u
			WHERE u.deleted_at IS NULL
		),
		total_count AS (
			SELECT COUNT(*) as total FROM ranked_users
		)
		SELECT
			ru.rank,
			ru.total_xp,
			(SELECT total FROM total_count) as total_users
		FROM ranked_users ru
		WHERE ru.id = $1
	`

	var userRank model.UserRank
	userRank.UserID = userID

	err := database.DB.QueryRow(ctx, sqlQuery, userID).Scan(
		&userRank.Rank, &userRank.TotalXP, &userRank.TotalUsers,
	)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "user not found in leaderboard", err)
		return
	}

	if userRank.TotalUsers > 0 {
		userRank.Percentile = float64(userRank.Rank) / float64(userRank.TotalUsers) * 100
	}

	utils.Success(w, userRank)
}
