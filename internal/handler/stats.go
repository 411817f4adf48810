package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/EcoBloomApp/EcoBloom-backend/internal/ledger"
	model "github.com/EcoBloomApp/EcoBloom-backend/internal/models"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/stats"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/utils"
)

// GetUserStats retourne la photographie complète des statistiques : XP/niveau,
// palier de plante, streak, impact cumulé et équivalents. Recalculée à chaque
// requête depuis le ledger ; le paramètre recompute force la resommation des
// cumuls (vérification du cache)
func GetUserStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	recompute := r.URL.Query().Get("recompute") == "true"

	snapshot, err := stats.SnapshotForUser(r.Context(), userID, recompute)
	if err != nil {
		if errors.Is(err, ledger.ErrUnknownUser) {
			utils.Error(w, http.StatusNotFound, "user not found", err)
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not compute stats", err)
		return
	}

	utils.JSON(w, http.StatusOK, model.StatsResponse{Success: true, Stats: snapshot})
}
