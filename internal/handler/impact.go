package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/EcoBloomApp/EcoBloom-backend/internal/ledger"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/projection"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/stats"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/utils"
)

// GetImpactProjections retourne les projections d'impact de la page Future
// Impact : rythme courant, meilleur cas, ventilation par catégorie et top
// actions. Les missions disponibles sont chargées ici et passées explicitement
// au calcul
func GetImpactProjections(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	ctx := r.Context()

	user, err := stats.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ledger.ErrUnknownUser) {
			utils.Error(w, http.StatusNotFound, "user not found", err)
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not load user", err)
		return
	}

	events, err := ledger.ListForUser(ctx, userID, nil)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch activities", err)
		return
	}

	missions, err := listAvailableMissions(ctx, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch available missions", err)
		return
	}

	result := projection.Compute(events, missions, user.DayBoundaryLocation(), time.Now())

	utils.JSON(w, http.StatusOK, result)
}
