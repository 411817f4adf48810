package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/EcoBloomApp/EcoBloom-backend/internal/database"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/engine"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/ledger"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/middleware"
	model "github.com/EcoBloomApp/EcoBloom-backend/internal/models"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/services"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/utils"
)

// Garde-fous des activités libres
const (
	minActivityTextLen   = 10
	maxActivityTextLen   = 200
	maxFreeformPerDay    = 20
	duplicateInputWindow = 4 * time.Hour
)

type FreeformActivityRequest struct {
	ActivityText string `json:"activity_text"`
	RequestID    string `json:"request_id,omitempty"` // clé d'idempotence optionnelle du client
}

type ReceiptCommitmentRequest struct {
	CommitmentRef string  `json:"commitment_ref"`
	Summary       string  `json:"summary"`
	Category      string  `json:"category"`
	CO2SavedKg    float64 `json:"co2_saved_kg"`
	MoneySaved    float64 `json:"money_saved"`
}

// ActivityResponse est le contrat de retour des trois variantes de complétion
type ActivityResponse struct {
	Success    bool    `json:"success"`
	XPEarned   int     `json:"xp_earned"`
	CO2SavedKg float64 `json:"co2_saved_kg,omitempty"`
	MoneySaved float64 `json:"money_saved,omitempty"`
	Summary    string  `json:"summary"`
	Emoji      string  `json:"emoji,omitempty"`
	Message    string  `json:"message,omitempty"`
}

// SubmitFreeformActivity enregistre une activité libre : le classifieur
// externe produit l'enregistrement canonique, le moteur calcule l'XP et
// l'économie, puis le ledger est alimenté
func SubmitFreeformActivity(w http.ResponseWriter, r *http.Request) {
	var req FreeformActivityRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	ctx := r.Context()
	text := strings.TrimSpace(req.ActivityText)

	if len(text) < minActivityTextLen {
		utils.ErrorSimple(w, http.StatusBadRequest, "activity description too short (min 10 characters)")
		return
	}
	if len(text) > maxActivityTextLen {
		utils.ErrorSimple(w, http.StatusBadRequest, "activity description too long (max 200 characters)")
		return
	}

	// Limite journalière, découpée dans la zone de l'utilisateur
	count, err := ledger.CountToday(ctx, user.ID, model.SourceFreeform, time.Now(), user.DayBoundaryLocation())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check daily limit", err)
		return
	}
	if count >= maxFreeformPerDay {
		utils.ErrorSimple(w, http.StatusTooManyRequests, "daily activity limit reached (20 per day)")
		return
	}

	// Texte identique déjà loggé récemment
	duplicate, err := ledger.HasRecentInput(ctx, user.ID, text, duplicateInputWindow, time.Now())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check recent activities", err)
		return
	}
	if duplicate {
		utils.ErrorSimple(w, http.StatusBadRequest, "similar activity already logged recently")
		return
	}

	if services.Classifier == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "activity classifier is not configured")
		return
	}

	classification, err := services.Classifier.Classify(ctx, text)
	if err != nil {
		utils.Error(w, http.StatusBadGateway, "could not classify activity", err)
		return
	}
	if classification.Confidence < 50 {
		utils.ErrorSimple(w, http.StatusBadRequest, "unable to recognize this as an eco-friendly activity, please be more specific")
		return
	}

	co2 := classification.CO2SavedKg
	if co2 > services.MaxCO2PerActivityKg {
		co2 = services.MaxCO2PerActivityKg
	}
	if co2 < 0 {
		co2 = 0
	}

	xp := engine.XPForActivity(co2, classification.Category)
	money := services.EstimateMoneySaved(classification.Category, co2)

	sourceRef := req.RequestID
	if sourceRef == "" {
		sourceRef = uuid.NewString()
	}

	event := model.ActivityEvent{
		UserID:     user.ID,
		OccurredAt: time.Now().UTC(),
		Category:   classification.Category,
		Summary:    classification.Summary,
		UserInput:  &text,
		Emoji:      classification.Emoji,
		XPEarned:   xp,
		CO2SavedKg: co2,
		MoneySaved: money,
		Source:     model.SourceFreeform,
		SourceRef:  sourceRef,
	}

	if _, err := ledger.Append(ctx, &event); err != nil {
		writeAppendError(w, err, event.Summary)
		return
	}

	utils.JSON(w, http.StatusOK, ActivityResponse{
		Success:    true,
		XPEarned:   xp,
		CO2SavedKg: co2,
		MoneySaved: money,
		Summary:    classification.Summary,
		Emoji:      classification.Emoji,
		Message:    fmt.Sprintf("Great job! You earned %d XP and saved %.1fkg CO2!", xp, co2),
	})
}

type CompleteMissionRequest struct {
	MissionID string `json:"mission_id"`
}

// missionEventRecorded indique si l'événement de complétion est compté au
// ledger, que ce soit par cet appel ou par un appel précédent rejoué : dans
// les deux cas la finalisation du statut de la mission doit avoir lieu
func missionEventRecorded(appendErr error) bool {
	return appendErr == nil || errors.Is(appendErr, ledger.ErrDuplicateEvent)
}

// CompleteMission complète une mission et crée l'événement correspondant.
// L'ID vient du chemin (/missions/{id}/complete) ou du corps (route historique
// /activities/complete-mission). Rejouer la même complétion est un no-op sûr :
// le ledger absorbe le doublon.
func CompleteMission(w http.ResponseWriter, r *http.Request) {
	missionID := mux.Vars(r)["id"]
	if missionID == "" {
		var req CompleteMissionRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		missionID = req.MissionID
	}
	if missionID == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing mission id")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	ctx := r.Context()

	mission, err := getMissionForUser(ctx, missionID, user.ID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "mission not found", err)
		return
	}

	event := model.ActivityEvent{
		UserID:     user.ID,
		OccurredAt: time.Now().UTC(),
		Category:   mission.Category,
		Summary:    mission.Title,
		Emoji:      services.CategoryEmoji(mission.Category),
		XPEarned:   mission.XPReward,
		CO2SavedKg: mission.CO2SavedKg,
		MoneySaved: mission.MoneySaved,
		Source:     model.SourceMission,
		SourceRef:  mission.ID,
	}

	_, appendErr := ledger.Append(ctx, &event)
	if !missionEventRecorded(appendErr) {
		writeAppendError(w, appendErr, mission.Title)
		return
	}

	// Marquer la mission complétée, y compris sur le chemin doublon : si la
	// mise à jour de statut a échoué après un premier append, le retry doit
	// pouvoir la terminer, sinon la mission resterait disponible et gonflerait
	// la projection meilleur cas. La clause status rend l'UPDATE idempotent.
	_, err = database.DB.Exec(ctx, `
		UPDATE missions SET status=$1, completed_at=NOW(), updated_at=NOW()
		WHERE id=$2 AND user_id=$3 AND status=$4`,
		model.MissionStatusCompleted, mission.ID, user.ID, model.MissionStatusAvailable,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update mission status", err)
		return
	}

	if appendErr != nil {
		utils.JSON(w, http.StatusOK, ActivityResponse{
			Success: true,
			Summary: mission.Title,
			Message: "already recorded",
		})
		return
	}

	utils.JSON(w, http.StatusOK, ActivityResponse{
		Success:    true,
		XPEarned:   mission.XPReward,
		CO2SavedKg: mission.CO2SavedKg,
		MoneySaved: mission.MoneySaved,
		Summary:    mission.Title,
		Emoji:      services.CategoryEmoji(mission.Category),
		Message:    fmt.Sprintf("Mission completed! +%d XP", mission.XPReward),
	})
}

// SubmitReceiptCommitment enregistre un engagement issu d'un ticket scanné.
// Les champs chiffrés arrivent déjà calculés par le pipeline externe de
// reconnaissance ; le moteur se contente d'alimenter le ledger.
func SubmitReceiptCommitment(w http.ResponseWriter, r *http.Request) {
	var req ReceiptCommitmentRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	if req.CommitmentRef == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing commitment_ref")
		return
	}
	if req.Summary == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing summary")
		return
	}

	xp := engine.XPForActivity(req.CO2SavedKg, req.Category)

	event := model.ActivityEvent{
		UserID:     user.ID,
		OccurredAt: time.Now().UTC(),
		Category:   req.Category,
		Summary:    req.Summary,
		Emoji:      services.CategoryEmoji(req.Category),
		XPEarned:   xp,
		CO2SavedKg: req.CO2SavedKg,
		MoneySaved: req.MoneySaved,
		Source:     model.SourceReceiptCommitment,
		SourceRef:  req.CommitmentRef,
	}

	if _, err := ledger.Append(r.Context(), &event); err != nil {
		writeAppendError(w, err, req.Summary)
		return
	}

	utils.JSON(w, http.StatusOK, ActivityResponse{
		Success:    true,
		XPEarned:   xp,
		CO2SavedKg: req.CO2SavedKg,
		MoneySaved: req.MoneySaved,
		Summary:    req.Summary,
		Emoji:      services.CategoryEmoji(req.Category),
		Message:    fmt.Sprintf("Commitment saved! +%d XP", xp),
	})
}

// GetActivityFeed retourne le fil d'activité de l'utilisateur (missions et
// activités libres confondues)
func GetActivityFeed(w http.ResponseWriter, r *http.Request) {
	// /users/{userId}/activities ou /activities/feed (utilisateur authentifié)
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		user, err := middleware.GetUserFromContext(r)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
			return
		}
		userID = user.ID
	}

	limit := utils.QueryInt(r, "limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := utils.QueryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	events, err := ledger.ListRecentForUser(r.Context(), userID, limit, offset)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch activities", err)
		return
	}

	now := time.Now()
	items := make([]model.FeedItem, 0, len(events))
	for _, e := range events {
		items = append(items, model.FeedItem{
			ID:         e.ID,
			Type:       e.Source,
			Summary:    e.Summary,
			Emoji:      e.Emoji,
			XPEarned:   e.XPEarned,
			CO2SavedKg: e.CO2SavedKg,
			MoneySaved: e.MoneySaved,
			TimeAgo:    utils.TimeAgo(e.OccurredAt, now),
			CreatedAt:  e.OccurredAt,
		})
	}

	utils.Success(w, items)
}

// VoidActivity soft-voide un événement enregistré par erreur. Les totaux sont
// retranchés, l'événement reste en base pour l'audit.
func VoidActivity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]
	eventID := vars["eventId"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}
	if user.ID != userID {
		utils.ErrorSimple(w, http.StatusForbidden, "you can only void your own activities")
		return
	}

	if err := ledger.Void(r.Context(), eventID, user.ID, user.ID); err != nil {
		utils.Error(w, http.StatusNotFound, "event not found or already voided", err)
		return
	}

	utils.Success(w, map[string]bool{"success": true})
}

// writeAppendError traduit la taxonomie du ledger en réponses HTTP. Un doublon
// n'est pas un échec : l'événement a déjà été compté une fois, c'est tout.
func writeAppendError(w http.ResponseWriter, err error, summary string) {
	switch {
	case errors.Is(err, ledger.ErrDuplicateEvent):
		utils.JSON(w, http.StatusOK, ActivityResponse{
			Success: true,
			Summary: summary,
			Message: "already recorded",
		})
	case errors.Is(err, ledger.ErrMalformedEvent):
		utils.Error(w, http.StatusBadRequest, "invalid activity", err)
	case errors.Is(err, ledger.ErrUnknownUser):
		utils.Error(w, http.StatusNotFound, "user not found", err)
	default:
		utils.Error(w, http.StatusInternalServerError, "could not record activity", err)
	}
}
