package handler

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/EcoBloomApp/EcoBloom-backend/internal/database"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/stats"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/utils"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Timezone string `json:"timezone,omitempty"` // zone IANA, optionnelle
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := r.Context()

	var userID, hashedPassword string
	err := database.DB.QueryRow(ctx,
		`SELECT id, password_hash FROM users WHERE email=$1 AND deleted_at IS NULL`,
		strings.ToLower(strings.TrimSpace(req.Email)),
	).Scan(&userID, &hashedPassword)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	user, err := stats.GetUser(ctx, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load user", err)
		return
	}

	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("Authorization")
	if token == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing token")
		return
	}

	if err := utils.InvalidateSession(r.Context(), token); err != nil {
		utils.Error(w, http.StatusNotFound, "session not found or already logged out", err)
		return
	}

	utils.Success(w, map[string]bool{"success": true})
}

// Register (alias de Signup pour correspondre à l'API du client)
func Register(w http.ResponseWriter, r *http.Request) {
	Signup(w, r)
}

func Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if payload.Name == "" || payload.Email == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "name and email are required")
		return
	}
	if len(payload.Password) < 8 {
		utils.ErrorSimple(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	ctx := r.Context()
	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password", err)
		return
	}

	// Les cumuls démarrent à zéro : ils ne bougent ensuite qu'au fil du ledger
	var userID string
	err = database.DB.QueryRow(ctx,
		`INSERT INTO users(name, email, password_hash, timezone, provider,
			total_xp, total_co2_saved_kg, total_money_saved, total_missions_completed,
			join_date, created_at, updated_at)
		 VALUES($1, $2, $3, NULLIF($4, ''), 'email', 0, 0, 0, 0, NOW(), NOW(), NOW())
		 RETURNING id`,
		payload.Name, strings.ToLower(strings.TrimSpace(payload.Email)), string(hashed), payload.Timezone,
	).Scan(&userID)
	if err != nil {
		utils.Error(w, http.StatusConflict, "could not create user", err)
		return
	}

	// L'utilisateur se crée lui-même
	if _, err := database.DB.Exec(ctx,
		`UPDATE users SET created_by=$1 WHERE id=$1`,
		userID,
	); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update created_by", err)
		return
	}

	user, err := stats.GetUser(ctx, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load user", err)
		return
	}

	// Auto-login après inscription
	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}
