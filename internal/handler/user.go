package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"golang.org/x/crypto/bcrypt"

	"github.com/EcoBloomApp/EcoBloom-backend/internal/database"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/ledger"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/middleware"
	model "github.com/EcoBloomApp/EcoBloom-backend/internal/models"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/scanner"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/services"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/stats"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/utils"
)

// userColumns est la liste canonique : l'ordre doit suivre scanner.ScanUserProfile
const userColumns = `
	id, name, email, avatar, timezone, provider,
	total_xp, total_co2_saved_kg, total_money_saved, total_missions_completed,
	join_date, created_at, updated_at, created_by, updated_by`

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Timezone string `json:"timezone,omitempty"`
}

// CreateUser crée un utilisateur sans ouvrir de session (outillage/admin).
// Le parcours normal d'inscription passe par /auth/signup.
func CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	ctx := r.Context()
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password", err)
		return
	}

	var userID string
	err = database.DB.QueryRow(ctx,
		`INSERT INTO users(name, email, password_hash, timezone, provider,
			total_xp, total_co2_saved_kg, total_money_saved, total_missions_completed,
			join_date, created_at, updated_at)
		 VALUES($1, $2, $3, NULLIF($4, ''), 'email', 0, 0, 0, 0, NOW(), NOW(), NOW())
		 RETURNING id`,
		req.Name, strings.ToLower(strings.TrimSpace(req.Email)), string(hashed), req.Timezone,
	).Scan(&userID)
	if err != nil {
		utils.Error(w, http.StatusConflict, "could not create user", err)
		return
	}

	user, err := stats.GetUser(ctx, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load user", err)
		return
	}

	utils.Success(w, user)
}

func GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rows, err := database.DB.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE deleted_at IS NULL ORDER BY created_at DESC`,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query users", err)
		return
	}
	defer rows.Close()

	users := []model.UserProfile{}
	for rows.Next() {
		u, err := scanner.ScanUserProfile(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan user row", err)
			return
		}
		users = append(users, *u)
	}

	utils.Success(w, users)
}

func GetUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	user, err := stats.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrUnknownUser) {
			utils.Error(w, http.StatusNotFound, "user not found", err)
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not get user", err)
		return
	}

	utils.Success(w, user)
}

// UpdateUser met à jour le profil (jamais les totaux : ils appartiennent au ledger)
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var payload struct {
		Name     string `json:"name"`
		Timezone string `json:"timezone"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	caller, err := middleware.GetUserFromContext(r)
	if err != nil || !middleware.IsOwner(r, id) {
		utils.ErrorSimple(w, http.StatusForbidden, "you can only update your own profile")
		return
	}

	ctx := r.Context()
	res, err := database.DB.Exec(ctx,
		`UPDATE users SET name=COALESCE(NULLIF($1,''), name), timezone=NULLIF($2,''),
			updated_at=NOW(), updated_by=$3
		 WHERE id=$4 AND deleted_at IS NULL`,
		payload.Name, payload.Timezone, caller.ID, id,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update user", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "user not found")
		return
	}

	user, err := stats.GetUser(ctx, id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch updated user", err)
		return
	}

	utils.Success(w, user)
}

func DeleteUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	caller, err := middleware.GetUserFromContext(r)
	if err != nil || !middleware.IsOwner(r, id) {
		utils.ErrorSimple(w, http.StatusForbidden, "you can only delete your own account")
		return
	}

	// Soft delete : la ligne et son ledger restent auditables
	ctx := r.Context()
	res, err := database.DB.Exec(ctx,
		`UPDATE users SET deleted_at=NOW(), deleted_by=$2
		 WHERE id=$1 AND deleted_at IS NULL`,
		id, caller.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete user", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "user not found or already deleted")
		return
	}

	utils.Success(w, map[string]bool{"success": true})
}

// UploadAvatar gère l'upload d'avatar utilisateur via Cloudinary
func UploadAvatar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	if !middleware.IsOwner(r, userID) {
		utils.ErrorSimple(w, http.StatusForbidden, "you can only update your own avatar")
		return
	}

	// Limiter la taille du fichier à 10MB
	r.ParseMultipartForm(10 << 20)

	file, handler, err := r.FormFile("avatar")
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	contentType := handler.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		utils.ErrorSimple(w, http.StatusBadRequest, "only image uploads are allowed")
		return
	}

	if services.Cloudinary == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "avatar storage is not configured")
		return
	}

	ctx := r.Context()
	avatarURL, err := services.Cloudinary.UploadAvatar(ctx, file, userID, handler.Filename)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload avatar", err)
		return
	}

	_, err = database.DB.Exec(ctx,
		`UPDATE users SET avatar=$1, updated_at=NOW() WHERE id=$2 AND deleted_at IS NULL`,
		avatarURL, userID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update avatar", err)
		return
	}

	user, err := stats.GetUser(ctx, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch updated user", err)
		return
	}

	utils.Success(w, user)
}
