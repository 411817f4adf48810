package api

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/gorilla/mux"

	"github.com/EcoBloomApp/EcoBloom-backend/internal/handler"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/middleware"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/utils"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.OptionalAuth)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)
	authenticatedRoutes.Use(middleware.LoggerMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)
	r.HandleFunc("/auth/signup", handler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)

	// Users
	r.HandleFunc("/users", handler.CreateUser).Methods(http.MethodPost)
	r.HandleFunc("/users", handler.GetUsers).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/{id}", handler.UpdateUser).Methods(http.MethodPut, http.MethodPatch)
	authenticatedRoutes.HandleFunc("/users/{id}", handler.DeleteUser).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/users/{id}/avatar", handler.UploadAvatar).Methods(http.MethodPost)

	// Stats & projections (lecture seule, dérivées du ledger)
	r.HandleFunc("/users/{userId}/stats", handler.GetUserStats).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}/impact/projections", handler.GetImpactProjections).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}/activities", handler.GetActivityFeed).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/{userId}/activities/{eventId}", handler.VoidActivity).Methods(http.MethodDelete)

	// Activities (écritures dans le ledger)
	authenticatedRoutes.HandleFunc("/activities/freeform", handler.SubmitFreeformActivity).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/activities/complete-mission", handler.CompleteMission).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/activities/receipt-commitment", handler.SubmitReceiptCommitment).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/activities/feed", handler.GetActivityFeed).Methods(http.MethodGet)

	// Missions
	authenticatedRoutes.HandleFunc("/missions", handler.GetMissions).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/missions", handler.SeedMissions).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/missions/{id}", handler.GetMissionById).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/missions/{id}/complete", handler.CompleteMission).Methods(http.MethodPost)

	// Leaderboard
	r.HandleFunc("/leaderboard", handler.GetLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard/users/{userId}", handler.GetUserRank).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
