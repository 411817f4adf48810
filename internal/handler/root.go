package handler

import (
	"net/http"

	"github.com/EcoBloomApp/EcoBloom-backend/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "EcoBloom API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/auth/login", "description": "Connexion utilisateur"},
				{"method": "POST", "path": "/auth/logout", "description": "Déconnexion utilisateur"},
				{"method": "POST", "path": "/auth/signup", "description": "Inscription utilisateur"},
				{"method": "POST", "path": "/auth/register", "description": "Inscription utilisateur (alias)"},
			},
			"users": []map[string]string{
				{"method": "POST", "path": "/users", "description": "Créer un utilisateur (sans session)"},
				{"method": "GET", "path": "/users", "description": "Récupérer tous les utilisateurs"},
				{"method": "GET", "path": "/users/{id}", "description": "Récupérer un utilisateur par ID"},
				{"method": "PUT", "path": "/users/{id}", "description": "Mettre à jour un utilisateur (nom, timezone)"},
				{"method": "DELETE", "path": "/users/{id}", "description": "Supprimer un utilisateur (soft delete)"},
				{"method": "POST", "path": "/users/{id}/avatar", "description": "Upload avatar utilisateur"},
				{"method": "GET", "path": "/users/{userId}/stats", "description": "Statistiques complètes (XP, plante, streak, équivalents)"},
				{"method": "GET", "path": "/users/{userId}/impact/projections", "description": "Projections d'impact (1 mois, 6 mois, 1 an)"},
				{"method": "GET", "path": "/users/{userId}/activities", "description": "Fil d'activités (params: limit, offset)"},
				{"method": "DELETE", "path": "/users/{userId}/activities/{eventId}", "description": "Annuler une activité enregistrée par erreur"},
			},
			"activities": []map[string]string{
				{"method": "POST", "path": "/activities/freeform", "description": "Enregistrer une action libre (texte)"},
				{"method": "POST", "path": "/activities/complete-mission", "description": "Compléter une mission (corps: mission_id)"},
				{"method": "POST", "path": "/activities/receipt-commitment", "description": "Enregistrer un engagement issu d'un ticket de caisse"},
				{"method": "GET", "path": "/activities/feed", "description": "Fil d'activité de l'utilisateur authentifié"},
			},
			"missions": []map[string]string{
				{"method": "GET", "path": "/missions", "description": "Missions de l'utilisateur (param: status)"},
				{"method": "GET", "path": "/missions/{id}", "description": "Récupérer une mission par ID"},
				{"method": "POST", "path": "/missions/{id}/complete", "description": "Compléter une mission"},
				{"method": "POST", "path": "/missions", "description": "Remplacer les missions disponibles (lot généré)"},
			},
			"leaderboard": []map[string]string{
				{"method": "GET", "path": "/leaderboard", "description": "Classement général par XP (params: period, limit)"},
				{"method": "GET", "path": "/leaderboard/users/{userId}", "description": "Rang all-time d'un utilisateur"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
		"documentation": map[string]string{
			"description": "API REST pour EcoBloom - Application d'actions écologiques du quotidien",
			"contact":     "support@ecobloom.app",
		},
	}

	utils.Success(w, routes)
}
