package handlers

import (
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"
)

func HealthHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if err := db.Exec("SELECT 1").Error; err != nil {
		log.Println("Health check failed:", err)
		respondJSON(w, http.StatusOK, map[string]string{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"database": "connected",
	})
}

func RootHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"time":    time.Now().UTC(),
		"message": "Image Store API is running",
	})
}
