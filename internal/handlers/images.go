package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/imgstore/api/internal/storage"
	"github.com/imgstore/api/models"
)

const maxUploadSize = 10 << 20 // 10MB

// ImagesHandler serves the image collection: GET lists all records newest
// first, DELETE removes one by the id query parameter. Everything else is 405.
func ImagesHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB, bucket *storage.Bucket) {
	switch r.Method {
	case http.MethodGet:
		listImages(w, r, db)
	case http.MethodDelete:
		deleteImage(w, r, db, bucket)
	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func listImages(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	var images []models.Image
	if result := db.Order("created_at DESC").Find(&images); result.Error != nil {
		log.Println("Failed to fetch images:", result.Error)
		respondError(w, http.StatusInternalServerError, "Failed to fetch images")
		return
	}
	if images == nil {
		images = []models.Image{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    images,
	})
}

func deleteImage(w http.ResponseWriter, r *http.Request, db *gorm.DB, bucket *storage.Bucket) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "Image ID is required")
		return
	}

	var image models.Image
	if result := db.Select("url").Where("id = ?", id).First(&image); result.Error != nil {
		log.Println("Image lookup failed:", result.Error)
		respondError(w, http.StatusNotFound, "Image not found")
		return
	}

	// Best effort: a failed object removal is logged and the row is
	// deleted anyway. The two steps are not transactional.
	key := storage.ObjectKeyFromURL(image.URL)
	if err := bucket.Remove(r.Context(), key); err != nil {
		log.Printf("Failed to remove object %s: %v", key, err)
	}

	if result := db.Where("id = ?", id).Delete(&models.Image{}); result.Error != nil {
		log.Println("Failed to delete image:", result.Error)
		respondError(w, http.StatusInternalServerError, "Failed to delete image")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Image deleted successfully",
	})
}

func UploadImageHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB, bucket *storage.Bucket) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "File must be an image")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(w, http.StatusBadRequest, "File must be an image")
		return
	}
	if header.Size > maxUploadSize {
		respondError(w, http.StatusBadRequest, "File size must be less than 10MB")
		return
	}

	id := uuid.New().String()
	name := filepath.Base(header.Filename)
	if name == "" || name == "." {
		name = fmt.Sprintf("image_%s", id)
	}
	key := fmt.Sprintf("images/%s_%s", id, name)

	if err := bucket.Put(r.Context(), key, file, contentType); err != nil {
		log.Println("Failed to upload object:", err)
		respondError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}
	log.Printf("Image uploaded to bucket: %s", key)

	image := models.Image{
		ID:   id,
		Name: name,
		URL:  bucket.URL(key),
		Size: header.Size,
		Type: contentType,
	}
	if result := db.Create(&image); result.Error != nil {
		// The object stays in the bucket; nothing rolls it back.
		log.Println("Failed to save image metadata:", result.Error)
		respondError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    image,
	})
}

// GetImageByIDHandler streams the stored image bytes for one record.
func GetImageByIDHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB, bucket *storage.Bucket) {
	id := chi.URLParam(r, "id")

	var image models.Image
	if result := db.Where("id = ?", id).First(&image); result.Error != nil {
		log.Println("Image lookup failed:", result.Error)
		respondError(w, http.StatusNotFound, "Image not found")
		return
	}

	obj, err := bucket.Get(r.Context(), storage.ObjectKeyFromURL(image.URL))
	if err != nil {
		log.Println("Failed to get object:", err)
		respondError(w, http.StatusInternalServerError, "Failed to retrieve image")
		return
	}
	defer obj.Close()

	w.Header().Set("Content-Type", image.Type)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%s", image.Name))
	if _, err := io.Copy(w, obj); err != nil {
		log.Println("Failed to stream object:", err)
	}
}
