package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/imgstore/api/internal/handlers"
	mw "github.com/imgstore/api/internal/middleware"
	"github.com/imgstore/api/internal/storage"
	"github.com/imgstore/api/models"
)

func main() {
	// Initialize environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	// Chi
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(mw.Recover)

	// Database connection
	dsn := os.Getenv("DSN")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate models
	if err := db.AutoMigrate(&models.Image{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	// R2 bucket
	bucket, err := storage.New(context.Background(), storage.Config{
		AccountID:       os.Getenv("ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("ACCESS_KEY_ID"),
		AccessKeySecret: os.Getenv("ACCESS_KEY_SECRET"),
		Bucket:          os.Getenv("BUCKET_NAME"),
		PublicBaseURL:   os.Getenv("PUBLIC_BUCKET_URL"),
	})
	if err != nil {
		log.Fatal("Failed to configure object storage:", err)
	}

	r.Get("/", handlers.RootHandler)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		handlers.HealthHandler(w, r, db)
	})

	// Image API routes
	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(
			20,
			1*time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
		))
		r.Post("/upload", func(w http.ResponseWriter, r *http.Request) {
			handlers.UploadImageHandler(w, r, db, bucket)
		})
		r.HandleFunc("/images", func(w http.ResponseWriter, r *http.Request) {
			handlers.ImagesHandler(w, r, db, bucket)
		})
		r.Get("/images/{id}", func(w http.ResponseWriter, r *http.Request) {
			handlers.GetImageByIDHandler(w, r, db, bucket)
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Println("Starting API server on :" + port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%s", port), r))
}
