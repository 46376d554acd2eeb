package main // Entry point package

import (
	"context"
	"log" // Logging library
	"time"

	"github.com/joho/godotenv"    // Optional .env loading
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/filmoteca/catalog-api/internal/config"
	"github.com/filmoteca/catalog-api/internal/database"
	"github.com/filmoteca/catalog-api/internal/handler"
	"github.com/filmoteca/catalog-api/internal/middleware"
	"github.com/filmoteca/catalog-api/internal/queue"
	"github.com/filmoteca/catalog-api/internal/repository"
	"github.com/filmoteca/catalog-api/internal/router"
	queuepublisher "github.com/filmoteca/catalog-api/internal/service"
	"github.com/filmoteca/catalog-api/internal/storage"
)

func main() {
	// Load environment variables from an optional .env file.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	// Connect to MongoDB and bootstrap indexes.
	db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongodb connect failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatalf("mongodb index bootstrap failed: %v", err)
	}
	cancel()

	// Repositories and upload storage.
	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	uploads, err := storage.NewUploadStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload dir init failed: %v", err)
	}

	// Response cache; a nil Redis client disables it without failing startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, response cache disabled")
	}
	cache := middleware.NewCache(config.LoadCacheConfig(), rdb)

	// Handlers.
	authHandler := handler.NewAuthHandler(cfg, users)
	movieHandler := handler.NewMovieHandler(movies)
	adminHandler := handler.NewMovieAdminHandler(movies, uploads, cache)
	adminHandler.PublishEvent = queuepublisher.PublishMovieChanged

	// Background consumer that appends catalog changes to logs/catalog.log.
	go queue.StartCatalogConsumer()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler)
	router.RegisterPublic(e, movieHandler, cache)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)
	router.RegisterUploads(e, uploads.Dir())

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
