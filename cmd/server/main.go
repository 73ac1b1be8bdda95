package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"watchlist/internal/auth"
	"watchlist/internal/database"
	"watchlist/internal/handlers"
	"watchlist/internal/repository/mongodb"
	"watchlist/internal/repository/sqlite"
	"watchlist/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly
	godotenv.Load()

	mongoURI := getEnv("MONGODB_URI", "mongodb://localhost:27017")
	mongoDatabase := getEnv("MONGODB_DATABASE", "watchlist_db")
	dbPath := getEnv("DATABASE_PATH", "./watchlist.db")
	port := getEnv("PORT", "8080")
	auth0Domain := getEnv("AUTH0_DOMAIN", "")
	auth0Audience := getEnv("AUTH0_AUDIENCE", "")
	tmdbAPIKey := getEnv("TMDB_API_KEY", "")

	if auth0Domain == "" || auth0Audience == "" {
		log.Fatal("AUTH0_DOMAIN and AUTH0_AUDIENCE environment variables are required")
	}

	if tmdbAPIKey == "" {
		log.Fatal("TMDB_API_KEY environment variable is required")
	}

	// Initialize the document store
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoDB, disconnect, err := database.ConnectMongo(ctx, mongoURI, mongoDatabase)
	if err != nil {
		log.Fatal("MongoDB connection failed:", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := disconnect(shutdownCtx); err != nil {
			log.Println("MongoDB disconnect failed:", err)
		}
	}()

	// Initialize the relational store for the shared demo
	db, err := database.Connect(dbPath)
	if err != nil {
		log.Fatal("Database connection failed:", err)
	}
	defer db.Close()

	sharedRepo := sqlite.NewSharedWatchlistRepository(db)
	if err := sharedRepo.InitSchema(); err != nil {
		log.Fatal("Schema setup failed:", err)
	}

	// Initialize auth middleware
	authMiddleware, err := auth.NewMiddleware(auth0Domain, auth0Audience)
	if err != nil {
		log.Fatal("Failed to create auth middleware:", err)
	}

	// Initialize TMDB client and repositories
	tmdbClient := services.NewTMDBClient(tmdbAPIKey)
	userRepo := mongodb.NewUserRepository(mongoDB)
	movieRepo := mongodb.NewMovieRepository(mongoDB, tmdbClient)
	watchlistRepo := mongodb.NewWatchlistRepository(mongoDB)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userRepo)
	movieHandler := handlers.NewMovieHandler(movieRepo)
	watchlistHandler := handlers.NewWatchlistHandler(watchlistRepo)
	sharedHandler := handlers.NewSharedWatchlistHandler(sharedRepo)

	// Setup router using standard library ServeMux
	mux := http.NewServeMux()

	// Health check (no auth required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Create auth middleware wrapper
	requireAuth := auth.RequireAuth(authMiddleware)

	// User routes
	mux.HandleFunc("GET /api/me", requireAuth(http.HandlerFunc(userHandler.GetCurrentUser)).ServeHTTP)
	mux.HandleFunc("DELETE /api/me", requireAuth(http.HandlerFunc(userHandler.RemoveCurrentUser)).ServeHTTP)
	mux.HandleFunc("GET /api/me/friends", requireAuth(http.HandlerFunc(userHandler.GetFriends)).ServeHTTP)
	mux.HandleFunc("POST /api/me/friends/{id}", requireAuth(http.HandlerFunc(userHandler.AddFriend)).ServeHTTP)
	mux.HandleFunc("DELETE /api/me/friends/{id}", requireAuth(http.HandlerFunc(userHandler.RemoveFriend)).ServeHTTP)
	mux.HandleFunc("GET /api/users", requireAuth(http.HandlerFunc(userHandler.SearchUsers)).ServeHTTP)
	mux.HandleFunc("GET /api/users/{id}", requireAuth(http.HandlerFunc(userHandler.GetUser)).ServeHTTP)

	// Movie routes
	mux.HandleFunc("GET /api/movies", requireAuth(http.HandlerFunc(movieHandler.GetMovies)).ServeHTTP)
	mux.HandleFunc("GET /api/movies/search", requireAuth(http.HandlerFunc(movieHandler.SearchMovie)).ServeHTTP)
	mux.HandleFunc("GET /api/movies/recommendations", requireAuth(http.HandlerFunc(movieHandler.GetRecommendations)).ServeHTTP)
	mux.HandleFunc("GET /api/movies/{id}", requireAuth(http.HandlerFunc(movieHandler.GetMovie)).ServeHTTP)
	mux.HandleFunc("DELETE /api/movies/{id}", requireAuth(http.HandlerFunc(movieHandler.DeleteMovie)).ServeHTTP)

	// Watchlist routes
	mux.HandleFunc("GET /api/watchlists", requireAuth(http.HandlerFunc(watchlistHandler.GetWatchlists)).ServeHTTP)
	mux.HandleFunc("POST /api/watchlists", requireAuth(http.HandlerFunc(watchlistHandler.CreateWatchlist)).ServeHTTP)
	mux.HandleFunc("GET /api/watchlists/{id}", requireAuth(http.HandlerFunc(watchlistHandler.GetWatchlist)).ServeHTTP)
	mux.HandleFunc("DELETE /api/watchlists/{id}", requireAuth(http.HandlerFunc(watchlistHandler.DeleteWatchlist)).ServeHTTP)
	mux.HandleFunc("POST /api/watchlists/{id}/collaborators", requireAuth(http.HandlerFunc(watchlistHandler.AddCollaborator)).ServeHTTP)
	mux.HandleFunc("GET /api/watchlists/{id}/items/{movieId}", requireAuth(http.HandlerFunc(watchlistHandler.GetItem)).ServeHTTP)
	mux.HandleFunc("POST /api/watchlists/{id}/items/{movieId}", requireAuth(http.HandlerFunc(watchlistHandler.AddItem)).ServeHTTP)
	mux.HandleFunc("DELETE /api/watchlists/{id}/items/{movieId}", requireAuth(http.HandlerFunc(watchlistHandler.RemoveItem)).ServeHTTP)
	mux.HandleFunc("POST /api/watchlists/{id}/items/{movieId}/watched", requireAuth(http.HandlerFunc(watchlistHandler.MarkItemWatched)).ServeHTTP)

	// Legacy shared demo routes (no auth, like the original demo)
	mux.HandleFunc("GET /api/shared", sharedHandler.GetEntries)
	mux.HandleFunc("POST /api/shared", sharedHandler.AddEntry)
	mux.HandleFunc("DELETE /api/shared/{id}", sharedHandler.DeleteEntry)

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
