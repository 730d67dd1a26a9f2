package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/kotoba-learn/backend/internal/ai"
	"github.com/kotoba-learn/backend/internal/config"
	"github.com/kotoba-learn/backend/internal/progression"
	"github.com/kotoba-learn/backend/internal/quiz"
	"github.com/kotoba-learn/backend/internal/store"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.AI.Mock && cfg.AI.APIKey == "" {
		log.Fatal("ANTHROPIC_API_KEY is required unless AI_MOCK=true")
	}

	// Initialize database
	db, err := store.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services
	profiles := store.NewProfileStore(db)
	progressionSvc := progression.NewService(profiles)
	quizSvc := quiz.NewService(profiles)
	aiSvc := ai.NewService(ai.NewClient(cfg.AI), cfg.AI)

	progressionHandler := progression.NewHandler(progressionSvc)
	catalogHandler := progression.NewCatalogHandler()
	quizHandler := quiz.NewHandler(quizSvc)
	aiHandler := ai.NewHandler(aiSvc)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Profiles and learning
	api.HandleFunc("/profiles", progressionHandler.CreateProfile).Methods("POST")
	api.HandleFunc("/profiles/{id}", progressionHandler.GetProfile).Methods("GET")
	api.HandleFunc("/profiles/{id}/learn", progressionHandler.Learn).Methods("POST")
	api.HandleFunc("/profiles/{id}/unlearn", progressionHandler.Unlearn).Methods("POST")
	api.HandleFunc("/profiles/{id}/title", progressionHandler.SelectTitle).Methods("POST")

	// Daily missions
	api.HandleFunc("/profiles/{id}/missions", progressionHandler.Missions).Methods("GET")
	api.HandleFunc("/profiles/{id}/missions/claim", progressionHandler.ClaimMission).Methods("POST")

	// Achievements
	api.HandleFunc("/profiles/{id}/achievements/pending", progressionHandler.PendingAchievements).Methods("GET")
	api.HandleFunc("/profiles/{id}/achievements/notified", progressionHandler.MarkNotified).Methods("POST")
	api.HandleFunc("/profiles/{id}/achievements/upcoming", progressionHandler.UpcomingAchievements).Methods("GET")
	api.HandleFunc("/profiles/{id}/achievements/summary", progressionHandler.AchievementSummary).Methods("GET")

	// Quizzes
	api.HandleFunc("/profiles/{id}/quizzes", quizHandler.Start).Methods("POST")
	api.HandleFunc("/quizzes/{sessionId}", quizHandler.Get).Methods("GET")
	api.HandleFunc("/quizzes/{sessionId}/answers", quizHandler.Answer).Methods("POST")
	api.HandleFunc("/quizzes/{sessionId}/result", quizHandler.Result).Methods("POST")

	// Static catalog
	api.HandleFunc("/catalog/vocabulary", catalogHandler.Vocabulary).Methods("GET")
	api.HandleFunc("/catalog/vocabulary/{itemId}", catalogHandler.Item).Methods("GET")
	api.HandleFunc("/catalog/ranks", catalogHandler.Ranks).Methods("GET")
	api.HandleFunc("/catalog/achievements", catalogHandler.Achievements).Methods("GET")
	api.HandleFunc("/catalog/level-rewards", catalogHandler.LevelRewards).Methods("GET")
	api.HandleFunc("/catalog/streak-bonuses", catalogHandler.StreakBonuses).Methods("GET")

	// AI collaborator
	api.HandleFunc("/ai/examples", aiHandler.GenerateExamples).Methods("POST")
	api.HandleFunc("/ai/explanations", aiHandler.ExplainPhrase).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Printf("Server starting on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
