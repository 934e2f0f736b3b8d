package server

import (
	"fmt"
	"log"
	"net/http"

	"neurolearn/internal/broadcast"
	"neurolearn/internal/config"
	"neurolearn/internal/events"
	"neurolearn/internal/kv"
	"neurolearn/internal/progress"
	"neurolearn/internal/relay"
	"neurolearn/internal/wshub"
)

func Run() error {
	appCfg := config.Load()

	store, err := openKV(appCfg)
	if err != nil {
		return err
	}
	defer store.Close()

	bus := events.NewBus()
	prog := progress.New(store, bus)
	hub := wshub.NewHub(broadcast.NewBroadcaster(bus))
	analyzer := relay.New(appCfg.AIGatewayURL, appCfg.AIGatewayKey, appCfg.AIModel, nil)

	srv := &Server{
		Progress: prog,
		Analyzer: analyzer,
		Hub:      hub,
		KV:       store,
	}

	addr := "0.0.0.0:" + appCfg.Port
	fmt.Printf("Server listening on http://localhost:%s\n", appCfg.Port)
	return http.ListenAndServe(addr, srv.Handler())
}

// openKV picks the Postgres backend when DATABASE_URL is set, falling
// back to the local SQLite file on connection failure.
func openKV(cfg config.Config) (kv.Store, error) {
	if cfg.DatabaseURL != "" {
		store, err := kv.ConnectPostgres(cfg.DatabaseURL)
		if err == nil {
			return store, nil
		}
		log.Printf("[KV] Failed to connect to Postgres: %v (falling back to SQLite)\n", err)
	}
	return kv.OpenSQLite(cfg.DataFile)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/mode", s.handleSetMode)
	mux.HandleFunc("POST /api/onboarded", s.handleSetOnboarded)
	mux.HandleFunc("POST /api/playback-speed", s.handleSetPlaybackSpeed)
	mux.HandleFunc("POST /api/progress", s.handleUpdateProgress)
	mux.HandleFunc("POST /api/xp", s.handleAddXP)
	mux.HandleFunc("POST /api/reset", s.handleReset)

	mux.HandleFunc("GET /api/lessons", s.handleLessonCatalog)
	mux.HandleFunc("POST /api/lessons/complete", s.handleCompleteLesson)
	mux.HandleFunc("GET /api/lessons/{subject}/questions", s.handleQuestions)
	mux.HandleFunc("POST /api/lessons/{subject}/answer", s.handleAnswer)

	mux.HandleFunc("GET /api/games", s.handleGames)
	mux.HandleFunc("GET /api/games/{id}/round", s.handleGameRound)
	mux.HandleFunc("POST /api/games/{id}/complete", s.handleGameComplete)

	mux.HandleFunc("GET /api/badges", s.handleBadges)

	mux.HandleFunc("POST /api/analyze-image", s.handleAnalyzeImage)

	mux.HandleFunc("GET /ws", s.handleWS)

	return withCORS(mux)
}

// withCORS allows every origin and answers preflights with an empty
// body, matching what the browser app expects.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
