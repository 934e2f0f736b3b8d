package server

import (
	"encoding/json"
	"log"
	"net/http"

	"neurolearn/internal/kv"
	"neurolearn/internal/progress"
	"neurolearn/internal/relay"
	"neurolearn/internal/wshub"
)

type Server struct {
	Progress *progress.Store
	Analyzer *relay.Analyzer
	Hub      *wshub.Hub
	KV       kv.Store
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println(err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// State is the full client-visible snapshot.
type State struct {
	Mode          progress.Mode    `json:"mode"`
	Onboarded     bool             `json:"onboarded"`
	PlaybackSpeed float64          `json:"playbackSpeed"`
	Progress      progress.Learner `json:"progress"`
}

func (s *Server) state() State {
	return State{
		Mode:          s.Progress.Mode(),
		Onboarded:     s.Progress.Onboarded(),
		PlaybackSpeed: s.Progress.PlaybackSpeed(),
		Progress:      s.Progress.Progress(),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, _, err := s.KV.Get(kv.KeyMode); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "kv_error",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.Progress.SetMode(progress.Mode(req.Mode)); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]progress.Mode{"mode": s.Progress.Mode()})
}

func (s *Server) handleSetOnboarded(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Onboarded bool `json:"onboarded"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.Progress.SetOnboarded(req.Onboarded); err != nil {
		log.Printf("[Progress] SetOnboarded error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to save onboarding state")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"onboarded": req.Onboarded})
}

func (s *Server) handleSetPlaybackSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed float64 `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.Progress.SetPlaybackSpeed(req.Speed); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"playbackSpeed": req.Speed})
}

func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	var u progress.Update
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := s.Progress.UpdateProgress(u)
	if err != nil {
		log.Printf("[Progress] UpdateProgress error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to save progress")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleAddXP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := s.Progress.AddXP(req.Amount)
	if err != nil {
		log.Printf("[Progress] AddXP error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to save progress")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleCompleteLesson(w http.ResponseWriter, r *http.Request) {
	l, err := s.Progress.CompleteLesson()
	if err != nil {
		log.Printf("[Progress] CompleteLesson error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to save progress")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.Progress.ResetAll(); err != nil {
		log.Printf("[Progress] ResetAll error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to reset progress")
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}
