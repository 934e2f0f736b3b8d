package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"neurolearn/internal/relay"

	"github.com/google/uuid"
)

func (s *Server) handleAnalyzeImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageBase64  string `json:"imageBase64"`
		LearningMode string `json:"learningMode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, "invalid request body")
		return
	}

	reqID := uuid.New().String()[:8]
	log.Printf("[Relay] %s analyzing image (mode=%q)\n", reqID, req.LearningMode)

	result, err := s.Analyzer.Analyze(r.Context(), req.ImageBase64, req.LearningMode)
	if err != nil {
		log.Printf("[Relay] %s error: %v\n", reqID, err)
		switch {
		case errors.Is(err, relay.ErrRateLimited):
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again in a moment.")
		case errors.Is(err, relay.ErrQuotaExceeded):
			writeError(w, http.StatusPaymentRequired, "Usage limit reached. Please try again later.")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
