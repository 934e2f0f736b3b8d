package server

import (
	"encoding/json"
	"log"
	"net/http"

	"neurolearn/internal/badges"
	"neurolearn/internal/games"
	"neurolearn/internal/lessons"
	"neurolearn/internal/progress"
)

func (s *Server) handleLessonCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"grades":   lessons.Grades(),
		"subjects": lessons.Subjects,
	})
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	subject := r.PathValue("subject")
	writeJSON(w, http.StatusOK, map[string]any{
		"subject":   subject,
		"questions": lessons.Questions(subject),
	})
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	subject := r.PathValue("subject")

	var req struct {
		Question int `json:"question"`
		Option   int `json:"option"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	correct, ok := lessons.CheckAnswer(subject, req.Question, req.Option)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown question")
		return
	}

	awarded := 0
	if correct {
		awarded = lessons.CorrectAnswerXP
		if _, err := s.Progress.AddXP(awarded); err != nil {
			log.Printf("[Progress] AddXP error: %v\n", err)
			writeError(w, http.StatusInternalServerError, "failed to save progress")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"correct":   correct,
		"xpAwarded": awarded,
	})
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, games.All)
}

func (s *Server) handleGameRound(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	switch id {
	case "word-match":
		writeJSON(w, http.StatusOK, map[string]any{"pairs": games.MatchRound()})
	case "spell-word":
		writeJSON(w, http.StatusOK, map[string]any{"words": games.SpellRound()})
	case "unscramble":
		writeJSON(w, http.StatusOK, map[string]any{"words": games.UnscrambleRound()})
	default:
		writeError(w, http.StatusNotFound, "unknown game")
	}
}

func (s *Server) handleGameComplete(w http.ResponseWriter, r *http.Request) {
	game, ok := games.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown game")
		return
	}

	var req struct {
		Score int `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Score < 0 {
		writeError(w, http.StatusBadRequest, "score must be non-negative")
		return
	}

	if _, err := s.Progress.AddXP(req.Score * game.RewardXP); err != nil {
		log.Printf("[Progress] AddXP error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to save progress")
		return
	}

	played := s.Progress.Progress().GamesPlayed + 1
	l, err := s.Progress.UpdateProgress(progress.Update{GamesPlayed: &played})
	if err != nil {
		log.Printf("[Progress] UpdateProgress error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to save progress")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, badges.Evaluate(s.Progress.Progress()))
}
