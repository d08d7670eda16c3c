package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type askRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		s.respondError(w, http.StatusBadRequest, "question is required")
		return
	}
	if req.SessionID == "" {
		req.SessionID = "default"
	}
	s.logger.Debug("ask request", zap.String("session", req.SessionID))
	result, err := s.dispatcher.HandleQuestion(r.Context(), req.SessionID, req.Question)
	if err != nil {
		s.logger.Error("ask failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	turns, err := s.dispatcher.History(r.Context(), session)
	if err != nil {
		s.logger.Error("history fetch failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": session,
		"turns":      turns,
	})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	s.logger.Debug("clear history request", zap.String("session", session))
	if err := s.dispatcher.ClearHistory(r.Context(), session); err != nil {
		s.logger.Error("history clear failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"session_id": session, "status": "cleared"})
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	d := s.digest.Current()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"sources":            d.Sources,
		"num_chunks":         d.NumChunks,
		"truncated_sections": d.Truncated,
		"chars":              len([]rune(d.Text)),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
