package adapthttp

import (
	"errors"
	"net/http"
	"strconv"
)

func (s *Server) handleTodayPrompt(w http.ResponseWriter, r *http.Request) {
	prompt, err := s.prompts.TodayPrompt(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, prompt)
}

func (s *Server) handleRecentPrompts(w http.ResponseWriter, r *http.Request) {
	n := intQuery(r, "limit", 7)
	if n > 30 {
		n = 30
	}

	prompts, err := s.prompts.RecentPrompts(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, prompts)
}

func (s *Server) handleGetPrompt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid prompt id"))
		return
	}

	prompt, err := s.prompts.Prompt(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if prompt == nil {
		writeError(w, http.StatusNotFound, errors.New("prompt not found"))
		return
	}
	writeJSON(w, http.StatusOK, prompt)
}
