package adapthttp

import (
	"errors"
	"net/http"
	"time"

	"promptpic/internal/app"
	"promptpic/internal/domain"
)

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.Posts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Photo    string `json:"photo"`
		Caption  string `json:"caption"`
		PromptID int64  `json:"promptId"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.PromptID == 0 {
		body.PromptID = domain.LocalDayNumber(time.Now())
	}

	post, err := s.posts.AddPost(r.Context(), body.Photo, body.Caption, body.PromptID)
	var verr *app.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr)
		return
	}
	var dlerr *app.DailyLimitError
	if errors.As(err, &dlerr) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":          dlerr.Error(),
			"existingPostId": dlerr.ExistingPostID,
		})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) handleMyPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.UserPosts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleTodaysPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.posts.TodaysPost(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"hasPostedToday": post != nil,
		"post":           post,
	})
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	removed, err := s.posts.DeletePost(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, errors.New("post not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	toggled, err := s.posts.ToggleLike(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"toggled": toggled})
}

func (s *Server) handleHasLiked(w http.ResponseWriter, r *http.Request) {
	liked, err := s.posts.HasLikedPost(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"liked": liked})
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	added, err := s.posts.AddComment(r.Context(), r.PathValue("id"), body.Text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !added {
		writeError(w, http.StatusBadRequest, errors.New("comment rejected"))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"added": true})
}
