package adapthttp

import (
	"errors"
	"net/http"

	"promptpic/internal/app"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	// The session middleware already resolved the profile.
	if profile := profileFromContext(r.Context()); profile != nil {
		writeJSON(w, http.StatusOK, profile)
		return
	}

	profile, err := s.identity.CurrentUser(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, errors.New("no account"))
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username       *string `json:"username"`
		Password       *string `json:"password"`
		DisplayName    *string `json:"displayName"`
		ProfilePicture *string `json:"profilePicture"`
		Email          *string `json:"email"`
		Bio            *string `json:"bio"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	profile, err := s.identity.UpdateProfile(r.Context(), app.ProfileUpdate{
		Username:       body.Username,
		Credential:     body.Password,
		DisplayName:    body.DisplayName,
		ProfilePicture: body.ProfilePicture,
		Email:          body.Email,
		Bio:            body.Bio,
	})
	var verr *app.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, errors.New("no account"))
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUsernameAvailable(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing username"))
		return
	}

	available, err := s.identity.IsUsernameAvailable(r.Context(), username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"available": available})
}
