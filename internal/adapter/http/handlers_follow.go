package adapthttp

import (
	"net/http"
)

func (s *Server) handleFollowing(w http.ResponseWriter, r *http.Request) {
	following, err := s.follows.Following(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"following": following})
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	added, err := s.follows.Follow(r.Context(), r.PathValue("username"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"followed": added})
}

func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	removed, err := s.follows.Unfollow(r.Context(), r.PathValue("username"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"unfollowed": removed})
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := s.follows.Feed(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}
