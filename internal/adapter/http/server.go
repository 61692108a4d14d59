// Package adapthttp implements the HTTP adapter for the application. It is
// the stand-in for the mobile presentation layer: every route maps onto one
// of the core store operations.
package adapthttp

import (
	"log/slog"
	"net/http"

	"promptpic/internal/app"
	"promptpic/internal/metrics"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	identity *app.IdentityService
	posts    *app.PostService
	prompts  *app.PromptService
	follows  *app.FollowService
	auth     *app.AuthService

	logger      *slog.Logger
	metrics     *metrics.Collector
	limiter     *rateLimiter
	oidc        *OIDC
	disableAuth bool
}

// New creates a Server wired to the given application services.
func New(identity *app.IdentityService, posts *app.PostService, prompts *app.PromptService, follows *app.FollowService, auth *app.AuthService) *Server {
	return &Server{
		identity: identity,
		posts:    posts,
		prompts:  prompts,
		follows:  follows,
		auth:     auth,
		logger:   slog.Default(),
	}
}

// SetLogger replaces the request logger.
func (s *Server) SetLogger(l *slog.Logger) { s.logger = l }

// SetMetrics enables the /metrics endpoint and HTTP instrumentation.
func (s *Server) SetMetrics(c *metrics.Collector) { s.metrics = c }

// SetRateLimit enables per-client request rate limiting.
func (s *Server) SetRateLimit(perMin, burst int) {
	s.limiter = newRateLimiter(perMin, burst)
}

// SetOIDC enables the SSO login flow.
func (s *Server) SetOIDC(o *OIDC) { s.oidc = o }

// DisableAuth turns off session checks. Tests only.
func (s *Server) DisableAuth() { s.disableAuth = true }

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("GET /api/profile", s.handleGetProfile)
	api.HandleFunc("PUT /api/profile", s.handleUpdateProfile)

	api.HandleFunc("GET /api/posts", s.handleListPosts)
	api.HandleFunc("POST /api/posts", s.handleCreatePost)
	api.HandleFunc("GET /api/posts/me", s.handleMyPosts)
	api.HandleFunc("GET /api/posts/today", s.handleTodaysPost)
	api.HandleFunc("DELETE /api/posts/{id}", s.handleDeletePost)
	api.HandleFunc("POST /api/posts/{id}/like", s.handleToggleLike)
	api.HandleFunc("GET /api/posts/{id}/liked", s.handleHasLiked)
	api.HandleFunc("POST /api/posts/{id}/comments", s.handleAddComment)

	api.HandleFunc("GET /api/following", s.handleFollowing)
	api.HandleFunc("POST /api/following/{username}", s.handleFollow)
	api.HandleFunc("DELETE /api/following/{username}", s.handleUnfollow)
	api.HandleFunc("GET /api/feed", s.handleFeed)

	root := http.NewServeMux()
	root.Handle("/api/", s.authMiddleware(api))

	// Public surface: health, account entry points, prompt browsing.
	root.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	root.HandleFunc("POST /api/auth/register", s.handleRegister)
	root.HandleFunc("POST /api/auth/login", s.handleLogin)
	root.HandleFunc("POST /api/auth/logout", s.handleLogout)
	root.HandleFunc("GET /api/auth/sso/login", s.handleSSOLogin)
	root.HandleFunc("GET /api/auth/sso/callback", s.handleSSOCallback)
	root.HandleFunc("GET /api/config", s.handleConfig)
	root.HandleFunc("GET /api/profile/username-available", s.handleUsernameAvailable)
	root.HandleFunc("GET /api/prompts/today", s.handleTodayPrompt)
	root.HandleFunc("GET /api/prompts/recent", s.handleRecentPrompts)
	root.HandleFunc("GET /api/prompts/{id}", s.handleGetPrompt)

	if s.metrics != nil {
		root.Handle("GET /metrics", s.metrics.Handler())
	}

	var h http.Handler = root
	if s.limiter != nil {
		h = s.limiter.middleware(h)
	}
	if s.metrics != nil {
		h = s.metricsMiddleware(h)
	}
	return s.loggingMiddleware(h)
}
