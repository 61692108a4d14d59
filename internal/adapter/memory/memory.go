// Package memory implements in-memory repositories. This is the default
// backend: the stores the app ships with are memory-only and reset on
// restart.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"promptpic/internal/domain"
)

// DB holds all in-process state and implements the post repository port.
// The profile, follow, and session ports are views created with
// NewProfileRepo, NewFollowRepo, and NewSessionRepo over the same state.
type DB struct {
	mu       sync.Mutex
	posts    []*domain.Post // newest first
	profile  *domain.Profile
	follows  map[string]map[string]bool // follower -> followee set
	sessions map[string]*domain.Session
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		follows:  make(map[string]map[string]bool),
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.PostRepository = (*DB)(nil)
var _ domain.ProfileRepository = (*ProfileRepo)(nil)
var _ domain.FollowRepository = (*FollowRepo)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- PostRepository ---

// Insert prepends a post, so iteration order is newest first.
func (db *DB) Insert(ctx context.Context, p *domain.Post) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.posts {
		if existing.ID == p.ID {
			return errors.New("duplicate post id")
		}
	}
	db.posts = append([]*domain.Post{clonePost(p)}, db.posts...)
	return nil
}

// Get returns a copy of the post, or nil when absent.
func (db *DB) Get(ctx context.Context, id string) (*domain.Post, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if p := db.find(id); p != nil {
		return clonePost(p), nil
	}
	return nil, nil
}

// List returns a defensive copy of the whole collection, newest first.
func (db *DB) List(ctx context.Context) ([]domain.Post, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Post, 0, len(db.posts))
	for _, p := range db.posts {
		out = append(out, *clonePost(p))
	}
	return out, nil
}

// ListByAuthor returns the author's posts, newest first.
func (db *DB) ListByAuthor(ctx context.Context, username string) ([]domain.Post, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.Post
	for _, p := range db.posts {
		if p.Author.Username == username {
			out = append(out, *clonePost(p))
		}
	}
	return out, nil
}

// ForLocalDay returns the author's post whose creation falls on the given
// local calendar day, or nil. The comparison is string equality of
// domain.LocalDay values, the same truncation the services use.
func (db *DB) ForLocalDay(ctx context.Context, username, localDay string) (*domain.Post, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, p := range db.posts {
		if p.Author.Username == username && domain.LocalDay(p.CreatedAt) == localDay {
			return clonePost(p), nil
		}
	}
	return nil, nil
}

// Delete removes a post by id, reporting whether a removal occurred.
func (db *DB) Delete(ctx context.Context, id string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, p := range db.posts {
		if p.ID == id {
			db.posts = append(db.posts[:i], db.posts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// DeleteByAuthor removes every post by the given author and returns the
// number removed.
func (db *DB) DeleteByAuthor(ctx context.Context, username string) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	kept := make([]*domain.Post, 0, len(db.posts))
	removed := 0
	for _, p := range db.posts {
		if p.Author.Username == username {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	db.posts = kept
	return removed, nil
}

// SetLike applies a like-state change computed by the service layer.
func (db *DB) SetLike(ctx context.Context, postID, username string, liked bool, likeCount int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	p := db.find(postID)
	if p == nil {
		return errors.New("post not found")
	}

	filtered := make([]string, 0, len(p.LikedBy)+1)
	for _, u := range p.LikedBy {
		if u != username {
			filtered = append(filtered, u)
		}
	}
	if liked {
		filtered = append(filtered, username)
	}
	p.LikedBy = filtered
	p.LikeCount = likeCount
	return nil
}

// AddComment appends a comment in insertion order.
func (db *DB) AddComment(ctx context.Context, postID string, c domain.Comment) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	p := db.find(postID)
	if p == nil {
		return errors.New("post not found")
	}
	p.Comments = append(p.Comments, c)
	return nil
}

// CountByPrompt counts posts answering the given prompt.
func (db *DB) CountByPrompt(ctx context.Context, promptID int64) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	count := 0
	for _, p := range db.posts {
		if p.PromptID == promptID {
			count++
		}
	}
	return count, nil
}

func (db *DB) find(id string) *domain.Post {
	for _, p := range db.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func clonePost(p *domain.Post) *domain.Post {
	c := *p
	c.LikedBy = append([]string(nil), p.LikedBy...)
	c.Comments = append([]domain.Comment(nil), p.Comments...)
	return &c
}

// --- ProfileRepository ---

// ProfileRepo is the single-account profile store over the shared state.
type ProfileRepo struct {
	db *DB
}

// NewProfileRepo creates the profile repository view of db.
func NewProfileRepo(db *DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Save stores the single device profile, replacing any existing one.
func (r *ProfileRepo) Save(ctx context.Context, p *domain.Profile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	cp := *p
	r.db.profile = &cp
	return nil
}

// Get returns a copy of the stored profile, or nil when none exists.
func (r *ProfileRepo) Get(ctx context.Context) (*domain.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.db.profile == nil {
		return nil, nil
	}
	cp := *r.db.profile
	return &cp, nil
}

// Clear removes the stored profile.
func (r *ProfileRepo) Clear(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.profile = nil
	return nil
}

// --- FollowRepository ---

// FollowRepo is the follow-edge store over the shared state.
type FollowRepo struct {
	db *DB
}

// NewFollowRepo creates the follow repository view of db.
func NewFollowRepo(db *DB) *FollowRepo {
	return &FollowRepo{db: db}
}

// Add records a follow edge, reporting whether it was new.
func (r *FollowRepo) Add(ctx context.Context, follower, followee string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	set := r.db.follows[follower]
	if set == nil {
		set = make(map[string]bool)
		r.db.follows[follower] = set
	}
	if set[followee] {
		return false, nil
	}
	set[followee] = true
	return true, nil
}

// Remove deletes a follow edge, reporting whether it existed.
func (r *FollowRepo) Remove(ctx context.Context, follower, followee string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	set := r.db.follows[follower]
	if set == nil || !set[followee] {
		return false, nil
	}
	delete(set, followee)
	return true, nil
}

// List returns the usernames the follower follows, in lexical order.
func (r *FollowRepo) List(ctx context.Context, follower string) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	set := r.db.follows[follower]
	out := make([]string, 0, len(set))
	for u := range set {
		out = append(out, u)
	}
	sort.Strings(out)
	return out, nil
}

// Contains reports whether the follow edge exists.
func (r *FollowRepo) Contains(ctx context.Context, follower, followee string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.follows[follower][followee], nil
}

// DeleteByFollower drops the follower's entire follow list.
func (r *FollowRepo) DeleteByFollower(ctx context.Context, follower string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	n := len(r.db.follows[follower])
	delete(r.db.follows, follower)
	return n, nil
}

// --- SessionRepository ---

// SessionRepo is the session token store over the shared state.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates the session repository view of db.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, token, username string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		Username:  username,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

// GetByToken retrieves a session by token, dropping it if expired.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.sessions[token]
	if !ok {
		return nil, nil
	}
	if time.Now().After(s.ExpiresAt) {
		delete(r.db.sessions, token)
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
