package app

import (
	"context"
	"sync"

	"promptpic/internal/domain"
)

// FollowService owns the current user's follow list and builds the
// following feed from it. Like PostService it acts as whoever the identity
// service last pushed in, starting as guest.
type FollowService struct {
	follows domain.FollowRepository
	posts   domain.PostRepository

	mu      sync.RWMutex
	current domain.Author
}

// NewFollowService creates a FollowService over the given repositories.
func NewFollowService(follows domain.FollowRepository, posts domain.PostRepository) *FollowService {
	return &FollowService{follows: follows, posts: posts, current: domain.Guest()}
}

// SetCurrentUser is the identity synchronization hook.
func (s *FollowService) SetCurrentUser(username, displayName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = domain.Author{Username: username, DisplayName: displayName}
}

// ClearCurrentUser drops the logged-out user's follow list and resets the
// acting identity to guest.
func (s *FollowService) ClearCurrentUser(ctx context.Context) error {
	s.mu.Lock()
	username := s.current.Username
	s.current = domain.Guest()
	s.mu.Unlock()

	_, err := s.follows.DeleteByFollower(ctx, username)
	return err
}

func (s *FollowService) currentUsername() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Username
}

// Follow adds a user to the current user's follow list. It returns false
// when the username is blank, the user's own, or already followed.
func (s *FollowService) Follow(ctx context.Context, username string) (bool, error) {
	followee := domain.NormalizeUsername(username)
	follower := s.currentUsername()
	if followee == "" || followee == follower {
		return false, nil
	}
	return s.follows.Add(ctx, follower, followee)
}

// Unfollow removes a user from the follow list, reporting whether a removal
// occurred.
func (s *FollowService) Unfollow(ctx context.Context, username string) (bool, error) {
	return s.follows.Remove(ctx, s.currentUsername(), domain.NormalizeUsername(username))
}

// Following returns the usernames the current user follows.
func (s *FollowService) Following(ctx context.Context) ([]string, error) {
	return s.follows.List(ctx, s.currentUsername())
}

// IsFollowing reports whether the current user follows the given username.
func (s *FollowService) IsFollowing(ctx context.Context, username string) (bool, error) {
	return s.follows.Contains(ctx, s.currentUsername(), domain.NormalizeUsername(username))
}

// Feed returns posts authored by the current user or anyone they follow,
// most recent first.
func (s *FollowService) Feed(ctx context.Context) ([]domain.Post, error) {
	follower := s.currentUsername()
	following, err := s.follows.List(ctx, follower)
	if err != nil {
		return nil, err
	}

	visible := make(map[string]bool, len(following)+1)
	visible[follower] = true
	for _, u := range following {
		visible[u] = true
	}

	all, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}

	feed := make([]domain.Post, 0, len(all))
	for _, p := range all {
		if visible[p.Author.Username] {
			feed = append(feed, p)
		}
	}
	return feed, nil
}
