package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"promptpic/internal/domain"

	"github.com/google/uuid"
)

// PostService owns the post collection and the social interactions on it.
// Every operation acts as the current user, which the identity service
// pushes in through SetCurrentUser/ClearCurrentUser; until someone logs in
// the service acts as the guest placeholder.
type PostService struct {
	repo    domain.PostRepository
	metrics Metrics

	mu      sync.RWMutex
	current domain.Author
}

// NewPostService creates a PostService backed by the given repository.
func NewPostService(repo domain.PostRepository) *PostService {
	return &PostService{
		repo:    repo,
		metrics: noopMetrics{},
		current: domain.Guest(),
	}
}

// SetMetrics installs a metrics collector. Nil restores the no-op default.
func (s *PostService) SetMetrics(m Metrics) {
	if m == nil {
		m = noopMetrics{}
	}
	s.metrics = m
}

// SetCurrentUser is the synchronization hook invoked by the identity service
// whenever the profile is created or updated. In-flight posts keep their
// author snapshots; only the notion of "who is acting now" changes.
func (s *PostService) SetCurrentUser(username, displayName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = domain.Author{Username: username, DisplayName: displayName}
}

// ClearCurrentUser is invoked on logout. It removes every post authored by
// the just-logged-out user (irreversibly, no tombstoning) and resets the
// acting identity to the guest placeholder.
func (s *PostService) ClearCurrentUser(ctx context.Context) error {
	s.mu.Lock()
	username := s.current.Username
	s.current = domain.Guest()
	s.mu.Unlock()

	_, err := s.repo.DeleteByAuthor(ctx, username)
	return err
}

// CurrentAuthor returns the identity all operations currently act as.
func (s *PostService) CurrentAuthor() domain.Author {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// AddPost creates today's post for the current user. At most one post per
// user per local calendar day may exist; a second attempt fails with
// *DailyLimitError and mutates nothing.
func (s *PostService) AddPost(ctx context.Context, photo, caption string, promptID int64) (*domain.Post, error) {
	if strings.TrimSpace(photo) == "" {
		return nil, &ValidationError{Field: "photo", Reason: "must not be empty"}
	}

	author := s.CurrentAuthor()
	now := time.Now()
	today := domain.LocalDay(now)

	existing, err := s.repo.ForLocalDay(ctx, author.Username, today)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.metrics.DailyLimitHit()
		return nil, &DailyLimitError{ExistingPostID: existing.ID, Day: today}
	}

	post := &domain.Post{
		ID:        uuid.NewString(),
		Photo:     photo,
		Caption:   caption,
		PromptID:  promptID,
		CreatedAt: now,
		Author:    author,
		LikedBy:   []string{},
		Comments:  []domain.Comment{},
	}
	if err := s.repo.Insert(ctx, post); err != nil {
		return nil, err
	}
	s.metrics.PostCreated()
	return post, nil
}

// Posts returns the full collection, most recent first.
func (s *PostService) Posts(ctx context.Context) ([]domain.Post, error) {
	return s.repo.List(ctx)
}

// UserPosts returns the current user's posts, most recent first.
func (s *PostService) UserPosts(ctx context.Context) ([]domain.Post, error) {
	return s.repo.ListByAuthor(ctx, s.CurrentAuthor().Username)
}

// HasPostedToday reports whether the current user already posted on the
// current local calendar day. It uses the same day truncation as AddPost, so
// the two can never disagree.
func (s *PostService) HasPostedToday(ctx context.Context) (bool, error) {
	post, err := s.TodaysPost(ctx)
	return post != nil, err
}

// TodaysPost returns the current user's post for today, or nil.
func (s *PostService) TodaysPost(ctx context.Context) (*domain.Post, error) {
	return s.repo.ForLocalDay(ctx, s.CurrentAuthor().Username, domain.LocalDay(time.Now()))
}

// DeletePost removes a post by ID regardless of ownership and reports
// whether a removal occurred. The missing ownership check is deliberate in
// the single-device model; see DESIGN.md before exposing this to real
// multi-user traffic.
func (s *PostService) DeletePost(ctx context.Context, postID string) (bool, error) {
	return s.repo.Delete(ctx, postID)
}

// ToggleLike flips the current user's like on a post. It returns false and
// mutates nothing when the post does not exist or the current user authored
// it; liking your own post is forbidden.
func (s *PostService) ToggleLike(ctx context.Context, postID string) (bool, error) {
	post, err := s.repo.Get(ctx, postID)
	if err != nil || post == nil {
		return false, err
	}

	user := s.CurrentAuthor().Username
	if post.Author.Username == user {
		return false, nil
	}

	liked := !post.HasLike(user)
	count := post.LikeCount
	if liked {
		count++
	} else {
		count--
	}
	if count < 0 {
		count = 0
	}

	if err := s.repo.SetLike(ctx, postID, user, liked, count); err != nil {
		return false, err
	}
	s.metrics.LikeToggled()
	return true, nil
}

// HasLikedPost reports whether the current user has liked the post. A
// nonexistent post reads as not liked.
func (s *PostService) HasLikedPost(ctx context.Context, postID string) (bool, error) {
	post, err := s.repo.Get(ctx, postID)
	if err != nil || post == nil {
		return false, err
	}
	return post.HasLike(s.CurrentAuthor().Username), nil
}

// AddComment appends a comment to a post. It returns false when the post
// does not exist or the text is empty after trimming.
func (s *PostService) AddComment(ctx context.Context, postID, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}

	post, err := s.repo.Get(ctx, postID)
	if err != nil || post == nil {
		return false, err
	}

	comment := domain.Comment{
		ID:        uuid.NewString(),
		Text:      text,
		Author:    s.CurrentAuthor(),
		CreatedAt: time.Now(),
	}
	if err := s.repo.AddComment(ctx, postID, comment); err != nil {
		return false, err
	}
	s.metrics.CommentAdded()
	return true, nil
}
