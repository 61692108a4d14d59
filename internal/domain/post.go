package domain

import (
	"context"
	"time"
)

// Post is a single daily photo post.
type Post struct {
	ID        string    `json:"id"`
	Photo     string    `json:"photo"`
	Caption   string    `json:"caption"`
	PromptID  int64     `json:"promptId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Author    Author    `json:"author"`
	LikeCount int       `json:"likes"`
	LikedBy   []string  `json:"likedBy"`
	Comments  []Comment `json:"comments"`
}

// Comment is an immutable comment on a post.
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasLike reports whether username appears in the post's liked-by set.
func (p *Post) HasLike(username string) bool {
	for _, u := range p.LikedBy {
		if u == username {
			return true
		}
	}
	return false
}

// PostRepository is the port for post persistence. List and ListByAuthor
// return most-recent-first defensive copies; mutating a returned slice must
// not affect stored state. Get and ForLocalDay return nil when no post
// matches.
type PostRepository interface {
	Insert(ctx context.Context, p *Post) error
	Get(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context) ([]Post, error)
	ListByAuthor(ctx context.Context, username string) ([]Post, error)
	ForLocalDay(ctx context.Context, username, localDay string) (*Post, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteByAuthor(ctx context.Context, username string) (int, error)
	SetLike(ctx context.Context, postID, username string, liked bool, likeCount int) error
	AddComment(ctx context.Context, postID string, c Comment) error
	CountByPrompt(ctx context.Context, promptID int64) (int, error)
}
