package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"promptpic/internal/adapter/memory"
	"promptpic/internal/app"
	"promptpic/internal/domain"

	"github.com/google/uuid"
)

func newPostService(t *testing.T) (*app.PostService, *memory.DB) {
	t.Helper()
	db := memory.New()
	svc := app.NewPostService(db)
	svc.SetCurrentUser("alice", "Alice")
	return svc, db
}

// insertPost puts a post into the repository directly, bypassing the daily
// limit check.
func insertPost(t *testing.T, db *memory.DB, username, displayName string, createdAt time.Time) *domain.Post {
	t.Helper()
	p := &domain.Post{
		ID:        uuid.NewString(),
		Photo:     "data:image/jpeg;base64,xxx",
		CreatedAt: createdAt,
		Author:    domain.Author{Username: username, DisplayName: displayName},
		LikedBy:   []string{},
		Comments:  []domain.Comment{},
	}
	if err := db.Insert(context.Background(), p); err != nil {
		t.Fatalf("insert: %v", err)
	}
	return p
}

func TestAddPost_RequiresPhoto(t *testing.T) {
	svc, _ := newPostService(t)

	_, err := svc.AddPost(context.Background(), "   ", "caption", 0)
	var verr *app.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "photo" {
		t.Fatalf("unexpected field: %s", verr.Field)
	}
}

func TestAddPost_DailyLimit(t *testing.T) {
	svc, db := newPostService(t)
	ctx := context.Background()

	first, err := svc.AddPost(ctx, "photo-1", "first", 0)
	if err != nil {
		t.Fatalf("first post: %v", err)
	}

	_, err = svc.AddPost(ctx, "photo-2", "second", 0)
	var dlerr *app.DailyLimitError
	if !errors.As(err, &dlerr) {
		t.Fatalf("expected DailyLimitError, got %v", err)
	}
	if dlerr.ExistingPostID != first.ID {
		t.Fatalf("existing post id = %s, want %s", dlerr.ExistingPostID, first.ID)
	}

	all, err := db.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("rejected post must not be stored, have %d posts", len(all))
	}
}

func TestAddPost_NewDayResets(t *testing.T) {
	svc, db := newPostService(t)
	ctx := context.Background()

	insertPost(t, db, "alice", "Alice", time.Now().Add(-24*time.Hour))

	if _, err := svc.AddPost(ctx, "photo", "today", 0); err != nil {
		t.Fatalf("yesterday's post must not block today: %v", err)
	}

	posted, err := svc.HasPostedToday(ctx)
	if err != nil {
		t.Fatalf("has posted today: %v", err)
	}
	if !posted {
		t.Fatal("expected HasPostedToday true")
	}
}

func TestAddPost_OtherUserDoesNotBlock(t *testing.T) {
	svc, db := newPostService(t)
	ctx := context.Background()

	insertPost(t, db, "bob", "Bob", time.Now())

	if _, err := svc.AddPost(ctx, "photo", "", 0); err != nil {
		t.Fatalf("another author's post must not block: %v", err)
	}
}

func TestAddPost_AuthorSnapshot(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	post, err := svc.AddPost(ctx, "photo", "", 0)
	if err != nil {
		t.Fatalf("add post: %v", err)
	}

	svc.SetCurrentUser("alice", "Alice Renamed")

	got, err := svc.Posts(ctx)
	if err != nil {
		t.Fatalf("posts: %v", err)
	}
	if got[0].ID != post.ID || got[0].Author.DisplayName != "Alice" {
		t.Fatalf("author snapshot changed: %+v", got[0].Author)
	}
}

func TestPosts_NewestFirst(t *testing.T) {
	svc, db := newPostService(t)
	ctx := context.Background()

	old := insertPost(t, db, "bob", "Bob", time.Now().Add(-48*time.Hour))
	recent, err := svc.AddPost(ctx, "photo", "", 0)
	if err != nil {
		t.Fatalf("add post: %v", err)
	}

	all, err := svc.Posts(ctx)
	if err != nil {
		t.Fatalf("posts: %v", err)
	}
	if len(all) != 2 || all[0].ID != recent.ID || all[1].ID != old.ID {
		t.Fatalf("unexpected order: %+v", all)
	}
}

func TestDeletePost(t *testing.T) {
	svc, db := newPostService(t)
	ctx := context.Background()

	keep := insertPost(t, db, "bob", "Bob", time.Now())
	target := insertPost(t, db, "carol", "Carol", time.Now())

	removed, err := svc.DeletePost(ctx, target.ID)
	if err != nil || !removed {
		t.Fatalf("delete = %v, %v", removed, err)
	}

	removed, err = svc.DeletePost(ctx, target.ID)
	if err != nil || removed {
		t.Fatalf("second delete must be a no-op, got %v, %v", removed, err)
	}

	all, _ := svc.Posts(ctx)
	if len(all) != 1 || all[0].ID != keep.ID {
		t.Fatalf("wrong survivor: %+v", all)
	}
}

func TestToggleLike_SelfForbidden(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	post, err := svc.AddPost(ctx, "photo", "", 0)
	if err != nil {
		t.Fatalf("add post: %v", err)
	}

	toggled, err := svc.ToggleLike(ctx, post.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled {
		t.Fatal("liking your own post must be refused")
	}

	got, _ := svc.Posts(ctx)
	if got[0].LikeCount != 0 || len(got[0].LikedBy) != 0 {
		t.Fatalf("refused like must not mutate: %+v", got[0])
	}
}

func TestToggleLike_MissingPost(t *testing.T) {
	svc, _ := newPostService(t)

	toggled, err := svc.ToggleLike(context.Background(), "nope")
	if err != nil || toggled {
		t.Fatalf("missing post: toggled=%v err=%v", toggled, err)
	}
}

func TestToggleLike_Symmetry(t *testing.T) {
	svc, db := newPostService(t)
	ctx := context.Background()

	post := insertPost(t, db, "bob", "Bob", time.Now())

	toggled, err := svc.ToggleLike(ctx, post.ID)
	if err != nil || !toggled {
		t.Fatalf("like: toggled=%v err=%v", toggled, err)
	}
	liked, _ := svc.HasLikedPost(ctx, post.ID)
	if !liked {
		t.Fatal("expected liked after first toggle")
	}
	got, _ := db.Get(ctx, post.ID)
	if got.LikeCount != 1 {
		t.Fatalf("like count = %d, want 1", got.LikeCount)
	}

	toggled, err = svc.ToggleLike(ctx, post.ID)
	if err != nil || !toggled {
		t.Fatalf("unlike: toggled=%v err=%v", toggled, err)
	}
	liked, _ = svc.HasLikedPost(ctx, post.ID)
	if liked {
		t.Fatal("expected unliked after second toggle")
	}
	got, _ = db.Get(ctx, post.ID)
	if got.LikeCount != 0 {
		t.Fatalf("like count = %d, want 0", got.LikeCount)
	}
}

func TestToggleLike_CountNeverNegative(t *testing.T) {
	svc, db := newPostService(t)
	ctx := context.Background()

	post := insertPost(t, db, "bob", "Bob", time.Now())
	// Corrupt state: alice is in the liked-by set but the counter is zero.
	if err := db.SetLike(ctx, post.ID, "alice", true, 0); err != nil {
		t.Fatalf("set like: %v", err)
	}

	if _, err := svc.ToggleLike(ctx, post.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	got, _ := db.Get(ctx, post.ID)
	if got.LikeCount != 0 {
		t.Fatalf("like count = %d, must clamp at 0", got.LikeCount)
	}
}

func TestAddComment(t *testing.T) {
	svc, db := newPostService(t)
	ctx := context.Background()

	post := insertPost(t, db, "bob", "Bob", time.Now())

	tests := []struct {
		name   string
		postID string
		text   string
		want   bool
	}{
		{"blank text", post.ID, "   ", false},
		{"missing post", "nope", "hello", false},
		{"ok", post.ID, "  nice shot  ", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			added, err := svc.AddComment(ctx, tc.postID, tc.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if added != tc.want {
				t.Fatalf("added = %v, want %v", added, tc.want)
			}
		})
	}

	got, _ := db.Get(ctx, post.ID)
	if len(got.Comments) != 1 {
		t.Fatalf("comment count = %d, want 1", len(got.Comments))
	}
	if got.Comments[0].Text != "nice shot" {
		t.Fatalf("comment text not trimmed: %q", got.Comments[0].Text)
	}
	if got.Comments[0].Author.Username != "alice" {
		t.Fatalf("comment author = %s", got.Comments[0].Author.Username)
	}
}

func TestClearCurrentUser_PurgesOwnPostsOnly(t *testing.T) {
	svc, db := newPostService(t)
	ctx := context.Background()

	if _, err := svc.AddPost(ctx, "photo", "", 0); err != nil {
		t.Fatalf("add post: %v", err)
	}
	other := insertPost(t, db, "bob", "Bob", time.Now())

	if err := svc.ClearCurrentUser(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	all, _ := db.List(ctx)
	if len(all) != 1 || all[0].ID != other.ID {
		t.Fatalf("purge must only remove alice's posts: %+v", all)
	}
	if got := svc.CurrentAuthor(); got != domain.Guest() {
		t.Fatalf("acting identity = %+v, want guest", got)
	}
}
