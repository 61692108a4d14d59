package memory_test

import (
	"context"
	"testing"
	"time"

	"promptpic/internal/adapter/memory"
	"promptpic/internal/domain"
)

func post(id, username string, createdAt time.Time) *domain.Post {
	return &domain.Post{
		ID:        id,
		Photo:     "photo-" + id,
		CreatedAt: createdAt,
		Author:    domain.Author{Username: username, DisplayName: username},
		LikedBy:   []string{},
		Comments:  []domain.Comment{},
	}
}

func TestInsert_NewestFirst(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	if err := db.Insert(ctx, post("a", "alice", time.Now().Add(-time.Hour))); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.Insert(ctx, post("b", "bob", time.Now())); err != nil {
		t.Fatalf("insert: %v", err)
	}

	all, err := db.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != "b" || all[1].ID != "a" {
		t.Fatalf("unexpected order: %+v", all)
	}
}

func TestInsert_DuplicateID(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	if err := db.Insert(ctx, post("a", "alice", time.Now())); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.Insert(ctx, post("a", "bob", time.Now())); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestGet_DefensiveCopy(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	p := post("a", "alice", time.Now())
	p.LikedBy = []string{"bob"}
	if err := db.Insert(ctx, p); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, _ := db.Get(ctx, "a")
	got.LikedBy[0] = "mallory"
	got.Caption = "scribbled"

	again, _ := db.Get(ctx, "a")
	if again.LikedBy[0] != "bob" || again.Caption != "" {
		t.Fatalf("stored post was mutated through a returned copy: %+v", again)
	}
}

func TestGet_Missing(t *testing.T) {
	db := memory.New()

	got, err := db.Get(context.Background(), "nope")
	if err != nil || got != nil {
		t.Fatalf("missing post: %v, %v", got, err)
	}
}

func TestForLocalDay(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	now := time.Now()

	if err := db.Insert(ctx, post("yesterday", "alice", now.Add(-24*time.Hour))); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.Insert(ctx, post("today", "alice", now)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.Insert(ctx, post("other", "bob", now)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := db.ForLocalDay(ctx, "alice", domain.LocalDay(now))
	if err != nil {
		t.Fatalf("for local day: %v", err)
	}
	if got == nil || got.ID != "today" {
		t.Fatalf("got %+v, want today's post", got)
	}

	got, _ = db.ForLocalDay(ctx, "alice", domain.LocalDay(now.Add(-24*time.Hour)))
	if got == nil || got.ID != "yesterday" {
		t.Fatalf("got %+v, want yesterday's post", got)
	}

	got, _ = db.ForLocalDay(ctx, "carol", domain.LocalDay(now))
	if got != nil {
		t.Fatalf("carol has no posts, got %+v", got)
	}
}

func TestDeleteByAuthor(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	_ = db.Insert(ctx, post("a1", "alice", time.Now().Add(-48*time.Hour)))
	_ = db.Insert(ctx, post("a2", "alice", time.Now()))
	_ = db.Insert(ctx, post("b1", "bob", time.Now()))

	n, err := db.DeleteByAuthor(ctx, "alice")
	if err != nil || n != 2 {
		t.Fatalf("removed = %d, %v, want 2", n, err)
	}

	all, _ := db.List(ctx)
	if len(all) != 1 || all[0].ID != "b1" {
		t.Fatalf("unexpected survivors: %+v", all)
	}
}

func TestSetLike(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	_ = db.Insert(ctx, post("a", "alice", time.Now()))

	if err := db.SetLike(ctx, "a", "bob", true, 1); err != nil {
		t.Fatalf("set like: %v", err)
	}
	got, _ := db.Get(ctx, "a")
	if !got.HasLike("bob") || got.LikeCount != 1 {
		t.Fatalf("like not applied: %+v", got)
	}

	// Re-applying the same state must not duplicate the entry.
	if err := db.SetLike(ctx, "a", "bob", true, 1); err != nil {
		t.Fatalf("set like: %v", err)
	}
	got, _ = db.Get(ctx, "a")
	if len(got.LikedBy) != 1 {
		t.Fatalf("liked-by duplicated: %v", got.LikedBy)
	}

	if err := db.SetLike(ctx, "a", "bob", false, 0); err != nil {
		t.Fatalf("unset like: %v", err)
	}
	got, _ = db.Get(ctx, "a")
	if got.HasLike("bob") || got.LikeCount != 0 {
		t.Fatalf("like not removed: %+v", got)
	}

	if err := db.SetLike(ctx, "nope", "bob", true, 1); err == nil {
		t.Fatal("expected error for missing post")
	}
}

func TestCountByPrompt(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	a := post("a", "alice", time.Now())
	a.PromptID = 7
	b := post("b", "bob", time.Now())
	b.PromptID = 7
	c := post("c", "carol", time.Now())
	c.PromptID = 8
	for _, p := range []*domain.Post{a, b, c} {
		if err := db.Insert(ctx, p); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	n, err := db.CountByPrompt(ctx, 7)
	if err != nil || n != 2 {
		t.Fatalf("count = %d, %v, want 2", n, err)
	}
}

func TestProfileRepo(t *testing.T) {
	repo := memory.NewProfileRepo(memory.New())
	ctx := context.Background()

	if got, _ := repo.Get(ctx); got != nil {
		t.Fatalf("empty store returned %+v", got)
	}

	p := &domain.Profile{ID: "1", Username: "alice", DisplayName: "Alice"}
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, _ := repo.Get(ctx)
	got.DisplayName = "scribbled"
	again, _ := repo.Get(ctx)
	if again.DisplayName != "Alice" {
		t.Fatal("stored profile mutated through a returned copy")
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got, _ := repo.Get(ctx); got != nil {
		t.Fatalf("profile survived clear: %+v", got)
	}
}

func TestFollowRepo(t *testing.T) {
	repo := memory.NewFollowRepo(memory.New())
	ctx := context.Background()

	added, _ := repo.Add(ctx, "alice", "zoe")
	if !added {
		t.Fatal("first add must report true")
	}
	added, _ = repo.Add(ctx, "alice", "zoe")
	if added {
		t.Fatal("duplicate add must report false")
	}
	_, _ = repo.Add(ctx, "alice", "bob")

	list, _ := repo.List(ctx, "alice")
	if len(list) != 2 || list[0] != "bob" || list[1] != "zoe" {
		t.Fatalf("list = %v, want lexical order", list)
	}

	if n, _ := repo.DeleteByFollower(ctx, "alice"); n != 2 {
		t.Fatalf("deleted %d, want 2", n)
	}
	if ok, _ := repo.Contains(ctx, "alice", "bob"); ok {
		t.Fatal("edge survived DeleteByFollower")
	}
}

func TestSessionRepo_ExpiryOnRead(t *testing.T) {
	repo := memory.NewSessionRepo(memory.New())
	ctx := context.Background()

	if err := repo.Create(ctx, "live", "alice", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, "stale", "alice", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("create: %v", err)
	}

	if s, _ := repo.GetByToken(ctx, "live"); s == nil || s.Username != "alice" {
		t.Fatalf("live session = %+v", s)
	}
	if s, _ := repo.GetByToken(ctx, "stale"); s != nil {
		t.Fatalf("expired session must read as absent, got %+v", s)
	}
}
