package app_test

import (
	"context"
	"testing"

	"promptpic/internal/adapter/memory"
	"promptpic/internal/app"
)

func TestSeedDemo(t *testing.T) {
	db := memory.New()
	identity := app.NewIdentityService(memory.NewProfileRepo(db))
	ctx := context.Background()

	if err := app.SeedDemo(ctx, identity, db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	profile, _ := identity.CurrentUser(ctx)
	if profile == nil || profile.Username != "demo_user" {
		t.Fatalf("demo account = %+v", profile)
	}

	all, _ := db.List(ctx)
	if len(all) != 2 {
		t.Fatalf("seeded posts = %d, want 2", len(all))
	}
	if all[0].Author.Username != "friend1" {
		t.Fatalf("newest post author = %s, want friend1", all[0].Author.Username)
	}
	if len(all[0].Comments) != 2 || len(all[1].Comments) != 1 {
		t.Fatalf("seeded comments = %d/%d", len(all[0].Comments), len(all[1].Comments))
	}

	// Seeding again is a no-op.
	if err := app.SeedDemo(ctx, identity, db); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if again, _ := db.List(ctx); len(again) != 2 {
		t.Fatalf("reseed added posts: %d", len(again))
	}
}
