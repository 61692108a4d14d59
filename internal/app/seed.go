package app

import (
	"context"
	"time"

	"promptpic/internal/domain"

	"github.com/google/uuid"
)

// SeedDemo populates an empty install with a demo account and a couple of
// friends' posts so the feed has something to show. It is a no-op when an
// account or any posts already exist.
func SeedDemo(ctx context.Context, identity *IdentityService, posts domain.PostRepository) error {
	existing, err := identity.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if existing == nil {
		if _, err := identity.CreateAccount(ctx, "demo_user", "password123", "Demo User", ""); err != nil {
			return err
		}
	}

	all, err := posts.List(ctx)
	if err != nil {
		return err
	}
	if len(all) > 0 {
		return nil
	}

	now := time.Now()
	sarah := domain.Author{Username: "friend1", DisplayName: "Sarah Johnson"}
	mike := domain.Author{Username: "friend2", DisplayName: "Mike Chen"}
	emma := domain.Author{Username: "friend3", DisplayName: "Emma Wilson"}

	demo := []domain.Post{
		{
			ID:        uuid.NewString(),
			Photo:     "https://picsum.photos/400/600?random=2",
			Caption:   "Coffee and creativity ☕",
			PromptID:  domain.LocalDayNumber(now),
			CreatedAt: now.Add(-2 * time.Hour),
			Author:    mike,
			LikeCount: 2,
			LikedBy:   []string{"friend1", "otheruser2"},
			Comments: []domain.Comment{
				{
					ID:        uuid.NewString(),
					Text:      "Perfect morning vibes!",
					Author:    sarah,
					CreatedAt: now.Add(-110 * time.Minute),
				},
			},
		},
		{
			ID:        uuid.NewString(),
			Photo:     "https://picsum.photos/400/600?random=1",
			Caption:   "Beautiful sunset today! 🌅",
			PromptID:  domain.LocalDayNumber(now),
			CreatedAt: now.Add(-time.Hour),
			Author:    sarah,
			LikeCount: 3,
			LikedBy:   []string{"friend2", "friend3", "otheruser1"},
			Comments: []domain.Comment{
				{
					ID:        uuid.NewString(),
					Text:      "Absolutely gorgeous! 😍",
					Author:    mike,
					CreatedAt: now.Add(-50 * time.Minute),
				},
				{
					ID:        uuid.NewString(),
					Text:      "Where was this taken?",
					Author:    emma,
					CreatedAt: now.Add(-40 * time.Minute),
				},
			},
		},
	}

	// Oldest first so the repository's prepend ordering leaves the newest on top.
	for _, p := range demo {
		if err := posts.Insert(ctx, &p); err != nil {
			return err
		}
	}
	return nil
}
