package app

import (
	"context"
	"time"

	"promptpic/internal/domain"
)

// promptRotation is the fixed cycle of daily prompt texts. The prompt for a
// given day is the rotation entry at (day number mod len), so every device
// derives the same prompt for the same local date without a backend.
var promptRotation = []string{
	"Show us your morning view",
	"Something that made you smile today",
	"Your workspace, right now",
	"The sky above you",
	"What you're eating or drinking",
	"A splash of your favorite color",
	"Something old that you love",
	"Your walk today",
	"A small detail nobody notices",
	"What's keeping you company",
	"Light and shadow",
	"Something you made",
	"Your shoes, wherever they are",
	"The last door you walked through",
}

// PromptService derives the rotating daily prompt and its post count.
type PromptService struct {
	posts domain.PostRepository
}

// NewPromptService creates a PromptService counting posts in the given
// repository.
func NewPromptService(posts domain.PostRepository) *PromptService {
	return &PromptService{posts: posts}
}

// TodayPrompt returns the prompt for the current local day.
func (s *PromptService) TodayPrompt(ctx context.Context) (*domain.DailyPrompt, error) {
	return s.Prompt(ctx, domain.LocalDayNumber(time.Now()))
}

// RecentPrompts returns the prompts for today and the n-1 days before it,
// newest first.
func (s *PromptService) RecentPrompts(ctx context.Context, n int) ([]domain.DailyPrompt, error) {
	today := domain.LocalDayNumber(time.Now())
	out := make([]domain.DailyPrompt, 0, n)
	for i := 0; i < n; i++ {
		id := today - int64(i)
		if id < 0 {
			break
		}
		p, err := s.Prompt(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// Prompt returns the prompt for a specific day number, or nil for day
// numbers outside the valid range (negative or in the future).
func (s *PromptService) Prompt(ctx context.Context, id int64) (*domain.DailyPrompt, error) {
	if id < 0 || id > domain.LocalDayNumber(time.Now()) {
		return nil, nil
	}

	count, err := s.posts.CountByPrompt(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.DailyPrompt{
		ID:        id,
		Text:      promptRotation[id%int64(len(promptRotation))],
		Date:      domain.DayForNumber(id),
		PostCount: count,
	}, nil
}
