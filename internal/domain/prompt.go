package domain

// DailyPrompt is the rotating topic of the day that posts answer. Prompts
// are derived from the calendar, not stored: the ID is the local day number,
// so a post's PromptID ties it to the day it was taken.
type DailyPrompt struct {
	ID        int64  `json:"id"`
	Text      string `json:"promptText"`
	Date      string `json:"date"`
	PostCount int    `json:"postCount"`
}
