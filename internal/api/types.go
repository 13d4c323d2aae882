package api

import "github.com/mjarlund/fableday-tui/internal/story"

// dayRequest is the day-submission body. Recap rides the wire as the
// strings "on"/"off" rather than a bool.
type dayRequest struct {
	Emotion story.Emotion `json:"emotion"`
	Recap   string        `json:"recap"`
	Seed    *int64        `json:"seed,omitempty"`
}

// DayResult is the server's report on a freshly generated day. The session
// controller discards it and reloads instead of applying it; it is still
// returned in full for callers that want the raw outcome.
type DayResult struct {
	Day           int                `json:"day"`
	Text          string             `json:"chapter_text"`
	Summary       string             `json:"chapter_summary"`
	EndingVector  story.EndingVector `json:"ending_vector"`
	StoryComplete bool               `json:"story_complete"`
}

// CreateStoryRequest seeds a brand-new story. Zero fields are omitted so
// the server fills its own defaults.
type CreateStoryRequest struct {
	Quick       bool   `json:"quick,omitempty"`
	Title       string `json:"title,omitempty"`
	Protagonist string `json:"protagonist,omitempty"`
	TotalDays   int    `json:"total_days,omitempty"`
}

type createDemoRequest struct {
	DemoID    string `json:"demo_id"`
	TotalDays int    `json:"total_days"`
}

// Created carries the id of a story the server just minted.
type Created struct {
	StoryID string `json:"story_id"`
}
