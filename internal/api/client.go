package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mjarlund/fableday-tui/internal/story"
)

// Client talks JSON over HTTP to the story service. It keeps no state
// between calls and never retries; retry policy belongs to the caller.
type Client struct {
	base string
	http *http.Client
	log  *slog.Logger
}

// New builds a client against base, e.g. "http://localhost:8000".
func New(base string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// Story fetches the current snapshot of one story.
func (c *Client) Story(ctx context.Context, id string) (story.Snapshot, error) {
	var snap story.Snapshot
	err := c.do(ctx, http.MethodGet, "/api/stories/"+id, nil, &snap, "story fetch failed")
	return snap, err
}

// Chapters fetches the persisted record list in server order.
func (c *Client) Chapters(ctx context.Context, id string) ([]story.Chapter, error) {
	var chapters []story.Chapter
	err := c.do(ctx, http.MethodGet, "/api/stories/"+id+"/chapters", nil, &chapters, "chapter fetch failed")
	return chapters, err
}

// SubmitDay asks the service to write the next day under the given
// emotional stance.
func (c *Client) SubmitDay(ctx context.Context, id string, emotion story.Emotion, recap bool, seed *int64) (DayResult, error) {
	req := dayRequest{Emotion: emotion, Recap: recapValue(recap), Seed: seed}
	var res DayResult
	err := c.do(ctx, http.MethodPost, "/api/stories/"+id+"/day", req, &res, "day generation failed")
	return res, err
}

// SubmitEnding asks the service to close the story with a final chapter.
func (c *Client) SubmitEnding(ctx context.Context, id string) (story.Ending, error) {
	var end story.Ending
	err := c.do(ctx, http.MethodPost, "/api/stories/"+id+"/ending", nil, &end, "ending generation failed")
	return end, err
}

// DeleteStory removes a story. An empty 2xx body (204 included) is success.
func (c *Client) DeleteStory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/stories/"+id, nil, nil, "story delete failed")
}

// Stories lists up to limit story summaries.
func (c *Client) Stories(ctx context.Context, limit int) ([]story.Summary, error) {
	var out []story.Summary
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/stories?limit=%d", limit), nil, &out, "story list failed")
	return out, err
}

// Demos lists the pre-authored demo templates.
func (c *Client) Demos(ctx context.Context) ([]story.Demo, error) {
	var out []story.Demo
	err := c.do(ctx, http.MethodGet, "/api/demos", nil, &out, "demo list failed")
	return out, err
}

// CreateStory starts a fresh story from scratch.
func (c *Client) CreateStory(ctx context.Context, req CreateStoryRequest) (Created, error) {
	var out Created
	err := c.do(ctx, http.MethodPost, "/api/stories", req, &out, "story create failed")
	return out, err
}

// CreateFromDemo seeds a story from a demo template.
func (c *Client) CreateFromDemo(ctx context.Context, demoID string, totalDays int) (Created, error) {
	req := createDemoRequest{DemoID: demoID, TotalDays: totalDays}
	var out Created
	err := c.do(ctx, http.MethodPost, "/api/demos/create", req, &out, "demo create failed")
	return out, err
}

func recapValue(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, fallback string) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.log.Debug("story api call", "method", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return &RemoteError{Detail: fallback, Err: err}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{Status: resp.StatusCode, Detail: fallback, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("story api error", "method", method, "path", path, "status", resp.StatusCode)
		return &RemoteError{Status: resp.StatusCode, Detail: detailFrom(data, fallback)}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		// A garbled success body is still a remote failure.
		return &RemoteError{Status: resp.StatusCode, Detail: fallback, Err: err}
	}
	return nil
}

// detailFrom pulls the service's detail string out of an error body,
// falling back to the per-operation message when absent.
func detailFrom(body []byte, fallback string) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return fallback
}
