package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mjarlund/fableday-tui/internal/story"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, nil), srv
}

func TestDeleteStoryNoContent(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/stories/s1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	if err := c.DeleteStory(context.Background(), "s1"); err != nil {
		t.Fatalf("204 should be success, got %v", err)
	}
}

func TestRemoteErrorCarriesDetail(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"detail":"model overloaded"}`))
	})
	_, err := c.Story(context.Background(), "s1")
	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if re.Status != http.StatusServiceUnavailable || re.Detail != "model overloaded" {
		t.Fatalf("wrong error contents: %+v", re)
	}
}

func TestRemoteErrorFallbackMessage(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})
	_, err := c.Chapters(context.Background(), "s1")
	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if re.Detail != "chapter fetch failed" {
		t.Fatalf("expected fallback detail, got %q", re.Detail)
	}
}

func TestGarbledSuccessBodyIsRemoteError(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	})
	_, err := c.Story(context.Background(), "s1")
	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if re.Status != http.StatusOK || re.Detail != "story fetch failed" {
		t.Fatalf("wrong error contents: %+v", re)
	}
	if re.Unwrap() == nil {
		t.Fatal("decode failure should wrap the underlying error")
	}
}

func TestSubmitDayBody(t *testing.T) {
	var got map[string]any
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/stories/s1/day" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("missing X-Request-Id header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.Write([]byte(`{"day":3,"story_complete":false}`))
	})

	res, err := c.SubmitDay(context.Background(), "s1", story.EmotionJoy, true, nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if res.Day != 3 || res.StoryComplete {
		t.Fatalf("wrong result: %+v", res)
	}
	if got["emotion"] != "joy" || got["recap"] != "on" {
		t.Fatalf("wrong body: %v", got)
	}
	if _, ok := got["seed"]; ok {
		t.Fatal("nil seed must be omitted from the body")
	}
}

func TestSubmitDaySeedAndRecapOff(t *testing.T) {
	var got map[string]any
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"day":1}`))
	})

	seed := int64(42)
	if _, err := c.SubmitDay(context.Background(), "s1", story.EmotionFear, false, &seed); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if got["recap"] != "off" {
		t.Fatalf("expected recap off, got %v", got["recap"])
	}
	if got["seed"] != float64(42) {
		t.Fatalf("expected seed 42, got %v", got["seed"])
	}
}

func TestStoryPreservesVectorOrder(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"story_id": "s1",
			"title": "The Long Walk",
			"day_index": 4,
			"max_days": 7,
			"finished": false,
			"ending_vector": {"tragedy": 2, "redemption": 2, "mystery": -1},
			"top2_endings": [{"type": "tragedy", "score": 2}, {"type": "redemption", "score": 2}],
			"open_threads": ["the letter", "the stranger"]
		}`))
	})

	snap, err := c.Story(context.Background(), "s1")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(snap.EndingVector) != 3 || snap.EndingVector[0].Type != story.EndingTragedy {
		t.Fatalf("vector order lost: %+v", snap.EndingVector)
	}
	dom, ok := snap.EndingVector.Dominant()
	if !ok || dom.Type != story.EndingTragedy {
		t.Fatalf("expected tragedy dominant by insertion order, got %+v", dom)
	}
	if len(snap.OpenThreads) != 2 || snap.OpenThreads[0] != "the letter" {
		t.Fatalf("open threads mangled: %v", snap.OpenThreads)
	}
}

func TestChaptersKeepServerOrder(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": "c0", "story_id": "s1", "day": 0, "emotion": "neutral", "chapter_type": "prologue", "chapter_text": "before"},
			{"id": "c1", "story_id": "s1", "day": 1, "emotion": "fear", "chapter_type": "day", "chapter_text": "first"}
		]`))
	})

	chapters, err := c.Chapters(context.Background(), "s1")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(chapters) != 2 || chapters[0].Day != 0 || chapters[1].Emotion != story.EmotionFear {
		t.Fatalf("wrong chapters: %+v", chapters)
	}
}

func TestTransportErrorHasNoStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := New(srv.URL, time.Second, nil)
	srv.Close()

	_, err := c.Demos(context.Background())
	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if re.Status != 0 {
		t.Fatalf("transport failure must not carry a status, got %d", re.Status)
	}
	if re.Unwrap() == nil {
		t.Fatal("transport failure should wrap the underlying error")
	}
}

func TestCreateFromDemo(t *testing.T) {
	var got map[string]any
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/demos/create" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"story_id":"fresh"}`))
	})

	created, err := c.CreateFromDemo(context.Background(), "demo-7", 10)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.StoryID != "fresh" {
		t.Fatalf("wrong id: %+v", created)
	}
	if got["demo_id"] != "demo-7" || got["total_days"] != float64(10) {
		t.Fatalf("wrong body: %v", got)
	}
}
