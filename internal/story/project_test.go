package story

import (
	"encoding/json"
	"testing"
)

func dayChapter(day int, emotion Emotion) Chapter {
	t := ChapterDay
	if day == 0 {
		t = ChapterPrologue
		emotion = EmotionNeutral
	}
	return Chapter{
		ID:      "ch-" + string(rune('a'+day)),
		StoryID: "s1",
		Day:     day,
		Emotion: emotion,
		Type:    t,
		Text:    "prose",
		Summary: "recap",
	}
}

func endingChapter(payload string) Chapter {
	c := Chapter{ID: "ch-end", StoryID: "s1", Day: 8, Type: ChapterEnding, Title: "The Long Walk Home", Text: "final prose", WordCount: 900}
	if payload != "" {
		c.Ending = json.RawMessage(payload)
	}
	return c
}

func TestProjectPartitionsEndingOut(t *testing.T) {
	records := []Chapter{
		dayChapter(0, EmotionNeutral),
		dayChapter(1, EmotionFear),
		dayChapter(2, EmotionTrust),
		endingChapter(`{"ending_type":"redemption","title":"Dawn","text":"closing","word_count":812,"resolved_threads":["the debt"],"unresolved_threads":["the letter"]}`),
	}
	chapters, ending := Project(records)
	if len(chapters) != 3 {
		t.Fatalf("expected 3 chapters, got %d", len(chapters))
	}
	for _, c := range chapters {
		if c.Type == ChapterEnding {
			t.Fatalf("ending record leaked into chapter sequence: %+v", c)
		}
	}
	if ending == nil {
		t.Fatal("expected an ending")
	}
	if ending.Type != EndingRedemption || ending.Title != "Dawn" || ending.WordCount != 812 {
		t.Fatalf("ending payload not projected: %+v", ending)
	}
	if len(ending.Resolved) != 1 || ending.Resolved[0] != "the debt" {
		t.Fatalf("resolved threads wrong: %v", ending.Resolved)
	}
}

func TestProjectKeepsRecordOrder(t *testing.T) {
	records := []Chapter{dayChapter(0, EmotionNeutral), dayChapter(1, EmotionJoy), dayChapter(2, EmotionAnger)}
	chapters, _ := Project(records)
	for i, c := range chapters {
		if c.Day != i {
			t.Fatalf("order changed at index %d: day %d", i, c.Day)
		}
	}
}

func TestProjectAtMostOneEnding(t *testing.T) {
	records := []Chapter{
		endingChapter(`{"ending_type":"tragedy"}`),
		endingChapter(`{"ending_type":"triumph"}`),
	}
	chapters, ending := Project(records)
	if len(chapters) != 0 {
		t.Fatalf("expected no chapters, got %d", len(chapters))
	}
	if ending == nil || ending.Type != EndingTragedy {
		t.Fatalf("expected first ending record to win, got %+v", ending)
	}
}

func TestProjectMalformedEndingPayload(t *testing.T) {
	for name, payload := range map[string]string{
		"absent":    "",
		"garbage":   `{"ending_type": 12`,
		"no fields": `{}`,
	} {
		_, ending := Project([]Chapter{endingChapter(payload)})
		if ending == nil {
			t.Fatalf("%s: reload-level failure, expected degraded ending", name)
		}
		if ending.Type != EndingUnknown {
			t.Fatalf("%s: expected unknown sentinel, got %q", name, ending.Type)
		}
		if ending.Resolved == nil || ending.Unresolved == nil {
			t.Fatalf("%s: thread lists must be empty, not nil", name)
		}
		if len(ending.Resolved) != 0 || len(ending.Unresolved) != 0 {
			t.Fatalf("%s: thread lists must be empty", name)
		}
		if ending.Text != "final prose" || ending.Title != "The Long Walk Home" {
			t.Fatalf("%s: chapter body not salvaged: %+v", name, ending)
		}
	}
}

func TestProjectEmptyInput(t *testing.T) {
	chapters, ending := Project(nil)
	if len(chapters) != 0 || ending != nil {
		t.Fatalf("expected empty projection, got %d chapters, ending=%v", len(chapters), ending)
	}
}
