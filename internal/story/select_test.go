package story

import "testing"

func TestDefaultSelectionMostRecent(t *testing.T) {
	chapters := []Chapter{dayChapter(0, EmotionNeutral), dayChapter(1, EmotionFear), dayChapter(3, EmotionJoy), dayChapter(2, EmotionTrust)}
	sel := DefaultSelection(chapters, nil, false)
	if !sel.IsChapter() || sel.Day != 3 {
		t.Fatalf("expected day 3, got %+v", sel)
	}
}

func TestDefaultSelectionForcedEnding(t *testing.T) {
	chapters := []Chapter{dayChapter(0, EmotionNeutral)}
	e := &Ending{Type: EndingTriumph}
	if sel := DefaultSelection(chapters, e, true); !sel.IsEnding() {
		t.Fatalf("expected ending selection, got %+v", sel)
	}
	// Requesting the ending without one present falls back to chapters.
	if sel := DefaultSelection(chapters, nil, true); !sel.IsChapter() || sel.Day != 0 {
		t.Fatalf("expected prologue fallback, got %+v", sel)
	}
}

func TestDefaultSelectionEmpty(t *testing.T) {
	if sel := DefaultSelection(nil, nil, false); sel.Kind != SelectionNone {
		t.Fatalf("expected empty state, got %+v", sel)
	}
}

func TestNormalizeSelectionKeepsResolvable(t *testing.T) {
	chapters := []Chapter{dayChapter(0, EmotionNeutral), dayChapter(1, EmotionAnger), dayChapter(2, EmotionJoy)}
	if sel := NormalizeSelection(SelectDay(1), chapters, nil); !sel.IsChapter() || sel.Day != 1 {
		t.Fatalf("resolvable selection replaced: %+v", sel)
	}
	e := &Ending{Type: EndingMystery}
	if sel := NormalizeSelection(EndingSelection(), chapters, e); !sel.IsEnding() {
		t.Fatalf("ending selection dropped: %+v", sel)
	}
}

func TestNormalizeSelectionMissingDayFallsBack(t *testing.T) {
	chapters := []Chapter{dayChapter(0, EmotionNeutral), dayChapter(1, EmotionAnger)}
	sel := NormalizeSelection(SelectDay(9), chapters, nil)
	if !sel.IsChapter() || sel.Day != 1 {
		t.Fatalf("expected most-recent fallback, got %+v", sel)
	}
	// Ending selection with no ending behaves the same way.
	sel = NormalizeSelection(EndingSelection(), chapters, nil)
	if !sel.IsChapter() || sel.Day != 1 {
		t.Fatalf("expected most-recent fallback, got %+v", sel)
	}
}

func TestChapterByDay(t *testing.T) {
	chapters := []Chapter{dayChapter(0, EmotionNeutral), dayChapter(4, EmotionSadness)}
	c, ok := ChapterByDay(chapters, 4)
	if !ok || c.Day != 4 {
		t.Fatalf("lookup failed: %+v ok=%v", c, ok)
	}
	if _, ok := ChapterByDay(chapters, 2); ok {
		t.Fatal("expected miss for absent day")
	}
}
