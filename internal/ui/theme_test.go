package ui

import (
	"testing"

	"github.com/mjarlund/fableday-tui/internal/story"
)

func TestEveryEmotionHasColor(t *testing.T) {
	all := append([]story.Emotion{story.EmotionNeutral}, story.AllEmotions...)
	for _, e := range all {
		if _, ok := emotionColors[e]; !ok {
			t.Fatalf("no color for emotion %q", e)
		}
	}
}

func TestEmotionColorFallback(t *testing.T) {
	p := paletteFor("catppuccin")
	if got := emotionColor(story.Emotion("confusion"), p); got != p.Text {
		t.Fatalf("unknown emotion should fall back to text color, got %v", got)
	}
}

func TestGenreColorFallback(t *testing.T) {
	p := paletteFor("dracula")
	if got := genreColor("western", p); got != p.Accent {
		t.Fatalf("unknown genre should fall back to accent, got %v", got)
	}
}

func TestEveryEndingTypeHasColor(t *testing.T) {
	for _, et := range story.AllEndingTypes {
		if _, ok := endingColors[et]; !ok {
			t.Fatalf("no color for ending type %q", et)
		}
	}
	p := paletteFor("gruvbox")
	if got := endingColor(story.EndingUnknown, p); got != p.Muted {
		t.Fatalf("unknown ending type should fall back to muted, got %v", got)
	}
}

func TestNextThemeNameWraps(t *testing.T) {
	names := themeNames()
	if len(names) < 2 {
		t.Fatalf("expected multiple themes, got %v", names)
	}
	last := names[len(names)-1]
	if got := nextThemeName(last, 1); got != names[0] {
		t.Fatalf("forward wrap: got %q want %q", got, names[0])
	}
	if got := nextThemeName(names[0], -1); got != last {
		t.Fatalf("backward wrap: got %q want %q", got, last)
	}
}

func TestPaletteForUnknownName(t *testing.T) {
	if paletteFor("nonexistent") != palettes["catppuccin"] {
		t.Fatalf("unknown palette name should fall back to catppuccin")
	}
}
