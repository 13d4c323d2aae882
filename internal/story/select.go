package story

type SelectionKind string

const (
	SelectionNone    SelectionKind = "none"
	SelectionChapter SelectionKind = "chapter"
	SelectionEnding  SelectionKind = "ending"
)

// Selection identifies what the reader is looking at: a chapter day, the
// ending, or nothing for a story with no content yet.
type Selection struct {
	Kind SelectionKind
	Day  int // meaningful only when Kind == SelectionChapter
}

func NoSelection() Selection        { return Selection{Kind: SelectionNone} }
func SelectDay(day int) Selection   { return Selection{Kind: SelectionChapter, Day: day} }
func EndingSelection() Selection    { return Selection{Kind: SelectionEnding} }
func (s Selection) IsEnding() bool  { return s.Kind == SelectionEnding }
func (s Selection) IsChapter() bool { return s.Kind == SelectionChapter }

// DefaultSelection applies the post-load rule: the ending when it was
// explicitly requested and exists, else the chapter with the largest day,
// else nothing. Manual selections never survive a reload; callers re-derive
// from this after every successful load.
func DefaultSelection(chapters []Chapter, ending *Ending, wantEnding bool) Selection {
	if wantEnding && ending != nil {
		return EndingSelection()
	}
	if day, ok := LatestDay(chapters); ok {
		return SelectDay(day)
	}
	return NoSelection()
}

// NormalizeSelection keeps sel when it still resolves against the given
// content and otherwise falls back to the default rule. Selected days cannot
// vanish under append-only chapters, but if one ever did this degrades to
// the most recent chapter instead of pointing at nothing.
func NormalizeSelection(sel Selection, chapters []Chapter, ending *Ending) Selection {
	switch sel.Kind {
	case SelectionEnding:
		if ending != nil {
			return sel
		}
	case SelectionChapter:
		if _, ok := ChapterByDay(chapters, sel.Day); ok {
			return sel
		}
	}
	return DefaultSelection(chapters, ending, false)
}

// LatestDay returns the numerically largest day among chapters.
func LatestDay(chapters []Chapter) (int, bool) {
	if len(chapters) == 0 {
		return 0, false
	}
	max := chapters[0].Day
	for _, c := range chapters[1:] {
		if c.Day > max {
			max = c.Day
		}
	}
	return max, true
}

// ChapterByDay finds the chapter written for the given day.
func ChapterByDay(chapters []Chapter, day int) (Chapter, bool) {
	for _, c := range chapters {
		if c.Day == day {
			return c, true
		}
	}
	return Chapter{}, false
}
