package story

import "encoding/json"

// Project splits the raw persisted records of a story into the readable
// chapter sequence and the ending, when one has been written. Records arrive
// in server order (prologue first, then days ascending) and that order is
// kept as-is. The first record of type "ending" is lifted into an Ending;
// later ones, which the server should never produce, are ignored.
func Project(records []Chapter) ([]Chapter, *Ending) {
	chapters := make([]Chapter, 0, len(records))
	var ending *Ending
	for _, rec := range records {
		if rec.Type != ChapterEnding {
			chapters = append(chapters, rec)
			continue
		}
		if ending == nil {
			e := projectEnding(rec)
			ending = &e
		}
	}
	return chapters, ending
}

// projectEnding decodes the nested ending payload of an ending record. A
// missing or unreadable payload degrades to EndingUnknown with the chapter
// body salvaged, so one bad record never sinks a whole reload.
func projectEnding(rec Chapter) Ending {
	e := Ending{
		Type:      EndingUnknown,
		Title:     rec.Title,
		Text:      rec.Text,
		WordCount: rec.WordCount,
	}
	if len(rec.Ending) > 0 {
		var p Ending
		if err := json.Unmarshal(rec.Ending, &p); err == nil {
			if p.Type != "" {
				e.Type = p.Type
			}
			if p.Title != "" {
				e.Title = p.Title
			}
			if p.Text != "" {
				e.Text = p.Text
			}
			if p.WordCount > 0 {
				e.WordCount = p.WordCount
			}
			e.Resolved = p.Resolved
			e.Unresolved = p.Unresolved
		}
	}
	if e.Resolved == nil {
		e.Resolved = []string{}
	}
	if e.Unresolved == nil {
		e.Unresolved = []string{}
	}
	return e
}
