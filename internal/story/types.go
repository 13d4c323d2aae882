package story

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Snapshot is the server's authoritative summary of one story. DayIndex is
// the next day to be written (1-based); it never decreases across reloads,
// and Finished never reverts to false.
type Snapshot struct {
	ID           string        `json:"story_id"`
	Title        string        `json:"title"`
	Genre        string        `json:"genre,omitempty"`
	DayIndex     int           `json:"day_index"`
	MaxDays      int           `json:"max_days"`
	Finished     bool          `json:"finished"`
	LastEmotion  Emotion       `json:"last_emotion,omitempty"`
	EndingVector EndingVector  `json:"ending_vector"`
	Top2Endings  []EndingScore `json:"top2_endings"`
	OpenThreads  []string      `json:"open_threads"`
}

// CanAdvance reports whether another day may still be written.
func (s Snapshot) CanAdvance() bool { return !s.Finished && s.DayIndex <= s.MaxDays }

// EndingDue reports whether the story is ready for an ending chapter: either
// the server marked it finished or it overran its planned length.
func (s Snapshot) EndingDue() bool { return s.Finished || s.DayIndex > s.MaxDays }

// Chapter is one persisted record of a story. Chapters are immutable once
// written; the client only ever appends by reloading. Ending holds the raw
// nested payload for records of type "ending" and is decoded by Project.
type Chapter struct {
	ID        string          `json:"id"`
	StoryID   string          `json:"story_id"`
	Day       int             `json:"day"` // 0 = prologue
	Emotion   Emotion         `json:"emotion"`
	Type      ChapterType     `json:"chapter_type"`
	Title     string          `json:"chapter_title,omitempty"`
	Text      string          `json:"chapter_text"`
	Summary   string          `json:"chapter_summary"`
	WordCount int             `json:"chapter_word_count"`
	Ending    json.RawMessage `json:"ending,omitempty"`
}

// Label returns the short name used in chapter strips and lists.
func (c Chapter) Label() string {
	switch c.Type {
	case ChapterPrologue:
		return "Prologue"
	case ChapterEnding:
		return "Ending"
	default:
		return "Day " + strconv.Itoa(c.Day)
	}
}

// Ending is the story's single closing chapter in its decoded form. At most
// one exists per story.
type Ending struct {
	Type       EndingType `json:"ending_type"`
	Title      string     `json:"title"`
	Text       string     `json:"text"`
	WordCount  int        `json:"word_count"`
	Resolved   []string   `json:"resolved_threads"`
	Unresolved []string   `json:"unresolved_threads"`
}

// EndingScore is one entry of an ending vector: an ending type and its
// accumulated signed score.
type EndingScore struct {
	Type  EndingType `json:"type"`
	Score int        `json:"score"`
}

// EndingVector is the story's narrative trajectory, ordered as the server
// emitted it. It is kept as a slice rather than a map so the emission order
// survives decoding; Dominant depends on that order for its tie-break.
type EndingVector []EndingScore

// Dominant returns the highest-scoring entry. Equal maxima resolve to the
// entry that appears first in the vector, so repeated scores still yield a
// stable, deterministic winner.
func (v EndingVector) Dominant() (EndingScore, bool) {
	if len(v) == 0 {
		return EndingScore{}, false
	}
	best := v[0]
	for _, e := range v[1:] {
		if e.Score > best.Score {
			best = e
		}
	}
	return best, true
}

// Score returns the score recorded for t.
func (v EndingVector) Score(t EndingType) (int, bool) {
	for _, e := range v {
		if e.Type == t {
			return e.Score, true
		}
	}
	return 0, false
}

// UnmarshalJSON decodes the wire form, a JSON object of type→score pairs,
// reading the token stream directly so key order is preserved.
func (v *EndingVector) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("ending vector: %w", err)
	}
	if tok == nil { // JSON null
		*v = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ending vector: expected object, got %v", tok)
	}
	out := make(EndingVector, 0, len(AllEndingTypes))
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("ending vector: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("ending vector: non-string key %v", keyTok)
		}
		numTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("ending vector: %w", err)
		}
		num, ok := numTok.(json.Number)
		if !ok {
			return fmt.Errorf("ending vector: score for %q is not a number", key)
		}
		score, err := num.Int64()
		if err != nil {
			return fmt.Errorf("ending vector: score for %q: %w", key, err)
		}
		out = append(out, EndingScore{Type: EndingType(key), Score: int(score)})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("ending vector: %w", err)
	}
	*v = out
	return nil
}

// MarshalJSON writes the object back in vector order.
func (v EndingVector) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(e.Type))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(e.Score))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Summary is one row of the story listing.
type Summary struct {
	ID       string `json:"story_id"`
	Title    string `json:"title"`
	Genre    string `json:"genre,omitempty"`
	DayIndex int    `json:"day_index"`
	MaxDays  int    `json:"max_days"`
	Finished bool   `json:"finished"`
}

// Demo is a pre-authored starting template offered on the landing screen.
type Demo struct {
	ID          string `json:"demo_id"`
	Title       string `json:"title"`
	Genre       string `json:"genre,omitempty"`
	Description string `json:"description,omitempty"`
	TotalDays   int    `json:"total_days"`
}
