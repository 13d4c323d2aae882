package story

// String backed enums matching the service vocabulary. The server validates
// against the same closed sets; the client never invents new values.

type Emotion string
type EndingType string
type ChapterType string

const (
	EmotionJoy          Emotion = "joy"
	EmotionTrust        Emotion = "trust"
	EmotionFear         Emotion = "fear"
	EmotionSurprise     Emotion = "surprise"
	EmotionSadness      Emotion = "sadness"
	EmotionDisgust      Emotion = "disgust"
	EmotionAnger        Emotion = "anger"
	EmotionAnticipation Emotion = "anticipation"
	// EmotionNeutral marks chapters written without a chosen stance, such as
	// the prologue.
	EmotionNeutral Emotion = "neutral"
)

// AllEmotions lists the stances a reader can pick for a day, in picker order.
// Neutral is deliberately absent: it is assigned by the server, never chosen.
var AllEmotions = []Emotion{
	EmotionJoy, EmotionTrust, EmotionFear, EmotionSurprise,
	EmotionSadness, EmotionDisgust, EmotionAnger, EmotionAnticipation,
}

const (
	EndingRedemption     EndingType = "redemption"
	EndingTragedy        EndingType = "tragedy"
	EndingTriumph        EndingType = "triumph"
	EndingSacrifice      EndingType = "sacrifice"
	EndingMystery        EndingType = "mystery"
	EndingTransformation EndingType = "transformation"
	// EndingUnknown is the degraded value used when a persisted ending record
	// carries no readable payload. It never appears in an ending vector.
	EndingUnknown EndingType = "unknown"
)

var AllEndingTypes = []EndingType{
	EndingRedemption, EndingTragedy, EndingTriumph,
	EndingSacrifice, EndingMystery, EndingTransformation,
}

const (
	ChapterPrologue ChapterType = "prologue"
	ChapterDay      ChapterType = "day"
	ChapterEnding   ChapterType = "ending"
)

// Known reports whether e belongs to the pickable vocabulary or is neutral.
func (e Emotion) Known() bool {
	if e == EmotionNeutral {
		return true
	}
	for _, k := range AllEmotions {
		if e == k {
			return true
		}
	}
	return false
}
