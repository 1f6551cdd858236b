package morale

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Emotion is how an employee rated their day.
type Emotion int

const (
	EmotionBad    Emotion = 1
	EmotionNormal Emotion = 2
	EmotionGood   Emotion = 3
)

// Scale is the highest emotion; team averages are expressed against it.
const Scale = int(EmotionGood)

func (e Emotion) Valid() bool {
	return e >= EmotionBad && e <= EmotionGood
}

func (e Emotion) Label() string {
	switch e {
	case EmotionBad:
		return "Bad"
	case EmotionNormal:
		return "Normal"
	case EmotionGood:
		return "Good"
	default:
		return ""
	}
}

// Emoji renders the emotion as "<emoji> <label>".
func (e Emotion) Emoji() string {
	switch e {
	case EmotionBad:
		return "😡 " + e.Label()
	case EmotionNormal:
		return "😌 " + e.Label()
	case EmotionGood:
		return "🥳 " + e.Label()
	default:
		return ""
	}
}

// Mood buckets a team average. The thresholds split the 1..3 scale in
// thirds.
func Mood(average float64) string {
	switch {
	case average < 1.667:
		return "sad"
	case average < 2.334:
		return "normal"
	default:
		return "happy"
	}
}

type Morale struct {
	ID         uint
	CompanyID  uuid.UUID
	EmployeeID uint
	Emotion    Emotion
	Comment    string
	CreatedAt  time.Time
}

// TeamHistory is the daily average morale of a team.
type TeamHistory struct {
	CompanyID uuid.UUID
	TeamID    uint
	Average   float64
	CreatedAt time.Time
}

type Repository interface {
	// ListTeamHistory returns the team's daily averages recorded at or after
	// since, oldest first.
	ListTeamHistory(ctx context.Context, teamID uint, since time.Time) ([]TeamHistory, error)
	// ListForEmployee returns morale entries created in [from, to).
	ListForEmployee(ctx context.Context, employeeID uint, from, to time.Time) ([]Morale, error)
}
