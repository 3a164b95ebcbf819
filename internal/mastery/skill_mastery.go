package mastery

import (
	"errors"
	"time"
)

// ErrInvalidObservation is returned when an observation lacks a user or
// skill id.
var ErrInvalidObservation = errors.New("invalid observation")

// Observation is one answered question for a (user, skill) pair.
// LessonID and QuestionID are carried to the answer log untouched.
type Observation struct {
	UserID     string
	SkillID    string
	Correct    bool
	LessonID   string
	QuestionID string
}

// SkillMastery is one row of a learner's mastery listing.
type SkillMastery struct {
	SkillID     string    `json:"skill_key"`
	PKnown      float64   `json:"p_known"`
	Description *string   `json:"description"`
	Level       Level     `json:"level"`
	UpdatedAt   time.Time `json:"updated_at"`
}
