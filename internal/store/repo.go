package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/bkt/internal/bkt"
)

// ErrNotFound is returned by strict lookups when no row matches.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SkillState is the persisted BKT state of one (user, skill) pair.
type SkillState struct {
	UserID    string
	SkillID   string
	PKnown    float64
	Params    bkt.Params
	UpdatedAt time.Time
}

// SkillRow is a catalog skill as stored in the skills table.
type SkillRow struct {
	ID          string
	Description string
}

// AnswerEventData captures one observation and its effect on mastery.
type AnswerEventData struct {
	UserID       string
	SkillID      string
	LessonID     string // optional, opaque
	QuestionID   string // optional, opaque
	Correct      bool
	PKnownBefore float64
	PKnownAfter  float64
}

// AnswerEvent is a stored AnswerEventData with its log position.
type AnswerEvent struct {
	AnswerEventData
	EventID   string
	Sequence  int64
	Timestamp time.Time
}

// StateRepo reads and writes per-user skill state.
type StateRepo interface {
	// Get returns the stored state or ErrNotFound.
	Get(ctx context.Context, userID, skillID string) (*SkillState, error)

	// FetchOrDefault returns the stored state, or a state built from prior
	// and params when none exists. The bool reports whether a row was found.
	FetchOrDefault(ctx context.Context, userID, skillID string, prior float64, params bkt.Params) (*SkillState, bool, error)

	// Upsert writes the state, replacing any existing row for the pair.
	Upsert(ctx context.Context, st *SkillState) error

	// ListByUser returns every state of a user ordered by skill id.
	ListByUser(ctx context.Context, userID string) ([]SkillState, error)

	// InsertMissing creates states for the skills the user has none for and
	// returns how many were created. Existing rows are left untouched.
	InsertMissing(ctx context.Context, userID string, skillIDs []string, pKnown float64, params bkt.Params) (int, error)

	// UpsertAll writes a state for every skill, overwriting existing rows.
	UpsertAll(ctx context.Context, userID string, skillIDs []string, pKnown float64, params bkt.Params) error
}

// SkillRepo manages the skills table.
type SkillRepo interface {
	// UpsertSkills inserts or updates the given skills.
	UpsertSkills(ctx context.Context, rows []SkillRow) error

	// Descriptions returns skill id to description for every stored skill.
	Descriptions(ctx context.Context) (map[string]string, error)
}

// EventRepo provides append and query access to the answer log.
type EventRepo interface {
	// AppendAnswer records an answer event and returns its sequence number.
	AppendAnswer(ctx context.Context, data AnswerEventData) (int64, error)

	// QueryAnswers returns a user's answers, newest first. An empty skillID
	// matches every skill.
	QueryAnswers(ctx context.Context, userID, skillID string, opts QueryOpts) ([]AnswerEvent, error)

	// SkillAccuracy returns the share of correct answers among the last N
	// answers for the pair, and how many answers were considered.
	SkillAccuracy(ctx context.Context, userID, skillID string, lastN int) (float64, int, error)
}
