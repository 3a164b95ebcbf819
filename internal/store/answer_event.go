package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var answerColumns = []string{
	"event_id", "sequence", "timestamp", "user_id", "skill_id",
	"lesson_id", "question_id", "correct", "p_known_before", "p_known_after",
}

// answerRow is the scan target for answer_events.
type answerRow struct {
	EventID      string    `sql:"event_id"`
	Sequence     int64     `sql:"sequence"`
	Timestamp    time.Time `sql:"timestamp"`
	UserID       string    `sql:"user_id"`
	SkillID      string    `sql:"skill_id"`
	LessonID     string    `sql:"lesson_id"`
	QuestionID   string    `sql:"question_id"`
	Correct      bool      `sql:"correct"`
	PKnownBefore float64   `sql:"p_known_before"`
	PKnownAfter  float64   `sql:"p_known_after"`
}

// eventRepo implements EventRepo. It is append-only: nothing here updates
// or deletes a logged answer.
type eventRepo struct {
	conn dialect.ExecQuerier
	seq  *sequenceCounter
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) (int64, error) {
	seqNum, err := r.seq.Next(ctx, r.conn)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	query, args := sqlite().Insert(answerEventsTable).
		Columns(answerColumns...).
		Values(
			uuid.NewString(),
			seqNum,
			time.Now().UTC(),
			data.UserID,
			data.SkillID,
			nullable(data.LessonID),
			nullable(data.QuestionID),
			data.Correct,
			data.PKnownBefore,
			data.PKnownAfter,
		).
		Query()

	if err := r.conn.Exec(ctx, query, args, nil); err != nil {
		return 0, fmt.Errorf("save answer event: %w", err)
	}
	return seqNum, nil
}

func (r *eventRepo) QueryAnswers(ctx context.Context, userID, skillID string, opts QueryOpts) ([]AnswerEvent, error) {
	preds := []*entsql.Predicate{entsql.EQ("user_id", userID)}
	if skillID != "" {
		preds = append(preds, entsql.EQ("skill_id", skillID))
	}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To))
	}

	b := sqlite()
	sel := b.Select(answerColumns...).
		From(b.Table(answerEventsTable)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.conn.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var scanned []answerRow
	if err := entsql.ScanSlice(rows, &scanned); err != nil {
		return nil, fmt.Errorf("scan answer events: %w", err)
	}

	out := make([]AnswerEvent, len(scanned))
	for i, a := range scanned {
		out[i] = AnswerEvent{
			AnswerEventData: AnswerEventData{
				UserID:       a.UserID,
				SkillID:      a.SkillID,
				LessonID:     a.LessonID,
				QuestionID:   a.QuestionID,
				Correct:      a.Correct,
				PKnownBefore: a.PKnownBefore,
				PKnownAfter:  a.PKnownAfter,
			},
			EventID:   a.EventID,
			Sequence:  a.Sequence,
			Timestamp: a.Timestamp,
		}
	}
	return out, nil
}

func (r *eventRepo) SkillAccuracy(ctx context.Context, userID, skillID string, lastN int) (float64, int, error) {
	events, err := r.QueryAnswers(ctx, userID, skillID, QueryOpts{Limit: lastN})
	if err != nil {
		return 0, 0, fmt.Errorf("query answers: %w", err)
	}

	count := len(events)
	if count == 0 {
		return 0, 0, nil
	}

	correct := 0
	for _, e := range events {
		if e.Correct {
			correct++
		}
	}

	return float64(correct) / float64(count), count, nil
}

// nullable maps an empty optional id to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
