package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/bkt/internal/bkt"
)

var stateColumns = []string{"user_id", "skill_id", "p_known", "p_learn", "p_guess", "p_slip", "updated_at"}

// stateRow is the scan target for bkt_states.
type stateRow struct {
	UserID    string    `sql:"user_id"`
	SkillID   string    `sql:"skill_id"`
	PKnown    float64   `sql:"p_known"`
	PLearn    float64   `sql:"p_learn"`
	PGuess    float64   `sql:"p_guess"`
	PSlip     float64   `sql:"p_slip"`
	UpdatedAt time.Time `sql:"updated_at"`
}

func (r stateRow) toState() SkillState {
	return SkillState{
		UserID:  r.UserID,
		SkillID: r.SkillID,
		PKnown:  r.PKnown,
		Params: bkt.Params{
			Learn: r.PLearn,
			Guess: r.PGuess,
			Slip:  r.PSlip,
		},
		UpdatedAt: r.UpdatedAt,
	}
}

// stateRepo implements StateRepo over an ent SQL connection or transaction.
type stateRepo struct {
	conn dialect.ExecQuerier
}

func sqlite() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *stateRepo) selectStates(ctx context.Context, where *entsql.Predicate) ([]stateRow, error) {
	b := sqlite()
	query, args := b.Select(stateColumns...).
		From(b.Table(statesTable)).
		Where(where).
		OrderBy("skill_id").
		Query()

	rows := &entsql.Rows{}
	if err := r.conn.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []stateRow
	if err := entsql.ScanSlice(rows, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *stateRepo) Get(ctx context.Context, userID, skillID string) (*SkillState, error) {
	rows, err := r.selectStates(ctx, entsql.And(
		entsql.EQ("user_id", userID),
		entsql.EQ("skill_id", skillID),
	))
	if err != nil {
		return nil, fmt.Errorf("query state: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("state %s/%s: %w", userID, skillID, ErrNotFound)
	}
	st := rows[0].toState()
	return &st, nil
}

func (r *stateRepo) FetchOrDefault(ctx context.Context, userID, skillID string, prior float64, params bkt.Params) (*SkillState, bool, error) {
	rows, err := r.selectStates(ctx, entsql.And(
		entsql.EQ("user_id", userID),
		entsql.EQ("skill_id", skillID),
	))
	if err != nil {
		return nil, false, fmt.Errorf("query state: %w", err)
	}
	if len(rows) == 0 {
		return &SkillState{
			UserID:  userID,
			SkillID: skillID,
			PKnown:  prior,
			Params:  params,
		}, false, nil
	}
	st := rows[0].toState()
	return &st, true, nil
}

func (r *stateRepo) Upsert(ctx context.Context, st *SkillState) error {
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = time.Now().UTC()
	}

	query, args := sqlite().Insert(statesTable).
		Columns(stateColumns...).
		Values(st.UserID, st.SkillID, st.PKnown, st.Params.Learn, st.Params.Guess, st.Params.Slip, st.UpdatedAt).
		OnConflict(
			entsql.ConflictColumns("user_id", "skill_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.conn.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}
	return nil
}

func (r *stateRepo) ListByUser(ctx context.Context, userID string) ([]SkillState, error) {
	rows, err := r.selectStates(ctx, entsql.EQ("user_id", userID))
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	out := make([]SkillState, len(rows))
	for i, row := range rows {
		out[i] = row.toState()
	}
	return out, nil
}

func (r *stateRepo) InsertMissing(ctx context.Context, userID string, skillIDs []string, pKnown float64, params bkt.Params) (int, error) {
	if len(skillIDs) == 0 {
		return 0, nil
	}

	query, args := r.bulkInsert(userID, skillIDs, pKnown, params).
		OnConflict(
			entsql.ConflictColumns("user_id", "skill_id"),
			entsql.DoNothing(),
		).
		Query()

	var res entsql.Result
	if err := r.conn.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("insert missing states: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

func (r *stateRepo) UpsertAll(ctx context.Context, userID string, skillIDs []string, pKnown float64, params bkt.Params) error {
	if len(skillIDs) == 0 {
		return nil
	}

	query, args := r.bulkInsert(userID, skillIDs, pKnown, params).
		OnConflict(
			entsql.ConflictColumns("user_id", "skill_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.conn.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("upsert states: %w", err)
	}
	return nil
}

func (r *stateRepo) bulkInsert(userID string, skillIDs []string, pKnown float64, params bkt.Params) *entsql.InsertBuilder {
	now := time.Now().UTC()
	ins := sqlite().Insert(statesTable).Columns(stateColumns...)
	for _, id := range skillIDs {
		ins.Values(userID, id, pKnown, params.Learn, params.Guess, params.Slip, now)
	}
	return ins
}
