package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type skillRepo struct {
	conn dialect.ExecQuerier
}

func (r *skillRepo) UpsertSkills(ctx context.Context, rows []SkillRow) error {
	if len(rows) == 0 {
		return nil
	}

	ins := sqlite().Insert(skillsTable).Columns("id", "description")
	for _, row := range rows {
		var desc any
		if row.Description != "" {
			desc = row.Description
		}
		ins.Values(row.ID, desc)
	}
	query, args := ins.OnConflict(
		entsql.ConflictColumns("id"),
		entsql.ResolveWithNewValues(),
	).Query()

	if err := r.conn.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("upsert skills: %w", err)
	}
	return nil
}

func (r *skillRepo) Descriptions(ctx context.Context) (map[string]string, error) {
	b := sqlite()
	query, args := b.Select("id", "description").
		From(b.Table(skillsTable)).
		Query()

	rows := &entsql.Rows{}
	if err := r.conn.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query skills: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var (
			id   string
			desc entsql.NullString
		)
		if err := rows.Scan(&id, &desc); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		if desc.Valid {
			out[id] = desc.String
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skills: %w", err)
	}
	return out, nil
}
