package store

import (
	"testing"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entschema "github.com/abhisek/bkt/ent/schema"
)

type entSchema interface {
	Fields() []ent.Field
	Indexes() []ent.Index
	Mixin() []ent.Mixin
}

func schemaFields(s entSchema) []ent.Field {
	var fields []ent.Field
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
	}
	return append(fields, s.Fields()...)
}

func schemaIndexes(s entSchema) []ent.Index {
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		indexes = append(indexes, m.Indexes()...)
	}
	return append(indexes, s.Indexes()...)
}

func column(t *testing.T, table *schema.Table, name string) *schema.Column {
	t.Helper()
	for _, c := range table.Columns {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("table %s has no column %q", table.Name, name)
	return nil
}

func TestTablesMatchEntSchema(t *testing.T) {
	cases := []struct {
		schema entSchema
		table  *schema.Table
	}{
		{entschema.Skill{}, SkillsTable},
		{entschema.BktState{}, BktStatesTable},
		{entschema.AnswerEvent{}, AnswerEventsTable},
	}

	for _, tc := range cases {
		t.Run(tc.table.Name, func(t *testing.T) {
			fields := schemaFields(tc.schema)
			names := map[string]bool{"id": true}

			for _, f := range fields {
				d := f.Descriptor()
				require.NoError(t, d.Err, d.Name)
				names[d.Name] = true

				col := column(t, tc.table, d.Name)
				assert.Equal(t, d.Info.Type, col.Type, d.Name)
				assert.Equal(t, d.Optional, col.Nullable, d.Name)
				if d.Name != "id" {
					assert.Equal(t, d.Unique, col.Unique, d.Name)
				}
			}

			for _, c := range tc.table.Columns {
				assert.True(t, names[c.Name], "column %s missing from ent schema", c.Name)
			}

			for _, idx := range schemaIndexes(tc.schema) {
				d := idx.Descriptor()
				var found bool
				for _, ti := range tc.table.Indexes {
					if len(ti.Columns) != len(d.Fields) {
						continue
					}
					match := true
					for i, c := range ti.Columns {
						if c.Name != d.Fields[i] {
							match = false
						}
					}
					if match {
						found = true
						assert.Equal(t, d.Unique, ti.Unique, ti.Name)
					}
				}
				assert.True(t, found, "index on %v missing from table", d.Fields)
			}
		})
	}
}
