package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Skill is a catalog skill learners are traced on.
type Skill struct {
	ent.Schema
}

func (Skill) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable().
			Comment("Skill key, e.g. chronology"),
		field.String("description").
			Optional().
			Nillable(),
	}
}
