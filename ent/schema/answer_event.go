package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one answered question and the mastery change it
// caused.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("event_id").
			Unique().
			Immutable().
			Comment("UUID of the event"),
		field.String("user_id").
			NotEmpty(),
		field.String("skill_id").
			NotEmpty(),
		field.String("lesson_id").
			Optional().
			Nillable(),
		field.String("question_id").
			Optional().
			Nillable(),
		field.Bool("correct"),
		field.Float("p_known_before").
			Comment("p_known before the update"),
		field.Float("p_known_after").
			Comment("p_known after the update"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "skill_id"),
	}
}
