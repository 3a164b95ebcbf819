package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// BktState is the current knowledge estimate of one learner for one skill,
// with the parameters its updates run under.
type BktState struct {
	ent.Schema
}

func (BktState) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			NotEmpty(),
		field.String("skill_id").
			NotEmpty(),
		field.Float("p_known").
			Range(0, 1).
			Comment("Probability the skill is mastered"),
		field.Float("p_learn").
			Range(0, 1),
		field.Float("p_guess").
			Range(0, 1),
		field.Float("p_slip").
			Range(0, 1),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

func (BktState) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "skill_id").
			Unique(),
	}
}
