package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	skillsTable       = "skills"
	statesTable       = "bkt_states"
	answerEventsTable = "answer_events"
)

var (
	// SkillsColumns holds the columns for the "skills" table.
	SkillsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Nullable: true},
	}
	// SkillsTable holds the schema information for the "skills" table.
	SkillsTable = &schema.Table{
		Name:       skillsTable,
		Columns:    SkillsColumns,
		PrimaryKey: []*schema.Column{SkillsColumns[0]},
	}

	// BktStatesColumns holds the columns for the "bkt_states" table.
	BktStatesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "skill_id", Type: field.TypeString},
		{Name: "p_known", Type: field.TypeFloat64},
		{Name: "p_learn", Type: field.TypeFloat64},
		{Name: "p_guess", Type: field.TypeFloat64},
		{Name: "p_slip", Type: field.TypeFloat64},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// BktStatesTable holds the schema information for the "bkt_states" table.
	BktStatesTable = &schema.Table{
		Name:       statesTable,
		Columns:    BktStatesColumns,
		PrimaryKey: []*schema.Column{BktStatesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "bktstate_user_id_skill_id",
				Unique:  true,
				Columns: []*schema.Column{BktStatesColumns[1], BktStatesColumns[2]},
			},
		},
	}

	// AnswerEventsColumns holds the columns for the "answer_events" table.
	AnswerEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "event_id", Type: field.TypeString, Unique: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "user_id", Type: field.TypeString},
		{Name: "skill_id", Type: field.TypeString},
		{Name: "lesson_id", Type: field.TypeString, Nullable: true},
		{Name: "question_id", Type: field.TypeString, Nullable: true},
		{Name: "correct", Type: field.TypeBool},
		{Name: "p_known_before", Type: field.TypeFloat64},
		{Name: "p_known_after", Type: field.TypeFloat64},
	}
	// AnswerEventsTable holds the schema information for the "answer_events" table.
	AnswerEventsTable = &schema.Table{
		Name:       answerEventsTable,
		Columns:    AnswerEventsColumns,
		PrimaryKey: []*schema.Column{AnswerEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "answerevent_user_id_skill_id",
				Unique:  false,
				Columns: []*schema.Column{AnswerEventsColumns[4], AnswerEventsColumns[5]},
			},
			{
				Name:    "answerevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{AnswerEventsColumns[3]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		SkillsTable,
		BktStatesTable,
		AnswerEventsTable,
	}
)
