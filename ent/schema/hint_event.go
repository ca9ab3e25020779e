package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// HintEvent records a hint shown after an incorrect attempt.
type HintEvent struct {
	ent.Schema
}

func (HintEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (HintEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").NotEmpty(),
		field.String("question_id").NotEmpty(),
		field.String("question_type").NotEmpty(),
		field.String("source").
			Default("pool").
			Comment("pool or coach"),
		field.String("hint_text").NotEmpty(),
	}
}

func (HintEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
