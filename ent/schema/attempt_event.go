package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/abhisek/linedrill/internal/geometry"
)

// AttemptEvent records one submitted drawing and its grade.
type AttemptEvent struct {
	ent.Schema
}

func (AttemptEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AttemptEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Practice session the attempt belongs to"),
		field.String("question_id").
			NotEmpty(),
		field.String("question_type").
			NotEmpty().
			Comment("Registered question type id"),
		field.String("prompt").
			NotEmpty(),
		field.JSON("lines", []geometry.Segment{}).
			Comment("Submitted segments"),
		field.Bool("correct"),
		field.Strings("mistake_codes").
			Comment("Mistake codes in grading order"),
	}
}

func (AttemptEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("question_type"),
	}
}
