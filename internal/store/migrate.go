package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/linedrill/ent/schema"
)

const (
	attemptTable = "attempt_events"
	hintTable    = "hint_events"
	llmTable     = "llm_request_events"
)

// eventSchemas maps each event table to the ent schema describing it.
var eventSchemas = []struct {
	table  string
	schema ent.Interface
}{
	{attemptTable, entschema.AttemptEvent{}},
	{hintTable, entschema.HintEvent{}},
	{llmTable, entschema.LLMRequestEvent{}},
}

// migrate creates or updates every event table.
func migrate(ctx context.Context, drv dialect.Driver) error {
	tables := make([]*schema.Table, 0, len(eventSchemas))
	for _, es := range eventSchemas {
		t, err := tableFor(es.table, es.schema)
		if err != nil {
			return err
		}
		tables = append(tables, t)
	}

	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, tables...)
}

// tableFor builds a migration table from an ent schema's mixin and own
// fields and indexes. Every table gets an auto-increment id primary key.
func tableFor(name string, s ent.Interface) (*schema.Table, error) {
	id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	t := &schema.Table{
		Name:       name,
		Columns:    []*schema.Column{id},
		PrimaryKey: []*schema.Column{id},
	}
	columns := map[string]*schema.Column{"id": id}

	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", name, d.Name, d.Err)
		}
		c := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional,
			Size:     int64(d.Size),
		}
		if v, ok := staticDefault(d.Default); ok {
			c.Default = v
		}
		t.Columns = append(t.Columns, c)
		columns[d.Name] = c
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		cols := make([]*schema.Column, 0, len(d.Fields))
		for _, fname := range d.Fields {
			c, ok := columns[fname]
			if !ok {
				return nil, fmt.Errorf("index on %s: unknown field %q", name, fname)
			}
			cols = append(cols, c)
		}
		t.Indexes = append(t.Indexes, &schema.Index{
			Name:    name + "_" + strings.Join(d.Fields, "_"),
			Unique:  d.Unique,
			Columns: cols,
		})
	}
	return t, nil
}

// staticDefault returns a column default for literal values. Function
// defaults such as time.Now are filled in by the writer instead.
func staticDefault(v any) (any, bool) {
	switch v.(type) {
	case string, bool, int, int64, float64:
		return v, true
	}
	return nil, false
}
