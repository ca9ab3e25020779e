package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) TypeStats(ctx context.Context) ([]TypeStats, error) {
	b := builder()
	t := b.Table(attemptTable)
	query, args := b.Select(
		t.C("question_type"),
		entsql.As(entsql.Count("*"), "attempts"),
		entsql.As(entsql.Sum(t.C("correct")), "correct_count"),
	).
		From(t).
		GroupBy(t.C("question_type")).
		OrderBy(t.C("question_type")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query type stats: %w", err)
	}
	defer rows.Close()

	var stats []TypeStats
	for rows.Next() {
		var s TypeStats
		if err := rows.Scan(&s.QuestionType, &s.Attempts, &s.Correct); err != nil {
			return nil, fmt.Errorf("scan type stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	b := builder()
	t := b.Table(llmTable)
	query, args := b.Select(
		t.C("purpose"),
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum(t.C("input_tokens")), "input_tokens"),
		entsql.As(entsql.Sum(t.C("output_tokens")), "output_tokens"),
		entsql.As(entsql.Sum(t.C("latency_ms")), "latency_ms"),
	).
		From(t).
		GroupBy(t.C("purpose")).
		OrderBy(entsql.Desc("calls"), t.C("purpose")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()

	var usage []LLMUsage
	for rows.Next() {
		var (
			u       LLMUsage
			latency int64
		)
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &latency); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		if u.Calls > 0 {
			u.AvgLatencyMs = latency / int64(u.Calls)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	b := builder()
	t := b.Table(llmTable)
	query, args := b.Select(
		t.C("model"),
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum(t.C("input_tokens")), "input_tokens"),
		entsql.As(entsql.Sum(t.C("output_tokens")), "output_tokens"),
	).
		From(t).
		GroupBy(t.C("model")).
		OrderBy(entsql.Desc("calls"), t.C("model")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query model usage: %w", err)
	}
	defer rows.Close()

	var usage []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan model usage: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}
