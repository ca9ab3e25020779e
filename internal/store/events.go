package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/linedrill/internal/geometry"
)

// eventRepo implements EventRepo with ent's SQL builder and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// insert appends one row to table, filling the sequence and timestamp.
func (r *eventRepo) insert(ctx context.Context, table string, columns []string, values []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, columns...)...).
		Values(append([]any{seqNum, time.Now().UTC()}, values...)...).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	lines := data.Lines
	if lines == nil {
		lines = []geometry.Segment{}
	}
	linesJSON, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal lines: %w", err)
	}
	codes := data.MistakeCodes
	if codes == nil {
		codes = []string{}
	}
	codesJSON, err := json.Marshal(codes)
	if err != nil {
		return fmt.Errorf("marshal mistake codes: %w", err)
	}

	err = r.insert(ctx, attemptTable,
		[]string{"session_id", "question_id", "question_type", "prompt", "lines", "correct", "mistake_codes"},
		[]any{data.SessionID, data.QuestionID, data.QuestionType, data.Prompt, string(linesJSON), data.Correct, string(codesJSON)},
	)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendHint(ctx context.Context, data HintEventData) error {
	source := data.Source
	if source == "" {
		source = HintSourcePool
	}
	err := r.insert(ctx, hintTable,
		[]string{"session_id", "question_id", "question_type", "source", "hint_text"},
		[]any{data.SessionID, data.QuestionID, data.QuestionType, source, data.HintText},
	)
	if err != nil {
		return fmt.Errorf("save hint event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	err := r.insert(ctx, llmTable,
		[]string{
			"provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", "request_body", "response_body",
		},
		[]any{
			data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
		},
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// selectEvents starts a newest-first query over table with opts applied.
func selectEvents(table string, opts QueryOpts, columns ...string) *entsql.Selector {
	b := builder()
	t := b.Table(table)

	cols := []string{t.C("id"), t.C("sequence"), t.C("timestamp")}
	for _, c := range columns {
		cols = append(cols, t.C(c))
	}
	sel := b.Select(cols...).From(t)

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT(t.C("sequence"), opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT(t.C("sequence"), opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(t.C("timestamp"), opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(t.C("timestamp"), opts.To.UTC()))
	}
	if opts.SessionID != "" && table != llmTable {
		preds = append(preds, entsql.EQ(t.C("session_id"), opts.SessionID))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}

	sel.OrderBy(entsql.Desc(t.C("sequence")))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

func (r *eventRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error) {
	query, args := selectEvents(attemptTable, opts,
		"session_id", "question_id", "question_type", "prompt", "lines", "correct", "mistake_codes",
	).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	defer rows.Close()

	var events []AttemptEvent
	for rows.Next() {
		var (
			e               AttemptEvent
			linesRaw, codes []byte
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp,
			&e.SessionID, &e.QuestionID, &e.QuestionType, &e.Prompt, &linesRaw, &e.Correct, &codes); err != nil {
			return nil, fmt.Errorf("scan attempt event: %w", err)
		}
		if err := json.Unmarshal(linesRaw, &e.Lines); err != nil {
			return nil, fmt.Errorf("decode lines of attempt %d: %w", e.ID, err)
		}
		if err := json.Unmarshal(codes, &e.MistakeCodes); err != nil {
			return nil, fmt.Errorf("decode mistake codes of attempt %d: %w", e.ID, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) QueryHints(ctx context.Context, opts QueryOpts) ([]HintEvent, error) {
	query, args := selectEvents(hintTable, opts,
		"session_id", "question_id", "question_type", "source", "hint_text",
	).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query hint events: %w", err)
	}
	defer rows.Close()

	var events []HintEvent
	for rows.Next() {
		var e HintEvent
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp,
			&e.SessionID, &e.QuestionID, &e.QuestionType, &e.Source, &e.HintText); err != nil {
			return nil, fmt.Errorf("scan hint event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

var llmColumns = []string{
	"provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body",
}

func scanLLMEvent(rows *sql.Rows) (LLMRequestEvent, error) {
	var e LLMRequestEvent
	err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp,
		&e.Provider, &e.Model, &e.Purpose, &e.InputTokens, &e.OutputTokens,
		&e.LatencyMs, &e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	return e, err
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	query, args := selectEvents(llmTable, opts, llmColumns...).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMRequestEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error) {
	sel := selectEvents(llmTable, QueryOpts{}, llmColumns...)
	sel.Where(entsql.EQ(sel.C("id"), id))
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get LLM event: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	e, err := scanLLMEvent(rows)
	if err != nil {
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	return &e, nil
}

func (r *eventRepo) ClearHistory(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{attemptTable, hintTable} {
		query, args := builder().Delete(table).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}
