package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/linedrill/internal/geometry"
)

var dbCounter atomic.Int64

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbCounter.Add(1))
	s, err := Open(dsn)
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func seg(x1, y1, x2, y2 int) geometry.Segment {
	return geometry.Segment{P1: geometry.Point{X: x1, Y: y1}, P2: geometry.Point{X: x2, Y: y2}}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	assert.NotNil(t, s.DB())
	assert.NotNil(t, s.EventRepo())
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_FileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linedrill.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestMigrateCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{attemptTable, hintTable, llmTable, "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestTableFor_MixinFieldsAndIndexes(t *testing.T) {
	for _, es := range eventSchemas {
		tbl, err := tableFor(es.table, es.schema)
		require.NoError(t, err)

		var names []string
		for _, c := range tbl.Columns {
			names = append(names, c.Name)
		}
		assert.Equal(t, []string{"id", "sequence", "timestamp"}, names[:3], es.table)

		var idxNames []string
		for _, idx := range tbl.Indexes {
			idxNames = append(idxNames, idx.Name)
		}
		assert.Contains(t, idxNames, es.table+"_timestamp")
	}
}

type sizedSchema struct {
	ent.Schema
}

func (sizedSchema) Fields() []ent.Field {
	return []ent.Field{
		field.String("code").MaxLen(32),
		field.String("note"),
	}
}

func TestTableFor_KeepsColumnSize(t *testing.T) {
	tbl, err := tableFor("sized", sizedSchema{})
	require.NoError(t, err)

	sizes := map[string]int64{}
	for _, c := range tbl.Columns {
		sizes[c.Name] = c.Size
	}
	assert.Equal(t, int64(32), sizes["code"])
	assert.Zero(t, sizes["note"])
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for want := int64(1); want <= 5; want++ {
		got, err := s.seq.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendAttempt(ctx, AttemptEventData{
		SessionID: "s1", QuestionID: "q1", QuestionType: "two-points-line", Prompt: "p",
	}))
	require.NoError(t, repo.AppendHint(ctx, HintEventData{
		SessionID: "s1", QuestionID: "q1", QuestionType: "two-points-line", HintText: "h",
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Success: true}))

	attempts, err := repo.QueryAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	hints, err := repo.QueryHints(ctx, QueryOpts{})
	require.NoError(t, err)
	llm, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)

	require.Len(t, attempts, 1)
	require.Len(t, hints, 1)
	require.Len(t, llm, 1)
	assert.Equal(t, int64(1), attempts[0].Sequence)
	assert.Equal(t, int64(2), hints[0].Sequence)
	assert.Equal(t, int64(3), llm[0].Sequence)
}

func TestAttemptRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	data := AttemptEventData{
		SessionID:    "sess",
		QuestionID:   "qid",
		QuestionType: "equation-line",
		Prompt:       "Draw the line: y = 2x + 1",
		Lines:        []geometry.Segment{seg(0, 1, 1, 3), seg(-2, 0, 2, 0)},
		Correct:      false,
		MistakeCodes: []string{"WRONG_SLOPE", "WRONG_INTERCEPT"},
	}
	require.NoError(t, repo.AppendAttempt(ctx, data))

	got, err := repo.QueryAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, data, got[0].AttemptEventData)
	assert.Positive(t, got[0].ID)
	assert.True(t, got[0].Timestamp.After(before))
}

func TestAttemptNilSlicesStoredEmpty(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendAttempt(ctx, AttemptEventData{
		SessionID: "s", QuestionID: "q", QuestionType: "t", Prompt: "p", Correct: true,
	}))
	got, err := repo.QueryAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Lines)
	assert.Empty(t, got[0].MistakeCodes)
	assert.True(t, got[0].Correct)
}

func TestQueryOpts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := range 6 {
		session := "a"
		if i%2 == 1 {
			session = "b"
		}
		require.NoError(t, repo.AppendAttempt(ctx, AttemptEventData{
			SessionID: session, QuestionID: fmt.Sprintf("q%d", i), QuestionType: "t", Prompt: "p",
		}))
	}

	tests := []struct {
		name string
		opts QueryOpts
		want []string
	}{
		{"all newest first", QueryOpts{}, []string{"q5", "q4", "q3", "q2", "q1", "q0"}},
		{"limit", QueryOpts{Limit: 2}, []string{"q5", "q4"}},
		{"after", QueryOpts{After: 4}, []string{"q5", "q4"}},
		{"before", QueryOpts{Before: 3}, []string{"q1", "q0"}},
		{"session", QueryOpts{SessionID: "b"}, []string{"q5", "q3", "q1"}},
		{"session and limit", QueryOpts{SessionID: "a", Limit: 1}, []string{"q4"}},
		{"future window", QueryOpts{From: time.Now().Add(time.Hour)}, nil},
	}
	for _, tt := range tests {
		got, err := repo.QueryAttempts(ctx, tt.opts)
		require.NoError(t, err, tt.name)
		var ids []string
		for _, e := range got {
			ids = append(ids, e.QuestionID)
		}
		assert.Equal(t, tt.want, ids, tt.name)
	}
}

func TestHintDefaultSource(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendHint(ctx, HintEventData{
		SessionID: "s", QuestionID: "q", QuestionType: "t", HintText: "look again",
	}))
	require.NoError(t, repo.AppendHint(ctx, HintEventData{
		SessionID: "s", QuestionID: "q", QuestionType: "t", Source: HintSourceCoach, HintText: "why?",
	}))

	got, err := repo.QueryHints(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, HintSourceCoach, got[0].Source)
	assert.Equal(t, HintSourcePool, got[1].Source)
	assert.Equal(t, "look again", got[1].HintText)
}

func TestLLMEventRoundTripAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-20250514",
		Purpose:      "hint-coach",
		InputTokens:  120,
		OutputTokens: 30,
		LatencyMs:    850,
		Success:      false,
		ErrorMessage: "rate limited",
		RequestBody:  `{"messages":[]}`,
		ResponseBody: "",
	}
	require.NoError(t, repo.AppendLLMRequest(ctx, data))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, data, events[0].LLMRequestEventData)

	got, err := repo.GetLLMEvent(ctx, events[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, events[0], *got)

	missing, err := repo.GetLLMEvent(ctx, events[0].ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTypeStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	stats, err := repo.TypeStats(ctx)
	require.NoError(t, err)
	assert.Empty(t, stats)

	record := func(typ string, correct bool) {
		require.NoError(t, repo.AppendAttempt(ctx, AttemptEventData{
			SessionID: "s", QuestionID: "q", QuestionType: typ, Prompt: "p", Correct: correct,
		}))
	}
	record("two-points-line", true)
	record("two-points-line", false)
	record("two-points-line", true)
	record("equation-line", false)

	stats, err = repo.TypeStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, TypeStats{QuestionType: "equation-line", Attempts: 1, Correct: 0}, stats[0])
	assert.Equal(t, TypeStats{QuestionType: "two-points-line", Attempts: 3, Correct: 2}, stats[1])
	assert.InDelta(t, 2.0/3.0, stats[1].Accuracy(), 1e-9)
	assert.Zero(t, TypeStats{}.Accuracy())
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "hint-coach", InputTokens: 100, OutputTokens: 10, LatencyMs: 200, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "hint-coach", InputTokens: 50, OutputTokens: 20, LatencyMs: 400, Success: true},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "unknown", InputTokens: 5, OutputTokens: 5, LatencyMs: 100, Success: true},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsage{Purpose: "hint-coach", Calls: 2, InputTokens: 150, OutputTokens: 30, AvgLatencyMs: 300}, byPurpose[0])
	assert.Equal(t, LLMUsage{Purpose: "unknown", Calls: 1, InputTokens: 5, OutputTokens: 5, AvgLatencyMs: 100}, byPurpose[1])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, ModelUsage{Model: "gpt-4o-mini", Calls: 2, InputTokens: 150, OutputTokens: 30}, byModel[0])
	assert.Equal(t, ModelUsage{Model: "gemini-2.0-flash", Calls: 1, InputTokens: 5, OutputTokens: 5}, byModel[1])
}

func TestClearHistory(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendAttempt(ctx, AttemptEventData{SessionID: "s", QuestionID: "q", QuestionType: "t", Prompt: "p"}))
	require.NoError(t, repo.AppendHint(ctx, HintEventData{SessionID: "s", QuestionID: "q", QuestionType: "t", HintText: "h"}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Success: true}))

	require.NoError(t, repo.ClearHistory(ctx))

	attempts, err := repo.QueryAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, attempts)
	hints, err := repo.QueryHints(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, hints)
	llm, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, llm, 1)

	// The sequence keeps counting after a clear.
	require.NoError(t, repo.AppendAttempt(ctx, AttemptEventData{SessionID: "s", QuestionID: "q", QuestionType: "t", Prompt: "p"}))
	attempts, err = repo.QueryAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, int64(4), attempts[0].Sequence)
}

func TestDefaultDBPath_Env(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "drill.db")
	t.Setenv("LINEDRILL_DB", p)
	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.DirExists(t, filepath.Dir(p))
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LINEDRILL_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "linedrill", "linedrill.db"), got)
}
