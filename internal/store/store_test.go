package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var memDBSeq int

func openTestStore(t *testing.T) *Store {
	t.Helper()
	// Each test gets its own shared-cache in-memory database.
	memDBSeq++
	s, err := Open(fmt.Sprintf("file:mindspark_test_%d?mode=memory&cache=shared", memDBSeq))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"busy_timeout", "5000"},
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

func TestTableOf_FromEntSchemas(t *testing.T) {
	tables := map[string][]string{}
	for _, e := range entities {
		tbl, err := tableOf(e)
		if err != nil {
			t.Fatalf("tableOf: %v", err)
		}
		for _, c := range tbl.Columns {
			tables[tbl.Name] = append(tables[tbl.Name], c.Name)
		}
	}

	want := map[string][]string{
		kvTable: {"id", "key", "value", "updated_at"},
		llmEventTable: {
			"id", "timestamp", "provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", "request_body", "response_body",
		},
	}
	for name, cols := range want {
		got := tables[name]
		if strings.Join(got, ",") != strings.Join(cols, ",") {
			t.Errorf("%s columns = %v, want %v", name, got, cols)
		}
	}
}

func TestMigrate_CreatesEntTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{kvTable, llmEventTable} {
		var n int
		err := s.DB().QueryRow("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&n)
		if err != nil || n != 1 {
			t.Fatalf("table %s: count=%d err=%v", table, n, err)
		}
	}

	var unique int
	err := s.DB().QueryRow("SELECT count(*) FROM pragma_index_list('kv') WHERE \"unique\" = 1").Scan(&unique)
	if err != nil || unique == 0 {
		t.Fatalf("kv.key should be unique: count=%d err=%v", unique, err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mindspark.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s.Bucket().Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s.Close()

	got, err := s.Bucket().Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "v" {
		t.Fatalf("value after reopen = %q, want %q", got, "v")
	}
}

func bucketImplementations(t *testing.T) map[string]Bucket {
	return map[string]Bucket{
		"sqlite": openTestStore(t).Bucket(),
		"memory": NewMemoryBucket(),
	}
}

func TestBucket_GetMissing(t *testing.T) {
	for name, b := range bucketImplementations(t) {
		t.Run(name, func(t *testing.T) {
			got, err := b.Get(context.Background(), "nope")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != nil {
				t.Fatalf("expected nil for missing key, got %q", got)
			}
		})
	}
}

func TestBucket_SetOverwrites(t *testing.T) {
	for name, b := range bucketImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := b.Set(ctx, "mindspark_session", []byte(`{"id":"1"}`)); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := b.Set(ctx, "mindspark_session", []byte(`{"id":"2"}`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err := b.Get(ctx, "mindspark_session")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if string(got) != `{"id":"2"}` {
				t.Fatalf("got %s, want overwritten value", got)
			}
		})
	}
}

func TestBucket_DeleteIdempotent(t *testing.T) {
	for name, b := range bucketImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_ = b.Set(ctx, "a", []byte("1"))
			if err := b.Delete(ctx, "a"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := b.Delete(ctx, "a"); err != nil {
				t.Fatalf("second delete: %v", err)
			}
			got, _ := b.Get(ctx, "a")
			if got != nil {
				t.Fatalf("expected key to be gone, got %q", got)
			}
		})
	}
}

func TestBucket_Keys(t *testing.T) {
	for name, b := range bucketImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, k := range []string{"mindspark_users", "mindspark_results", "mindspark_session"} {
				if err := b.Set(ctx, k, []byte("[]")); err != nil {
					t.Fatalf("set %s: %v", k, err)
				}
			}
			keys, err := b.Keys(ctx)
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			want := []string{"mindspark_results", "mindspark_session", "mindspark_users"}
			if len(keys) != len(want) {
				t.Fatalf("keys = %v, want %v", keys, want)
			}
			for i := range want {
				if keys[i] != want[i] {
					t.Fatalf("keys[%d] = %q, want %q", i, keys[i], want[i])
				}
			}
		})
	}
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "quiz-questions", InputTokens: 100, OutputTokens: 900, LatencyMs: 1200, Success: true},
		{Provider: "gemini", Model: "gemini-3-pro-preview", Purpose: "personality-analysis", InputTokens: 800, OutputTokens: 400, LatencyMs: 3000, Success: true},
		{Provider: "gemini", Model: "gemini-3-pro-preview", Purpose: "personality-analysis", LatencyMs: 1000, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	if all[0].ErrorMessage != "boom" {
		t.Fatalf("expected newest first, got %+v", all[0])
	}
	if all[0].Success {
		t.Fatal("expected failed event to have Success=false")
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "quiz-questions"})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].Model != "gemini-3-flash-preview" {
		t.Fatalf("unexpected filtered result: %+v", limited)
	}

	future, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query future: %v", err)
	}
	if len(future) != 0 {
		t.Fatalf("expected no events from the future, got %d", len(future))
	}

	got, err := repo.GetLLMEvent(ctx, all[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Purpose != "quiz-questions" || got.InputTokens != 100 {
		t.Fatalf("unexpected event: %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for unknown ID")
	}
}

func TestEventRepo_Usage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	_ = repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "m1", Purpose: "a", InputTokens: 10, OutputTokens: 1, LatencyMs: 100})
	_ = repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "m1", Purpose: "b", InputTokens: 20, OutputTokens: 2, LatencyMs: 300})
	_ = repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "m2", Purpose: "b", InputTokens: 30, OutputTokens: 3, LatencyMs: 500})

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	b := byPurpose[1]
	if b.Purpose != "b" || b.Calls != 2 || b.InputTokens != 50 || b.OutputTokens != 5 || b.AvgLatencyMs != 400 {
		t.Fatalf("unexpected purpose usage: %+v", b)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "m1" || byModel[0].Calls != 2 || byModel[0].InputTokens != 30 {
		t.Fatalf("unexpected model usage: %+v", byModel)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_ = s.Bucket().Set(ctx, "mindspark_users", []byte("[]"))
	_ = s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "x"})

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	keys, _ := s.Bucket().Keys(ctx)
	if len(keys) != 0 {
		t.Fatalf("expected empty bucket after reset, got %v", keys)
	}
	events, _ := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if len(events) != 0 {
		t.Fatalf("expected no events after reset, got %d", len(events))
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	want := filepath.Join(t.TempDir(), "sub", "custom.db")
	t.Setenv("MINDSPARK_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("MINDSPARK_DB", "")
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	want := filepath.Join(dataHome, "mindspark", "mindspark.db")
	if got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}
}
