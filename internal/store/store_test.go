package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
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

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"llm_request_events", "activity_events", "settings", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "again.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.SettingsRepo().SetOnce(context.Background(), "k", "v")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.SettingsRepo().Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(ctx, s.drv)
	require.NoError(t, err)

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		require.NoError(t, err)
		seqs = append(seqs, seq)
	}

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, seqs)
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "summary",
		InputTokens: 100, OutputTokens: 20, LatencyMs: 40, Success: true,
		RequestBody: "[user]\nsummarize", ResponseBody: `{"summary":"x"}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "chat-answer",
		InputTokens: 50, OutputTokens: 10, LatencyMs: 60, Success: false,
		ErrorMessage: "boom",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "chat-answer", events[0].Purpose, "newest first")
	assert.False(t, events[0].Success)
	assert.Equal(t, "boom", events[0].ErrorMessage)
	assert.Equal(t, "summary", events[1].Purpose)
	assert.WithinDuration(t, time.Now(), events[1].Timestamp, time.Minute)

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "summary", Limit: 10})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, `{"summary":"x"}`, filtered[0].ResponseBody)

	got, err := repo.GetLLMEvent(ctx, filtered[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "[user]\nsummarize", got.RequestBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEventRepo_Usage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, d := range []LLMRequestEventData{
		{Model: "gpt-4o-mini", Purpose: "quiz-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 100, Success: true},
		{Model: "gpt-4o-mini", Purpose: "quiz-gen", InputTokens: 200, OutputTokens: 50, LatencyMs: 300, Success: true},
		{Model: "gpt-4o-mini", Purpose: "chat-answer", LatencyMs: 10, Success: false},
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, d))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, PurposeUsage{Purpose: "chat-answer", Calls: 1, AvgLatencyMs: 10, Failures: 1}, byPurpose[0])
	assert.Equal(t, PurposeUsage{Purpose: "quiz-gen", Calls: 2, InputTokens: 300, OutputTokens: 100, AvgLatencyMs: 200}, byPurpose[1])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 1)
	assert.Equal(t, ModelUsage{Model: "gpt-4o-mini", Calls: 2, InputTokens: 300, OutputTokens: 100}, byModel[0])
}

func TestActivityRepo_Totals(t *testing.T) {
	s := openTestStore(t)
	repo := s.ActivityRepo()
	ctx := context.Background()

	empty, err := repo.Totals(ctx, "user_a")
	require.NoError(t, err)
	assert.Equal(t, ActivityTotals{}, empty)

	require.NoError(t, repo.RecordNote(ctx, "user_a", "biology.txt"))
	require.NoError(t, repo.RecordQuiz(ctx, "user_a", "biology.txt", 5))
	require.NoError(t, repo.RecordAttempt(ctx, "user_a", "a1", 60, 5))
	require.NoError(t, repo.RecordAttempt(ctx, "user_a", "a2", 100, 5))
	require.NoError(t, repo.RecordNote(ctx, "user_b", "other.txt"))

	totals, err := repo.Totals(ctx, "user_a")
	require.NoError(t, err)
	assert.Equal(t, 1, totals.Notes)
	assert.Equal(t, 1, totals.Quizzes)
	assert.Equal(t, 2, totals.Attempts)
	assert.InDelta(t, 80.0, totals.AverageScore, 0.001)
	require.NotNil(t, totals.LastActivity)
	assert.WithinDuration(t, time.Now(), *totals.LastActivity, time.Minute)

	assert.Error(t, repo.RecordAttempt(ctx, "user_a", "bad", 101, 5))

	require.NoError(t, repo.Clear(ctx, "user_a"))
	cleared, err := repo.Totals(ctx, "user_a")
	require.NoError(t, err)
	assert.Zero(t, cleared.Notes)

	other, err := repo.Totals(ctx, "user_b")
	require.NoError(t, err)
	assert.Equal(t, 1, other.Notes)
}

func TestSettingsRepo_SetOnce(t *testing.T) {
	s := openTestStore(t)
	repo := s.SettingsRepo()
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, SettingDisplayName)
	require.NoError(t, err)
	assert.False(t, ok)

	wrote, err := repo.SetOnce(ctx, SettingDisplayName, "Alex")
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = repo.SetOnce(ctx, SettingDisplayName, "Sam")
	require.NoError(t, err)
	assert.False(t, wrote, "second write is ignored")

	v, ok, err := repo.Get(ctx, SettingDisplayName)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Alex", v)

	require.NoError(t, repo.Delete(ctx, SettingDisplayName))
	require.NoError(t, repo.Delete(ctx, SettingDisplayName))

	_, ok, err = repo.Get(ctx, SettingDisplayName)
	require.NoError(t, err)
	assert.False(t, ok)
}
