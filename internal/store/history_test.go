package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/inovacc/ghprofile/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestHistory(t *testing.T) *History {
	t.Helper()

	h, err := OpenHistory(filepath.Join(t.TempDir(), "nested", "history.bolt"))
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := h.Close(); err != nil {
			t.Logf("failed to close history: %v", err)
		}
	})

	return h
}

func TestHistory_RecordAndRecent(t *testing.T) {
	h := setupTestHistory(t)
	base := time.Date(2026, 10, 1, 6, 0, 0, 0, time.UTC)

	for i := range 5 {
		require.NoError(t, h.Record(&Run{
			StartedAt:    base.AddDate(0, 0, i),
			Repositories: 60 + i,
		}))
	}

	runs, err := h.Recent(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	assert.Equal(t, 64, runs[0].Repositories)
	assert.Equal(t, 63, runs[1].Repositories)
	assert.Equal(t, 62, runs[2].Repositories)

	for _, r := range runs {
		assert.NotEmpty(t, r.ID)
	}

	all, err := h.Recent(0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestHistory_RecentEmpty(t *testing.T) {
	h := setupTestHistory(t)

	runs, err := h.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestHistory_RecordNil(t *testing.T) {
	h := setupTestHistory(t)
	assert.Error(t, h.Record(nil))
}

func TestHistory_KeepsExplicitID(t *testing.T) {
	h := setupTestHistory(t)

	require.NoError(t, h.Record(&Run{ID: "fixed-id", StartedAt: time.Now()}))

	runs, err := h.Recent(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "fixed-id", runs[0].ID)
}

func TestNewRun(t *testing.T) {
	started := time.Date(2025, 10, 19, 8, 0, 0, 0, time.UTC)

	result := &core.RunResult{
		Document: &core.Document{Summary: core.Summary{
			User:           "octocat",
			Repositories:   65,
			Pages:          3,
			Forks:          2,
			UnknownParents: 1,
		}},
		Publish: &core.PublishResult{Changed: true, Committed: true, Commit: "abc1234"},
	}

	runErr := &core.PublishError{Step: "push", Err: errors.New("rejected")}

	run := NewRun(started, result, runErr)

	assert.Equal(t, started, run.StartedAt)
	assert.False(t, run.FinishedAt.Before(started))
	assert.Equal(t, "octocat", run.User)
	assert.Equal(t, 65, run.Repositories)
	assert.Equal(t, 3, run.Pages)
	assert.Equal(t, 1, run.UnknownParents)
	assert.True(t, run.Committed)
	assert.Equal(t, "abc1234", run.Commit)
	assert.False(t, run.Pushed)
	assert.Equal(t, "publish", run.ErrorKind)
	assert.Equal(t, "publish failed at push: rejected", run.Error)
	assert.False(t, run.Succeeded())

	ok := NewRun(started, nil, nil)
	assert.True(t, ok.Succeeded())
	assert.Zero(t, ok.Repositories)
}
