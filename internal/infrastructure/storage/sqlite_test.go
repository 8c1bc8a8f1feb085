package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "nested", "plans.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetPlan(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	created := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	err := s.SavePlan(ctx, StoredPlan{
		ID:          "plan-1",
		Kind:        KindWeek,
		StartDate:   "2026-10-26",
		RequestHash: "abc",
		Data:        []byte(`{"days":[]}`),
		CreatedAt:   created,
	})
	require.NoError(t, err)

	got, err := s.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, KindWeek, got.Kind)
	assert.Equal(t, "2026-10-26", got.StartDate)
	assert.Equal(t, `{"days":[]}`, string(got.Data))
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestGetPlanNotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetPlan(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrPlanNotFound))
}

func TestSavePlanDuplicateID(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	plan := StoredPlan{ID: "dup", Kind: KindDay, StartDate: "2026-10-26", Data: []byte("{}")}

	require.NoError(t, s.SavePlan(ctx, plan))
	assert.Error(t, s.SavePlan(ctx, plan))
	assert.Error(t, s.SavePlan(ctx, StoredPlan{}))
}

func TestListRecent(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.SavePlan(ctx, StoredPlan{
			ID:        id,
			Kind:      KindWeek,
			StartDate: "2026-10-26",
			Data:      []byte("{}"),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	plans, err := s.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "c", plans[0].ID)
	assert.Equal(t, "b", plans[1].ID)
}

func TestMemoryDatabase(t *testing.T) {
	s, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.SavePlan(context.Background(), StoredPlan{ID: "x", Kind: KindDay, Data: []byte("{}")}))
	_, err = s.GetPlan(context.Background(), "x")
	assert.NoError(t, err)
}
