// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfcamara/enuvex/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.LedgerConfig{Path: filepath.Join(t.TempDir(), "runs.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	id, err := s.Record(ctx, Run{
		Kind:     "export",
		Started:  started,
		Finished: started.Add(2 * time.Minute),
		Groups:   3,
		People:   120,
		Failures: 1,
		Output:   "DADOS_ENUVENS.xlsx",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	runs, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	r := runs[0]
	assert.Equal(t, id, r.ID)
	assert.Equal(t, "export", r.Kind)
	assert.True(t, r.Started.Equal(started))
	assert.Equal(t, 3, r.Groups)
	assert.Equal(t, 120, r.People)
	assert.Equal(t, 1, r.Failures)
	assert.Equal(t, "DADOS_ENUVENS.xlsx", r.Output)
}

func TestList_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.Record(ctx, Run{
			Kind:    "export",
			Started: base.Add(time.Duration(i) * time.Hour),
			Output:  string(rune('a' + i)),
		})
		require.NoError(t, err)
	}

	runs, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "c", runs[0].Output)
	assert.Equal(t, "a", runs[2].Output)
}

func TestList_Limit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Record(ctx, Run{Kind: "upload", Started: time.Now().Add(time.Duration(i) * time.Second)})
		require.NoError(t, err)
	}

	runs, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRecord_KeepsExplicitID(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Record(context.Background(), Run{ID: "fixed-id", Kind: "export", Started: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)
}

func TestList_Empty(t *testing.T) {
	s := openTestStore(t)

	runs, err := s.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
