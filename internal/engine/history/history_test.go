package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	r := NewRecord("dQw4w9WgXcQ", []string{"Twitter"}, []string{"#go"}, map[string]string{"Twitter": "hi"})
	_, err := uuid.Parse(r.ID)
	assert.NoError(t, err)
	assert.Equal(t, time.UTC, r.CreatedAt.Location())
	assert.WithinDuration(t, time.Now(), r.CreatedAt, time.Minute)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, defaultListLimit, clampLimit(0))
	assert.Equal(t, 5, clampLimit(5))
	assert.Equal(t, maxListLimit, clampLimit(1000))
}

// exerciseStore runs the shared Store contract against s.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	first := NewRecord("aaaaaaaaaaa", []string{"Twitter", "Instagram"}, []string{"#a", "#b"},
		map[string]string{"Twitter": "t1", "Instagram": "i1"})
	first.CreatedAt = base.Add(-2 * time.Hour)
	second := NewRecord("aaaaaaaaaaa", []string{"LinkedIn"}, []string{"#c"}, map[string]string{"LinkedIn": "l1"})
	second.CreatedAt = base.Add(-time.Hour)
	other := NewRecord("bbbbbbbbbbb", nil, []string{"#d"}, map[string]string{})
	other.CreatedAt = base

	for _, r := range []Record{first, second, other} {
		require.NoError(t, s.Save(ctx, r))
	}

	got, err := s.List(ctx, "aaaaaaaaaaa", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID, "newest first")
	assert.Equal(t, first.ID, got[1].ID)
	assert.Equal(t, []string{"Twitter", "Instagram"}, got[1].Platforms)
	assert.Equal(t, []string{"#a", "#b"}, got[1].Hashtags)
	assert.Equal(t, "i1", got[1].Posts["Instagram"])
	assert.True(t, first.CreatedAt.Equal(got[1].CreatedAt))

	all, err := s.List(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, other.ID, all[0].ID)

	limited, err := s.List(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := s.List(ctx, "ccccccccccc", 10)
	require.NoError(t, err)
	assert.Empty(t, none)

	assert.Error(t, s.Save(ctx, first), "duplicate id must be rejected")
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	exerciseStore(t, s)
}

func TestSQLiteReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), NewRecord("aaaaaaaaaaa", nil, []string{"#x"}, nil)))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.List(context.Background(), "aaaaaaaaaaa", 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	s, err := ConnectPostgres(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, `DELETE FROM generation_runs WHERE video_id IN ('aaaaaaaaaaa', 'bbbbbbbbbbb')`)
		s.Close()
	})
	_, err = s.pool.Exec(ctx, `DELETE FROM generation_runs WHERE video_id IN ('aaaaaaaaaaa', 'bbbbbbbbbbb')`)
	require.NoError(t, err)

	exerciseStore(t, s)
}

func TestConnectPostgresRequiresURL(t *testing.T) {
	_, err := ConnectPostgres(context.Background(), "")
	assert.Error(t, err)
}
