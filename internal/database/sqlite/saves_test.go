package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/IdleTracker_Go/internal/domain"
)

func openTemp(t *testing.T) *SaveRepository {
	t.Helper()
	repo, db, err := Open(context.Background(), filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repo
}

func TestSaveRepository_RoundTrip(t *testing.T) {
	repo := openTemp(t)
	ctx := context.Background()

	_, err := repo.Load(ctx, "default")
	assert.ErrorIs(t, err, domain.ErrSaveNotFound)

	require.NoError(t, repo.Save(ctx, "default", []byte(`{"schemaVersion":3,"coins":1}`)))
	require.NoError(t, repo.Save(ctx, "default", []byte(`{"schemaVersion":3,"coins":2}`)))

	got, err := repo.Load(ctx, "default")
	require.NoError(t, err)
	assert.JSONEq(t, `{"schemaVersion":3,"coins":2}`, string(got))

	var version int
	require.NoError(t, repo.db.QueryRowContext(ctx, `SELECT schema_version FROM saves WHERE profile_id = ?`, "default").Scan(&version))
	assert.Equal(t, 3, version)
}

func TestSaveRepository_ProfilesAreIsolated(t *testing.T) {
	repo := openTemp(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "a", []byte(`{"coins":1}`)))
	require.NoError(t, repo.Save(ctx, "b", []byte(`{"coins":2}`)))
	require.NoError(t, repo.Delete(ctx, "a"))

	_, err := repo.Load(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrSaveNotFound)
	got, err := repo.Load(ctx, "b")
	require.NoError(t, err)
	assert.JSONEq(t, `{"coins":2}`, string(got))
}

func TestSaveRepository_RejectsInvalidJSON(t *testing.T) {
	repo := openTemp(t)
	err := repo.Save(context.Background(), "default", []byte(`{not json`))
	assert.ErrorIs(t, err, domain.ErrDatabaseError)
}

func TestSaveRepository_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves.db")
	ctx := context.Background()

	repo, db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, "default", []byte(`{"coins":5}`)))
	require.NoError(t, db.Close())

	repo, db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	got, err := repo.Load(ctx, "default")
	require.NoError(t, err)
	assert.JSONEq(t, `{"coins":5}`, string(got))
	assert.NoError(t, repo.Ping(ctx))
}

func TestSaveRepository_ConcurrentWrites(t *testing.T) {
	repo := openTemp(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.Save(ctx, "default", []byte(fmt.Sprintf(`{"coins":%d}`, i))))
		}(i)
	}
	wg.Wait()

	_, err := repo.Load(ctx, "default")
	assert.NoError(t, err)
}
