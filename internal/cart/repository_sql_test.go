package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/skincare-storefront/internal/database"
)

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.EnsureSchema(ctx), "schema creation is idempotent")

	_, err = repo.Load(ctx, "s1", StorageKey)
	assert.ErrorIs(t, err, ErrSnapshotMissing)

	require.NoError(t, repo.Save(ctx, "s1", StorageKey, []byte(`{"version":1,"items":[]}`)))
	require.NoError(t, repo.Save(ctx, "s1", StorageKey, []byte(`[]`)))
	data, err := repo.Load(ctx, "s1", StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	require.NoError(t, repo.Delete(ctx, "s1", StorageKey))
	_, err = repo.Load(ctx, "s1", StorageKey)
	assert.ErrorIs(t, err, ErrSnapshotMissing)
}

func TestSQLiteRepository_BacksStore(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()
	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.EnsureSchema(ctx))

	st := NewStore(repo, "s1", nil)
	st.Hydrate(ctx)
	st.Add(ctx, item("2", "39.99", 3))

	reloaded := NewStore(repo, "s1", nil)
	reloaded.Hydrate(ctx)
	assert.Equal(t, "119.97", reloaded.Total().String())
}

func TestPostgresRepository_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM cart_snapshots").WithArgs("s1", StorageKey).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(`{"version":1,"items":[]}`))
	mock.ExpectQuery("FROM cart_snapshots").WithArgs("s2", StorageKey).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	data, err := repo.Load(context.Background(), "s1", StorageKey)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":1`)

	_, err = repo.Load(context.Background(), "s2", StorageKey)
	assert.ErrorIs(t, err, ErrSnapshotMissing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_SaveAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO cart_snapshots").
		WithArgs("s1", StorageKey, `[]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM cart_snapshots").
		WithArgs("s1", StorageKey).
		WillReturnError(errors.New("connection reset"))

	require.NoError(t, repo.Save(context.Background(), "s1", StorageKey, []byte(`[]`)))
	assert.Error(t, repo.Delete(context.Background(), "s1", StorageKey))
	assert.NoError(t, mock.ExpectationsWereMet())
}
