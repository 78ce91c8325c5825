package favorite

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepository_Add(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO session_favorites").
		WithArgs("s1", "2", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"product_ids"}).AddRow("{5,2}"))
	mock.ExpectQuery("INSERT INTO session_favorites").
		WithArgs("s1", "2", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"product_ids"}))

	ids, err := repo.Add(context.Background(), "s1", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "2"}, ids)

	_, err = repo.Add(context.Background(), "s1", "2")
	assert.ErrorIs(t, err, ErrAlreadyFavorite)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_RemoveAndList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("UPDATE session_favorites").
		WithArgs("s1", "9", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"product_ids"}))
	mock.ExpectQuery("SELECT product_ids FROM session_favorites").
		WithArgs("s2").
		WillReturnRows(sqlmock.NewRows([]string{"product_ids"}))
	mock.ExpectQuery("SELECT product_ids FROM session_favorites").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"product_ids"}).AddRow("{1,3}"))

	_, err = repo.Remove(context.Background(), "s1", "9")
	assert.ErrorIs(t, err, ErrNotFavorite)

	ids, err := repo.List(context.Background(), "s2")
	require.NoError(t, err)
	assert.Equal(t, []string{}, ids)

	ids, err = repo.List(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
