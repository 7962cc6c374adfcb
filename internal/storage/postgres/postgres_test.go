package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomarket/storefront-core/internal/model"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db), mock
}

func TestStore_Read(t *testing.T) {
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_slots WHERE key = $1`)).
			WithArgs("cart").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[]`))

		value, err := s.Read(ctx, "cart")
		require.NoError(t, err)
		assert.Equal(t, `[]`, value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_slots WHERE key = $1`)).
			WithArgs("currentUser").
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		_, err := s.Read(ctx, "currentUser")
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_slots WHERE key = $1`)).
			WithArgs("cart").
			WillReturnError(errors.New("connection reset"))

		_, err := s.Read(ctx, "cart")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read key cart")
	})
}

func TestStore_Write(t *testing.T) {
	ctx := context.Background()

	t.Run("upsert", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_slots (key, value) VALUES ($1, $2)`)).
			WithArgs("cart", `[]`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Write(ctx, "cart", `[]`))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_slots (key, value) VALUES ($1, $2)`)).
			WithArgs("cart", `[]`).
			WillReturnError(errors.New("connection reset"))

		err := s.Write(ctx, "cart", `[]`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write key cart")
	})
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("present or absent", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_slots WHERE key = $1`)).
			WithArgs("cart").
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, s.Delete(ctx, "cart"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_slots WHERE key = $1`)).
			WithArgs("cart").
			WillReturnError(errors.New("connection reset"))

		err := s.Delete(ctx, "cart")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete key cart")
	})
}
