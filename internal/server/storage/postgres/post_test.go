package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/shareall/internal/models"
	"github.com/iudanet/shareall/internal/server/storage"
)

func TestCreatePost(t *testing.T) {
	s, mock, db := newStorageWithMock(t)
	defer db.Close()

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+posts\s*\(content,\s*timestamp,\s*user_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id`).
		WithArgs("some post content", ts, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(99)))

	post := &models.Post{Content: "some post content", Timestamp: ts, UserID: 7}
	require.NoError(t, s.CreatePost(context.Background(), post))

	assert.Equal(t, int64(99), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPostByID_NotFound(t *testing.T) {
	s, mock, db := newStorageWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+id,\s*content,\s*timestamp,\s*user_id\s+FROM\s+posts\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(1)).
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetPostByID(context.Background(), 1)
	assert.ErrorIs(t, err, storage.ErrPostNotFound)
}

func TestCountPosts(t *testing.T) {
	s, mock, db := newStorageWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+posts`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	count, err := s.CountPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
