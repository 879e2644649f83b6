package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepoHasSenderMessage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMessageRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM messages WHERE property_id = ? AND sender_id = ?")).
		WithArgs("p-1", "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	participant, err := repo.HasSenderMessage(context.Background(), "p-1", "u-1")
	require.NoError(t, err)
	assert.True(t, participant)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM messages WHERE property_id = ? AND sender_id = ?")).
		WithArgs("p-1", "u-2").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	participant, err = repo.HasSenderMessage(context.Background(), "p-1", "u-2")
	require.NoError(t, err)
	assert.False(t, participant)
}

func TestMessageRepoListByPropertyAscending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMessageRepo(db)

	cols := []string{"id", "content", "sender_id", "property_id", "created_at", "u_id", "u_name", "u_avatar"}
	first := time.Now().UTC().Add(-time.Minute)
	second := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY m.created_at ASC")).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("m-1", "first", "u-1", "p-1", first, "u-1", "Ann", nil).
			AddRow("m-2", "second", "u-2", "p-1", second, "u-2", "Bob", nil))

	msgs, err := repo.ListByProperty(context.Background(), "p-1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Content)
	assert.Equal(t, "second", msgs[1].Content)
	require.NotNil(t, msgs[0].Sender)
	assert.Equal(t, "Ann", msgs[0].Sender.Name)
	assert.True(t, msgs[0].CreatedAt.Before(msgs[1].CreatedAt))
}
