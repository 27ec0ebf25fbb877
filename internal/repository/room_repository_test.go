package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupulse/timetable-api/internal/models"
)

func newRoomRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestRoomRepositoryListEligible(t *testing.T) {
	db, mock, cleanup := newRoomRepoMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "seats_amount", "type", "created_at", "updated_at"}).
		AddRow("room-a", "Lab A", 30, "LAB", time.Now(), time.Now()).
		AddRow("room-b", "Lab B", 40, "LAB", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, seats_amount, type, created_at, updated_at FROM rooms WHERE type = $1 AND seats_amount >= $2 ORDER BY name ASC, id ASC")).
		WithArgs("LAB", 20).
		WillReturnRows(rows)

	rooms, err := repo.ListEligible(context.Background(), "LAB", 20)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "room-a", rooms[0].ID)
	assert.Equal(t, "room-b", rooms[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryList(t *testing.T) {
	db, mock, cleanup := newRoomRepoMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "seats_amount", "type", "created_at", "updated_at"}).
		AddRow("room-a", "Lab A", 30, "LAB", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, name, seats_amount, type, created_at, updated_at FROM rooms WHERE 1=1").
		WithArgs("LAB").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM rooms WHERE 1=1")).
		WithArgs("LAB").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rooms, total, err := repo.List(context.Background(), models.RoomFilter{Type: "LAB"})
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRoomRepoMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	mock.ExpectExec("INSERT INTO rooms").
		WillReturnResult(sqlmock.NewResult(1, 1))

	room := models.Room{Name: "Lab A", SeatsAmount: 30, Type: "LAB"}
	require.NoError(t, repo.Create(context.Background(), &room))
	assert.NotEmpty(t, room.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
