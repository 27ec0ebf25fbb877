package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupulse/timetable-api/internal/models"
)

func newAvailabilityRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAvailabilityRepositoryListActiveSlots(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)
	date := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"schedule_id", "day_of_week", "time_slot_id", "start_time", "end_time"}).
		AddRow("sched-mon-am", "Monday", "ts-1", "08:00", "10:00").
		AddRow("sched-mon-pm", "Monday", "ts-2", "14:00", "16:00")
	mock.ExpectQuery("SELECT s.id AS schedule_id, s.day_of_week, s.time_slot_id, ts.start_time, ts.end_time").
		WithArgs("t-1", "Monday", date).
		WillReturnRows(rows)

	slots, err := repo.ListActiveSlots(context.Background(), "t-1", "Monday", date)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "sched-mon-am", slots[0].ScheduleID)
	assert.Equal(t, "08:00", slots[0].StartTime)
	assert.Equal(t, "sched-mon-pm", slots[1].ScheduleID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryListByTeacher(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	rows := sqlmock.NewRows([]string{"id", "teacher_id", "schedule_id", "status", "created_at", "updated_at"}).
		AddRow("av-1", "t-1", "sched-mon", true, time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, teacher_id, schedule_id, status, created_at, updated_at FROM teacher_availability").
		WithArgs("t-1").
		WillReturnRows(rows)

	list, err := repo.ListByTeacher(context.Background(), "t-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	mock.ExpectExec("INSERT INTO teacher_availability").
		WillReturnResult(sqlmock.NewResult(1, 1))

	availability := models.TeacherAvailability{TeacherID: "t-1", ScheduleID: "sched-mon", Status: true}
	require.NoError(t, repo.Create(context.Background(), &availability))
	assert.NotEmpty(t, availability.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryCreateException(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	mock.ExpectExec("INSERT INTO availability_exceptions").
		WillReturnResult(sqlmock.NewResult(1, 1))

	exception := models.AvailabilityException{
		TeacherAvailabilityID: "av-1",
		ExceptionDate:         time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateException(context.Background(), &exception))
	assert.NotEmpty(t, exception.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
