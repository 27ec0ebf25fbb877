package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisciplineRepositoryListActivePairings(t *testing.T) {
	db, mock, cleanup := newClassScheduleRepoMock(t)
	defer cleanup()
	repo := NewDisciplineRepository(db)

	rows := sqlmock.NewRows([]string{
		"discipline_teacher_id", "teacher_id", "discipline_id", "discipline_name",
		"total_hours", "required_room_type", "module_id", "total_students",
	}).
		AddRow("dt-1", "t-1", "d-1", "Microbiology", 4.0, "LAB", "m-2", 28).
		AddRow("dt-2", "t-2", "d-2", "Pharmacology", 6.0, "CLASSROOM", "m-1", 20)

	// One row per pairing: the inner DISTINCT ON collapses multi-module
	// activations, keeping the largest cohort.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT ON (dt.id) dt.id AS discipline_teacher_id")).
		WithArgs("period-1").
		WillReturnRows(rows)

	pairings, err := repo.ListActivePairings(context.Background(), "period-1")
	require.NoError(t, err)
	require.Len(t, pairings, 2)
	assert.Equal(t, "dt-1", pairings[0].DisciplineTeacherID)
	assert.Equal(t, 28, pairings[0].TotalStudents)
	assert.Equal(t, "m-2", pairings[0].ModuleID)
	assert.Equal(t, "dt-2", pairings[1].DisciplineTeacherID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
