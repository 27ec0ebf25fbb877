package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupulse/timetable-api/internal/dto"
	"github.com/edupulse/timetable-api/internal/engine"
	"github.com/edupulse/timetable-api/internal/models"
	appErrors "github.com/edupulse/timetable-api/pkg/errors"
)

type generatorStub struct {
	result *engine.Result
	err    error
	called string
}

func (g *generatorStub) Generate(ctx context.Context, academicPeriodID string) (*engine.Result, error) {
	g.called = academicPeriodID
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

type reschedulerStub struct {
	session     *models.ClassSchedule
	err         error
	gotSchedule string
	gotDate     time.Time
}

func (r *reschedulerStub) Reschedule(ctx context.Context, classScheduleID, newScheduleID string, newDate time.Time) (*models.ClassSchedule, error) {
	r.gotSchedule = newScheduleID
	r.gotDate = newDate
	if r.err != nil {
		return nil, r.err
	}
	return r.session, nil
}

type classScheduleStoreStub struct {
	list      []models.ClassSchedule
	total     int
	deleteErr error
	gotFilter models.ClassScheduleFilter
}

func (s *classScheduleStoreStub) List(ctx context.Context, filter models.ClassScheduleFilter) ([]models.ClassSchedule, int, error) {
	s.gotFilter = filter
	return s.list, s.total, nil
}

func (s *classScheduleStoreStub) Delete(ctx context.Context, id string) error {
	return s.deleteErr
}

func TestClassScheduleServiceGenerateBuildsSummary(t *testing.T) {
	gen := &generatorStub{result: &engine.Result{
		Created: []engine.AllocatedSession{
			{
				ClassSchedule: models.ClassSchedule{
					ID:                  "cs-1",
					ScheduleID:          "sched-mon",
					DisciplineTeacherID: "dt-1",
					Date:                time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
				},
				RoomID: "room-1",
			},
		},
		Pairings: []engine.PairingOutcome{{
			DisciplineTeacherID: "dt-1",
			TeacherID:           "t-1",
			DisciplineID:        "d-1",
			RequestedHours:      4,
			ScheduledHours:      2,
			Sessions:            1,
		}},
	}}
	svc := NewClassScheduleService(gen, nil, nil, nil, nil)

	summary, err := svc.Generate(context.Background(), "period-1")
	require.NoError(t, err)

	assert.Equal(t, "period-1", gen.called)
	assert.Equal(t, "period-1", summary.AcademicPeriodID)
	assert.Equal(t, 1, summary.Created)
	require.Len(t, summary.Pairings, 1)
	assert.Equal(t, 2.0, summary.Pairings[0].ScheduledHours)
	require.Len(t, summary.ClassSchedules, 1)
	assert.Equal(t, "2024-02-05", summary.ClassSchedules[0].Date)
	assert.Equal(t, "room-1", summary.ClassSchedules[0].RoomID)
}

func TestClassScheduleServiceGenerateRequiresPeriod(t *testing.T) {
	svc := NewClassScheduleService(&generatorStub{}, nil, nil, nil, nil)

	_, err := svc.Generate(context.Background(), "")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestClassScheduleServiceRescheduleParsesDate(t *testing.T) {
	stub := &reschedulerStub{session: &models.ClassSchedule{ID: "cs-1"}}
	svc := NewClassScheduleService(nil, stub, nil, nil, nil)

	updated, err := svc.Reschedule(context.Background(), "cs-1", dto.RescheduleRequest{
		ScheduleID: "sched-wed",
		Date:       "2024-02-07",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs-1", updated.ID)
	assert.Equal(t, "sched-wed", stub.gotSchedule)
	assert.Equal(t, time.Date(2024, 2, 7, 0, 0, 0, 0, time.UTC), stub.gotDate)
}

func TestClassScheduleServiceRescheduleRejectsBadDate(t *testing.T) {
	svc := NewClassScheduleService(nil, &reschedulerStub{}, nil, nil, nil)

	_, err := svc.Reschedule(context.Background(), "cs-1", dto.RescheduleRequest{
		ScheduleID: "sched-wed",
		Date:       "07/02/2024",
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestClassScheduleServiceListParsesRange(t *testing.T) {
	store := &classScheduleStoreStub{total: 3}
	svc := NewClassScheduleService(nil, nil, store, nil, nil)

	_, pagination, err := svc.List(context.Background(), dto.ClassScheduleQuery{
		AcademicPeriodID: "period-1",
		From:             "2024-02-01",
		To:               "2024-02-29",
	})
	require.NoError(t, err)

	require.NotNil(t, store.gotFilter.From)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *store.gotFilter.From)
	require.NotNil(t, store.gotFilter.To)
	assert.Equal(t, 3, pagination.TotalCount)
}

func TestClassScheduleServiceListRejectsBadRange(t *testing.T) {
	svc := NewClassScheduleService(nil, nil, &classScheduleStoreStub{}, nil, nil)

	_, _, err := svc.List(context.Background(), dto.ClassScheduleQuery{From: "first of feb"})
	require.Error(t, err)
}

func TestClassScheduleServiceDeleteMapsMissingRow(t *testing.T) {
	store := &classScheduleStoreStub{deleteErr: sql.ErrNoRows}
	svc := NewClassScheduleService(nil, nil, store, nil, nil)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrClassScheduleNotFound.Code, appErr.Code)
}
