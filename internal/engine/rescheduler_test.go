package engine

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edupulse/timetable-api/internal/models"
	appErrors "github.com/edupulse/timetable-api/pkg/errors"
)

type stubSessions struct {
	session   *models.ClassSchedule
	detail    *models.ClassScheduleDetail
	findErr   error
	detailErr error

	rescheduled bool
	gotSchedule string
	gotDate     time.Time
	gotRoom     string
}

func (s *stubSessions) FindByID(ctx context.Context, id string) (*models.ClassSchedule, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.session, nil
}

func (s *stubSessions) FindDetail(ctx context.Context, id string) (*models.ClassScheduleDetail, error) {
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	return s.detail, nil
}

func (s *stubSessions) Reschedule(ctx context.Context, classScheduleID, scheduleID string, date time.Time, roomID string) error {
	s.rescheduled = true
	s.gotSchedule = scheduleID
	s.gotDate = date
	s.gotRoom = roomID
	s.session.ScheduleID = scheduleID
	s.session.Date = date
	return nil
}

type stubSchedules struct {
	byID map[string]*models.ScheduleDetail
}

func (s *stubSchedules) FindDetail(ctx context.Context, id string) (*models.ScheduleDetail, error) {
	detail, ok := s.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return detail, nil
}

type rescheduleFixture struct {
	sessions  *stubSessions
	schedules *stubSchedules
	store     *memoryStore
	rooms     *stubRooms
	holidays  *stubHolidays
}

func newRescheduleFixture() *rescheduleFixture {
	store := newMemoryStore(nil)
	// The session under edit currently sits on Monday Feb 5 in room-1.
	store.book("t-1", "sched-mon", "room-1", day(2024, time.February, 5))
	bookingID := store.allocations[0].bookingID
	sessionID := store.allocations[0].id

	return &rescheduleFixture{
		sessions: &stubSessions{
			session: &models.ClassSchedule{
				ID:                  sessionID,
				ScheduleID:          "sched-mon",
				DisciplineTeacherID: "dt-1",
				Date:                day(2024, time.February, 5),
			},
			detail: &models.ClassScheduleDetail{
				ID:                  sessionID,
				ScheduleID:          "sched-mon",
				DisciplineTeacherID: "dt-1",
				Date:                day(2024, time.February, 5),
				TeacherID:           "t-1",
				DisciplineID:        "d-1",
				RequiredRoomType:    "LAB",
				TotalStudents:       20,
				PeriodID:            "period-1",
				PeriodStart:         day(2024, time.February, 1),
				PeriodEnd:           day(2024, time.March, 1),
				RoomBookingID:       &bookingID,
			},
		},
		schedules: &stubSchedules{byID: map[string]*models.ScheduleDetail{
			"sched-mon": {ID: "sched-mon", DayOfWeek: "Monday", TimeSlotID: "ts-1", StartTime: "08:00", EndTime: "10:00"},
			"sched-wed": {ID: "sched-wed", DayOfWeek: "Wednesday", TimeSlotID: "ts-1", StartTime: "08:00", EndTime: "10:00"},
		}},
		store:    store,
		rooms:    &stubRooms{rooms: []models.Room{{ID: "room-1", Name: "Lab A", SeatsAmount: 30, Type: "LAB"}}},
		holidays: &stubHolidays{},
	}
}

func (f *rescheduleFixture) rescheduler() *Rescheduler {
	checker := NewChecker(f.store, 2)
	matcher := NewRoomMatcher(f.rooms, checker)
	return NewRescheduler(f.sessions, f.schedules, matcher, checker, f.holidays, zap.NewNop(), nil)
}

func (f *rescheduleFixture) sessionID() string {
	return f.sessions.session.ID
}

func assertCode(t *testing.T, err error, want *appErrors.Error) {
	t.Helper()
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr), "expected a typed error, got %v", err)
	assert.Equal(t, want.Code, appErr.Code)
}

func TestRescheduleSuccess(t *testing.T) {
	f := newRescheduleFixture()

	updated, err := f.rescheduler().Reschedule(context.Background(), f.sessionID(), "sched-wed", day(2024, time.February, 7))
	require.NoError(t, err)

	assert.True(t, f.sessions.rescheduled)
	assert.Equal(t, "sched-wed", f.sessions.gotSchedule)
	assert.Equal(t, day(2024, time.February, 7), f.sessions.gotDate)
	assert.Equal(t, "room-1", f.sessions.gotRoom)
	assert.Equal(t, "sched-wed", updated.ScheduleID)
}

func TestRescheduleWithinSameSlot(t *testing.T) {
	f := newRescheduleFixture()

	// Moving to another Monday keeps the same weekly slot; the session's
	// own bookings must not block it.
	_, err := f.rescheduler().Reschedule(context.Background(), f.sessionID(), "sched-mon", day(2024, time.February, 12))
	require.NoError(t, err)
	assert.True(t, f.sessions.rescheduled)
}

func TestRescheduleSessionNotFound(t *testing.T) {
	f := newRescheduleFixture()
	f.sessions.findErr = sql.ErrNoRows

	_, err := f.rescheduler().Reschedule(context.Background(), "missing", "sched-wed", day(2024, time.February, 7))
	require.Error(t, err)
	assertCode(t, err, appErrors.ErrClassScheduleNotFound)
}

func TestRescheduleDateOutOfPeriod(t *testing.T) {
	f := newRescheduleFixture()
	r := f.rescheduler()

	_, err := r.Reschedule(context.Background(), f.sessionID(), "sched-wed", day(2024, time.January, 31))
	require.Error(t, err)
	assertCode(t, err, appErrors.ErrDateOutOfPeriod)

	// The period end is exclusive.
	_, err = r.Reschedule(context.Background(), f.sessionID(), "sched-wed", day(2024, time.March, 1))
	require.Error(t, err)
	assertCode(t, err, appErrors.ErrDateOutOfPeriod)

	assert.False(t, f.sessions.rescheduled)
}

func TestRescheduleUnknownSchedule(t *testing.T) {
	f := newRescheduleFixture()

	_, err := f.rescheduler().Reschedule(context.Background(), f.sessionID(), "sched-fri", day(2024, time.February, 9))
	require.Error(t, err)
	assertCode(t, err, appErrors.ErrScheduleNotFound)
}

func TestRescheduleDayOfWeekMismatch(t *testing.T) {
	f := newRescheduleFixture()

	// Feb 8 2024 is a Thursday; the target slot runs on Wednesdays.
	_, err := f.rescheduler().Reschedule(context.Background(), f.sessionID(), "sched-wed", day(2024, time.February, 8))
	require.Error(t, err)
	assertCode(t, err, appErrors.ErrDayOfWeekMismatch)
	assert.False(t, f.sessions.rescheduled, "a rejected move must not mutate the session")
}

func TestRescheduleHolidayConflict(t *testing.T) {
	f := newRescheduleFixture()
	f.holidays.dates = []time.Time{day(2024, time.February, 7)}

	_, err := f.rescheduler().Reschedule(context.Background(), f.sessionID(), "sched-wed", day(2024, time.February, 7))
	require.Error(t, err)
	assertCode(t, err, appErrors.ErrHolidayConflict)
}

func TestRescheduleTeacherConflict(t *testing.T) {
	f := newRescheduleFixture()
	// The teacher already holds another discipline at the target slot.
	f.store.book("t-1", "sched-wed", "room-2", day(2024, time.February, 7))

	_, err := f.rescheduler().Reschedule(context.Background(), f.sessionID(), "sched-wed", day(2024, time.February, 7))
	require.Error(t, err)
	assertCode(t, err, appErrors.ErrTeacherConflict)
	assert.False(t, f.sessions.rescheduled)
}

func TestRescheduleNoRoomAvailable(t *testing.T) {
	f := newRescheduleFixture()
	// Another teacher's session occupies the only lab at the target slot.
	f.store.book("t-2", "sched-wed", "room-1", day(2024, time.February, 7))

	_, err := f.rescheduler().Reschedule(context.Background(), f.sessionID(), "sched-wed", day(2024, time.February, 7))
	require.Error(t, err)
	assertCode(t, err, appErrors.ErrNoRoomAvailable)
	assert.False(t, f.sessions.rescheduled)
}
