package engine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/edupulse/timetable-api/internal/models"
	appErrors "github.com/edupulse/timetable-api/pkg/errors"
)

type sessionStore interface {
	FindByID(ctx context.Context, id string) (*models.ClassSchedule, error)
	FindDetail(ctx context.Context, id string) (*models.ClassScheduleDetail, error)
	Reschedule(ctx context.Context, classScheduleID, scheduleID string, date time.Time, roomID string) error
}

type scheduleReader interface {
	FindDetail(ctx context.Context, id string) (*models.ScheduleDetail, error)
}

// Rescheduler revalidates and applies a single-session move using the same
// rule set as full generation. All checks run before any mutation, so a
// rejected request leaves the session untouched.
type Rescheduler struct {
	sessions  sessionStore
	schedules scheduleReader
	matcher   *RoomMatcher
	checker   *Checker
	holidays  holidaySource
	logger    *zap.Logger
	locks     *PeriodLocks
}

// NewRescheduler wires the reschedule validator.
func NewRescheduler(
	sessions sessionStore,
	schedules scheduleReader,
	matcher *RoomMatcher,
	checker *Checker,
	holidays holidaySource,
	logger *zap.Logger,
	locks *PeriodLocks,
) *Rescheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if locks == nil {
		locks = NewPeriodLocks()
	}
	return &Rescheduler{
		sessions:  sessions,
		schedules: schedules,
		matcher:   matcher,
		checker:   checker,
		holidays:  holidays,
		logger:    logger,
		locks:     locks,
	}
}

// Reschedule moves one session to (newScheduleID, newDate). Checks run in
// a fixed order: existence, period bounds, weekday match, holiday, teacher
// conflict, room availability. The session's current room booking is
// excluded from the availability checks so a move within the same room and
// day still validates.
func (r *Rescheduler) Reschedule(ctx context.Context, classScheduleID, newScheduleID string, newDate time.Time) (*models.ClassSchedule, error) {
	if _, err := r.sessions.FindByID(ctx, classScheduleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrClassScheduleNotFound, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class schedule")
	}

	detail, err := r.sessions.FindDetail(ctx, classScheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// The session exists but its discipline has no period
			// activation, so no bounds can be validated.
			return nil, appErrors.Clone(appErrors.ErrPeriodNotFound, "no academic period resolvable for this session")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve session context")
	}

	release := r.locks.Acquire(detail.PeriodID)
	defer release()

	date := normalizeDate(newDate)
	periodStart := normalizeDate(detail.PeriodStart)
	periodEnd := normalizeDate(detail.PeriodEnd)
	if date.Before(periodStart) || !date.Before(periodEnd) {
		return nil, appErrors.Clone(appErrors.ErrDateOutOfPeriod, "")
	}

	schedule, err := r.schedules.FindDetail(ctx, newScheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrScheduleNotFound, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load target schedule")
	}

	if date.Weekday().String() != schedule.DayOfWeek {
		return nil, appErrors.Clone(appErrors.ErrDayOfWeekMismatch, "")
	}

	holidays := r.holidays.Range(ctx, date, date)
	if r.checker.IsHoliday(holidays, date) {
		return nil, appErrors.Clone(appErrors.ErrHolidayConflict, "")
	}

	booked, err := r.checker.TeacherDoubleBooked(ctx, detail.TeacherID, date, newScheduleID, classScheduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher booking")
	}
	if booked {
		return nil, appErrors.Clone(appErrors.ErrTeacherConflict, "")
	}

	excludeBooking := ""
	if detail.RoomBookingID != nil {
		excludeBooking = *detail.RoomBookingID
	}
	room, err := r.matcher.Find(ctx, detail.RequiredRoomType, detail.TotalStudents, date, newScheduleID, excludeBooking)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to match room")
	}
	if room == nil {
		return nil, appErrors.Clone(appErrors.ErrNoRoomAvailable, "")
	}

	if err := r.sessions.Reschedule(ctx, classScheduleID, newScheduleID, date, room.ID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to apply reschedule")
	}

	r.logger.Info("session rescheduled",
		zap.String("class_schedule_id", classScheduleID),
		zap.String("schedule_id", newScheduleID),
		zap.Time("date", date),
		zap.String("room_id", room.ID),
	)

	updated, err := r.sessions.FindByID(ctx, classScheduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload class schedule")
	}
	return updated, nil
}
