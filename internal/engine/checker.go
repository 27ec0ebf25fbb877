package engine

import (
	"context"
	"time"

	"github.com/edupulse/timetable-api/internal/holiday"
)

// bookingReader answers existence queries against the current allocation
// set. Exclusion ids let the reschedule flow ignore the session under edit.
type bookingReader interface {
	TeacherBookingExists(ctx context.Context, teacherID string, date time.Time, scheduleID, excludeID string) (bool, error)
	RoomBookingExists(ctx context.Context, roomID string, date time.Time, scheduleID, excludeBookingID string) (bool, error)
}

// Checker carries the named eligibility rules. Each rule is a separate
// method so skip reasons stay independently testable; callers evaluate
// them short-circuit in a fixed order (gap, teacher, room).
type Checker struct {
	bookings bookingReader

	// minimumGapDays is the required spacing, in calendar days, between
	// two sessions of the same discipline/teacher pairing. The rule is
	// scoped per pairing, not per teacher: the same teacher may hold two
	// different disciplines on adjacent days.
	minimumGapDays int
}

// NewChecker builds a rule checker. The allocation contract requires more
// than one full day between sessions of a pairing, so any configured gap
// below two days is clamped to two.
func NewChecker(bookings bookingReader, minimumGapDays int) *Checker {
	if minimumGapDays < 2 {
		minimumGapDays = 2
	}
	return &Checker{bookings: bookings, minimumGapDays: minimumGapDays}
}

// IsHoliday reports whether the candidate date falls in the supplied
// holiday snapshot.
func (c *Checker) IsHoliday(holidays holiday.Set, date time.Time) bool {
	return holidays.Contains(date)
}

// WithinMinimumGap passes when the pairing has no prior session or the
// candidate is far enough from the last scheduled date. Same-day and
// next-day candidates fail under the default gap.
func (c *Checker) WithinMinimumGap(lastScheduled *time.Time, candidate time.Time) bool {
	if lastScheduled == nil {
		return true
	}
	diff := int(normalizeDate(candidate).Sub(normalizeDate(*lastScheduled)).Hours() / 24)
	return diff >= c.minimumGapDays
}

// TeacherDoubleBooked reports whether the teacher already holds any session
// at (date, schedule), across all pairings. excludeID skips the session
// under edit.
func (c *Checker) TeacherDoubleBooked(ctx context.Context, teacherID string, date time.Time, scheduleID, excludeID string) (bool, error) {
	return c.bookings.TeacherBookingExists(ctx, teacherID, normalizeDate(date), scheduleID, excludeID)
}

// RoomAvailable reports whether the room is free at (date, schedule).
// excludeBookingID skips the room binding under edit.
func (c *Checker) RoomAvailable(ctx context.Context, roomID string, date time.Time, scheduleID, excludeBookingID string) (bool, error) {
	taken, err := c.bookings.RoomBookingExists(ctx, roomID, normalizeDate(date), scheduleID, excludeBookingID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
