package models

import "time"

// TeacherAvailability marks whether a teacher is generally available at a
// weekly schedule slot.
type TeacherAvailability struct {
	ID         string    `db:"id" json:"id"`
	TeacherID  string    `db:"teacher_id" json:"teacher_id"`
	ScheduleID string    `db:"schedule_id" json:"schedule_id"`
	Status     bool      `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// AvailabilityException removes an otherwise-available slot on a single date.
type AvailabilityException struct {
	ID                    string    `db:"id" json:"id"`
	TeacherAvailabilityID string    `db:"teacher_availability_id" json:"teacher_availability_id"`
	ExceptionDate         time.Time `db:"exception_date" json:"exception_date"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
}

// AvailabilitySlot is the generator's view of one available weekly slot for
// a teacher on a concrete date: the schedule joined with its time slot,
// already filtered on status and exception dates.
type AvailabilitySlot struct {
	ScheduleID string `db:"schedule_id" json:"schedule_id"`
	DayOfWeek  string `db:"day_of_week" json:"day_of_week"`
	TimeSlotID string `db:"time_slot_id" json:"time_slot_id"`
	StartTime  string `db:"start_time" json:"start_time"`
	EndTime    string `db:"end_time" json:"end_time"`
}
