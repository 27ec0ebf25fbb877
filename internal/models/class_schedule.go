package models

import "time"

// ClassSchedule is one allocated session instance: a discipline/teacher
// pairing placed on a concrete date at a weekly schedule slot.
type ClassSchedule struct {
	ID                  string    `db:"id" json:"id"`
	ScheduleID          string    `db:"schedule_id" json:"schedule_id"`
	DisciplineTeacherID string    `db:"discipline_teacher_id" json:"discipline_teacher_id"`
	Date                time.Time `db:"date" json:"date"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// ClassScheduleRoom binds a class schedule to the room it occupies.
// Exactly one exists per class schedule; (room_id, date, schedule_id) is
// unique across all rows.
type ClassScheduleRoom struct {
	ID              string    `db:"id" json:"id"`
	ClassScheduleID string    `db:"class_schedule_id" json:"class_schedule_id"`
	RoomID          string    `db:"room_id" json:"room_id"`
	ScheduleID      string    `db:"schedule_id" json:"schedule_id"`
	Date            time.Time `db:"date" json:"date"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// ClassScheduleDetail is the reschedule flow's view of a session: the
// allocation joined with its pairing, discipline, cohort, owning academic
// period and current room binding.
type ClassScheduleDetail struct {
	ID                  string     `db:"id" json:"id"`
	ScheduleID          string     `db:"schedule_id" json:"schedule_id"`
	DisciplineTeacherID string     `db:"discipline_teacher_id" json:"discipline_teacher_id"`
	Date                time.Time  `db:"date" json:"date"`
	TeacherID           string     `db:"teacher_id" json:"teacher_id"`
	DisciplineID        string     `db:"discipline_id" json:"discipline_id"`
	RequiredRoomType    string     `db:"required_room_type" json:"required_room_type"`
	TotalStudents       int        `db:"total_students" json:"total_students"`
	PeriodID            string     `db:"period_id" json:"period_id"`
	PeriodStart         time.Time  `db:"period_start" json:"period_start"`
	PeriodEnd           time.Time  `db:"period_end" json:"period_end"`
	RoomBookingID       *string    `db:"room_booking_id" json:"room_booking_id,omitempty"`
	RoomID              *string    `db:"room_id" json:"room_id,omitempty"`
	RoomDate            *time.Time `db:"room_date" json:"-"`
}

// ClassScheduleFilter narrows the allocation listing.
type ClassScheduleFilter struct {
	AcademicPeriodID string
	TeacherID        string
	From             *time.Time
	To               *time.Time
	Page             int
	PageSize         int
}
