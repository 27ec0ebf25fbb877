package models

import "time"

// Schedule is a named weekly recurring slot, e.g. "Monday" at a time slot.
// DayOfWeek carries the English weekday name as produced by
// time.Weekday.String().
type Schedule struct {
	ID         string    `db:"id" json:"id"`
	DayOfWeek  string    `db:"day_of_week" json:"day_of_week"`
	TimeSlotID string    `db:"time_slot_id" json:"time_slot_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// ScheduleDetail joins a schedule with its time slot boundaries.
type ScheduleDetail struct {
	ID         string `db:"id" json:"id"`
	DayOfWeek  string `db:"day_of_week" json:"day_of_week"`
	TimeSlotID string `db:"time_slot_id" json:"time_slot_id"`
	StartTime  string `db:"start_time" json:"start_time"`
	EndTime    string `db:"end_time" json:"end_time"`
}
