package models

import "time"

// TimeSlot is a start/end time pair in HH:MM form. End must be later than
// start; this is enforced at creation, not by the engine.
type TimeSlot struct {
	ID        string    `db:"id" json:"id"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
