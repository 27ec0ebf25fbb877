package models

import "time"

// Module is a student group/cohort with a fixed headcount.
type Module struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	TotalStudents int       `db:"total_students" json:"total_students"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
