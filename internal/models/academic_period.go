package models

import "time"

// AcademicPeriod is a bounded date range within which sessions are scheduled.
// The generator walks [StartDate, EndDate).
type AcademicPeriod struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AcademicPeriodFilter captures list filters for academic periods.
type AcademicPeriodFilter struct {
	Name     string
	Page     int
	PageSize int
}
