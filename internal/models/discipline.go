package models

import "time"

// Discipline is a course requiring a fixed total of teaching hours and a
// specific room type.
type Discipline struct {
	ID               string    `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	TotalHours       float64   `db:"total_hours" json:"total_hours"`
	RequiredRoomType string    `db:"required_room_type" json:"required_room_type"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// DisciplineModule activates a discipline for a student group within an
// academic period. Disciplines without a row here are inactive for the run.
type DisciplineModule struct {
	ID               string    `db:"id" json:"id"`
	DisciplineID     string    `db:"discipline_id" json:"discipline_id"`
	ModuleID         string    `db:"module_id" json:"module_id"`
	AcademicPeriodID string    `db:"academic_period_id" json:"academic_period_id"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// DisciplineTeacher links a teacher with a discipline they teach. The
// generator satisfies each row independently.
type DisciplineTeacher struct {
	ID           string    `db:"id" json:"id"`
	DisciplineID string    `db:"discipline_id" json:"discipline_id"`
	TeacherID    string    `db:"teacher_id" json:"teacher_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Pairing is the denormalised view of one discipline/teacher pairing active
// in an academic period, joined with the cohort that supplies the minimum
// room capacity. One row per (discipline_teacher, discipline_module).
type Pairing struct {
	DisciplineTeacherID string  `db:"discipline_teacher_id" json:"discipline_teacher_id"`
	TeacherID           string  `db:"teacher_id" json:"teacher_id"`
	DisciplineID        string  `db:"discipline_id" json:"discipline_id"`
	DisciplineName      string  `db:"discipline_name" json:"discipline_name"`
	TotalHours          float64 `db:"total_hours" json:"total_hours"`
	RequiredRoomType    string  `db:"required_room_type" json:"required_room_type"`
	ModuleID            string  `db:"module_id" json:"module_id"`
	TotalStudents       int     `db:"total_students" json:"total_students"`
}
