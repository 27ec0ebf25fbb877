package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edupulse/timetable-api/internal/models"
)

// AvailabilityRepository persists teacher availability and its one-off
// exception dates.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository creates a new availability repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ListActiveSlots returns the weekly slots a teacher can take on a concrete
// date: availability rows with status true whose schedule falls on the
// given weekday, excluding rows with an exception covering the date. The
// ordering (start_time ASC, schedule id ASC) fixes the generator's
// candidate order.
func (r *AvailabilityRepository) ListActiveSlots(ctx context.Context, teacherID, dayOfWeek string, date time.Time) ([]models.AvailabilitySlot, error) {
	const query = `SELECT s.id AS schedule_id, s.day_of_week, s.time_slot_id, ts.start_time, ts.end_time
FROM teacher_availability ta
JOIN schedules s ON s.id = ta.schedule_id
JOIN time_slots ts ON ts.id = s.time_slot_id
WHERE ta.teacher_id = $1
  AND ta.status = TRUE
  AND s.day_of_week = $2
  AND NOT EXISTS (
    SELECT 1 FROM availability_exceptions ae
    WHERE ae.teacher_availability_id = ta.id AND ae.exception_date = $3
  )
ORDER BY ts.start_time ASC, s.id ASC`
	var slots []models.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query, teacherID, dayOfWeek, date); err != nil {
		return nil, fmt.Errorf("list active availability slots: %w", err)
	}
	return slots, nil
}

// ListByTeacher returns all availability rows for a teacher.
func (r *AvailabilityRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherAvailability, error) {
	const query = `SELECT id, teacher_id, schedule_id, status, created_at, updated_at FROM teacher_availability WHERE teacher_id = $1 ORDER BY created_at ASC`
	var rows []models.TeacherAvailability
	if err := r.db.SelectContext(ctx, &rows, query, teacherID); err != nil {
		return nil, fmt.Errorf("list availability by teacher: %w", err)
	}
	return rows, nil
}

// FindByID loads one availability row.
func (r *AvailabilityRepository) FindByID(ctx context.Context, id string) (*models.TeacherAvailability, error) {
	const query = `SELECT id, teacher_id, schedule_id, status, created_at, updated_at FROM teacher_availability WHERE id = $1`
	var row models.TeacherAvailability
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// Create stores a new availability row.
func (r *AvailabilityRepository) Create(ctx context.Context, availability *models.TeacherAvailability) error {
	if availability.ID == "" {
		availability.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if availability.CreatedAt.IsZero() {
		availability.CreatedAt = now
	}
	availability.UpdatedAt = now

	const query = `INSERT INTO teacher_availability (id, teacher_id, schedule_id, status, created_at, updated_at) VALUES (:id, :teacher_id, :schedule_id, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, availability); err != nil {
		return fmt.Errorf("create teacher availability: %w", err)
	}
	return nil
}

// CreateException attaches a one-off exception date to an availability row.
func (r *AvailabilityRepository) CreateException(ctx context.Context, exception *models.AvailabilityException) error {
	if exception.ID == "" {
		exception.ID = uuid.NewString()
	}
	if exception.CreatedAt.IsZero() {
		exception.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO availability_exceptions (id, teacher_availability_id, exception_date, created_at) VALUES (:id, :teacher_availability_id, :exception_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, exception); err != nil {
		return fmt.Errorf("create availability exception: %w", err)
	}
	return nil
}
