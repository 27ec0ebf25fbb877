package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edupulse/timetable-api/internal/models"
)

// ScheduleRepository provides persistence for weekly recurring schedules.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// List returns all schedules joined with their time slots, ordered by day
// and start time.
func (r *ScheduleRepository) List(ctx context.Context) ([]models.ScheduleDetail, error) {
	const query = `SELECT s.id, s.day_of_week, s.time_slot_id, ts.start_time, ts.end_time FROM schedules s JOIN time_slots ts ON ts.id = s.time_slot_id ORDER BY s.day_of_week ASC, ts.start_time ASC, s.id ASC`
	var schedules []models.ScheduleDetail
	if err := r.db.SelectContext(ctx, &schedules, query); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}

// FindDetail loads a schedule together with its time slot boundaries.
func (r *ScheduleRepository) FindDetail(ctx context.Context, id string) (*models.ScheduleDetail, error) {
	const query = `SELECT s.id, s.day_of_week, s.time_slot_id, ts.start_time, ts.end_time FROM schedules s JOIN time_slots ts ON ts.id = s.time_slot_id WHERE s.id = $1`
	var detail models.ScheduleDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create stores a new weekly schedule.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = now
	}
	schedule.UpdatedAt = now

	const query = `INSERT INTO schedules (id, day_of_week, time_slot_id, created_at, updated_at) VALUES (:id, :day_of_week, :time_slot_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, schedule); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}
