package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edupulse/timetable-api/internal/models"
)

// ClassScheduleRepository persists allocated sessions and their room
// bindings. Both row kinds are written together so the 1:1 invariant
// between class_schedules and class_schedule_rooms holds at all times.
type ClassScheduleRepository struct {
	db *sqlx.DB
}

// NewClassScheduleRepository creates a new class schedule repository.
func NewClassScheduleRepository(db *sqlx.DB) *ClassScheduleRepository {
	return &ClassScheduleRepository{db: db}
}

// List returns allocations with optional filtering and pagination.
func (r *ClassScheduleRepository) List(ctx context.Context, filter models.ClassScheduleFilter) ([]models.ClassSchedule, int, error) {
	base := "FROM class_schedules cs WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.AcademicPeriodID != "" {
		conditions = append(conditions, fmt.Sprintf("cs.discipline_teacher_id IN (SELECT dt.id FROM discipline_teachers dt JOIN discipline_modules dm ON dm.discipline_id = dt.discipline_id WHERE dm.academic_period_id = $%d)", len(args)+1))
		args = append(args, filter.AcademicPeriodID)
	}
	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("cs.discipline_teacher_id IN (SELECT id FROM discipline_teachers WHERE teacher_id = $%d)", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("cs.date >= $%d", len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("cs.date <= $%d", len(args)+1))
		args = append(args, *filter.To)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT cs.id, cs.schedule_id, cs.discipline_teacher_id, cs.date, cs.created_at, cs.updated_at %s ORDER BY cs.date ASC, cs.id ASC LIMIT %d OFFSET %d", base, size, offset)
	var schedules []models.ClassSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list class schedules: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count class schedules: %w", err)
	}

	return schedules, total, nil
}

// FindByID loads an allocation by id.
func (r *ClassScheduleRepository) FindByID(ctx context.Context, id string) (*models.ClassSchedule, error) {
	const query = `SELECT id, schedule_id, discipline_teacher_id, date, created_at, updated_at FROM class_schedules WHERE id = $1`
	var schedule models.ClassSchedule
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// FindDetail resolves one allocation together with its pairing, discipline,
// cohort, owning period and current room binding. The period comes from the
// discipline's activation row; a missing activation leaves the caller with
// sql.ErrNoRows on the join. With several module activations the largest
// cohort wins, matching the seat requirement generation used.
func (r *ClassScheduleRepository) FindDetail(ctx context.Context, id string) (*models.ClassScheduleDetail, error) {
	const query = `SELECT DISTINCT ON (cs.id) cs.id, cs.schedule_id, cs.discipline_teacher_id, cs.date,
       dt.teacher_id, d.id AS discipline_id, d.required_room_type, m.total_students,
       ap.id AS period_id, ap.start_date AS period_start, ap.end_date AS period_end,
       csr.id AS room_booking_id, csr.room_id, csr.date AS room_date
FROM class_schedules cs
JOIN discipline_teachers dt ON dt.id = cs.discipline_teacher_id
JOIN disciplines d ON d.id = dt.discipline_id
JOIN discipline_modules dm ON dm.discipline_id = d.id
JOIN modules m ON m.id = dm.module_id
JOIN academic_periods ap ON ap.id = dm.academic_period_id
LEFT JOIN class_schedule_rooms csr ON csr.class_schedule_id = cs.id
WHERE cs.id = $1
ORDER BY cs.id, m.total_students DESC`
	var detail models.ClassScheduleDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// TeacherBookingExists reports whether another allocation already occupies
// (date, schedule) for the same teacher, across all of that teacher's
// pairings. excludeID skips the allocation under edit.
func (r *ClassScheduleRepository) TeacherBookingExists(ctx context.Context, teacherID string, date time.Time, scheduleID, excludeID string) (bool, error) {
	const query = `SELECT COUNT(*) FROM class_schedules cs
JOIN discipline_teachers dt ON dt.id = cs.discipline_teacher_id
WHERE dt.teacher_id = $1 AND cs.date = $2 AND cs.schedule_id = $3 AND cs.id <> $4`
	var count int
	if err := r.db.GetContext(ctx, &count, query, teacherID, date, scheduleID, excludeID); err != nil {
		return false, fmt.Errorf("check teacher booking: %w", err)
	}
	return count > 0, nil
}

// RoomBookingExists reports whether a room is already taken at
// (date, schedule). excludeBookingID skips the booking under edit.
func (r *ClassScheduleRepository) RoomBookingExists(ctx context.Context, roomID string, date time.Time, scheduleID, excludeBookingID string) (bool, error) {
	const query = `SELECT COUNT(*) FROM class_schedule_rooms WHERE room_id = $1 AND date = $2 AND schedule_id = $3 AND id <> $4`
	var count int
	if err := r.db.GetContext(ctx, &count, query, roomID, date, scheduleID, excludeBookingID); err != nil {
		return false, fmt.Errorf("check room booking: %w", err)
	}
	return count > 0, nil
}

// DeleteForPeriod clears every allocation belonging to disciplines active
// in the period, bindings first. The generator calls this before rebuilding
// so repeated runs replace rather than accumulate.
func (r *ClassScheduleRepository) DeleteForPeriod(ctx context.Context, academicPeriodID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin period clear: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const pairingSub = `SELECT dt.id FROM discipline_teachers dt JOIN discipline_modules dm ON dm.discipline_id = dt.discipline_id WHERE dm.academic_period_id = $1`

	if _, err = tx.ExecContext(ctx, `DELETE FROM class_schedule_rooms WHERE class_schedule_id IN (SELECT id FROM class_schedules WHERE discipline_teacher_id IN (`+pairingSub+`))`, academicPeriodID); err != nil {
		return fmt.Errorf("clear room bindings for period: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM class_schedules WHERE discipline_teacher_id IN (`+pairingSub+`)`, academicPeriodID); err != nil {
		return fmt.Errorf("clear class schedules for period: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit period clear: %w", err)
	}
	return nil
}

// CreateWithRoom inserts an allocation and its room binding atomically.
func (r *ClassScheduleRepository) CreateWithRoom(ctx context.Context, schedule *models.ClassSchedule, roomID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create class schedule: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = now
	}
	schedule.UpdatedAt = now

	if _, err = tx.NamedExecContext(ctx, `INSERT INTO class_schedules (id, schedule_id, discipline_teacher_id, date, created_at, updated_at) VALUES (:id, :schedule_id, :discipline_teacher_id, :date, :created_at, :updated_at)`, schedule); err != nil {
		return fmt.Errorf("insert class schedule: %w", err)
	}

	binding := models.ClassScheduleRoom{
		ID:              uuid.NewString(),
		ClassScheduleID: schedule.ID,
		RoomID:          roomID,
		ScheduleID:      schedule.ScheduleID,
		Date:            schedule.Date,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err = tx.NamedExecContext(ctx, `INSERT INTO class_schedule_rooms (id, class_schedule_id, room_id, schedule_id, date, created_at, updated_at) VALUES (:id, :class_schedule_id, :room_id, :schedule_id, :date, :created_at, :updated_at)`, &binding); err != nil {
		return fmt.Errorf("insert room binding: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create class schedule: %w", err)
	}
	return nil
}

// Reschedule moves an allocation to a new (schedule, date, room) in one
// transaction. The existing room binding row is reused when present and
// created otherwise, keeping the 1:1 invariant.
func (r *ClassScheduleRepository) Reschedule(ctx context.Context, classScheduleID, scheduleID string, date time.Time, roomID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reschedule: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	if _, err = tx.ExecContext(ctx, `UPDATE class_schedules SET schedule_id = $1, date = $2, updated_at = $3 WHERE id = $4`, scheduleID, date, now, classScheduleID); err != nil {
		return fmt.Errorf("update class schedule: %w", err)
	}

	var bindingID string
	err = tx.GetContext(ctx, &bindingID, `SELECT id FROM class_schedule_rooms WHERE class_schedule_id = $1`, classScheduleID)
	switch {
	case err == nil:
		if _, err = tx.ExecContext(ctx, `UPDATE class_schedule_rooms SET room_id = $1, schedule_id = $2, date = $3, updated_at = $4 WHERE id = $5`, roomID, scheduleID, date, now, bindingID); err != nil {
			return fmt.Errorf("update room binding: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		err = nil
		binding := models.ClassScheduleRoom{
			ID:              uuid.NewString(),
			ClassScheduleID: classScheduleID,
			RoomID:          roomID,
			ScheduleID:      scheduleID,
			Date:            date,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if _, err = tx.NamedExecContext(ctx, `INSERT INTO class_schedule_rooms (id, class_schedule_id, room_id, schedule_id, date, created_at, updated_at) VALUES (:id, :class_schedule_id, :room_id, :schedule_id, :date, :created_at, :updated_at)`, &binding); err != nil {
			return fmt.Errorf("insert room binding: %w", err)
		}
	default:
		return fmt.Errorf("load room binding: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit reschedule: %w", err)
	}
	return nil
}

// Delete removes one allocation and its room binding.
func (r *ClassScheduleRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete class schedule: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM class_schedule_rooms WHERE class_schedule_id = $1`, id); err != nil {
		return fmt.Errorf("delete room binding: %w", err)
	}

	var result sql.Result
	result, err = tx.ExecContext(ctx, `DELETE FROM class_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete class schedule: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		err = sql.ErrNoRows
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete class schedule: %w", err)
	}
	return nil
}
