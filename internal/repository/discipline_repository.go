package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edupulse/timetable-api/internal/models"
)

// DisciplineRepository reads disciplines and their period activations. The
// allocation engine only consumes these rows; their lifecycle is owned by
// the administrative backoffice.
type DisciplineRepository struct {
	db *sqlx.DB
}

// NewDisciplineRepository creates a new discipline repository.
func NewDisciplineRepository(db *sqlx.DB) *DisciplineRepository {
	return &DisciplineRepository{db: db}
}

// FindByID loads a discipline by id.
func (r *DisciplineRepository) FindByID(ctx context.Context, id string) (*models.Discipline, error) {
	const query = `SELECT id, name, total_hours, required_room_type, created_at, updated_at FROM disciplines WHERE id = $1`
	var discipline models.Discipline
	if err := r.db.GetContext(ctx, &discipline, query, id); err != nil {
		return nil, err
	}
	return &discipline, nil
}

// ListActivePairings resolves every discipline/teacher pairing whose
// discipline is activated for the given period. A discipline activated for
// several modules still yields one row per pairing; the largest cohort
// supplies the seat requirement so any matched room fits every activation.
// Ordered by discipline then teacher so generation walks pairings in a
// stable order.
func (r *DisciplineRepository) ListActivePairings(ctx context.Context, academicPeriodID string) ([]models.Pairing, error) {
	const query = `SELECT p.* FROM (
    SELECT DISTINCT ON (dt.id) dt.id AS discipline_teacher_id, dt.teacher_id, d.id AS discipline_id, d.name AS discipline_name,
           d.total_hours, d.required_room_type, m.id AS module_id, m.total_students
    FROM discipline_teachers dt
    JOIN disciplines d ON d.id = dt.discipline_id
    JOIN discipline_modules dm ON dm.discipline_id = d.id AND dm.academic_period_id = $1
    JOIN modules m ON m.id = dm.module_id
    ORDER BY dt.id ASC, m.total_students DESC, m.id ASC
) p
ORDER BY p.discipline_name ASC, p.teacher_id ASC, p.discipline_teacher_id ASC`
	var pairings []models.Pairing
	if err := r.db.SelectContext(ctx, &pairings, query, academicPeriodID); err != nil {
		return nil, fmt.Errorf("list active pairings: %w", err)
	}
	return pairings, nil
}
