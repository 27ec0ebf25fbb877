package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edupulse/timetable-api/internal/dto"
	"github.com/edupulse/timetable-api/internal/models"
	appErrors "github.com/edupulse/timetable-api/pkg/errors"
)

type academicPeriodStore interface {
	List(ctx context.Context, filter models.AcademicPeriodFilter) ([]models.AcademicPeriod, int, error)
	FindByID(ctx context.Context, id string) (*models.AcademicPeriod, error)
	Create(ctx context.Context, period *models.AcademicPeriod) error
}

type roomStore interface {
	List(ctx context.Context, filter models.RoomFilter) ([]models.Room, int, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
}

type timeSlotStore interface {
	List(ctx context.Context) ([]models.TimeSlot, error)
	FindByID(ctx context.Context, id string) (*models.TimeSlot, error)
	Create(ctx context.Context, slot *models.TimeSlot) error
}

type scheduleStore interface {
	List(ctx context.Context) ([]models.ScheduleDetail, error)
	FindDetail(ctx context.Context, id string) (*models.ScheduleDetail, error)
	Create(ctx context.Context, schedule *models.Schedule) error
}

type availabilityStore interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherAvailability, error)
	FindByID(ctx context.Context, id string) (*models.TeacherAvailability, error)
	Create(ctx context.Context, availability *models.TeacherAvailability) error
	CreateException(ctx context.Context, exception *models.AvailabilityException) error
}

// CatalogService handles CRUD for the reference data the allocation engine
// consumes: academic periods, rooms, time slots, weekly schedules and
// teacher availability.
type CatalogService struct {
	periods        academicPeriodStore
	rooms          roomStore
	timeSlots      timeSlotStore
	schedules      scheduleStore
	availabilities availabilityStore
	validator      *validator.Validate
	logger         *zap.Logger
}

// NewCatalogService wires the catalog use cases.
func NewCatalogService(
	periods academicPeriodStore,
	rooms roomStore,
	timeSlots timeSlotStore,
	schedules scheduleStore,
	availabilities availabilityStore,
	validate *validator.Validate,
	logger *zap.Logger,
) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		periods:        periods,
		rooms:          rooms,
		timeSlots:      timeSlots,
		schedules:      schedules,
		availabilities: availabilities,
		validator:      validate,
		logger:         logger,
	}
}

// CreateAcademicPeriod validates and stores a new period. The end date is
// exclusive and must fall strictly after the start date.
func (s *CatalogService) CreateAcademicPeriod(ctx context.Context, req dto.CreateAcademicPeriodRequest) (*models.AcademicPeriod, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid academic period payload")
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startDate must use the YYYY-MM-DD format")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must use the YYYY-MM-DD format")
	}
	if !end.After(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must fall after startDate")
	}

	period := &models.AcademicPeriod{
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
	}
	if err := s.periods.Create(ctx, period); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create academic period")
	}
	return period, nil
}

// ListAcademicPeriods returns periods matching the filter.
func (s *CatalogService) ListAcademicPeriods(ctx context.Context, filter models.AcademicPeriodFilter) ([]models.AcademicPeriod, *models.Pagination, error) {
	periods, total, err := s.periods.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list academic periods")
	}
	return periods, paginationFor(filter.Page, filter.PageSize, total), nil
}

// GetAcademicPeriod fetches one period by id.
func (s *CatalogService) GetAcademicPeriod(ctx context.Context, id string) (*models.AcademicPeriod, error) {
	period, err := s.periods.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrPeriodNotFound, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch academic period")
	}
	return period, nil
}

// CreateRoom validates and stores a new room.
func (s *CatalogService) CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}

	room := &models.Room{
		Name:        req.Name,
		SeatsAmount: req.SeatsAmount,
		Type:        req.Type,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create room")
	}
	return room, nil
}

// ListRooms returns rooms matching the filter.
func (s *CatalogService) ListRooms(ctx context.Context, filter models.RoomFilter) ([]models.Room, *models.Pagination, error) {
	rooms, total, err := s.rooms.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	return rooms, paginationFor(filter.Page, filter.PageSize, total), nil
}

// CreateTimeSlot validates and stores a start/end time pair.
func (s *CatalogService) CreateTimeSlot(ctx context.Context, req dto.CreateTimeSlotRequest) (*models.TimeSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time slot payload")
	}

	start, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startTime must use the HH:MM format")
	}
	end, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endTime must use the HH:MM format")
	}
	if !end.After(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endTime must fall after startTime")
	}

	slot := &models.TimeSlot{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.timeSlots.Create(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create time slot")
	}
	return slot, nil
}

// ListTimeSlots returns all time slots ordered by start time.
func (s *CatalogService) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	slots, err := s.timeSlots.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list time slots")
	}
	return slots, nil
}

// CreateSchedule validates and stores a weekly recurring slot. The day of
// week must be a full English weekday name and the time slot must exist.
func (s *CatalogService) CreateSchedule(ctx context.Context, req dto.CreateScheduleRequest) (*models.Schedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	if !validWeekday(req.DayOfWeek) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "dayOfWeek must be a full English weekday name")
	}

	if _, err := s.timeSlots.FindByID(ctx, req.TimeSlotID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "time slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch time slot")
	}

	schedule := &models.Schedule{
		DayOfWeek:  req.DayOfWeek,
		TimeSlotID: req.TimeSlotID,
	}
	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule")
	}
	return schedule, nil
}

// ListSchedules returns all weekly slots with their time ranges.
func (s *CatalogService) ListSchedules(ctx context.Context) ([]models.ScheduleDetail, error) {
	schedules, err := s.schedules.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	return schedules, nil
}

// CreateAvailability marks a teacher as available (or not) for one weekly
// slot.
func (s *CatalogService) CreateAvailability(ctx context.Context, req dto.CreateAvailabilityRequest) (*models.TeacherAvailability, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}

	if _, err := s.schedules.FindDetail(ctx, req.ScheduleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrScheduleNotFound, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch schedule")
	}

	availability := &models.TeacherAvailability{
		TeacherID:  req.TeacherID,
		ScheduleID: req.ScheduleID,
		Status:     *req.Status,
	}
	if err := s.availabilities.Create(ctx, availability); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create availability")
	}
	return availability, nil
}

// ListAvailabilities returns a teacher's weekly availability rows.
func (s *CatalogService) ListAvailabilities(ctx context.Context, teacherID string) ([]models.TeacherAvailability, error) {
	if teacherID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacherId is required")
	}
	availabilities, err := s.availabilities.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availabilities")
	}
	return availabilities, nil
}

// CreateException removes a single date from one availability slot.
func (s *CatalogService) CreateException(ctx context.Context, availabilityID string, req dto.CreateExceptionRequest) (*models.AvailabilityException, error) {
	if availabilityID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "availability id is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exception payload")
	}

	date, err := time.Parse(dateLayout, req.ExceptionDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "exceptionDate must use the YYYY-MM-DD format")
	}

	if _, err := s.availabilities.FindByID(ctx, availabilityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "availability not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch availability")
	}

	exception := &models.AvailabilityException{
		TeacherAvailabilityID: availabilityID,
		ExceptionDate:         date,
	}
	if err := s.availabilities.CreateException(ctx, exception); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create exception")
	}
	return exception, nil
}

func validWeekday(name string) bool {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == name {
			return true
		}
	}
	return false
}

func paginationFor(page, size, total int) *models.Pagination {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 200 {
		size = 50
	}
	return &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}
