package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupulse/timetable-api/internal/dto"
	"github.com/edupulse/timetable-api/internal/models"
	"github.com/edupulse/timetable-api/internal/service"
	appErrors "github.com/edupulse/timetable-api/pkg/errors"
	"github.com/edupulse/timetable-api/pkg/response"
)

type classScheduler interface {
	Generate(ctx context.Context, academicPeriodID string) (*dto.GenerationSummary, error)
	Reschedule(ctx context.Context, classScheduleID string, req dto.RescheduleRequest) (*models.ClassSchedule, error)
	List(ctx context.Context, query dto.ClassScheduleQuery) ([]models.ClassSchedule, *models.Pagination, error)
	Delete(ctx context.Context, id string) error
}

// ClassScheduleHandler exposes the allocation endpoints.
type ClassScheduleHandler struct {
	service classScheduler
}

// NewClassScheduleHandler constructs the handler.
func NewClassScheduleHandler(svc *service.ClassScheduleService) *ClassScheduleHandler {
	return &ClassScheduleHandler{service: svc}
}

// Generate godoc
// @Summary Generate all class sessions for an academic period
// @Description Clears and rebuilds the period's allocations from discipline hour loads, teacher availability and room capacity.
// @Tags ClassSchedules
// @Produce json
// @Param academicPeriodId query string true "Academic period ID"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /class-schedules/generate [post]
func (h *ClassScheduleHandler) Generate(c *gin.Context) {
	periodID := c.Query("academicPeriodId")
	summary, err := h.service.Generate(c.Request.Context(), periodID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, summary)
}

// Reschedule godoc
// @Summary Move one class session to a new date and weekly slot
// @Tags ClassSchedules
// @Accept json
// @Produce json
// @Param id path string true "Class schedule ID"
// @Param payload body dto.RescheduleRequest true "Reschedule payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /class-schedules/{id} [put]
func (h *ClassScheduleHandler) Reschedule(c *gin.Context) {
	var req dto.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reschedule payload"))
		return
	}
	updated, err := h.service.Reschedule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated, nil)
}

// List godoc
// @Summary List class sessions
// @Tags ClassSchedules
// @Produce json
// @Param academicPeriodId query string false "Academic period ID"
// @Param teacherId query string false "Teacher ID"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /class-schedules [get]
func (h *ClassScheduleHandler) List(c *gin.Context) {
	var query dto.ClassScheduleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	schedules, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules, pagination)
}

// Delete godoc
// @Summary Delete one class session
// @Tags ClassSchedules
// @Param id path string true "Class schedule ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /class-schedules/{id} [delete]
func (h *ClassScheduleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
