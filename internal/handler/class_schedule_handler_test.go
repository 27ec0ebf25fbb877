package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupulse/timetable-api/internal/dto"
	internalmiddleware "github.com/edupulse/timetable-api/internal/middleware"
	"github.com/edupulse/timetable-api/internal/models"
	appErrors "github.com/edupulse/timetable-api/pkg/errors"
)

type classSchedulerMock struct {
	summary       *dto.GenerationSummary
	session       *models.ClassSchedule
	generateErr   error
	rescheduleErr error
	deleteErr     error
	gotPeriodID   string
	gotReschedule dto.RescheduleRequest
	gotScheduleID string
}

func (m *classSchedulerMock) Generate(ctx context.Context, academicPeriodID string) (*dto.GenerationSummary, error) {
	m.gotPeriodID = academicPeriodID
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return m.summary, nil
}

func (m *classSchedulerMock) Reschedule(ctx context.Context, classScheduleID string, req dto.RescheduleRequest) (*models.ClassSchedule, error) {
	m.gotScheduleID = classScheduleID
	m.gotReschedule = req
	if m.rescheduleErr != nil {
		return nil, m.rescheduleErr
	}
	return m.session, nil
}

func (m *classSchedulerMock) List(ctx context.Context, query dto.ClassScheduleQuery) ([]models.ClassSchedule, *models.Pagination, error) {
	return nil, &models.Pagination{Page: 1, PageSize: 50}, nil
}

func (m *classSchedulerMock) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}

func TestGenerateHandlerSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &classSchedulerMock{summary: &dto.GenerationSummary{AcademicPeriodID: "period-1", Created: 2}}
	handler := &ClassScheduleHandler{service: mockSvc}

	req, _ := http.NewRequest(http.MethodPost, "/class-schedules/generate?academicPeriodId=period-1", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "period-1", mockSvc.gotPeriodID)
}

func TestGenerateHandlerUnknownPeriod(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &classSchedulerMock{generateErr: appErrors.Clone(appErrors.ErrPeriodNotFound, "")}
	handler := &ClassScheduleHandler{service: mockSvc}

	req, _ := http.NewRequest(http.MethodPost, "/class-schedules/generate?academicPeriodId=missing", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, string(body["error"]), "PERIOD_NOT_FOUND")
}

func TestRescheduleHandlerSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &classSchedulerMock{session: &models.ClassSchedule{ID: "cs-1", ScheduleID: "sched-wed"}}
	handler := &ClassScheduleHandler{service: mockSvc}
	router := gin.New()
	router.PUT("/class-schedules/:id", handler.Reschedule)

	payload := []byte(`{"scheduleId":"sched-wed","date":"2024-02-07"}`)
	req, _ := http.NewRequest(http.MethodPut, "/class-schedules/cs-1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cs-1", mockSvc.gotScheduleID)
	assert.Equal(t, "sched-wed", mockSvc.gotReschedule.ScheduleID)
}

func TestRescheduleHandlerBindError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ClassScheduleHandler{service: &classSchedulerMock{}}
	router := gin.New()
	router.PUT("/class-schedules/:id", handler.Reschedule)

	req, _ := http.NewRequest(http.MethodPut, "/class-schedules/cs-1", bytes.NewReader([]byte(`{"scheduleId":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRescheduleHandlerConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &classSchedulerMock{rescheduleErr: appErrors.Clone(appErrors.ErrTeacherConflict, "")}
	handler := &ClassScheduleHandler{service: mockSvc}
	router := gin.New()
	router.PUT("/class-schedules/:id", handler.Reschedule)

	payload := []byte(`{"scheduleId":"sched-wed","date":"2024-02-07"}`)
	req, _ := http.NewRequest(http.MethodPut, "/class-schedules/cs-1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "TEACHER_CONFLICT")
}

func TestDeleteHandlerNoContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ClassScheduleHandler{service: &classSchedulerMock{}}
	router := gin.New()
	router.DELETE("/class-schedules/:id", handler.Delete)

	req, _ := http.NewRequest(http.MethodDelete, "/class-schedules/cs-1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteHandlerNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ClassScheduleHandler{service: &classSchedulerMock{deleteErr: appErrors.Clone(appErrors.ErrClassScheduleNotFound, "")}}
	router := gin.New()
	router.DELETE("/class-schedules/:id", handler.Delete)

	req, _ := http.NewRequest(http.MethodDelete, "/class-schedules/missing", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateRequiresAuthentication(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ClassScheduleHandler{service: &classSchedulerMock{}}
	router := gin.New()
	router.POST("/class-schedules/generate", internalmiddleware.RBAC(models.RoleAdmin), handler.Generate)

	req, _ := http.NewRequest(http.MethodPost, "/class-schedules/generate?academicPeriodId=period-1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerateForbiddenForTeachers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ClassScheduleHandler{service: &classSchedulerMock{}}
	router := gin.New()
	router.POST("/class-schedules/generate",
		func(c *gin.Context) {
			c.Set(internalmiddleware.ContextUserKey, &models.JWTClaims{UserID: "u-1", Role: models.RoleTeacher})
		},
		internalmiddleware.RBAC(models.RoleAdmin),
		handler.Generate,
	)

	req, _ := http.NewRequest(http.MethodPost, "/class-schedules/generate?academicPeriodId=period-1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestGenerateAllowedForAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &classSchedulerMock{summary: &dto.GenerationSummary{AcademicPeriodID: "period-1"}}
	handler := &ClassScheduleHandler{service: mockSvc}
	router := gin.New()
	router.POST("/class-schedules/generate",
		func(c *gin.Context) {
			c.Set(internalmiddleware.ContextUserKey, &models.JWTClaims{UserID: "u-1", Role: models.RoleAdmin})
		},
		internalmiddleware.RBAC(models.RoleAdmin),
		handler.Generate,
	)

	req, _ := http.NewRequest(http.MethodPost, "/class-schedules/generate?academicPeriodId=period-1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
}
