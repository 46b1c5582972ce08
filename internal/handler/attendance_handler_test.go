package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusops/absence-api/internal/models"
	"github.com/campusops/absence-api/internal/service"
)

type presenceRepoStub struct {
	rows []models.PresenceJoinRow
}

func (s *presenceRepoStub) ListByCourseMaterial(ctx context.Context, courseMaterialID int64) ([]models.PresenceJoinRow, error) {
	return s.rows, nil
}

func newAttendanceHandlerTest(rows []models.PresenceJoinRow) *AttendanceHandler {
	attendance := service.NewAttendanceService(&presenceRepoStub{rows: rows}, nil, service.AttendanceConfig{}, zap.NewNop())
	exports := service.NewExportService(nil, nil, zap.NewNop())
	return NewAttendanceHandler(attendance, exports)
}

func attendanceTestRows() []models.PresenceJoinRow {
	return []models.PresenceJoinRow{{
		StudentID:      100,
		SlotID:         5,
		Justified:      true,
		StudentName:    sql.NullString{String: "Alice", Valid: true},
		StudentNumber:  sql.NullString{String: "S100", Valid: true},
		SlotDate:       sql.NullTime{Time: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), Valid: true},
		SessionType:    sql.NullString{String: "TD", Valid: true},
		CourseMaterial: sql.NullString{String: "Algorithms", Valid: true},
	}}
}

func TestAttendanceHandlerReport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newAttendanceHandlerTest(attendanceTestRows())
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/course-materials/4/attendance", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "4"}}

	h.Report(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Alice"`)
}

func TestAttendanceHandlerExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newAttendanceHandlerTest(attendanceTestRows())
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/course-materials/4/attendance/export?format=csv", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "4"}}

	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance-4.csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "Name,Student Number,Date,Session Type,Course Material,Justified"))
}

func TestAttendanceHandlerExportPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newAttendanceHandlerTest(attendanceTestRows())
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/course-materials/4/attendance/export?format=pdf", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "4"}}

	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestAttendanceHandlerExportUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newAttendanceHandlerTest(nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/course-materials/4/attendance/export?format=xlsx", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "4"}}

	h.Export(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
