package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusops/absence-api/internal/service"
	"github.com/campusops/absence-api/pkg/response"
)

// AttendanceHandler exposes attendance report endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
	exports    *service.ExportService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService, exports *service.ExportService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, exports: exports}
}

// Report godoc
// @Summary Attendance report for a course material
// @Description One flat row per presence record, ready for display or export.
// @Tags Attendance
// @Produce json
// @Param id path int true "Course material ID"
// @Success 200 {object} response.Envelope
// @Router /course-materials/{id}/attendance [get]
func (h *AttendanceHandler) Report(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rows, err := h.attendance.ByCourseMaterial(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Export godoc
// @Summary Export an attendance report as CSV or PDF
// @Tags Attendance
// @Produce text/csv
// @Produce application/pdf
// @Param id path int true "Course material ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /course-materials/{id}/attendance/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	format := c.DefaultQuery("format", service.ExportFormatCSV)

	rows, err := h.attendance.ByCourseMaterial(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	title := fmt.Sprintf("Attendance report - course material %d", id)
	payload, contentType, err := h.exports.RenderAttendance(rows, format, title)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("attendance-%d.%s", id, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
