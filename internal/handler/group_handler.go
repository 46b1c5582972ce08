package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusops/absence-api/internal/service"
	"github.com/campusops/absence-api/pkg/response"
)

// GroupHandler exposes group roster and substitute-pool endpoints.
type GroupHandler struct {
	students    *service.StudentService
	substitutes *service.SubstitutePoolService
}

// NewGroupHandler constructs GroupHandler.
func NewGroupHandler(students *service.StudentService, substitutes *service.SubstitutePoolService) *GroupHandler {
	return &GroupHandler{students: students, substitutes: substitutes}
}

// Roster godoc
// @Summary List students enrolled in a group
// @Tags Groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /groups/{id}/students [get]
func (h *GroupHandler) Roster(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	students, err := h.students.ListByGroup(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, nil)
}

// Substitutes godoc
// @Summary List substitute candidates for a group
// @Description Students of similarly named sibling groups, or of any other group in the semester when no sibling matches, plus students without any enrollment.
// @Tags Groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /groups/{id}/substitutes [get]
func (h *GroupHandler) Substitutes(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	candidates, err := h.substitutes.Resolve(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, candidates, nil)
}
