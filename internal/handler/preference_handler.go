package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusops/absence-api/internal/service"
	appErrors "github.com/campusops/absence-api/pkg/errors"
	"github.com/campusops/absence-api/pkg/response"
)

// PreferenceHandler exposes professor preference endpoints.
type PreferenceHandler struct {
	preferences *service.PreferenceService
}

// NewPreferenceHandler constructs PreferenceHandler.
func NewPreferenceHandler(preferences *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences}
}

// ListMine godoc
// @Summary List the authenticated professor's preferred course materials
// @Tags Preferences
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /preferences/me [get]
func (h *PreferenceHandler) ListMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	ids, err := h.preferences.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ids, nil)
}

// ReplaceMine godoc
// @Summary Replace the authenticated professor's preference set
// @Description Deletes the existing set and stores the new one atomically.
// @Tags Preferences
// @Accept json
// @Produce json
// @Param payload body service.ReplacePreferencesRequest true "Course material IDs"
// @Success 200 {object} response.Envelope
// @Router /preferences/me [put]
func (h *PreferenceHandler) ReplaceMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.ReplacePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	ids, err := h.preferences.Replace(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ids, nil)
}

// AddMine godoc
// @Summary Mark one course material as preferred
// @Description Adding an already-preferred material is a no-op.
// @Tags Preferences
// @Produce json
// @Param courseMaterialId path int true "Course material ID"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /preferences/me/{courseMaterialId} [post]
func (h *PreferenceHandler) AddMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	materialID, ok := pathID(c, "courseMaterialId")
	if !ok {
		return
	}
	pref, err := h.preferences.Add(c.Request.Context(), claims.UserID, materialID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, pref)
}

// RemoveMine godoc
// @Summary Drop one preferred course material
// @Tags Preferences
// @Produce json
// @Param courseMaterialId path int true "Course material ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /preferences/me/{courseMaterialId} [delete]
func (h *PreferenceHandler) RemoveMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	materialID, ok := pathID(c, "courseMaterialId")
	if !ok {
		return
	}
	if err := h.preferences.Remove(c.Request.Context(), claims.UserID, materialID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListByProfessor godoc
// @Summary List a professor's preferred course materials
// @Tags Preferences
// @Produce json
// @Param professorId path int true "Professor ID"
// @Success 200 {object} response.Envelope
// @Router /preferences/{professorId} [get]
func (h *PreferenceHandler) ListByProfessor(c *gin.Context) {
	professorID, ok := pathID(c, "professorId")
	if !ok {
		return
	}
	ids, err := h.preferences.List(c.Request.Context(), professorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ids, nil)
}
