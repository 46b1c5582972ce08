package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusops/absence-api/internal/middleware"
	"github.com/campusops/absence-api/internal/models"
	"github.com/campusops/absence-api/internal/service"
)

type preferenceRepoStub struct {
	ids      []int64
	replaced []int64
}

func (s *preferenceRepoStub) ListByProfessor(ctx context.Context, professorID int64) ([]int64, error) {
	return s.ids, nil
}

func (s *preferenceRepoStub) Replace(ctx context.Context, professorID int64, courseMaterialIDs []int64) error {
	s.replaced = courseMaterialIDs
	return nil
}

func (s *preferenceRepoStub) Add(ctx context.Context, professorID, courseMaterialID int64) error {
	return nil
}

func (s *preferenceRepoStub) Remove(ctx context.Context, professorID, courseMaterialID int64) error {
	return nil
}

type materialReaderStub struct{}

func (materialReaderStub) FindByID(ctx context.Context, id int64) (*models.CourseMaterial, error) {
	return &models.CourseMaterial{ID: id, Name: "Algorithms", SemesterID: 7}, nil
}

func newPreferenceHandlerTest(repo *preferenceRepoStub) *PreferenceHandler {
	svc := service.NewPreferenceService(repo, materialReaderStub{}, nil, zap.NewNop())
	return NewPreferenceHandler(svc)
}

func professorClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: 42, Role: models.RoleProfessor, Email: "prof@example.edu"}
}

func TestPreferenceHandlerListMineUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newPreferenceHandlerTest(&preferenceRepoStub{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/preferences/me", nil)
	c.Request = req

	h.ListMine(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPreferenceHandlerListMine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newPreferenceHandlerTest(&preferenceRepoStub{ids: []int64{2, 5}})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/preferences/me", nil)
	c.Request = req
	c.Set(middleware.ContextUserKey, professorClaims())

	h.ListMine(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[2,5]}`, w.Body.String())
}

func TestPreferenceHandlerReplaceMine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &preferenceRepoStub{}
	h := newPreferenceHandlerTest(repo)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := []byte(`{"course_material_ids":[3,1]}`)
	req, _ := http.NewRequest(http.MethodPut, "/preferences/me", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, professorClaims())

	h.ReplaceMine(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{3, 1}, repo.replaced)
}

func TestPreferenceHandlerReplaceMineBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newPreferenceHandlerTest(&preferenceRepoStub{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/preferences/me", bytes.NewReader([]byte(`{"course_material_ids":"nope"}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, professorClaims())

	h.ReplaceMine(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreferenceHandlerAddMine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newPreferenceHandlerTest(&preferenceRepoStub{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/preferences/me/4", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "courseMaterialId", Value: "4"}}
	c.Set(middleware.ContextUserKey, professorClaims())

	h.AddMine(c)

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestPreferenceHandlerRemoveMine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newPreferenceHandlerTest(&preferenceRepoStub{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/preferences/me/4", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "courseMaterialId", Value: "4"}}
	c.Set(middleware.ContextUserKey, professorClaims())

	h.RemoveMine(c)
	// gin defers header writes until a body write or engine teardown; flush
	// manually since the handler is invoked outside the engine.
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusNoContent, w.Code)
}
