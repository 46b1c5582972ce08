package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusops/absence-api/internal/models"
	"github.com/campusops/absence-api/internal/service"
	"github.com/campusops/absence-api/pkg/response"
)

type groupRepoStub struct {
	group    *models.GroupDetail
	groupErr error
	siblings []models.Group
}

func (s *groupRepoStub) FindByID(ctx context.Context, id int64) (*models.GroupDetail, error) {
	if s.groupErr != nil {
		return nil, s.groupErr
	}
	return s.group, nil
}

func (s *groupRepoStub) ListBySemesterExcludingName(ctx context.Context, semesterID int64, excludedName string) ([]models.Group, error) {
	return s.siblings, nil
}

type enrollmentRepoStub struct {
	byGroups     []models.EnrollmentDetail
	bySemester   []models.EnrollmentDetail
	unaffiliated []models.Student
}

func (s *enrollmentRepoStub) ListByGroups(ctx context.Context, groupIDs []int64) ([]models.EnrollmentDetail, error) {
	return s.byGroups, nil
}

func (s *enrollmentRepoStub) ListBySemesterExcludingGroup(ctx context.Context, semesterID, excludedGroupID int64) ([]models.EnrollmentDetail, error) {
	return s.bySemester, nil
}

func (s *enrollmentRepoStub) ListStudentsWithoutEnrollment(ctx context.Context, semesterID int64) ([]models.Student, error) {
	return s.unaffiliated, nil
}

func newSubstitutesContext(t *testing.T, id string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, "/groups/"+id+"/substitutes", nil)
	require.NoError(t, err)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: id}}
	return c, w
}

func TestGroupHandlerSubstitutesInvalidID(t *testing.T) {
	svc := service.NewSubstitutePoolService(&groupRepoStub{}, &enrollmentRepoStub{}, zap.NewNop())
	h := NewGroupHandler(nil, svc)

	c, w := newSubstitutesContext(t, "abc")
	h.Substitutes(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGroupHandlerSubstitutesGroupNotFound(t *testing.T) {
	svc := service.NewSubstitutePoolService(&groupRepoStub{groupErr: sql.ErrNoRows}, &enrollmentRepoStub{}, zap.NewNop())
	h := NewGroupHandler(nil, svc)

	c, w := newSubstitutesContext(t, "99")
	h.Substitutes(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGroupHandlerSubstitutes(t *testing.T) {
	groups := &groupRepoStub{
		group:    &models.GroupDetail{Group: models.Group{ID: 1, Name: "TD1A", SemesterID: 7}},
		siblings: []models.Group{{ID: 2, Name: "TD1B", SemesterID: 7}},
	}
	enrollments := &enrollmentRepoStub{
		byGroups: []models.EnrollmentDetail{
			{Enrollment: models.Enrollment{ID: 10, StudentID: 100, GroupID: 2}, StudentName: "Alice", StudentNumber: "S100", GroupName: "TD1B"},
		},
	}
	svc := service.NewSubstitutePoolService(groups, enrollments, zap.NewNop())
	h := NewGroupHandler(nil, svc)

	c, w := newSubstitutesContext(t, "1")
	h.Substitutes(c)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	payload, err := json.Marshal(envelope.Data)
	require.NoError(t, err)

	var candidates []models.SubstituteCandidate
	require.NoError(t, json.Unmarshal(payload, &candidates))
	require.Len(t, candidates, 1)
	assert.Equal(t, int64(100), candidates[0].StudentID)
	assert.Equal(t, "TD1B", candidates[0].OriginGroupName)
}
