package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusops/absence-api/internal/models"
	appErrors "github.com/campusops/absence-api/pkg/errors"
)

type mockStudentRepo struct {
	students        []models.Student
	total           int
	student         *models.Student
	findErr         error
	created         *models.Student
	createdUser     *models.User
	bySemesterCalls int
	deleted         int64
}

func (m *mockStudentRepo) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	return m.students, m.total, nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.student, nil
}

func (m *mockStudentRepo) FindByNumbers(ctx context.Context, numbers []string) ([]models.Student, error) {
	return m.students, nil
}

func (m *mockStudentRepo) ListByGroup(ctx context.Context, groupID int64) ([]models.Student, error) {
	return m.students, nil
}

func (m *mockStudentRepo) ListEnrolledInSemester(ctx context.Context, semesterID int64) ([]models.Student, error) {
	m.bySemesterCalls++
	return m.students, nil
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	student.ID = 1
	m.created = student
	return nil
}

func (m *mockStudentRepo) CreateWithUser(ctx context.Context, student *models.Student, user *models.User) error {
	student.ID = 1
	m.created = student
	m.createdUser = user
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	return nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = id
	return nil
}

type mockGroupReader struct {
	group *models.GroupDetail
	err   error
}

func (m *mockGroupReader) FindByID(ctx context.Context, id int64) (*models.GroupDetail, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.group, nil
}

func newStudentService(repo *mockStudentRepo, groups *mockGroupReader, materials *mockMaterialReader) *StudentService {
	return NewStudentService(repo, groups, materials, "etu.example.edu", nil, zap.NewNop())
}

func TestStudentListPaginationDefaults(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{ID: 1}}, total: 41}
	svc := newStudentService(repo, &mockGroupReader{}, &mockMaterialReader{})

	students, pagination, err := svc.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	require.NotNil(t, pagination)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
	assert.Equal(t, 41, pagination.TotalCount)
}

func TestStudentGetNotFound(t *testing.T) {
	repo := &mockStudentRepo{findErr: sql.ErrNoRows}
	svc := newStudentService(repo, &mockGroupReader{}, &mockMaterialReader{})

	_, err := svc.Get(context.Background(), 1)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestStudentListByGroupUnknownGroup(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := newStudentService(repo, &mockGroupReader{err: sql.ErrNoRows}, &mockMaterialReader{})

	_, err := svc.ListByGroup(context.Background(), 1)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestStudentListByCourseMaterialResolvesSemester(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{ID: 1}}}
	materials := &mockMaterialReader{material: &models.CourseMaterial{ID: 4, SemesterID: 7}}
	svc := newStudentService(repo, &mockGroupReader{}, materials)

	students, err := svc.ListByCourseMaterial(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, 1, repo.bySemesterCalls)
}

func TestStudentCreateWithoutPassword(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := newStudentService(repo, &mockGroupReader{}, &mockMaterialReader{})

	student, err := svc.Create(context.Background(), CreateStudentRequest{Name: "Alice Martin", StudentNumber: "S100"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), student.ID)
	assert.Nil(t, repo.createdUser)
}

func TestStudentCreateProvisionsAccount(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := newStudentService(repo, &mockGroupReader{}, &mockMaterialReader{})

	_, err := svc.Create(context.Background(), CreateStudentRequest{
		Name:          "Éléonore Dupont",
		StudentNumber: "S100",
		Password:      "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.createdUser)
	assert.Equal(t, "eleonore.dupont@etu.example.edu", repo.createdUser.Email)
	assert.Equal(t, models.RoleStudent, repo.createdUser.Role)
	assert.True(t, repo.createdUser.Active)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.createdUser.PasswordHash), []byte("secret123")))
}

func TestStudentCreateMissingFields(t *testing.T) {
	svc := newStudentService(&mockStudentRepo{}, &mockGroupReader{}, &mockMaterialReader{})

	_, err := svc.Create(context.Background(), CreateStudentRequest{Name: "Alice"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSlugifyName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Alice Martin", "alice.martin"},
		{"Éléonore Dupont", "eleonore.dupont"},
		{"  Jean-Pierre  ", "jean.pierre"},
		{"O'Brien", "o.brien"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, slugifyName(tc.in), tc.in)
	}
}

func TestStudentDelete(t *testing.T) {
	repo := &mockStudentRepo{student: &models.Student{ID: 3}}
	svc := newStudentService(repo, &mockGroupReader{}, &mockMaterialReader{})

	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.Equal(t, int64(3), repo.deleted)
}
