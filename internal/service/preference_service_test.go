package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusops/absence-api/internal/models"
	appErrors "github.com/campusops/absence-api/pkg/errors"
)

type mockPreferenceRepo struct {
	ids         []int64
	listErr     error
	replaced    []int64
	replaceErr  error
	addCalls    int
	addErr      error
	removeErr   error
	removeCalls int
}

func (m *mockPreferenceRepo) ListByProfessor(ctx context.Context, professorID int64) ([]int64, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.ids, nil
}

func (m *mockPreferenceRepo) Replace(ctx context.Context, professorID int64, courseMaterialIDs []int64) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaced = courseMaterialIDs
	return nil
}

func (m *mockPreferenceRepo) Add(ctx context.Context, professorID, courseMaterialID int64) error {
	m.addCalls++
	return m.addErr
}

func (m *mockPreferenceRepo) Remove(ctx context.Context, professorID, courseMaterialID int64) error {
	m.removeCalls++
	return m.removeErr
}

type mockMaterialReader struct {
	material *models.CourseMaterial
	err      error
}

func (m *mockMaterialReader) FindByID(ctx context.Context, id int64) (*models.CourseMaterial, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.material, nil
}

func TestPreferenceListEmptyIsNotNil(t *testing.T) {
	svc := NewPreferenceService(&mockPreferenceRepo{}, &mockMaterialReader{}, nil, zap.NewNop())

	ids, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestPreferenceReplace(t *testing.T) {
	repo := &mockPreferenceRepo{}
	svc := NewPreferenceService(repo, &mockMaterialReader{}, nil, zap.NewNop())

	ids, err := svc.Replace(context.Background(), 1, ReplacePreferencesRequest{CourseMaterialIDs: []int64{3, 1, 2}})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, ids)
	assert.Equal(t, []int64{3, 1, 2}, repo.replaced)
}

func TestPreferenceReplaceRejectsInvalidIDs(t *testing.T) {
	repo := &mockPreferenceRepo{}
	svc := NewPreferenceService(repo, &mockMaterialReader{}, nil, zap.NewNop())

	_, err := svc.Replace(context.Background(), 1, ReplacePreferencesRequest{CourseMaterialIDs: []int64{1, 0}})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Nil(t, repo.replaced)
}

func TestPreferenceAdd(t *testing.T) {
	repo := &mockPreferenceRepo{}
	materials := &mockMaterialReader{material: &models.CourseMaterial{ID: 4, Name: "Algorithms"}}
	svc := NewPreferenceService(repo, materials, nil, zap.NewNop())

	pref, err := svc.Add(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pref.ProfessorID)
	assert.Equal(t, int64(4), pref.CourseMaterialID)
	assert.Equal(t, 1, repo.addCalls)
}

func TestPreferenceAddUnknownMaterial(t *testing.T) {
	repo := &mockPreferenceRepo{}
	svc := NewPreferenceService(repo, &mockMaterialReader{err: sql.ErrNoRows}, nil, zap.NewNop())

	_, err := svc.Add(context.Background(), 1, 4)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, 0, repo.addCalls)
}

func TestPreferenceRemoveMissingPair(t *testing.T) {
	repo := &mockPreferenceRepo{removeErr: sql.ErrNoRows}
	svc := NewPreferenceService(repo, &mockMaterialReader{}, nil, zap.NewNop())

	err := svc.Remove(context.Background(), 1, 4)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestPreferenceRemove(t *testing.T) {
	repo := &mockPreferenceRepo{}
	svc := NewPreferenceService(repo, &mockMaterialReader{}, nil, zap.NewNop())

	require.NoError(t, svc.Remove(context.Background(), 1, 4))
	assert.Equal(t, 1, repo.removeCalls)
}
