package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusops/absence-api/internal/models"
	appErrors "github.com/campusops/absence-api/pkg/errors"
)

type preferenceRepository interface {
	ListByProfessor(ctx context.Context, professorID int64) ([]int64, error)
	Replace(ctx context.Context, professorID int64, courseMaterialIDs []int64) error
	Add(ctx context.Context, professorID, courseMaterialID int64) error
	Remove(ctx context.Context, professorID, courseMaterialID int64) error
}

type courseMaterialReader interface {
	FindByID(ctx context.Context, id int64) (*models.CourseMaterial, error)
}

// ReplacePreferencesRequest captures the payload replacing a professor's
// whole preference set.
type ReplacePreferencesRequest struct {
	CourseMaterialIDs []int64 `json:"course_material_ids" validate:"required,dive,gt=0"`
}

// PreferenceService owns professor course-material preferences.
type PreferenceService struct {
	repo      preferenceRepository
	materials courseMaterialReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPreferenceService constructs the service.
func NewPreferenceService(repo preferenceRepository, materials courseMaterialReader, validate *validator.Validate, logger *zap.Logger) *PreferenceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceService{repo: repo, materials: materials, validator: validate, logger: logger}
}

// List returns the course-material ids preferred by the professor.
func (s *PreferenceService) List(ctx context.Context, professorID int64) ([]int64, error) {
	ids, err := s.repo.ListByProfessor(ctx, professorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list preferences")
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// Replace swaps the professor's whole preference set. The repository runs the
// delete and inserts in one transaction.
func (s *PreferenceService) Replace(ctx context.Context, professorID int64, req ReplacePreferencesRequest) ([]int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preferences payload")
	}
	if err := s.repo.Replace(ctx, professorID, req.CourseMaterialIDs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace preferences")
	}
	return req.CourseMaterialIDs, nil
}

// Add marks one course material as preferred. Adding an already-present pair
// is a no-op.
func (s *PreferenceService) Add(ctx context.Context, professorID, courseMaterialID int64) (*models.ProfessorPreference, error) {
	if _, err := s.materials.FindByID(ctx, courseMaterialID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course material not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course material")
	}
	if err := s.repo.Add(ctx, professorID, courseMaterialID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add preference")
	}
	return &models.ProfessorPreference{ProfessorID: professorID, CourseMaterialID: courseMaterialID}, nil
}

// Remove drops one preference, failing with NotFound when the pair is absent.
func (s *PreferenceService) Remove(ctx context.Context, professorID, courseMaterialID int64) error {
	if err := s.repo.Remove(ctx, professorID, courseMaterialID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "preference not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove preference")
	}
	return nil
}
