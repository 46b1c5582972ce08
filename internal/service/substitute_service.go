package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/campusops/absence-api/internal/models"
	appErrors "github.com/campusops/absence-api/pkg/errors"
)

type substituteGroupRepository interface {
	FindByID(ctx context.Context, id int64) (*models.GroupDetail, error)
	ListBySemesterExcludingName(ctx context.Context, semesterID int64, excludedName string) ([]models.Group, error)
}

type substituteEnrollmentRepository interface {
	ListByGroups(ctx context.Context, groupIDs []int64) ([]models.EnrollmentDetail, error)
	ListBySemesterExcludingGroup(ctx context.Context, semesterID, excludedGroupID int64) ([]models.EnrollmentDetail, error)
	ListStudentsWithoutEnrollment(ctx context.Context, semesterID int64) ([]models.Student, error)
}

// SubstitutePoolService resolves the pool of students eligible to stand in
// for a group's roster.
type SubstitutePoolService struct {
	groups      substituteGroupRepository
	enrollments substituteEnrollmentRepository
	logger      *zap.Logger
}

// NewSubstitutePoolService constructs the service.
func NewSubstitutePoolService(groups substituteGroupRepository, enrollments substituteEnrollmentRepository, logger *zap.Logger) *SubstitutePoolService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubstitutePoolService{groups: groups, enrollments: enrollments, logger: logger}
}

// Resolve returns the candidate pool for the base group: students of similar
// sibling groups when any exist (one candidate per enrollment, tagged with its
// origin group), otherwise one candidate per distinct student enrolled
// elsewhere in the semester; students with no enrollment in the semester are
// appended in both cases.
func (s *SubstitutePoolService) Resolve(ctx context.Context, groupID int64) ([]models.SubstituteCandidate, error) {
	base, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group")
	}

	others, err := s.groups.ListBySemesterExcludingName(ctx, base.SemesterID, base.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list semester groups")
	}

	var similarIDs []int64
	for _, group := range others {
		if isOneCharDifferent(base.Name, group.Name) {
			similarIDs = append(similarIDs, group.ID)
		}
	}

	var candidates []models.SubstituteCandidate
	if len(similarIDs) > 0 {
		enrollments, err := s.enrollments.ListByGroups(ctx, similarIDs)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sibling enrollments")
		}
		// One candidate per enrollment: a student enrolled in two similar
		// groups appears once per origin.
		for _, enrollment := range enrollments {
			candidates = append(candidates, candidateFromEnrollment(enrollment))
		}
	} else {
		enrollments, err := s.enrollments.ListBySemesterExcludingGroup(ctx, base.SemesterID, base.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list semester enrollments")
		}
		// Dedupe by student keeping the first-seen enrollment's group as
		// origin; slice + seen set preserves insertion order.
		seen := make(map[int64]struct{}, len(enrollments))
		for _, enrollment := range enrollments {
			if _, ok := seen[enrollment.StudentID]; ok {
				continue
			}
			seen[enrollment.StudentID] = struct{}{}
			candidates = append(candidates, candidateFromEnrollment(enrollment))
		}
	}

	unaffiliated, err := s.enrollments.ListStudentsWithoutEnrollment(ctx, base.SemesterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list unaffiliated students")
	}
	for _, student := range unaffiliated {
		candidates = append(candidates, models.SubstituteCandidate{
			StudentID:     student.ID,
			Name:          student.Name,
			StudentNumber: student.StudentNumber,
		})
	}

	if candidates == nil {
		candidates = []models.SubstituteCandidate{}
	}

	s.logger.Debug("substitute pool resolved",
		zap.Int64("group_id", groupID),
		zap.Int("similar_groups", len(similarIDs)),
		zap.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

func candidateFromEnrollment(enrollment models.EnrollmentDetail) models.SubstituteCandidate {
	return models.SubstituteCandidate{
		StudentID:       enrollment.StudentID,
		Name:            enrollment.StudentName,
		StudentNumber:   enrollment.StudentNumber,
		OriginGroupID:   enrollment.GroupID,
		OriginGroupName: enrollment.GroupName,
	}
}

// isOneCharDifferent reports whether two group names are equal-length strings
// differing at exactly one character position. Names of different lengths are
// never similar; there is no insertion or deletion tolerance.
func isOneCharDifferent(a, b string) bool {
	runesA := []rune(a)
	runesB := []rune(b)
	if len(runesA) != len(runesB) {
		return false
	}
	diff := 0
	for i := range runesA {
		if runesA[i] != runesB[i] {
			diff++
			if diff > 1 {
				return false
			}
		}
	}
	return diff == 1
}
