package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campusops/absence-api/internal/models"
	appErrors "github.com/campusops/absence-api/pkg/errors"
)

type attendancePresenceRepository interface {
	ListByCourseMaterial(ctx context.Context, courseMaterialID int64) ([]models.PresenceJoinRow, error)
}

// AttendanceConfig tunes report caching.
type AttendanceConfig struct {
	CacheTTL time.Duration
}

// AttendanceService flattens presence records into report-ready rows.
type AttendanceService struct {
	presences attendancePresenceRepository
	cache     *CacheService
	cfg       AttendanceConfig
	logger    *zap.Logger
}

// NewAttendanceService constructs the service.
func NewAttendanceService(presences attendancePresenceRepository, cache *CacheService, cfg AttendanceConfig, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{presences: presences, cache: cache, cfg: cfg, logger: logger}
}

// ByCourseMaterial returns one flat row per presence record of the course
// material, in store order. A course with no presences yields an empty slice.
// A missing student or session-type relation degrades the affected fields to
// their zero values; it never aborts the aggregation.
func (s *AttendanceService) ByCourseMaterial(ctx context.Context, courseMaterialID int64) ([]models.AttendanceRow, error) {
	cacheKey := fmt.Sprintf("attendance:cm:%d", courseMaterialID)
	if s.cache != nil {
		var cached []models.AttendanceRow
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	records, err := s.presences.ListByCourseMaterial(ctx, courseMaterialID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load presences")
	}

	rows := make([]models.AttendanceRow, 0, len(records))
	for _, record := range records {
		row := models.AttendanceRow{
			Justified: record.Justified,
			StudentID: record.StudentID,
			SlotID:    record.SlotID,
		}
		gaps := 0
		if record.StudentName.Valid {
			row.Name = record.StudentName.String
		} else {
			gaps++
		}
		if record.StudentNumber.Valid {
			row.StudentNumber = record.StudentNumber.String
		}
		if record.SlotDate.Valid {
			date := record.SlotDate.Time
			row.Date = &date
		} else {
			gaps++
		}
		if record.SessionType.Valid {
			row.SessionType = record.SessionType.String
		} else {
			gaps++
		}
		if record.CourseMaterial.Valid {
			row.CourseMaterial = record.CourseMaterial.String
		} else {
			gaps++
		}
		if gaps > 0 {
			s.logger.Debug("presence row has missing relations",
				zap.Int64("student_id", record.StudentID),
				zap.Int64("slot_id", record.SlotID),
				zap.Int("missing_fields", gaps),
			)
		}
		rows = append(rows, row)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, rows, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("attendance cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return rows, nil
}
