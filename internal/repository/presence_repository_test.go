package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenceRepositoryListByCourseMaterial(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPresenceRepository(sqlx.NewDb(db, "sqlmock"))

	columns := []string{"student_id", "slot_id", "justified", "student_name", "student_number", "slot_date", "session_type", "course_material"}
	rows := sqlmock.NewRows(columns).
		AddRow(int64(100), int64(5), true, "Alice", "S100", time.Now(), "TD", "Algorithms").
		AddRow(int64(101), int64(5), false, nil, nil, time.Now(), "TD", "Algorithms")
	mock.ExpectQuery(`WHERE st\.course_material_id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(rows)

	result, err := repo.ListByCourseMaterial(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.True(t, result[0].StudentName.Valid)
	assert.Equal(t, "Alice", result[0].StudentName.String)

	// An orphaned student reference comes back as an invalid NullString.
	assert.False(t, result[1].StudentName.Valid)
	assert.False(t, result[1].StudentNumber.Valid)
	assert.Equal(t, int64(101), result[1].StudentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
