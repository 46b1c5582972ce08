package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/absence-api/internal/models"
)

func newStudentMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func studentColumns() []string {
	return []string{"id", "name", "student_number", "created_at", "updated_at"}
}

func TestStudentRepositoryListWithSearch(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows(studentColumns()).
		AddRow(int64(1), "Alice Martin", "S100", time.Now(), time.Now())
	mock.ExpectQuery("SELECT s\\.id, s\\.name, s\\.student_number").
		WithArgs("%ali%").
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("%ali%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	students, total, err := repo.List(context.Background(), models.StudentFilter{Search: "ali"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, students, 1)
	assert.Equal(t, "Alice Martin", students[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByNumbers(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows(studentColumns()).
		AddRow(int64(1), "Alice", "S100", time.Now(), time.Now()).
		AddRow(int64(2), "Bob", "S101", time.Now(), time.Now())
	mock.ExpectQuery(`WHERE student_number IN \(\$1,\$2\)`).
		WithArgs("S100", "S101").
		WillReturnRows(rows)

	students, err := repo.FindByNumbers(context.Background(), []string{"S100", "S101"})
	require.NoError(t, err)
	assert.Len(t, students, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByNumbersEmptyInput(t *testing.T) {
	db, _, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	students, err := repo.FindByNumbers(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, students)
}

func TestStudentRepositoryCreateWithUser(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO students").
		WithArgs("Alice", "S100", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice@etu.example.edu", "Alice", sqlmock.AnyArg(), models.RoleStudent, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
	mock.ExpectCommit()

	student := &models.Student{Name: "Alice", StudentNumber: "S100"}
	user := &models.User{Email: "alice@etu.example.edu", Name: "Alice", PasswordHash: "hash", Role: models.RoleStudent, Active: true}
	require.NoError(t, repo.CreateWithUser(context.Background(), student, user))
	assert.Equal(t, int64(1), student.ID)
	assert.Equal(t, int64(9), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateWithUserRollsBackOnAccountFailure(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO students").
		WithArgs("Alice", "S100", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	student := &models.Student{Name: "Alice", StudentNumber: "S100"}
	user := &models.User{Email: "alice@etu.example.edu", Name: "Alice"}
	require.Error(t, repo.CreateWithUser(context.Background(), student, user))
	assert.NoError(t, mock.ExpectationsWereMet())
}
