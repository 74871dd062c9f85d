package repository

import (
	"context"
	"regexp"
	"testing"

	"holonet/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedUser  *models.User
		expectedError error
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "email", "first_name", "last_name"}).
					AddRow(1, "luke@rebellion.org", "Luke", "Skywalker")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Email: "luke@rebellion.org", FirstName: "Luke", LastName: "Skywalker"},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else if assert.NotNil(t, user) {
				assert.Equal(t, tt.expectedUser.Email, user.Email)
				assert.Equal(t, "Luke Skywalker", user.FullName())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 ORDER BY "users"."id" LIMIT $2`)).
		WithArgs("ghost@nowhere.io", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := repo.GetByEmail(context.Background(), "ghost@nowhere.io")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List_ClampsLimit(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"default", 0, defaultListLimit},
		{"negative", -5, defaultListLimit},
		{"within range", 7, 7},
		{"capped", 500, maxListLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" ORDER BY id LIMIT $1`)).
				WithArgs(tt.wantLimit).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

			users, err := repo.List(context.Background(), tt.limit, 0)
			require.NoError(t, err)
			assert.Len(t, users, 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	user := &models.User{Email: "luke@rebellion.org", FirstName: "Luke", LastName: "Skywalker"}
	require.NoError(t, user.SetPasswordWithCost("password123", bcrypt.MinCost))

	pgErr := &pgconn.PgError{Code: "23505", Message: `duplicate key value violates unique constraint "idx_users_email"`}
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).WillReturnError(pgErr)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), user)
	assert.ErrorIs(t, err, models.ErrUniqueViolation)

	var driverErr *pgconn.PgError
	require.ErrorAs(t, err, &driverErr)
	assert.Same(t, pgErr, driverErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_RejectsPlaintextPassword(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.User{
		Email: "r2@astromech.io", Password: "beep-boop", FirstName: "R2", LastName: "D2",
	})
	assert.ErrorIs(t, err, models.ErrPlaintextPassword)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete(t *testing.T) {
	tests := []struct {
		name          string
		mockBehavior  func(mock sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "Success",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users" WHERE "users"."id" = $1`)).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "Not Found",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users" WHERE "users"."id" = $1`)).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit()
			},
			expectedError: models.ErrNotFound,
		},
		{
			name: "Still Authors Posts",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users" WHERE "users"."id" = $1`)).
					WithArgs(1).
					WillReturnError(&pgconn.PgError{Code: "23503"})
				mock.ExpectRollback()
			},
			expectedError: models.ErrForeignKeyViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewUserRepository(db)
			tt.mockBehavior(mock)

			err := repo.Delete(context.Background(), 1)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_SetActive(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "is_active"=$1 WHERE id = $2`)).
		WithArgs(false, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SetActive(context.Background(), 3, false))
	assert.NoError(t, mock.ExpectationsWereMet())
}
