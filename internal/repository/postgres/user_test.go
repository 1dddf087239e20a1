package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/repository/postgres"
)

func TestUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		u := &domain.User{Email: "ram@wheelhub.test", Name: "Ram", PasswordHash: "hash", Role: domain.UserRoleCustomer}
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.Email, u.PhoneNumber, u.PasswordHash, u.Name, u.Role, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		require.NoError(t, repo.Create(ctx, u))
		assert.Equal(t, int32(42), u.ID)
	})

	t.Run("Email taken", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		err := repo.Create(ctx, &domain.User{Email: "ram@wheelhub.test"})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER\\(email\\) = LOWER\\(\\$1\\)").
		WithArgs("Ram@WheelHub.test").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "phone_number", "password_hash", "name", "role", "device_token", "created_on", "updated_on"}).
			AddRow(42, "ram@wheelhub.test", "", "hash", "Ram", "VENDOR", "fcm-token", time.Now(), time.Now()))

	u, err := repo.GetByEmail(context.Background(), "Ram@WheelHub.test")
	require.NoError(t, err)
	assert.True(t, u.IsVendor())
	assert.Equal(t, "fcm-token", u.DeviceToken)
}
