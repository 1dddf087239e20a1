package postgres

import (
	"context"
	"database/sql"
	"time"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/logger"
	"wheelhub-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, phone_number, password_hash, name, role, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	logger.DatabaseCall("INSERT", "users", "email", u.Email)
	err := r.db.QueryRowContext(ctx, query, u.Email, u.PhoneNumber, u.PasswordHash, u.Name, u.Role, now, now).Scan(&u.ID)
	if isUniqueViolation(err, "users_email_key") {
		return domain.ErrEmailTaken
	}
	logger.DatabaseResult("INSERT", 1, err, "table", "users")
	if err != nil {
		return err
	}
	u.CreatedOn = now.Format(dateLayout)
	u.UpdatedOn = u.CreatedOn
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT id, email, COALESCE(phone_number, ''), password_hash, name, role, COALESCE(device_token, ''), created_on, updated_on FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, COALESCE(phone_number, ''), password_hash, name, role, COALESCE(device_token, ''), created_on, updated_on FROM users WHERE LOWER(email) = LOWER($1)`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) UpdateDeviceToken(ctx context.Context, userID int32, token string) error {
	query := `UPDATE users SET device_token=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, token, time.Now(), userID)
	return err
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&u.ID, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.Name, &u.Role, &u.DeviceToken, &createdOn, &updatedOn)
	if err != nil {
		return nil, notFound(err)
	}
	u.CreatedOn = createdOn.Format(dateLayout)
	u.UpdatedOn = updatedOn.Format(dateLayout)
	return u, nil
}
