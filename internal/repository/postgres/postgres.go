package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ShopRepository
	repository.VehicleRepository
	repository.RentalRepository
	Accessories repository.AccessoryRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		UserRepository:    NewUserRepository(db),
		ShopRepository:    NewShopRepository(db),
		VehicleRepository: NewVehicleRepository(db),
		RentalRepository:  NewRentalRepository(db),
		Accessories:       NewAccessoryRepository(db),
	}
}

const (
	uniqueViolation = "23505"
	dateLayout      = "2006-01-02"
)

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// notFound maps sql.ErrNoRows onto the domain error services check for.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func normalizePage(page, pageSize int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// Ping backs the gRPC health check.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
