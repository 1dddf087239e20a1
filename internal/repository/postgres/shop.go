package postgres

import (
	"context"
	"database/sql"
	"time"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/repository"
)

type shopRepository struct {
	db *sql.DB
}

func NewShopRepository(db *sql.DB) repository.ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) Create(ctx context.Context, s *domain.Shop) error {
	query := `INSERT INTO shops (owner_id, name, description, address, phone_number, latitude, longitude, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	if err := r.db.QueryRowContext(ctx, query, s.OwnerID, s.Name, s.Description, s.Address, s.PhoneNumber, s.Latitude, s.Longitude, now).Scan(&s.ID); err != nil {
		return err
	}
	s.CreatedOn = now.Format(dateLayout)
	return nil
}

func (r *shopRepository) GetByID(ctx context.Context, id int32) (*domain.Shop, error) {
	s := &domain.Shop{}
	var createdOn time.Time
	query := `SELECT id, owner_id, name, COALESCE(description, ''), address, COALESCE(phone_number, ''), latitude, longitude, created_on FROM shops WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.OwnerID, &s.Name, &s.Description, &s.Address, &s.PhoneNumber, &s.Latitude, &s.Longitude, &createdOn)
	if err != nil {
		return nil, notFound(err)
	}
	s.CreatedOn = createdOn.Format(dateLayout)
	return s, nil
}

func (r *shopRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Shop, error) {
	query := `SELECT id, owner_id, name, COALESCE(description, ''), address, COALESCE(phone_number, ''), latitude, longitude, created_on
	          FROM shops WHERE owner_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shops []domain.Shop
	for rows.Next() {
		var s domain.Shop
		var createdOn time.Time
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Description, &s.Address, &s.PhoneNumber, &s.Latitude, &s.Longitude, &createdOn); err != nil {
			return nil, err
		}
		s.CreatedOn = createdOn.Format(dateLayout)
		shops = append(shops, s)
	}
	return shops, rows.Err()
}
