package postgres

import (
	"context"
	"database/sql"
	"time"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/logger"
	"wheelhub-backend/internal/repository"
)

type accessoryRepository struct {
	db *sql.DB
}

func NewAccessoryRepository(db *sql.DB) repository.AccessoryRepository {
	return &accessoryRepository{db: db}
}

const accessoryColumns = `id, shop_id, name, COALESCE(description, ''), COALESCE(for_type, ''), quantity, daily_rate_paisa, created_on, updated_on`

func (r *accessoryRepository) Create(ctx context.Context, a *domain.Accessory) error {
	query := `INSERT INTO accessories (shop_id, name, description, for_type, quantity, daily_rate_paisa, created_on, updated_on)
	          VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	logger.DatabaseCall("INSERT", "accessories", "shop_id", a.ShopID)
	err := r.db.QueryRowContext(ctx, query, a.ShopID, a.Name, a.Description, string(a.ForType), a.Quantity, a.DailyRatePaisa, now, now).Scan(&a.ID)
	logger.DatabaseResult("INSERT", 1, err)
	if err != nil {
		return err
	}
	a.CreatedOn = now.Format(dateLayout)
	a.UpdatedOn = a.CreatedOn
	return nil
}

func (r *accessoryRepository) GetByID(ctx context.Context, id int32) (*domain.Accessory, error) {
	query := `SELECT ` + accessoryColumns + ` FROM accessories WHERE id = $1`
	a, err := scanAccessory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (r *accessoryRepository) Update(ctx context.Context, a *domain.Accessory) error {
	query := `UPDATE accessories SET name=$1, description=$2, for_type=NULLIF($3, ''), quantity=$4, daily_rate_paisa=$5, updated_on=$6
	          WHERE id=$7`
	now := time.Now()
	res, err := r.db.ExecContext(ctx, query, a.Name, a.Description, string(a.ForType), a.Quantity, a.DailyRatePaisa, now, a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	a.UpdatedOn = now.Format(dateLayout)
	return nil
}

func (r *accessoryRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accessories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accessoryRepository) ListByShop(ctx context.Context, shopID int32) ([]domain.Accessory, error) {
	query := `SELECT ` + accessoryColumns + ` FROM accessories WHERE shop_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Accessory
	for rows.Next() {
		a, err := scanAccessory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func scanAccessory(row rowScanner) (*domain.Accessory, error) {
	a := &domain.Accessory{}
	var forType string
	var createdOn, updatedOn time.Time
	if err := row.Scan(&a.ID, &a.ShopID, &a.Name, &a.Description, &forType, &a.Quantity, &a.DailyRatePaisa, &createdOn, &updatedOn); err != nil {
		return nil, err
	}
	a.ForType = domain.VehicleType(forType)
	a.CreatedOn = createdOn.Format(dateLayout)
	a.UpdatedOn = updatedOn.Format(dateLayout)
	return a, nil
}
