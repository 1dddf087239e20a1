package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/logger"
	"wheelhub-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `v.id, v.shop_id, v.type, v.name, COALESCE(v.brand, ''), COALESCE(v.model, ''), COALESCE(v.description, ''), v.quantity,
	v.daily_rate_paisa, COALESCE(v.weekly_rate_paisa, 0), COALESCE(v.monthly_rate_paisa, 0), v.status, s.latitude, s.longitude, v.created_on, v.updated_on`

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (shop_id, type, name, brand, model, description, quantity, daily_rate_paisa, weekly_rate_paisa, monthly_rate_paisa, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, v.ShopID, v.Type, v.Name, v.Brand, v.Model, v.Description, v.Quantity,
		v.DailyRatePaisa, v.WeeklyRatePaisa, v.MonthlyRatePaisa, v.Status, now, now).Scan(&v.ID)
	if err != nil {
		return err
	}
	v.CreatedOn = now.Format(dateLayout)
	v.UpdatedOn = v.CreatedOn
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + `, s.owner_id, s.name, s.address, COALESCE(s.phone_number, '')
	          FROM vehicles v JOIN shops s ON s.id = v.shop_id WHERE v.id = $1`

	v := &domain.Vehicle{Shop: &domain.Shop{}}
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.ShopID, &v.Type, &v.Name, &v.Brand, &v.Model, &v.Description, &v.Quantity,
		&v.DailyRatePaisa, &v.WeeklyRatePaisa, &v.MonthlyRatePaisa, &v.Status, &v.Latitude, &v.Longitude, &createdOn, &updatedOn,
		&v.Shop.OwnerID, &v.Shop.Name, &v.Shop.Address, &v.Shop.PhoneNumber)
	if err != nil {
		return nil, notFound(err)
	}
	v.CreatedOn = createdOn.Format(dateLayout)
	v.UpdatedOn = updatedOn.Format(dateLayout)
	v.Shop.ID = v.ShopID
	v.Shop.Latitude = v.Latitude
	v.Shop.Longitude = v.Longitude
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET type=$1, name=$2, brand=$3, model=$4, description=$5, quantity=$6, daily_rate_paisa=$7,
	          weekly_rate_paisa=$8, monthly_rate_paisa=$9, status=$10, updated_on=$11 WHERE id=$12`
	now := time.Now()
	res, err := r.db.ExecContext(ctx, query, v.Type, v.Name, v.Brand, v.Model, v.Description, v.Quantity, v.DailyRatePaisa,
		v.WeeklyRatePaisa, v.MonthlyRatePaisa, v.Status, now, v.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	v.UpdatedOn = now.Format(dateLayout)
	return nil
}

// Search filters by the shop location since vehicles sit at their shop.
func (r *vehicleRepository) Search(ctx context.Context, f domain.VehicleFilter) ([]domain.Vehicle, int32, error) {
	page, pageSize := normalizePage(f.Page, f.PageSize)
	offset := (page - 1) * pageSize

	sql := `SELECT ` + vehicleColumns + ` FROM vehicles v JOIN shops s ON s.id = v.shop_id WHERE v.status = $1`
	args := []interface{}{domain.VehicleStatusAvailable}
	argIdx := 2

	if !f.Bounds.IsZero() {
		sql += fmt.Sprintf(" AND s.latitude BETWEEN $%d AND $%d AND s.longitude BETWEEN $%d AND $%d", argIdx, argIdx+1, argIdx+2, argIdx+3)
		args = append(args, f.Bounds.MinLat, f.Bounds.MaxLat, f.Bounds.MinLng, f.Bounds.MaxLng)
		argIdx += 4
	}
	if f.Type != "" {
		sql += fmt.Sprintf(" AND v.type = $%d", argIdx)
		args = append(args, f.Type)
		argIdx++
	}

	var count int32
	countSql := "SELECT count(*) FROM (" + sql + ") as sub"
	logger.DatabaseCall("SELECT", "vehicles search", "bounds", f.Bounds, "type", f.Type)
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, 0, err
	}

	sql += fmt.Sprintf(" ORDER BY v.daily_rate_paisa ASC, v.id ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&v.ID, &v.ShopID, &v.Type, &v.Name, &v.Brand, &v.Model, &v.Description, &v.Quantity,
			&v.DailyRatePaisa, &v.WeeklyRatePaisa, &v.MonthlyRatePaisa, &v.Status, &v.Latitude, &v.Longitude, &createdOn, &updatedOn); err != nil {
			return nil, 0, err
		}
		v.CreatedOn = createdOn.Format(dateLayout)
		v.UpdatedOn = updatedOn.Format(dateLayout)
		vehicles = append(vehicles, v)
	}
	logger.DatabaseResult("SELECT", int64(len(vehicles)), rows.Err())
	return vehicles, count, rows.Err()
}
