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

// Enforces one rental per payment; see migrations/001_init.sql.
const correlationConstraint = "rentals_payment_correlation_id_key"

const rentalColumns = `id, vehicle_id, shop_id, renter_id, start_date, end_date, quantity, total_price_paisa, payment_method, payment_status,
	payment_correlation_id, status, COALESCE(notes, ''), created_on, updated_on`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRental(s rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var start, end, createdOn, updatedOn time.Time
	err := s.Scan(&rt.ID, &rt.VehicleID, &rt.ShopID, &rt.RenterID, &start, &end, &rt.Quantity, &rt.TotalPricePaisa, &rt.PaymentMethod,
		&rt.PaymentStatus, &rt.PaymentCorrelationID, &rt.Status, &rt.Notes, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	rt.StartDate = start.Format(dateLayout)
	rt.EndDate = end.Format(dateLayout)
	rt.CreatedOn = createdOn.Format(time.RFC3339)
	rt.UpdatedOn = updatedOn.Format(time.RFC3339)
	return rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (vehicle_id, shop_id, renter_id, start_date, end_date, quantity, total_price_paisa, payment_method, payment_status,
	          payment_correlation_id, status, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	now := time.Now()
	logger.DatabaseCall("INSERT", "rentals", "correlation_id", rt.PaymentCorrelationID)
	err := r.db.QueryRowContext(ctx, query, rt.VehicleID, rt.ShopID, rt.RenterID, rt.StartDate, rt.EndDate, rt.Quantity, rt.TotalPricePaisa,
		rt.PaymentMethod, rt.PaymentStatus, rt.PaymentCorrelationID, rt.Status, rt.Notes, now, now).Scan(&rt.ID)
	if isUniqueViolation(err, correlationConstraint) {
		logger.Warn("Rental already booked for payment", "correlation_id", rt.PaymentCorrelationID)
		return domain.ErrDuplicateBooking
	}
	logger.DatabaseResult("INSERT", 1, err, "table", "rentals")
	if err != nil {
		return err
	}
	rt.CreatedOn = now.Format(time.RFC3339)
	rt.UpdatedOn = rt.CreatedOn
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return rt, nil
}

func (r *rentalRepository) GetByCorrelationID(ctx context.Context, correlationID string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE payment_correlation_id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, correlationID))
	if err != nil {
		return nil, notFound(err)
	}
	return rt, nil
}

func (r *rentalRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.RentalStatus) error {
	query := `UPDATE rentals SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`
	logger.DatabaseCall("UPDATE", "rentals status", "rental_id", id, "from", from, "to", to)
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("UPDATE", n, err)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *rentalRepository) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return r.list(ctx, "renter_id", renterID, status, page, pageSize)
}

func (r *rentalRepository) ListByShop(ctx context.Context, shopID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return r.list(ctx, "shop_id", shopID, status, page, pageSize)
}

func (r *rentalRepository) list(ctx context.Context, column string, id int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	page, pageSize = normalizePage(page, pageSize)
	offset := (page - 1) * pageSize

	sql := `SELECT ` + rentalColumns + ` FROM rentals WHERE ` + column + ` = $1`
	args := []interface{}{id}
	argIdx := 2
	if status != "" {
		sql += " AND status = $2"
		args = append(args, status)
		argIdx++
	}

	var count int32
	countSql := "SELECT count(*) FROM (" + sql + ") as sub"
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sql += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, count, rows.Err()
}

// BookedQuantity returns the most units of the vehicle out on any single day
// of [start, end]; rentals that never share a day do not add up.
func (r *rentalRepository) BookedQuantity(ctx context.Context, vehicleID int32, start, end string) (int32, error) {
	query := `SELECT COALESCE(MAX(booked), 0) FROM (
	              SELECT d.day, SUM(r.quantity) AS booked
	              FROM generate_series($3::date, $4::date, interval '1 day') AS d(day)
	              JOIN rentals r ON r.vehicle_id = $1 AND r.status <> $2
	                   AND r.start_date <= d.day AND r.end_date >= d.day
	              GROUP BY d.day
	          ) per_day`
	var booked int32
	err := r.db.QueryRowContext(ctx, query, vehicleID, domain.RentalStatusCancelled, start, end).Scan(&booked)
	return booked, err
}

func (r *rentalRepository) ActivateStarted(ctx context.Context, asOf string) ([]int32, error) {
	query := `UPDATE rentals SET status = $1, updated_on = NOW()
	          WHERE status = $2 AND start_date <= $3
	          RETURNING id`
	return r.transition(ctx, query, domain.RentalStatusActive, domain.RentalStatusConfirmed, asOf)
}

func (r *rentalRepository) CompleteFinished(ctx context.Context, asOf string) ([]int32, error) {
	query := `UPDATE rentals SET status = $1, updated_on = NOW()
	          WHERE status = $2 AND end_date < $3
	          RETURNING id`
	return r.transition(ctx, query, domain.RentalStatusCompleted, domain.RentalStatusActive, asOf)
}

func (r *rentalRepository) transition(ctx context.Context, query string, to, from domain.RentalStatus, asOf string) ([]int32, error) {
	logger.DatabaseCall("UPDATE", "rentals scheduled transition", "from", from, "to", to, "as_of", asOf)
	rows, err := r.db.QueryContext(ctx, query, to, from, asOf)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	logger.DatabaseResult("UPDATE", int64(len(ids)), rows.Err())
	return ids, rows.Err()
}
