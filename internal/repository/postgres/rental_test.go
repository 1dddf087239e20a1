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

var rentalCols = []string{"id", "vehicle_id", "shop_id", "renter_id", "start_date", "end_date", "quantity", "total_price_paisa",
	"payment_method", "payment_status", "payment_correlation_id", "status", "notes", "created_on", "updated_on"}

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	newRental := func() *domain.Rental {
		return &domain.Rental{
			VehicleID:            2,
			ShopID:               3,
			RenterID:             42,
			StartDate:            "2026-11-01",
			EndDate:              "2026-11-03",
			Quantity:             1,
			TotalPricePaisa:      300000,
			PaymentMethod:        domain.PaymentMethodEsewa,
			PaymentStatus:        domain.PaymentStatusComplete,
			PaymentCorrelationID: "abc-123",
			Status:               domain.RentalStatusConfirmed,
		}
	}

	t.Run("Success", func(t *testing.T) {
		rt := newRental()
		mock.ExpectQuery("INSERT INTO rentals").
			WithArgs(rt.VehicleID, rt.ShopID, rt.RenterID, rt.StartDate, rt.EndDate, rt.Quantity, rt.TotalPricePaisa, rt.PaymentMethod,
				rt.PaymentStatus, rt.PaymentCorrelationID, rt.Status, rt.Notes, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		err := repo.Create(ctx, rt)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), rt.ID)
		assert.NotEmpty(t, rt.CreatedOn)
	})

	t.Run("Duplicate correlation id", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO rentals").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "rentals_payment_correlation_id_key"})

		err := repo.Create(ctx, newRental())
		assert.ErrorIs(t, err, domain.ErrDuplicateBooking)
	})

	t.Run("Other unique violation is not a duplicate booking", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO rentals").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "something_else"})

		err := repo.Create(ctx, newRental())
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrDuplicateBooking)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	start := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalCols).
			AddRow(1, 2, 3, 42, start, start.AddDate(0, 0, 2), 1, 300000, "esewa", "complete", "abc-123", "CONFIRMED", "", time.Now(), time.Now())
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		rt, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int32(1), rt.ID)
		assert.Equal(t, "2026-11-01", rt.StartDate)
		assert.Equal(t, "2026-11-03", rt.EndDate)
		assert.Equal(t, domain.PaymentMethodEsewa, rt.PaymentMethod)
		assert.Equal(t, domain.RentalStatusConfirmed, rt.Status)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(rentalCols))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRentalRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE rentals SET status").
			WithArgs(domain.RentalStatusActive, sqlmock.AnyArg(), int32(1), domain.RentalStatusConfirmed).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(ctx, 1, domain.RentalStatusConfirmed, domain.RentalStatusActive))
	})

	t.Run("Status moved underneath", func(t *testing.T) {
		mock.ExpectExec("UPDATE rentals SET status").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 1, domain.RentalStatusConfirmed, domain.RentalStatusCancelled)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRentalRepository_ListByRenter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	start := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM \\(SELECT (.+) FROM rentals WHERE renter_id = \\$1 AND status = \\$2\\) as sub").
		WithArgs(int32(42), "ACTIVE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM rentals WHERE renter_id = \\$1 AND status = \\$2 ORDER BY created_on DESC LIMIT \\$3 OFFSET \\$4").
		WithArgs(int32(42), "ACTIVE", int32(20), int32(0)).
		WillReturnRows(sqlmock.NewRows(rentalCols).
			AddRow(5, 2, 3, 42, start, start, 1, 150000, "cash", "pending", "c-1", "ACTIVE", "helmet", time.Now(), time.Now()))

	rentals, count, err := repo.ListByRenter(context.Background(), 42, "ACTIVE", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(1), count)
	require.Len(t, rentals, 1)
	assert.Equal(t, "helmet", rentals[0].Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_BookedQuantity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)

	// Peak per-day usage, not the sum of every overlapping rental.
	mock.ExpectQuery("SELECT COALESCE\\(MAX\\(booked\\), 0\\) FROM \\(\\s*SELECT d.day, SUM\\(r.quantity\\) AS booked\\s+FROM generate_series").
		WithArgs(int32(2), domain.RentalStatusCancelled, "2026-11-01", "2026-11-06").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(1))

	booked, err := repo.BookedQuantity(context.Background(), 2, "2026-11-01", "2026-11-06")
	require.NoError(t, err)
	assert.Equal(t, int32(1), booked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_GetByCorrelationID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	start := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Booked", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalCols).
			AddRow(7, 2, 3, 42, start, start, 1, 100000, "khalti", "complete", "abc-123", "CONFIRMED", "", time.Now(), time.Now())
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE payment_correlation_id = \\$1").
			WithArgs("abc-123").
			WillReturnRows(rows)

		rt, err := repo.GetByCorrelationID(ctx, "abc-123")
		require.NoError(t, err)
		assert.Equal(t, int32(7), rt.ID)
	})

	t.Run("Not booked", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE payment_correlation_id = \\$1").
			WithArgs("zzz").
			WillReturnRows(sqlmock.NewRows(rentalCols))

		_, err := repo.GetByCorrelationID(ctx, "zzz")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRentalRepository_ScheduledTransitions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("UPDATE rentals SET status = \\$1(.+)start_date <= \\$3").
		WithArgs(domain.RentalStatusActive, domain.RentalStatusConfirmed, "2026-11-01").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4).AddRow(6))

	ids, err := repo.ActivateStarted(ctx, "2026-11-01")
	require.NoError(t, err)
	assert.Equal(t, []int32{4, 6}, ids)

	mock.ExpectQuery("UPDATE rentals SET status = \\$1(.+)end_date < \\$3").
		WithArgs(domain.RentalStatusCompleted, domain.RentalStatusActive, "2026-11-01").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ids, err = repo.CompleteFinished(ctx, "2026-11-01")
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
