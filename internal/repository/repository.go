package repository

import (
	"context"

	"wheelhub-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateDeviceToken(ctx context.Context, userID int32, token string) error
}

type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) error
	GetByID(ctx context.Context, id int32) (*domain.Shop, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Shop, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	// GetByID populates Vehicle.Shop
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	// Search returns available vehicles inside the filter bounds and the total match count
	Search(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, int32, error)
}

type AccessoryRepository interface {
	Create(ctx context.Context, a *domain.Accessory) error
	GetByID(ctx context.Context, id int32) (*domain.Accessory, error)
	Update(ctx context.Context, a *domain.Accessory) error
	Delete(ctx context.Context, id int32) error
	ListByShop(ctx context.Context, shopID int32) ([]domain.Accessory, error)
}

type RentalRepository interface {
	// Create fails with domain.ErrDuplicateBooking when the payment correlation id was already booked
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	GetByCorrelationID(ctx context.Context, correlationID string) (*domain.Rental, error)
	// UpdateStatus is conditional on the current status and returns domain.ErrNotFound when it no longer matches
	UpdateStatus(ctx context.Context, id int32, from, to domain.RentalStatus) error
	ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListByShop(ctx context.Context, shopID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	// BookedQuantity is the peak number of units held by non-cancelled rentals on any day of [start, end]
	BookedQuantity(ctx context.Context, vehicleID int32, start, end string) (int32, error)
	ActivateStarted(ctx context.Context, asOf string) ([]int32, error)
	CompleteFinished(ctx context.Context, asOf string) ([]int32, error)
}
