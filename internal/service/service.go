package service

import (
	"context"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/utils"
)

type AuthService interface {
	Register(ctx context.Context, name, email, phone, password string, role domain.UserRole) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error) // user, access token
	UpdateDeviceToken(ctx context.Context, userID int32, token string) error
}

type ShopService interface {
	CreateShop(ctx context.Context, ownerID int32, shop *domain.Shop) error
	GetShop(ctx context.Context, id int32) (*domain.Shop, error)
	ListMyShops(ctx context.Context, ownerID int32) ([]domain.Shop, error)
}

type VehicleService interface {
	SearchVehicles(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, int32, error)
	GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error)
	AddVehicle(ctx context.Context, ownerID, shopID int32, v *domain.Vehicle) error
	UpdateVehicle(ctx context.Context, ownerID int32, v *domain.Vehicle) error
}

// AccessoryService manages a shop's add-ons. Only the shop owner may change them.
type AccessoryService interface {
	ListShopAccessories(ctx context.Context, shopID int32) ([]domain.Accessory, error)
	AddAccessory(ctx context.Context, ownerID, shopID int32, a *domain.Accessory) error
	UpdateAccessory(ctx context.Context, ownerID int32, a *domain.Accessory) error
	DeleteAccessory(ctx context.Context, ownerID, accessoryID int32) error
}

type RentalService interface {
	Quote(ctx context.Context, vehicleID int32, startDate, endDate string, quantity int32) (*utils.RentalCostBreakdown, error)
	// Create is the only writer of rentals for reconciled bookings.
	Create(ctx context.Context, d *domain.RentalDraft, paymentStatus domain.PaymentStatus) (*domain.Rental, error)
	GetRental(ctx context.Context, userID, rentalID int32) (*domain.Rental, error)
	ListMyRentals(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListShopBookings(ctx context.Context, ownerID, shopID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	UpdateBookingStatus(ctx context.Context, ownerID, rentalID int32, status domain.RentalStatus) (*domain.Rental, error)
	CancelRental(ctx context.Context, renterID, rentalID int32) (*domain.Rental, error)
}

// Notifier tells vendors and renters about their bookings. Failures are
// logged by callers and never fail the booking.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b BookingNotice) error
	BookingCancelled(ctx context.Context, b BookingNotice) error
}

type EmailSender interface {
	SendEmail(ctx context.Context, toEmail, toName, subject, plainText, htmlContent string) error
}

type PushSender interface {
	SendPush(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}
