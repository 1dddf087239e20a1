package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/events"
	"wheelhub-backend/internal/logger"
	"wheelhub-backend/internal/repository"
	"wheelhub-backend/internal/utils"
)

type rentalService struct {
	rentalRepo  repository.RentalRepository
	vehicleRepo repository.VehicleRepository
	shopRepo    repository.ShopRepository
	userRepo    repository.UserRepository
	notifier    Notifier
	events      events.Publisher
	now         func() time.Time
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	vehicleRepo repository.VehicleRepository,
	shopRepo repository.ShopRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	publisher events.Publisher,
) RentalService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &rentalService{
		rentalRepo:  rentalRepo,
		vehicleRepo: vehicleRepo,
		shopRepo:    shopRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		events:      publisher,
		now:         time.Now,
	}
}

func (s *rentalService) Quote(ctx context.Context, vehicleID int32, startDate, endDate string, quantity int32) (*utils.RentalCostBreakdown, error) {
	v, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if quantity == 0 {
		quantity = 1
	}
	b, err := utils.CalculateRentalCost(startDate, endDate, v, quantity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return &b, nil
}

func (s *rentalService) Create(ctx context.Context, d *domain.RentalDraft, paymentStatus domain.PaymentStatus) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.Create", "vehicle_id", d.VehicleID, "correlation_id", d.PaymentCorrelationID)

	if d.PaymentCorrelationID == "" {
		return nil, fmt.Errorf("%w: payment correlation id is required", domain.ErrValidation)
	}
	start, _, _, err := utils.ParseDateRange(d.StartDate, d.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if start.Before(s.today()) {
		return nil, fmt.Errorf("%w: start date is in the past", domain.ErrValidation)
	}
	quantity := d.Quantity
	if quantity == 0 {
		quantity = 1
	}

	// A replayed payment must not be reported as a full fleet.
	existing, err := s.rentalRepo.GetByCorrelationID(ctx, d.PaymentCorrelationID)
	switch {
	case err == nil:
		logger.Warn("Payment already booked", "correlation_id", d.PaymentCorrelationID, "rental_id", existing.ID)
		return nil, fmt.Errorf("%w: rental %d", domain.ErrDuplicateBooking, existing.ID)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	v, err := s.vehicleRepo.GetByID(ctx, d.VehicleID)
	if err != nil {
		return nil, err
	}
	if d.VendorInitiated && (v.Shop == nil || v.Shop.OwnerID != d.RenterID) {
		return nil, domain.ErrUnauthorized
	}
	if v.Status != domain.VehicleStatusAvailable {
		return nil, domain.ErrVehicleUnavailable
	}

	booked, err := s.rentalRepo.BookedQuantity(ctx, v.ID, d.StartDate, d.EndDate)
	if err != nil {
		return nil, err
	}
	if booked+quantity > v.Quantity {
		logger.Info("Vehicle fully booked", "vehicle_id", v.ID, "booked", booked, "requested", quantity, "fleet", v.Quantity)
		return nil, domain.ErrVehicleUnavailable
	}

	// The staged price is honoured: it was quoted by the server and is what the gateway charged.
	total := d.TotalPricePaisa
	if total <= 0 {
		b, err := utils.CalculateRentalCost(d.StartDate, d.EndDate, v, quantity)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		total = b.TotalPaisa
	}

	rental := &domain.Rental{
		VehicleID:            v.ID,
		ShopID:               v.ShopID,
		RenterID:             d.RenterID,
		StartDate:            d.StartDate,
		EndDate:              d.EndDate,
		Quantity:             quantity,
		TotalPricePaisa:      total,
		PaymentMethod:        d.PaymentMethod,
		PaymentStatus:        paymentStatus,
		PaymentCorrelationID: d.PaymentCorrelationID,
		Status:               domain.RentalStatusConfirmed,
		Notes:                d.Notes,
	}
	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		logger.ExitMethodWithError("rentalService.Create", err)
		return nil, err
	}

	s.notify(ctx, rental, v, s.notifier.BookingConfirmed)
	logger.ExitMethod("rentalService.Create", "rental_id", rental.ID)
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, userID, rentalID int32) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.RenterID == userID {
		return rt, nil
	}
	shop, err := s.shopRepo.GetByID(ctx, rt.ShopID)
	if err != nil {
		return nil, err
	}
	if shop.OwnerID != userID {
		return nil, domain.ErrUnauthorized
	}
	return rt, nil
}

func (s *rentalService) ListMyRentals(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentalRepo.ListByRenter(ctx, renterID, status, page, pageSize)
}

func (s *rentalService) ListShopBookings(ctx context.Context, ownerID, shopID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, 0, err
	}
	if shop.OwnerID != ownerID {
		return nil, 0, domain.ErrUnauthorized
	}
	return s.rentalRepo.ListByShop(ctx, shopID, status, page, pageSize)
}

func (s *rentalService) UpdateBookingStatus(ctx context.Context, ownerID, rentalID int32, status domain.RentalStatus) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	shop, err := s.shopRepo.GetByID(ctx, rt.ShopID)
	if err != nil {
		return nil, err
	}
	if shop.OwnerID != ownerID {
		return nil, domain.ErrUnauthorized
	}
	return s.transition(ctx, rt, status, ownerID)
}

// CancelRental lets the renter cancel a confirmed booking before pickup day.
func (s *rentalService) CancelRental(ctx context.Context, renterID, rentalID int32) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.RenterID != renterID {
		return nil, domain.ErrUnauthorized
	}
	start, err := time.Parse(utils.DateLayout, rt.StartDate)
	if err != nil {
		return nil, err
	}
	if !start.After(s.today()) {
		return nil, fmt.Errorf("%w: rentals can only be cancelled before the start date", domain.ErrValidation)
	}

	rt, err = s.transition(ctx, rt, domain.RentalStatusCancelled, renterID)
	if err != nil {
		return nil, err
	}
	if v, err := s.vehicleRepo.GetByID(ctx, rt.VehicleID); err == nil {
		s.notify(ctx, rt, v, s.notifier.BookingCancelled)
	}
	return rt, nil
}

func (s *rentalService) transition(ctx context.Context, rt *domain.Rental, to domain.RentalStatus, actorID int32) (*domain.Rental, error) {
	from := rt.Status
	if !from.CanTransition(to) {
		return nil, fmt.Errorf("%w: cannot move rental from %s to %s", domain.ErrValidation, from, to)
	}
	if err := s.rentalRepo.UpdateStatus(ctx, rt.ID, from, to); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: rental status changed concurrently", domain.ErrValidation)
		}
		return nil, err
	}
	rt.Status = to

	payload := events.RentalStatusPayload{RentalID: rt.ID, From: string(from), To: string(to), ChangedBy: actorID}
	if err := s.events.Publish(ctx, events.EventRentalStatusChanged, fmt.Sprintf("rental-%d", rt.ID), payload); err != nil {
		logger.Warn("Failed to publish rental status event", "rental_id", rt.ID, "error", err)
	}
	return rt, nil
}

func (s *rentalService) notify(ctx context.Context, rt *domain.Rental, v *domain.Vehicle, send func(context.Context, BookingNotice) error) {
	if s.notifier == nil || v.Shop == nil {
		return
	}
	vendor, err := s.userRepo.GetByID(ctx, v.Shop.OwnerID)
	if err != nil {
		logger.Warn("Vendor lookup failed, skipping notification", "rental_id", rt.ID, "error", err)
		return
	}
	renter, err := s.userRepo.GetByID(ctx, rt.RenterID)
	if err != nil {
		logger.Warn("Renter lookup failed, skipping notification", "rental_id", rt.ID, "error", err)
		return
	}
	if err := send(ctx, BookingNotice{Rental: rt, Vehicle: v, Vendor: vendor, Renter: renter}); err != nil {
		logger.Warn("Booking notification failed", "rental_id", rt.ID, "error", err)
	}
}

func (s *rentalService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
