package service

import (
	"context"
	"fmt"
	"strings"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	shopRepo    repository.ShopRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository, shopRepo repository.ShopRepository) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		shopRepo:    shopRepo,
	}
}

func (s *vehicleService) SearchVehicles(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, int32, error) {
	if !filter.Bounds.IsZero() && !filter.Bounds.Valid() {
		return nil, 0, fmt.Errorf("%w: invalid map bounds", domain.ErrValidation)
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown vehicle type %q", domain.ErrValidation, filter.Type)
	}
	return s.vehicleRepo.Search(ctx, filter)
}

func (s *vehicleService) GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) AddVehicle(ctx context.Context, ownerID, shopID int32, v *domain.Vehicle) error {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return err
	}
	if shop.OwnerID != ownerID {
		return domain.ErrUnauthorized
	}

	v.ShopID = shopID
	if v.Quantity == 0 {
		v.Quantity = 1
	}
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}
	if err := validateVehicle(v); err != nil {
		return err
	}
	return s.vehicleRepo.Create(ctx, v)
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, ownerID int32, v *domain.Vehicle) error {
	existing, err := s.vehicleRepo.GetByID(ctx, v.ID)
	if err != nil {
		return err
	}
	if existing.Shop == nil || existing.Shop.OwnerID != ownerID {
		return domain.ErrUnauthorized
	}

	v.ShopID = existing.ShopID
	if v.Status == "" {
		v.Status = existing.Status
	}
	if v.Quantity == 0 {
		v.Quantity = existing.Quantity
	}
	if err := validateVehicle(v); err != nil {
		return err
	}
	return s.vehicleRepo.Update(ctx, v)
}

func validateVehicle(v *domain.Vehicle) error {
	switch {
	case strings.TrimSpace(v.Name) == "":
		return fmt.Errorf("%w: vehicle name is required", domain.ErrValidation)
	case !v.Type.Valid():
		return fmt.Errorf("%w: unknown vehicle type %q", domain.ErrValidation, v.Type)
	case v.Quantity < 1:
		return fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	case v.DailyRatePaisa <= 0:
		return fmt.Errorf("%w: daily rate is required", domain.ErrValidation)
	case v.WeeklyRatePaisa < 0 || v.MonthlyRatePaisa < 0:
		return fmt.Errorf("%w: rates cannot be negative", domain.ErrValidation)
	case v.Status != domain.VehicleStatusAvailable && v.Status != domain.VehicleStatusUnavailable:
		return fmt.Errorf("%w: unknown vehicle status %q", domain.ErrValidation, v.Status)
	}
	return nil
}
