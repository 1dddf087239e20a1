package service

import (
	"context"
	"fmt"
	"strings"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/repository"
)

type accessoryService struct {
	accessoryRepo repository.AccessoryRepository
	shopRepo      repository.ShopRepository
}

func NewAccessoryService(accessoryRepo repository.AccessoryRepository, shopRepo repository.ShopRepository) AccessoryService {
	return &accessoryService{accessoryRepo: accessoryRepo, shopRepo: shopRepo}
}

func (s *accessoryService) ListShopAccessories(ctx context.Context, shopID int32) ([]domain.Accessory, error) {
	if _, err := s.shopRepo.GetByID(ctx, shopID); err != nil {
		return nil, err
	}
	return s.accessoryRepo.ListByShop(ctx, shopID)
}

func (s *accessoryService) AddAccessory(ctx context.Context, ownerID, shopID int32, a *domain.Accessory) error {
	if err := s.ownShop(ctx, ownerID, shopID); err != nil {
		return err
	}
	a.ShopID = shopID
	if err := validateAccessory(a); err != nil {
		return err
	}
	return s.accessoryRepo.Create(ctx, a)
}

func (s *accessoryService) UpdateAccessory(ctx context.Context, ownerID int32, a *domain.Accessory) error {
	existing, err := s.accessoryRepo.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if err := s.ownShop(ctx, ownerID, existing.ShopID); err != nil {
		return err
	}
	a.ShopID = existing.ShopID
	if err := validateAccessory(a); err != nil {
		return err
	}
	return s.accessoryRepo.Update(ctx, a)
}

func (s *accessoryService) DeleteAccessory(ctx context.Context, ownerID, accessoryID int32) error {
	existing, err := s.accessoryRepo.GetByID(ctx, accessoryID)
	if err != nil {
		return err
	}
	if err := s.ownShop(ctx, ownerID, existing.ShopID); err != nil {
		return err
	}
	return s.accessoryRepo.Delete(ctx, accessoryID)
}

func (s *accessoryService) ownShop(ctx context.Context, ownerID, shopID int32) error {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return err
	}
	if shop.OwnerID != ownerID {
		return domain.ErrUnauthorized
	}
	return nil
}

func validateAccessory(a *domain.Accessory) error {
	switch {
	case strings.TrimSpace(a.Name) == "":
		return fmt.Errorf("%w: accessory name is required", domain.ErrValidation)
	case a.ForType != "" && !a.ForType.Valid():
		return fmt.Errorf("%w: unknown vehicle type %q", domain.ErrValidation, a.ForType)
	case a.Quantity < 0 || a.DailyRatePaisa < 0:
		return fmt.Errorf("%w: quantity and rate cannot be negative", domain.ErrValidation)
	}
	return nil
}
