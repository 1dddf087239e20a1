package service

import (
	"context"
	"fmt"
	"strings"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/repository"
)

type shopService struct {
	shopRepo repository.ShopRepository
}

func NewShopService(shopRepo repository.ShopRepository) ShopService {
	return &shopService{shopRepo: shopRepo}
}

func (s *shopService) CreateShop(ctx context.Context, ownerID int32, shop *domain.Shop) error {
	if strings.TrimSpace(shop.Name) == "" || strings.TrimSpace(shop.Address) == "" {
		return fmt.Errorf("%w: shop name and address are required", domain.ErrValidation)
	}
	if shop.Latitude < -90 || shop.Latitude > 90 || shop.Longitude < -180 || shop.Longitude > 180 {
		return fmt.Errorf("%w: shop location is out of range", domain.ErrValidation)
	}
	shop.OwnerID = ownerID
	return s.shopRepo.Create(ctx, shop)
}

func (s *shopService) GetShop(ctx context.Context, id int32) (*domain.Shop, error) {
	return s.shopRepo.GetByID(ctx, id)
}

func (s *shopService) ListMyShops(ctx context.Context, ownerID int32) ([]domain.Shop, error) {
	return s.shopRepo.ListByOwner(ctx, ownerID)
}
