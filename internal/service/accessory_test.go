package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/service"
)

func TestAccessoryService(t *testing.T) {
	ctx := context.Background()
	shop := &domain.Shop{ID: 2, OwnerID: 9}

	t.Run("Owner adds accessory", func(t *testing.T) {
		accessories, shops := new(MockAccessoryRepo), new(MockShopRepo)
		svc := service.NewAccessoryService(accessories, shops)
		shops.On("GetByID", ctx, int32(2)).Return(shop, nil).Once()
		accessories.On("Create", ctx, mock.MatchedBy(func(a *domain.Accessory) bool { return a.ShopID == 2 })).Return(nil).Once()

		err := svc.AddAccessory(ctx, 9, 2, &domain.Accessory{Name: "Helmet", Quantity: 4})
		require.NoError(t, err)
		accessories.AssertExpectations(t)
	})

	t.Run("Someone else's shop", func(t *testing.T) {
		accessories, shops := new(MockAccessoryRepo), new(MockShopRepo)
		svc := service.NewAccessoryService(accessories, shops)
		shops.On("GetByID", ctx, int32(2)).Return(shop, nil).Once()

		err := svc.AddAccessory(ctx, 7, 2, &domain.Accessory{Name: "Helmet"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		accessories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid accessory", func(t *testing.T) {
		accessories, shops := new(MockAccessoryRepo), new(MockShopRepo)
		svc := service.NewAccessoryService(accessories, shops)
		shops.On("GetByID", ctx, int32(2)).Return(shop, nil)

		assert.ErrorIs(t, svc.AddAccessory(ctx, 9, 2, &domain.Accessory{Name: " "}), domain.ErrValidation)
		assert.ErrorIs(t, svc.AddAccessory(ctx, 9, 2, &domain.Accessory{Name: "Seat", ForType: "tank"}), domain.ErrValidation)
		assert.ErrorIs(t, svc.AddAccessory(ctx, 9, 2, &domain.Accessory{Name: "Lock", DailyRatePaisa: -1}), domain.ErrValidation)
	})

	t.Run("Update keeps the shop", func(t *testing.T) {
		accessories, shops := new(MockAccessoryRepo), new(MockShopRepo)
		svc := service.NewAccessoryService(accessories, shops)
		accessories.On("GetByID", ctx, int32(11)).Return(&domain.Accessory{ID: 11, ShopID: 2, Name: "Helmet"}, nil).Once()
		shops.On("GetByID", ctx, int32(2)).Return(shop, nil).Once()
		accessories.On("Update", ctx, mock.MatchedBy(func(a *domain.Accessory) bool {
			return a.ID == 11 && a.ShopID == 2 && a.Name == "Full-face helmet"
		})).Return(nil).Once()

		err := svc.UpdateAccessory(ctx, 9, &domain.Accessory{ID: 11, ShopID: 99, Name: "Full-face helmet"})
		require.NoError(t, err)
		accessories.AssertExpectations(t)
	})

	t.Run("Delete by non-owner", func(t *testing.T) {
		accessories, shops := new(MockAccessoryRepo), new(MockShopRepo)
		svc := service.NewAccessoryService(accessories, shops)
		accessories.On("GetByID", ctx, int32(11)).Return(&domain.Accessory{ID: 11, ShopID: 2}, nil).Once()
		shops.On("GetByID", ctx, int32(2)).Return(shop, nil).Once()

		assert.ErrorIs(t, svc.DeleteAccessory(ctx, 7, 11), domain.ErrUnauthorized)
		accessories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("List for unknown shop", func(t *testing.T) {
		accessories, shops := new(MockAccessoryRepo), new(MockShopRepo)
		svc := service.NewAccessoryService(accessories, shops)
		shops.On("GetByID", ctx, int32(5)).Return(nil, domain.ErrNotFound).Once()

		_, err := svc.ListShopAccessories(ctx, 5)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
