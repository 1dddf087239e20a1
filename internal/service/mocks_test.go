package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/service"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateDeviceToken(ctx context.Context, userID int32, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

type MockShopRepo struct {
	mock.Mock
}

func (m *MockShopRepo) Create(ctx context.Context, shop *domain.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}
func (m *MockShopRepo) GetByID(ctx context.Context, id int32) (*domain.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shop), args.Error(1)
}
func (m *MockShopRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Shop, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Shop), args.Error(1)
}

type MockAccessoryRepo struct {
	mock.Mock
}

func (m *MockAccessoryRepo) Create(ctx context.Context, a *domain.Accessory) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAccessoryRepo) GetByID(ctx context.Context, id int32) (*domain.Accessory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Accessory), args.Error(1)
}
func (m *MockAccessoryRepo) Update(ctx context.Context, a *domain.Accessory) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAccessoryRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAccessoryRepo) ListByShop(ctx context.Context, shopID int32) ([]domain.Accessory, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Accessory), args.Error(1)
}

type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) Search(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int32), args.Error(2)
}

type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetByCorrelationID(ctx context.Context, correlationID string) (*domain.Rental, error) {
	args := m.Called(ctx, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) UpdateStatus(ctx context.Context, id int32, from, to domain.RentalStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListByShop(ctx context.Context, shopID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, shopID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) BookedQuantity(ctx context.Context, vehicleID int32, start, end string) (int32, error) {
	args := m.Called(ctx, vehicleID, start, end)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockRentalRepo) ActivateStarted(ctx context.Context, asOf string) ([]int32, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]int32), args.Error(1)
}
func (m *MockRentalRepo) CompleteFinished(ctx context.Context, asOf string) ([]int32, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]int32), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingConfirmed(ctx context.Context, b service.BookingNotice) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockNotifier) BookingCancelled(ctx context.Context, b service.BookingNotice) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, toEmail, toName, subject, plainText, htmlContent string) error {
	args := m.Called(ctx, toEmail, toName, subject, plainText, htmlContent)
	return args.Error(0)
}

type MockPushSender struct {
	mock.Mock
}

func (m *MockPushSender) SendPush(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	args := m.Called(ctx, deviceToken, title, body, data)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, eventType, correlationID string, payload any) error {
	args := m.Called(ctx, eventType, correlationID, payload)
	return args.Error(0)
}
