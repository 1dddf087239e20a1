package payment

import (
	"context"
	"fmt"

	"wheelhub-backend/internal/domain"
)

// CashAdapter is used for pay-at-pickup and vendor-entered bookings.
type CashAdapter struct{}

func NewCashAdapter() *CashAdapter {
	return &CashAdapter{}
}

func (a *CashAdapter) Method() domain.PaymentMethod { return domain.PaymentMethodCash }

func (a *CashAdapter) RequiresRedirect() bool { return false }

func (a *CashAdapter) BuildRedirect(context.Context, *domain.RentalDraft) (*RedirectRequest, error) {
	return nil, nil
}

func (a *CashAdapter) DecodeCallback(context.Context, CallbackParams) (*domain.PaymentCallback, error) {
	return nil, fmt.Errorf("%w: cash payments have no gateway callback", domain.ErrDecode)
}

func (a *CashAdapter) IsSuccess(string) bool { return false }
