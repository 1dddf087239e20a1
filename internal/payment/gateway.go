// Package payment holds the per-gateway logic for building signed redirects to
// eSewa and Khalti and for decoding what they send back.
package payment

import (
	"context"
	"fmt"
	"net/http"

	"wheelhub-backend/internal/domain"
)

// CallbackParams are the raw query parameters the gateway appended to the
// success URL, forwarded untouched by the client.
type CallbackParams map[string]string

// RedirectRequest tells the client where to send the user to pay.
type RedirectRequest struct {
	Method           domain.PaymentMethod `json:"method"`
	URL              string               `json:"url"`
	HTTPMethod       string               `json:"http_method"`      // POST renders Fields as a form, GET is a plain redirect
	Fields           map[string]string    `json:"fields,omitempty"` // signed form fields
	GatewayReference string               `json:"gateway_reference,omitempty"`
}

type Adapter interface {
	Method() domain.PaymentMethod
	// RequiresRedirect is false for payment methods settled outside any gateway.
	RequiresRedirect() bool
	BuildRedirect(ctx context.Context, d *domain.RentalDraft) (*RedirectRequest, error)
	// DecodeCallback fails with domain.ErrDecode on malformed input.
	DecodeCallback(ctx context.Context, params CallbackParams) (*domain.PaymentCallback, error)
	// IsSuccess interprets a status in the gateway's own vocabulary.
	IsSuccess(status string) bool
}

// Registry selects the adapter for a payment method once, at booking start.
type Registry struct {
	adapters map[domain.PaymentMethod]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[domain.PaymentMethod]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Method()] = a
	}
	return r
}

func (r *Registry) Adapter(method domain.PaymentMethod) (Adapter, error) {
	a, ok := r.adapters[method]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported payment method %q", domain.ErrValidation, method)
	}
	return a, nil
}

// HTTPDoer is the subset of *http.Client used for server-to-server gateway calls.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
