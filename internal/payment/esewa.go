package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/logger"
)

// The order is part of the contract: eSewa re-signs these fields in this order.
var esewaSignedFields = []string{"total_amount", "transaction_uuid", "product_code"}

const (
	EsewaStatusComplete      = "COMPLETE"
	EsewaStatusPending       = "PENDING"
	EsewaStatusFullRefund    = "FULL_REFUND"
	EsewaStatusPartialRefund = "PARTIAL_REFUND"
	EsewaStatusAmbiguous     = "AMBIGUOUS"
	EsewaStatusNotFound      = "NOT_FOUND"
	EsewaStatusCanceled      = "CANCELED"
)

type EsewaConfig struct {
	ProductCode string
	SecretKey   string
	FormURL     string
	SuccessURL  string
	FailureURL  string
}

type EsewaAdapter struct {
	cfg EsewaConfig
}

func NewEsewaAdapter(cfg EsewaConfig) *EsewaAdapter {
	return &EsewaAdapter{cfg: cfg}
}

func (a *EsewaAdapter) Method() domain.PaymentMethod { return domain.PaymentMethodEsewa }

func (a *EsewaAdapter) RequiresRedirect() bool { return true }

func (a *EsewaAdapter) IsSuccess(status string) bool { return status == EsewaStatusComplete }

func (a *EsewaAdapter) BuildRedirect(_ context.Context, d *domain.RentalDraft) (*RedirectRequest, error) {
	if d.PaymentCorrelationID == "" {
		return nil, fmt.Errorf("%w: draft has no payment correlation id", domain.ErrValidation)
	}
	if d.TotalPricePaisa <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}

	amount := FormatRupees(d.TotalPricePaisa)
	fields := map[string]string{
		"amount":                  amount,
		"tax_amount":              "0",
		"total_amount":            amount,
		"transaction_uuid":        d.PaymentCorrelationID,
		"product_code":            a.cfg.ProductCode,
		"product_service_charge":  "0",
		"product_delivery_charge": "0",
		"success_url":             a.cfg.SuccessURL,
		"failure_url":             a.cfg.FailureURL,
		"signed_field_names":      strings.Join(esewaSignedFields, ","),
	}
	fields["signature"] = a.Sign(signingMessage(fields, esewaSignedFields))

	return &RedirectRequest{
		Method:     domain.PaymentMethodEsewa,
		URL:        a.cfg.FormURL,
		HTTPMethod: http.MethodPost,
		Fields:     fields,
	}, nil
}

// Sign returns base64(HMAC-SHA256(secret, message)).
func (a *EsewaAdapter) Sign(message string) string {
	mac := hmac.New(sha256.New, []byte(a.cfg.SecretKey))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// DecodeCallback decodes the base64 JSON "data" parameter eSewa appends to the
// success URL and verifies the signature eSewa put over it.
func (a *EsewaAdapter) DecodeCallback(_ context.Context, params CallbackParams) (*domain.PaymentCallback, error) {
	data := params["data"]
	if data == "" {
		return nil, fmt.Errorf("%w: missing data parameter", domain.ErrDecode)
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		// Some browsers hand back the URL-safe alphabet
		if raw, err = base64.URLEncoding.DecodeString(data); err != nil {
			return nil, fmt.Errorf("%w: data is not base64", domain.ErrDecode)
		}
	}

	fields, err := esewaFields(raw)
	if err != nil {
		return nil, err
	}

	if fields["transaction_uuid"] == "" || fields["status"] == "" {
		return nil, fmt.Errorf("%w: transaction_uuid and status are required", domain.ErrDecode)
	}
	if err := a.verify(fields); err != nil {
		logger.Warn("eSewa callback signature rejected", "transaction_uuid", fields["transaction_uuid"], "error", err)
		return nil, err
	}

	cb := &domain.PaymentCallback{
		Method:                   domain.PaymentMethodEsewa,
		Status:                   fields["status"],
		TransactionCorrelationID: fields["transaction_uuid"],
		TransactionCode:          fields["transaction_code"],
	}
	if amt := fields["total_amount"]; amt != "" {
		paisa, err := ParseRupees(amt)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
		}
		cb.AmountPaisa = paisa
	}
	return cb, nil
}

// esewaFields flattens the response body. Numbers keep their literal text
// ("1000.0" stays "1000.0") because eSewa signs what it sent.
func esewaFields(raw []byte) (map[string]string, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: data is not JSON", domain.ErrDecode)
	}

	fields := make(map[string]string, len(body))
	for k, v := range body {
		v = bytes.TrimSpace(v)
		switch {
		case len(v) == 0 || bytes.Equal(v, []byte("null")):
			continue
		case v[0] == '"':
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return nil, fmt.Errorf("%w: field %s is not a string", domain.ErrDecode, k)
			}
			fields[k] = s
		case v[0] == '{' || v[0] == '[':
			return nil, fmt.Errorf("%w: field %s is not a scalar", domain.ErrDecode, k)
		default:
			fields[k] = string(v)
		}
	}
	return fields, nil
}

func (a *EsewaAdapter) verify(fields map[string]string) error {
	names := fields["signed_field_names"]
	sig := fields["signature"]
	if names == "" || sig == "" {
		return fmt.Errorf("%w: response is not signed", domain.ErrDecode)
	}
	expected := a.Sign(signingMessage(fields, strings.Split(names, ",")))
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return fmt.Errorf("%w: response signature mismatch", domain.ErrDecode)
	}
	return nil
}

func signingMessage(fields map[string]string, names []string) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		parts = append(parts, name+"="+fields[name])
	}
	return strings.Join(parts, ",")
}
