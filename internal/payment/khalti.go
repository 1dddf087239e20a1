package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/logger"
)

const (
	KhaltiStatusCompleted         = "Completed"
	KhaltiStatusInitiated         = "Initiated"
	KhaltiStatusPending           = "Pending"
	KhaltiStatusRefunded          = "Refunded"
	KhaltiStatusExpired           = "Expired"
	KhaltiStatusCanceled          = "User canceled"
	KhaltiStatusPartiallyRefunded = "Partially Refunded"
)

type KhaltiConfig struct {
	SecretKey  string
	BaseURL    string // e.g. https://khalti.com/api/v2
	ReturnURL  string
	WebsiteURL string
	Timeout    time.Duration
}

// KhaltiAdapter talks to the Khalti ePayment API. Both directions need the
// merchant secret, so they always run server side.
type KhaltiAdapter struct {
	cfg    KhaltiConfig
	client HTTPDoer
}

func NewKhaltiAdapter(cfg KhaltiConfig, client HTTPDoer) *KhaltiAdapter {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &KhaltiAdapter{cfg: cfg, client: client}
}

func (a *KhaltiAdapter) Method() domain.PaymentMethod { return domain.PaymentMethodKhalti }

func (a *KhaltiAdapter) RequiresRedirect() bool { return true }

func (a *KhaltiAdapter) IsSuccess(status string) bool { return status == KhaltiStatusCompleted }

type khaltiInitiateRequest struct {
	ReturnURL         string `json:"return_url"`
	WebsiteURL        string `json:"website_url"`
	Amount            int64  `json:"amount"`
	PurchaseOrderID   string `json:"purchase_order_id"`
	PurchaseOrderName string `json:"purchase_order_name"`
}

type khaltiInitiateResponse struct {
	Pidx       string `json:"pidx"`
	PaymentURL string `json:"payment_url"`
	ExpiresAt  string `json:"expires_at"`
}

type khaltiLookupResponse struct {
	Pidx          string `json:"pidx"`
	TotalAmount   int64  `json:"total_amount"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	Fee           int64  `json:"fee"`
	Refunded      bool   `json:"refunded"`
}

func (a *KhaltiAdapter) BuildRedirect(ctx context.Context, d *domain.RentalDraft) (*RedirectRequest, error) {
	if d.PaymentCorrelationID == "" {
		return nil, fmt.Errorf("%w: draft has no payment correlation id", domain.ErrValidation)
	}
	if d.TotalPricePaisa <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}

	req := khaltiInitiateRequest{
		ReturnURL:         a.cfg.ReturnURL,
		WebsiteURL:        a.cfg.WebsiteURL,
		Amount:            d.TotalPricePaisa,
		PurchaseOrderID:   d.PaymentCorrelationID,
		PurchaseOrderName: fmt.Sprintf("vehicle-%d", d.VehicleID),
	}
	var resp khaltiInitiateResponse
	if err := a.post(ctx, "/epayment/initiate/", req, &resp); err != nil {
		return nil, fmt.Errorf("initiate khalti payment: %w", err)
	}
	if resp.Pidx == "" || resp.PaymentURL == "" {
		return nil, fmt.Errorf("initiate khalti payment: response without pidx or payment_url")
	}

	return &RedirectRequest{
		Method:           domain.PaymentMethodKhalti,
		URL:              resp.PaymentURL,
		HTTPMethod:       http.MethodGet,
		GatewayReference: resp.Pidx,
	}, nil
}

// DecodeCallback resolves the opaque pidx through the lookup API. The status
// and amount come from Khalti, never from the query string.
func (a *KhaltiAdapter) DecodeCallback(ctx context.Context, params CallbackParams) (*domain.PaymentCallback, error) {
	pidx := params["pidx"]
	if pidx == "" {
		return nil, fmt.Errorf("%w: missing pidx", domain.ErrDecode)
	}
	orderID := params["purchase_order_id"]
	if orderID == "" {
		return nil, fmt.Errorf("%w: missing purchase_order_id", domain.ErrDecode)
	}

	var resp khaltiLookupResponse
	if err := a.post(ctx, "/epayment/lookup/", map[string]string{"pidx": pidx}, &resp); err != nil {
		return nil, fmt.Errorf("%w: lookup failed: %v", domain.ErrDecode, err)
	}
	if resp.Pidx != pidx || resp.Status == "" {
		return nil, fmt.Errorf("%w: lookup returned an unexpected payment", domain.ErrDecode)
	}

	return &domain.PaymentCallback{
		Method:                   domain.PaymentMethodKhalti,
		Status:                   resp.Status,
		TransactionCorrelationID: orderID,
		GatewayReference:         resp.Pidx,
		TransactionCode:          resp.TransactionID,
		AmountPaisa:              resp.TotalAmount,
	}, nil
}

func (a *KhaltiAdapter) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Key "+a.cfg.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	logger.ExternalServiceCall("khalti", path)
	resp, err := a.client.Do(req)
	if err != nil {
		logger.ExternalServiceResult("khalti", path, err)
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		logger.ExternalServiceResult("khalti", path, err)
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		err = fmt.Errorf("khalti returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
		logger.ExternalServiceResult("khalti", path, err)
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		err = fmt.Errorf("decode khalti response: %w", err)
		logger.ExternalServiceResult("khalti", path, err)
		return err
	}
	logger.ExternalServiceResult("khalti", path, nil, "status_code", resp.StatusCode)
	return nil
}
