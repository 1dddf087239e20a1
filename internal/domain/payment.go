package domain

type PaymentMethod string

const (
	PaymentMethodEsewa  PaymentMethod = "esewa"
	PaymentMethodKhalti PaymentMethod = "khalti"
	PaymentMethodCash   PaymentMethod = "cash"
)

func (m PaymentMethod) IsOnline() bool {
	return m == PaymentMethodEsewa || m == PaymentMethodKhalti
}

type PaymentStatus string

const (
	PaymentStatusComplete PaymentStatus = "complete"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PaymentCallback is a gateway callback after decoding. Nothing in it is trusted
// until the correlation id has been checked against the staged draft.
type PaymentCallback struct {
	Method                   PaymentMethod `json:"method"`
	Status                   string        `json:"status"`
	TransactionCorrelationID string        `json:"transaction_correlation_id"`
	GatewayReference         string        `json:"gateway_reference,omitempty"`
	TransactionCode          string        `json:"transaction_code,omitempty"`
	AmountPaisa              int64         `json:"amount_paisa,omitempty"` // 0 when the gateway did not report it
}
