package domain

import "time"

// RentalDraft is a booking intent staged across the payment gateway redirect.
// It is never written to the rentals table directly.
type RentalDraft struct {
	VehicleID            int32         `json:"vehicle_id"`
	RenterID             int32         `json:"renter_id"`
	StartDate            string        `json:"start_date"`
	EndDate              string        `json:"end_date"`
	Quantity             int32         `json:"quantity"`
	TotalPricePaisa      int64         `json:"total_price_paisa"`
	PaymentMethod        PaymentMethod `json:"payment_method"`
	PaymentCorrelationID string        `json:"payment_correlation_id"`
	GatewayReference     string        `json:"gateway_reference,omitempty"` // Khalti pidx once initiated
	Notes                string        `json:"notes"`
	VendorInitiated      bool          `json:"vendor_initiated"`
	CreatedOn            time.Time     `json:"created_on"`
}
