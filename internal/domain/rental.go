package domain

type RentalStatus string

const (
	RentalStatusConfirmed RentalStatus = "CONFIRMED"
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

var rentalNext = map[RentalStatus]map[RentalStatus]bool{
	RentalStatusConfirmed: {RentalStatusActive: true, RentalStatusCancelled: true},
	RentalStatusActive:    {RentalStatusCompleted: true},
	RentalStatusCompleted: {},
	RentalStatusCancelled: {},
}

func (s RentalStatus) CanTransition(to RentalStatus) bool {
	return rentalNext[s][to]
}

type Rental struct {
	ID                   int32         `json:"id"`
	VehicleID            int32         `json:"vehicle_id"`
	ShopID               int32         `json:"shop_id"`
	RenterID             int32         `json:"renter_id"`
	StartDate            string        `json:"start_date"`
	EndDate              string        `json:"end_date"`
	Quantity             int32         `json:"quantity"`
	TotalPricePaisa      int64         `json:"total_price_paisa"`
	PaymentMethod        PaymentMethod `json:"payment_method"`
	PaymentStatus        PaymentStatus `json:"payment_status"`
	PaymentCorrelationID string        `json:"payment_correlation_id"`
	Status               RentalStatus  `json:"status"`
	Notes                string        `json:"notes"`
	CreatedOn            string        `json:"created_on"`
	UpdatedOn            string        `json:"updated_on"`
}
