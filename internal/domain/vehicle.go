package domain

type VehicleType string

const (
	VehicleTypeBicycle VehicleType = "bicycle"
	VehicleTypeBike    VehicleType = "bike"
	VehicleTypeScooter VehicleType = "scooter"
	VehicleTypeCar     VehicleType = "car"
)

func (t VehicleType) Valid() bool {
	switch t {
	case VehicleTypeBicycle, VehicleTypeBike, VehicleTypeScooter, VehicleTypeCar:
		return true
	}
	return false
}

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusUnavailable VehicleStatus = "UNAVAILABLE"
)

type Vehicle struct {
	ID               int32         `json:"id"`
	ShopID           int32         `json:"shop_id"`
	Shop             *Shop         `json:"shop,omitempty"` // Populated when fetching vehicle details
	Type             VehicleType   `json:"type"`
	Name             string        `json:"name"`
	Brand            string        `json:"brand"`
	Model            string        `json:"model"`
	Description      string        `json:"description"`
	Quantity         int32         `json:"quantity"` // units of this vehicle held by the shop
	DailyRatePaisa   int64         `json:"daily_rate_paisa"`
	WeeklyRatePaisa  int64         `json:"weekly_rate_paisa"`
	MonthlyRatePaisa int64         `json:"monthly_rate_paisa"`
	Status           VehicleStatus `json:"status"`
	Latitude         float64       `json:"latitude"`
	Longitude        float64       `json:"longitude"`
	CreatedOn        string        `json:"created_on"`
	UpdatedOn        string        `json:"updated_on"`
}

// Bounds is the visible map rectangle used by vehicle search.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

func (b Bounds) IsZero() bool {
	return b == Bounds{}
}

func (b Bounds) Valid() bool {
	return b.MinLat <= b.MaxLat && b.MinLng <= b.MaxLng &&
		b.MinLat >= -90 && b.MaxLat <= 90 && b.MinLng >= -180 && b.MaxLng <= 180
}

type VehicleFilter struct {
	Bounds   Bounds
	Type     VehicleType
	Page     int32
	PageSize int32
}
