package domain

// Accessory is a shop-level add-on (helmet, lock, child seat) listed next to
// the shop's vehicles. ForType narrows it to one vehicle type; empty fits all.
type Accessory struct {
	ID             int32       `json:"id"`
	ShopID         int32       `json:"shop_id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	ForType        VehicleType `json:"for_type,omitempty"`
	Quantity       int32       `json:"quantity"`
	DailyRatePaisa int64       `json:"daily_rate_paisa"` // 0 means included free
	CreatedOn      string      `json:"created_on"`
	UpdatedOn      string      `json:"updated_on"`
}
