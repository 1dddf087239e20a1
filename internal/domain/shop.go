package domain

type Shop struct {
	ID          int32   `json:"id"`
	OwnerID     int32   `json:"owner_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	PhoneNumber string  `json:"phone_number"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CreatedOn   string  `json:"created_on"`
}
