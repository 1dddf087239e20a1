package domain

type UserRole string

const (
	UserRoleCustomer UserRole = "CUSTOMER"
	UserRoleVendor   UserRole = "VENDOR"
	UserRoleAdmin    UserRole = "ADMIN"
)

type User struct {
	ID           int32    `json:"id"`
	Email        string   `json:"email"`
	PhoneNumber  string   `json:"phone_number"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	DeviceToken  string   `json:"-"` // FCM registration token, empty when the user has no app installed
	CreatedOn    string   `json:"created_on"`
	UpdatedOn    string   `json:"updated_on"`
}

func (u *User) IsVendor() bool {
	return u.Role == UserRoleVendor || u.Role == UserRoleAdmin
}
