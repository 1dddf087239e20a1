// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
	SecurityVendor                      // Access token with vendor role required
)

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	"health": SecurityPublic,

	// Auth - Public
	"auth.register": SecurityPublic,
	"auth.login":    SecurityPublic,

	// Vehicles - Public browsing
	"vehicles.search": SecurityPublic,
	"vehicles.get":    SecurityPublic,
	"vehicles.quote":  SecurityPublic,

	"shops.accessories.list": SecurityPublic,

	"users.device_token": SecurityAccess,

	// Bookings - Access Protected
	"bookings.create":        SecurityAccess,
	"bookings.draft.get":     SecurityAccess,
	"bookings.draft.abandon": SecurityAccess,
	"payments.callback":      SecurityAccess,

	// Rentals - Access Protected
	"rentals.list":   SecurityAccess,
	"rentals.get":    SecurityAccess,
	"rentals.cancel": SecurityAccess,

	// Vendor dashboard
	"shops.create":             SecurityVendor,
	"shops.list":               SecurityVendor,
	"shops.vehicles.create":    SecurityVendor,
	"shops.bookings.list":      SecurityVendor,
	"shops.accessories.create": SecurityVendor,
	"accessories.update":       SecurityVendor,
	"accessories.delete":       SecurityVendor,
	"vehicles.update":          SecurityVendor,
	"rentals.status.update":    SecurityVendor,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityVendor
}
