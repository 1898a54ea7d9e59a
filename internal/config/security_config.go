// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
	SecurityStaff                       // Access token with ADMIN or EMPLOYEE role
)

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	"Health": SecurityPublic,

	// Rentals
	"CreateRental":   SecurityAccess,
	"ListRentals":    SecurityAccess,
	"GetRental":      SecurityAccess,
	"ReturnRental":   SecurityAccess,
	"MarkOverdue":    SecurityAccess,
	"DeleteRental":   SecurityStaff,
	"SweepOverdue":   SecurityStaff,
	"CheckInventory": SecurityAccess,

	// Rental rules
	"ListRentalRules":  SecurityAccess,
	"GetRentalRule":    SecurityAccess,
	"PutRentalRule":    SecurityStaff,
	"DeleteRentalRule": SecurityStaff,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityStaff
}
