package constants

// User roles
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// Defaults
const (
	APIRoot          = "/api/v1"
	DefaultPageLimit = 50
	MaxPageLimit     = 500
	TokenType        = "bearer"
)

// Relationship kinds reachable from an owning hotel or attraction.
const (
	RelatedPackages   = "packages"
	RelatedGroupTrips = "group-trips"
)
