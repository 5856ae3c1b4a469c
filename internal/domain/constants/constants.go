// Package constants holds names shared across layers.
package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderNoop   = "noop"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Client storage providers
const (
	StorageProviderFile   = "file"
	StorageProviderMemory = "memory"
	StorageProviderRedis  = "redis"
)

// Client storage keys
const (
	KeyGuestID      = "hamro_gahana_guest_id"
	KeyUserProfile  = "user_profile"
	KeyUserLocation = "user_location"
	KeyAuthSession  = "gahana_auth_session"
)

// Route homes used by role-based redirects
const (
	RouteSignIn         = "/auth"
	RouteStoreHome      = "/store"
	RoutePriceAdminHome = "/admin/update-price"
	RouteHome           = "/"
)
