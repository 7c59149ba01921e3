package domain

const (
	MinCookingTime = 1
	MaxCookingTime = 32000
	MinAmount      = 1
	MaxAmount      = 32000

	// Page-number pagination for general listings.
	DefaultPageSize = 6
	MaxPageSize     = 100

	// Limit/offset pagination for the cart listing only.
	CartDefaultLimit = 6
	CartMaxLimit     = 50
)
