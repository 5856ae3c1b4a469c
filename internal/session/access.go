package session

import (
	"gahana/internal/domain/constants"
	"gahana/internal/domain/entity"
)

// Route describes the access requirements of a client route.
type Route struct {
	Path         string
	RequiredRole entity.Role // empty when any identity may enter
	AllowGuest   bool
}

// Outcome is the result of an access decision.
type Outcome int

const (
	// Defer means the session is still loading and nothing should be rendered yet.
	Defer Outcome = iota
	Grant
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Grant:
		return "grant"
	case Redirect:
		return "redirect"
	default:
		return "defer"
	}
}

// Decision is an Outcome plus the redirect target when Outcome is Redirect.
type Decision struct {
	Outcome    Outcome
	RedirectTo string
}

// Decide applies the role-based access rules to a route, first match wins.
func Decide(route Route, state State) Decision {
	if state.Loading {
		return Decision{Outcome: Defer}
	}

	if route.AllowGuest && state.Kind == entity.IdentityGuest &&
		(route.RequiredRole == "" || route.RequiredRole == entity.RoleCustomer) {
		return Decision{Outcome: Grant}
	}

	if state.Kind == entity.IdentityAnonymous {
		return Decision{Outcome: Redirect, RedirectTo: constants.RouteSignIn}
	}

	role := state.EffectiveRole()
	if route.RequiredRole != "" && role != route.RequiredRole {
		return Decision{Outcome: Redirect, RedirectTo: HomeFor(role)}
	}

	return Decision{Outcome: Grant}
}

// HomeFor returns the landing route of a role.
func HomeFor(role entity.Role) string {
	switch role {
	case entity.RoleStoreOwner:
		return constants.RouteStoreHome
	case entity.RoleAdmin:
		return constants.RoutePriceAdminHome
	default:
		return constants.RouteHome
	}
}
