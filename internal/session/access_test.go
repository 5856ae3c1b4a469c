package session

import (
	"testing"

	"gahana/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	guest := State{Kind: entity.IdentityGuest, GuestID: "g-1", Role: entity.RoleCustomer}
	anonymous := State{Kind: entity.IdentityAnonymous}
	authenticated := func(role entity.Role) State {
		return State{Kind: entity.IdentityAuthenticated, UserID: uuid.New(), Role: role}
	}

	tests := []struct {
		name  string
		route Route
		state State
		want  Decision
	}{
		{
			name:  "loading defers even for open routes",
			route: Route{Path: "/", AllowGuest: true},
			state: State{Kind: entity.IdentityAnonymous, Loading: true},
			want:  Decision{Outcome: Defer},
		},
		{
			name:  "guest allowed without required role",
			route: Route{Path: "/", AllowGuest: true},
			state: guest,
			want:  Decision{Outcome: Grant},
		},
		{
			name:  "guest allowed on customer route",
			route: Route{Path: "/prices", AllowGuest: true, RequiredRole: entity.RoleCustomer},
			state: guest,
			want:  Decision{Outcome: Grant},
		},
		{
			name:  "guest on admin route goes home",
			route: Route{Path: "/admin/update-price", AllowGuest: true, RequiredRole: entity.RoleAdmin},
			state: guest,
			want:  Decision{Outcome: Redirect, RedirectTo: "/"},
		},
		{
			name:  "guest on route without guest flag and no role",
			route: Route{Path: "/messages"},
			state: guest,
			want:  Decision{Outcome: Grant},
		},
		{
			name:  "anonymous is sent to sign in",
			route: Route{Path: "/messages"},
			state: anonymous,
			want:  Decision{Outcome: Redirect, RedirectTo: "/auth"},
		},
		{
			name:  "anonymous on guest route is sent to sign in",
			route: Route{Path: "/", AllowGuest: true},
			state: anonymous,
			want:  Decision{Outcome: Redirect, RedirectTo: "/auth"},
		},
		{
			name:  "store owner on admin route goes to store home",
			route: Route{Path: "/admin/update-price", RequiredRole: entity.RoleAdmin},
			state: authenticated(entity.RoleStoreOwner),
			want:  Decision{Outcome: Redirect, RedirectTo: "/store"},
		},
		{
			name:  "admin on store route goes to price management",
			route: Route{Path: "/store", RequiredRole: entity.RoleStoreOwner},
			state: authenticated(entity.RoleAdmin),
			want:  Decision{Outcome: Redirect, RedirectTo: "/admin/update-price"},
		},
		{
			name:  "customer on store route goes home",
			route: Route{Path: "/store", RequiredRole: entity.RoleStoreOwner},
			state: authenticated(entity.RoleCustomer),
			want:  Decision{Outcome: Redirect, RedirectTo: "/"},
		},
		{
			name:  "unresolved role on role route goes home",
			route: Route{Path: "/store", RequiredRole: entity.RoleStoreOwner},
			state: authenticated(""),
			want:  Decision{Outcome: Redirect, RedirectTo: "/"},
		},
		{
			name:  "matching role is granted",
			route: Route{Path: "/admin/update-price", RequiredRole: entity.RoleAdmin},
			state: authenticated(entity.RoleAdmin),
			want:  Decision{Outcome: Grant},
		},
		{
			name:  "authenticated on open route is granted",
			route: Route{Path: "/messages"},
			state: authenticated(entity.RoleCustomer),
			want:  Decision{Outcome: Grant},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.route, tt.state))
		})
	}
}

func TestHomeFor(t *testing.T) {
	assert.Equal(t, "/store", HomeFor(entity.RoleStoreOwner))
	assert.Equal(t, "/admin/update-price", HomeFor(entity.RoleAdmin))
	assert.Equal(t, "/", HomeFor(entity.RoleCustomer))
	assert.Equal(t, "/", HomeFor(""))
}
