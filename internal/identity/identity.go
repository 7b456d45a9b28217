package identity

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskboard/taskboard-be/internal/auth"
	"github.com/taskboard/taskboard-be/internal/config"
)

// Identity is the resolved acting user for a request.
type Identity struct {
	UserID string
}

// Resolver extracts the acting identity from a request. Which resolver is in
// use is a deployment choice (config.IdentitySource), not a property of the
// individual handlers.
type Resolver interface {
	Resolve(r *http.Request) (Identity, bool)
}

// TokenResolver reads the identity that the JWT middleware placed in the
// request context.
type TokenResolver struct{}

func (TokenResolver) Resolve(r *http.Request) (Identity, bool) {
	claims, ok := r.Context().Value(auth.UserClaimsKey).(*auth.Claims)
	if !ok || claims.UserID == "" {
		return Identity{}, false
	}
	return Identity{UserID: claims.UserID}, true
}

// PathParamResolver trusts the {userid} path segment as the acting identity.
// No verification happens; routes mounted with it are effectively public.
type PathParamResolver struct{}

func (PathParamResolver) Resolve(r *http.Request) (Identity, bool) {
	id := chi.URLParam(r, "userid")
	if id == "" {
		return Identity{}, false
	}
	return Identity{UserID: id}, true
}

// ForSource returns the resolver matching the configured identity source.
func ForSource(source string) Resolver {
	if source == config.IdentityPath {
		return PathParamResolver{}
	}
	return TokenResolver{}
}
