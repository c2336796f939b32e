package utils

import (
	"context"
	"net/http"

	"github.com/cindermoth/reliefgrid/internal/domain"
)

// HeaderUserID carries the mock identity. A real deployment would swap this
// for a token-validating middleware; everything past the presentation layer
// only ever sees domain.Principal.
const HeaderUserID = "X-User-ID"

type principalContextKey struct{}

// builtinPrincipals is the fixed identity table for the mock auth layer.
var builtinPrincipals = map[string]domain.Principal{
	"ada": {
		ID:    "ada",
		Name:  "Ada Reyes",
		Roles: []string{domain.RoleAdmin, domain.RoleContributor},
	},
	"devon": {
		ID:    "devon",
		Name:  "Devon Tran",
		Roles: []string{domain.RoleAdmin},
	},
	"marco": {
		ID:    "marco",
		Name:  "Marco Jensen",
		Roles: []string{domain.RoleContributor},
	},
	"sofia": {
		ID:    "sofia",
		Name:  "Sofia Okafor",
		Roles: []string{domain.RoleContributor},
	},
}

// ResolvePrincipal maps the request's X-User-ID header to a known principal.
// An absent header resolves to the zero Principal with ok=true; only an
// unknown identity fails.
func ResolvePrincipal(r *http.Request) (domain.Principal, bool) {
	id := r.Header.Get(HeaderUserID)
	if id == "" {
		return domain.Principal{}, true
	}

	p, ok := builtinPrincipals[id]
	return p, ok
}

func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFrom returns the request's principal. Unauthenticated requests
// carry the zero Principal; callers gate mutations on IsZero.
func PrincipalFrom(ctx context.Context) domain.Principal {
	p, _ := ctx.Value(principalContextKey{}).(domain.Principal)
	return p
}

// CanModify reports whether p may mutate a record owned by ownerID:
// the owner may, and so may any admin.
func CanModify(p domain.Principal, ownerID string) bool {
	if p.IsZero() {
		return false
	}
	return p.ID == ownerID || p.HasRole(domain.RoleAdmin)
}
