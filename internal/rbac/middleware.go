package rbac

import (
	"encoding/json"
	"net/http"
	"strings"
)

var defaultChecker = NewChecker(nil)

// Require enforces a single permission.
func Require(perm string) func(http.Handler) http.Handler {
	return guard(func(_ *http.Request, role string) bool {
		return defaultChecker.Has(role, perm)
	})
}

// RequireAny enforces that the role has at least one of the permissions.
func RequireAny(perms ...string) func(http.Handler) http.Handler {
	return guard(func(_ *http.Request, role string) bool {
		return defaultChecker.Any(role, perms...)
	})
}

// RequireOwnerOr lets the request through when isOwner reports true or the role has perm.
func RequireOwnerOr(perm string, isOwner func(r *http.Request) bool) func(http.Handler) http.Handler {
	return guard(func(r *http.Request, role string) bool {
		return isOwner(r) || defaultChecker.Has(role, perm)
	})
}

func guard(allow func(r *http.Request, role string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			switch {
			case role == "":
				Deny(w, http.StatusUnauthorized)
			case !allow(r, role):
				Deny(w, http.StatusForbidden)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// Deny writes the API's JSON error body for an auth failure.
func Deny(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": strings.ToLower(http.StatusText(status))})
}
