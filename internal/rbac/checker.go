package rbac

import (
	"context"
	"slices"
	"strings"
)

// Checker answers role/permission questions against a rule table. A rule ending in
// "*" grants every permission with that prefix.
type Checker struct {
	rules map[string][]string
}

func NewChecker(rules map[string][]string) *Checker {
	if rules == nil {
		rules = RolePermissions
	}
	return &Checker{rules: rules}
}

func (c *Checker) Has(role, perm string) bool {
	return slices.ContainsFunc(c.rules[role], func(rule string) bool { return grants(rule, perm) })
}

func (c *Checker) Any(role string, perms ...string) bool {
	return slices.ContainsFunc(perms, func(p string) bool { return c.Has(role, p) })
}

func grants(rule, perm string) bool {
	prefix, wildcard := strings.CutSuffix(rule, "*")
	if !wildcard {
		return rule == perm
	}
	return strings.HasPrefix(perm, prefix)
}

type roleKey struct{}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// RoleFromContext returns "" for anonymous requests.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey{}).(string)
	return role
}
