package auth

import "context"

// withRoles is a test helper that places roles on a context the same way the
// JWT middleware does.
func withRoles(ctx context.Context, roles []string) context.Context {
	return context.WithValue(ctx, UserRolesKey, roles)
}
