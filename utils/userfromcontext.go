package utils

import (
	"net/http"

	"plateful/globals"
)

// GetUserIDFromRequest returns the authenticated user id placed in the
// request context by the auth middleware, or "" when unauthenticated.
func GetUserIDFromRequest(r *http.Request) string {
	if v, ok := r.Context().Value(globals.UserIDKey).(string); ok {
		return v
	}
	return ""
}
