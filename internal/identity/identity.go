// Package identity turns client-supplied identifier strings into stable
// opaque user identifiers.
package identity

import "github.com/google/uuid"

// Resolve returns candidate unchanged when it parses as a UUID (any
// version or variant). Anything else yields a freshly generated random
// UUID, so the result is always a valid identifier.
func Resolve(candidate string) string {
	if _, err := uuid.Parse(candidate); err == nil {
		return candidate
	}
	return uuid.NewString()
}
