package ids

import "github.com/google/uuid"

// New returns a fresh entity identifier.
func New() string {
	return uuid.NewString()
}
