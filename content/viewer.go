package content

import "github.com/google/uuid"

// Viewer is the requester's identity plus admin capability, established once by
// the auth middleware and passed explicitly into every policy check. The zero
// value is an anonymous viewer.
type Viewer struct {
	ID      uuid.UUID
	IsAdmin bool
}

// Anonymous returns true when the viewer carries no authenticated identity.
func (v Viewer) Anonymous() bool {
	return v.ID == uuid.Nil
}
