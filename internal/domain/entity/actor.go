package entity

import "github.com/google/uuid"

// Actor identifies the authenticated staff member performing an operation.
// Handlers build it from JWT claims; services never read identity from
// ambient request state.
type Actor struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ClinicID uuid.UUID `json:"clinic_id"`
	Roles    []string  `json:"roles"`
}

// HasRole reports whether the actor holds the named role.
func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
