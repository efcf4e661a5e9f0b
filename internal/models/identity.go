package models

import "github.com/sgreene/habitat/internal/constants"

// Identity is a named, colored grouping of habits (e.g. "Health")
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// GeneralIdentity returns the reserved identity that always exists and
// cannot be deleted.
func GeneralIdentity() Identity {
	return Identity{
		ID:    constants.GeneralIdentityID,
		Name:  constants.GeneralIdentityName,
		Color: constants.GeneralIdentityColor,
	}
}
