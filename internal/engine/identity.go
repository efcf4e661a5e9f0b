package engine

import (
	"github.com/sgreene/habitat/internal/constants"
	"github.com/sgreene/habitat/internal/models"
)

func (e *Engine) applyAddIdentity(s *models.Snapshot, a AddIdentity) {
	identity := a.Identity
	if identity.ID == "" {
		identity.ID = e.ids.NewID()
	}
	if s.FindIdentity(identity.ID) != nil {
		return
	}
	s.Identities = append(s.Identities, identity)
}

func applyUpdateIdentity(s *models.Snapshot, a UpdateIdentity) {
	existing := s.FindIdentity(a.Identity.ID)
	if existing == nil {
		return
	}
	*existing = a.Identity
}

func applyDeleteIdentity(s *models.Snapshot, a DeleteIdentity) {
	// The reserved identity can never be deleted.
	if a.IdentityID == constants.GeneralIdentityID {
		return
	}
	idx := -1
	for i := range s.Identities {
		if s.Identities[i].ID == a.IdentityID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	s.Identities = append(s.Identities[:idx], s.Identities[idx+1:]...)

	// Orphaned habits fall back to the reserved identity.
	for i := range s.Habits {
		if s.Habits[i].IdentityID == a.IdentityID {
			s.Habits[i].IdentityID = constants.GeneralIdentityID
		}
	}
	if s.Prefs.IdentityFilter == a.IdentityID {
		s.Prefs.IdentityFilter = constants.AllIdentities
	}
}
