package entities

import (
	"github.com/av1ctor/metamob-sub003/internal/models"
)

// The nine built-in entity kinds.
func init() {
	Register(Descriptor{Type: models.EntityTypeCampaigns, New: func() Moderable { return &models.Campaign{} }})
	Register(Descriptor{Type: models.EntityTypeSignatures, New: func() Moderable { return &models.Signature{} }})
	Register(Descriptor{Type: models.EntityTypeVotes, New: func() Moderable { return &models.Vote{} }})
	Register(Descriptor{Type: models.EntityTypeDonations, New: func() Moderable { return &models.Donation{} }})
	Register(Descriptor{Type: models.EntityTypeFundings, New: func() Moderable { return &models.Funding{} }})
	Register(Descriptor{Type: models.EntityTypeUpdates, New: func() Moderable { return &models.CampaignUpdate{} }})
	Register(Descriptor{Type: models.EntityTypePlaces, New: func() Moderable { return &models.Place{} }})
	Register(Descriptor{Type: models.EntityTypeUsers, New: func() Moderable { return &models.User{} }})
	Register(Descriptor{Type: models.EntityTypePoaps, New: func() Moderable { return &models.Poap{} }})
}
