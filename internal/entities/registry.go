package entities

import (
	"context"
	"errors"
	"fmt"

	"github.com/av1ctor/metamob-sub003/internal/models"

	"gorm.io/gorm"
)

// ErrUnknownEntityType is returned for tags no descriptor was registered for.
var ErrUnknownEntityType = errors.New("unknown entity type")

// ErrEntityNotFound is returned when an id does not resolve to a row.
var ErrEntityNotFound = errors.New("entity not found")

// Moderable is the behavior the moderation workflow needs from every
// entity kind: identity, authorship, an auditable snapshot of the
// original fields and the ability to apply or undo a moderation.
type Moderable interface {
	EntityID() uint
	EntityPubID() string
	AuthorID() uint
	Snapshot() models.JSONB
	ApplyModeration(action models.ModerationAction, reason models.ModerationReason, patch models.JSONB)
	RestoreFrom(snapshot models.JSONB)
}

// Descriptor binds an EntityType tag to its concrete model. Adding a
// new entity kind is one Register call; nothing else in the workflow
// needs to change.
type Descriptor struct {
	Type models.EntityType
	New  func() Moderable
}

var registry = map[models.EntityType]Descriptor{}

// Register adds a descriptor to the registry. Later registrations for
// the same tag replace earlier ones.
func Register(d Descriptor) {
	registry[d.Type] = d
}

// Lookup resolves a tag to its descriptor.
func Lookup(t models.EntityType) (Descriptor, error) {
	d, ok := registry[t]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownEntityType, t)
	}
	return d, nil
}

// Kinds returns the registered entity type tags.
func Kinds() []models.EntityType {
	kinds := make([]models.EntityType, 0, len(registry))
	for t := range registry {
		kinds = append(kinds, t)
	}
	return kinds
}

// FetchByID loads the entity of the given kind by numeric id.
func FetchByID(ctx context.Context, db *gorm.DB, t models.EntityType, id uint) (Moderable, error) {
	d, err := Lookup(t)
	if err != nil {
		return nil, err
	}

	m := d.New()
	if err := db.WithContext(ctx).Where("id = ?", id).First(m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s/%d", ErrEntityNotFound, t, id)
		}
		return nil, err
	}
	return m, nil
}

// FetchByPubID loads the entity of the given kind by public id.
func FetchByPubID(ctx context.Context, db *gorm.DB, t models.EntityType, pubID string) (Moderable, error) {
	d, err := Lookup(t)
	if err != nil {
		return nil, err
	}

	m := d.New()
	if err := db.WithContext(ctx).Where("pub_id = ?", pubID).First(m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s/%s", ErrEntityNotFound, t, pubID)
		}
		return nil, err
	}
	return m, nil
}

// Save persists a mutated entity.
func Save(ctx context.Context, db *gorm.DB, m Moderable) error {
	return db.WithContext(ctx).Save(m).Error
}
