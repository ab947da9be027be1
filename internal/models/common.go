package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// EntityType discriminates which aggregate a report, moderation or
// challenge refers to.
type EntityType string

const (
	EntityTypeCampaigns  EntityType = "CAMPAIGNS"
	EntityTypeSignatures EntityType = "SIGNATURES"
	EntityTypeVotes      EntityType = "VOTES"
	EntityTypeDonations  EntityType = "DONATIONS"
	EntityTypeFundings   EntityType = "FUNDINGS"
	EntityTypeUpdates    EntityType = "UPDATES"
	EntityTypePlaces     EntityType = "PLACES"
	EntityTypeUsers      EntityType = "USERS"
	EntityTypePoaps      EntityType = "POAPS"
)

// JSONB for PostgreSQL JSON support
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, &j)
}

// String reads a string field out of a JSONB snapshot/patch.
func (j JSONB) String(key string) (string, bool) {
	v, ok := j[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// NewPubID generates a compact public identifier (base58-encoded UUID).
// Public ids are what the API exposes; numeric PKs stay internal.
func NewPubID() string {
	id := uuid.New()
	return base58.Encode(id[:])
}
