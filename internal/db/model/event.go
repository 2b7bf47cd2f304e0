package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stakewarden-io/nft-staking-engine/internal/types"
)

const EventLogCollection = "event_log"

// EventDocument is one entry of the append-only audit log. The full state
// history can be replayed from this collection.
type EventDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Type      string             `bson:"type"`
	Step      uint64             `bson:"step"`
	Payload   any                `bson:"payload"`
	CreatedAt time.Time          `bson:"created_at"`
}

func FromEvent(event *types.Event) *EventDocument {
	return &EventDocument{
		Type:      event.Type.String(),
		Step:      event.Step,
		Payload:   event.Payload,
		CreatedAt: time.Now().UTC(),
	}
}
