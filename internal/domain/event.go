package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventKindDisaster EventKind = "disaster"
	EventKindReport   EventKind = "report"
	EventKindResource EventKind = "resource"
)

type EventAction string

const (
	EventCreated EventAction = "created"
	EventUpdated EventAction = "updated"
	EventDeleted EventAction = "deleted"
)

// MutationEvent describes one committed store mutation. The payload is a
// snapshot taken inside the mutation's critical section; observers never
// receive live store pointers.
type MutationEvent struct {
	ID         string      `json:"id"`
	Kind       EventKind   `json:"kind"`
	Action     EventAction `json:"action"`
	DisasterID string      `json:"disasterId"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    any         `json:"payload"`
}

func NewDisasterEvent(action EventAction, snapshot *Disaster, now time.Time) MutationEvent {
	return MutationEvent{
		ID:         uuid.NewString(),
		Kind:       EventKindDisaster,
		Action:     action,
		DisasterID: snapshot.ID,
		OccurredAt: now,
		Payload:    snapshot,
	}
}

func NewReportEvent(action EventAction, snapshot Report, now time.Time) MutationEvent {
	return MutationEvent{
		ID:         uuid.NewString(),
		Kind:       EventKindReport,
		Action:     action,
		DisasterID: snapshot.DisasterID,
		OccurredAt: now,
		Payload:    snapshot,
	}
}

func NewResourceEvent(action EventAction, snapshot Resource, now time.Time) MutationEvent {
	return MutationEvent{
		ID:         uuid.NewString(),
		Kind:       EventKindResource,
		Action:     action,
		DisasterID: snapshot.DisasterID,
		OccurredAt: now,
		Payload:    snapshot,
	}
}
