package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditDisasterCreated AuditAction = "create"
	AuditDisasterUpdated AuditAction = "update"
	AuditDisasterDeleted AuditAction = "delete"
	AuditReportCreated   AuditAction = "report_create"
	AuditReportVerified  AuditAction = "report_verify"
	AuditResourceCreated AuditAction = "resource_create"
	AuditResourceDeleted AuditAction = "resource_delete"
)

// AuditEntry is one line of a disaster's append-only trail. Child mutations
// (reports, resources) write into the parent disaster's trail.
type AuditEntry struct {
	Action    AuditAction `bson:"action" json:"action"`
	ActorID   string      `bson:"actor_id" json:"actorId"`
	Timestamp time.Time   `bson:"timestamp" json:"timestamp"`
}

// AuditRecord is the archived form of an audit entry, persisted outside the
// in-memory store so trails survive a disaster's deletion.
type AuditRecord struct {
	ID         string         `bson:"_id" json:"id"`
	DisasterID string         `bson:"disaster_id" json:"disasterId"`
	Action     AuditAction    `bson:"action" json:"action"`
	ActorID    string         `bson:"actor_id" json:"actorId"`
	Timestamp  time.Time      `bson:"timestamp" json:"timestamp"`
	Metadata   map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

type AuditArchive interface {
	Append(ctx context.Context, rec *AuditRecord) error
	GetByDisasterID(ctx context.Context, disasterID string, limit int) ([]AuditRecord, error)
	DeleteOlderThan(ctx context.Context, before time.Time) error
	EnsureIndexes(ctx context.Context) error
}

func NewAuditRecord(disasterID string, entry AuditEntry, metadata map[string]any) *AuditRecord {
	return &AuditRecord{
		ID:         uuid.NewString(),
		DisasterID: disasterID,
		Action:     entry.Action,
		ActorID:    entry.ActorID,
		Timestamp:  entry.Timestamp,
		Metadata:   metadata,
	}
}
