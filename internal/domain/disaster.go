package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 4000
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrDisasterNotFound = errors.New("disaster not found")
)

type Disaster struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	LocationName string       `json:"locationName"`
	Point        *Point       `json:"point,omitempty"`
	Description  string       `json:"description,omitempty"`
	Tags         []string     `json:"tags"`
	OwnerID      string       `json:"ownerId"`
	CreatedAt    time.Time    `json:"createdAt"`
	AuditTrail   []AuditEntry `json:"auditTrail"`
	Reports      []Report     `json:"reports"`
	Resources    []Resource   `json:"resources"`
}

func NewDisaster(ownerID, title, locationName, description string, tags []string, now time.Time) (*Disaster, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(title) > maxTitleLength {
		return nil, fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, maxTitleLength)
	}
	if len(description) > maxDescriptionLength {
		return nil, fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, maxDescriptionLength)
	}
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}

	return &Disaster{
		ID:           uuid.NewString(),
		Title:        title,
		LocationName: locationName,
		Description:  description,
		Tags:         slices.Clone(tags),
		OwnerID:      ownerID,
		CreatedAt:    now,
		AuditTrail:   make([]AuditEntry, 0, 4),
		Reports:      make([]Report, 0),
		Resources:    make([]Resource, 0),
	}, nil
}

// Clone returns a deep copy. Mutations always operate on a clone and swap it
// in whole, so a snapshot handed to a reader is never written again.
func (d *Disaster) Clone() *Disaster {
	if d == nil {
		return nil
	}

	out := *d
	if d.Point != nil {
		p := *d.Point
		out.Point = &p
	}
	out.Tags = slices.Clone(d.Tags)
	out.AuditTrail = slices.Clone(d.AuditTrail)
	out.Reports = slices.Clone(d.Reports)
	out.Resources = slices.Clone(d.Resources)

	return &out
}

func (d *Disaster) AppendAudit(action AuditAction, actorID string, now time.Time) {
	d.AuditTrail = append(d.AuditTrail, AuditEntry{
		Action:    action,
		ActorID:   actorID,
		Timestamp: now,
	})
}

func (d *Disaster) FindReport(reportID string) *Report {
	for i := range d.Reports {
		if d.Reports[i].ID == reportID {
			return &d.Reports[i]
		}
	}
	return nil
}

func (d *Disaster) FindResource(resourceID string) *Resource {
	for i := range d.Resources {
		if d.Resources[i].ID == resourceID {
			return &d.Resources[i]
		}
	}
	return nil
}

func (d *Disaster) RemoveResource(resourceID string) bool {
	for i := range d.Resources {
		if d.Resources[i].ID == resourceID {
			d.Resources = append(d.Resources[:i], d.Resources[i+1:]...)
			return true
		}
	}
	return false
}

func (d *Disaster) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
