package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxContentLength = 8000

var ErrReportNotFound = errors.New("report not found")

type VerificationStatus string

const (
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
	VerificationUnverified VerificationStatus = "unverified"
)

// Verdict is the image-verification service's judgement on a report's
// supporting evidence.
type Verdict string

const (
	VerdictAuthentic   Verdict = "authentic"
	VerdictManipulated Verdict = "manipulated"
	VerdictIrrelevant  Verdict = "irrelevant"
)

type Report struct {
	ID                 string             `json:"id"`
	DisasterID         string             `json:"disasterId"`
	SubmittedBy        string             `json:"submittedBy"`
	Content            string             `json:"content"`
	ImageURL           string             `json:"imageUrl,omitempty"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	VerificationNote   string             `json:"verificationNote,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
}

func NewReport(disasterID, submittedBy, content, imageURL string, now time.Time) (*Report, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if len(content) > maxContentLength {
		return nil, fmt.Errorf("%w: content exceeds %d characters", ErrInvalidInput, maxContentLength)
	}
	if submittedBy == "" {
		return nil, fmt.Errorf("%w: submitter is required", ErrInvalidInput)
	}

	return &Report{
		ID:                 uuid.NewString(),
		DisasterID:         disasterID,
		SubmittedBy:        submittedBy,
		Content:            content,
		ImageURL:           imageURL,
		VerificationStatus: VerificationPending,
		CreatedAt:          now,
	}, nil
}

// StatusForVerdict maps a verification verdict onto the report state machine:
// only an authentic verdict verifies a report, everything else marks it
// unverified. A later verdict re-runs the transition from the current status.
func StatusForVerdict(v Verdict) (VerificationStatus, error) {
	switch v {
	case VerdictAuthentic:
		return VerificationVerified, nil
	case VerdictManipulated, VerdictIrrelevant:
		return VerificationUnverified, nil
	default:
		return "", fmt.Errorf("%w: unknown verdict %q", ErrInvalidInput, v)
	}
}
