package store

import (
	"context"
	"fmt"

	"github.com/cindermoth/reliefgrid/internal/domain"
)

type CreateReportInput struct {
	Content  string
	ImageURL string
}

func (s *Store) CreateReport(ctx context.Context, actor domain.Principal, disasterID string, input CreateReportInput) (*domain.Report, error) {
	lock := s.lockFor(disasterID)
	lock.Lock()
	defer lock.Unlock()

	cur, ok := s.current(disasterID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDisasterNotFound, disasterID)
	}

	now := s.clock.Now().UTC()

	rep, err := domain.NewReport(disasterID, actor.ID, input.Content, input.ImageURL, now)
	if err != nil {
		return nil, err
	}

	next := cur.Clone()
	next.Reports = append(next.Reports, *rep)
	next.AppendAudit(domain.AuditReportCreated, actor.ID, now)

	s.commit(next)
	s.mu.Lock()
	s.reportIdx[rep.ID] = disasterID
	s.mu.Unlock()

	s.metrics.StoreMutations.WithLabelValues("report", "created").Inc()
	s.archiveEntry(ctx, disasterID, next.AuditTrail[len(next.AuditTrail)-1], map[string]any{"report_id": rep.ID})
	s.publish(domain.NewReportEvent(domain.EventCreated, *rep, now))

	return rep, nil
}

// UpdateReportVerification applies the outcome of an image-verification
// call to the report's state machine. It runs from whatever status the
// report currently has: a fresh verification request always re-evaluates,
// and the report ends up reflecting the most recent call. A no-data outcome
// (no verifiable image) marks the report unverified.
func (s *Store) UpdateReportVerification(ctx context.Context, actor domain.Principal, reportID string, result domain.VerifyResult) (*domain.Report, error) {
	s.mu.RLock()
	disasterID, ok := s.reportIdx[reportID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrReportNotFound, reportID)
	}

	status := domain.VerificationUnverified
	note := "no verifiable image provided"
	if result.Found {
		var err error
		status, err = domain.StatusForVerdict(result.Verdict)
		if err != nil {
			return nil, err
		}
		note = result.Note
	}

	lock := s.lockFor(disasterID)
	lock.Lock()
	defer lock.Unlock()

	cur, ok := s.current(disasterID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrReportNotFound, reportID)
	}

	now := s.clock.Now().UTC()
	next := cur.Clone()

	rep := next.FindReport(reportID)
	if rep == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrReportNotFound, reportID)
	}

	rep.VerificationStatus = status
	rep.VerificationNote = note
	next.AppendAudit(domain.AuditReportVerified, actor.ID, now)

	s.commit(next)
	s.metrics.StoreMutations.WithLabelValues("report", "updated").Inc()

	s.archiveEntry(ctx, disasterID, next.AuditTrail[len(next.AuditTrail)-1], map[string]any{
		"report_id": reportID,
		"status":    string(status),
	})
	updated := *rep
	s.publish(domain.NewReportEvent(domain.EventUpdated, updated, now))

	return &updated, nil
}

func (s *Store) GetReport(ctx context.Context, reportID string) (*domain.Report, error) {
	s.mu.RLock()
	disasterID, ok := s.reportIdx[reportID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrReportNotFound, reportID)
	}

	cur, ok := s.current(disasterID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrReportNotFound, reportID)
	}

	rep := cur.FindReport(reportID)
	if rep == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrReportNotFound, reportID)
	}

	out := *rep
	return &out, nil
}

func (s *Store) ListReports(ctx context.Context, disasterID string) ([]domain.Report, error) {
	cur, ok := s.current(disasterID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDisasterNotFound, disasterID)
	}

	return append([]domain.Report(nil), cur.Reports...), nil
}
