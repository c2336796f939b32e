package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cindermoth/reliefgrid/internal/domain"
)

func TestCreateReportAppendsToParentTrail(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	d := mustCreateDisaster(t, f, alice, "Report Host", "")

	rep, err := f.store.CreateReport(ctx, bob, d.ID, CreateReportInput{
		Content:  "bridge closed at 5th street",
		ImageURL: "https://img.example/bridge.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.VerificationPending, rep.VerificationStatus)
	assert.Equal(t, bob.ID, rep.SubmittedBy)

	trail, err := f.store.GetAuditTrail(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, domain.AuditReportCreated, trail[1].Action)
	assert.Equal(t, bob.ID, trail[1].ActorID)

	reports, err := f.store.ListReports(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, rep.ID, reports[0].ID)
}

func TestCreateReportValidation(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	d := mustCreateDisaster(t, f, alice, "Report Host", "")

	_, err := f.store.CreateReport(ctx, bob, d.ID, CreateReportInput{Content: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.store.CreateReport(ctx, bob, "missing", CreateReportInput{Content: "x"})
	assert.ErrorIs(t, err, domain.ErrDisasterNotFound)

	trail, err := f.store.GetAuditTrail(ctx, d.ID)
	require.NoError(t, err)
	assert.Len(t, trail, 1, "failed report creation leaves no audit entry")
}

func TestVerificationTransitions(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	d := mustCreateDisaster(t, f, alice, "Verify Host", "")
	rep, err := f.store.CreateReport(ctx, bob, d.ID, CreateReportInput{
		Content:  "levee breach photographed",
		ImageURL: "https://img.example/levee.jpg",
	})
	require.NoError(t, err)

	verified, err := f.store.UpdateReportVerification(ctx, alice, rep.ID, domain.VerifyResult{
		Found:   true,
		Verdict: domain.VerdictAuthentic,
		Note:    "no manipulation detected",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationVerified, verified.VerificationStatus)
	assert.Equal(t, "no manipulation detected", verified.VerificationNote)

	// A fresh call re-evaluates from the terminal status.
	reVerified, err := f.store.UpdateReportVerification(ctx, alice, rep.ID, domain.VerifyResult{
		Found:   true,
		Verdict: domain.VerdictManipulated,
		Note:    "editing artifacts detected",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationUnverified, reVerified.VerificationStatus)

	stored, err := f.store.GetReport(ctx, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationUnverified, stored.VerificationStatus, "status reflects the most recent call")

	trail, err := f.store.GetAuditTrail(ctx, d.ID)
	require.NoError(t, err)
	assert.Len(t, trail, 4, "create, report_create, and two report_verify entries")
	assert.Equal(t, domain.AuditReportVerified, trail[2].Action)
	assert.Equal(t, domain.AuditReportVerified, trail[3].Action)
}

func TestVerificationWithoutImageMarksUnverified(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	d := mustCreateDisaster(t, f, alice, "No Image", "")
	rep, err := f.store.CreateReport(ctx, bob, d.ID, CreateReportInput{Content: "unsubstantiated rumor"})
	require.NoError(t, err)

	out, err := f.store.UpdateReportVerification(ctx, alice, rep.ID, domain.VerifyResult{Found: false})
	require.NoError(t, err)

	assert.Equal(t, domain.VerificationUnverified, out.VerificationStatus)
	assert.Equal(t, "no verifiable image provided", out.VerificationNote)
}

func TestVerificationRejectsUnknownVerdict(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	d := mustCreateDisaster(t, f, alice, "Bad Verdict", "")
	rep, err := f.store.CreateReport(ctx, bob, d.ID, CreateReportInput{Content: "content"})
	require.NoError(t, err)

	_, err = f.store.UpdateReportVerification(ctx, alice, rep.ID, domain.VerifyResult{
		Found:   true,
		Verdict: domain.Verdict("suspicious"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, err := f.store.GetReport(ctx, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationPending, stored.VerificationStatus, "rejected verdict leaves status untouched")
}

func TestVerificationUnknownReport(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, err := f.store.UpdateReportVerification(context.Background(), alice, "missing", domain.VerifyResult{Found: false})
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}

func TestReportEventsCarrySnapshots(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	d := mustCreateDisaster(t, f, alice, "Event Snapshots", "")

	sub := f.hub.Subscribe()
	defer f.hub.Unsubscribe(sub)

	rep, err := f.store.CreateReport(ctx, bob, d.ID, CreateReportInput{Content: "snapshot me"})
	require.NoError(t, err)

	ev := <-sub.Events()
	assert.Equal(t, domain.EventKindReport, ev.Kind)
	assert.Equal(t, domain.EventCreated, ev.Action)

	payload, ok := ev.Payload.(domain.Report)
	require.True(t, ok)
	assert.Equal(t, rep.ID, payload.ID)
	assert.Equal(t, "snapshot me", payload.Content)
}
