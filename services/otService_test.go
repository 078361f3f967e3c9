package services

import (
	"context"
	"testing"

	"GautamiHMS/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOTFixture() (*mockOTStore, *mockSummaryAdjuster, *OTService) {
	rec := &recorder{}
	store := &mockOTStore{rec: rec}
	counter := &mockSummaryAdjuster{rec: rec}
	return store, counter, NewOTService(store, counter)
}

func TestOTCreateCountsOnce(t *testing.T) {
	store, counter, svc := newOTFixture()
	booking := &models.OTBooking{ID: "ot-1", PatientID: "UH-000042", DateKey: "2026-08-27T08:00:00Z", Procedure: "Appendectomy"}

	require.NoError(t, svc.Create(context.Background(), booking))
	assert.Equal(t, "2026-08-27", booking.DateKey)
	assert.Equal(t, []int64{1}, counter.otCalls)
	assert.Contains(t, store.bookings, "ot-1")
}

func TestOTUpdateNeverRecounts(t *testing.T) {
	store, counter, svc := newOTFixture()
	booking := &models.OTBooking{ID: "ot-1", PatientID: "UH-000042", DateKey: "2026-08-27", Procedure: "Appendectomy"}
	require.NoError(t, svc.Create(context.Background(), booking))

	edit := &models.OTBooking{ID: "ot-1", PatientID: "UH-000042", DateKey: "2026-09-01", Procedure: "Laparoscopic appendectomy"}
	require.NoError(t, svc.Update(context.Background(), edit))

	// The booking day stays pinned and the counter does not move again.
	assert.Equal(t, "2026-08-27", store.bookings["ot-1"].DateKey)
	assert.Equal(t, []int64{1}, counter.otCalls)
}

func TestOTCancelDecrementsOnce(t *testing.T) {
	store, counter, svc := newOTFixture()
	booking := &models.OTBooking{ID: "ot-1", PatientID: "UH-000042", DateKey: "2026-08-27", Procedure: "Appendectomy"}
	require.NoError(t, svc.Create(context.Background(), booking))

	require.NoError(t, svc.Cancel(context.Background(), "ot-1"))
	assert.Equal(t, models.OTCancelled, store.statuses["ot-1"])
	assert.Equal(t, []int64{1, -1}, counter.otCalls)

	// Cancelling again is a no-op.
	require.NoError(t, svc.Cancel(context.Background(), "ot-1"))
	assert.Equal(t, []int64{1, -1}, counter.otCalls)
}

func TestOTCancelUnknownBooking(t *testing.T) {
	_, _, svc := newOTFixture()
	err := svc.Cancel(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
