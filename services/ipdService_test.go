package services

import (
	"context"
	"testing"

	"GautamiHMS/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ipdFixture struct {
	rec       *recorder
	patients  *mockPatientStore
	adms      *mockAdmissionStore
	billings  *mockBillingStore
	beds      *mockBedAssigner
	summaries *mockSummaryAdjuster
	audit     *mockAuditWriter
	svc       *IPDService
}

func newIPDFixture() *ipdFixture {
	rec := &recorder{}
	snap := sampleSnapshot()
	f := &ipdFixture{
		rec: rec,
		patients: &mockPatientStore{rec: rec, patients: map[string]*models.Patient{
			snap.Patient.UHID: &snap.Patient,
		}},
		adms: &mockAdmissionStore{rec: rec, admissions: map[string]*models.Admission{
			snap.Admission.ID: &snap.Admission,
		}},
		billings: &mockBillingStore{rec: rec, billings: map[string]*models.Billing{
			snap.Admission.ID: &snap.Billing,
		}},
		beds:      &mockBedAssigner{rec: rec},
		summaries: &mockSummaryAdjuster{rec: rec},
		audit:     &mockAuditWriter{rec: rec},
	}
	f.adms.admissions[snap.Admission.ID].PatientID = snap.Patient.UHID
	f.svc = NewIPDService(f.patients, f.adms, f.billings, f.beds, f.summaries, f.audit)
	return f
}

func TestCreateAdmissionAdjustsCountersOnce(t *testing.T) {
	f := newIPDFixture()
	input := AdmissionInput{
		PatientID:     "UH-000042",
		AdmissionDate: "2026-08-27T10:30:00Z",
		WardID:        "general",
		BedID:         bedPtr(7),
		Deposit:       2000,
		PaymentMode:   models.PaymentCash,
		Through:       "counter",
	}

	admission, err := f.svc.CreateAdmission(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-27", admission.DateKey)
	assert.Equal(t, models.AdmissionActive, admission.Status)
	assert.Equal(t, "Ramesh Kumar", admission.PatientName)

	assert.Equal(t, int64(1), f.summaries.admissionCall)
	assert.Equal(t, 1, f.summaries.depositCalls)
	assert.Equal(t, models.Contribution{}, f.summaries.depositOld)
	assert.Equal(t, models.Contribution{Amount: 2000, Category: models.PaymentCash}, f.summaries.depositNew)

	assert.Nil(t, f.beds.oldBed)
	require.NotNil(t, f.beds.newBed)
	assert.Equal(t, uint(7), *f.beds.newBed)
}

func TestCreateAdmissionUnknownPatient(t *testing.T) {
	f := newIPDFixture()
	_, err := f.svc.CreateAdmission(context.Background(), AdmissionInput{PatientID: "UH-999999"})
	assert.Error(t, err)
	assert.Empty(t, f.rec.ops)
}

func TestCreateAdmissionZeroDepositSkipsDepositCounter(t *testing.T) {
	f := newIPDFixture()
	_, err := f.svc.CreateAdmission(context.Background(), AdmissionInput{
		PatientID:     "UH-000042",
		AdmissionDate: "2026-08-27",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.summaries.admissionCall)
	assert.Zero(t, f.summaries.depositCalls)
	assert.False(t, f.beds.called)
}

func TestEditAdmissionNoChangesWritesNothing(t *testing.T) {
	f := newIPDFixture()
	input := matchingInput(sampleSnapshot())

	changes, err := f.svc.EditAdmission(context.Background(), "reception1", "adm-1", input)
	assert.ErrorIs(t, err, ErrNoChanges)
	assert.Nil(t, changes)
	assert.Empty(t, f.rec.ops)
}

func TestEditAdmissionNotFound(t *testing.T) {
	f := newIPDFixture()
	_, err := f.svc.EditAdmission(context.Background(), "reception1", "missing", EditInput{})
	assert.ErrorIs(t, err, ErrAdmissionNotFound)
}

func TestEditAdmissionWriteOrdering(t *testing.T) {
	f := newIPDFixture()
	input := matchingInput(sampleSnapshot())
	input.PatientName = "Ramesh K"
	input.BedID = bedPtr(12)
	input.Deposit = 3500
	input.Through = "upi"

	changes, err := f.svc.EditAdmission(context.Background(), "reception1", "adm-1", input)
	require.NoError(t, err)
	assert.NotEmpty(t, changes)

	assert.Equal(t, []string{
		"patient.update",
		"bed.reassign",
		"admission.update",
		"billing.update",
		"summary.deposit",
		"audit.append",
	}, f.rec.ops)

	require.NotNil(t, f.beds.oldBed)
	assert.Equal(t, uint(7), *f.beds.oldBed)
	require.NotNil(t, f.beds.newBed)
	assert.Equal(t, uint(12), *f.beds.newBed)

	assert.Equal(t, models.Contribution{Amount: 2000, Category: models.PaymentCash}, f.summaries.depositOld)
	assert.Equal(t, models.Contribution{Amount: 3500, Category: models.PaymentCash}, f.summaries.depositNew)
}

func TestEditAdmissionDepositUnchangedSkipsSummary(t *testing.T) {
	f := newIPDFixture()
	input := matchingInput(sampleSnapshot())
	input.PatientName = "Ramesh K"

	_, err := f.svc.EditAdmission(context.Background(), "reception1", "adm-1", input)
	require.NoError(t, err)
	assert.Zero(t, f.summaries.depositCalls)
	assert.NotContains(t, f.rec.ops, "billing.update")
}

// A through-only change must rewrite the advance payment but leaves
// the daily totals alone: the amount and category did not move.
func TestEditAdmissionThroughOnlyChange(t *testing.T) {
	f := newIPDFixture()
	input := matchingInput(sampleSnapshot())
	input.Through = "upi"

	changes, err := f.svc.EditAdmission(context.Background(), "reception1", "adm-1", input)
	require.NoError(t, err)
	assert.Len(t, changes, 1)
	assert.Equal(t, "through", changes[0].Field)
	assert.Contains(t, f.rec.ops, "billing.update")
	assert.Zero(t, f.summaries.depositCalls)
	assert.Equal(t, "upi", f.billings.through)
}

func TestEditAdmissionAuditFailureKeepsWrites(t *testing.T) {
	f := newIPDFixture()
	f.audit.fail = true
	input := matchingInput(sampleSnapshot())
	input.PatientName = "Ramesh K"

	changes, err := f.svc.EditAdmission(context.Background(), "reception1", "adm-1", input)
	assert.ErrorIs(t, err, ErrAuditLog)
	assert.NotEmpty(t, changes)
	assert.Contains(t, f.rec.ops, "patient.update")
	assert.Contains(t, f.rec.ops, "admission.update")
}

func TestEditAdmissionMissingBillingProceeds(t *testing.T) {
	f := newIPDFixture()
	delete(f.billings.billings, "adm-1")
	input := matchingInput(sampleSnapshot())
	input.Deposit = 5000
	input.PaymentMode = models.PaymentOnline

	changes, err := f.svc.EditAdmission(context.Background(), "reception1", "adm-1", input)
	require.NoError(t, err)
	assert.NotEmpty(t, changes)
	// No billing row to rewrite, but the summary still moves from the
	// zero contribution to the new one.
	assert.NotContains(t, f.rec.ops, "billing.update")
	assert.Equal(t, 1, f.summaries.depositCalls)
	assert.Equal(t, models.Contribution{}, f.summaries.depositOld)
	assert.Equal(t, models.Contribution{Amount: 5000, Category: models.PaymentOnline}, f.summaries.depositNew)
}

func TestEditAdmissionRecordsActor(t *testing.T) {
	f := newIPDFixture()
	input := matchingInput(sampleSnapshot())
	input.Address = "Kakinada"

	_, err := f.svc.EditAdmission(context.Background(), "reception1", "adm-1", input)
	require.NoError(t, err)
	require.Len(t, f.audit.entries, 1)
	entry := f.audit.entries[0]
	assert.Equal(t, "reception1", entry.EditedBy)
	assert.Equal(t, "adm-1", entry.AdmissionID)

	got, err := entry.GetChanges()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "address", got[0].Field)
	assert.Equal(t, "Rajahmundry", got[0].Old)
	assert.Equal(t, "Kakinada", got[0].New)
}

func TestDischargeFreesBed(t *testing.T) {
	f := newIPDFixture()
	require.NoError(t, f.svc.Discharge(context.Background(), "adm-1"))
	assert.Equal(t, models.AdmissionDischarged, f.adms.statuses["adm-1"])
	require.NotNil(t, f.beds.oldBed)
	assert.Equal(t, uint(7), *f.beds.oldBed)
	assert.Nil(t, f.beds.newBed)
}

func TestDischargeUnknownAdmission(t *testing.T) {
	f := newIPDFixture()
	err := f.svc.Discharge(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAdmissionNotFound)
}
