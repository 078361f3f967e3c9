package services

import (
	"context"
	"errors"

	"GautamiHMS/models"
)

// recorder collects the ordered write operations made through the
// mocks so tests can assert on sequencing.
type recorder struct {
	ops []string
}

func (r *recorder) record(op string) {
	r.ops = append(r.ops, op)
}

type mockPatientStore struct {
	rec      *recorder
	patients map[string]*models.Patient
	updated  *models.Patient
	err      error
}

func (m *mockPatientStore) GetByUHID(_ context.Context, uhid string) (*models.Patient, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.patients[uhid], nil
}

func (m *mockPatientStore) Update(_ context.Context, patient *models.Patient) error {
	m.rec.record("patient.update")
	m.updated = patient
	return nil
}

type mockAdmissionStore struct {
	rec        *recorder
	admissions map[string]*models.Admission
	created    *models.Admission
	updated    *models.Admission
	statuses   map[string]string
}

func (m *mockAdmissionStore) Create(_ context.Context, admission *models.Admission, _ models.Contribution, _ string) (*models.Billing, error) {
	m.rec.record("admission.create")
	m.created = admission
	return &models.Billing{ID: "bill-new", AdmissionID: admission.ID}, nil
}

func (m *mockAdmissionStore) GetByID(_ context.Context, id string) (*models.Admission, error) {
	return m.admissions[id], nil
}

func (m *mockAdmissionStore) Update(_ context.Context, admission *models.Admission) error {
	m.rec.record("admission.update")
	m.updated = admission
	return nil
}

func (m *mockAdmissionStore) SetStatus(_ context.Context, id, status string) error {
	m.rec.record("admission.status")
	if m.statuses == nil {
		m.statuses = map[string]string{}
	}
	m.statuses[id] = status
	return nil
}

type mockBillingStore struct {
	rec      *recorder
	billings map[string]*models.Billing
	deposit  *models.Contribution
	through  string
}

func (m *mockBillingStore) GetByAdmission(_ context.Context, admissionID string) (*models.Billing, error) {
	return m.billings[admissionID], nil
}

func (m *mockBillingStore) UpdateDeposit(_ context.Context, _ string, deposit models.Contribution, through string) error {
	m.rec.record("billing.update")
	m.deposit = &deposit
	m.through = through
	return nil
}

type mockBedAssigner struct {
	rec    *recorder
	oldBed *uint
	newBed *uint
	called bool
}

func (m *mockBedAssigner) Reassign(_ context.Context, oldBed, newBed *uint) error {
	m.rec.record("bed.reassign")
	m.oldBed, m.newBed, m.called = oldBed, newBed, true
	return nil
}

type mockSummaryAdjuster struct {
	rec           *recorder
	depositCalls  int
	depositOld    models.Contribution
	depositNew    models.Contribution
	admissionCall int64
	otCalls       []int64
}

func (m *mockSummaryAdjuster) AdjustIPDDeposit(_ context.Context, _ string, old, new models.Contribution) error {
	m.rec.record("summary.deposit")
	m.depositCalls++
	m.depositOld, m.depositNew = old, new
	return nil
}

func (m *mockSummaryAdjuster) AdjustAdmissions(_ context.Context, _ string, delta int64) error {
	m.rec.record("summary.admissions")
	m.admissionCall += delta
	return nil
}

func (m *mockSummaryAdjuster) AdjustOT(_ context.Context, _ string, delta int64) error {
	m.rec.record("summary.ot")
	m.otCalls = append(m.otCalls, delta)
	return nil
}

type mockAuditWriter struct {
	rec     *recorder
	entries []*models.ChangeLog
	fail    bool
}

func (m *mockAuditWriter) Append(_ context.Context, entry *models.ChangeLog) error {
	m.rec.record("audit.append")
	if m.fail {
		return errors.New("change log insert failed")
	}
	m.entries = append(m.entries, entry)
	return nil
}

type mockOTStore struct {
	rec      *recorder
	bookings map[string]*models.OTBooking
	statuses map[string]string
}

func (m *mockOTStore) Create(_ context.Context, booking *models.OTBooking) error {
	m.rec.record("ot.create")
	if m.bookings == nil {
		m.bookings = map[string]*models.OTBooking{}
	}
	m.bookings[booking.ID] = booking
	return nil
}

func (m *mockOTStore) GetByID(_ context.Context, id string) (*models.OTBooking, error) {
	return m.bookings[id], nil
}

func (m *mockOTStore) ListByDate(_ context.Context, _ string) ([]models.OTBooking, error) {
	return nil, nil
}

func (m *mockOTStore) Update(_ context.Context, booking *models.OTBooking) error {
	m.rec.record("ot.update")
	m.bookings[booking.ID] = booking
	return nil
}

func (m *mockOTStore) SetStatus(_ context.Context, id, status string) error {
	m.rec.record("ot.status")
	if m.statuses == nil {
		m.statuses = map[string]string{}
	}
	m.statuses[id] = status
	if b, ok := m.bookings[id]; ok {
		b.Status = status
	}
	return nil
}
