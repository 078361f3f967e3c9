package services

import (
	"context"
	"errors"
	"fmt"

	"GautamiHMS/models"
)

// Sentinel errors for the admission flows.
var (
	// ErrNoChanges means the submitted values equal the stored record;
	// the edit is a no-op and nothing was written.
	ErrNoChanges = errors.New("no changes detected")

	ErrAdmissionNotFound = errors.New("admission not found")

	// ErrAuditLog wraps a change-log append failure that happened after
	// the primary writes already committed. The edit itself stands.
	ErrAuditLog = errors.New("failed to record audit entry")
)

// Narrow store contracts the orchestration works against. The concrete
// repositories satisfy them; tests substitute mocks.
type PatientStore interface {
	GetByUHID(ctx context.Context, uhid string) (*models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
}

type AdmissionStore interface {
	Create(ctx context.Context, admission *models.Admission, deposit models.Contribution, through string) (*models.Billing, error)
	GetByID(ctx context.Context, id string) (*models.Admission, error)
	Update(ctx context.Context, admission *models.Admission) error
	SetStatus(ctx context.Context, id, status string) error
}

type BillingStore interface {
	GetByAdmission(ctx context.Context, admissionID string) (*models.Billing, error)
	UpdateDeposit(ctx context.Context, billingID string, deposit models.Contribution, through string) error
}

type BedAssigner interface {
	Reassign(ctx context.Context, oldBed, newBed *uint) error
}

type SummaryAdjuster interface {
	AdjustIPDDeposit(ctx context.Context, dateKey string, old, new models.Contribution) error
	AdjustAdmissions(ctx context.Context, dateKey string, delta int64) error
}

type AuditWriter interface {
	Append(ctx context.Context, entry *models.ChangeLog) error
}

// AdmissionInput carries the booking form for a new IPD admission.
type AdmissionInput struct {
	PatientID     string  `json:"patient_id"`
	AdmissionDate string  `json:"admission_date"`
	AdmissionTime string  `json:"admission_time"`
	Source        string  `json:"source"`
	Type          string  `json:"type"`
	WardID        string  `json:"ward_id"`
	BedID         *uint   `json:"bed_id"`
	DoctorID      string  `json:"doctor_id"`
	ReferDoctor   string  `json:"refer_doctor"`
	Deposit       float64 `json:"deposit"`
	PaymentMode   string  `json:"payment_mode"`
	Through       string  `json:"through"`
}

// IPDService drives the admission lifecycle: booking, the edit flow
// with its diff and counter adjustments, and discharge. Writes within
// one submission are sequential and independent; a failure partway
// aborts the remaining steps without undoing the completed ones.
type IPDService struct {
	patients   PatientStore
	admissions AdmissionStore
	billings   BillingStore
	beds       BedAssigner
	summaries  SummaryAdjuster
	audit      AuditWriter
}

func NewIPDService(patients PatientStore, admissions AdmissionStore, billings BillingStore, beds BedAssigner, summaries SummaryAdjuster, audit AuditWriter) *IPDService {
	return &IPDService{
		patients:   patients,
		admissions: admissions,
		billings:   billings,
		beds:       beds,
		summaries:  summaries,
		audit:      audit,
	}
}

// CreateAdmission books a patient in: admission, billing and advance
// payment rows first, then bed occupancy, then the day's counters
// (admission count, deposit split). The counter adjustments run once
// per new admission; the edit flow never repeats them.
func (s *IPDService) CreateAdmission(ctx context.Context, input AdmissionInput) (*models.Admission, error) {
	patient, err := s.patients.GetByUHID(ctx, input.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	if patient == nil {
		return nil, fmt.Errorf("patient %s not registered", input.PatientID)
	}

	admission := &models.Admission{
		PatientID:     input.PatientID,
		DateKey:       dayOf(input.AdmissionDate),
		AdmissionDate: input.AdmissionDate,
		AdmissionTime: input.AdmissionTime,
		Source:        input.Source,
		Type:          input.Type,
		WardID:        input.WardID,
		BedID:         input.BedID,
		DoctorID:      input.DoctorID,
		ReferDoctor:   input.ReferDoctor,
		Status:        models.AdmissionActive,
		PatientName:   patient.Name,
		PatientPhone:  patient.Phone,
	}
	deposit := models.Contribution{Amount: input.Deposit, Category: input.PaymentMode}

	if _, err := s.admissions.Create(ctx, admission, deposit, input.Through); err != nil {
		return nil, err
	}
	if input.BedID != nil {
		if err := s.beds.Reassign(ctx, nil, input.BedID); err != nil {
			return admission, fmt.Errorf("admission booked but bed not occupied: %w", err)
		}
	}
	if err := s.summaries.AdjustAdmissions(ctx, admission.DateKey, 1); err != nil {
		return admission, fmt.Errorf("admission booked but counter not adjusted: %w", err)
	}
	if !deposit.Zero() {
		if err := s.summaries.AdjustIPDDeposit(ctx, admission.DateKey, models.Contribution{}, deposit); err != nil {
			return admission, fmt.Errorf("admission booked but deposit counter not adjusted: %w", err)
		}
	}
	return admission, nil
}

// EditAdmission applies an edit submission. The diff decides whether
// anything is written at all; resubmitting identical values is a
// no-op and returns ErrNoChanges. Writes go out in a fixed order:
// patient, bed reassignment, admission, billing, summary adjustment,
// audit entry. The audit append runs last; if it fails the primary
// writes stand and the caller gets ErrAuditLog.
func (s *IPDService) EditAdmission(ctx context.Context, actor, admissionID string, input EditInput) ([]models.FieldChange, error) {
	admission, err := s.admissions.GetByID(ctx, admissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load admission: %w", err)
	}
	if admission == nil {
		return nil, ErrAdmissionNotFound
	}

	// A missing patient or billing record does not block the edit; the
	// diff runs against zero values and the submission proceeds.
	snap := EditSnapshot{Admission: *admission}
	patient, err := s.patients.GetByUHID(ctx, admission.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	if patient != nil {
		snap.Patient = *patient
	} else {
		snap.Patient = models.Patient{UHID: admission.PatientID}
	}
	billing, err := s.billings.GetByAdmission(ctx, admissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load billing: %w", err)
	}
	if billing != nil {
		snap.Billing = *billing
	}

	changes := DetectChanges(snap, input)
	if len(changes) == 0 {
		return nil, ErrNoChanges
	}

	updated := snap.Patient
	updated.Name = input.PatientName
	updated.Phone = input.PatientPhone
	updated.Gender = input.Gender
	updated.Age = input.Age
	updated.AgeUnit = input.AgeUnit
	updated.Address = input.Address
	if err := s.patients.Update(ctx, &updated); err != nil {
		return changes, fmt.Errorf("failed to update patient: %w", err)
	}

	oldBed := snap.Admission.BedID
	if err := s.beds.Reassign(ctx, oldBed, input.BedID); err != nil {
		return changes, fmt.Errorf("failed to reassign bed: %w", err)
	}

	admission.AdmissionDate = input.AdmissionDate
	admission.AdmissionTime = input.AdmissionTime
	admission.Source = input.Source
	admission.Type = input.Type
	admission.WardID = input.WardID
	admission.BedID = input.BedID
	admission.DoctorID = input.DoctorID
	admission.ReferDoctor = input.ReferDoctor
	admission.PatientName = input.PatientName
	admission.PatientPhone = input.PatientPhone
	if err := s.admissions.Update(ctx, admission); err != nil {
		return changes, fmt.Errorf("failed to update admission: %w", err)
	}

	oldDeposit := models.Contribution{Amount: snap.Billing.TotalDeposit, Category: snap.Billing.PaymentMode}
	newDeposit := models.Contribution{Amount: input.Deposit, Category: input.PaymentMode}
	depositChanged := oldDeposit != newDeposit || AdvanceThrough(snap.Billing) != input.Through
	if depositChanged && snap.Billing.ID != "" {
		if err := s.billings.UpdateDeposit(ctx, snap.Billing.ID, newDeposit, input.Through); err != nil {
			return changes, fmt.Errorf("failed to update billing: %w", err)
		}
	}
	if oldDeposit != newDeposit {
		if err := s.summaries.AdjustIPDDeposit(ctx, admission.DateKey, oldDeposit, newDeposit); err != nil {
			return changes, fmt.Errorf("failed to adjust daily summary: %w", err)
		}
	}

	entry := &models.ChangeLog{
		Type:        "ipd",
		AdmissionID: admission.ID,
		PatientID:   admission.PatientID,
		DateKey:     admission.DateKey,
		PatientName: input.PatientName,
		EditedBy:    actor,
	}
	if err := entry.SetChanges(changes); err != nil {
		return changes, fmt.Errorf("%w: %v", ErrAuditLog, err)
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		return changes, fmt.Errorf("%w: %v", ErrAuditLog, err)
	}
	return changes, nil
}

// Discharge flips the admission to discharged and frees its bed.
func (s *IPDService) Discharge(ctx context.Context, admissionID string) error {
	admission, err := s.admissions.GetByID(ctx, admissionID)
	if err != nil {
		return fmt.Errorf("failed to load admission: %w", err)
	}
	if admission == nil {
		return ErrAdmissionNotFound
	}
	if err := s.admissions.SetStatus(ctx, admissionID, models.AdmissionDischarged); err != nil {
		return err
	}
	if admission.BedID != nil {
		if err := s.beds.Reassign(ctx, admission.BedID, nil); err != nil {
			return fmt.Errorf("discharged but bed not freed: %w", err)
		}
	}
	return nil
}
