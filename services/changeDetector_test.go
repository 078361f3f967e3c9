package services

import (
	"testing"

	"GautamiHMS/models"

	"github.com/stretchr/testify/assert"
)

func bedPtr(id uint) *uint { return &id }

func sampleSnapshot() EditSnapshot {
	return EditSnapshot{
		Patient: models.Patient{
			UHID:    "UH-000042",
			Name:    "Ramesh Kumar",
			Phone:   "9876543210",
			Gender:  "Male",
			Age:     54,
			AgeUnit: "years",
			Address: "Rajahmundry",
		},
		Admission: models.Admission{
			ID:            "adm-1",
			AdmissionDate: "2026-08-27",
			AdmissionTime: "10:30",
			Source:        "opd",
			Type:          "elective",
			WardID:        "general",
			BedID:         bedPtr(7),
			DoctorID:      "DR-1a2b3c4d",
			ReferDoctor:   "Dr. Rao",
		},
		Billing: models.Billing{
			ID:           "bill-1",
			TotalDeposit: 2000,
			PaymentMode:  models.PaymentCash,
			Payments: []models.Payment{
				{ID: "p1", Amount: 2000, Category: models.PaymentCash, AmountType: models.AmountTypeAdvance, Through: "counter"},
			},
		},
	}
}

func matchingInput(snap EditSnapshot) EditInput {
	return EditInput{
		PatientName:   snap.Patient.Name,
		PatientPhone:  snap.Patient.Phone,
		Gender:        snap.Patient.Gender,
		Age:           snap.Patient.Age,
		AgeUnit:       snap.Patient.AgeUnit,
		Address:       snap.Patient.Address,
		AdmissionDate: snap.Admission.AdmissionDate,
		AdmissionTime: snap.Admission.AdmissionTime,
		Source:        snap.Admission.Source,
		Type:          snap.Admission.Type,
		WardID:        snap.Admission.WardID,
		BedID:         snap.Admission.BedID,
		DoctorID:      snap.Admission.DoctorID,
		ReferDoctor:   snap.Admission.ReferDoctor,
		Deposit:       snap.Billing.TotalDeposit,
		PaymentMode:   snap.Billing.PaymentMode,
		Through:       "counter",
	}
}

func TestDetectChangesIdenticalSubmission(t *testing.T) {
	snap := sampleSnapshot()
	assert.Empty(t, DetectChanges(snap, matchingInput(snap)))
}

func TestDetectChangesDateComparesByDay(t *testing.T) {
	snap := sampleSnapshot()
	input := matchingInput(snap)

	// Same calendar day under a different layout is not a change.
	input.AdmissionDate = "2026-08-27T18:45:00Z"
	assert.Empty(t, DetectChanges(snap, input))

	input.AdmissionDate = "27-08-2026"
	assert.Empty(t, DetectChanges(snap, input))

	input.AdmissionDate = "2026-08-28"
	changes := DetectChanges(snap, input)
	assert.Len(t, changes, 1)
	assert.Equal(t, "admissionDate", changes[0].Field)
	assert.Equal(t, "2026-08-27", changes[0].Old)
	assert.Equal(t, "2026-08-28", changes[0].New)
}

func TestDetectChangesFalsyCoercion(t *testing.T) {
	snap := sampleSnapshot()
	snap.Patient.Address = ""
	snap.Patient.Age = 0
	snap.Admission.ReferDoctor = ""
	snap.Admission.BedID = nil

	input := matchingInput(snap)
	input.Address = "null"
	input.Age = 0
	input.ReferDoctor = "undefined"
	input.BedID = bedPtr(0)

	assert.Empty(t, DetectChanges(snap, input))
}

func TestDetectChangesReportsEachField(t *testing.T) {
	snap := sampleSnapshot()
	input := matchingInput(snap)
	input.PatientName = "Ramesh K"
	input.Deposit = 3500
	input.PaymentMode = models.PaymentOnline
	input.BedID = bedPtr(12)

	changes := DetectChanges(snap, input)
	fields := make([]string, 0, len(changes))
	for _, c := range changes {
		fields = append(fields, c.Field)
	}
	assert.Equal(t, []string{"name", "bed", "deposit", "paymentMode"}, fields)
}

func TestDetectChangesZeroDepositVsEmpty(t *testing.T) {
	snap := sampleSnapshot()
	snap.Billing = models.Billing{}

	input := matchingInput(snap)
	input.Deposit = 0
	input.PaymentMode = ""
	input.Through = ""

	assert.Empty(t, DetectChanges(snap, input))
}

func TestAdvanceThroughFirstMatch(t *testing.T) {
	billing := models.Billing{Payments: []models.Payment{
		{ID: "p1", AmountType: "service", Through: "counter"},
		{ID: "p2", AmountType: models.AmountTypeAdvance, Through: "upi"},
		{ID: "p3", AmountType: models.AmountTypeAdvance, Through: "card"},
	}}
	assert.Equal(t, "upi", AdvanceThrough(billing))

	assert.Equal(t, "", AdvanceThrough(models.Billing{}))
}

func TestDayOf(t *testing.T) {
	assert.Equal(t, "2026-08-27", dayOf("2026-08-27"))
	assert.Equal(t, "2026-08-27", dayOf("2026-08-27T09:15:00+05:30"))
	assert.Equal(t, "2026-08-27", dayOf("27-08-2026"))
	assert.Equal(t, "", dayOf("  "))
	assert.Equal(t, "not-a-date", dayOf("not-a-date"))
}
