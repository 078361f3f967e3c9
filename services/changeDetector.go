package services

import (
	"strconv"
	"strings"
	"time"

	"GautamiHMS/models"
)

// EditSnapshot is the previously loaded state an edit is diffed
// against: the patient record, the admission and the billing record
// with its payments in payment-id order.
type EditSnapshot struct {
	Patient   models.Patient
	Admission models.Admission
	Billing   models.Billing
}

// EditInput carries the proposed form values for one edit submission.
type EditInput struct {
	PatientName   string  `json:"patient_name"`
	PatientPhone  string  `json:"patient_phone"`
	Gender        string  `json:"gender"`
	Age           int     `json:"age"`
	AgeUnit       string  `json:"age_unit"`
	Address       string  `json:"address"`
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

// DetectChanges diffs the snapshot against the proposed values and
// returns one entry per logical field whose normalized value differs.
// An empty result means the submission is a no-op and nothing may be
// written. All comparisons go through string coercion where missing,
// zero and empty are the same thing; dates compare by calendar day.
func DetectChanges(snap EditSnapshot, input EditInput) []models.FieldChange {
	var changes []models.FieldChange

	compare := func(field, old, new string) {
		if normalize(old) != normalize(new) {
			changes = append(changes, models.FieldChange{Field: field, Old: normalize(old), New: normalize(new)})
		}
	}

	compare("name", snap.Patient.Name, input.PatientName)
	compare("phone", snap.Patient.Phone, input.PatientPhone)
	compare("gender", snap.Patient.Gender, input.Gender)
	compare("age", formatInt(snap.Patient.Age), formatInt(input.Age))
	compare("ageUnit", snap.Patient.AgeUnit, input.AgeUnit)
	compare("address", snap.Patient.Address, input.Address)
	compare("admissionDate", dayOf(snap.Admission.AdmissionDate), dayOf(input.AdmissionDate))
	compare("admissionTime", snap.Admission.AdmissionTime, input.AdmissionTime)
	compare("admissionSource", snap.Admission.Source, input.Source)
	compare("admissionType", snap.Admission.Type, input.Type)
	compare("roomType", snap.Admission.WardID, input.WardID)
	compare("bed", formatBed(snap.Admission.BedID), formatBed(input.BedID))
	compare("doctor", snap.Admission.DoctorID, input.DoctorID)
	compare("referDoctor", snap.Admission.ReferDoctor, input.ReferDoctor)
	compare("deposit", formatAmount(snap.Billing.TotalDeposit), formatAmount(input.Deposit))
	compare("paymentMode", snap.Billing.PaymentMode, input.PaymentMode)
	compare("through", AdvanceThrough(snap.Billing), input.Through)

	return changes
}

// AdvanceThrough returns the payment channel of the advance payment.
// When several payments carry the advance tag the first one in the
// billing record's payment order wins; when none does the result is
// empty. The at-most-one invariant is not enforced anywhere, so this
// first-match rule is what keeps the lookup deterministic.
func AdvanceThrough(billing models.Billing) string {
	for _, p := range billing.Payments {
		if p.AmountType == models.AmountTypeAdvance {
			return p.Through
		}
	}
	return ""
}

// normalize applies the falsy-or-missing rule: absent, zero-like and
// empty all coerce to the empty string.
func normalize(v string) string {
	v = strings.TrimSpace(v)
	switch v {
	case "0", "null", "undefined":
		return ""
	}
	return v
}

func formatInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func formatAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBed(id *uint) string {
	if id == nil || *id == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(*id), 10)
}

// dayOf reduces a date value to its calendar day. Values that parse
// under one of the accepted layouts compare by day; anything else
// compares verbatim.
func dayOf(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"02-01-2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return v
}
