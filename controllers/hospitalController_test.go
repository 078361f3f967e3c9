package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GautamiHMS/handlers"
	"GautamiHMS/models"
	"GautamiHMS/services"
	"GautamiHMS/utils"
)

// Stub stores backing a real IPDService behind the real route table,
// counting every write so tests can assert a rejected submission
// touched nothing.

type writeCounter struct {
	writes int
}

type stubPatients struct {
	patient models.Patient
	c       *writeCounter
}

func (s *stubPatients) GetByUHID(_ context.Context, _ string) (*models.Patient, error) {
	p := s.patient
	return &p, nil
}

func (s *stubPatients) Update(_ context.Context, _ *models.Patient) error {
	s.c.writes++
	return nil
}

type stubAdmissions struct {
	admission models.Admission
	c         *writeCounter
}

func (s *stubAdmissions) Create(_ context.Context, _ *models.Admission, _ models.Contribution, _ string) (*models.Billing, error) {
	s.c.writes++
	return &models.Billing{}, nil
}

func (s *stubAdmissions) GetByID(_ context.Context, id string) (*models.Admission, error) {
	if id != s.admission.ID {
		return nil, nil
	}
	a := s.admission
	return &a, nil
}

func (s *stubAdmissions) Update(_ context.Context, _ *models.Admission) error {
	s.c.writes++
	return nil
}

func (s *stubAdmissions) SetStatus(_ context.Context, _, _ string) error {
	s.c.writes++
	return nil
}

type stubBillings struct {
	billing models.Billing
	c       *writeCounter
}

func (s *stubBillings) GetByAdmission(_ context.Context, _ string) (*models.Billing, error) {
	b := s.billing
	return &b, nil
}

func (s *stubBillings) UpdateDeposit(_ context.Context, _ string, _ models.Contribution, _ string) error {
	s.c.writes++
	return nil
}

type stubBeds struct {
	c *writeCounter
}

func (s *stubBeds) Reassign(_ context.Context, _, _ *uint) error {
	s.c.writes++
	return nil
}

type stubSummaries struct {
	c *writeCounter
}

func (s *stubSummaries) AdjustIPDDeposit(_ context.Context, _ string, _, _ models.Contribution) error {
	s.c.writes++
	return nil
}

func (s *stubSummaries) AdjustAdmissions(_ context.Context, _ string, _ int64) error {
	s.c.writes++
	return nil
}

type stubAudit struct {
	entries []*models.ChangeLog
}

func (s *stubAudit) Append(_ context.Context, entry *models.ChangeLog) error {
	s.entries = append(s.entries, entry)
	return nil
}

func bedRef(id uint) *uint { return &id }

func editFixture() (models.Patient, models.Admission, models.Billing) {
	patient := models.Patient{
		UHID:    "UH-000042",
		Name:    "Ramesh Kumar",
		Phone:   "9876543210",
		Gender:  "Male",
		Age:     54,
		AgeUnit: "years",
		Address: "Rajahmundry",
	}
	admission := models.Admission{
		ID:            "adm-1",
		PatientID:     patient.UHID,
		DateKey:       "2026-08-27",
		AdmissionDate: "2026-08-27",
		AdmissionTime: "10:30",
		Source:        "opd",
		Type:          "elective",
		WardID:        "general",
		BedID:         bedRef(7),
		DoctorID:      "DR-1a2b3c4d",
		ReferDoctor:   "Dr. Rao",
		Status:        models.AdmissionActive,
		PatientName:   patient.Name,
		PatientPhone:  patient.Phone,
	}
	billing := models.Billing{
		ID:           "bill-1",
		AdmissionID:  admission.ID,
		TotalDeposit: 2000,
		PaymentMode:  models.PaymentCash,
		Payments: []models.Payment{
			{ID: "p1", Amount: 2000, Category: models.PaymentCash, AmountType: models.AmountTypeAdvance, Through: "counter"},
		},
	}
	return patient, admission, billing
}

func currentEditInput(patient models.Patient, admission models.Admission, billing models.Billing) services.EditInput {
	return services.EditInput{
		PatientName:   patient.Name,
		PatientPhone:  patient.Phone,
		Gender:        patient.Gender,
		Age:           patient.Age,
		AgeUnit:       patient.AgeUnit,
		Address:       patient.Address,
		AdmissionDate: admission.AdmissionDate,
		AdmissionTime: admission.AdmissionTime,
		Source:        admission.Source,
		Type:          admission.Type,
		WardID:        admission.WardID,
		BedID:         admission.BedID,
		DoctorID:      admission.DoctorID,
		ReferDoctor:   admission.ReferDoctor,
		Deposit:       billing.TotalDeposit,
		PaymentMode:   billing.PaymentMode,
		Through:       "counter",
	}
}

func newEditRouter() (*gin.Engine, *stubAudit, *writeCounter, services.EditInput) {
	gin.SetMode(gin.TestMode)

	patient, admission, billing := editFixture()
	counter := &writeCounter{}
	audit := &stubAudit{}
	ipd := services.NewIPDService(
		&stubPatients{patient: patient, c: counter},
		&stubAdmissions{admission: admission, c: counter},
		&stubBillings{billing: billing, c: counter},
		&stubBeds{c: counter},
		&stubSummaries{c: counter},
		audit,
	)
	admissionHandler := handlers.NewAdmissionHandler(ipd, nil)

	router := gin.New()
	SetupHospitalRoutes(router, nil, nil, admissionHandler, nil, nil, nil, nil, nil, nil)
	return router, audit, counter, currentEditInput(patient, admission, billing)
}

func putEdit(t *testing.T, router *gin.Engine, token string, input services.EditInput) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(input)
	require.NoError(t, err)

	target := "/admissions/adm-1"
	if token != "" {
		target += "?accessToken=" + url.QueryEscape(token)
	}
	req := httptest.NewRequest(http.MethodPut, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEditAdmissionRoutePersistsTokenActor(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")
	router, audit, _, input := newEditRouter()

	token, err := utils.GenerateAccessToken("reception1", "Receptionist")
	require.NoError(t, err)

	input.Deposit = 3500
	w := putEdit(t, router, token, input)

	require.Equal(t, 200, w.Code, w.Body.String())
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "reception1", audit.entries[0].EditedBy)
}

func TestEditAdmissionRouteRequiresToken(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")
	router, audit, counter, input := newEditRouter()

	input.Deposit = 3500
	w := putEdit(t, router, "", input)

	assert.Equal(t, 401, w.Code)
	assert.Zero(t, counter.writes)
	assert.Empty(t, audit.entries)
}

func TestEditAdmissionRouteRejectsUnknownPaymentMode(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")
	router, audit, counter, input := newEditRouter()

	token, err := utils.GenerateAccessToken("reception1", "Receptionist")
	require.NoError(t, err)

	// A mode outside the cash/online split must be rejected up front;
	// letting it through would subtract the old deposit from the day's
	// summary with nothing added back.
	input.PaymentMode = "card"
	w := putEdit(t, router, token, input)

	assert.Equal(t, 400, w.Code)
	assert.Zero(t, counter.writes)
	assert.Empty(t, audit.entries)
}
