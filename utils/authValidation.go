package utils

import (
	"GautamiHMS/models"
	"errors"
	"log"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
)

var phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)

// ValidateUserData validates staff account data using ozzo-validation.
func ValidateUserData(user models.User) error {
	err := validation.ValidateStruct(&user,
		validation.Field(&user.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&user.Email, validation.Required, is.Email),
		validation.Field(&user.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidatePatientData validates a registration or demographics update
// before any write is attempted.
func ValidatePatientData(patient models.Patient) error {
	err := validation.ValidateStruct(&patient,
		validation.Field(&patient.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&patient.Phone, validation.Required, validation.Match(phoneRegex).Error("phone must be 10 digits")),
		validation.Field(&patient.Gender, validation.Required, validation.In("Male", "Female", "Other")),
		validation.Field(&patient.Age, validation.Min(0), validation.Max(130)),
		validation.Field(&patient.AgeUnit, validation.In("years", "months", "days")),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateAdmissionFields validates the fields of an admission booking
// that gate any I/O. A positive deposit must carry a recognised
// payment mode or the daily summary would never count it.
func ValidateAdmissionFields(patientID, admissionDate, paymentMode string, deposit float64) error {
	err := validation.Errors{
		"patient_id":     validation.Validate(patientID, validation.Required),
		"admission_date": validation.Validate(admissionDate, validation.Required),
		"payment_mode": validation.Validate(paymentMode,
			validation.Required.When(deposit > 0).Error("payment mode is required for a deposit"),
			validation.In("", models.PaymentCash, models.PaymentOnline)),
		"deposit": validation.Validate(deposit, validation.Min(0.0)),
	}.Filter()
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateEditFields validates an admission edit submission before any
// read or write happens. The same payment-mode rule as booking
// applies: an unrecognised mode would make the summary adjustment
// treat the new deposit as nonexistent and drain the day's totals.
func ValidateEditFields(admissionDate, paymentMode string, deposit float64) error {
	err := validation.Errors{
		"admission_date": validation.Validate(admissionDate, validation.Required),
		"payment_mode": validation.Validate(paymentMode,
			validation.Required.When(deposit > 0).Error("payment mode is required for a deposit"),
			validation.In("", models.PaymentCash, models.PaymentOnline)),
		"deposit": validation.Validate(deposit, validation.Min(0.0)),
	}.Filter()
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateOTBooking validates an OT booking payload.
func ValidateOTBooking(booking models.OTBooking) error {
	err := validation.ValidateStruct(&booking,
		validation.Field(&booking.PatientID, validation.Required),
		validation.Field(&booking.DateKey, validation.Required),
		validation.Field(&booking.Procedure, validation.Required, validation.Length(2, 200)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidatePasswordReset validates the reset code and new password.
func ValidatePasswordReset(resetCode, newPassword string) error {
	err := validation.Errors{
		"resetCode": validation.Validate(resetCode, validation.Required.Error("invalid reset code")),
		"password":  validation.Validate(newPassword, validation.Required, validation.By(validatePassword)),
	}.Filter()
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	var (
		lowercaseRegex = regexp.MustCompile(`[a-z]`)
		uppercaseRegex = regexp.MustCompile(`[A-Z]`)
		digitRegex     = regexp.MustCompile(`\d`)
		specialRegex   = regexp.MustCompile(`[@$!%*?&]`)
	)

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}

	return nil
}
