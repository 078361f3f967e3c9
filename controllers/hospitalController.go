package controllers

import (
	"GautamiHMS/handlers"
	"GautamiHMS/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupHospitalRoutes wires the front-desk routes: patient registry,
// doctors, the IPD admission flow, beds, billing, OT bookings, daily
// summaries and the change log.
func SetupHospitalRoutes(router *gin.Engine, patientHandler *handlers.PatientHandler, doctorHandler *handlers.DoctorHandler, admissionHandler *handlers.AdmissionHandler, bedHandler *handlers.BedHandler, billingHandler *handlers.BillingHandler, otHandler *handlers.OTHandler, summaryHandler *handlers.SummaryHandler, changeLogHandler *handlers.ChangeLogHandler, invoiceHandler *handlers.InvoiceHandler) {
	router.POST("/patients", patientHandler.RegisterPatient)
	router.GET("/patients/:uhid", patientHandler.GetPatientByUHID)
	router.PUT("/patients/:uhid", patientHandler.UpdatePatient)
	router.DELETE("/patients/:uhid", patientHandler.DeletePatient)
	router.GET("/patients", patientHandler.GetAllPatients)

	router.POST("/doctors", doctorHandler.CreateDoctor)
	router.GET("/doctors/:doctor_id", doctorHandler.GetDoctorByID)
	router.PUT("/doctors/:doctor_id", doctorHandler.UpdateDoctor)
	router.DELETE("/doctors/:doctor_id", doctorHandler.DeleteDoctor)
	router.GET("/doctors", doctorHandler.GetAllDoctors)

	router.POST("/admissions", admissionHandler.CreateAdmission)
	router.GET("/admissions", admissionHandler.ListAdmissionsByDate)
	router.GET("/admissions/:admission_id", admissionHandler.GetAdmissionByID)
	// Edits are audited, so the editor's identity must come off a
	// validated token.
	router.PUT("/admissions/:admission_id", middlewares.TokenAuthMiddleware(), admissionHandler.EditAdmission)
	router.POST("/admissions/:admission_id/discharge", admissionHandler.DischargeAdmission)

	router.GET("/wards", bedHandler.ListWards)
	router.GET("/wards/:ward_id/beds", bedHandler.ListBedsByWard)
	router.GET("/beds/:bed_id", bedHandler.GetBedByID)

	router.GET("/admissions/:admission_id/billing", billingHandler.GetBillingByAdmission)
	router.POST("/billings/:billing_id/payments", billingHandler.AddPayment)
	router.POST("/admissions/:admission_id/invoice", invoiceHandler.GenerateInvoice)

	router.POST("/ot-bookings", otHandler.CreateBooking)
	router.GET("/ot-bookings", otHandler.ListBookingsByDate)
	router.GET("/ot-bookings/:booking_id", otHandler.GetBookingByID)
	router.PUT("/ot-bookings/:booking_id", otHandler.UpdateBooking)
	router.POST("/ot-bookings/:booking_id/cancel", otHandler.CancelBooking)

	router.GET("/summaries/ipd", summaryHandler.GetIPDSummary)
	router.GET("/summaries/ot", summaryHandler.GetOTSummary)

	router.GET("/admissions/:admission_id/changes", changeLogHandler.ListByAdmission)
	router.GET("/changes", changeLogHandler.ListRecent)
}
