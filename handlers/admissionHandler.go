package handlers

import (
	"GautamiHMS/middlewares"
	"GautamiHMS/models"
	"GautamiHMS/services"
	"GautamiHMS/utils"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

type AdmissionHandler struct {
	ipd   *services.IPDService
	reads *services.AdmissionService
}

func NewAdmissionHandler(ipd *services.IPDService, reads *services.AdmissionService) *AdmissionHandler {
	return &AdmissionHandler{ipd: ipd, reads: reads}
}

func (h *AdmissionHandler) CreateAdmission(c *gin.Context) {
	var input services.AdmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateAdmissionFields(input.PatientID, input.AdmissionDate, input.PaymentMode, input.Deposit); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	admission, err := h.ipd.CreateAdmission(c.Request.Context(), input)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, admission)
}

// EditAdmission applies an edit submission. A submission that changes
// nothing is acknowledged without writing; a failure to record the
// audit entry does not undo the saved edit.
func (h *AdmissionHandler) EditAdmission(c *gin.Context) {
	admissionID := c.Param("admission_id")

	var input services.EditInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateEditFields(input.AdmissionDate, input.PaymentMode, input.Deposit); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidatePatientData(models.Patient{
		Name:    input.PatientName,
		Phone:   input.PatientPhone,
		Gender:  input.Gender,
		Age:     input.Age,
		AgeUnit: input.AgeUnit,
		Address: input.Address,
	}); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	actor, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		actor = ""
	}

	changes, err := h.ipd.EditAdmission(c.Request.Context(), actor, admissionID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoChanges):
			c.JSON(200, gin.H{"message": "No changes detected"})
		case errors.Is(err, services.ErrAdmissionNotFound):
			c.JSON(404, gin.H{"error": "Admission not found"})
		case errors.Is(err, services.ErrAuditLog):
			c.JSON(200, gin.H{"message": "Admission updated, audit entry failed", "changes": changes})
		default:
			c.JSON(500, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(200, gin.H{"message": "Admission updated", "changes": changes})
}

func (h *AdmissionHandler) GetAdmissionByID(c *gin.Context) {
	id := c.Param("admission_id")
	admission, err := h.reads.GetByID(c, id)
	if err != nil {
		c.JSON(404, gin.H{"error": "Admission not found"})
		return
	}
	c.JSON(200, admission)
}

func (h *AdmissionHandler) ListAdmissionsByDate(c *gin.Context) {
	dateKey := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	admissions, err := h.reads.ListByDate(c, dateKey)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, admissions)
}

func (h *AdmissionHandler) DischargeAdmission(c *gin.Context) {
	id := c.Param("admission_id")
	if err := h.ipd.Discharge(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrAdmissionNotFound) {
			c.JSON(404, gin.H{"error": "Admission not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Patient discharged"})
}
