package handlers

import (
	"GautamiHMS/services"
	"GautamiHMS/utils"
	"fmt"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	admissions *services.AdmissionService
	billings   *services.BillingService
}

func NewInvoiceHandler(admissions *services.AdmissionService, billings *services.BillingService) *InvoiceHandler {
	return &InvoiceHandler{admissions: admissions, billings: billings}
}

type invoiceRequest struct {
	Lines []utils.InvoiceLine `json:"lines"`
}

// GenerateInvoice assembles the bill document for an admission. The
// first call issues a bill number from the sequence; repeat calls
// reuse it. The response carries the download filename in the
// Content-Disposition header.
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	admissionID := c.Param("admission_id")

	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	admission, err := h.admissions.GetByID(ctx, admissionID)
	if err != nil || admission == nil {
		c.JSON(404, gin.H{"error": "Admission not found"})
		return
	}

	billing, err := h.billings.GetByAdmission(ctx, admissionID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	if billing != nil && billing.BillNumber == "" {
		billNumber, err := h.billings.IssueBillNumber(ctx, billing.ID)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		billing.BillNumber = billNumber
	}

	invoice := utils.BuildInvoice(admission, billing, req.Lines)

	billNumber := ""
	if billing != nil {
		billNumber = billing.BillNumber
	}
	filename := utils.InvoiceFilename(admission.PatientName, admission.DateKey, billNumber)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.JSON(200, invoice)
}
