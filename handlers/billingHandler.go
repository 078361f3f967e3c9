package handlers

import (
	"GautamiHMS/models"
	"GautamiHMS/services"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	service *services.BillingService
}

func NewBillingHandler(service *services.BillingService) *BillingHandler {
	return &BillingHandler{service: service}
}

func (h *BillingHandler) GetBillingByAdmission(c *gin.Context) {
	admissionID := c.Param("admission_id")
	billing, err := h.service.GetByAdmission(c, admissionID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if billing == nil {
		c.JSON(404, gin.H{"error": "Billing not found"})
		return
	}
	c.JSON(200, billing)
}

func (h *BillingHandler) AddPayment(c *gin.Context) {
	billingID := c.Param("billing_id")
	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if payment.Amount <= 0 {
		c.JSON(400, gin.H{"error": "Payment amount must be positive"})
		return
	}
	if err := h.service.AddPayment(c.Request.Context(), billingID, &payment); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, payment)
}
