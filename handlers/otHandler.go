package handlers

import (
	"GautamiHMS/models"
	"GautamiHMS/services"
	"GautamiHMS/utils"
	"time"

	"github.com/gin-gonic/gin"
)

type OTHandler struct {
	service *services.OTService
}

func NewOTHandler(service *services.OTService) *OTHandler {
	return &OTHandler{service: service}
}

func (h *OTHandler) CreateBooking(c *gin.Context) {
	var booking models.OTBooking
	if err := c.ShouldBindJSON(&booking); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateOTBooking(booking); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c.Request.Context(), &booking); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, booking)
}

func (h *OTHandler) GetBookingByID(c *gin.Context) {
	id := c.Param("booking_id")
	booking, err := h.service.GetByID(c, id)
	if err != nil {
		c.JSON(404, gin.H{"error": "OT booking not found"})
		return
	}
	c.JSON(200, booking)
}

func (h *OTHandler) ListBookingsByDate(c *gin.Context) {
	dateKey := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	bookings, err := h.service.ListByDate(c, dateKey)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, bookings)
}

func (h *OTHandler) UpdateBooking(c *gin.Context) {
	id := c.Param("booking_id")
	var booking models.OTBooking
	if err := c.ShouldBindJSON(&booking); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	booking.ID = id
	if err := h.service.Update(c.Request.Context(), &booking); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, booking)
}

func (h *OTHandler) CancelBooking(c *gin.Context) {
	id := c.Param("booking_id")
	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "OT booking cancelled"})
}
