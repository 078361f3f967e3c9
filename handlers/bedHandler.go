package handlers

import (
	"GautamiHMS/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type BedHandler struct {
	service *services.BedService
}

func NewBedHandler(service *services.BedService) *BedHandler {
	return &BedHandler{service: service}
}

func (h *BedHandler) ListWards(c *gin.Context) {
	wards, err := h.service.ListWards(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, wards)
}

// ListBedsByWard returns the bed board for one ward, current status
// included.
func (h *BedHandler) ListBedsByWard(c *gin.Context) {
	wardID := c.Param("ward_id")
	beds, err := h.service.ListByWard(c, wardID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, beds)
}

func (h *BedHandler) GetBedByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("bed_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid bed ID"})
		return
	}
	bed, err := h.service.GetByID(c, uint(id))
	if err != nil {
		c.JSON(404, gin.H{"error": "Bed not found"})
		return
	}
	c.JSON(200, bed)
}
