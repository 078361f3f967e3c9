package handlers

import (
	"GautamiHMS/services"
	"time"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	service *services.SummaryService
}

func NewSummaryHandler(service *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// GetIPDSummary returns the day's admission counters. Days with no
// activity come back zero-valued rather than 404.
func (h *SummaryHandler) GetIPDSummary(c *gin.Context) {
	dateKey := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	summary, err := h.service.GetIPD(c.Request.Context(), dateKey)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, summary)
}

func (h *SummaryHandler) GetOTSummary(c *gin.Context) {
	dateKey := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	summary, err := h.service.GetOT(c.Request.Context(), dateKey)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, summary)
}
