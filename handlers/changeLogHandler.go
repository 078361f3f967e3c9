package handlers

import (
	"GautamiHMS/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ChangeLogHandler struct {
	service *services.ChangeLogService
}

func NewChangeLogHandler(service *services.ChangeLogService) *ChangeLogHandler {
	return &ChangeLogHandler{service: service}
}

func (h *ChangeLogHandler) ListByAdmission(c *gin.Context) {
	admissionID := c.Param("admission_id")
	entries, err := h.service.ListByAdmission(c.Request.Context(), admissionID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, entries)
}

func (h *ChangeLogHandler) ListRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := h.service.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, entries)
}
