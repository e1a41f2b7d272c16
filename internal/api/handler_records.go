package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"equipment-maintenance-backend/internal/model"
	"equipment-maintenance-backend/internal/mw"
)

type serviceRecordRequest struct {
	EquipmentType string   `json:"equipmentType" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Performer     string   `json:"performer"`
	Issues        []string `json:"issues"`
}

// CreateServiceRecord handles POST /api/machines/:machine_id/service-records.
func (h *Handler) CreateServiceRecord(c *gin.Context) {
	var req serviceRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.recorder.RecordService(
		c.Request.Context(),
		mw.SessionFrom(c),
		c.Param("machine_id"),
		model.EquipmentType(req.EquipmentType),
		req.Description,
		req.Performer,
		req.Issues,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

type lubricationRecordRequest struct {
	EquipmentType string     `json:"equipmentType" binding:"required"`
	Notes         string     `json:"notes"`
	Performer     string     `json:"performer"`
	At            *time.Time `json:"at"`
}

// CreateLubricationRecord handles POST /api/machines/:machine_id/lubrication-records.
func (h *Handler) CreateLubricationRecord(c *gin.Context) {
	var req lubricationRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	at := time.Time{}
	if req.At != nil {
		at = *req.At
	}
	record, err := h.recorder.RecordLubrication(
		c.Request.Context(),
		mw.SessionFrom(c),
		c.Param("machine_id"),
		model.EquipmentType(req.EquipmentType),
		req.Notes,
		req.Performer,
		at,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}
