package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"equipment-maintenance-backend/internal/model"
	"equipment-maintenance-backend/internal/mw"
)

type createTaskRequest struct {
	Title         string    `json:"title" binding:"required"`
	EquipmentType string    `json:"equipmentType"`
	DueDate       time.Time `json:"dueDate" binding:"required"`
}

// CreateTask handles POST /api/machines/:machine_id/tasks.
func (h *Handler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.recorder.AddTask(
		c.Request.Context(),
		mw.SessionFrom(c),
		c.Param("machine_id"),
		req.Title,
		model.EquipmentType(req.EquipmentType),
		req.DueDate,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

type completeTaskRequest struct {
	CompletedBy string `json:"completedBy"`
}

// CompleteTask handles POST /api/tasks/:task_id/complete.
func (h *Handler) CompleteTask(c *gin.Context) {
	var req completeTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.recorder.CompleteTask(c.Request.Context(), mw.SessionFrom(c), c.Param("task_id"), req.CompletedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
