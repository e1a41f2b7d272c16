package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"equipment-maintenance-backend/internal/access"
	"equipment-maintenance-backend/internal/model"
	"equipment-maintenance-backend/internal/mw"
)

// machineSummary is the flattened list-view shape of a machine.
type machineSummary struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Model        string              `json:"model"`
	SerialNumber string              `json:"serialNumber"`
	Status       model.MachineStatus `json:"status"`
	Location     string              `json:"location"`
	Equipment    []model.Equipment   `json:"equipment"`
	OpenTasks    int                 `json:"openTasks"`
}

func summarize(m model.Machine) machineSummary {
	open := 0
	for _, t := range m.Tasks {
		if t.Status != model.TaskCompleted {
			open++
		}
	}
	return machineSummary{
		ID:           m.ID,
		Name:         m.Name,
		Model:        m.Model,
		SerialNumber: m.SerialNumber,
		Status:       m.Status,
		Location:     m.Location,
		Equipment:    m.Equipment,
		OpenTasks:    open,
	}
}

// ListMachines handles GET /api/machines.
func (h *Handler) ListMachines(c *gin.Context) {
	session := mw.SessionFrom(c)
	if !access.CanViewMachine(session) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "read access requires a login or a valid machine code"})
		return
	}

	machines := h.store.Machines()
	summaries := make([]machineSummary, 0, len(machines))
	for _, m := range machines {
		summaries = append(summaries, summarize(m))
	}
	c.JSON(http.StatusOK, summaries)
}

// GetMachine handles GET /api/machines/:machine_id.
func (h *Handler) GetMachine(c *gin.Context) {
	session := mw.SessionFrom(c)
	if !access.CanViewMachine(session) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "read access requires a login or a valid machine code"})
		return
	}

	m, err := h.store.Machine(c.Param("machine_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type createMachineRequest struct {
	Name            string            `json:"name" binding:"required"`
	Model           string            `json:"model"`
	SerialNumber    string            `json:"serialNumber" binding:"required"`
	Location        string            `json:"location"`
	Equipment       []model.Equipment `json:"equipment"`
	EditPermissions []string          `json:"editPermissions"`
}

// CreateMachine handles POST /api/machines.
func (h *Handler) CreateMachine(c *gin.Context) {
	var req createMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.recorder.AddMachine(c.Request.Context(), mw.SessionFrom(c), model.Machine{
		Name:            req.Name,
		Model:           req.Model,
		SerialNumber:    req.SerialNumber,
		Location:        req.Location,
		Equipment:       req.Equipment,
		EditPermissions: req.EditPermissions,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// DeleteMachine handles DELETE /api/machines/:machine_id. The machine's
// history goes with it.
func (h *Handler) DeleteMachine(c *gin.Context) {
	err := h.recorder.DeleteMachine(c.Request.Context(), mw.SessionFrom(c), c.Param("machine_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PublicMachine handles GET /api/public/machines/:machine_id, the
// scan-a-code view. Entering through this route is itself the public-access
// marker.
func (h *Handler) PublicMachine(c *gin.Context) {
	m, err := h.store.Machine(c.Param("machine_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summarize(m))
}
