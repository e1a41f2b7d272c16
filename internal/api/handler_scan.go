package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"equipment-maintenance-backend/internal/access"
	"equipment-maintenance-backend/internal/mw"
)

// Scan handles POST /api/scan: the body is the raw scanned payload. A valid
// code grants the caller public access to the identified machine; a payload
// carrying the descriptive fields must match the machine exactly.
func (h *Handler) Scan(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable payload"})
		return
	}

	payload, err := access.ParseScanPayload(raw)
	if err != nil {
		respondError(c, err)
		return
	}

	if payload.Name != "" || payload.Model != "" || payload.SerialNumber != "" {
		m, err := access.ValidateScan(payload, h.store)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"access": string(access.KindPublicAccess), "machine": summarize(m)})
		return
	}

	session, err := access.GrantPublic(mw.SessionFrom(c), payload, h.store)
	if err != nil {
		respondError(c, err)
		return
	}
	m, err := h.store.Machine(payload.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": string(session.Kind), "machine": summarize(m)})
}
