package api

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"equipment-maintenance-backend/internal/model"
	"equipment-maintenance-backend/internal/recorder"
	"equipment-maintenance-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    *store.Store
	recorder *recorder.Recorder
	db       *gorm.DB
	webpush  *webpush.Options
}

// NewHandler creates a new API handler. db is the remote store connection,
// used for push subscriptions.
func NewHandler(s *store.Store, r *recorder.Recorder, db *gorm.DB, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:    s,
		recorder: r,
		db:       db,
		webpush:  webpushOptions,
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		validation  *model.ValidationError
		notFound    *model.NotFoundError
		permission  *model.PermissionError
		persistence *model.PersistenceError
	)
	switch {
	case errors.As(err, &validation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &permission):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &persistence):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
