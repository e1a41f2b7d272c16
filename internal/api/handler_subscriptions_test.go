package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPutSubscriptionRejectsInvalidBody(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/subscriptions",
		map[string]any{"endpoint": "https://push.example/abc"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "p256dh and auth are required")
}

func TestGetSubscriptionRequiresEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/subscriptions", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVAPIDKeyUnconfigured(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/vapid_public_key", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
