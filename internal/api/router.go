package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"equipment-maintenance-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router. ipHeader, when set,
// names the proxy header carrying the real client address for rate limiting.
func NewRouter(h *Handler, rateLimitPerSec float64, cacheTTL time.Duration, ipHeader string) *gin.Engine {
	r := gin.Default()

	if rateLimitPerSec <= 0 {
		rateLimitPerSec = 10
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}

	rateLimiter := mw.RateLimiter(rate.Limit(rateLimitPerSec), 5, ipHeader)
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter, mw.Session())
	{
		api.GET("/machines", h.ListMachines)
		api.GET("/machines/:machine_id", h.GetMachine)
		api.POST("/machines", h.CreateMachine)
		api.DELETE("/machines/:machine_id", h.DeleteMachine)

		api.POST("/machines/:machine_id/service-records", h.CreateServiceRecord)
		api.POST("/machines/:machine_id/lubrication-records", h.CreateLubricationRecord)
		api.POST("/machines/:machine_id/tasks", h.CreateTask)
		api.POST("/tasks/:task_id/complete", h.CompleteTask)

		api.POST("/scan", h.Scan)

		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", caching, h.GetVAPIDPublicKey)
	}

	// The scan-a-code view: entering through this group is itself the
	// public-access marker, so responses are cacheable per URI.
	public := r.Group("/api/public")
	public.Use(rateLimiter)
	{
		public.GET("/machines/:machine_id", caching, h.PublicMachine)
	}

	return r
}
