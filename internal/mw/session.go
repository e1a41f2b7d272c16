package mw

import (
	"github.com/gin-gonic/gin"

	"equipment-maintenance-backend/internal/access"
)

// sessionKey is the gin context key the resolved session lives under.
const sessionKey = "session"

// PublicAccessMarker is the query parameter whose presence grants
// public access for the current view.
const PublicAccessMarker = "public"

// Session resolves the caller's identity for each request: X-User/X-Role
// headers make an authenticated session, the public marker a scan-granted
// one, anything else stays anonymous.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.GetHeader("X-User")
		role := access.Role(c.GetHeader("X-Role"))

		switch {
		case user != "" && role.Valid():
			c.Set(sessionKey, access.Authenticated(user, role))
		case c.Query(PublicAccessMarker) != "":
			c.Set(sessionKey, access.Public())
		default:
			c.Set(sessionKey, access.Anonymous())
		}
		c.Next()
	}
}

// SessionFrom returns the session resolved for this request.
func SessionFrom(c *gin.Context) access.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(access.Session); ok {
			return s
		}
	}
	return access.Anonymous()
}
