package middlewares

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inamrestro/restaurant-app/utils"
)

// SessionToken returns the token from the session cookie or, for API
// clients, from an Authorization: Bearer header.
func SessionToken(c *gin.Context) string {
	if token, err := c.Cookie(utils.SessionCookie); err == nil && token != "" {
		return token
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// Identity attaches the request's user, if any. It never rejects.
func Identity(sm *utils.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := SessionToken(c); token != "" {
			claims, err := sm.Parse(token)
			if err == nil {
				utils.SetIdentity(c, claims.Identity())
			} else {
				utils.InfoLogger.Debugf("ignoring session token: %v", err)
			}
		}
		c.Next()
	}
}

// LoginRequired sends anonymous users to the login page.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.CurrentIdentity(c); !ok {
			utils.Redirect(c, "/login/?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// StaffRequired guards the back office.
func StaffRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := utils.CurrentIdentity(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
			c.Abort()
			return
		}
		if !id.IsStaff {
			utils.RespondError(c, http.StatusForbidden, errors.New("staff access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
