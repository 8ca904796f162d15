package middleware

import (
	"net/http"

	"expensetrack/internal/platform/session"

	"github.com/gin-gonic/gin"
)

// RequireSession gates a route group behind the session cookie. An
// unauthenticated request is redirected to /login; the originally-requested
// URL is captured in a short-lived cookie so a successful login can return
// the user where they were headed.
func RequireSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || sessions.ValidateToken(token) != nil {
			logger := GetLoggerFromCtx(c.Request.Context())
			logger.Info("Unauthenticated request, redirecting to login")

			// Only capture idempotent navigations as the post-login target.
			if c.Request.Method == http.MethodGet {
				c.SetCookie(session.IntendedCookieName, c.Request.URL.RequestURI(), 300, "/", "", false, true)
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
