package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"expensetrack/internal/apperrors"
	"expensetrack/internal/core/services"
	"expensetrack/internal/dto"
	"expensetrack/internal/middleware"
	"expensetrack/internal/platform/session"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// AuthHandler serves the login form and manages the session cookie.
type AuthHandler struct {
	auth          *services.AuthService
	sessions      *session.Manager
	secureCookies bool
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *services.AuthService, sessions *session.Manager, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, secureCookies: secureCookies}
}

func (h *AuthHandler) isAuthenticated(c *gin.Context) bool {
	token, err := c.Cookie(session.CookieName)
	return err == nil && h.sessions.ValidateToken(token) == nil
}

// ShowLogin renders the login form, or redirects to the list view when a
// valid session already exists.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if h.isAuthenticated(c) {
		c.Redirect(http.StatusFound, "/expenses")
		return
	}
	c.HTML(http.StatusOK, "auth/login", merge(basePage(c), gin.H{
		"Errors":   map[string]string{},
		"Username": "",
	}))
}

// loginFormErrors maps binding failures onto per-field messages.
func loginFormErrors(err error) map[string]string {
	messages := map[string]string{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				messages[field] = "The " + field + " field is required."
			case "max":
				messages[field] = "The " + field + " field is too long."
			}
		}
	}
	if len(messages) == 0 {
		messages["username"] = "Invalid login request."
	}
	return messages
}

// Login validates credentials under rate limiting and establishes the
// session. Failures re-render the form with the error attached to the
// username field, matching the reference behavior.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusUnprocessableEntity, "auth/login", merge(basePage(c), gin.H{
			"Errors":   loginFormErrors(err),
			"Username": c.PostForm("username"),
		}))
		return
	}

	err := h.auth.Login(c.Request.Context(), form.Username, form.Password, c.ClientIP())
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())

		var rateErr *apperrors.RateLimitError
		switch {
		case errors.As(err, &rateErr):
			message := fmt.Sprintf("Too many login attempts. Please try again in %d seconds.", rateErr.RetryAfterSeconds)
			if rateErr.Key == "ip" {
				message = fmt.Sprintf("Too many login attempts from this IP. Please try again in %d seconds.", rateErr.RetryAfterSeconds)
			}
			logger.Warn("Login attempt rate limited", slog.String("key", rateErr.Key))
			c.HTML(http.StatusUnprocessableEntity, "auth/login", merge(basePage(c), gin.H{
				"Errors":   map[string]string{"username": message},
				"Username": form.Username,
			}))
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			c.HTML(http.StatusUnprocessableEntity, "auth/login", merge(basePage(c), gin.H{
				"Errors":   map[string]string{"username": "Invalid username or password."},
				"Username": form.Username,
			}))
		default:
			logger.Error("Login check failed", slog.String("error", err.Error()))
			c.String(http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	token, err := h.sessions.IssueToken()
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to issue session token", slog.String("error", err.Error()))
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	maxAge := int(h.sessions.Duration().Seconds())
	c.SetCookie(session.CookieName, token, maxAge, "/", "", h.secureCookies, true)

	// Return the user to the page that triggered the login, if one was
	// captured.
	target := "/expenses"
	if intended, err := c.Cookie(session.IntendedCookieName); err == nil && strings.HasPrefix(intended, "/") {
		target = intended
		c.SetCookie(session.IntendedCookieName, "", -1, "/", "", false, true)
	}
	c.Redirect(http.StatusFound, target)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(session.CookieName, "", -1, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusFound, "/login")
}
