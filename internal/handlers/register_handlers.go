package handlers

import (
	"html/template"
	"net/http"

	"expensetrack/internal/core/services"
	"expensetrack/internal/middleware"
	"expensetrack/internal/platform/config"
	"expensetrack/internal/platform/session"
	"expensetrack/web"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, parsing the embedded
// templates and injecting the service dependencies.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	sessions *session.Manager,
	authService *services.AuthService,
	expenseService *services.ExpenseService,
) error {
	tmpl, err := template.New("").Funcs(TemplateFuncs).ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, cfg, sessions, authService)
	registerExpenseRoutes(r, sessions, expenseService)

	return nil
}

func registerAuthRoutes(r *gin.Engine, cfg *config.Config, sessions *session.Manager, authService *services.AuthService) {
	authHandler := NewAuthHandler(authService, sessions, cfg.IsProduction)

	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
}

func registerExpenseRoutes(r *gin.Engine, sessions *session.Manager, expenseService *services.ExpenseService) {
	expenseHandler := NewExpenseHandler(expenseService)
	exportHandler := NewExportHandler(expenseService)

	protected := r.Group("/", middleware.RequireSession(sessions))

	protected.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/expenses")
	})

	protected.GET("/expenses", expenseHandler.Index)
	protected.GET("/expenses/daily", expenseHandler.Daily)
	protected.GET("/expenses/monthly", expenseHandler.Monthly)
	protected.GET("/expenses/export/monthly-csv", exportHandler.MonthlyCSV)
	protected.GET("/expenses/create", expenseHandler.Create)
	protected.POST("/expenses", expenseHandler.Store)
	protected.GET("/expenses/:id", expenseHandler.Show)
	protected.GET("/expenses/:id/edit", expenseHandler.Edit)
	protected.PUT("/expenses/:id", expenseHandler.Update)
	protected.DELETE("/expenses/:id", expenseHandler.Delete)
	protected.POST("/expenses/:id/restore", expenseHandler.Restore)
}
