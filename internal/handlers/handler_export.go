package handlers

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"expensetrack/internal/core/services"
	"expensetrack/internal/core/validation"
	"expensetrack/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ExportHandler streams aggregated views as CSV downloads.
type ExportHandler struct {
	service *services.ExpenseService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(service *services.ExpenseService) *ExportHandler {
	return &ExportHandler{service: service}
}

// csvFileSlug turns a category name into a filename-safe token, e.g.
// "Clothing & Footwear" becomes "clothing_footwear".
func csvFileSlug(category string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(category) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}

// MonthlyCSV exports the month view as a CSV file. The rows match the
// monthly page's content and order, including any category filter.
func (h *ExportHandler) MonthlyCSV(c *gin.Context) {
	page, err := h.service.MonthlyView(c.Request.Context(), c.Query("month"), c.Query("category"))
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("CSV export failed", slog.String("error", err.Error()))
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	filename := fmt.Sprintf("monthly_expenses_%s", page.Month.Format("2006_01"))
	if page.SelectedCategory != "" {
		filename += "_" + csvFileSlug(page.SelectedCategory)
	}
	filename += ".csv"

	c.Header("Content-Type", "text/csv; charset=UTF-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Description", "Amount", "Category", "Date"})
	for _, e := range page.Expenses {
		_ = w.Write([]string{
			e.Description,
			e.Amount.StringFixed(2),
			string(e.Category),
			e.Date.Format(validation.DateLayout),
		})
	}
	w.Flush()
}
