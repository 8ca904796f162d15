package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"expensetrack/internal/apperrors"
	"expensetrack/internal/core/services"
	"expensetrack/internal/core/validation"
	"expensetrack/internal/dto"
	"expensetrack/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler serves the expense CRUD and aggregation views.
type ExpenseHandler struct {
	service *services.ExpenseService
}

// NewExpenseHandler creates an ExpenseHandler.
func NewExpenseHandler(service *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

func toInput(form dto.ExpenseForm) validation.ExpenseInput {
	return validation.ExpenseInput{
		Description: form.Description,
		Amount:      form.Amount,
		Category:    form.Category,
		Date:        form.Date,
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func (h *ExpenseHandler) renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "errors/404", basePage(c))
}

func (h *ExpenseHandler) renderServerError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Error("Request failed", slog.String("error", err.Error()))
	c.String(http.StatusInternalServerError, "Internal server error")
}

// Index renders the paginated list view. An invalid category query value is
// ignored rather than rejected, so the unfiltered set comes back.
func (h *ExpenseHandler) Index(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	list, err := h.service.ListExpenses(c.Request.Context(), c.Query("category"), page)
	if err != nil {
		h.renderServerError(c, err)
		return
	}
	c.HTML(http.StatusOK, "expenses/index", merge(basePage(c), gin.H{
		"List": list,
	}))
}

// Daily renders all expenses for one calendar day with a category
// breakdown. Defaults to today when the date is absent or unparseable.
func (h *ExpenseHandler) Daily(c *gin.Context) {
	page, err := h.service.DailyView(c.Request.Context(), c.Query("date"), c.Query("category"))
	if err != nil {
		h.renderServerError(c, err)
		return
	}
	c.HTML(http.StatusOK, "expenses/daily", merge(basePage(c), gin.H{
		"Daily": page,
	}))
}

// Monthly renders the month view with category and daily breakdowns.
// Defaults to the current month when the month is absent or unparseable.
func (h *ExpenseHandler) Monthly(c *gin.Context) {
	page, err := h.service.MonthlyView(c.Request.Context(), c.Query("month"), c.Query("category"))
	if err != nil {
		h.renderServerError(c, err)
		return
	}
	c.HTML(http.StatusOK, "expenses/monthly", merge(basePage(c), gin.H{
		"Monthly": page,
	}))
}

// Create renders the new-expense form.
func (h *ExpenseHandler) Create(c *gin.Context) {
	c.HTML(http.StatusOK, "expenses/create", merge(basePage(c), gin.H{
		"Form":   dto.ExpenseForm{Date: time.Now().Format(validation.DateLayout)},
		"Errors": apperrors.ValidationErrors{},
	}))
}

// Store creates an expense from the submitted form. Validation failures
// re-render the form with prior input preserved and every field error
// annotated.
func (h *ExpenseHandler) Store(c *gin.Context) {
	var form dto.ExpenseForm
	// Bind errors are deliberately dropped: absent fields arrive as empty
	// strings and the validation layer reports every field in one pass.
	_ = c.ShouldBind(&form)

	_, err := h.service.CreateExpense(c.Request.Context(), toInput(form))
	if err != nil {
		var validationErrs apperrors.ValidationErrors
		if errors.As(err, &validationErrs) {
			c.HTML(http.StatusUnprocessableEntity, "expenses/create", merge(basePage(c), gin.H{
				"Form":   form,
				"Errors": validationErrs,
			}))
			return
		}
		h.renderServerError(c, err)
		return
	}

	setFlash(c, "Expense created successfully.")
	c.Redirect(http.StatusFound, "/expenses")
}

// Show renders one expense's detail view; 404 for missing or soft-deleted
// records.
func (h *ExpenseHandler) Show(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.renderNotFound(c)
		return
	}
	expense, err := h.service.GetExpense(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c, err)
		return
	}
	c.HTML(http.StatusOK, "expenses/show", merge(basePage(c), gin.H{
		"Expense": expense,
	}))
}

// Edit renders the edit form prefilled with the stored record.
func (h *ExpenseHandler) Edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.renderNotFound(c)
		return
	}
	expense, err := h.service.GetExpense(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c, err)
		return
	}
	c.HTML(http.StatusOK, "expenses/edit", merge(basePage(c), gin.H{
		"ID": expense.ID,
		"Form": dto.ExpenseForm{
			Description: expense.Description,
			Amount:      expense.Amount.StringFixed(2),
			Category:    string(expense.Category),
			Date:        expense.Date.Format(validation.DateLayout),
		},
		"Errors": apperrors.ValidationErrors{},
	}))
}

// Update replaces all four editable fields of an expense.
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.renderNotFound(c)
		return
	}
	var form dto.ExpenseForm
	// Same as Store: validation owns all field-level error reporting.
	_ = c.ShouldBind(&form)

	_, err := h.service.UpdateExpense(c.Request.Context(), id, toInput(form))
	if err != nil {
		var validationErrs apperrors.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			c.HTML(http.StatusUnprocessableEntity, "expenses/edit", merge(basePage(c), gin.H{
				"ID":     id,
				"Form":   form,
				"Errors": validationErrs,
			}))
		case errors.Is(err, apperrors.ErrNotFound):
			h.renderNotFound(c)
		default:
			h.renderServerError(c, err)
		}
		return
	}

	setFlash(c, "Expense updated successfully.")
	c.Redirect(http.StatusFound, "/expenses")
}

// Delete soft-deletes an expense; the record stays restorable.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.renderNotFound(c)
		return
	}
	if err := h.service.SoftDeleteExpense(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c, err)
		return
	}
	setFlash(c, "Expense deleted successfully.")
	c.Redirect(http.StatusFound, "/expenses")
}

// Restore reverses a soft delete.
func (h *ExpenseHandler) Restore(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.renderNotFound(c)
		return
	}
	if err := h.service.RestoreExpense(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c, err)
		return
	}
	setFlash(c, "Expense restored successfully.")
	c.Redirect(http.StatusFound, "/expenses")
}
