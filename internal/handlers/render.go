package handlers

import (
	"html/template"
	"time"

	"expensetrack/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const flashCookieName = "flash"

// TemplateFuncs is the function map the HTML templates are parsed with.
var TemplateFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"pct": func(d decimal.Decimal) string {
		return d.StringFixed(1)
	},
	"longDate": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"longMonth": func(t time.Time) string {
		return t.Format("January 2006")
	},
	"dateInput": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
	"monthInput": func(t time.Time) string {
		return t.Format("2006-01")
	},
	"add": func(a, b int) int {
		return a + b
	},
}

// setFlash stores a one-shot status message for the next page load.
func setFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookieName, message, 60, "/", "", false, true)
}

// takeFlash reads and clears the pending flash message, if any.
func takeFlash(c *gin.Context) string {
	message, err := c.Cookie(flashCookieName)
	if err != nil {
		return ""
	}
	c.SetCookie(flashCookieName, "", -1, "/", "", false, true)
	return message
}

// basePage assembles the fields every view needs.
func basePage(c *gin.Context) gin.H {
	return gin.H{
		"Categories": domain.Categories(),
		"Flash":      takeFlash(c),
	}
}

// merge folds extra fields into a base page map.
func merge(page gin.H, extra gin.H) gin.H {
	for k, v := range extra {
		page[k] = v
	}
	return page
}
