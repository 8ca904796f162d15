package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"expensetrack/internal/apperrors"
	"expensetrack/internal/core/domain"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates (HTML date inputs).
const DateLayout = "2006-01-02"

// ExpenseInput is a candidate record as submitted: four raw strings.
type ExpenseInput struct {
	Description string
	Amount      string
	Category    string
	Date        string
}

// NormalizedExpense is a validated, normalized candidate ready for the
// repository. Amount carries exactly two fractional digits (half-up).
type NormalizedExpense struct {
	Description string
	Amount      decimal.Decimal
	Category    domain.Category
	Date        time.Time
}

// fieldState holds the raw value plus whatever parsing already succeeded
// for the field under evaluation.
type fieldState struct {
	raw    string
	amount decimal.Decimal
	date   time.Time
	now    time.Time
}

// ValidateExpense evaluates the full rule set against input. now supplies
// "today" for the future-date check. On success it returns the normalized
// record; on failure a field-keyed error set. It never partially applies:
// either all fields normalize or only errors come back.
func ValidateExpense(input ExpenseInput, now time.Time) (*NormalizedExpense, apperrors.ValidationErrors) {
	raw := map[string]string{
		FieldDescription: strings.TrimSpace(input.Description),
		FieldAmount:      strings.TrimSpace(input.Amount),
		FieldCategory:    input.Category,
		FieldDate:        strings.TrimSpace(input.Date),
	}

	errs := apperrors.ValidationErrors{}
	states := make(map[string]*fieldState, len(raw))

	for field, rules := range expenseRules {
		state := &fieldState{raw: raw[field], now: now}
		states[field] = state
		for _, rule := range rules {
			if !check(rule.Kind, state) {
				errs[field] = rule.Message
				break
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &NormalizedExpense{
		Description: raw[FieldDescription],
		Amount:      states[FieldAmount].amount.Round(2),
		Category:    domain.Category(raw[FieldCategory]),
		Date:        domain.DateOnly(states[FieldDate].date),
	}, nil
}

// check evaluates one rule kind against the field state, recording parse
// results for later rules in the same field's chain.
func check(kind RuleKind, s *fieldState) bool {
	switch kind {
	case Required:
		return s.raw != ""
	case MaxLength:
		return utf8.RuneCountInString(s.raw) <= domain.MaxDescriptionLength
	case Numeric:
		amount, err := decimal.NewFromString(s.raw)
		if err != nil {
			return false
		}
		s.amount = amount
		return true
	case MinAmount:
		return s.amount.GreaterThanOrEqual(domain.MinAmount)
	case MaxAmount:
		return s.amount.LessThanOrEqual(domain.MaxAmount)
	case InCategories:
		return domain.IsValidCategory(s.raw)
	case ValidDate:
		date, err := time.Parse(DateLayout, s.raw)
		if err != nil {
			return false
		}
		s.date = date
		return true
	case NotFuture:
		return !s.date.After(domain.DateOnly(s.now))
	default:
		return false
	}
}
