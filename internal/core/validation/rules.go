// Package validation checks raw expense form input against a typed,
// enumerated rule set. Rules are data, not code paths: each field carries an
// ordered list of rule kinds evaluated by a single generic validator. All
// four fields are checked independently and every applicable error is
// reported together, so the caller can redisplay a fully annotated form in
// one round trip.
package validation

// RuleKind enumerates the constraint kinds a field rule can carry.
type RuleKind int

const (
	// Required fails when the trimmed raw value is empty.
	Required RuleKind = iota
	// MaxLength fails when the value exceeds MaxDescriptionLength runes.
	MaxLength
	// Numeric fails when the value is not parseable as a decimal.
	Numeric
	// MinAmount fails when the parsed amount is below the floor.
	MinAmount
	// MaxAmount fails when the parsed amount is above the ceiling.
	MaxAmount
	// InCategories fails when the value is not one of the fixed labels.
	InCategories
	// ValidDate fails when the value is not a parseable calendar date.
	ValidDate
	// NotFuture fails when the date is strictly after the current date.
	NotFuture
)

// Rule pairs a constraint kind with the message shown when it fails.
type Rule struct {
	Kind    RuleKind
	Message string
}

// Field names used as keys in the returned error set.
const (
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldDate        = "date"
)

// expenseRules is the rule set applied to every expense write. Rules within
// a field are evaluated in order and stop at that field's first failure;
// fields never short-circuit each other.
var expenseRules = map[string][]Rule{
	FieldDescription: {
		{Kind: Required, Message: "Description is required."},
		{Kind: MaxLength, Message: "Description cannot exceed 255 characters."},
	},
	FieldAmount: {
		{Kind: Required, Message: "Amount is required."},
		{Kind: Numeric, Message: "Amount must be a number."},
		{Kind: MinAmount, Message: "Amount must be at least $0.01."},
		{Kind: MaxAmount, Message: "Amount cannot exceed $999,999.99."},
	},
	FieldCategory: {
		{Kind: Required, Message: "Category is required."},
		{Kind: InCategories, Message: "Invalid category selected."},
	},
	FieldDate: {
		{Kind: Required, Message: "Date is required."},
		{Kind: ValidDate, Message: "Date is not a valid date."},
		{Kind: NotFuture, Message: "Date cannot be in the future."},
	},
}
