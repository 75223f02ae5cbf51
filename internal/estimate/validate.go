package estimate

// Validation messages, in the order the rules are checked.
const (
	MsgTotalNotPositive = "total must be greater than 0"
	MsgNegativeValues   = "values cannot be negative"
	MsgSumExceedsTotal  = "sum of responses cannot exceed total"
)

// Validate rejects headcount combinations that cannot be estimated.
// The first failing rule wins.
func Validate(total, yes, maybe, no float64) ValidationOutcome {
	if total <= 0 {
		return ValidationOutcome{Message: MsgTotalNotPositive}
	}
	if yes < 0 || maybe < 0 || no < 0 {
		return ValidationOutcome{Message: MsgNegativeValues}
	}
	if yes+maybe+no > total {
		return ValidationOutcome{Message: MsgSumExceedsTotal}
	}
	return ValidationOutcome{Valid: true}
}

// ValidateCounts is Validate applied to a ResponseCounts value.
func ValidateCounts(c ResponseCounts) ValidationOutcome {
	return Validate(c.Total, c.Yes, c.Maybe, c.No)
}

// ValidationError wraps an invalid ValidationOutcome for error-returning callers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Message
}
