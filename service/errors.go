package service

import "errors"

// Failure taxonomy for the processing pipeline. User-level rejections
// (unauthorized, not an expense, malformed) are resolved locally with a
// reply; these sentinels cover faults that callers may want to act on.
var (
	ErrAuthUnavailable      = errors.New("authorization check unavailable")
	ErrExtractorUnavailable = errors.New("extractor unavailable")
	ErrPersistence          = errors.New("failed to persist expense")
)

// User-facing reply strings. Replies never include internal errors or
// identifiers.
const (
	msgUnauthorized         = "User not authorized to use this bot"
	msgNotExpense           = "Message does not appear to be an expense"
	msgMalformed            = "Could not extract valid expense information"
	msgSaveFailed           = "Failed to save expense to database"
	msgServiceUnavailable   = "Service temporarily unavailable, please try again later"
	msgExtractorUnavailable = "Expense analysis is temporarily unavailable, please try again later"
	msgExpenseAdded         = "%s expense added ✅"
)
