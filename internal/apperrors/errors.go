package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("operation conflicts with resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrEmptyEntry indicates a journal entry was submitted without any lines.
var ErrEmptyEntry = errors.New("journal entry has no lines")

// ErrUnbalancedEntry indicates that an entry's debits and credits do not match.
var ErrUnbalancedEntry = errors.New("journal entry debits do not equal credits")

// ErrOutsidePeriod indicates a date outside its accounting period or a closed period.
var ErrOutsidePeriod = errors.New("date outside an open accounting period")

// ErrInactiveAccount indicates an operation referenced a deactivated account.
var ErrInactiveAccount = errors.New("account is inactive")

// ErrPeriodNotReady indicates closing was attempted with unposted drafts or a prior imbalance.
var ErrPeriodNotReady = errors.New("period is not ready for closing")

// ErrApprovalRequired indicates a reversing entry is blocked pending approval.
var ErrApprovalRequired = errors.New("reversing entry requires approval")

// AppError wraps a lower-level failure with a status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
