package tickets

import "fmt"

// Every expected failure mode of the store is a concrete error type so that
// callers can branch with errors.As instead of matching message strings.

// ValidationError reports a field that failed a business rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// LimitExceededError is returned when the acting user already holds the
// maximum number of tickets.
type LimitExceededError struct {
	UserID string
	Limit  int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("user %s reached the ticket limit of %d", e.UserID, e.Limit)
}

// NotFoundError is returned when an operation references an unknown ticket id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("ticket %s not found", e.ID)
}

// ForbiddenError is returned when an operation references a ticket owned by a
// different user.
type ForbiddenError struct {
	ID     string
	UserID string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("ticket %s is not owned by user %s", e.ID, e.UserID)
}
