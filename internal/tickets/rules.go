package tickets

import (
	"fmt"
	"time"

	"ticket-journal/internal/models"
)

// rule pairs a payload field with the check that guards it. Rules run in
// declaration order and the first failure wins, so the error a caller sees
// for a given payload is deterministic.
type rule struct {
	field string
	check func(field string) *ValidationError
}

func runRules(rules []rule) *ValidationError {
	for _, r := range rules {
		if err := r.check(r.field); err != nil {
			return err
		}
	}
	return nil
}

func notEmpty(value string) func(string) *ValidationError {
	return func(field string) *ValidationError {
		if value == "" {
			return &ValidationError{Field: field, Message: "must not be empty"}
		}
		return nil
	}
}

func maxLength(value string, max int) func(string) *ValidationError {
	return func(field string) *ValidationError {
		if len(value) > max {
			return &ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", max)}
		}
		return nil
	}
}

func validInstant(value string) func(string) *ValidationError {
	return func(field string) *ValidationError {
		if _, err := time.Parse(time.RFC3339, value); err != nil {
			return &ValidationError{Field: field, Message: "must be a valid RFC 3339 timestamp"}
		}
		return nil
	}
}

// validStatus accepts the empty string on create payloads; the store defaults
// it to PUBLIC before inserting.
func validStatus(value models.TicketStatus, allowEmpty bool) func(string) *ValidationError {
	return func(field string) *ValidationError {
		if allowEmpty && value == "" {
			return nil
		}
		if !value.Valid() {
			return &ValidationError{Field: field, Message: "must be PUBLIC or PRIVATE"}
		}
		return nil
	}
}

func createRules(data models.CreateTicketData) []rule {
	return []rule{
		{"title", notEmpty(data.Title)},
		{"title", maxLength(data.Title, models.MaxTitleLength)},
		{"performed_at", notEmpty(data.PerformedAt)},
		{"performed_at", validInstant(data.PerformedAt)},
		{"status", validStatus(data.Status, true)},
		{"review_text", maxLength(data.ReviewText, models.MaxReviewLength)},
	}
}

// updateRules only guards fields that are actually being changed: a nil
// pointer means the field keeps its stored value, so no rule applies.
func updateRules(data models.UpdateTicketData) []rule {
	var rules []rule
	if data.Title != nil {
		rules = append(rules,
			rule{"title", notEmpty(*data.Title)},
			rule{"title", maxLength(*data.Title, models.MaxTitleLength)},
		)
	}
	if data.PerformedAt != nil {
		rules = append(rules, rule{"performed_at", validInstant(*data.PerformedAt)})
	}
	if data.Status != nil {
		rules = append(rules, rule{"status", validStatus(*data.Status, false)})
	}
	if data.ReviewText != nil {
		rules = append(rules, rule{"review_text", maxLength(*data.ReviewText, models.MaxReviewLength)})
	}
	return rules
}

// ValidateCreate checks a create payload against the create rule set and
// returns the first violation, or nil if the payload is clean.
func ValidateCreate(data models.CreateTicketData) *ValidationError {
	return runRules(createRules(data))
}

// ValidateUpdate checks only the fields present in the payload.
func ValidateUpdate(data models.UpdateTicketData) *ValidationError {
	return runRules(updateRules(data))
}
