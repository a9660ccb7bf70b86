package tickets

import (
	"strings"

	"ticket-journal/internal/models"
)

// Reason strings surfaced to the app for rejected bulk-delete ids.
const (
	ReasonNotFound      = "ticket not found"
	ReasonNotAuthorized = "not authorized"
)

// ValidateTicketLimits reports whether a user holding currentCount tickets may
// create another one.
func ValidateTicketLimits(userID string, currentCount int) error {
	if currentCount >= models.MaxTicketsPerUser {
		return &LimitExceededError{UserID: userID, Limit: models.MaxTicketsPerUser}
	}
	return nil
}

// ValidateReviewText guards standalone review edits with the same length rule
// the create/update rule sets use.
func ValidateReviewText(text string) *ValidationError {
	return maxLength(text, models.MaxReviewLength)("review_text")
}

// ApplyTicketFilters returns the tickets satisfying every supplied filter.
// Input order is preserved; absent filter members impose no constraint.
func ApplyTicketFilters(tickets []models.Ticket, filters models.TicketFilters) []models.Ticket {
	search := strings.ToLower(filters.Search)
	var out []models.Ticket
	for _, t := range tickets {
		if filters.Status != nil && t.Status != *filters.Status {
			continue
		}
		if filters.From != nil && t.PerformedAt.Before(*filters.From) {
			continue
		}
		if filters.To != nil && t.PerformedAt.After(*filters.To) {
			continue
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesSearch(t models.Ticket, lowered string) bool {
	return strings.Contains(strings.ToLower(t.Title), lowered) ||
		strings.Contains(strings.ToLower(t.Artist), lowered) ||
		strings.Contains(strings.ToLower(t.Place), lowered)
}

// CalculateTicketStats computes the badge counts in a single pass.
func CalculateTicketStats(tickets []models.Ticket) models.TicketStats {
	stats := models.TicketStats{}
	for _, t := range tickets {
		stats.Total++
		if t.Status == models.StatusPublic {
			stats.Public++
		} else {
			stats.Private++
		}
		if t.Review != nil && t.Review.ReviewText != "" {
			stats.WithReviews++
		}
		if len(t.Images) > 0 {
			stats.WithImages++
		}
	}
	return stats
}

// ProcessBulkDelete plans a bulk delete without mutating anything: each id is
// classified in request order and the caller applies DeletedIDs to the store.
func ProcessBulkDelete(ticketsMap map[string]models.Ticket, ids []string, currentUserID string) models.BulkDeleteResult {
	result := models.BulkDeleteResult{}
	for _, id := range ids {
		ticket, ok := ticketsMap[id]
		if !ok {
			result.FailedIDs = append(result.FailedIDs, id)
			result.Errors = append(result.Errors, models.BulkDeleteError{TicketID: id, Reason: ReasonNotFound})
			continue
		}
		if ticket.UserID != currentUserID {
			result.FailedIDs = append(result.FailedIDs, id)
			result.Errors = append(result.Errors, models.BulkDeleteError{TicketID: id, Reason: ReasonNotAuthorized})
			continue
		}
		result.DeletedIDs = append(result.DeletedIDs, id)
		result.DeletedCount++
	}
	return result
}
