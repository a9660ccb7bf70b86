package tickets

import (
	"sort"
	"time"

	"ticket-journal/internal/models"
)

// Derived views are pure projections over Store.List(). They are recomputed
// on every call; the store is the single source of truth and small enough
// that caching would only add invalidation problems.

// MonthOf returns the tickets performed in the calendar month containing now,
// sorted ascending by performance time.
func MonthOf(tickets []models.Ticket, now time.Time) []models.Ticket {
	year, month, _ := now.Date()
	var out []models.Ticket
	for _, t := range tickets {
		ty, tm, _ := t.PerformedAt.Date()
		if ty == year && tm == month {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PerformedAt.Before(out[j].PerformedAt)
	})
	return out
}

// OnDay returns the tickets performed on the given date, ignoring
// time-of-day. Used by the calendar screen's day cells.
func OnDay(tickets []models.Ticket, day time.Time) []models.Ticket {
	year, month, dayOfMonth := day.Date()
	var out []models.Ticket
	for _, t := range tickets {
		ty, tm, td := t.PerformedAt.Date()
		if ty == year && tm == month && td == dayOfMonth {
			out = append(out, t)
		}
	}
	return out
}

// Grid returns all tickets sorted newest-recorded first, the order the grid
// screen renders them in.
func Grid(tickets []models.Ticket) []models.Ticket {
	out := append([]models.Ticket(nil), tickets...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
