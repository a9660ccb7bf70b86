package models

import "time"

const (
	MaxTitleLength    = 100
	MaxReviewLength   = 1000
	MaxTicketsPerUser = 1000
)

type TicketStatus string

const (
	StatusPublic  TicketStatus = "PUBLIC"
	StatusPrivate TicketStatus = "PRIVATE"
)

// Valid reports whether the status is one of the known enum values.
func (s TicketStatus) Valid() bool {
	return s == StatusPublic || s == StatusPrivate
}

// Review is an optional write-up attached to a ticket.
type Review struct {
	ReviewText string    `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
}

// Ticket records one attended performance (concert, musical, ...).
// ID, UserID and CreatedAt never change after creation.
type Ticket struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Artist      string       `json:"artist,omitempty"`
	Place       string       `json:"place,omitempty"`
	BookingSite string       `json:"booking_site,omitempty"`
	PerformedAt time.Time    `json:"performed_at"`
	Status      TicketStatus `json:"status"`
	UserID      string       `json:"user_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Review      *Review      `json:"review,omitempty"`
	Images      []string     `json:"images,omitempty"`
}

// CreateTicketData is the payload for creating a ticket. PerformedAt is an
// RFC 3339 timestamp string; it is validated before any record is built.
type CreateTicketData struct {
	Title       string       `json:"title"`
	Artist      string       `json:"artist,omitempty"`
	Place       string       `json:"place,omitempty"`
	BookingSite string       `json:"booking_site,omitempty"`
	PerformedAt string       `json:"performed_at"`
	Status      TicketStatus `json:"status,omitempty"`
	ReviewText  string       `json:"review_text,omitempty"`
	Images      []string     `json:"images,omitempty"`
}

// UpdateTicketData carries only the fields being changed. A nil pointer means
// "leave this field alone", so its validation rule is skipped entirely.
type UpdateTicketData struct {
	Title       *string       `json:"title,omitempty"`
	Artist      *string       `json:"artist,omitempty"`
	Place       *string       `json:"place,omitempty"`
	BookingSite *string       `json:"booking_site,omitempty"`
	PerformedAt *string       `json:"performed_at,omitempty"`
	Status      *TicketStatus `json:"status,omitempty"`
	ReviewText  *string       `json:"review_text,omitempty"`
	Images      *[]string     `json:"images,omitempty"`
}

// TicketFilters combines with logical AND; nil/empty members impose nothing.
type TicketFilters struct {
	Status *TicketStatus
	From   *time.Time
	To     *time.Time
	Search string
}

// TicketStats are the badge counts shown by the app.
type TicketStats struct {
	Total       int `json:"total"`
	Public      int `json:"public"`
	Private     int `json:"private"`
	WithReviews int `json:"with_reviews"`
	WithImages  int `json:"with_images"`
}

// BulkDeleteError describes one rejected id within a bulk delete.
type BulkDeleteError struct {
	TicketID string `json:"ticket_id"`
	Reason   string `json:"reason"`
}

// BulkDeleteResult aggregates the outcome of a bulk delete. Slice order
// follows the order the ids were requested in.
type BulkDeleteResult struct {
	DeletedCount int               `json:"deleted_count"`
	DeletedIDs   []string          `json:"deleted_ids"`
	FailedIDs    []string          `json:"failed_ids"`
	Errors       []BulkDeleteError `json:"errors"`
}
