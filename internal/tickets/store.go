package tickets

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"ticket-journal/internal/models"
)

// Store holds every ticket of the current session, keyed by id. All access
// goes through its methods; the map is never handed out. The app's event
// handlers call these synchronously, but the HTTP surface makes calls
// concurrent, so each operation runs under the mutex and is atomic relative
// to every other operation.
type Store struct {
	// NewID and Now are swappable for tests.
	NewID func() string
	Now   func() time.Time

	mu      sync.Mutex
	tickets map[string]models.Ticket
	order   []string
	userID  string
}

// NewStore creates an empty store acting on behalf of userID.
func NewStore(userID string) *Store {
	return &Store{
		NewID:   uuid.NewString,
		Now:     time.Now,
		tickets: make(map[string]models.Ticket),
		userID:  userID,
	}
}

// SetUser switches the acting user, as happens when the session collaborator
// re-authenticates. Existing tickets keep their original owner.
func (s *Store) SetUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
}

// UserID returns the acting user for the session.
func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Load inserts already-built tickets as-is, keeping their ids, owners and
// timestamps. Used at session start to hydrate the store with previously
// recorded tickets (including friends' public ones).
func (s *Store) Load(tickets ...models.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tickets {
		if _, exists := s.tickets[t.ID]; !exists {
			s.order = append(s.order, t.ID)
		}
		s.tickets[t.ID] = copyTicket(t)
	}
}

// Add validates the payload, enforces the per-user cap and inserts a new
// ticket owned by the acting user. On failure the store is untouched.
func (s *Store) Add(data models.CreateTicketData) (*models.Ticket, error) {
	if err := ValidateCreate(data); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ValidateTicketLimits(s.userID, s.countLocked(s.userID)); err != nil {
		return nil, err
	}

	// Already validated by the create rule set.
	performedAt, _ := time.Parse(time.RFC3339, data.PerformedAt)

	status := data.Status
	if status == "" {
		status = models.StatusPublic
	}

	now := s.Now()
	ticket := models.Ticket{
		ID:          s.NewID(),
		Title:       data.Title,
		Artist:      data.Artist,
		Place:       data.Place,
		BookingSite: data.BookingSite,
		PerformedAt: performedAt,
		Status:      status,
		UserID:      s.userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if data.ReviewText != "" {
		ticket.Review = &models.Review{ReviewText: data.ReviewText, CreatedAt: now}
	}
	if len(data.Images) > 0 {
		ticket.Images = append([]string(nil), data.Images...)
	}

	s.tickets[ticket.ID] = ticket
	s.order = append(s.order, ticket.ID)

	out := copyTicket(ticket)
	return &out, nil
}

// Update merges the changed fields into a copy of the stored record and
// replaces the entry. The previous record is never mutated in place, so a
// value handed out earlier keeps reading consistently.
func (s *Store) Update(id string, data models.UpdateTicketData) (*models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tickets[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	if existing.UserID != s.userID {
		return nil, &ForbiddenError{ID: id, UserID: s.userID}
	}
	if err := ValidateUpdate(data); err != nil {
		return nil, err
	}

	now := s.Now()
	updated := copyTicket(existing)
	if data.Title != nil {
		updated.Title = *data.Title
	}
	if data.Artist != nil {
		updated.Artist = *data.Artist
	}
	if data.Place != nil {
		updated.Place = *data.Place
	}
	if data.BookingSite != nil {
		updated.BookingSite = *data.BookingSite
	}
	if data.PerformedAt != nil {
		performedAt, _ := time.Parse(time.RFC3339, *data.PerformedAt)
		updated.PerformedAt = performedAt
	}
	if data.Status != nil {
		updated.Status = *data.Status
	}
	if data.ReviewText != nil {
		if *data.ReviewText == "" {
			updated.Review = nil
		} else if updated.Review != nil {
			updated.Review = &models.Review{ReviewText: *data.ReviewText, CreatedAt: updated.Review.CreatedAt}
		} else {
			updated.Review = &models.Review{ReviewText: *data.ReviewText, CreatedAt: now}
		}
	}
	if data.Images != nil {
		updated.Images = append([]string(nil), (*data.Images)...)
	}
	updated.UpdatedAt = now

	s.tickets[id] = updated

	out := copyTicket(updated)
	return &out, nil
}

// Delete removes the ticket after the same ownership checks as Update.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tickets[id]
	if !ok {
		return &NotFoundError{ID: id}
	}
	if existing.UserID != s.userID {
		return &ForbiddenError{ID: id, UserID: s.userID}
	}

	delete(s.tickets, id)
	s.removeFromOrderLocked(id)
	return nil
}

// BulkDelete plans the batch with ProcessBulkDelete and applies every
// deletable id inside one critical section, so no other operation can
// observe the batch half-applied. Per-id failures are reported, not fatal.
func (s *Store) BulkDelete(ids []string) models.BulkDeleteResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := ProcessBulkDelete(s.tickets, ids, s.userID)
	for _, id := range result.DeletedIDs {
		delete(s.tickets, id)
		s.removeFromOrderLocked(id)
	}
	return result
}

// List returns copies of all tickets in insertion order.
func (s *Store) List() []models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Ticket, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, copyTicket(s.tickets[id]))
	}
	return out
}

// Stats computes the badge counts over the current contents.
func (s *Store) Stats() models.TicketStats {
	return CalculateTicketStats(s.List())
}

func (s *Store) countLocked(userID string) int {
	count := 0
	for _, t := range s.tickets {
		if t.UserID == userID {
			count++
		}
	}
	return count
}

func (s *Store) removeFromOrderLocked(id string) {
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// copyTicket clones the record deeply enough that the store and its callers
// never share a Review pointer or Images backing array.
func copyTicket(t models.Ticket) models.Ticket {
	out := t
	if t.Review != nil {
		review := *t.Review
		out.Review = &review
	}
	if t.Images != nil {
		out.Images = append([]string(nil), t.Images...)
	}
	return out
}
