package friends

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ticket-journal/internal/models"
)

// DuplicateError is returned when a friend with the same name already exists.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("friend %q already exists", e.Name)
}

// NotFoundError is returned when an operation references an unknown friend id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("friend %s not found", e.ID)
}

// ErrEmptyName rejects friends added without a name.
var ErrEmptyName = fmt.Errorf("friend name must not be empty")

// Store holds the session user's friends list. Names are unique ignoring
// case; insertion order is preserved for the list screen.
type Store struct {
	NewID func() string
	Now   func() time.Time

	mu      sync.Mutex
	friends map[string]models.Friend
	order   []string
}

func NewStore() *Store {
	return &Store{
		NewID:   uuid.NewString,
		Now:     time.Now,
		friends: make(map[string]models.Friend),
	}
}

// Add creates a friend entry. The name is required and must not collide with
// an existing entry, compared case-insensitively.
func (s *Store) Add(name, avatarURI string) (*models.Friend, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lowered := strings.ToLower(name)
	for _, f := range s.friends {
		if strings.ToLower(f.Name) == lowered {
			return nil, &DuplicateError{Name: name}
		}
	}

	friend := models.Friend{
		ID:        s.NewID(),
		Name:      name,
		AvatarURI: avatarURI,
		CreatedAt: s.Now(),
	}
	s.friends[friend.ID] = friend
	s.order = append(s.order, friend.ID)
	return &friend, nil
}

// Remove deletes the friend with the given id.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.friends[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(s.friends, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all friends in the order they were added.
func (s *Store) List() []models.Friend {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Friend, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.friends[id])
	}
	return out
}
