package profile

import (
	"sync"
	"time"

	"ticket-journal/internal/models"
)

// Store holds the single profile of the session user.
type Store struct {
	Now func() time.Time

	mu      sync.Mutex
	profile models.Profile
}

func NewStore(nickname string) *Store {
	return &Store{
		Now:     time.Now,
		profile: models.Profile{Nickname: nickname},
	}
}

// Get returns a copy of the current profile.
func (s *Store) Get() models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Update changes the supplied fields; nil pointers leave fields alone.
func (s *Store) Update(nickname, avatarURI *string) models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if nickname != nil {
		s.profile.Nickname = *nickname
	}
	if avatarURI != nil {
		s.profile.AvatarURI = *avatarURI
	}
	s.profile.UpdatedAt = s.Now()
	return s.profile
}
