package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/ports"
	"github.com/Apurer/petfriends-api-tests/internal/shared/projection"
)

var _ ports.Store = (*Store)(nil)

// Store is an in-memory implementation used for tests and local runs.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*ports.Account
	pets     map[string]*storedPet
	seq      int64
	now      func() time.Time
}

type storedPet struct {
	pet      *ports.StoredPet
	metadata projection.Metadata
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts: map[string]*ports.Account{},
		pets:     map[string]*storedPet{},
		now:      time.Now,
	}
}

// WithClock overrides the time source.
func (s *Store) WithClock(now func() time.Time) {
	if now == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SaveAccount inserts or replaces an account keyed by email.
func (s *Store) SaveAccount(_ context.Context, account *ports.Account) error {
	if account == nil {
		return errors.New("cannot save nil account")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *account
	s.accounts[normalizeEmail(account.Email)] = &clone
	return nil
}

// FindAccountByEmail matches emails case-insensitively.
func (s *Store) FindAccountByEmail(_ context.Context, email string) (*ports.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[normalizeEmail(email)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *account
	return &clone, nil
}

// FindAccountByKey resolves an auth key.
func (s *Store) FindAccountByKey(_ context.Context, key string) (*ports.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, account := range s.accounts {
		if key != "" && account.Key == key {
			clone := *account
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

// SavePet inserts or replaces a pet while maintaining metadata.
func (s *Store) SavePet(_ context.Context, pet *ports.StoredPet) (*ports.PetProjection, error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	timestamp := s.now()
	entry, ok := s.pets[pet.ID]
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
		metadata.Sequence = entry.metadata.Sequence
	} else {
		s.seq++
		metadata.Sequence = s.seq
	}
	clone := *pet
	stored := &storedPet{pet: &clone, metadata: metadata}
	s.pets[pet.ID] = stored
	return projectionCopy(stored), nil
}

// GetPet fetches a pet if present.
func (s *Store) GetPet(_ context.Context, id string) (*ports.PetProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// DeletePet removes a pet.
func (s *Store) DeletePet(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pets[id]; !ok {
		return ports.ErrNotFound
	}
	delete(s.pets, id)
	return nil
}

// ListPets returns pets newest first, optionally restricted to one owner.
func (s *Store) ListPets(_ context.Context, ownerID string) ([]*ports.PetProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*ports.PetProjection, 0, len(s.pets))
	for _, entry := range s.pets {
		if ownerID != "" && entry.pet.OwnerID != ownerID {
			continue
		}
		list = append(list, projectionCopy(entry))
	}
	sort.Slice(list, func(i, j int) bool {
		return projection.NewerFirst(list[i].Metadata, list[j].Metadata)
	})
	return list, nil
}

// Reset drops every pet but keeps accounts.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pets = map[string]*storedPet{}
}

func projectionCopy(entry *storedPet) *ports.PetProjection {
	clone := *entry.pet
	return &ports.PetProjection{Entity: &clone, Metadata: entry.metadata}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
