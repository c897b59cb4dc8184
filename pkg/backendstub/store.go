package backendstub

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-accountform/pkg/registration"
)

// ErrDuplicateEmail is returned when an account with the same email (case
// insensitive) already exists.
var ErrDuplicateEmail = errors.New("backendstub: email already registered")

// Account is a stored registration.
type Account struct {
	ID        string                `json:"id"`
	Data      registration.FormData `json:"data"`
	CreatedAt time.Time             `json:"createdAt"`
}

// Store keeps accounts in memory in creation order.
type Store struct {
	mu       sync.RWMutex
	accounts []Account
	byEmail  map[string]int
	now      func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		byEmail: make(map[string]int),
		now:     time.Now,
	}
}

// Create stores data under a new id.
func (s *Store) Create(data registration.FormData) (Account, error) {
	key := emailKey(data.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[key]; exists {
		return Account{}, ErrDuplicateEmail
	}
	account := Account{
		ID:        uuid.NewString(),
		Data:      data,
		CreatedAt: s.now().UTC(),
	}
	s.byEmail[key] = len(s.accounts)
	s.accounts = append(s.accounts, account)
	return account, nil
}

// Accounts returns a copy of every stored account.
func (s *Store) Accounts() []Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Len reports how many accounts are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
