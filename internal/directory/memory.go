package directory

import (
	"context"
	"slices"
	"sync"

	"bibliotech-auth/internal/auth"
	"bibliotech-auth/internal/auth/credentials"
)

// Memory is an in-process directory. Entries live as long as the process.
type Memory struct {
	mu       sync.RWMutex
	accounts []auth.Account
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) indexOf(id string) int {
	return slices.IndexFunc(m.accounts, func(a auth.Account) bool {
		return a.ID == id
	})
}

func (m *Memory) Authenticate(_ context.Context, email, password string) (auth.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.accounts {
		if a.Email != email {
			continue
		}
		if credentials.Matches(a.Password, password) {
			return a.Sanitize(), nil
		}
	}
	return auth.Identity{}, auth.ErrInvalidCredentials
}

func (m *Memory) Get(_ context.Context, id string) (auth.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return auth.Identity{}, auth.ErrNotFound
	}
	return m.accounts[i].Sanitize(), nil
}

func (m *Memory) EmailExists(_ context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.ContainsFunc(m.accounts, func(a auth.Account) bool {
		return a.Email == email
	}), nil
}

func (m *Memory) Create(_ context.Context, acct auth.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.Email == acct.Email {
			return auth.ErrEmailAlreadyRegistered
		}
	}

	m.accounts = append(m.accounts, auth.Account{
		Identity: acct.Identity.Clone(),
		Password: acct.Password,
	})
	return nil
}

func (m *Memory) Update(_ context.Context, id auth.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id.ID)
	if i < 0 {
		return auth.ErrNotFound
	}

	next := id.Clone()
	next.Email = m.accounts[i].Email
	next.Role = m.accounts[i].Role
	m.accounts[i].Identity = next
	return nil
}

func (m *Memory) SetRole(_ context.Context, id string, role auth.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return auth.ErrNotFound
	}
	m.accounts[i].Role = role
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return auth.ErrNotFound
	}
	m.accounts = slices.Delete(m.accounts, i, i+1)
	return nil
}

func (m *Memory) List(_ context.Context) ([]auth.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]auth.Identity, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a.Sanitize())
	}
	return out, nil
}
