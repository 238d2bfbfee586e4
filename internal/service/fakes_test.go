package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"contacts_api/internal/models"
	"contacts_api/internal/repository"
)

// memUsers is an in-memory repository.Users that enforces unique emails.
type memUsers struct {
	mu        sync.Mutex
	byEmail   map[string]models.User
	getErr    error
	createErr error

	createCalls int
	getCalls    int
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: map[string]models.User{}}
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.byEmail[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	m.byEmail[u.Email] = *u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// memContacts is an in-memory repository.Contacts preserving insertion order.
type memContacts struct {
	items []models.Contact
	err   error

	updateCalls int
	deleteCalls int
}

func (m *memContacts) List(context.Context) ([]models.Contact, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.Contact(nil), m.items...), nil
}

func (m *memContacts) Create(_ context.Context, c *models.Contact) error {
	if m.err != nil {
		return m.err
	}
	c.ID = uuid.NewString()
	m.items = append(m.items, *c)
	return nil
}

func (m *memContacts) GetByID(_ context.Context, id string) (*models.Contact, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.items {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memContacts) Update(_ context.Context, c *models.Contact) error {
	m.updateCalls++
	for i := range m.items {
		if m.items[i].ID == c.ID {
			m.items[i] = *c
			return nil
		}
	}
	return repository.ErrContactNotFound
}

func (m *memContacts) Delete(_ context.Context, id string) error {
	m.deleteCalls++
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrContactNotFound
}

// spyRecorder captures recorded audit event types.
type spyRecorder struct {
	mu    sync.Mutex
	types []string
}

func (s *spyRecorder) Record(_ context.Context, typ, _ string, _ any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types = append(s.types, typ)
}

func (s *spyRecorder) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.types...)
}

var errDBDown = errors.New("db down")
