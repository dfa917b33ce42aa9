package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"minhas-financas/internal/domain"
	"minhas-financas/internal/repository"
)

// memUserRepo is an in-memory repository.UserRepository with an enforced unique email.
type memUserRepo struct {
	mu      sync.Mutex
	nextID  int64
	byEmail map[string]*domain.User

	// existsOverride lets a test simulate a race where the pre-check misses a concurrent insert.
	existsOverride *bool
	err            error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]*domain.User)}
}

func (m *memUserRepo) Init(ctx context.Context) error { return nil }

func (m *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if m.existsOverride != nil {
		return *m.existsOverride, nil
	}
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *memUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, user := range m.byEmail {
		if user.ID == id {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) Save(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byEmail[user.Email]; ok {
		return fmt.Errorf("insert user: %w", repository.ErrDuplicateEmail)
	}
	m.nextID++
	user.ID = m.nextID
	cp := *user
	m.byEmail[user.Email] = &cp
	return nil
}

type memEntryRepo struct {
	mu      sync.Mutex
	nextID  int64
	entries map[int64]domain.Entry
}

func newMemEntryRepo() *memEntryRepo {
	return &memEntryRepo{entries: make(map[int64]domain.Entry)}
}

func (m *memEntryRepo) Init(ctx context.Context) error { return nil }

func (m *memEntryRepo) Create(ctx context.Context, entry *domain.Entry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	entry.ID = m.nextID
	m.entries[entry.ID] = *entry
	return entry.ID, nil
}

func (m *memEntryRepo) Update(ctx context.Context, entry *domain.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return repository.ErrNotFound
	}
	m.entries[entry.ID] = *entry
	return nil
}

func (m *memEntryRepo) UpdateStatus(ctx context.Context, id int64, status domain.EntryStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[id]
	if !ok {
		return repository.ErrNotFound
	}
	entry.Status = status
	m.entries[id] = entry
	return nil
}

func (m *memEntryRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *memEntryRepo) Get(ctx context.Context, id int64) (*domain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &entry, nil
}

func (m *memEntryRepo) List(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error) {
	return m.collect(func(e domain.Entry) bool {
		return e.UserID == filter.UserID &&
			(filter.Month == 0 || e.Month == filter.Month) &&
			(filter.Year == 0 || e.Year == filter.Year) &&
			(filter.Type == "" || e.Type == filter.Type) &&
			strings.Contains(strings.ToLower(e.Description), strings.ToLower(filter.Description))
	}), nil
}

func (m *memEntryRepo) ListByStatuses(ctx context.Context, userID int64, statuses ...domain.EntryStatus) ([]domain.Entry, error) {
	return m.collect(func(e domain.Entry) bool {
		if e.UserID != userID {
			return false
		}
		for _, s := range statuses {
			if e.Status == s {
				return true
			}
		}
		return false
	}), nil
}

func (m *memEntryRepo) collect(keep func(domain.Entry) bool) []domain.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Entry{}
	for _, e := range m.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
