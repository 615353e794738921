package user_test

import (
	"context"
	"sync"

	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/objectid"
	domainuser "github.com/lllypuk/catmap/internal/domain/user"
)

// mockUserRepository is an in-memory Repository with injectable failures.
type mockUserRepository struct {
	mu    sync.Mutex
	users map[objectid.ID]*domainuser.User

	saveError     error
	findByIDError error
	findByIDsCall int
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[objectid.ID]*domainuser.User),
	}
}

func (m *mockUserRepository) Save(_ context.Context, u *domainuser.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.users[u.ID()] = u
	return nil
}

func (m *mockUserRepository) Update(_ context.Context, u *domainuser.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID()]; !ok {
		return errs.ErrNotFound
	}
	m.users[u.ID()] = u
	return nil
}

func (m *mockUserRepository) Delete(_ context.Context, id objectid.ID) (*domainuser.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	delete(m.users, id)
	return u, nil
}

func (m *mockUserRepository) FindByID(_ context.Context, id objectid.ID) (*domainuser.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findByIDError != nil {
		return nil, m.findByIDError
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, errs.ErrNotFound
}

func (m *mockUserRepository) FindByIDs(_ context.Context, ids []objectid.ID) ([]*domainuser.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findByIDsCall++
	var found []*domainuser.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			found = append(found, u)
		}
	}
	return found, nil
}

func (m *mockUserRepository) List(_ context.Context) ([]*domainuser.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*domainuser.User, 0, len(m.users))
	for _, u := range m.users {
		list = append(list, u)
	}
	return list, nil
}

func (m *mockUserRepository) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func seedUser(repo *mockUserRepository, name, email string) *domainuser.User {
	u, err := domainuser.NewUser(name, email)
	if err != nil {
		panic(err)
	}
	_ = repo.Save(context.Background(), u)
	return u
}
