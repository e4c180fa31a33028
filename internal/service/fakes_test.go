package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"manager_system/internal/model"
	"manager_system/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// memUserRepo is an in-memory UserRepository. Records are copied on the
// way in and out so callers cannot mutate stored state.
type memUserRepo struct {
	mu         sync.Mutex
	users      map[string]model.User
	writes     int
	beforeSwap func()
}

func newMemUserRepo(users ...model.User) *memUserRepo {
	r := &memUserRepo{users: make(map[string]model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func copyUser(u model.User) *model.User {
	if u.RefreshTokenHash != nil {
		h := *u.RefreshTokenHash
		u.RefreshTokenHash = &h
	}
	if u.BranchID != nil {
		b := *u.BranchID
		u.BranchID = &b
	}
	return &u
}

func (r *memUserRepo) get(id string) model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *copyUser(r.users[id])
}

func (r *memUserRepo) Create(ctx context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = *copyUser(*u)
	return nil
}

func (r *memUserRepo) FindCredentialByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindCredentialByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (r *memUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.User{}
	for _, u := range r.users {
		if filter.CompanyID != "" && u.CompanyID != filter.CompanyID {
			continue
		}
		if len(filter.Roles) > 0 && !slices.Contains(filter.Roles, u.Role) {
			continue
		}
		out = append(out, *copyUser(u))
	}
	slices.SortFunc(out, func(a, b model.User) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *memUserRepo) Update(ctx context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.users {
		if id != u.ID && existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.UpdatedAt = time.Now()
	r.users[u.ID] = *copyUser(*u)
	r.writes++
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) UpdateRefreshHash(ctx context.Context, id string, hash *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.RefreshTokenHash = hash
	r.users[id] = *copyUser(u)
	r.writes++
	return nil
}

func (r *memUserRepo) SwapRefreshHash(ctx context.Context, id, expected, next string) (bool, error) {
	if r.beforeSwap != nil {
		r.beforeSwap()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.RefreshTokenHash == nil || *u.RefreshTokenHash != expected {
		return false, nil
	}
	u.RefreshTokenHash = &next
	r.users[id] = u
	r.writes++
	return true, nil
}

func (r *memUserRepo) UpdateRole(ctx context.Context, id string, role model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	r.users[id] = u
	r.writes++
	return nil
}

func (r *memUserRepo) writeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// MockCompanyRepository is a testify mock of repository.CompanyRepository.
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Create(ctx context.Context, c *model.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id string) (*model.Company, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Company)
	return c, args.Error(1)
}

func (m *MockCompanyRepository) FindByName(ctx context.Context, name string) (*model.Company, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(*model.Company)
	return c, args.Error(1)
}

func (m *MockCompanyRepository) List(ctx context.Context, page model.Page) ([]model.Company, error) {
	args := m.Called(ctx, page)
	c, _ := args.Get(0).([]model.Company)
	return c, args.Error(1)
}

func (m *MockCompanyRepository) Update(ctx context.Context, c *model.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBranchRepository is a testify mock of repository.BranchRepository.
type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) Create(ctx context.Context, b *model.Branch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBranchRepository) FindByID(ctx context.Context, id string) (*model.Branch, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*model.Branch)
	return b, args.Error(1)
}

func (m *MockBranchRepository) FindByName(ctx context.Context, companyID, name string) ([]model.Branch, error) {
	args := m.Called(ctx, companyID, name)
	b, _ := args.Get(0).([]model.Branch)
	return b, args.Error(1)
}

func (m *MockBranchRepository) List(ctx context.Context, companyID string, page model.Page) ([]model.Branch, error) {
	args := m.Called(ctx, companyID, page)
	b, _ := args.Get(0).([]model.Branch)
	return b, args.Error(1)
}

func (m *MockBranchRepository) Update(ctx context.Context, b *model.Branch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBranchRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
