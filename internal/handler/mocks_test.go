package handler

import (
	"context"

	"manager_system/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.TokenPair, error) {
	args := m.Called(ctx, email, password)
	p, _ := args.Get(0).(*model.TokenPair)
	return p, args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, userID, refreshToken string) (*model.TokenPair, error) {
	args := m.Called(ctx, userID, refreshToken)
	p, _ := args.Get(0).(*model.TokenPair)
	return p, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Me(ctx context.Context, actor model.Identity) (*model.User, error) {
	args := m.Called(ctx, actor)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, actor model.Identity) ([]model.User, error) {
	args := m.Called(ctx, actor)
	u, _ := args.Get(0).([]model.User)
	return u, args.Error(1)
}

func (m *MockUserService) ListByRole(ctx context.Context, actor model.Identity, role model.Role) ([]model.User, error) {
	args := m.Called(ctx, actor, role)
	u, _ := args.Get(0).([]model.User)
	return u, args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, actor model.Identity, id string) (*model.User, error) {
	args := m.Called(ctx, actor, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserService) UpdateSelf(ctx context.Context, actor model.Identity, req model.UpdateUserRequest) (*model.User, error) {
	args := m.Called(ctx, actor, req)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserService) DeleteSelf(ctx context.Context, actor model.Identity) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}

func (m *MockUserService) PromoteDemote(ctx context.Context, actor model.Identity, req model.PromoteDemoteRequest) (*model.User, error) {
	args := m.Called(ctx, actor, req)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) Mine(ctx context.Context, actor model.Identity) (*model.Company, error) {
	args := m.Called(ctx, actor)
	c, _ := args.Get(0).(*model.Company)
	return c, args.Error(1)
}

func (m *MockCompanyService) List(ctx context.Context, actor model.Identity, page model.Page) ([]model.Company, error) {
	args := m.Called(ctx, actor, page)
	c, _ := args.Get(0).([]model.Company)
	return c, args.Error(1)
}

func (m *MockCompanyService) FindByName(ctx context.Context, actor model.Identity, name string) (*model.Company, error) {
	args := m.Called(ctx, actor, name)
	c, _ := args.Get(0).(*model.Company)
	return c, args.Error(1)
}

func (m *MockCompanyService) Get(ctx context.Context, actor model.Identity, id string) (*model.Company, error) {
	args := m.Called(ctx, actor, id)
	c, _ := args.Get(0).(*model.Company)
	return c, args.Error(1)
}

func (m *MockCompanyService) Create(ctx context.Context, actor model.Identity, req model.CompanyRequest) (*model.Company, error) {
	args := m.Called(ctx, actor, req)
	c, _ := args.Get(0).(*model.Company)
	return c, args.Error(1)
}

func (m *MockCompanyService) Update(ctx context.Context, actor model.Identity, id string, req model.UpdateCompanyRequest) (*model.Company, error) {
	args := m.Called(ctx, actor, id, req)
	c, _ := args.Get(0).(*model.Company)
	return c, args.Error(1)
}

func (m *MockCompanyService) Delete(ctx context.Context, actor model.Identity, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

type MockBranchService struct {
	mock.Mock
}

func (m *MockBranchService) Mine(ctx context.Context, actor model.Identity) (*model.Branch, error) {
	args := m.Called(ctx, actor)
	b, _ := args.Get(0).(*model.Branch)
	return b, args.Error(1)
}

func (m *MockBranchService) List(ctx context.Context, actor model.Identity, page model.Page) ([]model.Branch, error) {
	args := m.Called(ctx, actor, page)
	b, _ := args.Get(0).([]model.Branch)
	return b, args.Error(1)
}

func (m *MockBranchService) FindByName(ctx context.Context, actor model.Identity, name string) ([]model.Branch, error) {
	args := m.Called(ctx, actor, name)
	b, _ := args.Get(0).([]model.Branch)
	return b, args.Error(1)
}

func (m *MockBranchService) Get(ctx context.Context, actor model.Identity, id string) (*model.Branch, error) {
	args := m.Called(ctx, actor, id)
	b, _ := args.Get(0).(*model.Branch)
	return b, args.Error(1)
}

func (m *MockBranchService) Create(ctx context.Context, actor model.Identity, req model.BranchRequest) (*model.Branch, error) {
	args := m.Called(ctx, actor, req)
	b, _ := args.Get(0).(*model.Branch)
	return b, args.Error(1)
}

func (m *MockBranchService) Update(ctx context.Context, actor model.Identity, id string, req model.UpdateBranchRequest) (*model.Branch, error) {
	args := m.Called(ctx, actor, id, req)
	b, _ := args.Get(0).(*model.Branch)
	return b, args.Error(1)
}

func (m *MockBranchService) Delete(ctx context.Context, actor model.Identity, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
