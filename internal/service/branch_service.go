package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"manager_system/internal/model"
	"manager_system/internal/policy"
	"manager_system/internal/repository"
)

// BranchService provides branch management inside a company.
type BranchService interface {
	Mine(ctx context.Context, actor model.Identity) (*model.Branch, error)
	List(ctx context.Context, actor model.Identity, page model.Page) ([]model.Branch, error)
	FindByName(ctx context.Context, actor model.Identity, name string) ([]model.Branch, error)
	Get(ctx context.Context, actor model.Identity, id string) (*model.Branch, error)
	Create(ctx context.Context, actor model.Identity, req model.BranchRequest) (*model.Branch, error)
	Update(ctx context.Context, actor model.Identity, id string, req model.UpdateBranchRequest) (*model.Branch, error)
	Delete(ctx context.Context, actor model.Identity, id string) error
}

type branchService struct {
	branchRepo  repository.BranchRepository
	companyRepo repository.CompanyRepository
	logger      *slog.Logger
}

// NewBranchService creates a new BranchService
func NewBranchService(branchRepo repository.BranchRepository, companyRepo repository.CompanyRepository, logger *slog.Logger) BranchService {
	return &branchService{
		branchRepo:  branchRepo,
		companyRepo: companyRepo,
		logger:      logger.With("component", "branch"),
	}
}

// companyScope is the company filter for listings: empty for callers who
// may cross tenants, the caller's own company otherwise.
func companyScope(actor model.Identity) string {
	if policy.Allows(actor.Role, policy.OpCrossCompany) {
		return ""
	}
	return actor.CompanyID
}

// load fetches a branch and hides branches of other companies.
func (s *branchService) load(ctx context.Context, actor model.Identity, id string) (*model.Branch, error) {
	branch, err := s.branchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error finding branch by ID: %w", err)
	}
	if branch == nil || !policy.CanAccessCompany(actor.Role, actor.CompanyID, branch.CompanyID) {
		return nil, ErrNotFound
	}
	return branch, nil
}

// Mine returns the branch the caller belongs to.
func (s *branchService) Mine(ctx context.Context, actor model.Identity) (*model.Branch, error) {
	if !policy.Allows(actor.Role, policy.OpBranchReadOwn) {
		return nil, ErrUnauthorized
	}
	if actor.BranchID == nil || *actor.BranchID == "" {
		return nil, ErrNotFound
	}
	return s.load(ctx, actor, *actor.BranchID)
}

func (s *branchService) List(ctx context.Context, actor model.Identity, page model.Page) ([]model.Branch, error) {
	if !policy.Allows(actor.Role, policy.OpBranchList) {
		return nil, ErrUnauthorized
	}
	branches, err := s.branchRepo.List(ctx, companyScope(actor), normalizePage(page))
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}

func (s *branchService) FindByName(ctx context.Context, actor model.Identity, name string) ([]model.Branch, error) {
	if !policy.Allows(actor.Role, policy.OpBranchRead) {
		return nil, ErrUnauthorized
	}
	branches, err := s.branchRepo.FindByName(ctx, companyScope(actor), strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to find branches by name: %w", err)
	}
	if len(branches) == 0 {
		return nil, ErrNotFound
	}
	return branches, nil
}

func (s *branchService) Get(ctx context.Context, actor model.Identity, id string) (*model.Branch, error) {
	if !policy.Allows(actor.Role, policy.OpBranchRead) {
		return nil, ErrUnauthorized
	}
	return s.load(ctx, actor, id)
}

// Create stores a branch. Only SUPER_ADMIN may pick the owning company;
// everyone else creates inside their own.
func (s *branchService) Create(ctx context.Context, actor model.Identity, req model.BranchRequest) (*model.Branch, error) {
	if !policy.Allows(actor.Role, policy.OpBranchCreate) {
		return nil, ErrUnauthorized
	}
	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	companyID := actor.CompanyID
	if req.CompanyID != "" && policy.Allows(actor.Role, policy.OpCrossCompany) {
		companyID = req.CompanyID
	}
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("error finding company: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("%w: company does not exist", ErrInvalidInput)
	}

	branch := &model.Branch{
		Name:      name,
		Email:     normalizeEmail(req.Email),
		Avatar:    req.Avatar,
		Document:  req.Document,
		Phone:     req.Phone,
		CompanyID: company.ID,
		Address:   req.Address,
	}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		if mapped := mapRepoErr(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}
	s.logger.Info("branch created", "branch_id", branch.ID, "company_id", branch.CompanyID, "actor_id", actor.UserID)
	return branch, nil
}

// Update applies a partial update to the branch identified by id.
func (s *branchService) Update(ctx context.Context, actor model.Identity, id string, req model.UpdateBranchRequest) (*model.Branch, error) {
	if !policy.Allows(actor.Role, policy.OpBranchUpdate) {
		return nil, ErrUnauthorized
	}
	branch, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.ToLower(strings.TrimSpace(*req.Name))
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		branch.Name = name
	}
	if req.Email != nil {
		branch.Email = normalizeEmail(*req.Email)
	}
	setIf(&branch.Avatar, req.Avatar)
	setIf(&branch.Document, req.Document)
	setIf(&branch.Phone, req.Phone)
	setIf(&branch.Address.Address, req.Address)
	setIf(&branch.AddressNumber, req.AddressNumber)
	setIf(&branch.City, req.City)
	setIf(&branch.State, req.State)
	setIf(&branch.Country, req.Country)
	setIf(&branch.Zipcode, req.Zipcode)

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		if mapped := mapRepoErr(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}
	return branch, nil
}

// Delete removes a branch. An empty id means the caller's own branch.
func (s *branchService) Delete(ctx context.Context, actor model.Identity, id string) error {
	if !policy.CanDeleteCompanyScoped(actor.Role) || !policy.Allows(actor.Role, policy.OpBranchDelete) {
		return ErrUnauthorized
	}
	if id == "" {
		if actor.BranchID == nil || *actor.BranchID == "" {
			return fmt.Errorf("%w: no branch given and caller has none", ErrInvalidInput)
		}
		id = *actor.BranchID
	}
	branch, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.branchRepo.Delete(ctx, branch.ID); err != nil {
		if mapped := mapRepoErr(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to delete branch: %w", err)
	}
	s.logger.Warn("branch deleted", "branch_id", branch.ID, "company_id", branch.CompanyID, "actor_id", actor.UserID)
	return nil
}
