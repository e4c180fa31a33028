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

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

func normalizePage(p model.Page) model.Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}

// CompanyService provides tenant management.
type CompanyService interface {
	Mine(ctx context.Context, actor model.Identity) (*model.Company, error)
	List(ctx context.Context, actor model.Identity, page model.Page) ([]model.Company, error)
	FindByName(ctx context.Context, actor model.Identity, name string) (*model.Company, error)
	Get(ctx context.Context, actor model.Identity, id string) (*model.Company, error)
	Create(ctx context.Context, actor model.Identity, req model.CompanyRequest) (*model.Company, error)
	Update(ctx context.Context, actor model.Identity, id string, req model.UpdateCompanyRequest) (*model.Company, error)
	Delete(ctx context.Context, actor model.Identity, id string) error
}

type companyService struct {
	companyRepo repository.CompanyRepository
	logger      *slog.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo repository.CompanyRepository, logger *slog.Logger) CompanyService {
	return &companyService{companyRepo: companyRepo, logger: logger.With("component", "company")}
}

func (s *companyService) load(ctx context.Context, id string) (*model.Company, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error finding company by ID: %w", err)
	}
	if company == nil {
		return nil, ErrNotFound
	}
	return company, nil
}

// Mine returns the caller's company.
func (s *companyService) Mine(ctx context.Context, actor model.Identity) (*model.Company, error) {
	if !policy.Allows(actor.Role, policy.OpCompanyReadOwn) {
		return nil, ErrUnauthorized
	}
	return s.load(ctx, actor.CompanyID)
}

func (s *companyService) List(ctx context.Context, actor model.Identity, page model.Page) ([]model.Company, error) {
	if !policy.Allows(actor.Role, policy.OpCompanyList) {
		return nil, ErrUnauthorized
	}
	companies, err := s.companyRepo.List(ctx, normalizePage(page))
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

func (s *companyService) FindByName(ctx context.Context, actor model.Identity, name string) (*model.Company, error) {
	if !policy.Allows(actor.Role, policy.OpCompanyRead) {
		return nil, ErrUnauthorized
	}
	company, err := s.companyRepo.FindByName(ctx, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return nil, fmt.Errorf("error finding company by name: %w", err)
	}
	if company == nil {
		return nil, ErrNotFound
	}
	return company, nil
}

func (s *companyService) Get(ctx context.Context, actor model.Identity, id string) (*model.Company, error) {
	if !policy.Allows(actor.Role, policy.OpCompanyRead) {
		return nil, ErrUnauthorized
	}
	return s.load(ctx, id)
}

// Create stores a new company. Names are kept lower-case and unique.
func (s *companyService) Create(ctx context.Context, actor model.Identity, req model.CompanyRequest) (*model.Company, error) {
	if !policy.Allows(actor.Role, policy.OpCompanyCreate) {
		return nil, ErrUnauthorized
	}
	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	company := &model.Company{
		Name:     name,
		Email:    normalizeEmail(req.Email),
		Avatar:   req.Avatar,
		Document: req.Document,
		Phone:    req.Phone,
		Address:  req.Address,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		if mapped := mapRepoErr(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	s.logger.Info("company created", "company_id", company.ID, "actor_id", actor.UserID)
	return company, nil
}

// target resolves the company an update or delete acts on. An empty id
// means the caller's own company.
func (s *companyService) target(actor model.Identity, id string, ownOp, anyOp policy.Operation) (string, error) {
	if id == "" || id == actor.CompanyID {
		if !policy.Allows(actor.Role, ownOp) {
			return "", ErrUnauthorized
		}
		return actor.CompanyID, nil
	}
	if !policy.Allows(actor.Role, anyOp) {
		return "", ErrUnauthorized
	}
	return id, nil
}

// Update applies a partial update. ADMIN may only touch its own company.
func (s *companyService) Update(ctx context.Context, actor model.Identity, id string, req model.UpdateCompanyRequest) (*model.Company, error) {
	companyID, err := s.target(actor, id, policy.OpCompanyUpdate, policy.OpCompanyUpdateAny)
	if err != nil {
		return nil, err
	}
	company, err := s.load(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.ToLower(strings.TrimSpace(*req.Name))
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		company.Name = name
	}
	if req.Email != nil {
		company.Email = normalizeEmail(*req.Email)
	}
	setIf(&company.Avatar, req.Avatar)
	setIf(&company.Document, req.Document)
	setIf(&company.Phone, req.Phone)
	setIf(&company.Address.Address, req.Address)
	setIf(&company.AddressNumber, req.AddressNumber)
	setIf(&company.City, req.City)
	setIf(&company.State, req.State)
	setIf(&company.Country, req.Country)
	setIf(&company.Zipcode, req.Zipcode)

	if err := s.companyRepo.Update(ctx, company); err != nil {
		if mapped := mapRepoErr(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return company, nil
}

// Delete removes a company together with its branches and users.
func (s *companyService) Delete(ctx context.Context, actor model.Identity, id string) error {
	if !policy.CanDeleteCompanyScoped(actor.Role) {
		return ErrUnauthorized
	}
	companyID, err := s.target(actor, id, policy.OpCompanyDelete, policy.OpCompanyDeleteAny)
	if err != nil {
		return err
	}
	if err := s.companyRepo.Delete(ctx, companyID); err != nil {
		if mapped := mapRepoErr(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to delete company: %w", err)
	}
	s.logger.Warn("company deleted", "company_id", companyID, "actor_id", actor.UserID)
	return nil
}
