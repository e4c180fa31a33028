package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"manager_system/internal/model"
	"manager_system/internal/policy"
	"manager_system/internal/repository"
	"manager_system/internal/utils"
)

// UserService provides user management scoped by the caller's identity.
type UserService interface {
	Me(ctx context.Context, actor model.Identity) (*model.User, error)
	List(ctx context.Context, actor model.Identity) ([]model.User, error)
	ListByRole(ctx context.Context, actor model.Identity, role model.Role) ([]model.User, error)
	Get(ctx context.Context, actor model.Identity, id string) (*model.User, error)
	Register(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	UpdateSelf(ctx context.Context, actor model.Identity, req model.UpdateUserRequest) (*model.User, error)
	DeleteSelf(ctx context.Context, actor model.Identity) error
	PromoteDemote(ctx context.Context, actor model.Identity, req model.PromoteDemoteRequest) (*model.User, error)
}

type userService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	branchRepo  repository.BranchRepository
	logger      *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, branchRepo repository.BranchRepository, logger *slog.Logger) UserService {
	return &userService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		branchRepo:  branchRepo,
		logger:      logger.With("component", "user"),
	}
}

func hideRoles(users []model.User) []model.User {
	out := make([]model.User, len(users))
	for i, u := range users {
		out[i] = u.WithoutRole()
	}
	return out
}

func (s *userService) load(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindCredentialByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error finding user by ID: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Me returns the caller's own record.
func (s *userService) Me(ctx context.Context, actor model.Identity) (*model.User, error) {
	if !policy.Allows(actor.Role, policy.OpUserReadSelf) {
		return nil, ErrUnauthorized
	}
	user, err := s.load(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if policy.HidesOwnRole(user.Role) {
		hidden := user.WithoutRole()
		return &hidden, nil
	}
	return user, nil
}

// List returns the users visible to actor.
func (s *userService) List(ctx context.Context, actor model.Identity) ([]model.User, error) {
	scope := policy.VisibilityScope(actor.Role)

	var filter repository.UserFilter
	switch scope.Kind {
	case policy.ScopeSelf:
		user, err := s.load(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		return []model.User{user.WithoutRole()}, nil
	case policy.ScopeCompanySubset:
		filter = repository.UserFilter{CompanyID: actor.CompanyID, Roles: scope.Roles}
	case policy.ScopeCompanyAll:
		filter = repository.UserFilter{CompanyID: actor.CompanyID}
	case policy.ScopeGlobal:
	}

	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if scope.HideRole {
		return hideRoles(users), nil
	}
	return users, nil
}

// ListByRole returns users holding role, within the caller's company
// unless the caller may cross tenants.
func (s *userService) ListByRole(ctx context.Context, actor model.Identity, role model.Role) ([]model.User, error) {
	if !policy.Allows(actor.Role, policy.OpUserListByRole) || !policy.CanListByRole(actor.Role, role) {
		s.logger.Warn("list by role denied", "user_id", actor.UserID, "role", actor.Role, "target_role", role)
		return nil, ErrUnauthorized
	}

	filter := repository.UserFilter{Roles: []model.Role{role}}
	if !policy.Allows(actor.Role, policy.OpCrossCompany) {
		filter.CompanyID = actor.CompanyID
	}

	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	if policy.VisibilityScope(actor.Role).HideRole {
		return hideRoles(users), nil
	}
	return users, nil
}

// Get returns one user if it lies inside the caller's visibility scope.
// Users outside it are reported as not found.
func (s *userService) Get(ctx context.Context, actor model.Identity, id string) (*model.User, error) {
	if !policy.Allows(actor.Role, policy.OpUserRead) {
		return nil, ErrUnauthorized
	}
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccessCompany(actor.Role, actor.CompanyID, user.CompanyID) {
		return nil, ErrNotFound
	}

	scope := policy.VisibilityScope(actor.Role)
	if scope.Kind == policy.ScopeCompanySubset && !slices.Contains(scope.Roles, user.Role) {
		return nil, ErrNotFound
	}
	if scope.HideRole {
		hidden := user.WithoutRole()
		return &hidden, nil
	}
	return user, nil
}

// Register creates a USER or CUSTOMER inside an existing company.
func (s *userService) Register(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	if !policy.CanRegisterAs(req.Role) {
		s.logger.Warn("registration denied", "requested_role", req.Role)
		return nil, ErrUnauthorized
	}

	company, err := s.companyRepo.FindByID(ctx, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("error finding company: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("%w: company does not exist", ErrInvalidInput)
	}
	if req.BranchID != nil {
		branch, err := s.branchRepo.FindByID(ctx, *req.BranchID)
		if err != nil {
			return nil, fmt.Errorf("error finding branch: %w", err)
		}
		if branch == nil || branch.CompanyID != company.ID {
			return nil, fmt.Errorf("%w: branch does not belong to company", ErrInvalidInput)
		}
	}

	hashedPassword, err := hashNewPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hashedPassword,
		Role:         req.Role,
		CompanyID:    company.ID,
		BranchID:     req.BranchID,
		Phone:        req.Phone,
		Document:     req.Document,
		Birthday:     req.Birthday,
		Avatar:       req.Avatar,
		Address:      req.Address,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if mapped := mapRepoErr(err); mapped == ErrAlreadyExists {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "company_id", user.CompanyID, "role", user.Role)
	return user, nil
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// UpdateSelf applies a partial update to the caller's own record. A role
// change is accepted only when it does not raise privilege. Company and
// branch membership cannot be changed here.
func (s *userService) UpdateSelf(ctx context.Context, actor model.Identity, req model.UpdateUserRequest) (*model.User, error) {
	if !policy.Allows(actor.Role, policy.OpUserUpdateSelf) {
		return nil, ErrUnauthorized
	}
	user, err := s.load(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if req.Role != nil && *req.Role != user.Role {
		if !policy.CanSelfAssign(user.Role, *req.Role) {
			s.logger.Warn("self role change denied", "user_id", user.ID, "from", user.Role, "to", *req.Role)
			return nil, ErrUnauthorized
		}
		user.Role = *req.Role
	}
	if req.Password != nil {
		hashedPassword, err := hashNewPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashedPassword
	}
	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
	}
	setIf(&user.Name, req.Name)
	setIf(&user.Phone, req.Phone)
	setIf(&user.Document, req.Document)
	setIf(&user.Birthday, req.Birthday)
	setIf(&user.Avatar, req.Avatar)
	setIf(&user.Address.Address, req.Address)
	setIf(&user.AddressNumber, req.AddressNumber)
	setIf(&user.City, req.City)
	setIf(&user.State, req.State)
	setIf(&user.Country, req.Country)
	setIf(&user.Zipcode, req.Zipcode)

	if err := s.userRepo.Update(ctx, user); err != nil {
		if mapped := mapRepoErr(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if policy.HidesOwnRole(user.Role) {
		hidden := user.WithoutRole()
		return &hidden, nil
	}
	return user, nil
}

// DeleteSelf removes the caller's own account.
func (s *userService) DeleteSelf(ctx context.Context, actor model.Identity) error {
	if !policy.Allows(actor.Role, policy.OpUserDeleteSelf) {
		return ErrUnauthorized
	}
	if err := s.userRepo.Delete(ctx, actor.UserID); err != nil {
		if mapped := mapRepoErr(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.Info("user deleted own account", "user_id", actor.UserID)
	return nil
}

// PromoteDemote sets the role of the user identified by email.
func (s *userService) PromoteDemote(ctx context.Context, actor model.Identity, req model.PromoteDemoteRequest) (*model.User, error) {
	if !policy.Allows(actor.Role, policy.OpUserPromote) {
		return nil, ErrUnauthorized
	}

	target, err := s.userRepo.FindCredentialByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	if target == nil {
		return nil, ErrNotFound
	}

	if !policy.CanAccessCompany(actor.Role, actor.CompanyID, target.CompanyID) ||
		!policy.CanMutateRole(actor.Role, target.Role, req.Role) {
		s.logger.Warn("role change denied",
			"actor_id", actor.UserID, "actor_role", actor.Role,
			"target_id", target.ID, "from", target.Role, "to", req.Role)
		return nil, ErrUnauthorized
	}

	if target.Role == req.Role {
		return target, nil
	}

	if err := s.userRepo.UpdateRole(ctx, target.ID, req.Role); err != nil {
		if mapped := mapRepoErr(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	direction := "promote"
	if policy.DirectionOf(target.Role, req.Role) == policy.Demote {
		direction = "demote"
	}
	s.logger.Info("role changed", "actor_id", actor.UserID, "target_id", target.ID,
		"from", target.Role, "to", req.Role, "direction", direction)

	target.Role = req.Role
	return target, nil
}

// hashNewPassword hashes a password chosen by the user. Input bcrypt cannot
// take is reported as ErrInvalidInput.
func hashNewPassword(password string) (string, error) {
	hash, err := utils.HashPassword(password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password must be at most 72 bytes", ErrInvalidInput)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}
