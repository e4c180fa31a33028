// Package policy decides which role may do what. Every function is pure:
// it takes roles and returns a decision without touching storage.
package policy

import "manager_system/internal/model"

// Operation names a guarded resource action.
type Operation string

const (
	OpUserReadSelf     Operation = "user:read:self"
	OpUserUpdateSelf   Operation = "user:update:self"
	OpUserDeleteSelf   Operation = "user:delete:self"
	OpUserList         Operation = "user:list"
	OpUserListByRole   Operation = "user:list:role"
	OpUserRead         Operation = "user:read"
	OpUserPromote      Operation = "user:promote"
	OpCompanyReadOwn   Operation = "company:read:own"
	OpCompanyList      Operation = "company:list"
	OpCompanyRead      Operation = "company:read"
	OpCompanyCreate    Operation = "company:create"
	OpCompanyUpdate    Operation = "company:update"
	OpCompanyUpdateAny Operation = "company:update:any"
	OpCompanyDelete    Operation = "company:delete"
	OpCompanyDeleteAny Operation = "company:delete:any"
	OpBranchReadOwn    Operation = "branch:read:own"
	OpBranchList       Operation = "branch:list"
	OpBranchRead       Operation = "branch:read"
	OpBranchCreate     Operation = "branch:create"
	OpBranchUpdate     Operation = "branch:update"
	OpBranchDelete     Operation = "branch:delete"
	OpCrossCompany     Operation = "tenant:cross"
)

// minimumRole is the single table of operation to lowest permitted role.
// Privilege is monotone, so every role at or above the entry is allowed.
var minimumRole = map[Operation]model.Role{
	OpUserReadSelf:     model.RoleCustomer,
	OpUserUpdateSelf:   model.RoleCustomer,
	OpUserDeleteSelf:   model.RoleManager,
	OpUserList:         model.RoleManager,
	OpUserListByRole:   model.RoleManager,
	OpUserRead:         model.RoleManager,
	OpUserPromote:      model.RoleAdmin,
	OpCompanyReadOwn:   model.RoleCustomer,
	OpCompanyList:      model.RoleSuperAdmin,
	OpCompanyRead:      model.RoleSuperAdmin,
	OpCompanyCreate:    model.RoleSuperAdmin,
	OpCompanyUpdate:    model.RoleAdmin,
	OpCompanyUpdateAny: model.RoleSuperAdmin,
	OpCompanyDelete:    model.RoleAdmin,
	OpCompanyDeleteAny: model.RoleSuperAdmin,
	OpBranchReadOwn:    model.RoleCustomer,
	OpBranchList:       model.RoleAdmin,
	OpBranchRead:       model.RoleAdmin,
	OpBranchCreate:     model.RoleAdmin,
	OpBranchUpdate:     model.RoleAdmin,
	OpBranchDelete:     model.RoleAdmin,
	OpCrossCompany:     model.RoleSuperAdmin,
}

// Allows reports whether role may perform op. Unknown roles and
// operations are denied.
func Allows(role model.Role, op Operation) bool {
	minRole, ok := minimumRole[op]
	if !ok {
		return false
	}
	return role.AtLeast(minRole)
}

// MinimumRole returns the lowest role permitted to perform op.
func MinimumRole(op Operation) (model.Role, bool) {
	r, ok := minimumRole[op]
	return r, ok
}

// ScopeKind describes how far an actor can see when listing users.
type ScopeKind int

const (
	ScopeSelf ScopeKind = iota
	ScopeCompanySubset
	ScopeCompanyAll
	ScopeGlobal
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeSelf:
		return "SELF"
	case ScopeCompanySubset:
		return "COMPANY_SUBSET"
	case ScopeCompanyAll:
		return "COMPANY_ALL"
	case ScopeGlobal:
		return "GLOBAL"
	}
	return "UNKNOWN"
}

// Scope is the result of VisibilityScope.
type Scope struct {
	Kind ScopeKind
	// Roles restricts a COMPANY_SUBSET listing.
	Roles []model.Role
	// HideRole strips the role field from returned records.
	HideRole bool
}

// VisibilityScope returns the user-listing scope for role.
func VisibilityScope(role model.Role) Scope {
	switch role {
	case model.RoleSuperAdmin:
		return Scope{Kind: ScopeGlobal}
	case model.RoleAdmin:
		return Scope{Kind: ScopeCompanyAll}
	case model.RoleManager:
		return Scope{
			Kind:     ScopeCompanySubset,
			Roles:    []model.Role{model.RoleManager, model.RoleUser, model.RoleCustomer},
			HideRole: true,
		}
	default:
		return Scope{Kind: ScopeSelf, HideRole: true}
	}
}

// CanListBeyondSelf reports whether role may list records other than its own.
func CanListBeyondSelf(role model.Role) bool {
	return role.AtLeast(model.RoleManager)
}

// HidesOwnRole reports whether role sees its own record without the role field.
func HidesOwnRole(role model.Role) bool {
	return role == model.RoleUser || role == model.RoleCustomer
}

// Direction classifies a role change.
type Direction int

const (
	Unchanged Direction = iota
	Promote
	Demote
)

// DirectionOf compares from and to by privilege.
func DirectionOf(from, to model.Role) Direction {
	switch {
	case to.Rank() > from.Rank():
		return Promote
	case to.Rank() < from.Rank():
		return Demote
	}
	return Unchanged
}

// CanMutateRole reports whether actor may change a user holding current to requested.
// SUPER_ADMIN may set any role. ADMIN may neither grant SUPER_ADMIN nor
// change the role of a SUPER_ADMIN. Nobody else may change roles.
func CanMutateRole(actor, current, requested model.Role) bool {
	if !actor.Valid() || !current.Valid() || !requested.Valid() {
		return false
	}
	switch actor {
	case model.RoleSuperAdmin:
		return true
	case model.RoleAdmin:
		return requested != model.RoleSuperAdmin && current != model.RoleSuperAdmin
	}
	return false
}

// CanRegisterAs reports whether an anonymous caller may sign up with role.
func CanRegisterAs(role model.Role) bool {
	return role == model.RoleUser || role == model.RoleCustomer
}

// CanSelfAssign reports whether a user holding current may set their own role to requested.
// Self-service changes never raise privilege.
func CanSelfAssign(current, requested model.Role) bool {
	if !current.Valid() || !requested.Valid() {
		return false
	}
	return DirectionOf(current, requested) != Promote
}

// CanListByRole reports whether actor may list users holding target.
func CanListByRole(actor, target model.Role) bool {
	return actor.AtLeast(model.RoleManager) && target.Valid() && actor.AtLeast(target)
}

// CanDeleteCompanyScoped reports whether actor may delete branches or companies.
func CanDeleteCompanyScoped(actor model.Role) bool {
	return actor == model.RoleAdmin || actor == model.RoleSuperAdmin
}

// CanAccessCompany reports whether actor, belonging to actorCompany, may act on
// a resource owned by targetCompany.
func CanAccessCompany(actor model.Role, actorCompany, targetCompany string) bool {
	if Allows(actor, OpCrossCompany) {
		return true
	}
	return actorCompany != "" && actorCompany == targetCompany
}
