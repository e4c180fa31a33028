package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Role is a single privilege tier. A user holds exactly one.
type Role string

const (
	RoleCustomer   Role = "CUSTOMER"
	RoleUser       Role = "USER"
	RoleManager    Role = "MANAGER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Roles lists every valid role from lowest to highest privilege.
var Roles = []Role{RoleCustomer, RoleUser, RoleManager, RoleAdmin, RoleSuperAdmin}

// Rank returns the position of r in the privilege order, or -1 when r is not a valid role.
func (r Role) Rank() int {
	for i, v := range Roles {
		if r == v {
			return i
		}
	}
	return -1
}

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool {
	return r.Rank() >= 0
}

// AtLeast reports whether r is valid and ranks at or above min.
func (r Role) AtLeast(min Role) bool {
	return r.Valid() && min.Valid() && r.Rank() >= min.Rank()
}

// ParseRole normalises s and returns the matching role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

// UnmarshalJSON accepts role names in any case. Unknown names are kept
// so that validation can reject them.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = Role(strings.ToUpper(strings.TrimSpace(s)))
	return nil
}

// Address is shared by users, companies and branches.
type Address struct {
	Address       string `json:"address"`
	AddressNumber string `json:"addressNumber"`
	City          string `json:"city"`
	State         string `json:"state"`
	Country       string `json:"country"`
	Zipcode       string `json:"zipcode"`
}

// User is both the public profile and the credential record.
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"` // never exposed
	RefreshTokenHash *string   `json:"-"` // nil means no active session
	Role             Role      `json:"roles,omitempty"`
	CompanyID        string    `json:"company_id"`
	BranchID         *string   `json:"branch_id"`
	Phone            string    `json:"phone"`
	Document         string    `json:"document"`
	Birthday         string    `json:"birthday"`
	Avatar           string    `json:"avatar,omitempty"`
	Address
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WithoutRole returns a copy of u whose role is omitted from JSON output.
func (u User) WithoutRole() User {
	u.Role = ""
	return u
}

// CreateUserRequest is the public registration payload.
type CreateUserRequest struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8,max=72"`
	Role      Role    `json:"roles" binding:"required,role"`
	CompanyID string  `json:"company_id" binding:"required"`
	BranchID  *string `json:"branch_id"`
	Phone     string  `json:"phone" binding:"required"`
	Document  string  `json:"document" binding:"required"`
	Birthday  string  `json:"birthday" binding:"required"`
	Avatar    string  `json:"avatar"`
	Address
}

// UpdateUserRequest carries a partial self-update. Nil fields are left untouched.
type UpdateUserRequest struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty" binding:"omitempty,email"`
	Password      *string `json:"password,omitempty" binding:"omitempty,min=8,max=72"`
	Role          *Role   `json:"roles,omitempty" binding:"omitempty,role"`
	Phone         *string `json:"phone,omitempty"`
	Document      *string `json:"document,omitempty"`
	Birthday      *string `json:"birthday,omitempty"`
	Avatar        *string `json:"avatar,omitempty"`
	Address       *string `json:"address,omitempty"`
	AddressNumber *string `json:"addressNumber,omitempty"`
	City          *string `json:"city,omitempty"`
	State         *string `json:"state,omitempty"`
	Country       *string `json:"country,omitempty"`
	Zipcode       *string `json:"zipcode,omitempty"`
}

// PromoteDemoteRequest changes the role of the user identified by email.
type PromoteDemoteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  Role   `json:"roles" binding:"required,role"`
}

// RoleQuery selects users holding a given role.
type RoleQuery struct {
	Role Role `json:"roles" binding:"required,role"`
}
