package model

import "time"

// Company is a tenant. Every user belongs to exactly one.
type Company struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Address
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Branch is a location of a company.
type Branch struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
	Document  string `json:"document"`
	Phone     string `json:"phone"`
	CompanyID string `json:"company_id"`
	Address
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyRequest is used for creating a company.
type CompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Avatar   string `json:"avatar"`
	Document string `json:"document" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Address
}

// UpdateCompanyRequest is a partial company update.
type UpdateCompanyRequest struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty" binding:"omitempty,email"`
	Avatar        *string `json:"avatar,omitempty"`
	Document      *string `json:"document,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	AddressNumber *string `json:"addressNumber,omitempty"`
	City          *string `json:"city,omitempty"`
	State         *string `json:"state,omitempty"`
	Country       *string `json:"country,omitempty"`
	Zipcode       *string `json:"zipcode,omitempty"`
}

// BranchRequest is used for creating a branch. CompanyID is ignored for
// actors below SUPER_ADMIN, who always create in their own company.
type BranchRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Avatar    string `json:"avatar"`
	Document  string `json:"document" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	CompanyID string `json:"company_id"`
	Address
}

// UpdateBranchRequest is a partial branch update.
type UpdateBranchRequest struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty" binding:"omitempty,email"`
	Avatar        *string `json:"avatar,omitempty"`
	Document      *string `json:"document,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	AddressNumber *string `json:"addressNumber,omitempty"`
	City          *string `json:"city,omitempty"`
	State         *string `json:"state,omitempty"`
	Country       *string `json:"country,omitempty"`
	Zipcode       *string `json:"zipcode,omitempty"`
}

// Page holds pagination and ordering for list endpoints.
type Page struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Offset returns the row offset for 1-based p.Page.
func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
