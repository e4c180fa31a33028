package model

// Identity is the verified actor attached to an authenticated request.
// It is rebuilt from the token signature on every request and never
// trusted from client-supplied fields.
type Identity struct {
	UserID    string  `json:"sub"`
	Email     string  `json:"email"`
	Role      Role    `json:"role"`
	CompanyID string  `json:"company_id"`
	BranchID  *string `json:"branch_id,omitempty"`
}

// IdentityOf builds the claim set for u, leaving out secrets.
func IdentityOf(u *User) Identity {
	id := Identity{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CompanyID: u.CompanyID,
	}
	if u.BranchID != nil {
		b := *u.BranchID
		id.BranchID = &b
	}
	return id
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the refresh payload. The token may also arrive as a bearer header.
type RefreshRequest struct {
	ID           string `json:"id" binding:"required"`
	RefreshToken string `json:"refreshToken"`
}
