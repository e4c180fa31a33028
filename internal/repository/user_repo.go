package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"manager_system/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data. The records it returns
// carry the password and refresh-token hashes; callers must not serialise
// them beyond the JSON tags on model.User.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindCredentialByEmail(ctx context.Context, email string) (*model.User, error)
	FindCredentialByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, filter UserFilter) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
	UpdateRefreshHash(ctx context.Context, id string, hash *string) error
	SwapRefreshHash(ctx context.Context, id, expected, next string) (bool, error)
	UpdateRole(ctx context.Context, id string, role model.Role) error
}

// UserFilter narrows List. Zero values mean no restriction.
type UserFilter struct {
	CompanyID string
	Roles     []model.Role
}

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, password_hash, refresh_token_hash, role, company_id, branch_id,
	phone, document, birthday, avatar, address, address_number, city, state, country, zipcode,
	created_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row scanner, u *model.User) error {
	return row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RefreshTokenHash, &u.Role, &u.CompanyID, &u.BranchID,
		&u.Phone, &u.Document, &u.Birthday, &u.Avatar,
		&u.Address.Address, &u.AddressNumber, &u.City, &u.State, &u.Country, &u.Zipcode,
		&u.CreatedAt, &u.UpdatedAt,
	)
}

// Create inserts a new user. An empty ID is filled with a fresh UUID.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	sql := `INSERT INTO users (id, name, email, password_hash, role, company_id, branch_id,
            phone, document, birthday, avatar, address, address_number, city, state, country, zipcode)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
            RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.CompanyID, u.BranchID,
		u.Phone, u.Document, u.Birthday, u.Avatar,
		u.Address.Address, u.AddressNumber, u.City, u.State, u.Country, u.Zipcode,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create user: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindCredentialByEmail retrieves a user by email. A missing user yields (nil, nil).
func (r *userRepository) FindCredentialByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := scanUser(r.db.QueryRow(ctx, sql, email), u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return u, nil
}

// FindCredentialByID retrieves a user by ID. A missing user yields (nil, nil).
func (r *userRepository) FindCredentialByID(ctx context.Context, id string) (*model.User, error) {
	u := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := scanUser(r.db.QueryRow(ctx, sql, id), u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return u, nil
}

// List retrieves users matching filter, oldest first.
func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]model.User, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + userColumns + ` FROM users`)

	var conditions []string
	args := []interface{}{}
	argCount := 1

	if filter.CompanyID != "" {
		conditions = append(conditions, fmt.Sprintf("company_id = $%d", argCount))
		args = append(args, filter.CompanyID)
		argCount++
	}
	if len(filter.Roles) > 0 {
		roles := make([]string, len(filter.Roles))
		for i, role := range filter.Roles {
			roles[i] = string(role)
		}
		conditions = append(conditions, fmt.Sprintf("role = ANY($%d)", argCount))
		args = append(args, roles)
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at ASC, id ASC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// Update writes profile fields, role and password hash. Company and branch
// membership are not changed here.
func (r *userRepository) Update(ctx context.Context, u *model.User) error {
	sql := `UPDATE users
            SET name = $1, email = $2, password_hash = $3, role = $4, phone = $5, document = $6,
                birthday = $7, avatar = $8, address = $9, address_number = $10, city = $11,
                state = $12, country = $13, zipcode = $14, updated_at = NOW()
            WHERE id = $15 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		u.Name, u.Email, u.PasswordHash, u.Role, u.Phone, u.Document,
		u.Birthday, u.Avatar, u.Address.Address, u.AddressNumber, u.City,
		u.State, u.Country, u.Zipcode, u.ID,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to update user: %w", ErrNotFound)
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to update user: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Delete removes a user from the database
func (r *userRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete user: %w", ErrNotFound)
	}
	return nil
}

// UpdateRefreshHash overwrites the stored refresh-token hash. A nil hash ends the session.
func (r *userRepository) UpdateRefreshHash(ctx context.Context, id string, hash *string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET refresh_token_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return fmt.Errorf("failed to update refresh hash: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update refresh hash: %w", ErrNotFound)
	}
	return nil
}

// SwapRefreshHash replaces the refresh-token hash only if it still equals
// expected. It reports whether the swap happened.
func (r *userRepository) SwapRefreshHash(ctx context.Context, id, expected, next string) (bool, error) {
	sql := `UPDATE users SET refresh_token_hash = $1 WHERE id = $2 AND refresh_token_hash = $3`
	cmdTag, err := r.db.Exec(ctx, sql, next, id, expected)
	if err != nil {
		return false, fmt.Errorf("failed to swap refresh hash: %w", err)
	}
	return cmdTag.RowsAffected() == 1, nil
}

// UpdateRole replaces the role of a user
func (r *userRepository) UpdateRole(ctx context.Context, id string, role model.Role) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`, role, id)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update role: %w", ErrNotFound)
	}
	return nil
}
