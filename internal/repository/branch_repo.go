package repository

import (
	"context"
	"errors"
	"fmt"

	"manager_system/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BranchRepository defines operations for branch data
type BranchRepository interface {
	Create(ctx context.Context, branch *model.Branch) error
	FindByID(ctx context.Context, id string) (*model.Branch, error)
	FindByName(ctx context.Context, companyID, name string) ([]model.Branch, error)
	List(ctx context.Context, companyID string, page model.Page) ([]model.Branch, error)
	Update(ctx context.Context, branch *model.Branch) error
	Delete(ctx context.Context, id string) error
}

type branchRepository struct {
	db DBTX
}

// NewBranchRepository creates a new BranchRepository
func NewBranchRepository(db DBTX) BranchRepository {
	return &branchRepository{db: db}
}

const branchColumns = `id, name, email, avatar, document, phone, company_id,
	address, address_number, city, state, country, zipcode, created_at, updated_at`

func scanBranch(row scanner, b *model.Branch) error {
	return row.Scan(
		&b.ID, &b.Name, &b.Email, &b.Avatar, &b.Document, &b.Phone, &b.CompanyID,
		&b.Address.Address, &b.AddressNumber, &b.City, &b.State, &b.Country, &b.Zipcode,
		&b.CreatedAt, &b.UpdatedAt,
	)
}

func collectBranches(rows pgx.Rows) ([]model.Branch, error) {
	defer rows.Close()
	branches := []model.Branch{}
	for rows.Next() {
		var b model.Branch
		if err := scanBranch(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan branch row: %w", err)
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating branch rows: %w", err)
	}
	return branches, nil
}

// Create inserts a new branch. An empty ID is filled with a fresh UUID.
func (r *branchRepository) Create(ctx context.Context, b *model.Branch) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	sql := `INSERT INTO branches (id, name, email, avatar, document, phone, company_id,
            address, address_number, city, state, country, zipcode)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
            RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		b.ID, b.Name, b.Email, b.Avatar, b.Document, b.Phone, b.CompanyID,
		b.Address.Address, b.AddressNumber, b.City, b.State, b.Country, b.Zipcode,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create branch: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create branch: %w", err)
	}
	return nil
}

// FindByID retrieves a branch by ID. A missing branch yields (nil, nil).
func (r *branchRepository) FindByID(ctx context.Context, id string) (*model.Branch, error) {
	b := &model.Branch{}
	sql := `SELECT ` + branchColumns + ` FROM branches WHERE id = $1`
	if err := scanBranch(r.db.QueryRow(ctx, sql, id), b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find branch by ID: %w", err)
	}
	return b, nil
}

// FindByName retrieves branches called name. An empty companyID searches every company.
func (r *branchRepository) FindByName(ctx context.Context, companyID, name string) ([]model.Branch, error) {
	sql := `SELECT ` + branchColumns + ` FROM branches WHERE name = $1`
	args := []interface{}{name}
	if companyID != "" {
		sql += ` AND company_id = $2`
		args = append(args, companyID)
	}
	sql += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches by name: %w", err)
	}
	return collectBranches(rows)
}

// List retrieves one page of branches. An empty companyID lists every company.
func (r *branchRepository) List(ctx context.Context, companyID string, page model.Page) ([]model.Branch, error) {
	sql := `SELECT ` + branchColumns + ` FROM branches`
	args := []interface{}{}
	if companyID != "" {
		sql += ` WHERE company_id = $1`
		args = append(args, companyID)
	}
	sql += orderBy(page.SortBy, page.SortOrder)
	sql += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Offset())

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	return collectBranches(rows)
}

// Update modifies an existing branch. The owning company never changes.
func (r *branchRepository) Update(ctx context.Context, b *model.Branch) error {
	sql := `UPDATE branches
            SET name = $1, email = $2, avatar = $3, document = $4, phone = $5, address = $6,
                address_number = $7, city = $8, state = $9, country = $10, zipcode = $11, updated_at = NOW()
            WHERE id = $12 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		b.Name, b.Email, b.Avatar, b.Document, b.Phone, b.Address.Address,
		b.AddressNumber, b.City, b.State, b.Country, b.Zipcode, b.ID,
	).Scan(&b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to update branch: %w", ErrNotFound)
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to update branch: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to update branch: %w", err)
	}
	return nil
}

// Delete removes a branch from the database
func (r *branchRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete branch: %w", ErrNotFound)
	}
	return nil
}
