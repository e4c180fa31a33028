package repository

import (
	"context"
	"errors"
	"fmt"

	"manager_system/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CompanyRepository defines operations for company data
type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	FindByID(ctx context.Context, id string) (*model.Company, error)
	FindByName(ctx context.Context, name string) (*model.Company, error)
	List(ctx context.Context, page model.Page) ([]model.Company, error)
	Update(ctx context.Context, company *model.Company) error
	Delete(ctx context.Context, id string) error
}

type companyRepository struct {
	db DBTX
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db DBTX) CompanyRepository {
	return &companyRepository{db: db}
}

const companyColumns = `id, name, email, avatar, document, phone,
	address, address_number, city, state, country, zipcode, created_at, updated_at`

func scanCompany(row scanner, c *model.Company) error {
	return row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Avatar, &c.Document, &c.Phone,
		&c.Address.Address, &c.AddressNumber, &c.City, &c.State, &c.Country, &c.Zipcode,
		&c.CreatedAt, &c.UpdatedAt,
	)
}

// Create inserts a new company. An empty ID is filled with a fresh UUID.
func (r *companyRepository) Create(ctx context.Context, c *model.Company) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	sql := `INSERT INTO companies (id, name, email, avatar, document, phone,
            address, address_number, city, state, country, zipcode)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
            RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		c.ID, c.Name, c.Email, c.Avatar, c.Document, c.Phone,
		c.Address.Address, c.AddressNumber, c.City, c.State, c.Country, c.Zipcode,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create company: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

// FindByID retrieves a company by ID. A missing company yields (nil, nil).
func (r *companyRepository) FindByID(ctx context.Context, id string) (*model.Company, error) {
	c := &model.Company{}
	sql := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	if err := scanCompany(r.db.QueryRow(ctx, sql, id), c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find company by ID: %w", err)
	}
	return c, nil
}

// FindByName retrieves a company by its (lower-cased) name.
func (r *companyRepository) FindByName(ctx context.Context, name string) (*model.Company, error) {
	c := &model.Company{}
	sql := `SELECT ` + companyColumns + ` FROM companies WHERE name = $1`
	if err := scanCompany(r.db.QueryRow(ctx, sql, name), c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find company by name: %w", err)
	}
	return c, nil
}

// List retrieves one page of companies.
func (r *companyRepository) List(ctx context.Context, page model.Page) ([]model.Company, error) {
	sql := `SELECT ` + companyColumns + ` FROM companies` + orderBy(page.SortBy, page.SortOrder) + ` LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, sql, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	companies := []model.Company{}
	for rows.Next() {
		var c model.Company
		if err := scanCompany(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		companies = append(companies, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating company rows: %w", err)
	}
	return companies, nil
}

// Update modifies an existing company
func (r *companyRepository) Update(ctx context.Context, c *model.Company) error {
	sql := `UPDATE companies
            SET name = $1, email = $2, avatar = $3, document = $4, phone = $5, address = $6,
                address_number = $7, city = $8, state = $9, country = $10, zipcode = $11, updated_at = NOW()
            WHERE id = $12 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		c.Name, c.Email, c.Avatar, c.Document, c.Phone, c.Address.Address,
		c.AddressNumber, c.City, c.State, c.Country, c.Zipcode, c.ID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to update company: %w", ErrNotFound)
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to update company: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to update company: %w", err)
	}
	return nil
}

// Delete removes a company. Branches and users cascade.
func (r *companyRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete company: %w", ErrNotFound)
	}
	return nil
}
