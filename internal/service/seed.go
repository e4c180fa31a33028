package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"manager_system/internal/model"
	"manager_system/internal/repository"
	"manager_system/internal/utils"
)

// SeedOptions describes the tenant and super administrator created on boot.
type SeedOptions struct {
	CompanyName   string
	CompanyEmail  string
	AdminEmail    string
	AdminPassword string
}

// Seed makes sure the default company and its SUPER_ADMIN exist. It is
// safe to run on every start.
func Seed(ctx context.Context, opts SeedOptions, companies repository.CompanyRepository, users repository.UserRepository, logger *slog.Logger) error {
	if opts.AdminEmail == "" || opts.AdminPassword == "" {
		logger.Info("seed skipped, no admin credentials configured")
		return nil
	}

	name := strings.ToLower(strings.TrimSpace(opts.CompanyName))
	company, err := companies.FindByName(ctx, name)
	if err != nil {
		return fmt.Errorf("seed: find company: %w", err)
	}
	if company == nil {
		company = &model.Company{Name: name, Email: normalizeEmail(opts.CompanyEmail)}
		if err := companies.Create(ctx, company); err != nil {
			return fmt.Errorf("seed: create company: %w", err)
		}
		logger.Info("seed created company", "company_id", company.ID, "name", name)
	}

	email := normalizeEmail(opts.AdminEmail)
	admin, err := users.FindCredentialByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("seed: find admin: %w", err)
	}
	if admin != nil {
		return nil
	}

	hashedPassword, err := utils.HashPassword(opts.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}
	admin = &model.User{
		Name:         "Super Admin",
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         model.RoleSuperAdmin,
		CompanyID:    company.ID,
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed: create admin: %w", err)
	}
	logger.Info("seed created super admin", "user_id", admin.ID, "company_id", company.ID)
	return nil
}
