package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"manager_system/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumnNames = []string{
	"id", "name", "email", "password_hash", "refresh_token_hash", "role", "company_id", "branch_id",
	"phone", "document", "birthday", "avatar", "address", "address_number", "city", "state", "country", "zipcode",
	"created_at", "updated_at",
}

// anyArgs matches n positional arguments of any value.
func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func addUserRow(rows *pgxmock.Rows, id, email string, role model.Role, refreshHash *string) *pgxmock.Rows {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	branch := "branch-1"
	return rows.AddRow(
		id, "Jane", email, "$2a$10$hash", refreshHash, role, "company-1", &branch,
		"555", "doc", "1990-01-01", "", "Main St", "10", "Town", "ST", "BR", "00000",
		now, now,
	)
}

func TestUserRepository_FindCredentialByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	hash := "$2a$10$refresh"
	rows := addUserRow(pgxmock.NewRows(userColumnNames), "user-1", "jane@x.com", model.RoleManager, &hash)
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("jane@x.com").
		WillReturnRows(rows)

	repo := NewUserRepository(mock)
	u, err := repo.FindCredentialByEmail(context.Background(), "jane@x.com")

	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "user-1", u.ID)
	assert.Equal(t, model.RoleManager, u.Role)
	assert.Equal(t, "$2a$10$hash", u.PasswordHash)
	require.NotNil(t, u.RefreshTokenHash)
	assert.Equal(t, hash, *u.RefreshTokenHash)
	require.NotNil(t, u.BranchID)
	assert.Equal(t, "branch-1", *u.BranchID)
	assert.Equal(t, "Main St", u.Address.Address)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindCredentialByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := NewUserRepository(mock)
	u, err := repo.FindCredentialByID(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindCredentialByID_DBError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs("user-1").
		WillReturnError(errors.New("connection reset"))

	repo := NewUserRepository(mock)
	u, err := repo.FindCredentialByID(context.Background(), "user-1")

	assert.Error(t, err)
	assert.Nil(t, u)
	assert.Contains(t, err.Error(), "failed to find user by ID")
}

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "Jane", "jane@x.com", "hash", model.RoleUser, "company-1", (*string)(nil),
			"555", "doc", "1990-01-01", "", "", "", "", "", "", "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	u := &model.User{
		Name: "Jane", Email: "jane@x.com", PasswordHash: "hash", Role: model.RoleUser,
		CompanyID: "company-1", Phone: "555", Document: "doc", Birthday: "1990-01-01",
	}
	repo := NewUserRepository(mock)
	err = repo.Create(context.Background(), u)

	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, now, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(anyArgs(17)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	repo := NewUserRepository(mock)
	err = repo.Create(context.Background(), &model.User{ID: "user-1", Email: "jane@x.com", Role: model.RoleUser})

	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepository_List_CompanyAndRoles(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(userColumnNames)
	addUserRow(rows, "user-1", "a@x.com", model.RoleManager, nil)
	addUserRow(rows, "user-2", "b@x.com", model.RoleUser, nil)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE company_id = \$1 AND role = ANY\(\$2\) ORDER BY created_at ASC, id ASC`).
		WithArgs("company-1", []string{"MANAGER", "USER"}).
		WillReturnRows(rows)

	repo := NewUserRepository(mock)
	users, err := repo.List(context.Background(), UserFilter{
		CompanyID: "company-1",
		Roles:     []model.Role{model.RoleManager, model.RoleUser},
	})

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "user-1", users[0].ID)
	assert.Equal(t, "user-2", users[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List_Unfiltered(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users ORDER BY created_at ASC, id ASC`).
		WithArgs().
		WillReturnRows(pgxmock.NewRows(userColumnNames))

	repo := NewUserRepository(mock)
	users, err := repo.List(context.Background(), UserFilter{})

	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`UPDATE users`).
		WithArgs(anyArgs(15)...).
		WillReturnError(pgx.ErrNoRows)

	repo := NewUserRepository(mock)
	err = repo.Update(context.Background(), &model.User{ID: "missing"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewUserRepository(mock)
	assert.NoError(t, repo.Delete(context.Background(), "user-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "user-1"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateRefreshHash_Clear(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users SET refresh_token_hash = \$1 WHERE id = \$2`).
		WithArgs((*string)(nil), "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewUserRepository(mock)
	assert.NoError(t, repo.UpdateRefreshHash(context.Background(), "user-1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SwapRefreshHash(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	sql := `UPDATE users SET refresh_token_hash = \$1 WHERE id = \$2 AND refresh_token_hash = \$3`
	mock.ExpectExec(sql).
		WithArgs("next", "user-1", "old").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(sql).
		WithArgs("later", "user-1", "old").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewUserRepository(mock)

	swapped, err := repo.SwapRefreshHash(context.Background(), "user-1", "old", "next")
	require.NoError(t, err)
	assert.True(t, swapped)

	swapped, err = repo.SwapRefreshHash(context.Background(), "user-1", "old", "later")
	require.NoError(t, err)
	assert.False(t, swapped, "a stale expected hash must not overwrite the current one")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateRole(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users SET role = \$1`).
		WithArgs(model.RoleAdmin, "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewUserRepository(mock)
	assert.NoError(t, repo.UpdateRole(context.Background(), "user-1", model.RoleAdmin))
	assert.NoError(t, mock.ExpectationsWereMet())
}
