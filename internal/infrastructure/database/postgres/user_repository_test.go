package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-verification-portal/internal/domain/user"
)

func seedUser(t *testing.T, repo *UserRepository, username, email, employeeID, department string) *user.User {
	t.Helper()
	u := &user.User{
		Username:       username,
		Email:          email,
		PasswordHashed: "$2a$10$notarealhash",
		Name:           "Alice Nguyen",
		Department:     department,
		EmployeeID:     employeeID,
		Role:           "employee",
		IsActive:       true,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserCreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	seedUser(t, repo, "alice", "alice@example.com", "EMP001", "Engineering")

	err := repo.Create(context.Background(), &user.User{
		Username:       "alice",
		Email:          "other@example.com",
		PasswordHashed: "$2a$10$notarealhash",
		Name:           "Other",
		Department:     "Finance",
		EmployeeID:     "EMP002",
		Role:           "employee",
	})
	assert.ErrorIs(t, err, user.ErrUserAlreadyExists)
}

func TestUserLookups(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := seedUser(t, repo, "alice", "alice@example.com", "EMP001", "Engineering")

	byUsername, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byEmployeeID, err := repo.GetByEmployeeID(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmployeeID.ID)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserSetActive(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := seedUser(t, repo, "alice", "alice@example.com", "EMP001", "Engineering")

	require.NoError(t, repo.SetActive(ctx, created.ID, false))

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestListByDepartments(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, repo, "alice", "alice@example.com", "EMP001", "Engineering")
	seedUser(t, repo, "bob", "bob@example.com", "EMP002", "Finance")
	seedUser(t, repo, "carol", "carol@example.com", "EMP003", "Engineering")

	users, err := repo.ListByDepartments(ctx, []string{"Engineering"})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = repo.ListByEmployeeIDs(ctx, []string{"EMP002", "EMP003"})
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestRefreshTokenLifecycle(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	tokenRepo := NewRefreshTokenRepository(db)
	ctx := context.Background()

	u := seedUser(t, userRepo, "alice", "alice@example.com", "EMP001", "Engineering")

	token := &user.RefreshToken{
		UserID:    u.ID,
		Token:     "refresh-token-1",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, tokenRepo.Create(ctx, token))

	stored, err := tokenRepo.GetByToken(ctx, "refresh-token-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, stored.UserID)
	assert.False(t, stored.Revoked)

	require.NoError(t, tokenRepo.Revoke(ctx, "refresh-token-1"))

	stored, err = tokenRepo.GetByToken(ctx, "refresh-token-1")
	require.NoError(t, err)
	assert.True(t, stored.Revoked)
}

func TestRevokeAllForUser(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	tokenRepo := NewRefreshTokenRepository(db)
	ctx := context.Background()

	u := seedUser(t, userRepo, "alice", "alice@example.com", "EMP001", "Engineering")

	for _, tok := range []string{"t1", "t2"} {
		require.NoError(t, tokenRepo.Create(ctx, &user.RefreshToken{
			UserID:    u.ID,
			Token:     tok,
			ExpiresAt: time.Now().Add(24 * time.Hour),
		}))
	}

	require.NoError(t, tokenRepo.RevokeAllForUser(ctx, u.ID))

	for _, tok := range []string{"t1", "t2"} {
		stored, err := tokenRepo.GetByToken(ctx, tok)
		require.NoError(t, err)
		assert.True(t, stored.Revoked)
	}
}
