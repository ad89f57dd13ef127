package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/entity"
)

func TestLogin_Success(t *testing.T) {
	admin := &entity.User{ID: "u1", Email: "admin@example.com", PasswordHash: "hash", Role: entity.RoleAdmin}
	users := &MockUserRepository{}
	users.On("FindByEmail", mock.Anything, "admin@example.com").Return(admin, nil)
	hasher := &MockHasher{}
	hasher.On("Compare", "hash", "pw").Return(nil)
	tokens := &MockTokenIssuer{}
	tokens.On("Issue", admin).Return("jwt-token", nil)

	out, err := NewLoginUseCase(users, hasher, tokens).Execute(context.Background(), LoginInput{
		Email: " Admin@Example.com ", Password: "pw",
	})
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", out.Token)
	assert.Equal(t, "u1", out.User.ID)
}

func TestLogin_MissingFields(t *testing.T) {
	uc := NewLoginUseCase(&MockUserRepository{}, &MockHasher{}, &MockTokenIssuer{})

	_, err := uc.Execute(context.Background(), LoginInput{Email: "admin@example.com"})
	requireDomainCode(t, err, CodeValidation)
}

func TestLogin_UnknownUser(t *testing.T) {
	users := &MockUserRepository{}
	users.On("FindByEmail", mock.Anything, "x@example.com").Return(nil, entity.ErrUserNotFound)

	_, err := NewLoginUseCase(users, &MockHasher{}, &MockTokenIssuer{}).Execute(context.Background(), LoginInput{
		Email: "x@example.com", Password: "pw",
	})
	requireDomainCode(t, err, CodeInvalidCredentials)
}

func TestLogin_AgentIsForbiddenBeforePasswordCheck(t *testing.T) {
	users := &MockUserRepository{}
	users.On("FindByEmail", mock.Anything, "agent@example.com").
		Return(&entity.User{ID: "a1", PasswordHash: "hash", Role: entity.RoleAgent}, nil)
	hasher := &MockHasher{}

	_, err := NewLoginUseCase(users, hasher, &MockTokenIssuer{}).Execute(context.Background(), LoginInput{
		Email: "agent@example.com", Password: "wrong",
	})
	de := requireDomainCode(t, err, CodeForbidden)
	assert.Equal(t, "Access denied. Admin login only.", de.Message)
	hasher.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := &MockUserRepository{}
	users.On("FindByEmail", mock.Anything, "admin@example.com").
		Return(&entity.User{ID: "u1", PasswordHash: "hash", Role: entity.RoleAdmin}, nil)
	hasher := &MockHasher{}
	hasher.On("Compare", "hash", "wrong").Return(errors.New("mismatch"))
	tokens := &MockTokenIssuer{}

	_, err := NewLoginUseCase(users, hasher, tokens).Execute(context.Background(), LoginInput{
		Email: "admin@example.com", Password: "wrong",
	})
	requireDomainCode(t, err, CodeInvalidCredentials)
	tokens.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestSeedAdmin(t *testing.T) {
	t.Run("creates when absent", func(t *testing.T) {
		users := &MockUserRepository{}
		users.On("FindByEmail", mock.Anything, "admin@example.com").Return(nil, entity.ErrUserNotFound)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
			return u.IsAdmin() && u.PasswordHash == "hashed" && u.Name == "Admin"
		})).Return(nil)
		hasher := &MockHasher{}
		hasher.On("Hash", "pw").Return("hashed", nil)

		created, err := NewSeedAdminUseCase(users, hasher).Execute(context.Background(), SeedAdminInput{
			Email: "Admin@example.com", Password: "pw",
		})
		require.NoError(t, err)
		assert.True(t, created)
		users.AssertExpectations(t)
	})

	t.Run("skips when present", func(t *testing.T) {
		users := &MockUserRepository{}
		users.On("FindByEmail", mock.Anything, "admin@example.com").Return(&entity.User{ID: "u1"}, nil)

		created, err := NewSeedAdminUseCase(users, &MockHasher{}).Execute(context.Background(), SeedAdminInput{
			Email: "admin@example.com", Password: "pw",
		})
		require.NoError(t, err)
		assert.False(t, created)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("requires credentials", func(t *testing.T) {
		_, err := NewSeedAdminUseCase(&MockUserRepository{}, &MockHasher{}).Execute(context.Background(), SeedAdminInput{})
		assert.Error(t, err)
	})
}

func TestListLeads(t *testing.T) {
	leads := &MockLeadRepository{}
	leads.On("FindAll", mock.Anything).Return(nil, nil)
	leads.On("FindByAgentID", mock.Anything, "a1").Return(nil, errors.New("db down"))

	uc := NewListLeadsUseCase(leads)

	all, err := uc.All(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)

	_, err = uc.ByAgent(context.Background(), "a1")
	requireTechnicalCode(t, err, CodeDatabase)
}
