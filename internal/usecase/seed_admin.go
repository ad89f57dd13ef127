package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/entity"
)

type SeedAdminInput struct {
	Name     string
	Email    string
	Password string
}

type SeedAdminUseCase struct {
	Users  entity.UserRepositoryInterface
	Hasher PasswordHasher
}

func NewSeedAdminUseCase(users entity.UserRepositoryInterface, hasher PasswordHasher) *SeedAdminUseCase {
	return &SeedAdminUseCase{Users: users, Hasher: hasher}
}

// Execute creates the admin account unless one with the same email exists.
// It reports whether an account was created.
func (uc *SeedAdminUseCase) Execute(ctx context.Context, input SeedAdminInput) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return false, eris.New("seed: admin email and password are required")
	}

	existing, err := uc.Users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		zap.L().Info("admin already present", zap.String("user_id", existing.ID))
		return false, nil
	case !errors.Is(err, entity.ErrUserNotFound):
		return false, eris.Wrap(err, "seed: lookup admin")
	}

	hash, err := uc.Hasher.Hash(input.Password)
	if err != nil {
		return false, eris.Wrap(err, "seed: hash password")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Admin"
	}

	admin := entity.NewUser(name, email, "", hash, entity.RoleAdmin)
	if err := uc.Users.Create(ctx, admin); err != nil {
		return false, eris.Wrap(err, "seed: create admin")
	}

	zap.L().Info("admin created", zap.String("user_id", admin.ID), zap.String("email", email))
	return true, nil
}
