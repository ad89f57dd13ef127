package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/entity"
)

type LoginUseCase struct {
	Users  entity.UserRepositoryInterface
	Hasher PasswordHasher
	Tokens TokenIssuer
}

func NewLoginUseCase(users entity.UserRepositoryInterface, hasher PasswordHasher, tokens TokenIssuer) *LoginUseCase {
	return &LoginUseCase{Users: users, Hasher: hasher, Tokens: tokens}
}

// Execute authenticates an administrator. The role is checked before the
// password, so a non-admin account gets FORBIDDEN regardless of the password.
func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	if errs := ValidateLoginInput(input); len(errs) > 0 {
		return nil, &DomainError{Code: CodeValidation, Message: "Please provide email and password"}
	}

	user, err := uc.Users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, &DomainError{Code: CodeInvalidCredentials, Message: "Invalid credentials"}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Error during login", Err: err}
	}

	if !user.IsAdmin() {
		return nil, &DomainError{Code: CodeForbidden, Message: "Access denied. Admin login only."}
	}

	if err := uc.Hasher.Compare(user.PasswordHash, input.Password); err != nil {
		return nil, &DomainError{Code: CodeInvalidCredentials, Message: "Invalid credentials"}
	}

	token, err := uc.Tokens.Issue(user)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Error during login", Err: err}
	}

	return &LoginOutput{Token: token, User: user}, nil
}
