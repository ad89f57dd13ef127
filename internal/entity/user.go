package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

// User is an account of the system. Agents are users with RoleAgent; the
// distribution roster is the full set of them.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Mobile       string    `json:"mobile"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewUser(name, email, mobile, passwordHash, role string) *User {
	now := time.Now()
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Mobile:       mobile,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u *User) IsAgent() bool { return u.Role == RoleAgent }

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindAgents returns every agent ordered by creation, oldest first.
	FindAgents(ctx context.Context) ([]User, error)
}
