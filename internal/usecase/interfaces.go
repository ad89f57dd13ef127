package usecase

import (
	"context"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/entity"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/queue"
)

// AgentRoster is the read side of the user store used by uploads.
type AgentRoster interface {
	FindAgents(ctx context.Context) ([]entity.User, error)
}

type LeadWriter interface {
	Create(ctx context.Context, lead *entity.Lead) error
	Delete(ctx context.Context, id string) error
}

type AssignmentPublisher interface {
	PublishAssignment(ctx context.Context, payload queue.AssignmentPayload) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(user *entity.User) (string, error)
}
