package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/entity"
)

const (
	msgAgentNotFound = "Agent not found"
	msgEmailTaken    = "Email already registered"
)

type ManageAgentsUseCase struct {
	Users  entity.UserRepositoryInterface
	Hasher PasswordHasher
}

func NewManageAgentsUseCase(users entity.UserRepositoryInterface, hasher PasswordHasher) *ManageAgentsUseCase {
	return &ManageAgentsUseCase{Users: users, Hasher: hasher}
}

func (uc *ManageAgentsUseCase) List(ctx context.Context) ([]entity.User, error) {
	agents, err := uc.Users.FindAgents(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Error fetching agents", Err: err}
	}
	if agents == nil {
		agents = []entity.User{}
	}
	return agents, nil
}

func (uc *ManageAgentsUseCase) Create(ctx context.Context, input CreateAgentInput) (*entity.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Mobile = strings.TrimSpace(input.Mobile)

	if errs := ValidateCreateAgentInput(input); len(errs) > 0 {
		return nil, validationFailure(errs)
	}

	hash, err := uc.Hasher.Hash(input.Password)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Error creating agent", Err: err}
	}

	agent := entity.NewUser(input.Name, input.Email, input.Mobile, hash, entity.RoleAgent)
	if err := uc.Users.Create(ctx, agent); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, &DomainError{Code: CodeEmailTaken, Message: msgEmailTaken}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Error creating agent", Err: err}
	}

	zap.L().Info("agent created", zap.String("agent_id", agent.ID))
	return agent, nil
}

func (uc *ManageAgentsUseCase) Update(ctx context.Context, id string, input UpdateAgentInput) (*entity.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Mobile = strings.TrimSpace(input.Mobile)

	if errs := ValidateUpdateAgentInput(input); len(errs) > 0 {
		return nil, validationFailure(errs)
	}

	agent, err := uc.findAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	agent.Name = input.Name
	agent.Email = input.Email
	agent.Mobile = input.Mobile
	agent.UpdatedAt = time.Now()

	if err := uc.Users.Update(ctx, agent); err != nil {
		switch {
		case errors.Is(err, entity.ErrEmailAlreadyExists):
			return nil, &DomainError{Code: CodeEmailTaken, Message: msgEmailTaken}
		case errors.Is(err, entity.ErrUserNotFound):
			return nil, &DomainError{Code: CodeNotFound, Message: msgAgentNotFound}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Error updating agent", Err: err}
	}

	return agent, nil
}

// Delete removes an agent. Leads owned by the agent are removed with it.
func (uc *ManageAgentsUseCase) Delete(ctx context.Context, id string) error {
	user, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return &DomainError{Code: CodeNotFound, Message: msgAgentNotFound}
		}
		return &TechnicalError{Code: CodeDatabase, Message: "Error deleting agent", Err: err}
	}
	if !user.IsAgent() {
		return &DomainError{Code: CodeNotAgent, Message: "User is not an agent"}
	}

	if err := uc.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return &DomainError{Code: CodeNotFound, Message: msgAgentNotFound}
		}
		return &TechnicalError{Code: CodeDatabase, Message: "Error deleting agent", Err: err}
	}

	zap.L().Info("agent deleted", zap.String("agent_id", id))
	return nil
}

func (uc *ManageAgentsUseCase) findAgent(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: msgAgentNotFound}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Error fetching agent", Err: err}
	}
	if !user.IsAgent() {
		return nil, &DomainError{Code: CodeNotFound, Message: msgAgentNotFound}
	}
	return user, nil
}
