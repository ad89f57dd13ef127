package usecase

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/entity"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/queue"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/tabular"
)

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindAgents(ctx context.Context) ([]entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) FindAll(ctx context.Context) ([]entity.LeadWithAgent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeadWithAgent), args.Error(1)
}

func (m *MockLeadRepository) FindByAgentID(ctx context.Context, agentID string) ([]entity.Lead, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

// MockHasher
type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

// MockTokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(u *entity.User) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}

// MockAssignmentPublisher
type MockAssignmentPublisher struct {
	mock.Mock
}

func (m *MockAssignmentPublisher) PublishAssignment(ctx context.Context, payload queue.AssignmentPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// memoryLeads stores leads in insertion order and can fail the Nth create.
type memoryLeads struct {
	mu      sync.Mutex
	leads   []*entity.Lead
	deleted []string
	failAt  int // 1-based; 0 never fails
	calls   int
	err     error

	afterCreate func() // runs after every Create call
	ctxErrs     []error
}

func (s *memoryLeads) Create(ctx context.Context, lead *entity.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	if s.afterCreate != nil {
		defer s.afterCreate()
	}
	if s.failAt > 0 && s.calls == s.failAt {
		return s.err
	}
	s.leads = append(s.leads, lead)
	return nil
}

func (s *memoryLeads) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	for i, l := range s.leads {
		if l.ID == id {
			s.leads = append(s.leads[:i], s.leads[i+1:]...)
			break
		}
	}
	return nil
}

func makeRow(kv ...any) tabular.Row {
	row := make(tabular.Row, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		row = append(row, tabular.Cell{Header: kv[i].(string), Value: kv[i+1]})
	}
	return row
}

func makeRoster(names ...string) []entity.User {
	roster := make([]entity.User, len(names))
	for i, n := range names {
		roster[i] = entity.User{ID: "agent-" + n, Name: n, Email: n + "@example.com", Role: entity.RoleAgent}
	}
	return roster
}
