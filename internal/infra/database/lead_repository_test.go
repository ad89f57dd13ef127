package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/entity"
)

func TestLeadRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLeadRepository(mock)
	lead := entity.NewLead("Ann", "9876543210", "call back", "a1", "b1")

	mock.ExpectExec("INSERT INTO leads").
		WithArgs(lead.ID, "Ann", "9876543210", "call back", "a1", "b1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), lead))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_Create_Error(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLeadRepository(mock)
	lead := entity.NewLead("Ann", "9876543210", "", "a1", "b1")

	mock.ExpectExec("INSERT INTO leads").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("foreign key violation"))

	err := repo.Create(context.Background(), lead)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "foreign key violation")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_Delete(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLeadRepository(mock)

	mock.ExpectExec("DELETE FROM leads").
		WithArgs("l1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), "l1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_FindAll(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLeadRepository(mock)
	now := time.Now()

	mock.ExpectQuery("JOIN users u ON u.id = l.agent_id").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "first_name", "phone", "notes", "agent_id", "batch_id", "created_at", "name", "email",
		}).
			AddRow("l1", "Ann", "9876543210", "", "a1", "b1", now, "Agent A", "a@example.com").
			AddRow("l2", "Bo", "1234567890", "vip", "a2", "b1", now, "Agent B", "b@example.com"))

	leads, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "Agent A", leads[0].AgentName)
	assert.Equal(t, "vip", leads[1].Notes)
	assert.Equal(t, "b@example.com", leads[1].AgentEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_FindByAgentID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLeadRepository(mock)
	now := time.Now()

	mock.ExpectQuery("FROM leads").
		WithArgs("a1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "first_name", "phone", "notes", "agent_id", "batch_id", "created_at",
		}).AddRow("l1", "Ann", "9876543210", "", "a1", "b1", now))

	leads, err := repo.FindByAgentID(context.Background(), "a1")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "9876543210", leads[0].Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_FindByAgentID_Empty(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLeadRepository(mock)

	mock.ExpectQuery("FROM leads").
		WithArgs("a9").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "first_name", "phone", "notes", "agent_id", "batch_id", "created_at",
		}))

	leads, err := repo.FindByAgentID(context.Background(), "a9")
	require.NoError(t, err)
	assert.Empty(t, leads)
	assert.NoError(t, mock.ExpectationsWereMet())
}
