package usecase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/tabular"
)

func TestPlanDistribution_RoundRobinBalance(t *testing.T) {
	for k := 1; k <= 5; k++ {
		for n := 0; n <= 17; n++ {
			t.Run(fmt.Sprintf("K=%d/N=%d", k, n), func(t *testing.T) {
				roster := makeRoster(agentNames(k)...)
				rows := make([]tabular.Row, n)
				for i := range rows {
					rows[i] = makeRow("FirstName", fmt.Sprintf("lead-%d", i), "Phone", "5551234567")
				}

				assignments, stats, err := PlanDistribution(rows, roster)
				require.NoError(t, err)
				assert.Equal(t, n, stats.Accepted)

				counts := map[string]int{}
				for i, a := range assignments {
					assert.Equal(t, roster[i%k].ID, a.Agent.ID)
					assert.Equal(t, i, a.Position)
					counts[a.Agent.ID]++
				}

				minCount, maxCount := n, 0
				for _, agent := range roster {
					c := counts[agent.ID]
					minCount = min(minCount, c)
					maxCount = max(maxCount, c)
				}
				assert.LessOrEqual(t, maxCount-minCount, 1)
			})
		}
	}
}

func TestPlanDistribution_RejectedRowsDoNotAdvanceCycle(t *testing.T) {
	roster := makeRoster("A", "B")
	rows := []tabular.Row{
		makeRow("FirstName", "Ann", "Phone", "(555) 123-4567"),
		makeRow("FirstName", "Bo", "Phone", "123"),
		makeRow("FirstName", "Cy", "Phone", "555.987.6543"),
	}

	assignments, stats, err := PlanDistribution(rows, roster)
	require.NoError(t, err)
	require.Len(t, assignments, 2)

	assert.Equal(t, "Ann", assignments[0].Row.FirstName)
	assert.Equal(t, "agent-A", assignments[0].Agent.ID)
	assert.Equal(t, "Cy", assignments[1].Row.FirstName)
	assert.Equal(t, "agent-B", assignments[1].Agent.ID)
	assert.Equal(t, DistributionStats{Received: 3, Accepted: 2, Rejected: 1}, stats)
}

func TestPlanDistribution_EmptyRoster(t *testing.T) {
	rows := []tabular.Row{makeRow("FirstName", "Ann", "Phone", "5551234567")}

	assignments, _, err := PlanDistribution(rows, nil)
	assert.ErrorIs(t, err, ErrNoAgents)
	assert.Nil(t, assignments)
}

func TestAgentFor(t *testing.T) {
	roster := makeRoster("A", "B", "C")
	assert.Equal(t, "agent-A", AgentFor(roster, 0).ID)
	assert.Equal(t, "agent-C", AgentFor(roster, 2).ID)
	assert.Equal(t, "agent-A", AgentFor(roster, 3).ID)
	assert.Equal(t, "agent-B", AgentFor(roster, 7).ID)
}

func agentNames(k int) []string {
	names := make([]string, k)
	for i := range names {
		names[i] = string(rune('A' + i))
	}
	return names
}
