package usecase

import (
	"errors"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/entity"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/tabular"
)

var ErrNoAgents = errors.New("no agents found for distribution")

// Assignment pairs an accepted row with its agent. Position is the row's index
// among accepted rows only.
type Assignment struct {
	Row      NormalizedRow
	Agent    entity.User
	Position int
}

type DistributionStats struct {
	Received int
	Accepted int
	Rejected int
}

// AgentFor picks the roster slot for the accepted row at position.
func AgentFor(roster []entity.User, position int) entity.User {
	return roster[position%len(roster)]
}

// PlanDistribution normalizes rows in order and assigns each accepted row to
// roster[accepted mod len(roster)]. Rejected rows do not consume a slot, so
// agents end up within one lead of each other.
func PlanDistribution(rows []tabular.Row, roster []entity.User) ([]Assignment, DistributionStats, error) {
	stats := DistributionStats{Received: len(rows)}
	if len(roster) == 0 {
		return nil, stats, ErrNoAgents
	}

	assignments := make([]Assignment, 0, len(rows))
	for _, row := range rows {
		normalized, ok := NormalizeRow(row)
		if !ok {
			stats.Rejected++
			continue
		}
		position := len(assignments)
		assignments = append(assignments, Assignment{
			Row:      normalized,
			Agent:    AgentFor(roster, position),
			Position: position,
		})
	}
	stats.Accepted = len(assignments)

	return assignments, stats, nil
}
