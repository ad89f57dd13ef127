package usecase

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Transaction runs operations in order and stops at the first failure. When
// an operation fails, the compensations of the operations that already
// succeeded run in reverse order. Operations added without a compensation
// stay committed.
type Transaction struct {
	operations []Operation
}

type Operation struct {
	Name       string
	Fn         func(context.Context) error
	Compensate func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

func (t *Transaction) AddOperation(name string, fn, compensate func(context.Context) error) {
	t.operations = append(t.operations, Operation{Name: name, Fn: fn, Compensate: compensate})
}

func (t *Transaction) Len() int { return len(t.operations) }

// Execute returns the number of operations that completed and the first error.
func (t *Transaction) Execute(ctx context.Context) (int, error) {
	for i, op := range t.operations {
		if err := op.Fn(ctx); err != nil {
			compensated := t.rollback(ctx, i)
			return i, eris.Wrapf(err, "operation %q failed (%d of %d completed, %d compensated)", op.Name, i, len(t.operations), compensated)
		}
	}
	return len(t.operations), nil
}

func (t *Transaction) rollback(ctx context.Context, failedAtIndex int) int {
	compensated := 0
	for i := failedAtIndex - 1; i >= 0; i-- {
		op := t.operations[i]
		if op.Compensate == nil {
			continue
		}
		if err := op.Compensate(ctx); err != nil {
			zap.L().Warn("compensation failed, data may be inconsistent",
				zap.String("operation", op.Name),
				zap.Error(err),
			)
			continue
		}
		compensated++
	}
	return compensated
}
