package queue

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// AssignmentNotifier delivers an assignment summary to an agent.
type AssignmentNotifier interface {
	SendAssignmentNotice(to, agentName string, leadCount int, fileName string) error
}

// Consumer is the part of *amqp.Channel the worker needs.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel  Consumer
	Notifier AssignmentNotifier
}

func NewWorker(ch Consumer, notifier AssignmentNotifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

// Start consumes queueName until ctx is done or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return eris.Wrapf(err, "queue: consume %s", queueName)
	}

	zap.L().Info("worker waiting for messages", zap.String("queue", queueName))
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return eris.New("queue: delivery channel closed")
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var payload AssignmentPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		zap.L().Error("worker: invalid payload", zap.Error(err))
		// Malformed messages go straight to the DLQ.
		_ = d.Nack(false, false)
		return
	}

	if err := w.processMessage(ctx, payload); err != nil {
		zap.L().Error("worker: notification failed",
			zap.String("agent_id", payload.AgentID),
			zap.String("batch_id", payload.BatchID),
			zap.Error(err),
		)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

func (w *Worker) processMessage(_ context.Context, payload AssignmentPayload) error {
	if payload.AgentEmail == "" || payload.LeadCount == 0 {
		zap.L().Debug("worker: nothing to notify", zap.String("agent_id", payload.AgentID))
		return nil
	}
	return w.Notifier.SendAssignmentNotice(payload.AgentEmail, payload.AgentName, payload.LeadCount, payload.FileName)
}
