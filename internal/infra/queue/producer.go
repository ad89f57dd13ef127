package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rotisserie/eris"
)

// AssignmentPayload tells one agent how many leads a finished upload gave them.
type AssignmentPayload struct {
	BatchID    string    `json:"batch_id"`
	AgentID    string    `json:"agent_id"`
	AgentName  string    `json:"agent_name"`
	AgentEmail string    `json:"agent_email"`
	LeadCount  int       `json:"lead_count"`
	FileName   string    `json:"file_name"`
	AssignedAt time.Time `json:"assigned_at"`
}

// Publisher is the part of *amqp.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishAssignment(ctx context.Context, payload AssignmentPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return eris.Wrap(err, "queue: encode assignment")
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    payload.BatchID + ":" + payload.AgentID,
			Timestamp:    payload.AssignedAt,
		},
	)
	if err != nil {
		return eris.Wrap(err, "queue: publish assignment")
	}
	return nil
}
