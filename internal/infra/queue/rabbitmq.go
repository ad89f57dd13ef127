package queue

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rotisserie/eris"
)

const (
	ExchangeName = "ex.leads"
	QueueName    = "q.lead-assignments"
	DLQName      = "q.lead-assignments.dlq"
	DLXName      = "ex.leads.dlx" // Dead Letter Exchange
	RoutingKey   = "k.assignment"
)

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, eris.Wrap(err, "rabbitmq: dial")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, eris.Wrap(err, "rabbitmq: open channel")
	}

	if err := setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMQ{Conn: conn, Ch: ch}, nil
}

func (r *RabbitMQ) Close() {
	if r.Ch != nil {
		r.Ch.Close()
	}
	if r.Conn != nil {
		r.Conn.Close()
	}
}

func setupTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil); err != nil {
		return eris.Wrap(err, "rabbitmq: declare dlx")
	}
	if _, err := ch.QueueDeclare(DLQName, true, false, false, false, nil); err != nil {
		return eris.Wrap(err, "rabbitmq: declare dlq")
	}
	if err := ch.QueueBind(DLQName, RoutingKey, DLXName, false, nil); err != nil {
		return eris.Wrap(err, "rabbitmq: bind dlq")
	}

	// Nacked messages go to the DLX with the same routing key.
	args := amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": RoutingKey,
	}

	if err := ch.ExchangeDeclare(ExchangeName, "direct", true, false, false, false, nil); err != nil {
		return eris.Wrap(err, "rabbitmq: declare exchange")
	}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, args); err != nil {
		return eris.Wrap(err, "rabbitmq: declare queue")
	}
	if err := ch.QueueBind(QueueName, RoutingKey, ExchangeName, false, nil); err != nil {
		return eris.Wrap(err, "rabbitmq: bind queue")
	}
	return nil
}
