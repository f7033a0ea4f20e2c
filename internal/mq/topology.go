package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// Имена обменников.
const (
	ExchangeBatches Exchange = "laserfarm.batches"
)

// Имена очередей.
const (
	QueueBatchesCompleted   Queue = "batches.completed"
	QueuePipelinesCompleted Queue = "pipelines.completed"
)

// Routing keys.
const (
	RoutingKeyBatchCompleted    RoutingKey = "batch.completed"
	RoutingKeyPipelineCompleted RoutingKey = "pipeline.completed"
)

// SetupTopology создаёт обменник, очереди и привязки.
// Идемпотентно: повторный вызов на живом брокере безопасен.
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			string(ExchangeBatches), // name
			"direct",                // type
			true,                    // durable
			false,                   // auto-deleted
			false,                   // internal
			false,                   // no-wait
			nil,                     // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeBatches, err)
		}

		bindings := []struct {
			queue      Queue
			routingKey RoutingKey
		}{
			{QueueBatchesCompleted, RoutingKeyBatchCompleted},
			{QueuePipelinesCompleted, RoutingKeyPipelineCompleted},
		}

		for _, b := range bindings {
			_, err := ch.QueueDeclare(
				string(b.queue), // name
				true,            // durable
				false,           // delete when unused
				false,           // exclusive
				false,           // no-wait
				nil,             // arguments
			)
			if err != nil {
				return fmt.Errorf("declare queue %s: %w", b.queue, err)
			}

			err = ch.QueueBind(
				string(b.queue),      // queue name
				string(b.routingKey), // routing key
				string(ExchangeBatches),
				false, // no-wait
				nil,   // arguments
			)
			if err != nil {
				return fmt.Errorf("bind queue %s: %w", b.queue, err)
			}
		}

		return nil
	})
}
