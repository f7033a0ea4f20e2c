package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/NSafarali/Laserfarm/internal/pipeline"
)

// MessageType — тип сообщения в очереди.
type MessageType string

// Типы сообщений.
const (
	MessageTypeBatchCompleted    MessageType = "batch.completed"
	MessageTypePipelineCompleted MessageType = "pipeline.completed"
)

// Publisher публикует события о результатах в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// Message — сообщение для публикации.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Type — тип сообщения.
	Type MessageType `json:"type"`

	// Payload — полезная нагрузка.
	Payload any `json:"payload"`

	// Timestamp — время создания.
	Timestamp time.Time `json:"timestamp"`
}

// PipelineCompletedPayload — payload события о завершении одной задачи.
type PipelineCompletedPayload struct {
	BatchID     uuid.UUID `json:"batch_id"`
	Position    int       `json:"position"`
	Label       string    `json:"label,omitempty"`
	Success     bool      `json:"success"`
	ErrorKind   string    `json:"error_kind,omitempty"`
	ErrorDetail string    `json:"error_detail,omitempty"`
}

// BatchCompletedPayload — payload события о завершении batch'а.
type BatchCompletedPayload struct {
	BatchID   uuid.UUID `json:"batch_id"`
	Pipelines int       `json:"pipelines"`
	Failed    int       `json:"failed"`
}

// Publish публикует сообщение в обменник batch-событий.
func (p *Publisher) Publish(ctx context.Context, routingKey RoutingKey, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(ExchangeBatches),
			string(routingKey),
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent, // сообщение переживёт рестарт RabbitMQ
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", ExchangeBatches, routingKey, err)
		}

		p.logger.Debug("published message",
			"routing_key", routingKey,
			"message_id", msg.ID,
			"type", msg.Type,
		)

		return nil
	})
}

// PublishBatchCompleted публикует событие о завершении batch'а.
func (p *Publisher) PublishBatchCompleted(ctx context.Context, batchID uuid.UUID, outcomes []pipeline.Outcome) error {
	failed := 0
	for _, out := range outcomes {
		if !out.Success {
			failed++
		}
	}

	msg := &Message{
		ID:   uuid.New().String(),
		Type: MessageTypeBatchCompleted,
		Payload: BatchCompletedPayload{
			BatchID:   batchID,
			Pipelines: len(outcomes),
			Failed:    failed,
		},
		Timestamp: time.Now(),
	}

	return p.Publish(ctx, RoutingKeyBatchCompleted, msg)
}

// PublishPipelineOutcomes публикует по событию на каждую задачу batch'а.
func (p *Publisher) PublishPipelineOutcomes(ctx context.Context, batchID uuid.UUID, outcomes []pipeline.Outcome) error {
	for i, out := range outcomes {
		msg := &Message{
			ID:   uuid.New().String(),
			Type: MessageTypePipelineCompleted,
			Payload: PipelineCompletedPayload{
				BatchID:     batchID,
				Position:    i,
				Label:       out.Label,
				Success:     out.Success,
				ErrorKind:   string(out.Kind),
				ErrorDetail: out.Detail,
			},
			Timestamp: time.Now(),
		}

		if err := p.Publish(ctx, RoutingKeyPipelineCompleted, msg); err != nil {
			return fmt.Errorf("publish outcome %d: %w", i, err)
		}
	}

	return nil
}
