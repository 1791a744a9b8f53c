// Package eventbridge publishes domain events to an EventBridge bus. The
// moderation pipeline and analytics consumers subscribe downstream.
package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"

	"proofr-backend/application/ports"
	"proofr-backend/domain/events"
)

// eventSource identifies this service on the bus
const eventSource = "proofr.content"

// EventBridge limits PutEvents batches to 10 entries
const maxBatchSize = 10

// Publisher implements ports.EventBus using EventBridge
type Publisher struct {
	client  *eventbridge.Client
	busName string
	logger  *zap.Logger
}

// NewPublisher creates a new Publisher
func NewPublisher(client *eventbridge.Client, busName string, logger *zap.Logger) ports.EventBus {
	return &Publisher{
		client:  client,
		busName: busName,
		logger:  logger,
	}
}

// Publish sends a single domain event
func (p *Publisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return p.PublishBatch(ctx, []events.DomainEvent{event})
}

// PublishBatch sends domain events in EventBridge-sized batches
func (p *Publisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	if len(batch) == 0 {
		return nil
	}

	for start := 0; start < len(batch); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(batch) {
			end = len(batch)
		}

		entries := make([]types.PutEventsRequestEntry, 0, end-start)
		for _, event := range batch[start:end] {
			detail, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("failed to marshal event %s: %w", event.EventType(), err)
			}
			entries = append(entries, types.PutEventsRequestEntry{
				EventBusName: aws.String(p.busName),
				Source:       aws.String(eventSource),
				DetailType:   aws.String(event.EventType()),
				Detail:       aws.String(string(detail)),
			})
		}

		result, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
			Entries: entries,
		})
		if err != nil {
			return fmt.Errorf("failed to publish events: %w", err)
		}
		if result.FailedEntryCount > 0 {
			p.logger.Warn("some events failed to publish",
				zap.Int32("failedCount", result.FailedEntryCount),
			)
			return fmt.Errorf("%d events failed to publish", result.FailedEntryCount)
		}
	}

	return nil
}

// Noop is an event bus that drops everything; local development and tests
// run without a bus
type Noop struct{}

// NewNoop creates the no-op event bus
func NewNoop() ports.EventBus {
	return Noop{}
}

// Publish implements ports.EventBus
func (Noop) Publish(ctx context.Context, event events.DomainEvent) error { return nil }

// PublishBatch implements ports.EventBus
func (Noop) PublishBatch(ctx context.Context, batch []events.DomainEvent) error { return nil }
