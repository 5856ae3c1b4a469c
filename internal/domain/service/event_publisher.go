package service

import (
	"context"
	"time"
)

// PriceUpdatedEvent is published whenever an admin changes a metal price.
type PriceUpdatedEvent struct {
	RequestID    string    `json:"request_id,omitempty"`
	PriceID      string    `json:"price_id"`
	MetalType    string    `json:"metal_type"`
	Purity       string    `json:"purity"`
	PricePerGram float64   `json:"price_per_gram"`
	UpdatedBy    string    `json:"updated_by"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EventPublisher publishes domain events to a message queue.
type EventPublisher interface {
	PublishPriceUpdated(ctx context.Context, event *PriceUpdatedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
