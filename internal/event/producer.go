package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tiffanyadora/storefront/internal/domain"
	"github.com/tiffanyadora/storefront/pkg/kafka"
	"github.com/tiffanyadora/storefront/pkg/logger"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartSynced      = "storefront.cart.synced"
	TopicOrderPlaced     = "storefront.order.placed"
	TopicSearchPerformed = "storefront.search.performed"
)

// Aggregate type constants.
const (
	AggregateTypeCart   = "cart"
	AggregateTypeOrder  = "order"
	AggregateTypeSearch = "search"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// CartSyncedData is the payload for a cart.synced event, emitted every time
// the local mirror is replaced with fresh server state.
type CartSyncedData struct {
	SessionID string  `json:"session_id"`
	ItemCount int     `json:"item_count"`
	Total     float64 `json:"total"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	SessionID string  `json:"session_id"`
	OrderID   string  `json:"order_id"`
	ItemCount int     `json:"item_count"`
	Total     float64 `json:"total"`
}

// SearchPerformedData is the payload for a search.performed event.
type SearchPerformedData struct {
	SessionID   string `json:"session_id"`
	Query       string `json:"query"`
	ResultCount int    `json:"result_count"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *kafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(k *kafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  k,
		logger: logger,
	}
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType, sessionID string, data any) error {
	ev, err := kafka.NewEvent(topic, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	ev.WithSessionID(sessionID)
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		ev.WithCorrelationID(cid)
	}

	if err := p.kafka.Publish(ctx, topic, ev); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}
	return nil
}

// PublishCartSynced publishes a cart.synced event.
func (p *Producer) PublishCartSynced(ctx context.Context, sessionID string, state domain.CartState) error {
	data := CartSyncedData{
		SessionID: sessionID,
		ItemCount: state.ItemCount(),
		Total:     state.Total,
	}
	if err := p.publish(ctx, TopicCartSynced, sessionID, AggregateTypeCart, sessionID, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published cart.synced event",
		slog.String("session_id", sessionID),
		slog.Int("item_count", data.ItemCount),
	)
	return nil
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, sessionID, orderID string, state domain.CartState) error {
	data := OrderPlacedData{
		SessionID: sessionID,
		OrderID:   orderID,
		ItemCount: state.ItemCount(),
		Total:     state.Total,
	}
	if err := p.publish(ctx, TopicOrderPlaced, orderID, AggregateTypeOrder, sessionID, data); err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "published order.placed event",
		slog.String("session_id", sessionID),
		slog.String("order_id", orderID),
	)
	return nil
}

// PublishSearchPerformed publishes a search.performed event.
func (p *Producer) PublishSearchPerformed(ctx context.Context, sessionID, query string, resultCount int) error {
	data := SearchPerformedData{
		SessionID:   sessionID,
		Query:       query,
		ResultCount: resultCount,
	}
	if err := p.publish(ctx, TopicSearchPerformed, sessionID, AggregateTypeSearch, sessionID, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published search.performed event",
		slog.String("session_id", sessionID),
		slog.String("query", query),
	)
	return nil
}
