package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
	"github.com/twmb/franz-go/pkg/kgo"

	"storefront/internal/domain"
	"storefront/internal/usecase"
)

// Publisher emits domain events to kafka. Publishing is best effort: a
// produce failure is logged and the request that caused the event still
// succeeds, the database already holds the committed state.
type Publisher struct {
	client *kgo.Client
}

func NewPublisher(client *kgo.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) CouponRedeemed(ctx context.Context, code string, r *domain.Redemption) {
	payload := CouponRedeemedPayload{
		SchemaVersion: 1,
		EventID:       uuid.New().String(),
		Code:          code,
		CouponID:      r.CouponID,
		UserID:        r.UserID,
		OrderID:       r.OrderID,
		Discount:      r.Discount,
		OccurredAt:    time.Now().UTC(),
	}
	p.produce(ctx, TopicCouponRedeemed, []byte(code), payload)
}

func (p *Publisher) LowStock(ctx context.Context, item *domain.InventoryItem) {
	payload := StockLowPayload{
		SchemaVersion: 1,
		EventID:       uuid.New().String(),
		ProductID:     item.ProductID,
		SKU:           item.SKU,
		Quantity:      item.Quantity,
		Threshold:     item.LowStockThreshold,
		OccurredAt:    time.Now().UTC(),
	}
	p.produce(ctx, TopicStockLow, []byte(item.ProductID.String()), payload)
}

func (p *Publisher) produce(ctx context.Context, topic string, key []byte, payload any) {
	value, err := json.Marshal(payload)
	if err != nil {
		zlog.Error().Err(err).Str("topic", topic).Msg("failed to encode event payload")
		return
	}
	record := &kgo.Record{
		Topic: topic,
		Key:   key,
		Value: value,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		zlog.Error().Err(err).Str("topic", topic).Msg("failed to produce event")
	}
}

// NopPublisher drops every event; used when the event pipeline is disabled.
type NopPublisher struct{}

func NewNopPublisher() *NopPublisher {
	return &NopPublisher{}
}

func (NopPublisher) CouponRedeemed(ctx context.Context, code string, r *domain.Redemption) {}

func (NopPublisher) LowStock(ctx context.Context, item *domain.InventoryItem) {}

var (
	_ usecase.EventPublisher = (*Publisher)(nil)
	_ usecase.EventPublisher = NopPublisher{}
)
