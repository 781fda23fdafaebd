package kafka

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
	"github.com/twmb/franz-go/pkg/kgo"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// Consumer turns stock.low events into restock alert rows and logs
// redemptions for the audit trail. Records that fail to decode go to the
// topic's DLQ instead of blocking the partition.
type Consumer struct {
	client *kgo.Client
	store  repository.Store
	ready  chan struct{}
}

func NewConsumer(client *kgo.Client, store repository.Store) *Consumer {
	return &Consumer{
		client: client,
		store:  store,
		ready:  make(chan struct{}),
	}
}

func (c *Consumer) Start(ctx context.Context) {
	close(c.ready)
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return
		}
		if errs := fetches.Errors(); len(errs) > 0 {
			zlog.Error().Interface("errors", errs).Msg("consumer poll errors")
		}

		iter := fetches.RecordIter()
		for !iter.Done() {
			record := iter.Next()
			c.processRecord(ctx, record)
		}

		if err := c.client.CommitRecords(ctx, fetches.Records()...); err != nil {
			zlog.Error().Err(err).Msg("failed to commit records")
		}
	}
}

func (c *Consumer) Ready() <-chan struct{} {
	return c.ready
}

func (c *Consumer) processRecord(ctx context.Context, record *kgo.Record) {
	switch record.Topic {
	case TopicStockLow:
		c.handleStockLow(ctx, record)
	case TopicCouponRedeemed:
		c.handleCouponRedeemed(ctx, record)
	}
}

func (c *Consumer) handleStockLow(ctx context.Context, record *kgo.Record) {
	var payload StockLowPayload
	if err := json.Unmarshal(record.Value, &payload); err != nil {
		c.deadLetter(ctx, record, "invalid stock.low payload")
		return
	}
	if payload.ProductID == uuid.Nil {
		c.deadLetter(ctx, record, "stock.low payload missing product id")
		return
	}

	alert := &domain.RestockAlert{
		ID:        uuid.New(),
		ProductID: payload.ProductID,
		SKU:       payload.SKU,
		Available: payload.Quantity,
		RaisedAt:  payload.OccurredAt,
	}
	if err := c.store.InsertRestockAlert(ctx, alert); err != nil {
		zlog.Error().Err(err).Str("product_id", payload.ProductID.String()).Msg("failed to record restock alert")
		return
	}
	zlog.Info().
		Str("product_id", payload.ProductID.String()).
		Int("quantity", payload.Quantity).
		Msg("restock alert recorded")
}

func (c *Consumer) handleCouponRedeemed(ctx context.Context, record *kgo.Record) {
	var payload CouponRedeemedPayload
	if err := json.Unmarshal(record.Value, &payload); err != nil {
		c.deadLetter(ctx, record, "invalid coupon.redeemed payload")
		return
	}

	zlog.Info().
		Str("code", payload.Code).
		Str("order_id", payload.OrderID.String()).
		Float64("discount", payload.Discount).
		Msg("coupon redeemed")
}

func (c *Consumer) deadLetter(ctx context.Context, record *kgo.Record, message string) {
	dlqRecord := &kgo.Record{
		Topic: record.Topic + TopicDLQSuffix,
		Key:   record.Key,
		Value: record.Value,
		Headers: []kgo.RecordHeader{
			{Key: ErrorHeaderKey, Value: []byte(message)},
		},
	}
	if err := c.client.ProduceSync(ctx, dlqRecord).FirstErr(); err != nil {
		zlog.Error().Err(err).Str("topic", record.Topic).Msg("failed to dead-letter record")
	}
}
