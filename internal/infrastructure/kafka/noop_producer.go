package kafka

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// NoopProducer заменяет Producer, когда брокеры не настроены.
type NoopProducer struct {
	logger logger.Logger
}

func NewNoopProducer(logger logger.Logger) *NoopProducer {
	return &NoopProducer{logger: logger}
}

func (n *NoopProducer) PublishCartItemAdded(_ context.Context, event *usecase.CartItemAddedEvent) error {
	n.logger.Debugf("cart event dropped, kafka disabled: %s", event.EventID)
	return nil
}

var _ usecase.EventsInfra = (*NoopProducer)(nil)
