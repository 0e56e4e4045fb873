package kafka

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const eventTypeCartItemAdded = "storefront.cart_item_added"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует события корзины в Kafka. Запись асинхронная:
// ошибки доставки приходят в Completion и только логируются.
type Producer struct {
	writer messageWriter
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) (*Producer, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka producer error: %s, messages: %d", err.Error(), len(messages))
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// PublishCartItemAdded отправляет событие с ключом по сессии, чтобы события
// одной корзины попадали в одну партицию по порядку.
func (p *Producer) PublishCartItemAdded(ctx context.Context, event *usecase.CartItemAddedEvent) error {
	value, err := GetPayloadBytes(event)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.SessionID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventTypeCartItemAdded)},
			{Key: "event_id", Value: []byte(event.EventID.String())},
		},
		Time: event.OccurredAt,
	})
}

// EnsureTopic создаёт топик событий корзины, если его ещё нет. Создание идёт
// через контроллер кластера; брокеры перебираются, пока один не ответит.
func (p *Producer) EnsureTopic(timeout time.Duration) error {
	dialer := &kafka.Dialer{Timeout: timeout}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	conn, err := p.dialAny(ctx, dialer)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	controller, err := conn.Controller()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	ctrlConn, err := dialer.DialContext(ctx, p.cfg.NetworkMode,
		net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer ctrlConn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = ctrlConn.SetDeadline(deadline)
	}

	err = ctrlConn.CreateTopics(kafka.TopicConfig{
		Topic:             p.cfg.Topic,
		NumPartitions:     p.cfg.Partitions,
		ReplicationFactor: p.cfg.ReplicationFactor,
	})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
	}

	p.logger.Infof("Kafka topic %s is ready", p.cfg.Topic)
	return nil
}

func (p *Producer) dialAny(ctx context.Context, dialer *kafka.Dialer) (*kafka.Conn, error) {
	var errs []error
	for _, broker := range p.cfg.Brokers {
		conn, err := dialer.DialContext(ctx, p.cfg.NetworkMode, broker)
		if err == nil {
			return conn, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", broker, err))
	}

	return nil, errors.Join(errs...)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// GetPayloadBytes кодирует событие как google.protobuf.Struct.
func GetPayloadBytes(event *usecase.CartItemAddedEvent) ([]byte, error) {
	payload, err := structpb.NewStruct(map[string]any{
		"event_id":    event.EventID.String(),
		"event_type":  eventTypeCartItemAdded,
		"session_id":  event.SessionID.String(),
		"product_id":  event.ProductID,
		"price":       event.Price.String(),
		"currency":    event.Currency,
		"cart_count":  event.CartCount,
		"cart_total":  event.CartTotal.String(),
		"occurred_at": event.OccurredAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, err
	}

	return proto.Marshal(payload)
}

var _ usecase.EventsInfra = (*Producer)(nil)
