package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/asquebay/order-dashboard/internal/model"

	"github.com/segmentio/kafka-go"
)

// OrdersReloader — это интерфейс, который абстрагирует консьюмер
// от конкретной реализации сервисного слоя
type OrdersReloader interface {
	ReloadOrders(ctx context.Context) error
}

// MessageReader — часть kafka.Reader, которой пользуется консьюмер
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer читает уведомления об изменении заказов и перечитывает коллекцию
type Consumer struct {
	reader  MessageReader
	service OrdersReloader
	log     *slog.Logger
}

// NewConsumer создает новый экземпляр консьюмера
func NewConsumer(brokers []string, topic, groupID string, service OrdersReloader, log *slog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   topic,
		// нас интересуют только изменения после старта: заказы и так загружены целиком
		StartOffset: kafka.LastOffset,
	})

	return NewConsumerWithReader(reader, service, log)
}

// NewConsumerWithReader создаёт консьюмер поверх готового ридера
func NewConsumerWithReader(reader MessageReader, service OrdersReloader, log *slog.Logger) *Consumer {
	return &Consumer{
		reader:  reader,
		service: service,
		log:     log,
	}
}

// Run запускает цикл чтения сообщений из Kafka
// эта функция блокирующая, поэтому она запускается в отдельной горутине
func (c *Consumer) Run(ctx context.Context) {
	log := c.log.With(slog.String("component", "kafka_consumer"))
	log.Info("Kafka consumer started")

	for {
		// проверка на отмену контекста
		select {
		case <-ctx.Done():
			log.Info("Context cancelled, stopping consumer.")
			return
		default:
			// FetchMessage блокирует до тех пор, пока не придет новое сообщение или не возникнет ошибка
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				// если контекст был отменен во время ожидания, это нормальное завершение
				if errors.Is(err, context.Canceled) {
					return
				}
				// если ридер был закрыт, тоже выходим
				if errors.Is(err, io.EOF) {
					log.Info("Kafka reader closed")
					return
				}
				log.Error("failed to fetch message", slog.String("error", err.Error()))
				continue // пробуем снова
			}

			log.Info("received message", slog.String("topic", msg.Topic), slog.Int("partition", msg.Partition), slog.Int64("offset", msg.Offset))

			// 1. Пытаемся обработать
			if err := c.handleMessage(ctx, msg); err != nil {
				log.Error("failed to handle message", slog.String("error", err.Error()))
				// сообщение НЕ подтверждаем, пусть Kafka отдаст его снова
				continue
			}

			// 2. Всё прошло, фиксируем offset
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				log.Error("failed to commit message", slog.String("error", err.Error()))
			}
		}
	}
}

// handleMessage парсит уведомление и перечитывает заказы
func (c *Consumer) handleMessage(ctx context.Context, msg kafka.Message) error {
	var event model.OrdersChanged

	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// сообщение невалидно, перечитывать его бессмысленно
		c.log.Warn("failed to unmarshal message, skipping", slog.String("error", err.Error()))
		return nil
	}

	if err := event.Validate(); err != nil {
		c.log.Warn("message validation failed, skipping",
			slog.String("error", err.Error()),
			slog.String("source", event.Source),
		)
		return nil
	}

	// коллекция заказов заменяется целиком, поэтому неважно, какой именно заказ изменился
	if err := c.service.ReloadOrders(ctx); err != nil {
		c.log.Error("failed to reload orders",
			slog.String("error", err.Error()),
			slog.String("order_id", event.OrderID),
		)
		return err
	}

	c.log.Info("orders reloaded after change notification",
		slog.String("source", event.Source),
		slog.String("order_id", event.OrderID),
	)
	return nil
}

// gracefull shutdown консьюмера
func (c *Consumer) Close() error {
	c.log.Info("Closing kafka consumer")
	return c.reader.Close()
}
