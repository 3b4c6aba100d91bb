package producer

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"coloringbook/internal/catalog"
	"coloringbook/internal/config"
)

// Producer publishes catalog events to the image topic. It satisfies
// catalog.EventPublisher.
type Producer struct {
	writer *kafka.Writer
	log    *slog.Logger
}

func NewProducer(kafkaCfg *config.Kafka, log *slog.Logger) (*Producer, error) {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(kafkaCfg.Brokers...),
		Topic:    kafkaCfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Producer{
		writer: writer,
		log:    log,
	}, nil
}

func (p *Producer) PublishImageCreated(ctx context.Context, event catalog.ImageEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.ID),
		Value: message,
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("failed to publish event to kafka",
			slog.String("topic", p.writer.Topic),
			slog.String("event", event.Event),
			slog.String("error", err.Error()),
		)
		return err
	}

	p.log.Info("event published to kafka",
		slog.String("topic", p.writer.Topic),
		slog.String("event", event.Event),
		slog.String("id", event.ID),
	)
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
