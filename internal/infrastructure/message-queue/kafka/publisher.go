package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/offer-fe/offer-be/internal/dto"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const maxRetries = 3

type messageWriter interface {
	WriteMessages(msgs ...kafka.Message) (int, error)
}

// Publisher writes keyed event envelopes to the configured topic.
type Publisher struct {
	writer  messageWriter
	backoff time.Duration
}

func CreatePublisher(conn *kafka.Conn) *Publisher {
	return &Publisher{writer: conn, backoff: time.Second}
}

func (p *Publisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	for i := 0; i < maxRetries; i++ {
		_, err = p.writer.WriteMessages(kafka.Message{
			Key:   []byte(key),
			Value: jsonMsg,
		})
		if err == nil {
			return nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "Publish").Str("event_type", msg.EventType).Int("attempt", i+1).Msg("")
		if i == maxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.backoff * time.Duration(i+1)):
		}
	}

	return fmt.Errorf("failed to write Kafka message after %d attempts: %w", maxRetries, err)
}
