package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/pybotlabs/pybot-api/internal/config"
)

const TopicProgressEvents = "progress.events"

// ProgressEvent feeds the back-office process that computes streaks and
// sticker unlocks. This service only produces; it never consumes.
type ProgressEvent struct {
	SubjectID        uuid.UUID `json:"subject_id"`
	CurrentLesson    int       `json:"current_lesson"`
	CompletedQuizzes []string  `json:"completed_quizzes"`
	OccurredAt       time.Time `json:"occurred_at"`
}

type KafkaProducerClient struct {
	ProgressEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	progressWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProgressEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		ProgressEventsWriter: progressWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishProgress(ctx context.Context, ev ProgressEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal progress event: %w", err)
	}

	return c.ProgressEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.SubjectID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ProgressEventsWriter != nil {
		c.ProgressEventsWriter.Close()
	}
}
