package articles

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/campusnews/campusnews-backend/model"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// ArticleProducer handles sending article moderation events to Kafka
type ArticleProducer struct {
	Writer *kafka.Writer
}

// NewArticleProducer initializes a new Kafka writer for article events
func NewArticleProducer(brokers []string, topic string) *ArticleProducer {
	return &ArticleProducer{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// NewArticleProducerFromEnv builds a producer from the KAFKA_BROKERS env
// variable. Returns nil when unset, which disables event publishing.
func NewArticleProducerFromEnv(brokers string) *ArticleProducer {
	if brokers == "" {
		return nil
	}
	return NewArticleProducer(strings.Split(brokers, ","), TopicArticleApproved)
}

// PublishArticleApproved sends the approval event to the Kafka topic
func (p *ArticleProducer) PublishArticleApproved(ctx context.Context, article model.Article, approvedBy string) error {
	event := ArticleApprovedEvent{
		EventType:     "article.approved",
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		Article:       article,
		ApprovedBy:    approvedBy,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(article.Key),
		Value: payload,
	})
}

// Close cleans up the Kafka writer
func (p *ArticleProducer) Close() error {
	return p.Writer.Close()
}
