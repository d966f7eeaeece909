package sink

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/kube-rca/alert-broadcast/internal/metrics"
	"github.com/kube-rca/alert-broadcast/internal/model"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const kafkaWriteTimeout = 5 * time.Second

// messageWriter is the subset of *kafka.Writer the sink needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// auditEvent is the JSON value published for every accepted alert.
type auditEvent struct {
	ID            int64   `json:"id"`
	Message       string  `json:"message"`
	Link          *string `json:"link"`
	RecipientType string  `json:"recipientType"`
	Timestamp     string  `json:"timestamp"`
}

// Kafka publishes records to an audit topic. It does not deliver alerts to
// recipients; the topic is an append-only copy of the intake log.
type Kafka struct {
	writer messageWriter
	log    zerolog.Logger
}

// NewKafka creates an async writer for topic on brokers.
func NewKafka(brokers []string, topic string, log zerolog.Logger) (*Kafka, error) {
	if len(brokers) == 0 || topic == "" {
		return nil, errors.New("kafka sink configuration incomplete: both brokers and topic are required")
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		BatchTimeout: 100 * time.Millisecond,
		WriteTimeout: kafkaWriteTimeout,
	}
	w.Completion = func(messages []kafka.Message, err error) {
		if err != nil {
			metrics.SinkWritesTotal.WithLabelValues("kafka", "failed").Add(float64(len(messages)))
			log.Error().Err(err).Int("count", len(messages)).Msg("kafka audit write failed")
			return
		}
		metrics.SinkWritesTotal.WithLabelValues("kafka", "success").Add(float64(len(messages)))
	}

	return newKafkaWithWriter(w, log), nil
}

func newKafkaWithWriter(w messageWriter, log zerolog.Logger) *Kafka {
	return &Kafka{writer: w, log: log}
}

func (s *Kafka) Record(record model.AlertRecord) {
	value, err := json.Marshal(auditEvent{
		ID:            record.ID,
		Message:       record.Message,
		Link:          record.Link,
		RecipientType: record.RecipientType,
		Timestamp:     model.FormatTime(record.CreatedAt),
	})
	if err != nil {
		s.log.Error().Err(err).Int64("alert_id", record.ID).Msg("failed to encode audit event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), kafkaWriteTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(record.ID, 10)),
		Value: value,
		Time:  record.CreatedAt,
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		metrics.SinkWritesTotal.WithLabelValues("kafka", "failed").Inc()
		s.log.Error().Err(err).Int64("alert_id", record.ID).Msg("failed to enqueue audit event")
	}
}

func (s *Kafka) Close() error {
	return s.writer.Close()
}
