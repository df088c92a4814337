package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Event types published on gallery changes.
const (
	ImagesUploaded  = "images.uploaded"
	ImageUpdated    = "image.updated"
	ImageDeleted    = "image.deleted"
	CategoryChanged = "category.changed"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	Time    time.Time   `json:"time"`
}

type Producer interface {
	Publish(eventType string, payload interface{}) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
}

func NewProducer(brokers, topic string) Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", brokers)
	if err != nil {
		logrus.Warnf("kafka connection failed: %v, using mock producer", err)
		return &mockProducer{}
	}
	defer conn.Close()

	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		},
	}
	if err := conn.CreateTopics(topicConfigs...); err != nil {
		logrus.Debugf("could not create topic (might already exist): %v", err)
	}

	logrus.Infof("kafka producer connected to %s", brokers)
	return &kafkaProducer{writer: writer}
}

func (p *kafkaProducer) Publish(eventType string, payload interface{}) error {
	data, err := json.Marshal(Event{
		Type:    eventType,
		Payload: payload,
		Time:    time.Now(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

// Mock producer for running without kafka.
type mockProducer struct{}

// NewMockProducer returns a producer that drops every event, for tests
// and for deployments with no broker configured.
func NewMockProducer() Producer {
	return &mockProducer{}
}

func (m *mockProducer) Publish(eventType string, payload interface{}) error {
	logrus.Debugf("MOCK event %s: %v", eventType, payload)
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}
