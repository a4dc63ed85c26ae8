package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"ms-checkin/internal/models"
)

// Producer streams recorded check-ins to Kafka so downstream consumers
// (badge printing, live dashboards) can react without polling ledgers.
type Producer struct {
	Writer *kafka.Writer
	Topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: brokers,
		Topic:   topic,
	})
	return &Producer{Writer: writer, Topic: topic}
}

// PublishCheckinRecorded streams one appended ledger record, keyed by
// barcode so all of an attendee's check-ins land on one partition.
func (p *Producer) PublishCheckinRecorded(record models.CheckinRecord) error {
	msgBytes, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(record.Barcode),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
