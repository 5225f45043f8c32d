package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers       []string
	ClientID      string
	MaxRetries    int
	RetryInterval time.Duration
	BatchSize     int
	LingerMs      int
}

// Producer wraps a franz-go client for producing messages
type Producer struct {
	client *kgo.Client
	config *ProducerConfig
}

// NewProducer creates a new Kafka producer with retry logic on the initial connection
func NewProducer(ctx context.Context, cfg *ProducerConfig) (*Producer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("producer config is required")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(cfg.ClientID),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	}
	if cfg.LingerMs > 0 {
		opts = append(opts, kgo.ProducerLinger(time.Duration(cfg.LingerMs)*time.Millisecond))
	}

	var client *kgo.Client
	var lastErr error
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}

	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			time.Sleep(cfg.RetryInterval)
		}

		client, lastErr = kgo.NewClient(opts...)
		if lastErr != nil {
			continue
		}

		if lastErr = client.Ping(ctx); lastErr != nil {
			client.Close()
			continue
		}

		return &Producer{client: client, config: cfg}, nil
	}

	return nil, fmt.Errorf("failed to connect to kafka after %d attempts: %w", retries+1, lastErr)
}

// Produce sends a raw message to the given topic
func (p *Producer) Produce(ctx context.Context, topic, key string, value []byte, headers map[string]string) error {
	record := &kgo.Record{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}
	for k, v := range headers {
		record.Headers = append(record.Headers, kgo.RecordHeader{Key: k, Value: []byte(v)})
	}

	result := p.client.ProduceSync(ctx, record)
	if err := result.FirstErr(); err != nil {
		return fmt.Errorf("failed to produce to %s: %w", topic, err)
	}
	return nil
}

// ProduceJSON marshals the value to JSON and sends it to the given topic
func (p *Producer) ProduceJSON(ctx context.Context, topic, key string, value interface{}, headers map[string]string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message for %s: %w", topic, err)
	}
	return p.Produce(ctx, topic, key, data, headers)
}

// Close flushes pending messages and closes the client
func (p *Producer) Close() {
	if p.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = p.client.Flush(ctx)
		p.client.Close()
	}
}
