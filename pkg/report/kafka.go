package report

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"

	"github.com/Goden-Gun/httpcall-lib/pkg/config"
)

// PublishObserver is an optional hook to observe publish latency and errors.
type PublishObserver interface {
	ObservePublish(topic string, duration time.Duration, err error)
}

// KafkaReporter publishes failures as JSON to a Kafka topic through a shared
// sync producer. Records are keyed by request id.
type KafkaReporter struct {
	topic    string
	producer sarama.SyncProducer

	observerMu sync.RWMutex
	observer   PublishObserver

	closeOnce sync.Once
}

// NewKafkaReporter connects a sync producer using cfg.
func NewKafkaReporter(cfg config.KafkaConfig) (*KafkaReporter, error) {
	cfg.ApplyDefaults()
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers empty")
	}
	producer, err := sarama.NewSyncProducer(cfg.Brokers, NewSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return NewKafkaReporterWithProducer(producer, cfg.Topic), nil
}

// NewKafkaReporterWithProducer wraps an existing producer.
func NewKafkaReporterWithProducer(producer sarama.SyncProducer, topic string) *KafkaReporter {
	return &KafkaReporter{topic: topic, producer: producer}
}

// NewSaramaConfig builds the producer config: acks, retries, TLS and SASL
// (PLAIN, SCRAM-SHA-256, SCRAM-SHA-512).
func NewSaramaConfig(cfg config.KafkaConfig) *sarama.Config {
	base := sarama.NewConfig()
	base.Version = sarama.V2_1_0_0
	if cfg.ClientID != "" {
		base.ClientID = cfg.ClientID
	}

	base.Producer.Return.Successes = true
	base.Producer.Retry.Max = max(cfg.MaxAttempts, 3)
	base.Producer.RequiredAcks = parseRequiredAcks(cfg.RequiredAcks)

	if cfg.TLSEnabled {
		base.Net.TLS.Enable = true
		base.Net.TLS.Config = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	if cfg.Username != "" {
		base.Net.SASL.Enable = true
		base.Net.SASL.User = cfg.Username
		base.Net.SASL.Password = cfg.Password
		switch strings.ToUpper(strings.TrimSpace(cfg.SASLMechanism)) {
		case "SCRAM-SHA-512":
			base.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA512
			base.Net.SASL.SCRAMClientGeneratorFunc = scramSHA512
		case "SCRAM-SHA-256":
			base.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA256
			base.Net.SASL.SCRAMClientGeneratorFunc = scramSHA256
		default:
			base.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		}
	}
	return base
}

// SetPublishObserver installs or replaces the publish observer.
func (r *KafkaReporter) SetPublishObserver(observer PublishObserver) {
	r.observerMu.Lock()
	r.observer = observer
	r.observerMu.Unlock()
}

func (r *KafkaReporter) observerSnapshot() PublishObserver {
	r.observerMu.RLock()
	defer r.observerMu.RUnlock()
	return r.observer
}

// Report stamps f and publishes it.
func (r *KafkaReporter) Report(ctx context.Context, f Failure) error {
	f.Stamp(ctx)
	value, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode failure: %w", err)
	}
	key := f.RequestID
	if key == "" {
		key = f.ID
	}
	return r.Publish(ctx, "", []byte(key), value)
}

// Publish sends a message to topic (falls back to the configured topic) with
// the trace context of ctx in its headers.
func (r *KafkaReporter) Publish(ctx context.Context, topic string, key, value []byte) (err error) {
	if r == nil || r.producer == nil {
		return errors.New("kafka reporter not configured")
	}
	if topic == "" {
		topic = r.topic
	}
	start := time.Now()
	defer func() {
		if observer := r.observerSnapshot(); observer != nil {
			observer.ObservePublish(topic, time.Since(start), err)
		}
	}()
	if topic == "" {
		return errors.New("kafka topic empty")
	}

	var headers headersCarrier
	otel.GetTextMapPropagator().Inject(ctx, &headers)

	msg := &sarama.ProducerMessage{Topic: topic, Headers: headers}
	if len(key) > 0 {
		msg.Key = sarama.ByteEncoder(key)
	}
	if len(value) > 0 {
		msg.Value = sarama.ByteEncoder(value)
	}

	if err = ctx.Err(); err != nil {
		return err
	}
	_, _, err = r.producer.SendMessage(msg)
	return err
}

// Close shuts down the producer.
func (r *KafkaReporter) Close() error {
	if r == nil {
		return nil
	}
	var err error
	r.closeOnce.Do(func() {
		if r.producer != nil {
			err = r.producer.Close()
		}
	})
	return err
}

// headersCarrier implements propagation.TextMapCarrier for Kafka headers.
type headersCarrier []sarama.RecordHeader

func (c *headersCarrier) Get(key string) string {
	for _, h := range *c {
		if string(h.Key) == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headersCarrier) Set(key, value string) {
	*c = append(*c, sarama.RecordHeader{Key: []byte(key), Value: []byte(value)})
}

func (c *headersCarrier) Keys() []string {
	keys := make([]string, 0, len(*c))
	for _, h := range *c {
		keys = append(keys, string(h.Key))
	}
	return keys
}

func parseRequiredAcks(v string) sarama.RequiredAcks {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "none":
		return sarama.NoResponse
	case "one":
		return sarama.WaitForLocal
	default:
		return sarama.WaitForAll
	}
}
