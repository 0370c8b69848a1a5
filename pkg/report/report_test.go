package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goden-Gun/httpcall-lib/pkg/config"
)

type observerSpy struct {
	topics []string
	errs   []error
}

func (o *observerSpy) ObservePublish(topic string, _ time.Duration, err error) {
	o.topics = append(o.topics, topic)
	o.errs = append(o.errs, err)
}

func TestKafkaReporterPublishesJSON(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var f Failure
		if err := json.Unmarshal(val, &f); err != nil {
			return err
		}
		if f.ReturnCode != "1001" || f.ID == "" || f.Outcome != "business_error" {
			return errors.New("unexpected failure record")
		}
		return nil
	})

	r := NewKafkaReporterWithProducer(producer, "httpcall.failures")
	spy := &observerSpy{}
	r.SetPublishObserver(spy)

	err := r.Report(context.Background(), Failure{Outcome: "business_error", RequestID: "req-1", ReturnCode: "1001"})
	require.NoError(t, err)
	assert.Equal(t, []string{"httpcall.failures"}, spy.topics)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
}

func TestKafkaReporterSendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	r := NewKafkaReporterWithProducer(producer, "t")
	err := r.Report(context.Background(), Failure{Outcome: "transport_error"})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, r.Close())
}

func TestKafkaReporterCancelledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	r := NewKafkaReporterWithProducer(producer, "t")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Publish(ctx, "", nil, []byte("x")), context.Canceled)
	require.NoError(t, r.Close())
}

func TestNewSaramaConfig(t *testing.T) {
	cfg := config.KafkaConfig{
		Username:      "u",
		Password:      "p",
		SASLMechanism: "scram-sha-512",
		TLSEnabled:    true,
		RequiredAcks:  "one",
	}
	sc := NewSaramaConfig(cfg)
	assert.True(t, sc.Net.SASL.Enable)
	assert.Equal(t, sarama.SASLMechanism(sarama.SASLTypeSCRAMSHA512), sc.Net.SASL.Mechanism)
	assert.NotNil(t, sc.Net.SASL.SCRAMClientGeneratorFunc())
	assert.True(t, sc.Net.TLS.Enable)
	assert.Equal(t, sarama.WaitForLocal, sc.Producer.RequiredAcks)
	assert.True(t, sc.Producer.Return.Successes)

	_, err := NewKafkaReporter(config.KafkaConfig{})
	assert.Error(t, err)
}

func TestMultiJoinsErrors(t *testing.T) {
	var seen []Failure
	boom := errors.New("boom")
	r := Multi(
		ReporterFunc(func(_ context.Context, f Failure) error { seen = append(seen, f); return nil }),
		nil,
		ReporterFunc(func(context.Context, Failure) error { return boom }),
		LogReporter{},
	)
	err := r.Report(context.Background(), Failure{Outcome: "transport_error"})
	assert.ErrorIs(t, err, boom)
	require.Len(t, seen, 1)
	assert.NotEmpty(t, seen[0].ID)
	assert.False(t, seen[0].Time.IsZero())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate([]byte("abc"), 0))
	assert.Equal(t, "ab...", Truncate([]byte("abcdef"), 2))
}
