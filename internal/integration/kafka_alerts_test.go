//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/adapter/csvfile"
	"github.com/couchcryptid/thermal-comfort-service/internal/adapter/kafka"
	"github.com/couchcryptid/thermal-comfort-service/internal/config"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/couchcryptid/thermal-comfort-service/internal/observability"
	"github.com/couchcryptid/thermal-comfort-service/internal/pipeline"
	"github.com/couchcryptid/thermal-comfort-service/internal/report"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAlertTopic = "test-overheating-alerts"

// publishedAlert holds a deserialized message read from the alert topic.
type publishedAlert struct {
	Alert   domain.Alert
	Key     string
	Headers map[string]string
}

func readAlert(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedAlert {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from alert topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var alert domain.Alert
	require.NoError(t, json.Unmarshal(msg.Value, &alert), "unmarshal alert")

	return publishedAlert{Alert: alert, Key: string(msg.Key), Headers: headers}
}

// TestAlertPublisherEndToEnd wires CSV datasets, the report service, and the
// publisher against a real broker and checks every area gets both alerts.
func TestAlertPublisherEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAlertTopic)

	stPath, ltPath := writeDatasets(t)
	cfg := &config.Config{
		AreaType:          "Dwelling",
		ShortTermDataPath: stPath,
		LongTermDataPath:  ltPath,
		Thresholds: domain.Thresholds{
			IAT: 26, OverheatingPct: 3, NightOverheatingPct: 1,
			Night: domain.NightWindow{Start: 22, End: 7},
		},
		RiskBands:       domain.RiskBands{Medium: 20, High: 50},
		KafkaEnabled:    true,
		KafkaBrokers:    []string{broker},
		KafkaAlertTopic: testAlertTopic,
		PublishInterval: time.Hour,
	}

	logger := discardLogger()
	metrics := observability.NewMetricsForTesting()
	reports := report.NewService(csvfile.NewSource(cfg, logger), cfg, metrics, logger)

	writer := kafka.NewWriter(cfg, logger)
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(reports, pipeline.NewAlertBuilder(reports.Codec(), logger), writer, logger, metrics, cfg.PublishInterval)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testAlertTopic,
		GroupID:     fmt.Sprintf("test-alerts-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	received := map[string]publishedAlert{}
	for len(received) < 4 {
		pa := readAlert(ctx, t, consumer)
		received[pa.Headers["alert_kind"]+"/"+pa.Key] = pa
	}

	pipelineCancel()
	require.NoError(t, <-errCh)
	require.NoError(t, p.CheckReadiness(ctx))

	for key, pa := range received {
		assert.NotEmpty(t, pa.Alert.ID, key)
		assert.Equal(t, pa.Key, pa.Alert.Area, key)
		_, err := time.Parse(time.RFC3339, pa.Headers["generated_at"])
		assert.NoError(t, err, "generated_at should be valid RFC3339")
	}

	// Area 1 forecasts 28 degC on the P90 band: every hour of the first day overheats.
	hot, ok := received["shortterm/Dwelling 1"]
	require.True(t, ok, "short-term alert for Dwelling 1")
	require.NotEmpty(t, hot.Alert.Horizons)
	require.NotNil(t, hot.Alert.Horizons[0].Hours)
	assert.Equal(t, 24, *hot.Alert.Horizons[0].Hours)

	cool, ok := received["shortterm/Dwelling 0"]
	require.True(t, ok, "short-term alert for Dwelling 0")
	require.NotEmpty(t, cool.Alert.Horizons)
	require.NotNil(t, cool.Alert.Horizons[0].Hours)
	assert.Equal(t, 0, *cool.Alert.Horizons[0].Hours)

	// Area 1 overheats every summer, area 0 never does.
	risky, ok := received["longterm/Dwelling 1"]
	require.True(t, ok, "long-term alert for Dwelling 1")
	require.NotNil(t, risky.Alert.Risk)
	assert.Equal(t, "1 out of 1 summers", risky.Alert.Risk.Overheating.Text)
	assert.Equal(t, domain.RiskHigh, risky.Alert.Risk.Overheating.Level)

	safe, ok := received["longterm/Dwelling 0"]
	require.True(t, ok, "long-term alert for Dwelling 0")
	require.NotNil(t, safe.Alert.Risk)
	assert.Equal(t, "None", safe.Alert.Risk.Overheating.Text)
}
