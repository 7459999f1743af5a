//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/adapter/csvfile"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node KRaft broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	ctr, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("thermal-comfort-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	brokers, err := ctr.Brokers(ctx)
	require.NoError(t, err, "kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "find controller")

	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}), "create topic %s", topic)
}

// writeDatasets writes two-area forecast and long-term CSVs and returns their paths.
func writeDatasets(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	forecast := make([]domain.ForecastSeries, 2)
	for area := range forecast {
		samples := make([]domain.ForecastSample, 72)
		for i := range samples {
			iat := 24 + float64(area)*3
			samples[i] = domain.ForecastSample{
				Time:  start.Add(time.Duration(i) * time.Hour),
				IAT10: iat - 1, IAT50: iat, IAT90: iat + 1,
				OAT10: 14, OAT50: 16, OAT90: 18,
			}
		}
		forecast[area] = domain.ForecastSeries{AreaID: domain.AreaID(area), Samples: samples}
	}

	longTerm := make([]domain.AreaSeries, 2)
	for area := range longTerm {
		var s domain.TimeSeries
		for year := 2050; year < 2053; year++ {
			day := time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC)
			for h := 0; h < 24; h++ {
				s = append(s, domain.Sample{Time: day.Add(time.Duration(h) * time.Hour), Value: 22 + float64(area)*6})
			}
		}
		longTerm[area] = domain.AreaSeries{AreaID: domain.AreaID(area), Series: s}
	}

	stPath := filepath.Join(dir, "shortterm.csv")
	ltPath := filepath.Join(dir, "longterm.csv")

	var buf bytes.Buffer
	require.NoError(t, csvfile.WriteForecast(&buf, forecast))
	require.NoError(t, os.WriteFile(stPath, buf.Bytes(), 0o600))
	buf.Reset()
	require.NoError(t, csvfile.WriteLongTerm(&buf, longTerm))
	require.NoError(t, os.WriteFile(ltPath, buf.Bytes(), 0o600))
	return stPath, ltPath
}
