package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const maxDatumsPerCall = 20

// Metrics buffers metric datapoints and flushes them to CloudWatch.
// Publishing is best-effort; a failed flush drops the batch.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client

	mu     sync.Mutex
	buffer []types.MetricDatum
}

// NewMetrics creates a metrics publisher for the given namespace
func NewMetrics(namespace string, client *cloudwatch.Client) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
	}
}

// IncrementCounter records a count metric
func (m *Metrics) IncrementCounter(name string, dimensions map[string]string) {
	m.record(name, 1, types.StandardUnitCount, dimensions)
}

// RecordLatency records a duration metric in milliseconds
func (m *Metrics) RecordLatency(name string, d time.Duration, dimensions map[string]string) {
	m.record(name, float64(d.Milliseconds()), types.StandardUnitMilliseconds, dimensions)
}

func (m *Metrics) record(name string, value float64, unit types.StandardUnit, dimensions map[string]string) {
	datum := types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
	}
	for k, v := range dimensions {
		datum.Dimensions = append(datum.Dimensions, types.Dimension{
			Name:  aws.String(k),
			Value: aws.String(v),
		})
	}

	m.mu.Lock()
	m.buffer = append(m.buffer, datum)
	m.mu.Unlock()
}

// Flush publishes all buffered datapoints
func (m *Metrics) Flush(ctx context.Context) error {
	m.mu.Lock()
	batch := m.buffer
	m.buffer = nil
	m.mu.Unlock()

	for len(batch) > 0 {
		n := min(len(batch), maxDatumsPerCall)
		_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(m.namespace),
			MetricData: batch[:n],
		})
		if err != nil {
			return err
		}
		batch = batch[n:]
	}
	return nil
}

// StartFlusher flushes the buffer on the given interval until ctx is done
func (m *Metrics) StartFlusher(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = m.Flush(ctx)
			}
		}
	}()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
