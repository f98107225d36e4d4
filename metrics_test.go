package cmeans

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clustercore/cmeans/rng"
	"github.com/clustercore/cmeans/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCollector struct {
	mock.Mock
}

func (m *mockCollector) RecordRun(algorithm string, iterations int, duration time.Duration, err error) {
	m.Called(algorithm, iterations, duration, err)
}

func (m *mockCollector) RecordPass(pass, iterations int) {
	m.Called(pass, iterations)
}

func TestMetricsCollector_FCM(t *testing.T) {
	mc := &mockCollector{}
	mc.On("RecordRun", AlgorithmFCM, mock.AnythingOfType("int"), mock.AnythingOfType("time.Duration"), nil).Once()

	fcm, err := NewFuzzyCMeans(testutil.CanonicalObjects(), 2,
		WithRandomSource(rng.New(1)),
		WithMetricsCollector(mc))
	require.NoError(t, err)

	_, err = fcm.DetermineClusterCenters(context.Background(), true, false)
	require.NoError(t, err)

	mc.AssertExpectations(t)
	assert.Equal(t, fcm.Iterations(), mc.Calls[0].Arguments.Int(1))
}

func TestMetricsCollector_PCM(t *testing.T) {
	mc := &mockCollector{}
	mc.On("RecordPass", 1, mock.AnythingOfType("int")).Once()
	mc.On("RecordPass", 2, mock.AnythingOfType("int")).Once()
	mc.On("RecordRun", AlgorithmPCM, mock.AnythingOfType("int"), mock.AnythingOfType("time.Duration"), nil).Once()

	pcm, err := NewPossibilisticCMeans(testutil.CanonicalObjects(), 2, 2,
		WithRandomSource(rng.New(1)),
		WithMetricsCollector(mc))
	require.NoError(t, err)

	_, err = pcm.DetermineClusterCenters(context.Background(), true, false)
	require.NoError(t, err)

	// The warm start does not report a run of its own.
	mc.AssertExpectations(t)
	mc.AssertNumberOfCalls(t, "RecordRun", 1)
}

func TestBasicMetricsCollector(t *testing.T) {
	b := &BasicMetricsCollector{}

	assert.Equal(t, int64(0), b.GetStats().RunAvgNanos)

	b.RecordRun(AlgorithmFCM, 10, 2*time.Millisecond, nil)
	b.RecordRun(AlgorithmPCM, 30, 4*time.Millisecond, errors.New("boom"))
	b.RecordPass(1, 12)

	stats := b.GetStats()
	assert.Equal(t, int64(2), stats.RunCount)
	assert.Equal(t, int64(1), stats.RunErrors)
	assert.Equal(t, int64(40), stats.IterationsTotal)
	assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), stats.RunAvgNanos)
	assert.Equal(t, int64(1), stats.PassCount)
	assert.Equal(t, int64(12), stats.PassIterations)
}

func TestBasicMetricsCollector_CountsCapExhaustion(t *testing.T) {
	b := &BasicMetricsCollector{}

	fcm, err := NewFuzzyCMeans(testutil.CanonicalObjects(), 2,
		WithRandomSource(rng.New(1)),
		WithMaxIterations(1),
		WithMetricsCollector(b))
	require.NoError(t, err)

	_, err = fcm.DetermineClusterCenters(context.Background(), true, false)
	require.Error(t, err)

	stats := b.GetStats()
	assert.Equal(t, int64(1), stats.RunCount)
	assert.Equal(t, int64(1), stats.RunErrors)
	assert.Equal(t, int64(1), stats.IterationsTotal)
}
