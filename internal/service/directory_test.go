package service_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/UnknownOlympus/locator/internal/metrics"
	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/UnknownOlympus/locator/internal/service"
	"github.com/UnknownOlympus/locator/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingBroadcaster struct {
	mu    sync.Mutex
	calls [][]models.LawFirm
}

func (b *recordingBroadcaster) Broadcast(firms []models.LawFirm) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, firms)
}

func (b *recordingBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func TestDirectory_Refresh(t *testing.T) {
	ctx := t.Context()
	firms := []models.LawFirm{
		{ID: "f1", Name: "Adams", Coordinates: &models.Coordinates{Latitude: 35, Longitude: -80}},
		{ID: "f2", Name: "Baker", Coordinates: &models.Coordinates{Latitude: 36, Longitude: -81}},
	}

	t.Run("broadcasts active firms", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		target := &recordingBroadcaster{}
		m := metrics.NewMetrics(prometheus.NewRegistry())
		dir := service.NewDirectory(repo, target, time.Minute, slog.Default(), m)

		repo.On("FetchActiveFirms", ctx).Return(firms, nil).Once()

		require.NoError(t, dir.Refresh(ctx))

		require.Equal(t, 1, target.count())
		assert.Equal(t, firms, target.calls[0])
		assert.InDelta(t, 2, testutil.ToFloat64(m.DirectoryFirms), 0)
	})

	t.Run("failure keeps previous set", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		target := &recordingBroadcaster{}
		dir := service.NewDirectory(repo, target, time.Minute, slog.Default(),
			metrics.NewMetrics(prometheus.NewRegistry()))

		repo.On("FetchActiveFirms", ctx).Return(nil, assert.AnError).Once()

		err := dir.Refresh(ctx)

		require.ErrorIs(t, err, assert.AnError)
		assert.Zero(t, target.count())
	})

	t.Run("run refreshes on start and on tick", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		target := &recordingBroadcaster{}
		dir := service.NewDirectory(repo, target, 10*time.Millisecond, slog.Default(),
			metrics.NewMetrics(prometheus.NewRegistry()))

		repo.On("FetchActiveFirms", mock.Anything).Return(firms, nil)

		runCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			dir.Run(runCtx)
			close(done)
		}()

		assert.Eventually(t, func() bool { return target.count() >= 2 }, time.Second, 5*time.Millisecond)
		cancel()
		<-done
	})
}
