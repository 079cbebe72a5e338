// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/amosmoyo/ProjectManagement/internal/auth"
	"github.com/amosmoyo/ProjectManagement/internal/config"
	"github.com/amosmoyo/ProjectManagement/internal/observability"
)

type fakeObsServer struct {
	mu       sync.Mutex
	ready    observability.ReadinessChecker
	metrics  *observability.Metrics
	startErr error
	stopped  bool
}

func (s *fakeObsServer) Start() (<-chan error, error)    { return make(chan error), s.startErr }
func (s *fakeObsServer) Addr() string                    { return "127.0.0.1:0" }
func (s *fakeObsServer) Metrics() *observability.Metrics { return s.metrics }

func (s *fakeObsServer) Stop(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return nil
}

func (s *fakeObsServer) isReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready != nil && s.ready()
}

func serveDeps(obs *fakeObsServer, gotMetrics **observability.Metrics) *Deps {
	roles := &fakeRoles{}
	return &Deps{
		OpenRoles: func(context.Context, config.Config, *slog.Logger) (auth.RoleRepository, func(), error) {
			return roles, func() {}, nil
		},
		OpenApp: func(_ context.Context, _ config.Config, m *observability.Metrics, _ *slog.Logger) (Facade, func(), error) {
			*gotMetrics = m
			return &mockFacade{}, func() {}, nil
		},
		ObservabilityServerFactory: func(_ string, ready observability.ReadinessChecker) ObservabilityServer {
			obs.mu.Lock()
			defer obs.mu.Unlock()
			obs.ready = ready
			return obs
		},
	}
}

func TestServeCmd_ReadyUntilCancelled(t *testing.T) {
	cleanEnv(t)

	obs := &fakeObsServer{metrics: observability.NewMetrics(prometheus.NewRegistry())}
	var gotMetrics *observability.Metrics
	cmd := newRootCmdWithDeps(serveDeps(obs, &gotMetrics))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"serve", dbFlag, "--metrics-addr", "127.0.0.1:0"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, obs.isReady, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancellation")
	}

	assert.False(t, obs.isReady())
	assert.True(t, obs.stopped)
	assert.Same(t, obs.metrics, gotMetrics)
}

func TestServeCmd_ObservabilityStartFailure(t *testing.T) {
	cleanEnv(t)
	obs := &fakeObsServer{startErr: errors.New("address in use")}
	var gotMetrics *observability.Metrics

	_, err := execute(t, serveDeps(obs, &gotMetrics), "", "serve", dbFlag, "--metrics-addr", "127.0.0.1:1")
	require.Error(t, err)
	assert.Nil(t, gotMetrics)
}

func TestMonitorServerErrors(t *testing.T) {
	defer goleak.VerifyNone(t)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("error cancels", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		errCh := make(chan error, 1)
		errCh <- errors.New("boom")

		monitorServerErrors(ctx, cancel, errCh, "test", logger)
		assert.Error(t, ctx.Err())
	})

	t.Run("closed channel does not cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		errCh := make(chan error)
		close(errCh)

		monitorServerErrors(ctx, cancel, errCh, "test", logger)
		assert.NoError(t, ctx.Err())
	})
}
