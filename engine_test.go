// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package academia_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/academia"
	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/database/models"
	"github.com/blinklabs-io/academia/event"
	"github.com/blinklabs-io/academia/ledger"
)

func adminIdentity() address.Identity {
	var ret address.Identity
	for i := range ret {
		ret[i] = 0x42
	}
	return ret
}

func startEngine(t *testing.T, opts ...academia.ConfigOptionFunc) *academia.Engine {
	t.Helper()
	engine, err := academia.New(academia.NewConfig(opts...))
	require.NoError(t, err)
	require.NoError(t, engine.Start(context.Background()))
	return engine
}

func TestEngineStartStop(t *testing.T) {
	engine := startEngine(
		t,
		academia.WithPrometheusRegistry(prometheus.NewRegistry()),
		academia.WithShutdownTimeout(time.Second),
	)
	require.NotNil(t, engine.Ledger())
	require.NotNil(t, engine.EventBus())

	initialized, err := engine.Ledger().IsSystemInitialized()
	require.NoError(t, err)
	assert.False(t, initialized)

	require.Error(t, engine.Start(context.Background()))
	require.NoError(t, engine.Stop())
	// Stopping twice is a no-op
	require.NoError(t, engine.Stop())
}

func TestEngineUnknownPlugin(t *testing.T) {
	engine, err := academia.New(
		academia.NewConfig(academia.WithBlobPlugin("does-not-exist")),
	)
	require.NoError(t, err)
	require.Error(t, engine.Start(context.Background()))
}

func TestEngineStatePersists(t *testing.T) {
	dataDir := t.TempDir()
	ctx := context.Background()
	admin := adminIdentity()

	engine := startEngine(t, academia.WithDatabasePath(dataDir))
	_, err := engine.Ledger().CreateIdGeneratorFor(
		ctx,
		admin,
		ledger.IdGeneratorParams{Namespace: "highRank"},
	)
	require.NoError(t, err)
	_, err = engine.Ledger().CreateHighRank(ctx, admin, ledger.DefaultHighRankCode)
	require.NoError(t, err)
	ok, err := engine.Ledger().InitializeSystem(ctx, admin)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, engine.Stop())

	engine = startEngine(t, academia.WithDatabasePath(dataDir))
	defer engine.Stop() //nolint:errcheck
	initialized, err := engine.Ledger().IsSystemInitialized()
	require.NoError(t, err)
	assert.True(t, initialized)
	role, err := engine.Ledger().GetRole(models.RoleKindHighRank, admin)
	require.NoError(t, err)
	assert.Equal(t, admin, role.Authority)
	ops, err := engine.Ledger().Operations(0)
	require.NoError(t, err)
	assert.Len(t, ops, 3)
}

func TestEngineStopWithUndrainedSubscriber(t *testing.T) {
	engine := startEngine(
		t,
		academia.WithPrometheusRegistry(prometheus.NewRegistry()),
		academia.WithShutdownTimeout(time.Second),
	)
	bus := engine.EventBus()
	_, _ = bus.Subscribe(event.CreditsIssuedEventType)
	for range event.EventQueueSize + 5 {
		bus.PublishAsync(
			event.CreditsIssuedEventType,
			event.NewEvent(event.CreditsIssuedEventType, event.CreditsIssuedEvent{}),
		)
	}
	doneCh := make(chan error, 1)
	go func() {
		doneCh <- engine.Stop()
	}()
	select {
	case err := <-doneCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("engine stop blocked on an undrained subscriber")
	}
}
