package configcat

import (
	"context"
	"errors"
	"testing"
	"time"

	sdk "github.com/configcat/go-sdk/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalAdapter(t *testing.T, values map[string]interface{}) *clientAdapterConfigCat {
	t.Helper()

	client := sdk.NewCustomClient(sdk.Config{
		SDKKey: "local",
		FlagOverrides: &sdk.FlagOverrides{
			Behavior: sdk.LocalOnly,
			Values:   values,
		},
	})
	adapter := newClientAdapterConfigCat(client, true, time.Second)
	require.NoError(t, adapter.Start())
	t.Cleanup(func() { _ = adapter.Stop() })
	return adapter
}

func TestClientAdapterConfigCat_Evaluate(t *testing.T) {
	adapter := newLocalAdapter(t, map[string]interface{}{
		"enabledFeature": true,
	})

	eval, err := adapter.Evaluate(context.Background(), "enabledFeature", nil)
	require.NoError(t, err)
	assert.Equal(t, true, eval.Value)
}

func TestClientAdapterConfigCat_EvaluateMissingKey(t *testing.T) {
	adapter := newLocalAdapter(t, map[string]interface{}{
		"enabledFeature": true,
	})

	eval, err := adapter.Evaluate(context.Background(), "missingFlag", nil)
	require.Error(t, err)
	assert.Nil(t, eval)

	var notFound *flagNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestClientAdapterConfigCat_EvaluateBeforeFirstConfig(t *testing.T) {
	// Manual polling with network traffic disabled: the client reports
	// ready immediately but never fetches a configuration.
	client := sdk.NewCustomClient(sdk.Config{
		SDKKey:      "offline-test-key",
		BaseURL:     "https://localhost",
		PollingMode: sdk.Manual,
		Offline:     true,
	})
	adapter := newClientAdapterConfigCat(client, true, time.Second)
	require.NoError(t, adapter.Start())
	t.Cleanup(func() { _ = adapter.Stop() })

	eval, err := adapter.Evaluate(context.Background(), "enabledFeature", nil)
	require.Error(t, err)
	assert.Nil(t, eval)
	assert.True(t, errors.Is(err, errClientNotReady), "expected a not-ready error, got: %v", err)

	var notFound *flagNotFoundError
	assert.False(t, errors.As(err, &notFound))
}

func TestClientAdapterConfigCat_StopKeepsBorrowedClient(t *testing.T) {
	client := sdk.NewCustomClient(sdk.Config{
		SDKKey: "local",
		FlagOverrides: &sdk.FlagOverrides{
			Behavior: sdk.LocalOnly,
			Values:   map[string]interface{}{"enabledFeature": true},
		},
	})
	defer client.Close()

	adapter := newClientAdapterConfigCat(client, false, time.Second)
	require.NoError(t, adapter.Start())
	require.NoError(t, adapter.Stop())

	// The borrowed client must still be usable after Stop.
	eval, err := adapter.Evaluate(context.Background(), "enabledFeature", nil)
	require.NoError(t, err)
	assert.Equal(t, true, eval.Value)
}
