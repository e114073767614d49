package configcat

import (
	"context"
	"errors"
	"fmt"
	"time"

	sdk "github.com/configcat/go-sdk/v9"
)

// clientAdapterConfigCat wraps a *configcat.Client to implement clientAdapter.
type clientAdapterConfigCat struct {
	client *sdk.Client
	// ownsClient reports whether the provider constructed the client and is
	// therefore responsible for closing it. Clients handed over through
	// NewFromClient stay owned by the caller.
	ownsClient   bool
	readyTimeout time.Duration
}

// newClientAdapterConfigCat creates a clientAdapterConfigCat over the given
// client.
func newClientAdapterConfigCat(client *sdk.Client, ownsClient bool, readyTimeout time.Duration) *clientAdapterConfigCat {
	return &clientAdapterConfigCat{
		client:       client,
		ownsClient:   ownsClient,
		readyTimeout: readyTimeout,
	}
}

// Start waits for the client's first configuration fetch, up to the
// configured ready timeout. Timing out is not an error: the client keeps
// fetching in the background, and evaluations report not-ready until the
// first configuration lands.
func (c *clientAdapterConfigCat) Start() error {
	select {
	case <-c.client.Ready():
	case <-time.After(c.readyTimeout):
	}
	return nil
}

// Stop closes the client if the provider owns it.
func (c *clientAdapterConfigCat) Stop() error {
	if c.ownsClient {
		c.client.Close()
	}
	return nil
}

// Evaluate resolves the flag against the client's current configuration
// snapshot. SDK errors are classified here: a missing key, an evaluation
// attempted before the first configuration fetch, and everything else.
// The Ready channel cannot stand in for the last distinction: it closes
// after the first fetch attempt even when that attempt failed, so the
// missing-configuration state is recognized by the error the snapshot
// reports.
func (c *clientAdapterConfigCat) Evaluate(_ context.Context, flag string, user sdk.User) (*evaluation, error) {
	details := c.client.Snapshot(user).GetValueDetails(flag)
	if err := details.Data.Error; err != nil {
		var keyNotFound sdk.ErrKeyNotFound
		var configMissing sdk.ErrConfigJsonMissing
		switch {
		case errors.As(err, &keyNotFound):
			return nil, &flagNotFoundError{key: flag, cause: err}
		case errors.As(err, &configMissing):
			return nil, fmt.Errorf("%w: %v", errClientNotReady, err)
		default:
			return nil, err
		}
	}
	return &evaluation{
		Value:          details.Value,
		VariationID:    details.Data.VariationID,
		TargetingMatch: details.Data.MatchedTargetingRule != nil || details.Data.MatchedPercentageOption != nil,
		FetchTime:      details.Data.FetchTime,
	}, nil
}
