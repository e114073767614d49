package configcat

import (
	"context"
	"errors"
	"fmt"
	"time"

	sdk "github.com/configcat/go-sdk/v9"
)

// clientAdapter is an interface for evaluating feature flags using the
// ConfigCat SDK. It abstracts the SDK client so the provider can be tested
// without a live client.
type clientAdapter interface {
	// Evaluate resolves the given flag for the given user and returns the
	// evaluated value together with its evaluation metadata.
	Evaluate(ctx context.Context, flag string, user sdk.User) (*evaluation, error)
	// Start starts the client and waits for its first configuration.
	Start() error
	// Stop stops the client.
	Stop() error
}

// evaluation is the outcome of a single flag evaluation as reported by the
// wrapped client. Value holds the setting's value in its stored type
// (bool, string, int or float64); the provider dispatches it to the type
// the caller requested.
type evaluation struct {
	Value          any
	VariationID    string
	TargetingMatch bool
	FetchTime      time.Time
}

// errClientNotReady is returned by Evaluate when the wrapped client has not
// completed its first configuration fetch yet.
var errClientNotReady = errors.New("the ConfigCat client has not fetched a configuration yet")

// flagNotFoundError is returned by Evaluate when the flag key does not exist
// in the fetched configuration.
type flagNotFoundError struct {
	key   string
	cause error
}

func (e *flagNotFoundError) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return fmt.Sprintf("flag %s not found", e.key)
}

func (e *flagNotFoundError) Unwrap() error {
	return e.cause
}
