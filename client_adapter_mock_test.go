package configcat

import (
	"context"
	"errors"
	"sync"

	sdk "github.com/configcat/go-sdk/v9"
)

// mockClientAdapter is a mock implementation of clientAdapter for testing.
type mockClientAdapter struct {
	// StartFunc is called when Start is called. If nil, Start returns nil.
	StartFunc func() error
	// StopFunc is called when Stop is called. If nil, Stop returns nil.
	StopFunc func() error
	// EvaluateFunc is called when Evaluate is called.
	// If nil, Evaluate returns a flagNotFoundError.
	EvaluateFunc func(ctx context.Context, flag string, user sdk.User) (*evaluation, error)

	// startCalled tracks if Start was called.
	startCalled bool
	// stopCalled tracks if Stop was called.
	stopCalled bool

	// mu guards evaluateCalls, which may be appended to concurrently.
	mu sync.Mutex
	// evaluateCalls tracks all calls to Evaluate.
	evaluateCalls []mockEvaluateCall
}

// mockEvaluateCall records the arguments to an Evaluate call.
type mockEvaluateCall struct {
	Ctx  context.Context
	Flag string
	User sdk.User
}

// Start implements clientAdapter.
func (m *mockClientAdapter) Start() error {
	m.startCalled = true
	if m.StartFunc != nil {
		return m.StartFunc()
	}
	return nil
}

// Stop implements clientAdapter.
func (m *mockClientAdapter) Stop() error {
	m.stopCalled = true
	if m.StopFunc != nil {
		return m.StopFunc()
	}
	return nil
}

// Evaluate implements clientAdapter.
func (m *mockClientAdapter) Evaluate(ctx context.Context, flag string, user sdk.User) (*evaluation, error) {
	m.mu.Lock()
	m.evaluateCalls = append(m.evaluateCalls, mockEvaluateCall{
		Ctx:  ctx,
		Flag: flag,
		User: user,
	})
	m.mu.Unlock()
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, flag, user)
	}
	return nil, &flagNotFoundError{key: flag}
}

// Verify mockClientAdapter implements clientAdapter.
var _ clientAdapter = (*mockClientAdapter)(nil)

// Common errors for testing.
var errMockEvaluate = errors.New("mock evaluate error")
var errMockStart = errors.New("mock start error")

// Helper to create an evaluation with specific properties.
func makeEvaluation(value any, variationID string, targetingMatch bool) *evaluation {
	return &evaluation{
		Value:          value,
		VariationID:    variationID,
		TargetingMatch: targetingMatch,
	}
}

// Helper to build a mock that serves a fixed set of evaluations by flag key.
func mockServing(evaluations map[string]*evaluation) *mockClientAdapter {
	return &mockClientAdapter{
		EvaluateFunc: func(_ context.Context, flag string, _ sdk.User) (*evaluation, error) {
			eval, ok := evaluations[flag]
			if !ok {
				return nil, &flagNotFoundError{key: flag}
			}
			return eval, nil
		},
	}
}
