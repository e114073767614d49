package configcat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	sdk "github.com/configcat/go-sdk/v9"
	of "github.com/open-feature/go-sdk/openfeature"
)

// Provider is an OpenFeature provider implementation for ConfigCat.
// It is a pure translation layer: every evaluation is forwarded to the
// wrapped ConfigCat client, and the client's result is mapped back into
// the OpenFeature resolution shape. The provider holds no mutable state
// beyond the client handle and is safe for concurrent use.
type Provider struct {
	config Config
	state  of.State
	logger *slog.Logger
	// keyMap is resolved once at construction so evaluations never touch
	// the shared config.
	keyMap map[string]Key
	client clientAdapter
}

const (
	providerNotReady = "ConfigCat provider not ready"
	generalError     = "ConfigCat general error"
)

var _ of.FeatureProvider = (*Provider)(nil)

// New creates a new [Provider] from an SDK key and options.
func New(ctx context.Context, sdkKey string, options ...Option) (*Provider, error) {
	config := Config{
		SDKKey: sdkKey,
	}
	for _, option := range options {
		option(&config)
	}
	return NewFromConfig(ctx, config)
}

// NewFromConfig creates a new [Provider] from a [Config].
func NewFromConfig(_ context.Context, config Config) (*Provider, error) {
	if config.SDKKey == "" && !config.localOnly() {
		return nil, errors.New("you must provide an SDK key")
	}

	provider := &Provider{
		state:  of.NotReadyState,
		config: config,
		logger: config.getLogger(),
		keyMap: config.getKeyMap(),
	}

	// Allow injecting a test client adapter for testing
	if config.testClientAdapter != nil {
		provider.client = config.testClientAdapter
		return provider, nil
	}

	client := sdk.NewCustomClient(config.toSDKConfig())
	provider.client = newClientAdapterConfigCat(client, true, config.getReadyTimeout())
	return provider, nil
}

// NewFromClient creates a new [Provider] wrapping a caller-constructed
// ConfigCat client. The caller keeps ownership of the client's lifetime:
// it must be constructed before the provider and closed by the caller once
// the provider is no longer used. [Provider.Shutdown] will not close it.
func NewFromClient(client *sdk.Client, options ...Option) (*Provider, error) {
	if client == nil {
		return nil, errors.New("you must provide a ConfigCat client")
	}
	config := Config{}
	for _, option := range options {
		option(&config)
	}
	provider := &Provider{
		state:  of.NotReadyState,
		config: config,
		logger: config.getLogger(),
		keyMap: config.getKeyMap(),
	}
	provider.client = newClientAdapterConfigCat(client, false, config.getReadyTimeout())
	return provider, nil
}

// Init initializes the ConfigCat provider.
// This must be called before using the provider. It waits for the wrapped
// client's first configuration fetch, up to the configured ready timeout;
// evaluations performed before the configuration arrives resolve to the
// default value with a PROVIDER_NOT_READY error code.
func (p *Provider) Init(_ of.EvaluationContext) error {
	startErr := p.client.Start()
	if startErr != nil {
		p.state = of.ErrorState
		return startErr
	}

	p.state = of.ReadyState
	p.logger.Debug("ConfigCat provider initialized")
	return nil
}

// Shutdown shuts down the ConfigCat provider. The wrapped client is closed
// only when the provider constructed it; clients passed in through
// [NewFromClient] stay untouched.
func (p *Provider) Shutdown() {
	if err := p.client.Stop(); err != nil {
		p.logger.Warn("error while stopping the ConfigCat client", "error", err)
	}
	p.state = of.NotReadyState
}

// Hooks returns empty slice as provider does not have any hooks.
func (p *Provider) Hooks() []of.Hook {
	return []of.Hook{}
}

// Metadata returns value of Metadata (name of current service, exposed to openfeature sdk).
func (p *Provider) Metadata() of.Metadata {
	return of.Metadata{
		Name: "ConfigCat",
	}
}

// BooleanEvaluation evaluates a boolean feature flag.
// The stored setting must be a boolean; any other setting type resolves to
// the default value with a TYPE_MISMATCH error code.
func (p *Provider) BooleanEvaluation(ctx context.Context, flag string, defaultValue bool, evalCtx of.FlattenedContext) of.BoolResolutionDetail {
	eval, resErr := p.evaluateFlag(ctx, flag, evalCtx)
	if resErr != nil {
		return of.BoolResolutionDetail{
			Value: defaultValue,
			ProviderResolutionDetail: of.ProviderResolutionDetail{
				ResolutionError: *resErr,
				Reason:          of.ErrorReason,
			},
		}
	}

	value, ok := eval.Value.(bool)
	if !ok {
		return of.BoolResolutionDetail{
			Value:                    defaultValue,
			ProviderResolutionDetail: typeMismatchDetail(flag, "bool", eval.Value),
		}
	}

	p.logger.Debug("boolean flag evaluated", "flag", flag, "value", value, "variant", eval.VariationID)
	return of.BoolResolutionDetail{
		Value:                    value,
		ProviderResolutionDetail: resolutionDetail(eval),
	}
}

// StringEvaluation evaluates a string feature flag.
func (p *Provider) StringEvaluation(ctx context.Context, flag string, defaultValue string, evalCtx of.FlattenedContext) of.StringResolutionDetail {
	eval, resErr := p.evaluateFlag(ctx, flag, evalCtx)
	if resErr != nil {
		return of.StringResolutionDetail{
			Value: defaultValue,
			ProviderResolutionDetail: of.ProviderResolutionDetail{
				ResolutionError: *resErr,
				Reason:          of.ErrorReason,
			},
		}
	}

	value, ok := eval.Value.(string)
	if !ok {
		return of.StringResolutionDetail{
			Value:                    defaultValue,
			ProviderResolutionDetail: typeMismatchDetail(flag, "string", eval.Value),
		}
	}

	p.logger.Debug("string flag evaluated", "flag", flag, "value", value, "variant", eval.VariationID)
	return of.StringResolutionDetail{
		Value:                    value,
		ProviderResolutionDetail: resolutionDetail(eval),
	}
}

// IntEvaluation evaluates an integer feature flag.
// Whole numbers are accepted in any of the numeric representations the
// wrapped client may report (int, int64, or a whole-valued float64 coming
// from local JSON overrides).
func (p *Provider) IntEvaluation(ctx context.Context, flag string, defaultValue int64, evalCtx of.FlattenedContext) of.IntResolutionDetail {
	eval, resErr := p.evaluateFlag(ctx, flag, evalCtx)
	if resErr != nil {
		return of.IntResolutionDetail{
			Value: defaultValue,
			ProviderResolutionDetail: of.ProviderResolutionDetail{
				ResolutionError: *resErr,
				Reason:          of.ErrorReason,
			},
		}
	}

	var value int64
	switch castType := eval.Value.(type) {
	case int:
		value = int64(castType)
	case int64:
		value = castType
	case float64:
		if castType != math.Trunc(castType) {
			return of.IntResolutionDetail{
				Value:                    defaultValue,
				ProviderResolutionDetail: typeMismatchDetail(flag, "int", eval.Value),
			}
		}
		value = int64(castType)
	default:
		return of.IntResolutionDetail{
			Value:                    defaultValue,
			ProviderResolutionDetail: typeMismatchDetail(flag, "int", eval.Value),
		}
	}

	p.logger.Debug("int flag evaluated", "flag", flag, "value", value, "variant", eval.VariationID)
	return of.IntResolutionDetail{
		Value:                    value,
		ProviderResolutionDetail: resolutionDetail(eval),
	}
}

// FloatEvaluation evaluates a float feature flag.
func (p *Provider) FloatEvaluation(ctx context.Context, flag string, defaultValue float64, evalCtx of.FlattenedContext) of.FloatResolutionDetail {
	eval, resErr := p.evaluateFlag(ctx, flag, evalCtx)
	if resErr != nil {
		return of.FloatResolutionDetail{
			Value: defaultValue,
			ProviderResolutionDetail: of.ProviderResolutionDetail{
				ResolutionError: *resErr,
				Reason:          of.ErrorReason,
			},
		}
	}

	var value float64
	switch castType := eval.Value.(type) {
	case float64:
		value = castType
	case int:
		value = float64(castType)
	case int64:
		value = float64(castType)
	default:
		return of.FloatResolutionDetail{
			Value:                    defaultValue,
			ProviderResolutionDetail: typeMismatchDetail(flag, "float", eval.Value),
		}
	}

	p.logger.Debug("float flag evaluated", "flag", flag, "value", value, "variant", eval.VariationID)
	return of.FloatResolutionDetail{
		Value:                    value,
		ProviderResolutionDetail: resolutionDetail(eval),
	}
}

// ObjectEvaluation evaluates an object feature flag.
// ConfigCat has no native object setting type; object flags are text
// settings holding a JSON document. The evaluated string is parsed and must
// decode to a JSON object. Malformed JSON resolves to the default value with
// a PARSE_ERROR code, a JSON document of any other kind with TYPE_MISMATCH.
func (p *Provider) ObjectEvaluation(ctx context.Context, flag string, defaultValue any, evalCtx of.FlattenedContext) of.InterfaceResolutionDetail {
	eval, resErr := p.evaluateFlag(ctx, flag, evalCtx)
	if resErr != nil {
		return of.InterfaceResolutionDetail{
			Value: defaultValue,
			ProviderResolutionDetail: of.ProviderResolutionDetail{
				ResolutionError: *resErr,
				Reason:          of.ErrorReason,
			},
		}
	}

	switch castType := eval.Value.(type) {
	case string:
		var decoded any
		if err := json.Unmarshal([]byte(castType), &decoded); err != nil {
			return of.InterfaceResolutionDetail{
				Value: defaultValue,
				ProviderResolutionDetail: of.ProviderResolutionDetail{
					ResolutionError: of.NewParseErrorResolutionError(
						fmt.Sprintf("failed to parse the value of flag %s as JSON: %v", flag, err)),
					Reason: of.ErrorReason,
				},
			}
		}
		object, ok := decoded.(map[string]any)
		if !ok {
			return of.InterfaceResolutionDetail{
				Value:                    defaultValue,
				ProviderResolutionDetail: typeMismatchDetail(flag, "object", decoded),
			}
		}
		p.logger.Debug("object flag evaluated", "flag", flag, "variant", eval.VariationID)
		return of.InterfaceResolutionDetail{
			Value:                    object,
			ProviderResolutionDetail: resolutionDetail(eval),
		}
	case map[string]any:
		// Local overrides may carry the object directly.
		p.logger.Debug("object flag evaluated", "flag", flag, "variant", eval.VariationID)
		return of.InterfaceResolutionDetail{
			Value:                    castType,
			ProviderResolutionDetail: resolutionDetail(eval),
		}
	default:
		return of.InterfaceResolutionDetail{
			Value:                    defaultValue,
			ProviderResolutionDetail: typeMismatchDetail(flag, "object", eval.Value),
		}
	}
}

// evaluateFlag converts the evaluation context to a ConfigCat user and asks
// the client adapter for the flag's evaluated value.
// Returns a resolution error if the provider is not ready, the context is
// invalid, or the client reports an error.
func (p *Provider) evaluateFlag(ctx context.Context, flag string, evalCtx of.FlattenedContext) (*evaluation, *of.ResolutionError) {
	if p.state != of.ReadyState {
		resErr := p.stateError()
		return nil, &resErr
	}

	user, userErr := toUser(evalCtx, p.keyMap)
	if userErr != nil {
		resErr := of.NewInvalidContextResolutionError(userErr.Error())
		return nil, &resErr
	}

	eval, evalErr := p.client.Evaluate(ctx, flag, user)
	if evalErr != nil {
		p.logger.Debug("flag evaluation failed", "flag", flag, "error", evalErr)
		resErr := toResolutionError(evalErr)
		return nil, &resErr
	}

	return eval, nil
}

// stateError returns the appropriate resolution error based on provider state.
func (p *Provider) stateError() of.ResolutionError {
	if p.state == of.NotReadyState {
		return of.NewProviderNotReadyResolutionError(providerNotReady)
	}
	return of.NewGeneralResolutionError(generalError)
}

// toResolutionError maps a client adapter error to the framework's error
// codes: missing keys to FLAG_NOT_FOUND, evaluations before the first
// configuration fetch to PROVIDER_NOT_READY, everything else to GENERAL.
func toResolutionError(err error) of.ResolutionError {
	var notFound *flagNotFoundError
	switch {
	case errors.As(err, &notFound):
		return of.NewFlagNotFoundResolutionError(err.Error())
	case errors.Is(err, errClientNotReady):
		return of.NewProviderNotReadyResolutionError(err.Error())
	default:
		return of.NewGeneralResolutionError(err.Error())
	}
}

// resolutionDetail builds the detail of a successful evaluation. The reason
// is TARGETING_MATCH when a targeting rule or percentage option matched the
// user, DEFAULT otherwise.
func resolutionDetail(eval *evaluation) of.ProviderResolutionDetail {
	reason := of.DefaultReason
	if eval.TargetingMatch {
		reason = of.TargetingMatchReason
	}
	return of.ProviderResolutionDetail{
		Reason:       reason,
		Variant:      eval.VariationID,
		FlagMetadata: evaluationMetadata(eval),
	}
}

// typeMismatchDetail builds the detail of an evaluation whose stored setting
// type does not match the requested type.
func typeMismatchDetail(flag, requested string, value any) of.ProviderResolutionDetail {
	return of.ProviderResolutionDetail{
		ResolutionError: of.NewTypeMismatchResolutionError(
			fmt.Sprintf("the value of flag %s is of type %T but the requested type was %s", flag, value, requested)),
		Reason: of.ErrorReason,
	}
}

// evaluationMetadata returns the standard metadata for an evaluation.
func evaluationMetadata(eval *evaluation) map[string]any {
	metadata := map[string]any{
		"variationId": eval.VariationID,
	}
	if !eval.FetchTime.IsZero() {
		metadata["fetchTime"] = eval.FetchTime
	}
	return metadata
}
