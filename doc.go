// Package configcat provides an OpenFeature provider for ConfigCat.
//
// This package allows you to use ConfigCat (https://configcat.com) as a
// feature flag provider through the OpenFeature Go SDK. It wraps the
// ConfigCat Go SDK (https://configcat.com/docs/sdk-reference/go/) and
// translates between the two vocabularies; all flag evaluation, targeting,
// percentage rollouts, configuration fetching, polling and caching stay
// inside the wrapped SDK.
//
// # Installation
//
// Install the provider using go get:
//
//	go get github.com/open-feature/go-sdk-contrib/providers/configcat
//
// # Quick Start
//
// Create a provider and use it to evaluate feature flags:
//
//	import (
//	    "context"
//
//	    configcat "github.com/open-feature/go-sdk-contrib/providers/configcat"
//	    "github.com/open-feature/go-sdk/openfeature"
//	)
//
//	func main() {
//	    // Create a provider from your ConfigCat SDK key
//	    provider, err := configcat.New(context.Background(), "your-sdk-key")
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    // Initialize the provider; this waits for the first configuration fetch
//	    if err := provider.Init(openfeature.EvaluationContext{}); err != nil {
//	        panic(err)
//	    }
//	    defer provider.Shutdown()
//
//	    // Evaluate a flag
//	    evalCtx := openfeature.FlattenedContext{
//	        openfeature.TargetingKey: "user-123",
//	        "email":                  "user@example.com",
//	    }
//	    result := provider.BooleanEvaluation(context.Background(), "isAwesomeFeatureEnabled", false, evalCtx)
//
//	    if result.Value {
//	        // Feature is enabled
//	    }
//	}
//
// Rather than calling the provider directly, most applications register it
// with the OpenFeature SDK (openfeature.SetProvider) and evaluate flags
// through an OpenFeature client.
//
// # Provider Configuration
//
// The provider is created using [New], [NewFromConfig] or [NewFromClient].
// [New] accepts an SDK key and optional configuration options, all of which
// forward directly to the wrapped SDK client:
//
//   - [WithPollingMode], [WithPollInterval]: How the SDK keeps its configuration fresh
//   - [WithBaseURL], [WithDataGovernance]: Where the configuration is fetched from
//   - [WithOffline], [WithFlagOverrides]: Evaluate without network traffic
//   - [WithHTTPTimeout], [WithHooks]: Fetch timeout and SDK lifecycle callbacks
//   - [WithConfigCache]: Persist the fetched configuration, see [Cache]
//   - [WithLogger], [WithSDKLogLevel]: Structured logging, see below
//   - [WithReadyTimeout]: How long [Provider.Init] waits for the first fetch
//   - [WithKeyMap]: Customize evaluation context key mapping
//
// [NewFromClient] wraps an already constructed ConfigCat client instead. In
// that case the caller keeps ownership of the client's lifetime: construct
// it before the provider, and close it after the provider is no longer used.
//
// # Evaluation Context Mapping
//
// The provider maps OpenFeature evaluation context keys to the ConfigCat
// user object. The [openfeature.TargetingKey] is mapped to the user
// identifier, and the "email" and "country" attributes to the corresponding
// dedicated ConfigCat user fields (each recognized with a few naming
// conventions, see [DefaultKeyMap]). All other attributes are passed through
// unmodified as custom attributes for targeting rule evaluation.
//
// Attribute values may be strings, numbers, time.Time values or string
// slices. Booleans are stringified, since ConfigCat has no boolean
// attribute representation. Any other value kind fails the evaluation with
// an INVALID_CONTEXT error code.
//
// An empty evaluation context is valid: the flag is then evaluated without
// targeting, yielding the setting's configured served value.
//
// # Setting Typing
//
// ConfigCat settings are typed (boolean, string, integer, double). Each
// evaluation method expects the corresponding setting type and resolves to
// the caller-supplied default value with a TYPE_MISMATCH error code when the
// stored type differs.
//
// [Provider.ObjectEvaluation] is the exception: ConfigCat has no object
// setting type, so object flags are text settings holding a JSON document.
// The evaluated string is parsed and must decode to a JSON object.
//
// # Error Handling
//
// Evaluations never fail hard; they always return a value. On any error the
// caller-supplied default value is returned together with an error code:
//
//   - FLAG_NOT_FOUND: the flag key does not exist in the configuration
//   - TYPE_MISMATCH: the stored setting type differs from the requested type
//   - PROVIDER_NOT_READY: the client has no configuration yet
//   - PARSE_ERROR: an object flag holds malformed JSON
//   - INVALID_CONTEXT: a context attribute value is unsupported
//   - GENERAL: any other failure reported by the wrapped client
//
// The provider performs no retries, timeouts or buffering of its own; those
// policies belong to the wrapped client's configuration.
//
// # Logging
//
// The provider logs through log/slog at debug level. Pass a logger with
// [WithLogger]; it is also bridged into the wrapped SDK via [NewSDKLogger]
// unless Config.SDKLogger overrides it. The SDK's own verbosity is
// controlled separately with [WithSDKLogLevel].
//
// # Concurrency
//
// The provider holds no mutable state across evaluations; concurrent
// evaluations are safe and independent, as the wrapped ConfigCat client is
// safe for concurrent use. Init and Shutdown are lifecycle operations and
// are expected to be called from a single goroutine, as the OpenFeature SDK
// does.
package configcat
