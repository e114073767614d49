package configcat

import (
	"log/slog"
	"time"

	sdk "github.com/configcat/go-sdk/v9"
)

// defaultReadyTimeout is how long Init waits for the wrapped client's first
// configuration fetch before giving up and letting evaluations report
// not-ready instead.
const defaultReadyTimeout = 15 * time.Second

// Config contains the configuration for the ConfigCat provider. Most fields
// are forwarded verbatim to the wrapped ConfigCat SDK client; the provider
// adds no policy of its own on top of them.
type Config struct {
	// SDKKey is the SDK key of the ConfigCat config to evaluate, from the
	// ConfigCat dashboard. It may be omitted only when FlagOverrides is set
	// with [sdk.LocalOnly] behavior.
	SDKKey string
	// PollingMode selects how the SDK keeps its configuration fresh
	// (auto poll, lazy load or manual refresh). Defaults to auto polling.
	PollingMode sdk.PollingMode
	// PollInterval is the refresh interval used by the auto and lazy
	// polling modes.
	PollInterval time.Duration
	// BaseURL overrides the ConfigCat CDN location. Only needed for proxies
	// or dedicated subscriptions.
	BaseURL string
	// DataGovernance selects the CDN region the configuration is fetched
	// from.
	DataGovernance sdk.DataGovernance
	// Offline disables all network traffic of the SDK.
	Offline bool
	// FlagOverrides feeds the SDK flag values from a local source instead
	// of (or in addition to) the fetched configuration.
	FlagOverrides *sdk.FlagOverrides
	// HTTPTimeout is the timeout of the SDK's configuration fetches.
	HTTPTimeout time.Duration
	// Hooks subscribes to the SDK's lifecycle events.
	Hooks *sdk.Hooks
	// ConfigCache persists the fetched configuration JSON, e.g. across
	// process restarts. The SDK decides when to read and write it; the
	// provider only wires it through.
	ConfigCache Cache
	// Logger is the structured logger used by the provider and, unless
	// SDKLogger is set, bridged into the SDK. Defaults to slog.Default().
	Logger *slog.Logger
	// SDKLogger overrides the logger handed to the SDK. If unset, the SDK
	// logs through Logger via [NewSDKLogger].
	SDKLogger sdk.Logger
	// SDKLogLevel sets the SDK's log level filter. The SDK default is kept
	// when unset.
	SDKLogLevel sdk.LogLevel
	// ReadyTimeout bounds how long Init waits for the first configuration
	// fetch. Defaults to 15 seconds.
	ReadyTimeout time.Duration
	// KeyMap maps evaluation context keys to the canonical ConfigCat user
	// fields. If unset, [DefaultKeyMap] is used.
	KeyMap map[string]Key

	// testClientAdapter is an optional clientAdapter for testing.
	// When set, NewFromConfig will use this instead of creating a real client.
	// This field is not part of the public API.
	testClientAdapter clientAdapter
}

// Option is a function that configures the Config.
type Option func(*Config)

// WithPollingMode sets the SDK's polling mode.
func WithPollingMode(mode sdk.PollingMode) Option {
	return func(c *Config) {
		c.PollingMode = mode
	}
}

// WithPollInterval sets the refresh interval of the auto and lazy polling modes.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Config) {
		c.PollInterval = interval
	}
}

// WithBaseURL overrides the ConfigCat CDN location.
func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.BaseURL = baseURL
	}
}

// WithDataGovernance selects the CDN region the configuration is fetched from.
func WithDataGovernance(governance sdk.DataGovernance) Option {
	return func(c *Config) {
		c.DataGovernance = governance
	}
}

// WithOffline disables all network traffic of the SDK.
func WithOffline(offline bool) Option {
	return func(c *Config) {
		c.Offline = offline
	}
}

// WithFlagOverrides feeds the SDK flag values from a local source.
func WithFlagOverrides(overrides *sdk.FlagOverrides) Option {
	return func(c *Config) {
		c.FlagOverrides = overrides
	}
}

// WithHTTPTimeout sets the timeout of the SDK's configuration fetches.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithHooks subscribes to the SDK's lifecycle events.
func WithHooks(hooks *sdk.Hooks) Option {
	return func(c *Config) {
		c.Hooks = hooks
	}
}

// WithConfigCache sets the cache the SDK persists its fetched configuration in.
func WithConfigCache(cache Cache) Option {
	return func(c *Config) {
		c.ConfigCache = cache
	}
}

// WithLogger sets the structured logger used by the provider and the SDK.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithSDKLogLevel sets the SDK's log level filter.
func WithSDKLogLevel(level sdk.LogLevel) Option {
	return func(c *Config) {
		c.SDKLogLevel = level
	}
}

// WithReadyTimeout bounds how long Init waits for the first configuration fetch.
func WithReadyTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.ReadyTimeout = timeout
	}
}

// WithKeyMap sets the evaluation context key map for the ConfigCat provider.
// If unset, [DefaultKeyMap] will be used.
func WithKeyMap(keyMap map[string]Key) Option {
	return func(c *Config) {
		c.KeyMap = keyMap
	}
}

// getKeyMap returns the key map for the ConfigCat provider.
// If unset, [DefaultKeyMap] will be used. The receiver is not modified;
// the provider resolves the key map once at construction time.
func (c *Config) getKeyMap() map[string]Key {
	if c.KeyMap == nil {
		return DefaultKeyMap()
	}
	return c.KeyMap
}

// getLogger returns the provider logger, defaulting to slog.Default().
func (c *Config) getLogger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// getReadyTimeout returns the ready timeout, applying the default.
func (c *Config) getReadyTimeout() time.Duration {
	if c.ReadyTimeout <= 0 {
		return defaultReadyTimeout
	}
	return c.ReadyTimeout
}

// localOnly reports whether the provider is configured to evaluate purely
// from local flag overrides, in which case no SDK key is required.
func (c *Config) localOnly() bool {
	return c.FlagOverrides != nil && c.FlagOverrides.Behavior == sdk.LocalOnly
}

// toSDKConfig translates the provider configuration into the wrapped SDK's
// configuration struct.
func (c *Config) toSDKConfig() sdk.Config {
	cfg := sdk.Config{
		SDKKey:         c.SDKKey,
		PollingMode:    c.PollingMode,
		PollInterval:   c.PollInterval,
		BaseURL:        c.BaseURL,
		DataGovernance: c.DataGovernance,
		Offline:        c.Offline,
		FlagOverrides:  c.FlagOverrides,
		HTTPTimeout:    c.HTTPTimeout,
		Hooks:          c.Hooks,
	}
	if c.SDKLogLevel != 0 {
		cfg.LogLevel = c.SDKLogLevel
	}
	cfg.Logger = c.SDKLogger
	if cfg.Logger == nil {
		cfg.Logger = NewSDKLogger(c.getLogger())
	}
	if c.ConfigCache != nil {
		cfg.Cache = &configCacheAdapter{cache: c.ConfigCache}
	}
	return cfg
}
