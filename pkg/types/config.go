package types

import "time"

// HTTPConfig holds shared HTTP settings for outbound requests.
type HTTPConfig struct {
	// Timeout is the HTTP client timeout. Zero leaves the transport default
	// in place; the search contract imposes no timeout of its own.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with every request
	// (e.g. "bsearch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the encyclopedia search client.
type SearchConfig struct {
	// Endpoint is the MediaWiki API URL (default https://en.wikipedia.org/w/api.php).
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// Limit is the number of results requested per query (default 12).
	Limit int `json:"limit" yaml:"limit" mapstructure:"limit"`
}

// FunFactConfig holds settings for the decorative fact client.
type FunFactConfig struct {
	// Endpoint returns a JSON object with a "text" field.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// Fallback is shown whenever the endpoint cannot produce a fact.
	Fallback string `json:"fallback" yaml:"fallback" mapstructure:"fallback"`
}

// SessionConfig holds settings for the session state holder.
type SessionConfig struct {
	// HistoryLimit caps the recent-query history (default 8).
	HistoryLimit int `json:"history_limit" yaml:"history_limit" mapstructure:"history_limit"`
}

// PlaceholderConfig tunes the idle prompt animation.
type PlaceholderConfig struct {
	// Phrases are typed out in order, cyclically.
	Phrases []string `json:"phrases" yaml:"phrases" mapstructure:"phrases"`

	// TypeDelay is the base delay between typed characters (default 60ms).
	TypeDelay time.Duration `json:"type_delay" yaml:"type_delay" mapstructure:"type_delay"`

	// TypeJitter is the upper bound of random extra delay per typed character (default 40ms).
	TypeJitter time.Duration `json:"type_jitter" yaml:"type_jitter" mapstructure:"type_jitter"`

	// Hold is how long a fully typed phrase stays visible (default 2s).
	Hold time.Duration `json:"hold" yaml:"hold" mapstructure:"hold"`

	// DeleteDelay is the delay between deleted characters (default 30ms).
	DeleteDelay time.Duration `json:"delete_delay" yaml:"delete_delay" mapstructure:"delete_delay"`
}

// LogConfig selects the diagnostic log level.
type LogConfig struct {
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// Config groups all settings loaded from the config file and environment.
type Config struct {
	HTTP        HTTPConfig        `json:"http" yaml:"http" mapstructure:"http"`
	Search      SearchConfig      `json:"search" yaml:"search" mapstructure:"search"`
	FunFact     FunFactConfig     `json:"funfact" yaml:"funfact" mapstructure:"funfact"`
	Session     SessionConfig     `json:"session" yaml:"session" mapstructure:"session"`
	Placeholder PlaceholderConfig `json:"placeholder" yaml:"placeholder" mapstructure:"placeholder"`
	Log         LogConfig         `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the settings used when no config file overrides them.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			UserAgent: "bsearch/dev",
		},
		Search: SearchConfig{
			Endpoint: "https://en.wikipedia.org/w/api.php",
			Limit:    12,
		},
		FunFact: FunFactConfig{
			Endpoint: "https://uselessfacts.jsph.pl/api/v2/facts/random?language=en",
			Fallback: "Honey never spoils. Archaeologists found 3000-year-old honey in Egyptian tombs that was still edible.",
		},
		Session: SessionConfig{
			HistoryLimit: 8,
		},
		Placeholder: PlaceholderConfig{
			Phrases: []string{
				"artificial intelligence",
				"black holes",
				"climate change",
				"quantum computing",
				"roman empire",
				"deep ocean creatures",
				"space exploration",
			},
			TypeDelay:   60 * time.Millisecond,
			TypeJitter:  40 * time.Millisecond,
			Hold:        2 * time.Second,
			DeleteDelay: 30 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}
