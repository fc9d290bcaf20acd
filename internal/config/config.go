package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "reqio.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REQIO_"

// Config is the full runtime configuration of the reqio scripts.
type Config struct {
	LogLevel string        `yaml:"log_level" mapstructure:"log_level"`
	Count    CountConfig   `yaml:"count" mapstructure:"count"`
	Greeter  GreeterConfig `yaml:"greeter" mapstructure:"greeter"`
	Echo     EchoConfig    `yaml:"echo" mapstructure:"echo"`
	Chat     ChatConfig    `yaml:"chat" mapstructure:"chat"`
	Metrics  MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// CountConfig paces the count script.
type CountConfig struct {
	Limit    int           `yaml:"limit" mapstructure:"limit"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// GreeterConfig holds the greeting template. It must contain one %s.
type GreeterConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
}

// EchoConfig holds the request-reply prefix.
type EchoConfig struct {
	Prefix string `yaml:"prefix" mapstructure:"prefix"`
}

// ChatConfig points the chat script at its Redis channel.
type ChatConfig struct {
	RedisAddr string `yaml:"redis_addr" mapstructure:"redis_addr"`
	Channel   string `yaml:"channel" mapstructure:"channel"`
}

// MetricsConfig enables the Prometheus textfile written at exit.
type MetricsConfig struct {
	Textfile string `yaml:"textfile" mapstructure:"textfile"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Count: CountConfig{
			Limit:    10,
			Interval: 500 * time.Millisecond,
		},
		Greeter: GreeterConfig{Format: "Hello %s!"},
		Echo:    EchoConfig{Prefix: "RCVD: "},
		Chat: ChatConfig{
			RedisAddr: "localhost:6379",
			Channel:   "chat",
		},
	}
}

// envKeys maps environment overrides to their position in the config tree.
var envKeys = map[string][]string{
	"LOG_LEVEL":        {"log_level"},
	"COUNT_LIMIT":      {"count", "limit"},
	"COUNT_INTERVAL":   {"count", "interval"},
	"GREETER_FORMAT":   {"greeter", "format"},
	"ECHO_PREFIX":      {"echo", "prefix"},
	"CHAT_REDIS_ADDR":  {"chat", "redis_addr"},
	"CHAT_CHANNEL":     {"chat", "channel"},
	"METRICS_TEXTFILE": {"metrics", "textfile"},
}

// Load reads the YAML file at path, applies REQIO_* overrides found in
// environ and decodes the result over the defaults.
// A missing file is not an error: the defaults (plus overrides) are used.
func Load(path string, environ []string) (Config, error) {
	raw := map[string]any{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
			}
			if raw == nil {
				raw = map[string]any{}
			}
		case os.IsNotExist(err):
		default:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	applyEnv(raw, environ)

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(raw map[string]any, environ []string) {
	for _, pair := range environ {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		path, known := envKeys[strings.TrimPrefix(name, EnvPrefix)]
		if !known {
			continue
		}

		node := raw
		for _, key := range path[:len(path)-1] {
			child, ok := node[key].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[key] = child
			}
			node = child
		}
		node[path[len(path)-1]] = value
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Count.Limit < 0 {
		errs = append(errs, fmt.Errorf("count.limit must not be negative, got %d", c.Count.Limit))
	}
	if c.Count.Interval < 0 {
		errs = append(errs, fmt.Errorf("count.interval must not be negative, got %s", c.Count.Interval))
	}
	if n := strings.Count(c.Greeter.Format, "%s"); n != 1 {
		errs = append(errs, fmt.Errorf("greeter.format must contain exactly one %%s, got %q", c.Greeter.Format))
	}
	if c.Chat.Channel == "" {
		errs = append(errs, errors.New("chat.channel must not be empty"))
	}
	return errors.Join(errs...)
}
