package svcinv

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the file configuration for applications embedding svcinv
type Config struct {
	// BusAddress overrides the system bus address
	BusAddress string `toml:"bus_address"`

	// CallTimeout bounds each manager call, e.g. "5s"
	CallTimeout time.Duration `toml:"call_timeout"`

	// PollInterval is the EventLoop iteration interval
	PollInterval time.Duration `toml:"poll_interval"`

	// Concurrency bounds bulk Manager operations
	Concurrency int `toml:"concurrency"`

	// WatchDirs are the unit directories watched for changes
	WatchDirs []string `toml:"watch_dirs"`

	// SnapshotPath, when set, is where the last inventory is persisted
	SnapshotPath string `toml:"snapshot_path"`

	// LogLevel is debug, info, warn or error
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() Config {
	return Config{
		CallTimeout:  DefaultCallTimeout,
		PollInterval: DefaultPollInterval,
		Concurrency:  DefaultConcurrency,
		WatchDirs:    append([]string(nil), DefaultUnitDirs...),
		LogLevel:     "info",
	}
}

// LoadConfig decodes the TOML file at path over DefaultConfig. A missing
// file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("loading config %s: unknown keys %v", path, undecoded)
	}

	return cfg, cfg.Validate()
}

// Validate reports configuration values that cannot be used
func (c Config) Validate() error {
	if c.CallTimeout < 0 {
		return fmt.Errorf("call_timeout must not be negative: %v", c.CallTimeout)
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("poll_interval must not be negative: %v", c.PollInterval)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative: %d", c.Concurrency)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel; empty means info
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(c.LogLevel) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// NewLogger builds a text logger writing to w at the configured level
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := c.Level()
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Dialer returns the system bus dialer described by the config
func (c Config) Dialer() *SystemBus {
	bus := NewSystemBus()
	bus.Address = c.BusAddress
	if c.CallTimeout > 0 {
		bus.Timeout = c.CallTimeout
	}
	return bus
}

// Options returns the component options described by the config
func (c Config) Options(logger *slog.Logger) []Option {
	opts := []Option{WithLogger(logger)}
	if c.Concurrency > 0 {
		opts = append(opts, WithConcurrency(c.Concurrency))
	}
	return opts
}
