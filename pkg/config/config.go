package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/anivanovic/lcdbar/pkg/progress"
)

const (
	EnvPrefix = "lcdbar"
	fileName  = ".lcdbar"

	DisplayAuto     = "auto"
	DisplayTerminal = "terminal"
	DisplayLive     = "live"
	DisplayGrid     = "grid"
	DisplayLCD      = "lcd"
)

var ErrInvalid = errors.New("invalid configuration")

type (
	Config struct {
		Log     Log     `mapstructure:"log"`
		Bar     Bar     `mapstructure:"bar"`
		Display Display `mapstructure:"display"`
		Demo    Demo    `mapstructure:"demo"`
	}

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	}

	Bar struct {
		Length     int    `mapstructure:"length"`
		Row        int    `mapstructure:"row"`
		Col        int    `mapstructure:"col"`
		Min        int    `mapstructure:"min"`
		Max        int    `mapstructure:"max"`
		Clamp      bool   `mapstructure:"clamp"`
		EmptyRange string `mapstructure:"empty_range"`
	}

	Display struct {
		Kind     string `mapstructure:"kind"`
		Cols     int    `mapstructure:"cols"`
		Rows     int    `mapstructure:"rows"`
		Bus      string `mapstructure:"bus"`
		Address  uint16 `mapstructure:"address"`
		Attempts uint   `mapstructure:"attempts"`
	}

	Demo struct {
		Step     int           `mapstructure:"step"`
		Interval time.Duration `mapstructure:"interval"`
	}
)

// SetDefaults registers the default value of every key so that environment
// variables are picked up by Unmarshal even without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "color")

	v.SetDefault("bar.length", 10)
	v.SetDefault("bar.row", 0)
	v.SetDefault("bar.col", 0)
	v.SetDefault("bar.min", 0)
	v.SetDefault("bar.max", 100)
	v.SetDefault("bar.clamp", false)
	v.SetDefault("bar.empty_range", progress.EmptyRangeZero.String())

	v.SetDefault("display.kind", DisplayAuto)
	v.SetDefault("display.cols", 20)
	v.SetDefault("display.rows", 4)
	v.SetDefault("display.bus", "")
	v.SetDefault("display.address", 0x27)
	v.SetDefault("display.attempts", 3)

	v.SetDefault("demo.step", 5)
	v.SetDefault("demo.interval", 200*time.Millisecond)
}

// Load reads cfgPath, or .lcdbar.yaml from $HOME or the working directory
// when cfgPath is empty. A missing default file is not an error.
func Load(v *viper.Viper, cfgPath string) (*Config, error) {
	SetDefaults(v)

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath("$HOME")
		v.AddConfigPath(".")
		v.SetConfigName(fileName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var cfgNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &cfgNotFound) || cfgPath != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Display.Kind {
	case DisplayAuto, DisplayTerminal, DisplayLive, DisplayGrid, DisplayLCD:
	default:
		return fmt.Errorf("%w: unknown display kind %q", ErrInvalid, c.Display.Kind)
	}
	if c.Display.Cols <= 0 || c.Display.Rows <= 0 {
		return fmt.Errorf("%w: display size %dx%d", ErrInvalid, c.Display.Cols, c.Display.Rows)
	}
	if c.Display.Attempts == 0 {
		return fmt.Errorf("%w: display attempts must be positive", ErrInvalid)
	}
	if _, err := c.Bar.EmptyRangePolicy(); err != nil {
		return err
	}
	if c.Demo.Step <= 0 || c.Demo.Interval <= 0 {
		return fmt.Errorf("%w: demo step and interval must be positive", ErrInvalid)
	}
	return nil
}

func (b Bar) EmptyRangePolicy() (progress.EmptyRange, error) {
	switch strings.ToLower(b.EmptyRange) {
	case progress.EmptyRangeZero.String(), "":
		return progress.EmptyRangeZero, nil
	case progress.EmptyRangeFull.String():
		return progress.EmptyRangeFull, nil
	default:
		return 0, fmt.Errorf("%w: unknown empty range policy %q", ErrInvalid, b.EmptyRange)
	}
}

// Options translates the bar section into ProgressBar options.
func (b Bar) Options() []progress.Option {
	policy, _ := b.EmptyRangePolicy()
	return []progress.Option{
		progress.WithClamp(b.Clamp),
		progress.WithEmptyRange(policy),
	}
}
