package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/callbubbles/parameter"
	"github.com/lixenwraith/callbubbles/physics"
)

// EnvPrefix prefixes every environment override, e.g. CALLBUBBLES_PHYSICS_MAX_SPEED
const EnvPrefix = "CALLBUBBLES"

// Config is the complete runtime configuration
type Config struct {
	Physics PhysicsConfig `mapstructure:"physics" yaml:"physics"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Loop    LoopConfig    `mapstructure:"loop" yaml:"loop"`
	Actions ActionsConfig `mapstructure:"actions" yaml:"actions"`
	Policy  PolicyConfig  `mapstructure:"policy" yaml:"policy"`
	Audio   AudioConfig   `mapstructure:"audio" yaml:"audio"`
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`

	// Keys overrides terminal key bindings, key name to intent name ("none" unbinds)
	Keys map[string]string `mapstructure:"keys" yaml:"keys"`
}

// PhysicsConfig holds the bubble motion constants in density-independent pixels
type PhysicsConfig struct {
	ReturnHalfLife   time.Duration `mapstructure:"return_half_life" yaml:"return_half_life"`
	FrictionHalfLife time.Duration `mapstructure:"friction_half_life" yaml:"friction_half_life"`
	MaxSpeed         float64       `mapstructure:"max_speed" yaml:"max_speed"`
	SmoothDistance   float64       `mapstructure:"smooth_distance" yaml:"smooth_distance"`
	StallDistance    float64       `mapstructure:"stall_distance" yaml:"stall_distance"`
	SuckDistance     float64       `mapstructure:"suck_distance" yaml:"suck_distance"`
	BorderRepulsion  float64       `mapstructure:"border_repulsion" yaml:"border_repulsion"`
	MaxStep          time.Duration `mapstructure:"max_step" yaml:"max_step"`
}

// Tuning converts the section for the physics profile
func (p PhysicsConfig) Tuning() physics.Tuning {
	return physics.Tuning{
		ReturnHalfLife:   p.ReturnHalfLife,
		FrictionHalfLife: p.FrictionHalfLife,
		MaxSpeed:         p.MaxSpeed,
		SmoothDistance:   p.SmoothDistance,
		StallDistance:    p.StallDistance,
		SuckDistance:     p.SuckDistance,
		BorderRepulsion:  p.BorderRepulsion,
		MaxStep:          p.MaxStep,
	}
}

// DisplayConfig describes the drawing surface
type DisplayConfig struct {
	Density        float64 `mapstructure:"density" yaml:"density"`
	BubbleRadius   float64 `mapstructure:"bubble_radius" yaml:"bubble_radius"`
	ExpandedRadius float64 `mapstructure:"expanded_radius" yaml:"expanded_radius"`
	AttractorSize  float64 `mapstructure:"attractor_size" yaml:"attractor_size"`
	CellWidth      float64 `mapstructure:"cell_width" yaml:"cell_width"`
	CellHeight     float64 `mapstructure:"cell_height" yaml:"cell_height"`
}

type LoopConfig struct {
	FrameInterval time.Duration `mapstructure:"frame_interval" yaml:"frame_interval"`
}

// ActionsConfig holds the action group fade durations
type ActionsConfig struct {
	AppearTime    time.Duration `mapstructure:"appear_time" yaml:"appear_time"`
	DisappearTime time.Duration `mapstructure:"disappear_time" yaml:"disappear_time"`
}

// PolicyConfig selects optional behaviors
type PolicyConfig struct {
	UserName      string `mapstructure:"user_name" yaml:"user_name"`
	EjectOnBorder bool   `mapstructure:"eject_on_border" yaml:"eject_on_border"`
}

type AudioConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// LoggerConfig holds all the configuration for the logger
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	Console     bool   `mapstructure:"console" yaml:"console"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers every key with its reference value
func SetDefaults(v *viper.Viper) {
	v.SetDefault("physics.return_half_life", parameter.ReturnHalfLife)
	v.SetDefault("physics.friction_half_life", parameter.FrictionHalfLife)
	v.SetDefault("physics.max_speed", parameter.MaxSpeed)
	v.SetDefault("physics.smooth_distance", parameter.SmoothDistance)
	v.SetDefault("physics.stall_distance", parameter.StallDistance)
	v.SetDefault("physics.suck_distance", parameter.SuckDistance)
	v.SetDefault("physics.border_repulsion", parameter.BorderRepulsion)
	v.SetDefault("physics.max_step", parameter.MaxStep)

	v.SetDefault("display.density", parameter.DefaultDensity)
	v.SetDefault("display.bubble_radius", parameter.BubbleRadius)
	v.SetDefault("display.expanded_radius", parameter.ExpandedRadius)
	v.SetDefault("display.attractor_size", parameter.AttractorRadius)
	v.SetDefault("display.cell_width", parameter.CellWidthPx)
	v.SetDefault("display.cell_height", parameter.CellHeightPx)

	v.SetDefault("loop.frame_interval", parameter.FrameInterval)

	v.SetDefault("actions.appear_time", parameter.ActionAppearTime)
	v.SetDefault("actions.disappear_time", parameter.ActionDisappearTime)

	v.SetDefault("policy.user_name", "Me")
	v.SetDefault("policy.eject_on_border", false)

	v.SetDefault("audio.enabled", true)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.service_name", "callbubbles")
	v.SetDefault("logger.console", false)
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
}

// NewViper returns a viper instance with defaults and environment overrides bound
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// NewDefaultConfig returns the configuration populated with default values
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// Load reads the optional file at path (yaml, toml or json by extension), applies
// environment overrides and validates the result
func Load(path string) (*Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates a populated viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks every section for sane values
func (c *Config) Validate() error {
	return errors.Join(
		c.Physics.Validate(),
		c.Display.Validate(),
		c.Loop.Validate(),
		c.Actions.Validate(),
		c.Logger.Validate(),
	)
}

func (p *PhysicsConfig) Validate() error {
	switch {
	case p.ReturnHalfLife <= 0:
		return fmt.Errorf("physics.return_half_life must be positive")
	case p.FrictionHalfLife <= 0:
		return fmt.Errorf("physics.friction_half_life must be positive")
	case p.MaxSpeed <= 0:
		return fmt.Errorf("physics.max_speed must be positive")
	case p.StallDistance < 0 || p.SmoothDistance <= p.StallDistance:
		return fmt.Errorf("physics: need 0 <= stall_distance < smooth_distance, got %v and %v", p.StallDistance, p.SmoothDistance)
	case p.SuckDistance <= 0:
		return fmt.Errorf("physics.suck_distance must be positive")
	case p.BorderRepulsion < 0:
		return fmt.Errorf("physics.border_repulsion must not be negative")
	case p.MaxStep <= 0:
		return fmt.Errorf("physics.max_step must be positive")
	}
	return nil
}

func (d *DisplayConfig) Validate() error {
	switch {
	case d.Density <= 0:
		return fmt.Errorf("display.density must be positive")
	case d.BubbleRadius <= 0:
		return fmt.Errorf("display.bubble_radius must be positive")
	case d.ExpandedRadius <= d.BubbleRadius:
		return fmt.Errorf("display.expanded_radius must exceed bubble_radius")
	case d.AttractorSize <= 0:
		return fmt.Errorf("display.attractor_size must be positive")
	case d.CellWidth <= 0 || d.CellHeight <= 0:
		return fmt.Errorf("display cell size must be positive")
	}
	return nil
}

func (l *LoopConfig) Validate() error {
	if l.FrameInterval <= 0 {
		return fmt.Errorf("loop.frame_interval must be positive")
	}
	return nil
}

func (a *ActionsConfig) Validate() error {
	if a.AppearTime < 0 || a.DisappearTime < 0 {
		return fmt.Errorf("actions fade times must not be negative")
	}
	return nil
}

func (l *LoggerConfig) Validate() error {
	switch l.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be json or console, got %q", l.Format)
	}
	return nil
}
