// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Sim      SimConfig      `mapstructure:"sim"`
	Follower FollowerConfig `mapstructure:"follower"`
	Env      EnvConfig      `mapstructure:"env"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// SimConfig governs the control loop and the local frame origin.
type SimConfig struct {
	OriginLat       float64 `mapstructure:"origin_lat"`
	OriginLon       float64 `mapstructure:"origin_lon"`
	TickHz          float64 `mapstructure:"tick_hz"`
	StartAltM       float64 `mapstructure:"start_alt_m"`
	DefaultSpeed    float64 `mapstructure:"default_speed"`
	ArrivalProgress float64 `mapstructure:"arrival_progress"`
	PosTolM         float64 `mapstructure:"pos_tol_m"`
	MaxHorizAccel   float64 `mapstructure:"max_horiz_accel"`
	MaxVertAccel    float64 `mapstructure:"max_vert_accel"`
}

// FollowerConfig tunes guidance-to-velocity conversion.
type FollowerConfig struct {
	CorrectionGain      float64 `mapstructure:"correction_gain"`
	MaxCorrectionWeight float64 `mapstructure:"max_correction_weight"`
	MaxClimbRate        float64 `mapstructure:"max_climb_rate"`
}

// EnvConfig configures simulated environment effects.
type EnvConfig struct {
	WindSpeed    float64 `mapstructure:"wind_speed"`
	WindDirDeg   float64 `mapstructure:"wind_dir_deg"`
	FloorEnabled bool    `mapstructure:"floor_enabled"`
	FloorMarginM float64 `mapstructure:"floor_margin_m"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PATHFOLLOWER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("sim.origin_lat", 32.0853)
	v.SetDefault("sim.origin_lon", 34.7818)
	v.SetDefault("sim.tick_hz", 20)
	v.SetDefault("sim.start_alt_m", 1000)
	v.SetDefault("sim.default_speed", 80)
	v.SetDefault("sim.arrival_progress", 0.98)
	v.SetDefault("sim.pos_tol_m", 25)
	v.SetDefault("sim.max_horiz_accel", 12)
	v.SetDefault("sim.max_vert_accel", 5)
	v.SetDefault("follower.correction_gain", 0.05)
	v.SetDefault("follower.max_correction_weight", 1.5)
	v.SetDefault("follower.max_climb_rate", 8)
	v.SetDefault("env.wind_speed", 0)
	v.SetDefault("env.wind_dir_deg", 0)
	v.SetDefault("env.floor_enabled", true)
	v.SetDefault("env.floor_margin_m", 80)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Sim.TickHz <= 0 {
		return fmt.Errorf("sim.tick_hz must be > 0")
	}
	if c.Sim.DefaultSpeed <= 0 {
		return fmt.Errorf("sim.default_speed must be > 0")
	}
	if c.Sim.ArrivalProgress <= 0 || c.Sim.ArrivalProgress > 1 {
		return fmt.Errorf("sim.arrival_progress must be in (0, 1]")
	}
	if c.Sim.PosTolM <= 0 {
		return fmt.Errorf("sim.pos_tol_m must be > 0")
	}
	if c.Follower.CorrectionGain < 0 {
		return fmt.Errorf("follower.correction_gain must be >= 0")
	}
	if c.Env.WindSpeed < 0 {
		return fmt.Errorf("env.wind_speed must be >= 0")
	}
	return nil
}
