// Package config provides configuration for the orrery server.
//
// Config file locations (priority order):
//  1. $ORRERY_CONFIG
//  2. ./orrery.yaml
//  3. ~/.config/orrery/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"orrery/internal/engine"
	"orrery/internal/render"
)

// Config is the full server configuration.
type Config struct {
	Version int    `yaml:"version"`
	Addr    string `yaml:"addr"`

	Database DatabaseConfig `yaml:"database"`

	// GraphFile is an optional topology file loaded on start and watched
	// for changes.
	GraphFile string `yaml:"graph_file,omitempty"`

	// TickMS is the layout tick interval in milliseconds.
	TickMS int `yaml:"tick_ms"`

	Viewport ViewportConfig `yaml:"viewport"`
	Engine   EngineConfig   `yaml:"engine"`
	Style    StyleConfig    `yaml:"style"`
}

// DatabaseConfig locates the topology snapshot.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ViewportConfig is the initial projection surface size.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// EngineConfig exposes the simulation and interaction constants. Zero
// values mean "use the engine default".
type EngineConfig struct {
	DesiredDistance          float64 `yaml:"desired_distance,omitempty"`
	MinDistance              float64 `yaml:"min_distance,omitempty"`
	SpringConstant           float64 `yaml:"spring_constant,omitempty"`
	RepulsionForce           float64 `yaml:"repulsion_force,omitempty"`
	MaxNodeSpeed             float64 `yaml:"max_node_speed,omitempty"`
	ProjectionDistance       float64 `yaml:"projection_distance,omitempty"`
	MinProjectionDenominator float64 `yaml:"min_projection_denominator,omitempty"`
	NodeRadius               float64 `yaml:"node_radius,omitempty"`
	RotateSensitivity        float64 `yaml:"rotate_sensitivity,omitempty"`
	ZoomIntensity            float64 `yaml:"zoom_intensity,omitempty"`
}

// StyleConfig is the render palette. Empty fields use the built-in palette.
type StyleConfig struct {
	Background      string `yaml:"background,omitempty"`
	Node            string `yaml:"node,omitempty"`
	Edge            string `yaml:"edge,omitempty"`
	Text            string `yaml:"text,omitempty"`
	Highlight       string `yaml:"highlight,omitempty"`
	SearchHighlight string `yaml:"search_highlight,omitempty"`
	Axis            string `yaml:"axis,omitempty"`
	ShowAxes        bool   `yaml:"show_axes"`
}

// Load finds and loads the config file, or returns defaults if none found.
func Load() (*Config, string, error) {
	path := findConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, path, nil
}

// DefaultConfig returns sensible defaults for a new installation.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./orrery.db"
	}
	if c.TickMS <= 0 {
		c.TickMS = 33
	}
	if c.Viewport.Width <= 0 {
		c.Viewport.Width = 1280
	}
	if c.Viewport.Height <= 0 {
		c.Viewport.Height = 800
	}
}

// EngineOptions maps the config onto engine options; zero fields stay zero
// so the engine's own defaults apply.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		DesiredDistance:          c.Engine.DesiredDistance,
		MinDistance:              c.Engine.MinDistance,
		SpringConstant:           c.Engine.SpringConstant,
		RepulsionForce:           c.Engine.RepulsionForce,
		MaxNodeSpeed:             c.Engine.MaxNodeSpeed,
		ProjectionDistance:       c.Engine.ProjectionDistance,
		MinProjectionDenominator: c.Engine.MinProjectionDenominator,
		NodeRadius:               c.Engine.NodeRadius,
		RotateSensitivity:        c.Engine.RotateSensitivity,
		ZoomIntensity:            c.Engine.ZoomIntensity,
	}
}

// RenderStyle maps the config onto a render style.
func (c *Config) RenderStyle() render.Style {
	return render.Style{
		Background:      c.Style.Background,
		Node:            c.Style.Node,
		Edge:            c.Style.Edge,
		Text:            c.Style.Text,
		Highlight:       c.Style.Highlight,
		SearchHighlight: c.Style.SearchHighlight,
		Axis:            c.Style.Axis,
		ShowAxes:        c.Style.ShowAxes,
	}
}

// findConfigPath checks the candidate locations in priority order.
func findConfigPath() string {
	if path := os.Getenv("ORRERY_CONFIG"); path != "" {
		return path
	}

	candidates := []string{"./orrery.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "orrery", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
