// Package config loads the host simulation config file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"vigil/hal"
)

// MQTTConfig configures the optional telemetry publisher. An empty broker
// disables publishing.
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
}

// MonitorConfig configures the host observability endpoint.
type MonitorConfig struct {
	Enabled bool       `yaml:"enabled"`
	Listen  string     `yaml:"listen"`
	MQTT    MQTTConfig `yaml:"mqtt"`
}

// ClassifierConfig configures the vision-board link. An empty Addr runs the
// in-process simulator.
type ClassifierConfig struct {
	Addr         string `yaml:"addr"`
	Profile      string `yaml:"profile"`
	LegacyFrames bool   `yaml:"legacy_frames"`
}

// Config is the top-level structure of a host config file.
type Config struct {
	Scene      []hal.SceneStep  `yaml:"scene"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Monitor    MonitorConfig    `yaml:"monitor"`
}

// Default returns the built-in host configuration.
func Default() Config {
	return Config{
		Classifier: ClassifierConfig{Profile: "person"},
		Monitor: MonitorConfig{
			Enabled: true,
			Listen:  ":8077",
			MQTT:    MQTTConfig{Topic: "vigil/events"},
		},
	}
}

// Load reads and parses a config file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Monitor.Listen == "" {
		cfg.Monitor.Listen = ":8077"
	}
	if cfg.Monitor.MQTT.Topic == "" {
		cfg.Monitor.MQTT.Topic = "vigil/events"
	}
	return cfg, nil
}
