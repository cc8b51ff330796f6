//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"vigil/app"
	"vigil/hal"
	"vigil/internal/config"
)

func main() {
	var headless hal.HeadlessConfig
	var cfgPath, linkAddr, profile, listen, broker, topic string
	var legacy, noMonitor bool
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&cfgPath, "config", "", "Host config file (YAML).")
	flag.StringVar(&linkAddr, "link", "", "Vision board TCP address (empty = in-process simulator).")
	flag.StringVar(&profile, "profile", "", "Simulator profile: person, empty, uncertain, noise.")
	flag.BoolVar(&legacy, "legacy", false, "Simulator emits single-byte score frames.")
	flag.StringVar(&listen, "monitor-listen", "", "Monitor HTTP listen address.")
	flag.BoolVar(&noMonitor, "no-monitor", false, "Disable the monitor HTTP endpoint.")
	flag.StringVar(&broker, "mqtt-broker", "", "MQTT broker URL for telemetry (empty = disabled).")
	flag.StringVar(&topic, "mqtt-topic", "", "MQTT topic for telemetry events.")
	flag.Parse()

	cfg := config.Default()
	if cfgPath != "" {
		c, err := config.Load(cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = c
	}
	if linkAddr != "" {
		cfg.Classifier.Addr = linkAddr
	}
	if profile != "" {
		cfg.Classifier.Profile = profile
	}
	if legacy {
		cfg.Classifier.LegacyFrames = true
	}
	if listen != "" {
		cfg.Monitor.Listen = listen
	}
	if noMonitor {
		cfg.Monitor.Enabled = false
	}
	if broker != "" {
		cfg.Monitor.MQTT.Broker = broker
	}
	if topic != "" {
		cfg.Monitor.MQTT.Topic = topic
	}

	opts := hal.Options{
		Scene:        cfg.Scene,
		LinkAddr:     cfg.Classifier.Addr,
		Profile:      cfg.Classifier.Profile,
		LegacyFrames: cfg.Classifier.LegacyFrames,
	}
	appCfg := app.Config{Monitor: app.MonitorConfig{
		Enabled:  cfg.Monitor.Enabled,
		Listen:   cfg.Monitor.Listen,
		Broker:   cfg.Monitor.MQTT.Broker,
		Topic:    cfg.Monitor.MQTT.Topic,
		ClientID: cfg.Monitor.MQTT.ClientID,
	}}
	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, appCfg)
	}

	if headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, headless, opts); err != nil {
			if err == context.Canceled {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
