//go:build !tinygo

package app

import (
	"log"

	"vigil/vigilos/kernel"
	"vigil/vigilos/services/monitor"
)

// startMonitor wires the host observability surface and returns the
// capability the pipeline tasks report telemetry to.
func startMonitor(k *kernel.Kernel, cfg Config) kernel.Capability {
	mc := cfg.Monitor
	if !mc.Enabled {
		return kernel.Capability{}
	}

	state := monitor.NewState()
	hub := monitor.NewHub()
	go hub.Run()

	var pub *monitor.Publisher
	if mc.Broker != "" {
		p, err := monitor.Connect(mc.Broker, mc.ClientID, mc.Topic)
		if err != nil {
			// Telemetry egress is optional; run without it.
			log.Printf("monitor: %v (mqtt publishing disabled)", err)
		} else {
			pub = p
		}
	}

	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	k.AddTask(monitor.New(state, hub, pub, ep.Restrict(kernel.RightRecv)))

	go func() {
		if err := monitor.Serve(mc.Listen, state, hub); err != nil {
			log.Printf("monitor: serve: %v", err)
		}
	}()

	return ep.Restrict(kernel.RightSend)
}
