// Package app wires the kernel, services, and pipeline tasks on top of a HAL.
package app

import (
	"vigil/hal"
	"vigil/internal/buildinfo"
	"vigil/vigilos/kernel"
	"vigil/vigilos/services/link"
	"vigil/vigilos/services/logger"
	"vigil/vigilos/services/panel"
	"vigil/vigilos/tasks/aggregator"
	"vigil/vigilos/tasks/decoder"
	"vigil/vigilos/tasks/fusion"
	"vigil/vigilos/tasks/renderer"
)

type system struct {
	k *kernel.Kernel
}

// Config selects optional host surfaces. The zero value runs the bare
// pipeline, which is all the baremetal build has.
type Config struct {
	Monitor MonitorConfig
}

// MonitorConfig configures the host observability endpoint. The baremetal
// build ignores it.
type MonitorConfig struct {
	Enabled  bool
	Listen   string
	Broker   string
	Topic    string
	ClientID string
}

// New initializes and starts the pipeline with default config.
func New(h hal.HAL) func() error {
	_ = newSystem(h, Config{})
	return func() error { return nil }
}

// Run starts the pipeline and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	_ = New(h)
	select {}
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	_ = newSystem(h, cfg)
	return func() error { return nil }
}

func RunWithConfig(h hal.HAL, cfg Config) {
	_ = NewWithConfig(h, cfg)
	select {}
}

func newSystem(h hal.HAL, cfg Config) *system {
	if l := h.Logger(); l != nil {
		l.WriteLineString("vigil " + buildinfo.Short())
	}
	installPanicHandler(h)
	bootStep(h, "kernel")
	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	linkEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	panelEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	rendEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	// Single slot: the decoder's bounded hand-off to the aggregator.
	aggEP := k.NewEndpointSlots(kernel.RightSend|kernel.RightRecv, 1)

	logCap := logEP.Restrict(kernel.RightSend)
	linkCap := linkEP.Restrict(kernel.RightSend)
	panelCap := panelEP.Restrict(kernel.RightSend)
	monCap := startMonitor(k, cfg)

	bootStep(h, "services")
	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(link.New(h.Serial(), linkEP.Restrict(kernel.RightRecv), logCap))
	k.AddTask(panel.New(h.Panel(), panelEP.Restrict(kernel.RightRecv)))

	bootStep(h, "tasks")
	k.AddTask(fusion.New(h.Ranger(), h.Motion(), h.LED(), linkCap, panelCap, logCap, monCap))
	k.AddTask(decoder.New(linkCap, aggEP.Restrict(kernel.RightSend), logCap, monCap))
	k.AddTask(aggregator.New(aggEP.Restrict(kernel.RightRecv), rendEP.Restrict(kernel.RightSend)))
	k.AddTask(renderer.New(rendEP.Restrict(kernel.RightRecv), panelCap, logCap, monCap))

	bootStep(h, "ticks")
	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return &system{k: k}
}
