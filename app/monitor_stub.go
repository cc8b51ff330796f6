//go:build tinygo

package app

import "vigil/vigilos/kernel"

// startMonitor is a no-op on baremetal. Tasks get an empty capability and
// their telemetry sends fail without side effects.
func startMonitor(_ *kernel.Kernel, _ Config) kernel.Capability {
	return kernel.Capability{}
}
