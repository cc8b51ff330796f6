//go:build tinygo

package kernel

// Stack capture is unavailable on baremetal targets.
func captureStack() []byte {
	return nil
}
