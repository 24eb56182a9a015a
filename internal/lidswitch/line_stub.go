//go:build !linux

package lidswitch

import "fmt"

// Stub implementation for non-Linux platforms.
func openLine(cfg Config, onLevel func(level int)) (inputLine, error) {
	return nil, fmt.Errorf("lidswitch: gpio unsupported on this platform")
}
