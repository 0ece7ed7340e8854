// Package sink adapts a ports.Logger into the ports.Sink used by the request
// formatter. Two variants exist: Plain passes messages through and Color
// wraps them in a terminal colour chosen by severity.
package sink

import (
	"github.com/olusolaa/reqlog/internal/core/ports"
)

// New returns a Color sink when colorize is set, otherwise a Plain one.
func New(colorize bool, logger ports.Logger) ports.Sink {
	if colorize {
		return NewColor(logger)
	}
	return NewPlain(logger)
}
