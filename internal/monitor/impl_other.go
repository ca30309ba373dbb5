//go:build !linux

package monitor

import (
	"errors"

	"go.uber.org/zap"
)

func OpenDevice(path string, grab bool, log *zap.Logger) (EventSource, error) {
	return nil, errors.New("evdev input is only available on linux")
}

func keyName(code uint16) string { return "unknown" }
