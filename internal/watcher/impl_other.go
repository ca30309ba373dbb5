//go:build !linux

package watcher

import (
	"context"
	"errors"
	"time"

	"github.com/Hara602/kioskSentry/internal/model"
	"go.uber.org/zap"
)

type otherWatcher struct{}

func newWatcher(Finder, *zap.Logger) DeviceWatcher { return &otherWatcher{} }

func (w *otherWatcher) WaitFor(context.Context, string, time.Duration) (model.InputDevice, error) {
	return model.InputDevice{}, errors.New("udev watcher is only available on linux")
}
