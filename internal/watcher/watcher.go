package watcher

import (
	"context"
	"time"

	"github.com/Hara602/kioskSentry/internal/model"
	"go.uber.org/zap"
)

// Finder 由 locator 实现
type Finder interface {
	Locate(name string) (model.InputDevice, error)
}

// DeviceWatcher 开机时 gpio_keys 驱动可能比服务晚加载，等它出现
type DeviceWatcher interface {
	WaitFor(ctx context.Context, name string, timeout time.Duration) (model.InputDevice, error)
}

func New(finder Finder, log *zap.Logger) DeviceWatcher {
	return newWatcher(finder, log)
}
