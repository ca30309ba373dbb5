//go:build linux

package monitor

import (
	"fmt"
	"time"

	"github.com/Hara602/kioskSentry/internal/model"
	"github.com/holoplot/go-evdev"
	"go.uber.org/zap"
)

type evdevSource struct {
	dev *evdev.InputDevice
}

// OpenDevice 打开 /dev/input/eventN，grab 为 true 时独占 (EVIOCGRAB)，其他进程收不到这些按键
func OpenDevice(path string, grab bool, log *zap.Logger) (EventSource, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if grab {
		if err := dev.Grab(); err != nil {
			dev.Close()
			return nil, fmt.Errorf("grab %s: %w", path, err)
		}
	}

	name, _ := dev.Name()
	log.Info("📟 Input device opened", zap.String("path", path), zap.String("name", name), zap.Bool("grab", grab))
	return &evdevSource{dev: dev}, nil
}

func (s *evdevSource) Next() (model.KeyEvent, error) {
	ev, err := s.dev.ReadOne()
	if err != nil {
		return model.KeyEvent{}, err
	}
	return model.KeyEvent{
		Time:  time.Unix(ev.Time.Unix()),
		Type:  uint16(ev.Type),
		Code:  uint16(ev.Code),
		Value: ev.Value,
	}, nil
}

func (s *evdevSource) Close() error {
	return s.dev.Close()
}

func keyName(code uint16) string {
	if name, ok := evdev.KEYToString[evdev.EvCode(code)]; ok {
		return name
	}
	return "unknown"
}
