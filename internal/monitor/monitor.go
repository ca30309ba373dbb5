package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Hara602/kioskSentry/internal/model"
	"go.uber.org/zap"
)

var ErrDeviceRead = errors.New("input device read failed")

// EventSource 事件来源: 真实的 evdev 设备或录制下来的原始事件流
type EventSource interface {
	Next() (model.KeyEvent, error)
	Close() error
}

// Action 绑定到按键上的无参动作
type Action struct {
	Name string
	Run  func() error
}

// Bindings 按键码 -> 动作，启动后只读
type Bindings map[uint16]Action

type Config struct {
	Name     string // 日志里用的来源名, 设备路径或文件名
	Source   EventSource
	Bindings Bindings
	Log      *zap.Logger
}

type Monitor struct {
	name     string
	source   EventSource
	bindings Bindings
	log      *zap.Logger
}

func New(cfg Config) *Monitor {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Monitor{
		name:     cfg.Name,
		source:   cfg.Source,
		bindings: cfg.Bindings,
		log:      log,
	}
}

// Run 阻塞读事件直到 ctx 取消、事件流结束或读失败
// 动作在读循环里同步执行，慢动作会推迟下一个事件的处理
func (m *Monitor) Run(ctx context.Context) error {
	stopped := make(chan struct{})
	defer close(stopped)

	// ctx 取消时关闭设备，让阻塞中的 Next 返回
	go func() {
		select {
		case <-ctx.Done():
			m.source.Close()
		case <-stopped:
		}
	}()

	for {
		ev, err := m.source.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				m.log.Info("Event stream ended", zap.String("source", m.name))
				return nil
			}
			return fmt.Errorf("%w: %s: %w", ErrDeviceRead, m.name, err)
		}
		m.dispatch(ev)
	}
}

func (m *Monitor) dispatch(ev model.KeyEvent) {
	// 只响应按下 (value 1)，松开 (0) 和重复 (2) 都忽略
	if !ev.Pressed() {
		return
	}

	action, ok := m.bindings[ev.Code]
	if !ok {
		m.log.Debug("Unhandled key code", zap.Uint16("code", ev.Code), zap.String("key", keyName(ev.Code)))
		return
	}

	m.log.Info("🔘 Button pressed",
		zap.Uint16("code", ev.Code),
		zap.String("key", keyName(ev.Code)),
		zap.String("action", action.Name),
	)
	if err := action.Run(); err != nil {
		m.log.Error("Action failed", zap.String("action", action.Name), zap.Error(err))
	}
}
