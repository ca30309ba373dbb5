package locator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Hara602/kioskSentry/internal/model"
	"github.com/Hara602/kioskSentry/internal/sysutil"
	"go.uber.org/zap"
)

const (
	DefaultSysRoot = "/sys/class/input"
	DefaultDevRoot = "/dev/input"

	eventPrefix = "event"
)

var ErrDeviceNotFound = errors.New("input device not found")

type Config struct {
	SysRoot string
	DevRoot string
	Log     *zap.Logger
}

// Locator 按名字在 input class 里找设备
type Locator struct {
	sysRoot string
	devRoot string
	log     *zap.Logger
}

func New(cfg Config) *Locator {
	l := &Locator{
		sysRoot: cfg.SysRoot,
		devRoot: cfg.DevRoot,
		log:     cfg.Log,
	}
	if l.sysRoot == "" {
		l.sysRoot = DefaultSysRoot
	}
	if l.devRoot == "" {
		l.devRoot = DefaultDevRoot
	}
	if l.log == nil {
		l.log = zap.NewNop()
	}
	return l
}

// List 枚举 /sys/class/input/event<N>，按 N 升序返回
func (l *Locator) List() ([]model.InputDevice, error) {
	entries, err := os.ReadDir(l.sysRoot)
	if err != nil {
		return nil, fmt.Errorf("read input registry %s: %w", l.sysRoot, err)
	}

	indexes := make([]int, 0, len(entries))
	for _, e := range entries {
		// 只关心 eventN，忽略 inputN / mouseN / js0 之类
		if idx, ok := eventIndex(e.Name()); ok {
			indexes = append(indexes, idx)
		}
	}
	sort.Ints(indexes)

	devices := make([]model.InputDevice, 0, len(indexes))
	for _, idx := range indexes {
		node := eventPrefix + strconv.Itoa(idx)
		namePath := filepath.Join(l.sysRoot, node, "device", "name")
		name, err := sysutil.ReadAttr(namePath)
		if err != nil {
			l.log.Warn("Could not read device name", zap.String("path", namePath), zap.Error(err))
			continue
		}
		devices = append(devices, model.InputDevice{
			Name:  name,
			Index: idx,
			Path:  filepath.Join(l.devRoot, node),
		})
	}
	return devices, nil
}

// Locate 返回第一个名字完全相等的设备
func (l *Locator) Locate(name string) (model.InputDevice, error) {
	devices, err := l.List()
	if err != nil {
		return model.InputDevice{}, err
	}
	for _, dev := range devices {
		if dev.Name == name {
			l.log.Info("Found input device", zap.String("name", name), zap.String("path", dev.Path))
			return dev, nil
		}
	}
	return model.InputDevice{}, fmt.Errorf("%w: %q under %s", ErrDeviceNotFound, name, l.sysRoot)
}

func eventIndex(entry string) (int, bool) {
	if !strings.HasPrefix(entry, eventPrefix) {
		return 0, false
	}
	idx, err := strconv.Atoi(strings.TrimPrefix(entry, eventPrefix))
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
