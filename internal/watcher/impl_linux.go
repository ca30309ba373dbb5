//go:build linux

package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Hara602/kioskSentry/internal/locator"
	"github.com/Hara602/kioskSentry/internal/model"
	"github.com/pilebones/go-udev/netlink"
	"go.uber.org/zap"
)

type linuxWatcher struct {
	finder Finder
	log    *zap.Logger
}

func newWatcher(finder Finder, log *zap.Logger) DeviceWatcher {
	return &linuxWatcher{finder: finder, log: log}
}

func (w *linuxWatcher) WaitFor(ctx context.Context, name string, timeout time.Duration) (model.InputDevice, error) {
	// 监听 UDEV 事件,连接 NETLINK_KOBJECT_UEVENT
	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return model.InputDevice{}, fmt.Errorf("udev connect: %w", err)
	}

	// Monitor 的 goroutine 每次发送后才检查 quit，留一个缓冲位让最后一次发送不会卡住
	queue := make(chan netlink.UEvent, 1)
	errChan := make(chan error, 1)
	quit := conn.Monitor(queue, errChan, nil)
	defer stopMonitor(func() { close(quit) }, func() { conn.Close() }, queue, errChan)

	return w.await(ctx, name, timeout, queue, errChan)
}

// await 订阅之后再扫描，避免订阅前刚加进来的设备被漏掉
func (w *linuxWatcher) await(ctx context.Context, name string, timeout time.Duration,
	queue <-chan netlink.UEvent, errChan <-chan error) (model.InputDevice, error) {
	dev, err := w.finder.Locate(name)
	if err == nil {
		return dev, nil
	}
	if !errors.Is(err, locator.ErrDeviceNotFound) {
		return model.InputDevice{}, err
	}

	w.log.Info("⏳ Waiting for input device", zap.String("name", name), zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return model.InputDevice{}, fmt.Errorf("%w: %q did not appear within %s", locator.ErrDeviceNotFound, name, timeout)

		case err := <-errChan:
			// 忽略底层网络错误，继续等
			w.log.Debug("udev monitor error", zap.Error(err))

		case uevent := <-queue:
			if !isInputEventAdd(uevent) {
				continue
			}
			w.log.Debug("input device added", zap.String("devname", uevent.Env["DEVNAME"]))
			dev, err := w.finder.Locate(name)
			if err == nil {
				return dev, nil
			}
			if !errors.Is(err, locator.ErrDeviceNotFound) {
				return model.InputDevice{}, err
			}
		}
	}
}

// stopMonitor 发退出信号，清空缓冲让阻塞中的发送返回，再关连接
func stopMonitor(quit, closeConn func(), queue <-chan netlink.UEvent, errChan <-chan error) {
	quit()
	drain(queue, errChan)
	closeConn()
}

func drain(queue <-chan netlink.UEvent, errChan <-chan error) {
	for {
		select {
		case <-queue:
		case <-errChan:
		default:
			return
		}
	}
}

// isInputEventAdd 只关心 input 子系统新增的 eventN 节点
// UEvent Env 示例: SUBSYSTEM=input, DEVNAME=input/event3
func isInputEventAdd(uevent netlink.UEvent) bool {
	if uevent.Action != "add" || uevent.Env["SUBSYSTEM"] != "input" {
		return false
	}
	return strings.HasPrefix(filepath.Base(uevent.Env["DEVNAME"]), "event")
}
