// Package actions 按键触发的动作: 打开浏览器窗口、kiosk 全屏、Pi-hole 自动登录
package actions

import (
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"github.com/Hara602/kioskSentry/internal/sysutil"
	"go.uber.org/zap"
)

var ErrNoBrowser = errors.New("no suitable browser found")

var DefaultCandidates = []string{"chromium-browser", "chromium", "firefox"}

const DefaultSettle = time.Second

// chromium 系的 kiosk 参数
var chromiumKioskFlags = []string{
	"--kiosk",
	"--disable-infobars",
	"--disable-session-crashed-bubble",
	"--disable-restore-session-state",
	"--disable-translate",
	"--no-first-run",
}

var chromiumWindowFlags = []string{"--start-maximized", "--disable-infobars"}

type LauncherConfig struct {
	Candidates []string
	Settle     time.Duration
	Log        *zap.Logger
}

// Launcher 按候选顺序找第一个存在的浏览器并启动，不关心浏览器退出状态
type Launcher struct {
	candidates []string
	settle     time.Duration
	log        *zap.Logger

	lookPath func(file string) (string, error)
	start    func(path string, args []string) error
	kill     func(pattern string, sig syscall.Signal) (int, error)
	sleep    func(time.Duration)
}

func NewLauncher(cfg LauncherConfig) *Launcher {
	l := &Launcher{
		candidates: cfg.Candidates,
		settle:     cfg.Settle,
		log:        cfg.Log,
		lookPath:   exec.LookPath,
		start:      startDetached,
		kill:       sysutil.KillMatching,
		sleep:      time.Sleep,
	}
	if len(l.candidates) == 0 {
		l.candidates = DefaultCandidates
	}
	if l.settle < 0 {
		l.settle = DefaultSettle
	}
	if l.log == nil {
		l.log = zap.NewNop()
	}
	return l
}

// OpenWindow 普通最大化窗口
func (l *Launcher) OpenWindow(url string) error {
	for _, name := range l.candidates {
		path, err := l.lookPath(name)
		if err != nil {
			continue
		}
		if err := l.start(path, windowArgs(name, url)); err != nil {
			l.log.Warn("Browser failed to start", zap.String("browser", name), zap.Error(err))
			continue
		}
		l.log.Info("🌐 URL opened", zap.String("browser", name), zap.String("url", url))
		return nil
	}
	return fmt.Errorf("open %s: %w", url, ErrNoBrowser)
}

// OpenKiosk 先结束同一浏览器的旧实例，等它退出后再全屏打开
func (l *Launcher) OpenKiosk(url string) error {
	for _, name := range l.candidates {
		path, err := l.lookPath(name)
		if err != nil {
			continue
		}

		killed, err := l.kill(name, syscall.SIGTERM)
		if err != nil {
			l.log.Warn("Could not stop previous browser", zap.String("browser", name), zap.Error(err))
		} else if killed > 0 {
			l.log.Info("Stopped previous browser", zap.String("browser", name), zap.Int("count", killed))
		}
		l.sleep(l.settle)

		if err := l.start(path, kioskArgs(name, url)); err != nil {
			l.log.Warn("Browser failed to start", zap.String("browser", name), zap.Error(err))
			continue
		}
		l.log.Info("🖥️ Kiosk opened", zap.String("browser", name), zap.String("url", url))
		return nil
	}
	return fmt.Errorf("open %s: %w", url, ErrNoBrowser)
}

func isFirefox(name string) bool { return name == "firefox" }

func windowArgs(name, url string) []string {
	if isFirefox(name) {
		return []string{url}
	}
	return append(append([]string{}, chromiumWindowFlags...), url)
}

func kioskArgs(name, url string) []string {
	if isFirefox(name) {
		return []string{"--kiosk", url}
	}
	return append(append([]string{}, chromiumKioskFlags...), url)
}

// startDetached 启动后不等待，后台 goroutine 负责回收，避免僵尸进程
func startDetached(path string, args []string) error {
	cmd := exec.Command(path, args...)
	// Stdout/Stderr 为 nil 时输出到 /dev/null
	cmd.SysProcAttr = detachAttr()
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
