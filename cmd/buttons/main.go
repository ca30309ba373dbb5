package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Hara602/kioskSentry/internal/actions"
	"github.com/Hara602/kioskSentry/internal/config"
	"github.com/Hara602/kioskSentry/internal/locator"
	"github.com/Hara602/kioskSentry/internal/monitor"
	"github.com/Hara602/kioskSentry/internal/pihole"
	"github.com/Hara602/kioskSentry/internal/sysutil"
	"github.com/Hara602/kioskSentry/internal/watcher"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "config file (.toml, .yaml, .yml or .json)")
	list := flag.Bool("list", false, "list input devices and exit")
	replay := flag.String("replay", "", "read raw input_event records from FILE instead of the device")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	log, err := sysutil.NewLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	loc := locator.New(locator.Config{
		SysRoot: cfg.Device.SysRoot,
		DevRoot: cfg.Device.DevRoot,
		Log:     log.Named("locator"),
	})

	if *list {
		listDevices(loc, log)
		return
	}

	log.Info("🎛️ Button Handler Starting...")

	// 初始化动作 (依赖注入)
	pi := pihole.New(pihole.Config{
		Docker:    cfg.PiHole.Docker,
		Container: cfg.PiHole.Container,
		Timeout:   cfg.PiHole.Timeout(),
		Log:       log.Named("pihole"),
	})
	launcher := actions.NewLauncher(actions.LauncherConfig{
		Candidates: cfg.Browser.Candidates,
		Settle:     cfg.Browser.Settle(),
		Log:        log.Named("browser"),
	})
	login := actions.NewLoginPage(actions.LoginPageConfig{
		Dir:       cfg.Browser.LoginPageDir,
		AuthURL:   cfg.PiHole.AuthURL,
		Passwords: pi,
		Log:       log.Named("login"),
	})
	registry, err := actions.NewRegistry(cfg.Actions, launcher, login, cfg.PiHole.Timeout(), log)
	if err != nil {
		log.Fatal("Action setup failed", zap.Error(err))
	}
	bindings, err := registry.Bindings(cfg.Buttons)
	if err != nil {
		log.Fatal("Button bindings invalid", zap.Error(err))
	}

	// 捕获操作系统信号，优雅关闭
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, name, err := openSource(ctx, cfg, loc, *replay, log)
	if err != nil {
		log.Fatal("Input source unavailable", zap.Error(err))
	}

	for _, b := range cfg.Buttons {
		log.Info("Button mapping", zap.Uint16("code", b.Code), zap.String("action", bindings[b.Code].Name))
	}

	// 回放模式只验证按键表，不在启动时打开浏览器
	if *replay == "" {
		registry.RunStartup(cfg.Startup)
	}

	log.Info("👀 Monitoring buttons", zap.String("source", name))
	mon := monitor.New(monitor.Config{
		Name:     name,
		Source:   source,
		Bindings: bindings,
		Log:      log.Named("monitor"),
	})
	err = mon.Run(ctx)
	login.Cleanup()
	if err != nil {
		log.Fatal("Monitoring stopped", zap.Error(err))
	}
	log.Info("Shutting down...")
}

// openSource 回放文件或者真实设备，设备还没注册时按配置等待
func openSource(ctx context.Context, cfg *config.Config, loc *locator.Locator, replay string, log *zap.Logger) (monitor.EventSource, string, error) {
	if replay != "" {
		f, err := os.Open(replay)
		if err != nil {
			return nil, "", err
		}
		return monitor.NewRawSource(f, log.Named("replay")), replay, nil
	}

	dev, err := loc.Locate(cfg.Device.Name)
	if errors.Is(err, locator.ErrDeviceNotFound) && cfg.Device.WaitSeconds > 0 {
		dev, err = watcher.New(loc, log.Named("watcher")).WaitFor(ctx, cfg.Device.Name, cfg.Device.Wait())
	}
	if err != nil {
		return nil, "", err
	}
	log.Info("✅ Found input device", zap.String("name", dev.Name), zap.String("path", dev.Path))

	src, err := monitor.OpenDevice(dev.Path, cfg.Device.Grab, log)
	if err != nil {
		return nil, "", err
	}
	return src, dev.Path, nil
}

func listDevices(loc *locator.Locator, log *zap.Logger) {
	devices, err := loc.List()
	if err != nil {
		log.Fatal("Listing input devices failed", zap.Error(err))
	}
	for _, d := range devices {
		fmt.Printf("%-20s %s\n", d.Path, d.Name)
	}
}
