// Package config 按键进程和 webhook 共用的配置
package config

import (
	"time"

	"github.com/Hara602/kioskSentry/internal/model"
)

const DefaultPath = "/etc/kioskSentry/config.toml"

// 动作类型
const (
	KindWindow = "window" // 普通最大化窗口
	KindKiosk  = "kiosk"  // 全屏无边框，先关掉旧的浏览器
	KindLogin  = "login"  // 生成自动登录页面后用 kiosk 打开
)

type Config struct {
	Log     LogConfig               `toml:"log" yaml:"log" json:"log"`
	Device  DeviceConfig            `toml:"device" yaml:"device" json:"device"`
	Browser BrowserConfig           `toml:"browser" yaml:"browser" json:"browser"`
	PiHole  PiHoleConfig            `toml:"pihole" yaml:"pihole" json:"pihole"`
	Webhook WebhookConfig           `toml:"webhook" yaml:"webhook" json:"webhook"`
	Actions map[string]ActionConfig `toml:"actions" yaml:"actions" json:"actions"`
	Buttons []model.ActionBinding   `toml:"buttons" yaml:"buttons" json:"buttons"`
	// 启动后先执行一次的动作，空表示不执行
	Startup string `toml:"startup" yaml:"startup" json:"startup"`
}

type LogConfig struct {
	Level string `toml:"level" yaml:"level" json:"level"`
}

type DeviceConfig struct {
	Name        string `toml:"name" yaml:"name" json:"name"`
	SysRoot     string `toml:"sys_root" yaml:"sys_root" json:"sys_root"`
	DevRoot     string `toml:"dev_root" yaml:"dev_root" json:"dev_root"`
	Grab        bool   `toml:"grab" yaml:"grab" json:"grab"`
	WaitSeconds int    `toml:"wait_seconds" yaml:"wait_seconds" json:"wait_seconds"`
}

type BrowserConfig struct {
	Candidates   []string `toml:"candidates" yaml:"candidates" json:"candidates"`
	SettleMs     int      `toml:"settle_ms" yaml:"settle_ms" json:"settle_ms"`
	LoginPageDir string   `toml:"login_page_dir" yaml:"login_page_dir" json:"login_page_dir"`
}

type PiHoleConfig struct {
	Docker         string `toml:"docker" yaml:"docker" json:"docker"`
	Container      string `toml:"container" yaml:"container" json:"container"`
	TimeoutSeconds int    `toml:"timeout_seconds" yaml:"timeout_seconds" json:"timeout_seconds"`
	AuthURL        string `toml:"auth_url" yaml:"auth_url" json:"auth_url"`
}

type WebhookConfig struct {
	Host            string `toml:"host" yaml:"host" json:"host"`
	Port            int    `toml:"port" yaml:"port" json:"port"`
	ReadTimeoutSec  int    `toml:"read_timeout_sec" yaml:"read_timeout_sec" json:"read_timeout_sec"`
	WriteTimeoutSec int    `toml:"write_timeout_sec" yaml:"write_timeout_sec" json:"write_timeout_sec"`
	IdleTimeoutSec  int    `toml:"idle_timeout_sec" yaml:"idle_timeout_sec" json:"idle_timeout_sec"`
}

type ActionConfig struct {
	Kind  string `toml:"kind" yaml:"kind" json:"kind"`
	URL   string `toml:"url" yaml:"url" json:"url"`
	Label string `toml:"label" yaml:"label" json:"label"`
}

func (d DeviceConfig) Wait() time.Duration { return time.Duration(d.WaitSeconds) * time.Second }

func (b BrowserConfig) Settle() time.Duration { return time.Duration(b.SettleMs) * time.Millisecond }

func (p PiHoleConfig) Timeout() time.Duration { return time.Duration(p.TimeoutSeconds) * time.Second }

func (w WebhookConfig) ReadTimeout() time.Duration {
	return time.Duration(w.ReadTimeoutSec) * time.Second
}

func (w WebhookConfig) WriteTimeout() time.Duration {
	return time.Duration(w.WriteTimeoutSec) * time.Second
}

func (w WebhookConfig) IdleTimeout() time.Duration {
	return time.Duration(w.IdleTimeoutSec) * time.Second
}
