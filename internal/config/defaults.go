package config

import "github.com/Hara602/kioskSentry/internal/model"

const vitalsDashboard = "http://localhost:3002/d/a342df05-226d-4233-b5e7-f46688260197/reterminal-system-vitals"

// DefaultConfig 对应 reTerminal 上的参考部署
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Device: DeviceConfig{
			Name:    "gpio_keys",
			SysRoot: "/sys/class/input",
			DevRoot: "/dev/input",
			Grab:    true,
		},
		Browser: BrowserConfig{
			Candidates:   []string{"chromium-browser", "chromium", "firefox"},
			SettleMs:     1000,
			LoginPageDir: "/tmp",
		},
		PiHole: PiHoleConfig{
			Docker:         "docker",
			Container:      "pihole",
			TimeoutSeconds: 5,
			AuthURL:        "http://localhost:8080/api/auth",
		},
		Webhook: WebhookConfig{
			Host:            "0.0.0.0",
			Port:            8888,
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 15,
			IdleTimeoutSec:  60,
		},
		Actions: map[string]ActionConfig{
			"dashboard": {
				Kind:  KindKiosk,
				URL:   vitalsDashboard + "?kiosk=true&refresh=5s",
				Label: "System Vitals Dashboard",
			},
			"dashboard-window": {
				Kind:  KindWindow,
				URL:   vitalsDashboard + "?orgId=1&refresh=5s",
				Label: "System Vitals Dashboard",
			},
			"homeassistant": {Kind: KindKiosk, URL: "http://localhost:8123/lovelace", Label: "Home Assistant Overview"},
			"pihole":        {Kind: KindKiosk, URL: "http://localhost:8080/admin", Label: "Pi-hole Dashboard"},
			"pihole-login":  {Kind: KindLogin, URL: "http://localhost:8080/admin", Label: "Pi-hole Dashboard (auto-login)"},
			"homepage":      {Kind: KindKiosk, URL: "http://localhost:3000", Label: "Homepage"},
		},
		// F1 F2 F3 和绿色圆形按键
		Buttons: []model.ActionBinding{
			{Code: 30, Action: "dashboard"},
			{Code: 31, Action: "homeassistant"},
			{Code: 32, Action: "pihole"},
			{Code: 33, Action: "homepage"},
		},
		Startup: "dashboard",
	}
}
