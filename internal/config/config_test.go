package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hara602/kioskSentry/internal/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvLogLevel, EnvDeviceName, EnvDeviceWait, EnvWebhookHost,
		EnvWebhookPort, EnvPiHoleContainer, EnvDockerBin} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_DefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "gpio_keys", cfg.Device.Name)
	assert.Equal(t, 8888, cfg.Webhook.Port)
	assert.Equal(t, []model.ActionBinding{
		{Code: 30, Action: "dashboard"},
		{Code: 31, Action: "homeassistant"},
		{Code: 32, Action: "pihole"},
		{Code: 33, Action: "homepage"},
	}, cfg.Buttons)
	assert.Equal(t, KindLogin, cfg.Actions["pihole-login"].Kind)
}

func Test_Load_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func Test_Load_Formats(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "config.toml",
			content: `
[webhook]
port = 9000

[[buttons]]
code = 32
action = "pihole-login"
`,
		},
		{
			name: "yaml",
			file: "config.yml",
			content: `
webhook:
  port: 9000
buttons:
  - code: 32
    action: pihole-login
`,
		},
		{
			name:    "json",
			file:    "config.json",
			content: `{"webhook": {"port": 9000}, "buttons": [{"code": 32, "action": "pihole-login"}]}`,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cfg, err := Load(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, 9000, cfg.Webhook.Port)
			assert.Equal(t, "0.0.0.0", cfg.Webhook.Host)
			assert.Equal(t, []model.ActionBinding{{Code: 32, Action: "pihole-login"}}, cfg.Buttons)
			// 未写到的动作仍保留默认值
			assert.Contains(t, cfg.Actions, "dashboard")
		})
	}
}

func Test_Load_ExtraAction(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.toml", `
[actions.grafana]
kind = "window"
url = "http://localhost:3002"

[[buttons]]
code = 30
action = "grafana"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ActionConfig{Kind: KindWindow, URL: "http://localhost:3002"}, cfg.Actions["grafana"])
	assert.Contains(t, cfg.Actions, "homepage")
}

func Test_Load_ExampleFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join("..", "..", "configs", "kioskSentry.example.toml"))
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Device.WaitSeconds)
	assert.Len(t, cfg.Buttons, 4)
	assert.Equal(t, "pihole-login", cfg.Buttons[2].Action)
}

func Test_Load_DecodeError(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeFile(t, "config.toml", "[webhook\nport = "))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode TOML")
}

func Test_Load_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDeviceName, "my_keys")
	t.Setenv(EnvWebhookHost, "127.0.0.1")
	t.Setenv(EnvWebhookPort, "9999")
	t.Setenv(EnvPiHoleContainer, "adblock")
	t.Setenv(EnvDockerBin, "podman")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvDeviceWait, "12")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "my_keys", cfg.Device.Name)
	assert.Equal(t, "127.0.0.1", cfg.Webhook.Host)
	assert.Equal(t, 9999, cfg.Webhook.Port)
	assert.Equal(t, "adblock", cfg.PiHole.Container)
	assert.Equal(t, "podman", cfg.PiHole.Docker)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 12, cfg.Device.WaitSeconds)
}

func Test_Load_BadIntEnvIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvWebhookPort, "eighty")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8888, cfg.Webhook.Port)
}

func Test_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "empty device", mutate: func(c *Config) { c.Device.Name = "" }, errMsg: "device.name"},
		{name: "negative wait", mutate: func(c *Config) { c.Device.WaitSeconds = -1 }, errMsg: "wait_seconds"},
		{name: "no browsers", mutate: func(c *Config) { c.Browser.Candidates = nil }, errMsg: "candidates"},
		{name: "port zero", mutate: func(c *Config) { c.Webhook.Port = 0 }, errMsg: "webhook.port"},
		{name: "port too big", mutate: func(c *Config) { c.Webhook.Port = 70000 }, errMsg: "webhook.port"},
		{name: "pihole timeout", mutate: func(c *Config) { c.PiHole.TimeoutSeconds = 0 }, errMsg: "timeout_seconds"},
		{
			name:   "write timeout too short",
			mutate: func(c *Config) { c.Webhook.WriteTimeoutSec = 5 },
			errMsg: "write_timeout_sec",
		},
		{
			name:   "unknown kind",
			mutate: func(c *Config) { c.Actions["x"] = ActionConfig{Kind: "popup", URL: "http://x"} },
			errMsg: `unknown kind "popup"`,
		},
		{
			name:   "empty url",
			mutate: func(c *Config) { c.Actions["x"] = ActionConfig{Kind: KindKiosk} },
			errMsg: "url must not be empty",
		},
		{
			name:   "login without auth url",
			mutate: func(c *Config) { c.PiHole.AuthURL = "" },
			errMsg: "auth_url",
		},
		{
			name: "duplicate code",
			mutate: func(c *Config) {
				c.Buttons = append(c.Buttons, model.ActionBinding{Code: 30, Action: "pihole"})
			},
			errMsg: "code 30 bound twice",
		},
		{
			name: "unknown action",
			mutate: func(c *Config) {
				c.Buttons = append(c.Buttons, model.ActionBinding{Code: 34, Action: "missing"})
			},
			errMsg: `unknown action "missing"`,
		},
		{name: "unknown startup", mutate: func(c *Config) { c.Startup = "missing" }, errMsg: "startup"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func Test_Validate_EmptyStartupAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Startup = ""
	assert.NoError(t, cfg.Validate())
}
