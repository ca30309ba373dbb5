package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	EnvLogLevel        = "KIOSK_LOG_LEVEL"
	EnvDeviceName      = "KIOSK_DEVICE_NAME"
	EnvDeviceWait      = "KIOSK_DEVICE_WAIT_SECONDS"
	EnvWebhookHost     = "KIOSK_WEBHOOK_HOST"
	EnvWebhookPort     = "KIOSK_WEBHOOK_PORT"
	EnvPiHoleContainer = "KIOSK_PIHOLE_CONTAINER"
	EnvDockerBin       = "KIOSK_DOCKER_BIN"
)

// Load 读取配置文件 (不存在时用默认值)，再应用环境变量并校验
func Load(path string) (*Config, error) {
	cfg, err := loadConfigFromFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}

// loadConfigFromFile 按扩展名解析，解析结果覆盖在默认值之上
func loadConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	}
	return cfg, nil
}

func (c *Config) ApplyEnvOverrides() {
	c.Log.Level = envOrDefault(EnvLogLevel, c.Log.Level)
	c.Device.Name = envOrDefault(EnvDeviceName, c.Device.Name)
	c.Device.WaitSeconds = intEnvOrDefault(EnvDeviceWait, c.Device.WaitSeconds)
	c.Webhook.Host = envOrDefault(EnvWebhookHost, c.Webhook.Host)
	c.Webhook.Port = intEnvOrDefault(EnvWebhookPort, c.Webhook.Port)
	c.PiHole.Container = envOrDefault(EnvPiHoleContainer, c.PiHole.Container)
	c.PiHole.Docker = envOrDefault(EnvDockerBin, c.PiHole.Docker)
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnvOrDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
