package config

import (
	"fmt"
	"net/url"
)

const (
	minPort = 1
	maxPort = 65535
)

// Validate 检查配置是否自洽，按键表引用的动作必须存在
func (c *Config) Validate() error {
	if c.Device.Name == "" {
		return fmt.Errorf("invalid device.name: must not be empty")
	}
	if c.Device.WaitSeconds < 0 {
		return fmt.Errorf("invalid device.wait_seconds: must be >= 0")
	}
	if len(c.Browser.Candidates) == 0 {
		return fmt.Errorf("invalid browser.candidates: must not be empty")
	}
	if c.Browser.SettleMs < 0 {
		return fmt.Errorf("invalid browser.settle_ms: must be >= 0")
	}
	if c.PiHole.Docker == "" || c.PiHole.Container == "" {
		return fmt.Errorf("invalid pihole: docker and container must not be empty")
	}
	if c.PiHole.TimeoutSeconds <= 0 {
		return fmt.Errorf("invalid pihole.timeout_seconds: must be > 0")
	}
	if c.Webhook.Host == "" {
		return fmt.Errorf("invalid webhook.host: must not be empty")
	}
	if c.Webhook.Port < minPort || c.Webhook.Port > maxPort {
		return fmt.Errorf("invalid webhook.port: must be in range %d..%d", minPort, maxPort)
	}
	if c.Webhook.ReadTimeoutSec <= 0 || c.Webhook.WriteTimeoutSec <= 0 || c.Webhook.IdleTimeoutSec <= 0 {
		return fmt.Errorf("invalid webhook timeouts: must be > 0")
	}
	if c.Webhook.WriteTimeoutSec <= c.PiHole.TimeoutSeconds {
		return fmt.Errorf("invalid webhook.write_timeout_sec: must exceed pihole.timeout_seconds")
	}

	for name, a := range c.Actions {
		if err := validateAction(a); err != nil {
			return fmt.Errorf("invalid action %q: %w", name, err)
		}
		if a.Kind == KindLogin && c.PiHole.AuthURL == "" {
			return fmt.Errorf("invalid action %q: pihole.auth_url required for login actions", name)
		}
	}

	seen := make(map[uint16]bool, len(c.Buttons))
	for _, b := range c.Buttons {
		if seen[b.Code] {
			return fmt.Errorf("invalid buttons: code %d bound twice", b.Code)
		}
		seen[b.Code] = true
		if _, ok := c.Actions[b.Action]; !ok {
			return fmt.Errorf("invalid buttons: code %d references unknown action %q", b.Code, b.Action)
		}
	}
	if c.Startup != "" {
		if _, ok := c.Actions[c.Startup]; !ok {
			return fmt.Errorf("invalid startup: unknown action %q", c.Startup)
		}
	}
	return nil
}

func validateAction(a ActionConfig) error {
	switch a.Kind {
	case KindWindow, KindKiosk, KindLogin:
	default:
		return fmt.Errorf("unknown kind %q", a.Kind)
	}
	if a.URL == "" {
		return fmt.Errorf("url must not be empty")
	}
	if _, err := url.Parse(a.URL); err != nil {
		return fmt.Errorf("bad url: %w", err)
	}
	return nil
}
