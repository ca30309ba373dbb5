package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/Hara602/kioskSentry/internal/config"
	"github.com/Hara602/kioskSentry/internal/model"
	"github.com/Hara602/kioskSentry/internal/monitor"
	"go.uber.org/zap"
)

// Opener 是 Launcher 对外暴露的两种打开方式
type Opener interface {
	OpenWindow(url string) error
	OpenKiosk(url string) error
}

type Registry struct {
	opener  Opener
	login   *LoginPage
	timeout time.Duration
	log     *zap.Logger
	actions map[string]monitor.Action
}

// NewRegistry 把配置里的动作表编译成可执行的动作，login 为 nil 时不能用 login 类型
func NewRegistry(defs map[string]config.ActionConfig, opener Opener, login *LoginPage, timeout time.Duration, log *zap.Logger) (*Registry, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{
		opener:  opener,
		login:   login,
		timeout: timeout,
		log:     log,
		actions: make(map[string]monitor.Action, len(defs)),
	}
	for id, def := range defs {
		run, err := r.compile(def)
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", id, err)
		}
		name := def.Label
		if name == "" {
			name = id
		}
		r.actions[id] = monitor.Action{Name: name, Run: run}
	}
	return r, nil
}

func (r *Registry) compile(def config.ActionConfig) (func() error, error) {
	url := def.URL
	switch def.Kind {
	case config.KindWindow:
		return func() error { return r.opener.OpenWindow(url) }, nil
	case config.KindKiosk:
		return func() error { return r.opener.OpenKiosk(url) }, nil
	case config.KindLogin:
		if r.login == nil {
			return nil, fmt.Errorf("login page not configured")
		}
		title := def.Label
		return func() error { return r.openLogin(title, url) }, nil
	default:
		return nil, fmt.Errorf("unknown kind %q", def.Kind)
	}
}

func (r *Registry) openLogin(title, target string) error {
	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	page, err := r.login.Render(ctx, title, target)
	if err != nil {
		return err
	}
	return r.opener.OpenKiosk(page)
}

func (r *Registry) Action(id string) (monitor.Action, bool) {
	a, ok := r.actions[id]
	return a, ok
}

// Bindings 按键表 -> monitor.Bindings
func (r *Registry) Bindings(table []model.ActionBinding) (monitor.Bindings, error) {
	out := make(monitor.Bindings, len(table))
	for _, b := range table {
		if _, dup := out[b.Code]; dup {
			return nil, fmt.Errorf("code %d bound twice", b.Code)
		}
		a, ok := r.actions[b.Action]
		if !ok {
			return nil, fmt.Errorf("code %d: unknown action %q", b.Code, b.Action)
		}
		out[b.Code] = a
	}
	return out, nil
}

// RunStartup 启动时执行一次，失败只记日志
func (r *Registry) RunStartup(id string) {
	if id == "" {
		return
	}
	a, ok := r.actions[id]
	if !ok {
		r.log.Warn("Unknown startup action", zap.String("action", id))
		return
	}
	r.log.Info("🚀 Running startup action", zap.String("action", a.Name))
	if err := a.Run(); err != nil {
		r.log.Error("Startup action failed", zap.String("action", a.Name), zap.Error(err))
	}
}
