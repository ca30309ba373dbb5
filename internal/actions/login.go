package actions

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PasswordSource 提供 Pi-hole 的 CLI 密码 (pihole.Client 实现)
type PasswordSource interface {
	CLIPassword(ctx context.Context) (string, error)
}

const loginPagePrefix = "kiosk-login-"

// 打开后把密码 POST 到 /api/auth，成功与否都跳到管理页
var loginTemplate = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<p>Signing in to {{.Title}}...</p>
<script>
fetch({{.AuthURL}}, {
  method: "POST",
  credentials: "include",
  headers: {"Content-Type": "application/json"},
  body: JSON.stringify({password: {{.Password}}})
}).finally(function () {
  window.location.replace({{.Target}});
});
</script>
</body>
</html>
`))

type loginData struct {
	Title    string
	AuthURL  string
	Password string
	Target   string
}

type LoginPageConfig struct {
	Dir       string
	AuthURL   string
	Passwords PasswordSource
	Log       *zap.Logger
}

// LoginPage 生成带密码的本地登录页，只保留最新的一份
type LoginPage struct {
	dir       string
	authURL   string
	passwords PasswordSource
	log       *zap.Logger

	newName func() string
	last    string
}

func NewLoginPage(cfg LoginPageConfig) *LoginPage {
	p := &LoginPage{
		dir:       cfg.Dir,
		authURL:   cfg.AuthURL,
		passwords: cfg.Passwords,
		log:       cfg.Log,
		newName:   uuid.NewString,
	}
	if p.dir == "" {
		p.dir = os.TempDir()
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	return p
}

// Render 写出登录页并返回 file:// 地址
func (p *LoginPage) Render(ctx context.Context, title, target string) (string, error) {
	password, err := p.passwords.CLIPassword(ctx)
	if err != nil {
		return "", fmt.Errorf("cli password: %w", err)
	}

	var sb strings.Builder
	err = loginTemplate.Execute(&sb, loginData{
		Title:    title,
		AuthURL:  p.authURL,
		Password: password,
		Target:   target,
	})
	if err != nil {
		return "", fmt.Errorf("render login page: %w", err)
	}

	path := filepath.Join(p.dir, loginPagePrefix+p.newName()+".html")
	// 页面里有明文密码，只给当前用户读
	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		return "", fmt.Errorf("write login page: %w", err)
	}

	p.removeLast()
	p.last = path
	p.log.Debug("Login page written", zap.String("path", path))
	return "file://" + path, nil
}

func (p *LoginPage) removeLast() {
	if p.last == "" {
		return
	}
	if err := os.Remove(p.last); err != nil && !errors.Is(err, os.ErrNotExist) {
		p.log.Warn("Could not remove old login page", zap.String("path", p.last), zap.Error(err))
	}
	p.last = ""
}

// Cleanup 退出时删掉最后一份登录页
func (p *LoginPage) Cleanup() {
	p.removeLast()
}
