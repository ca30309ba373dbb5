package pihole

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultDocker    = "docker"
	DefaultContainer = "pihole"
	DefaultTimeout   = 5 * time.Second

	cliPasswordPath = "/etc/pihole/cli_pw"
)

var ErrCommandTimeout = errors.New("command timeout")

// Runner 执行外部命令并返回 stdout
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner 非零退出码也算执行完成，和 stdout 一起返回给调用方
// 只有启动失败和超时才返回错误
type ExecRunner struct {
	Log *zap.Logger
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// 被 kill 后子进程可能还握着管道，最多再等一会
	cmd.WaitDelay = 500 * time.Millisecond

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}
	if ctx.Err() != nil {
		return stdout.Bytes(), err
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if r.Log != nil {
			r.Log.Warn("Command exited non-zero",
				zap.String("cmd", name),
				zap.Strings("args", args),
				zap.Int("exit_code", exitErr.ExitCode()),
				zap.String("stderr", strings.TrimSpace(stderr.String())),
			)
		}
		return stdout.Bytes(), nil
	}
	return stdout.Bytes(), err
}

type Config struct {
	Docker    string
	Container string
	Timeout   time.Duration
	Runner    Runner
	Log       *zap.Logger
}

// Client 通过 docker exec 操作 Pi-hole 容器
type Client struct {
	docker    string
	container string
	timeout   time.Duration
	runner    Runner
	log       *zap.Logger
}

func New(cfg Config) *Client {
	c := &Client{
		docker:    cfg.Docker,
		container: cfg.Container,
		timeout:   cfg.Timeout,
		runner:    cfg.Runner,
		log:       cfg.Log,
	}
	if c.docker == "" {
		c.docker = DefaultDocker
	}
	if c.container == "" {
		c.container = DefaultContainer
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.runner == nil {
		c.runner = ExecRunner{Log: c.log}
	}
	return c
}

// Disable 暂停过滤 seconds 秒，返回命令的原始输出
func (c *Client) Disable(ctx context.Context, seconds int) (string, error) {
	out, err := c.exec(ctx, "pihole", "disable", fmt.Sprintf("%ds", seconds))
	if err != nil {
		return "", err
	}
	c.log.Info("🚫 Pi-hole blocking disabled", zap.Int("seconds", seconds))
	return out, nil
}

// CLIPassword 读取容器里当前的 CLI 一次性密码，用于登录 web 管理页面
func (c *Client) CLIPassword(ctx context.Context) (string, error) {
	out, err := c.exec(ctx, "cat", cliPasswordPath)
	if err != nil {
		return "", err
	}
	pw := strings.TrimSpace(out)
	if pw == "" {
		return "", fmt.Errorf("empty cli password in %s:%s", c.container, cliPasswordPath)
	}
	return pw, nil
}

func (c *Client) exec(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	full := append([]string{"exec", c.container}, args...)
	out, err := c.runner.Run(ctx, c.docker, full...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.log.Warn("Container command timed out", zap.Strings("args", full), zap.Duration("timeout", c.timeout))
			return "", fmt.Errorf("%w after %s", ErrCommandTimeout, c.timeout)
		}
		c.log.Error("Container command failed", zap.Strings("args", full), zap.Error(err))
		return "", fmt.Errorf("%s exec %s: %w", c.docker, c.container, err)
	}
	return string(out), nil
}
