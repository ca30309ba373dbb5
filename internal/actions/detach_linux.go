//go:build linux

package actions

import "syscall"

// 新会话，按键进程退出时浏览器不会跟着收到信号
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
