//go:build !linux

package actions

import "syscall"

func detachAttr() *syscall.SysProcAttr {
	return nil
}
