//go:build !linux

package sysutil

import (
	"errors"
	"syscall"
)

const ProcRoot = "/proc"

var errNoProcfs = errors.New("procfs is only available on linux")

func FindProcesses(procRoot, pattern string) ([]int, error) { return nil, errNoProcfs }
func KillMatching(pattern string, sig syscall.Signal) (int, error) { return 0, errNoProcfs }
