//go:build linux

package sysutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

const ProcRoot = "/proc"

// FindProcesses 扫描 /proc/<pid>/cmdline，返回命令行中包含 pattern 的进程 (等价 pkill -f)
func FindProcesses(procRoot, pattern string) ([]int, error) {
	entries, err := os.ReadDir(procRoot)
	if err != nil {
		return nil, err
	}
	self := os.Getpid()

	var pids []int
	for _, e := range entries {
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid == self {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(procRoot, e.Name(), "cmdline"))
		// 进程可能已经退出了
		if err != nil || len(raw) == 0 {
			continue
		}
		// cmdline 以 \0 分隔参数
		cmdline := string(bytes.ReplaceAll(bytes.TrimRight(raw, "\x00"), []byte{0}, []byte{' '}))
		if strings.Contains(cmdline, pattern) {
			pids = append(pids, pid)
		}
	}
	return pids, nil
}

// KillMatching 给所有匹配的进程发信号，返回成功发送的个数
func KillMatching(pattern string, sig syscall.Signal) (int, error) {
	pids, err := FindProcesses(ProcRoot, pattern)
	if err != nil {
		return 0, err
	}
	killed := 0
	for _, pid := range pids {
		// ESRCH: 进程已经没了，忽略
		if err := unix.Kill(pid, sig); err == nil {
			killed++
		}
	}
	return killed, nil
}
