package sysutil

import (
	"os"
	"strings"
)

// ReadAttr 读取 sysfs 属性文件并去掉换行
func ReadAttr(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
