package webhook

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Hara602/kioskSentry/internal/model"
)

// 错误信息会原样返回给调用方
var (
	ErrInvalidDuration = errors.New("Duration must be an integer")
	ErrDurationRange   = errors.New("Duration must be between 1 and 86400 seconds")
)

// ParseDuration 校验 duration 参数，缺省或为空时按 10 秒处理
func ParseDuration(raw string) (model.DisableRequest, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.DisableRequest{Duration: model.DefaultDisableSeconds}, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		// 超出 int 范围的整数也算越界
		if errors.Is(err, strconv.ErrRange) {
			return model.DisableRequest{}, ErrDurationRange
		}
		return model.DisableRequest{}, ErrInvalidDuration
	}

	req := model.DisableRequest{Duration: n}
	if !req.Valid() {
		return model.DisableRequest{}, ErrDurationRange
	}
	return req, nil
}
