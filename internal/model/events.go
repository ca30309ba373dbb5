package model

import "time"

// InputDevice 启动时扫描到的输入设备
type InputDevice struct {
	Name  string // e.g., gpio_keys
	Index int    // eventN 中的 N
	Path  string // e.g., /dev/input/event3
}

// KeyEvent 解码后的输入事件
type KeyEvent struct {
	Time  time.Time
	Type  uint16
	Code  uint16
	Value int32 // 0 release, 1 press, 2 repeat
}

func (e KeyEvent) IsKey() bool { return e.Type == EvKey }

// Pressed 只有按下才触发动作，松开和长按重复都忽略
func (e KeyEvent) Pressed() bool { return e.IsKey() && e.Value == KeyPressed }

// ActionBinding 按键码 -> 动作名
type ActionBinding struct {
	Code   uint16 `toml:"code" yaml:"code" json:"code"`
	Action string `toml:"action" yaml:"action" json:"action"`
}

// DisableRequest 一次 webhook 请求的暂停时长(秒)
type DisableRequest struct {
	Duration int
}

const (
	MinDisableSeconds     = 1
	MaxDisableSeconds     = 86400 // 24h
	DefaultDisableSeconds = 10
)

func (r DisableRequest) Valid() bool {
	return r.Duration >= MinDisableSeconds && r.Duration <= MaxDisableSeconds
}
