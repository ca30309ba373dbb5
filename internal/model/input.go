package model

import (
	"encoding/binary"
	"time"

	"golang.org/x/sys/unix"
)

const (
	EvSyn = 0x00
	EvKey = 0x01

	KeyReleased = 0
	KeyPressed  = 1
	KeyRepeated = 2
)

// RawInputEvent 对应内核 struct input_event
/*
struct input_event {
	struct timeval time;
	__u16 type;
	__u16 code;
	__s32 value;
};
*/
// timeval 的大小跟架构有关 (arm32 上 8 字节, arm64/amd64 上 16 字节)，所以直接用 unix.Timeval
type RawInputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// RawInputEventSize 当前架构下一条记录的字节数
var RawInputEventSize = binary.Size(RawInputEvent{})

func (r RawInputEvent) KeyEvent() KeyEvent {
	return KeyEvent{
		Time:  time.Unix(r.Time.Unix()),
		Type:  r.Type,
		Code:  r.Code,
		Value: r.Value,
	}
}
