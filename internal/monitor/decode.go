package monitor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Hara602/kioskSentry/internal/model"
	"go.uber.org/zap"
)

var ErrShortEvent = errors.New("input event record too short")

// DecodeEvent 按 struct input_event 的固定字段解码一条记录
func DecodeEvent(buf []byte) (model.KeyEvent, error) {
	if len(buf) < model.RawInputEventSize {
		return model.KeyEvent{}, fmt.Errorf("%w: %d < %d bytes", ErrShortEvent, len(buf), model.RawInputEventSize)
	}
	var raw model.RawInputEvent
	if err := binary.Read(bytes.NewReader(buf[:model.RawInputEventSize]), binary.NativeEndian, &raw); err != nil {
		return model.KeyEvent{}, err
	}
	return raw.KeyEvent(), nil
}

// RawSource 从任意 reader 读原始事件记录，例如 cat /dev/input/eventN > capture.bin 录下来的文件
type RawSource struct {
	r   io.Reader
	buf []byte
	log *zap.Logger
}

func NewRawSource(r io.Reader, log *zap.Logger) *RawSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &RawSource{
		r:   r,
		buf: make([]byte, model.RawInputEventSize),
		log: log,
	}
}

func (s *RawSource) Next() (model.KeyEvent, error) {
	n, err := io.ReadFull(s.r, s.buf)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		// 末尾残缺的记录装不下 type/code/value，跳过
		s.log.Warn("Skipping truncated input event", zap.Int("bytes", n))
		return model.KeyEvent{}, io.EOF
	}
	if err != nil {
		return model.KeyEvent{}, err
	}
	return DecodeEvent(s.buf)
}

func (s *RawSource) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
