package monitor

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Hara602/kioskSentry/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// sliceSource 依次返回事件，结束后返回 tail 错误
type sliceSource struct {
	events []model.KeyEvent
	tail   error
	closed bool
}

func (s *sliceSource) Next() (model.KeyEvent, error) {
	if len(s.events) == 0 {
		return model.KeyEvent{}, s.tail
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

// blockingSource 一直阻塞到 Close
type blockingSource struct {
	once   sync.Once
	closed chan struct{}
}

func (s *blockingSource) Next() (model.KeyEvent, error) {
	<-s.closed
	return model.KeyEvent{}, errors.New("file already closed")
}

func (s *blockingSource) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}

func key(code uint16, value int32) model.KeyEvent {
	return model.KeyEvent{Type: model.EvKey, Code: code, Value: value}
}

type recorder struct {
	calls []string
}

func (r *recorder) action(name string) Action {
	return Action{Name: name, Run: func() error {
		r.calls = append(r.calls, name)
		return nil
	}}
}

func Test_Run_Dispatch(t *testing.T) {
	cases := []struct {
		name     string
		events   []model.KeyEvent
		expected []string
	}{
		{
			name:     "press triggers bound action",
			events:   []model.KeyEvent{key(30, model.KeyPressed)},
			expected: []string{"dashboard"},
		},
		{
			name:     "release never triggers",
			events:   []model.KeyEvent{key(30, model.KeyReleased), key(31, model.KeyReleased)},
			expected: nil,
		},
		{
			name:     "repeat never triggers",
			events:   []model.KeyEvent{key(30, model.KeyRepeated), key(33, model.KeyRepeated)},
			expected: nil,
		},
		{
			name: "non key events are ignored",
			events: []model.KeyEvent{
				{Type: model.EvSyn, Code: 30, Value: 1},
				{Type: 0x04, Code: 30, Value: 1}, // EV_MSC
			},
			expected: nil,
		},
		{
			name: "full press cycle for every button in order",
			events: []model.KeyEvent{
				key(30, 1), {Type: model.EvSyn}, key(30, 0),
				key(31, 1), key(31, 2), key(31, 0),
				key(32, 1), key(32, 0),
				key(33, 1), key(33, 0),
			},
			expected: []string{"dashboard", "homeassistant", "pihole", "homepage"},
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			src := &sliceSource{events: tt.events, tail: io.EOF}
			m := New(Config{
				Name:   "test",
				Source: src,
				Bindings: Bindings{
					30: rec.action("dashboard"),
					31: rec.action("homeassistant"),
					32: rec.action("pihole"),
					33: rec.action("homepage"),
				},
			})

			require.NoError(t, m.Run(context.Background()))
			assert.Equal(t, tt.expected, rec.calls)
		})
	}
}

func Test_Run_UnboundCodeIsLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	rec := &recorder{}
	src := &sliceSource{
		events: []model.KeyEvent{key(99, model.KeyPressed), key(30, model.KeyPressed)},
		tail:   io.EOF,
	}
	m := New(Config{Source: src, Bindings: Bindings{30: rec.action("dashboard")}, Log: zap.New(core)})

	require.NoError(t, m.Run(context.Background()))

	// 未绑定的键不影响后续事件
	assert.Equal(t, []string{"dashboard"}, rec.calls)
	unhandled := logs.FilterMessage("Unhandled key code").All()
	require.Len(t, unhandled, 1)
	assert.Equal(t, uint16(99), unhandled[0].ContextMap()["code"])
}

func Test_Run_ActionErrorDoesNotStopLoop(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	rec := &recorder{}
	src := &sliceSource{
		events: []model.KeyEvent{key(30, 1), key(31, 1)},
		tail:   io.EOF,
	}
	m := New(Config{
		Source: src,
		Bindings: Bindings{
			30: {Name: "broken", Run: func() error { return errors.New("no browser") }},
			31: rec.action("homeassistant"),
		},
		Log: zap.New(core),
	})

	require.NoError(t, m.Run(context.Background()))
	assert.Equal(t, []string{"homeassistant"}, rec.calls)
	assert.Equal(t, 1, logs.FilterMessage("Action failed").Len())
}

func Test_Run_ReadFailure(t *testing.T) {
	src := &sliceSource{tail: errors.New("no such device")}
	m := New(Config{Name: "/dev/input/event3", Source: src})

	err := m.Run(context.Background())
	assert.ErrorIs(t, err, ErrDeviceRead)
	assert.Contains(t, err.Error(), "/dev/input/event3")
	assert.Contains(t, err.Error(), "no such device")
}

func Test_Run_CancelClosesSource(t *testing.T) {
	src := &blockingSource{closed: make(chan struct{})}
	m := New(Config{Source: src})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
}
