package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/berth-dev/triplet/internal/collect"
)

// keyBuffer bounds how many keys may queue between two polls. Keys beyond
// it are dropped.
const keyBuffer = 256

// Terminal connects a running Bubble Tea program to the experiment loop. It
// is the loop's collect.KeySource and collect.Renderer; the program feeds it
// keys and draws the frames it is given.
type Terminal struct {
	keys  chan collect.Key
	done  chan struct{}
	abort collect.Key

	mu   sync.Mutex
	send func(tea.Msg)
	once sync.Once
}

// NewTerminal returns a terminal that reports abortKey from every Poll once
// the program has exited.
func NewTerminal(abortKey string) *Terminal {
	return &Terminal{
		keys:  make(chan collect.Key, keyBuffer),
		done:  make(chan struct{}),
		abort: collect.Key(abortKey),
	}
}

// Poll returns the keys pressed since the last call without blocking.
func (t *Terminal) Poll() []collect.Key {
	select {
	case <-t.done:
		return []collect.Key{t.abort}
	default:
	}

	var out []collect.Key
	for {
		select {
		case k := <-t.keys:
			out = append(out, k)
		default:
			return out
		}
	}
}

// Drain discards pending keys.
func (t *Terminal) Drain() {
	for {
		select {
		case <-t.keys:
		default:
			return
		}
	}
}

// Render hands f to the program for drawing. Frames rendered before the
// program starts or after it exits are dropped.
func (t *Terminal) Render(f collect.Frame) {
	t.mu.Lock()
	send := t.send
	t.mu.Unlock()
	if send == nil {
		return
	}
	select {
	case <-t.done:
		return
	default:
	}
	send(frameMsg{frame: f})
}

func (t *Terminal) attach(send func(tea.Msg)) {
	t.mu.Lock()
	t.send = send
	t.mu.Unlock()
}

func (t *Terminal) push(keys ...collect.Key) {
	for _, k := range keys {
		select {
		case t.keys <- k:
		default:
		}
	}
}

func (t *Terminal) close() {
	t.once.Do(func() { close(t.done) })
}
