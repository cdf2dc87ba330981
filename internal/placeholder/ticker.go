// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package placeholder

import (
	"context"
	"sync"
	"time"
)

// Ticker drives an Animator with a self-rescheduling timer and hands each
// frame's text to emit. It pauses while the input holds user text.
type Ticker struct {
	anim *Animator
	emit func(text string)

	mu    sync.Mutex
	input string
	wake  chan struct{}
}

// NewTicker returns a ticker that reports frames through emit. emit runs on
// the ticker goroutine and may call SetInput.
func NewTicker(anim *Animator, emit func(text string)) *Ticker {
	return &Ticker{
		anim: anim,
		emit: emit,
		wake: make(chan struct{}, 1),
	}
}

// SetInput reports the current input text. Non-empty text pauses the
// animation: a frame already being emitted may still arrive, but no further
// frame is scheduled until the input is cleared. Clearing it restarts the
// current phrase.
func (t *Ticker) SetInput(text string) {
	t.mu.Lock()
	t.input = text
	t.mu.Unlock()

	select {
	case t.wake <- struct{}{}:
	default:
	}
}

// Run animates until ctx is done.
func (t *Ticker) Run(ctx context.Context) error {
	if t.anim.Empty() {
		<-ctx.Done()
		return ctx.Err()
	}

	timer := time.NewTimer(0)
	defer timer.Stop()
	paused := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-t.wake:
			t.mu.Lock()
			typing := t.input != ""
			t.mu.Unlock()
			switch {
			case typing && !paused:
				paused = true
				timer.Stop()
			case !typing && paused:
				paused = false
				t.anim.Restart()
				timer.Reset(0)
			}

		case <-timer.C:
			t.mu.Lock()
			typing := t.input != ""
			t.mu.Unlock()
			if typing {
				paused = true
				continue
			}
			f := t.anim.Step()
			t.emit(f.Text)
			timer.Reset(f.Delay)
		}
	}
}
