// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package placeholder animates the idle search prompt: example queries are
// typed out, held, deleted, and replaced by the next one, forever.
package placeholder

import (
	"math/rand/v2"
	"time"

	"github.com/pdiddy/bsearch/pkg/types"
)

// Frame is one visible state of the animation.
type Frame struct {
	// Text is the part of the phrase currently shown.
	Text string
	// Delay is how long to wait before the next Step.
	Delay time.Duration
}

// Prompt returns the placeholder line for text, e.g. `Search "black ho"`.
func Prompt(text string) string {
	return `Search "` + text + `"`
}

// Animator computes frames. It holds no timers; Ticker drives it.
type Animator struct {
	phrases [][]rune
	cfg     types.PlaceholderConfig
	jitter  func(max time.Duration) time.Duration

	phrase   int
	shown    int
	deleting bool
}

// NewAnimator returns an animator over the configured phrases. Empty
// phrases are skipped.
func NewAnimator(cfg types.PlaceholderConfig) *Animator {
	a := &Animator{cfg: cfg, jitter: randomJitter}
	for _, p := range cfg.Phrases {
		if p != "" {
			a.phrases = append(a.phrases, []rune(p))
		}
	}
	return a
}

// Empty reports whether there is nothing to animate.
func (a *Animator) Empty() bool { return len(a.phrases) == 0 }

// Phrase returns the index of the phrase being animated.
func (a *Animator) Phrase() int { return a.phrase }

// Step advances the animation by one character.
func (a *Animator) Step() Frame {
	if a.Empty() {
		return Frame{Delay: a.cfg.Hold}
	}
	runes := a.phrases[a.phrase]

	if !a.deleting {
		a.shown++
		f := Frame{Text: string(runes[:a.shown])}
		if a.shown >= len(runes) {
			a.deleting = true
			f.Delay = a.cfg.Hold
		} else {
			f.Delay = a.cfg.TypeDelay + a.jitter(a.cfg.TypeJitter)
		}
		return f
	}

	a.shown--
	f := Frame{Text: string(runes[:a.shown]), Delay: a.cfg.DeleteDelay}
	if a.shown == 0 {
		// The next phrase starts typing right away.
		a.deleting = false
		a.phrase = (a.phrase + 1) % len(a.phrases)
		f.Delay = 0
	}
	return f
}

// Restart begins the current phrase again from its first character.
func (a *Animator) Restart() {
	a.shown = 0
	a.deleting = false
}

func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(max)))
}
