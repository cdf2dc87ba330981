// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt reads search input from the terminal. On a terminal the
// Editor reads keystrokes in raw mode so the idle placeholder can animate
// until the first character is typed; otherwise Scanner reads plain lines.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ErrInterrupted is returned when the user presses Ctrl-C.
var ErrInterrupted = errors.New("interrupted")

// ANSI sequences used for redrawing the input line.
const (
	clearLine = "\r\033[K"
	dim       = "\033[2m"
	reset     = "\033[0m"
)

// LineReader yields one submitted line at a time.
type LineReader interface {
	ReadLine() (string, error)
}

// New returns an Editor when in is a terminal and a Scanner otherwise.
// The returned restore func puts the terminal back into the mode it had
// when New was called; callers defer it so an interrupted ReadLine cannot
// leave the terminal raw.
func New(in *os.File, out io.Writer, prefix string) (LineReader, func()) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return NewScanner(in, out, prefix), func() {}
	}
	orig, err := term.GetState(fd)
	if err != nil {
		return NewScanner(in, out, prefix), func() {}
	}
	e := NewEditor(in, out, prefix)
	e.makeRaw = func() (func(), error) {
		st, err := term.MakeRaw(fd)
		if err != nil {
			return nil, fmt.Errorf("entering raw mode: %w", err)
		}
		return func() { term.Restore(fd, st) }, nil
	}
	return e, func() { term.Restore(fd, orig) }
}

// Scanner reads newline-terminated input.
type Scanner struct {
	sc     *bufio.Scanner
	out    io.Writer
	prefix string
}

// NewScanner wraps in.
func NewScanner(in io.Reader, out io.Writer, prefix string) *Scanner {
	return &Scanner{sc: bufio.NewScanner(in), out: out, prefix: prefix}
}

// ReadLine prints the prefix and returns the next line, or io.EOF.
func (s *Scanner) ReadLine() (string, error) {
	fmt.Fprint(s.out, s.prefix)
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.sc.Text(), nil
}

// Editor is a single-line editor for raw-mode input.
type Editor struct {
	in      *bufio.Reader
	out     io.Writer
	prefix  string
	makeRaw func() (func(), error)

	// OnInput is called after every edit with the current text. It runs
	// outside the editor's lock.
	OnInput func(text string)

	mu          sync.Mutex
	buf         []rune
	placeholder string
	active      bool
}

// NewEditor returns an editor that does not touch terminal modes. New
// wires raw mode for real terminals.
func NewEditor(in io.Reader, out io.Writer, prefix string) *Editor {
	return &Editor{in: bufio.NewReader(in), out: out, prefix: prefix}
}

// ShowPlaceholder updates the hint shown while the input is empty. It is
// safe to call from another goroutine.
func (e *Editor) ShowPlaceholder(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.placeholder = text
	if e.active && len(e.buf) == 0 {
		e.redraw()
	}
}

// ReadLine edits one line until Enter. Ctrl-C returns ErrInterrupted and
// Ctrl-D on an empty line returns io.EOF.
func (e *Editor) ReadLine() (string, error) {
	if e.makeRaw != nil {
		restore, err := e.makeRaw()
		if err != nil {
			return "", err
		}
		defer restore()
	}

	e.mu.Lock()
	e.buf = e.buf[:0]
	e.active = true
	e.redraw()
	e.mu.Unlock()
	e.notify("")

	defer func() {
		e.mu.Lock()
		e.active = false
		e.mu.Unlock()
	}()

	for {
		r, _, err := e.in.ReadRune()
		if err != nil {
			return "", err
		}

		switch r {
		case '\r', '\n':
			line := e.finish()
			return line, nil
		case 3: // Ctrl-C
			e.finish()
			return "", ErrInterrupted
		case 4: // Ctrl-D
			if e.length() == 0 {
				e.finish()
				return "", io.EOF
			}
			continue
		case 27: // ESC: swallow CSI sequences such as arrow keys
			e.skipEscape()
			continue
		case 127, 8: // Backspace
			e.edit(func(buf []rune) []rune {
				if len(buf) == 0 {
					return buf
				}
				return buf[:len(buf)-1]
			})
		case 21: // Ctrl-U
			e.edit(func(buf []rune) []rune { return buf[:0] })
		case 23: // Ctrl-W
			e.edit(deleteWord)
		default:
			if r < 32 {
				continue
			}
			e.edit(func(buf []rune) []rune { return append(buf, r) })
		}
	}
}

func (e *Editor) edit(fn func([]rune) []rune) {
	e.mu.Lock()
	e.buf = fn(e.buf)
	text := string(e.buf)
	e.redraw()
	e.mu.Unlock()
	e.notify(text)
}

func (e *Editor) notify(text string) {
	if e.OnInput != nil {
		e.OnInput(text)
	}
}

func (e *Editor) length() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.buf)
}

// finish ends the line on screen and returns the typed text.
func (e *Editor) finish() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = false
	line := string(e.buf)
	fmt.Fprint(e.out, clearLine+e.prefix+line+"\r\n")
	return line
}

func (e *Editor) skipEscape() {
	next, _, err := e.in.ReadRune()
	if err != nil || next != '[' {
		return
	}
	for {
		b, _, err := e.in.ReadRune()
		if err != nil || (b >= 0x40 && b <= 0x7e) {
			return
		}
	}
}

// redraw repaints the input line. Callers hold e.mu.
func (e *Editor) redraw() {
	if len(e.buf) == 0 && e.placeholder != "" {
		// Reprinting the prefix parks the cursor in front of the hint.
		fmt.Fprint(e.out, clearLine+e.prefix+dim+e.placeholder+reset+"\r"+e.prefix)
		return
	}
	fmt.Fprint(e.out, clearLine+e.prefix+string(e.buf))
}

func deleteWord(buf []rune) []rune {
	s := strings.TrimRight(string(buf), " ")
	i := strings.LastIndex(s, " ")
	if i < 0 {
		return buf[:0]
	}
	return []rune(s[:i+1])
}
