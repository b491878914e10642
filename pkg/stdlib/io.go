package stdlib

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// LineReader reads one line per call without the trailing newline.
// It returns io.EOF once the source is exhausted.
type LineReader struct {
	r *bufio.Reader
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

func (l *LineReader) ReadLine() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Terminal reads lines interactively with line editing and history.
type Terminal struct {
	state  *liner.State
	Prompt string
}

// NewTerminal takes over the controlling terminal. Close must be called
// to restore it.
func NewTerminal(prompt string) *Terminal {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &Terminal{state: state, Prompt: prompt}
}

// TerminalSupported reports whether stdin/stdout can be driven interactively.
// liner only inspects $TERM, so redirected streams are checked here.
func TerminalSupported() bool {
	return liner.TerminalSupported() && IsTerminal(os.Stdin) && IsTerminal(os.Stdout)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ReadLine prompts with t.Prompt. Ctrl+C and Ctrl+D both end the input.
func (t *Terminal) ReadLine() (string, error) {
	return t.PromptLine(t.Prompt)
}

// PromptLine reads one line using the given prompt.
func (t *Terminal) PromptLine(prompt string) (string, error) {
	line, err := t.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		t.state.AppendHistory(line)
	}
	return line, nil
}

// ReadHistory loads previously saved history.
func (t *Terminal) ReadHistory(r io.Reader) (int, error) {
	return t.state.ReadHistory(r)
}

// WriteHistory saves the session history.
func (t *Terminal) WriteHistory(w io.Writer) (int, error) {
	return t.state.WriteHistory(w)
}

func (t *Terminal) Close() error {
	return t.state.Close()
}
