package vm

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/agenthands/iam/pkg/compiler/index"
	"github.com/agenthands/iam/pkg/compiler/lexer"
	"github.com/agenthands/iam/pkg/core/env"
)

var (
	ErrGasExhausted = errors.New("vm: gas exhausted")
	ErrInternal     = errors.New("vm: internal error")
)

// MaxArrayLen bounds the length accepted by the array statement.
const MaxArrayLen = 1 << 20

// LineReader supplies one line of text per input statement.
// io.EOF is reported as an empty line.
type LineReader interface {
	ReadLine() (string, error)
}

// Machine executes one tokenized program, one statement (source line) at a time.
type Machine struct {
	Tokens []lexer.Token
	Loops  index.Loops

	IP  int // cursor into Tokens
	Env *env.Env

	Out  io.Writer
	In   LineReader
	Diag logrus.FieldLogger

	// GasLimit bounds the number of executed statements; 0 means unlimited.
	GasLimit int
	Steps    int

	Halted bool
}

// New creates a machine for the given token stream, indexing its loops.
func New(tokens []lexer.Token, e *env.Env) *Machine {
	if e == nil {
		e = env.New()
	}
	return &Machine{
		Tokens: tokens,
		Loops:  index.Build(tokens),
		Env:    e,
	}
}

// Reset rewinds the cursor and counters. The environment is kept.
func (m *Machine) Reset() {
	m.IP = 0
	m.Steps = 0
	m.Halted = false
}

// Done reports whether the run is over: halted or the stream is exhausted.
func (m *Machine) Done() bool {
	return m.Halted || m.IP >= len(m.Tokens)
}

// Run executes statements until the stream is exhausted, EXIT is reached,
// or the gas limit is hit.
func (m *Machine) Run(gasLimit int) (err error) {
	// a broken invariant must not take the host process down
	defer func() {
		if r := recover(); r != nil {
			if re, ok := r.(runtime.Error); ok {
				err = fmt.Errorf("%w at token %d: %v", ErrInternal, m.IP, re)
				return
			}
			panic(r)
		}
	}()

	m.GasLimit = gasLimit
	for !m.Done() {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes the statement at the cursor. A for statement runs its whole loop.
func (m *Machine) Step() error {
	if m.Loops == nil {
		m.Loops = index.Build(m.Tokens)
	}
	if m.Env == nil {
		m.Env = env.New()
	}
	if m.Done() {
		return nil
	}
	return m.execStatement()
}

func (m *Machine) execStatement() error {
	if m.GasLimit > 0 && m.Steps >= m.GasLimit {
		return ErrGasExhausted
	}
	m.Steps++

	tok := m.current()
	var err error

	switch {
	case tok.Kind == lexer.KindEOL:
		m.IP++
		return nil
	case tok.Is(lexer.KindKeyword, "print"), tok.Is(lexer.KindKeyword, "PRINT"):
		err = m.execPrint()
	case tok.Is(lexer.KindKeyword, "set"), tok.Is(lexer.KindKeyword, "LET"):
		m.execSet()
	case tok.Is(lexer.KindKeyword, "input"):
		m.execInput()
	case tok.Kind == lexer.KindArrayDecl:
		m.execArray()
	case tok.Is(lexer.KindLoop, "for"):
		return m.execFor()
	case tok.Is(lexer.KindKeyword, "EXIT"):
		m.Halted = true
		return nil
	default:
		// unknown statements and a stray "end" are skipped
		m.IP++
	}

	if err != nil {
		return err
	}
	m.skipLine()
	return nil
}

func (m *Machine) execPrint() error {
	m.IP++ // print
	v := m.evalExpr()

	out := m.Out
	if out == nil {
		out = io.Discard
	}
	if _, err := io.WriteString(out, v.String()+"\n"); err != nil {
		return fmt.Errorf("vm: write output: %w", err)
	}
	return nil
}

// current returns the token at the cursor, or an EOL past the end of the stream.
func (m *Machine) current() lexer.Token {
	if m.IP >= len(m.Tokens) {
		return lexer.Token{Kind: lexer.KindEOL}
	}
	return m.Tokens[m.IP]
}

func (m *Machine) peek() lexer.Token {
	if m.IP+1 >= len(m.Tokens) {
		return lexer.Token{Kind: lexer.KindEOL}
	}
	return m.Tokens[m.IP+1]
}

// skipLine fast-forwards past the next EOL.
func (m *Machine) skipLine() {
	for m.IP < len(m.Tokens) && m.Tokens[m.IP].Kind != lexer.KindEOL {
		m.IP++
	}
	if m.IP < len(m.Tokens) {
		m.IP++
	}
}
