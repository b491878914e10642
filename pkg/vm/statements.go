package vm

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/agenthands/iam/pkg/compiler/lexer"
	"github.com/agenthands/iam/pkg/core/value"
)

// set name expr | set name[index] expr
func (m *Machine) execSet() {
	setTok := m.current()
	m.IP++

	target := m.current()
	if target.Kind != lexer.KindIdentifier {
		m.diagf(setTok, "%s expects a variable name, got %q", setTok.Text, target.Text)
		return
	}

	if m.peek().Is(lexer.KindSpecial, "[") {
		arr, idx, ok := m.elementRef()
		if !ok {
			return
		}
		if err := arr.Set(idx, m.evalExpr()); err != nil {
			m.diagf(target, "%v", err)
		}
		return
	}

	m.IP++
	m.Env.Set(target.Text, m.evalExpr())
}

// input name
func (m *Machine) execInput() {
	inputTok := m.current()
	m.IP++

	target := m.current()
	if target.Kind != lexer.KindIdentifier {
		m.diagf(inputTok, "input expects a variable name, got %q", target.Text)
		return
	}
	m.IP++

	m.Env.Set(target.Text, value.Coerce(m.readLine(target)))
}

func (m *Machine) readLine(at lexer.Token) string {
	if m.In == nil {
		return ""
	}
	line, err := m.In.ReadLine()
	if err != nil && !errors.Is(err, io.EOF) {
		m.diagf(at, "read input: %v", err)
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}

// array name [size]
func (m *Machine) execArray() {
	arrayTok := m.current()
	m.IP++

	target := m.current()
	if target.Kind != lexer.KindIdentifier {
		m.diagf(arrayTok, "array expects a variable name, got %q", target.Text)
		return
	}
	m.IP++

	size := 0
	if sizeTok := m.current(); sizeTok.Kind == lexer.KindNumber {
		m.IP++
		n, err := strconv.ParseInt(sizeTok.Text, 10, 64)
		switch {
		case err != nil:
			m.diagf(sizeTok, "malformed array size %q", sizeTok.Text)
		case n < 0:
			m.diagf(sizeTok, "negative array size %d", n)
		case n > MaxArrayLen:
			m.diagf(sizeTok, "array size %d exceeds limit %d", n, MaxArrayLen)
		default:
			size = int(n)
		}
	}

	m.Env.Set(target.Text, value.NewArray(size))
}
