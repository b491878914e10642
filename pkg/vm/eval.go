package vm

import (
	"strconv"

	"github.com/agenthands/iam/pkg/compiler/lexer"
	"github.com/agenthands/iam/pkg/core/value"
)

// evalExpr interprets the token at the cursor as a value and advances past it.
// It never fails: every unresolvable expression yields Int(0).
func (m *Machine) evalExpr() value.Value {
	tok := m.current()

	switch tok.Kind {
	case lexer.KindNumber:
		m.IP++
		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			m.diagf(tok, "malformed number %q", tok.Text)
			return value.Zero()
		}
		return value.Int(n)

	case lexer.KindString:
		m.IP++
		return value.Text(tok.Text)

	case lexer.KindIdentifier:
		if m.peek().Is(lexer.KindSpecial, "[") {
			arr, idx, ok := m.elementRef()
			if !ok {
				return value.Zero()
			}
			v, _ := arr.At(idx)
			return v
		}
		m.IP++
		v, ok := m.Env.Get(tok.Text)
		if !ok {
			m.diagf(tok, "undefined variable %q", tok.Text)
			return value.Zero()
		}
		return v

	case lexer.KindEOL:
		m.diagf(tok, "missing expression")
		return value.Zero()

	default:
		m.IP++
		return value.Zero()
	}
}

// elementRef consumes "name [ index ]" and resolves it to an array and an
// in-bounds index. Failures are reported and ok is false.
func (m *Machine) elementRef() (arr *value.Array, idx int64, ok bool) {
	nameTok := m.current()
	m.IP += 2 // name [

	idx = m.resolveIndex()

	if closing := m.current(); closing.Is(lexer.KindSpecial, "]") {
		m.IP++
	} else {
		m.diagf(closing, "missing ] after index of %q", nameTok.Text)
	}

	v, found := m.Env.Get(nameTok.Text)
	if !found {
		m.diagf(nameTok, "undefined array %q", nameTok.Text)
		return nil, 0, false
	}

	switch x := v.(type) {
	case *value.Array:
		if !x.InBounds(idx) {
			m.diagf(nameTok, "index %d out of bounds for %q (length %d)", idx, nameTok.Text, x.Len())
			return nil, 0, false
		}
		return x, idx, true
	case value.Int, value.Text:
		m.diagf(nameTok, "%q is a %s, not an array", nameTok.Text, x.Type())
		return nil, 0, false
	default:
		panic("vm: unhandled value variant")
	}
}

// resolveIndex reads an index: a number literal or a variable bound to an
// integer. Anything else is reported and resolves to 0.
func (m *Machine) resolveIndex() int64 {
	tok := m.current()

	switch tok.Kind {
	case lexer.KindNumber:
		m.IP++
		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			m.diagf(tok, "cannot resolve index %q", tok.Text)
			return 0
		}
		return n

	case lexer.KindIdentifier:
		m.IP++
		v, ok := m.Env.Get(tok.Text)
		if !ok {
			m.diagf(tok, "cannot resolve index: undefined variable %q", tok.Text)
			return 0
		}
		n, isInt := value.AsInt(v)
		if !isInt {
			m.diagf(tok, "cannot resolve index: %q is a %s", tok.Text, v.Type())
			return 0
		}
		return n

	case lexer.KindEOL:
		m.diagf(tok, "cannot resolve index: missing")
		return 0

	default:
		if !tok.Is(lexer.KindSpecial, "]") {
			m.IP++
		}
		m.diagf(tok, "cannot resolve index %q", tok.Text)
		return 0
	}
}
