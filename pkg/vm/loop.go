package vm

import (
	"math"

	"github.com/agenthands/iam/pkg/compiler/index"
	"github.com/agenthands/iam/pkg/compiler/lexer"
	"github.com/agenthands/iam/pkg/core/value"
)

// execFor runs a whole counted loop:
//
//	for counter start end
//	    ...
//	end
//
// The body is replayed from the indexed token range while the counter is
// below end. After each pass the counter is incremented by one on top of
// whatever the body left in it.
func (m *Machine) execFor() error {
	header := m.current()
	r, ok := m.Loops[m.IP]
	if !ok {
		r = index.Resolve(m.Tokens, m.IP)
	}
	m.IP++ // for

	counterTok := m.current()
	if counterTok.Kind != lexer.KindIdentifier {
		m.diagf(header, "for expects a counter variable, got %q", counterTok.Text)
		m.skipLine()
		return nil
	}
	m.IP++

	start := m.evalExpr()
	limit := m.evalExpr()
	from, okFrom := value.AsInt(start)
	to, okTo := value.AsInt(limit)
	if !okFrom || !okTo {
		// setup aborted: the body lines run as ordinary statements
		m.diagf(header, "for bounds must be integers, got %s and %s", start.Type(), limit.Type())
		m.skipLine()
		return nil
	}
	if !r.Terminated(m.Tokens) {
		m.diagf(header, "for loop on %q has no matching end", counterTok.Text)
	}

	name := counterTok.Text
	m.Env.Set(name, value.Int(from))

	for {
		n, ok := m.counter(header, name)
		if !ok || n >= to {
			break
		}

		m.IP = r.BodyStart
		for m.IP < r.End && m.IP < len(m.Tokens) {
			if err := m.execStatement(); err != nil {
				return err
			}
			if m.Halted {
				return nil
			}
		}

		n, ok = m.counter(header, name)
		if !ok || n == math.MaxInt64 {
			// no bound exceeds MaxInt64, the loop is over without wrapping
			break
		}
		m.Env.Set(name, value.Int(n+1))
	}

	m.IP = r.End
	m.skipLine()
	return nil
}

func (m *Machine) counter(header lexer.Token, name string) (int64, bool) {
	v, _ := m.Env.Get(name)
	n, ok := value.AsInt(v)
	if !ok {
		m.diagf(header, "loop counter %q is no longer an integer", name)
	}
	return n, ok
}
