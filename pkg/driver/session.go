package driver

import (
	"strings"

	"github.com/agenthands/iam/pkg/compiler/lexer"
	"github.com/agenthands/iam/pkg/core/env"
)

// Session runs a program statement by statement as lines arrive, keeping
// one environment for its whole lifetime. A for header buffers the
// following lines until its end line arrives.
type Session struct {
	opts    Options
	env     *env.Env
	pending []string
	halted  bool
}

func NewSession(opts Options) *Session {
	return &Session{opts: opts, env: env.New()}
}

// Env returns the session environment.
func (s *Session) Env() *env.Env {
	return s.env
}

// Halted reports whether EXIT was executed.
func (s *Session) Halted() bool {
	return s.halted
}

// Pending reports whether a loop block is still being collected.
func (s *Session) Pending() bool {
	return len(s.pending) > 0
}

// Feed accepts one source line and executes it once complete.
func (s *Session) Feed(line string) error {
	if s.halted {
		return nil
	}

	lead := leadingToken(line)
	switch {
	case len(s.pending) == 0 && lead.Is(lexer.KindLoop, "for"):
		s.pending = append(s.pending, line)
		return nil
	case len(s.pending) > 0:
		s.pending = append(s.pending, line)
		if !lead.Is(lexer.KindLoop, "end") {
			return nil
		}
		line = strings.Join(s.pending, "\n")
		s.pending = nil
	}

	res, err := RunIn(s.env, line, s.opts)
	if res != nil && res.Halted {
		s.halted = true
	}
	return err
}

// Flush executes a partially collected loop block, as an unterminated loop.
func (s *Session) Flush() error {
	if len(s.pending) == 0 {
		return nil
	}
	src := strings.Join(s.pending, "\n")
	s.pending = nil

	res, err := RunIn(s.env, src, s.opts)
	if res != nil && res.Halted {
		s.halted = true
	}
	return err
}

func leadingToken(line string) lexer.Token {
	tokens := lexer.Tokenize(line)
	if len(tokens) == 0 {
		return lexer.Token{Kind: lexer.KindEOL}
	}
	return tokens[0]
}
