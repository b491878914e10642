package lexer

import (
	"strings"
)

// blanks separate words; newlines are consumed by splitLines
const blanks = " \t\v\f\r"

// Scanner performs lexical analysis on IAM source, one line at a time.
type Scanner struct {
	lines []string
	line  int

	tokens []Token
	word   strings.Builder
}

// NewScanner creates a new scanner for the given source.
func NewScanner(source string) *Scanner {
	s := &Scanner{}
	s.Reset(source)
	return s
}

// Reset re-initializes the scanner with new source.
func (s *Scanner) Reset(source string) {
	s.lines = splitLines(source)
	s.line = 0
	s.tokens = nil
	s.word.Reset()
}

// Tokenize converts the whole source into a flat token stream.
// The stream holds exactly one EOL token per source line.
func Tokenize(source string) []Token {
	s := NewScanner(source)
	for s.Next() {
	}
	return s.Tokens()
}

// Next scans the next source line and reports whether there was one.
func (s *Scanner) Next() bool {
	if s.line >= len(s.lines) {
		return false
	}
	text := s.lines[s.line]
	s.line++
	s.scanLine(text)
	return true
}

// Tokens returns the tokens scanned so far.
func (s *Scanner) Tokens() []Token {
	return s.tokens
}

func (s *Scanner) scanLine(text string) {
	trimmed := strings.TrimLeft(text, blanks)
	if trimmed == "" || trimmed[0] == '#' {
		s.emit(KindEOL, "")
		return
	}

	inString := false
	for i := 0; i < len(text); i++ {
		ch := text[i]

		if inString {
			if ch == '"' {
				s.emitString()
				inString = false
				continue
			}
			s.word.WriteByte(ch)
			continue
		}

		switch ch {
		case '"':
			s.flush()
			inString = true
		case '[', ']':
			s.flush()
			s.emit(KindSpecial, string(ch))
		case ' ', '\t', '\v', '\f', '\r':
			s.flush()
		default:
			s.word.WriteByte(ch)
		}
	}

	// an unterminated string closes at the end of the line
	if inString {
		s.emitString()
	} else {
		s.flush()
	}
	s.emit(KindEOL, "")
}

func (s *Scanner) flush() {
	if s.word.Len() == 0 {
		return
	}
	word := s.word.String()
	s.word.Reset()
	s.emit(Classify(word), word)
}

func (s *Scanner) emitString() {
	text := s.word.String()
	s.word.Reset()
	s.emit(KindString, text)
}

func (s *Scanner) emit(kind Kind, text string) {
	s.tokens = append(s.tokens, Token{Kind: kind, Text: text, Line: s.line})
}

// Classify returns the kind of a bare (unquoted) word.
func Classify(word string) Kind {
	if word == "" {
		return KindIdentifier
	}
	if isDigit(word[0]) || (word[0] == '-' && len(word) > 1 && isDigit(word[1])) {
		return KindNumber
	}
	if kind, ok := statementKeywords[word]; ok {
		return kind
	}
	if loopKeywords[word] {
		return KindLoop
	}
	if operators[word] {
		return KindOperator
	}
	if legacyKeywords[word] {
		return KindKeyword
	}
	return KindIdentifier
}

func splitLines(source string) []string {
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
