// Package index resolves loop structure in a token stream once, before
// execution, so that loop bodies can be replayed as fixed token ranges.
package index

import (
	"github.com/agenthands/iam/pkg/compiler/lexer"
)

// Range describes one for-loop in the token stream.
// BodyStart is the first token after the header line and End is the
// position of the terminating "end" token (len(tokens) when unterminated).
type Range struct {
	Header    int
	BodyStart int
	End       int
}

// Terminated reports whether the loop has a matching "end" line.
func (r Range) Terminated(tokens []lexer.Token) bool {
	return r.End < len(tokens)
}

// Loops maps the position of every line-leading "for" token to its Range.
type Loops map[int]Range

// LineStarts returns the position of the first token of every line.
func LineStarts(tokens []lexer.Token) []int {
	var starts []int
	lineStart := true
	for i, tok := range tokens {
		if lineStart {
			starts = append(starts, i)
		}
		lineStart = tok.Kind == lexer.KindEOL
	}
	return starts
}

// Build indexes all loops of the token stream. Each header is matched with
// the nearest following line that starts with "end"; nested headers share
// that line.
func Build(tokens []lexer.Token) Loops {
	loops := make(Loops)
	for _, pos := range LineStarts(tokens) {
		if tokens[pos].Is(lexer.KindLoop, "for") {
			loops[pos] = Resolve(tokens, pos)
		}
	}
	return loops
}

// Resolve computes the Range of the loop whose header starts at pos.
func Resolve(tokens []lexer.Token, pos int) Range {
	r := Range{Header: pos, BodyStart: len(tokens), End: len(tokens)}

	i := pos
	for i < len(tokens) && tokens[i].Kind != lexer.KindEOL {
		i++
	}
	if i < len(tokens) {
		i++
	}
	r.BodyStart = i

	lineStart := true
	for ; i < len(tokens); i++ {
		if lineStart && tokens[i].Is(lexer.KindLoop, "end") {
			r.End = i
			break
		}
		lineStart = tokens[i].Kind == lexer.KindEOL
	}
	return r
}
