package lexer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/agenthands/iam/pkg/compiler/lexer"
)

type kt struct {
	Kind lexer.Kind
	Text string
}

func strip(tokens []lexer.Token) []kt {
	out := make([]kt, len(tokens))
	for i, tok := range tokens {
		out[i] = kt{tok.Kind, tok.Text}
	}
	return out
}

func TestTokenizeBlankAndComment(t *testing.T) {
	for _, src := range []string{"", "\n", "   \n", "# a comment\n", "#print 5", "   # indented"} {
		tokens := lexer.Tokenize(src)
		if src == "" {
			assert.Empty(t, tokens)
			continue
		}
		if assert.Len(t, tokens, 1, "source %q", src) {
			assert.Equal(t, lexer.KindEOL, tokens[0].Kind)
		}
	}
}

func TestTokenizeAllBlanksSeparate(t *testing.T) {
	got := strip(lexer.Tokenize("set\vx\f7\r\n\f\vprint\tx"))
	want := []kt{
		{lexer.KindKeyword, "set"},
		{lexer.KindIdentifier, "x"},
		{lexer.KindNumber, "7"},
		{lexer.KindEOL, ""},
		{lexer.KindKeyword, "print"},
		{lexer.KindIdentifier, "x"},
		{lexer.KindEOL, ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeStatements(t *testing.T) {
	src := "set x 42\nprint \"hello world\"\narray a 3\nset a[1] -5\nfor i 0 5\nend\n"
	got := strip(lexer.Tokenize(src))
	want := []kt{
		{lexer.KindKeyword, "set"}, {lexer.KindIdentifier, "x"}, {lexer.KindNumber, "42"}, {lexer.KindEOL, ""},
		{lexer.KindKeyword, "print"}, {lexer.KindString, "hello world"}, {lexer.KindEOL, ""},
		{lexer.KindArrayDecl, "array"}, {lexer.KindIdentifier, "a"}, {lexer.KindNumber, "3"}, {lexer.KindEOL, ""},
		{lexer.KindKeyword, "set"}, {lexer.KindIdentifier, "a"}, {lexer.KindSpecial, "["}, {lexer.KindNumber, "1"},
		{lexer.KindSpecial, "]"}, {lexer.KindNumber, "-5"}, {lexer.KindEOL, ""},
		{lexer.KindLoop, "for"}, {lexer.KindIdentifier, "i"}, {lexer.KindNumber, "0"}, {lexer.KindNumber, "5"}, {lexer.KindEOL, ""},
		{lexer.KindLoop, "end"}, {lexer.KindEOL, ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeEOLPerLine(t *testing.T) {
	src := "print 1\n\n# note\r\nprint x\nEXIT"
	tokens := lexer.Tokenize(src)

	eols := 0
	for _, tok := range tokens {
		if tok.Kind == lexer.KindEOL {
			eols++
		}
	}
	assert.Equal(t, 5, eols)
	assert.Equal(t, 5, tokens[len(tokens)-1].Line)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	got := strip(lexer.Tokenize(`print "open ended`))
	want := []kt{{lexer.KindKeyword, "print"}, {lexer.KindString, "open ended"}, {lexer.KindEOL, ""}}
	assert.Equal(t, want, got)
}

func TestTokenizeEmptyString(t *testing.T) {
	got := strip(lexer.Tokenize(`set s ""`))
	assert.Equal(t, kt{lexer.KindString, ""}, got[2])
}

func TestTokenizeBracketsSplitWords(t *testing.T) {
	got := strip(lexer.Tokenize("print a[i]"))
	want := []kt{
		{lexer.KindKeyword, "print"}, {lexer.KindIdentifier, "a"}, {lexer.KindSpecial, "["},
		{lexer.KindIdentifier, "i"}, {lexer.KindSpecial, "]"}, {lexer.KindEOL, ""},
	}
	assert.Equal(t, want, got)
}

func TestClassify(t *testing.T) {
	cases := map[string]lexer.Kind{
		"12":    lexer.KindNumber,
		"-3":    lexer.KindNumber,
		"3abc":  lexer.KindNumber,
		"-":     lexer.KindOperator,
		"<=":    lexer.KindOperator,
		"!=":    lexer.KindOperator,
		"print": lexer.KindKeyword,
		"PRINT": lexer.KindKeyword,
		"LET":   lexer.KindKeyword,
		"EXIT":  lexer.KindKeyword,
		"IF":    lexer.KindKeyword,
		"array": lexer.KindArrayDecl,
		"for":   lexer.KindLoop,
		"while": lexer.KindLoop,
		"in":    lexer.KindLoop,
		"end":   lexer.KindLoop,
		"Print": lexer.KindIdentifier,
		"@#!":   lexer.KindIdentifier,
	}
	for word, kind := range cases {
		assert.Equal(t, kind, lexer.Classify(word), "word %q", word)
	}
}

func TestScannerLineByLine(t *testing.T) {
	s := lexer.NewScanner("print 1\nprint 2\n")
	assert.True(t, s.Next())
	assert.Len(t, s.Tokens(), 3)
	assert.True(t, s.Next())
	assert.Len(t, s.Tokens(), 6)
	assert.False(t, s.Next())

	s.Reset("EXIT")
	assert.True(t, s.Next())
	assert.Equal(t, "EXIT", s.Tokens()[0].Text)
}

func FuzzTokenize(f *testing.F) {
	f.Add("set x 1\nprint x\n")
	f.Add("print \"unterminated\n# c\narray a[ 3 ]")
	f.Fuzz(func(t *testing.T, src string) {
		tokens := lexer.Tokenize(src)
		for _, tok := range tokens {
			if tok.Kind == lexer.KindEOL && tok.Text != "" {
				t.Fatalf("EOL token carries text %q", tok.Text)
			}
		}
		if len(tokens) > 0 && tokens[len(tokens)-1].Kind != lexer.KindEOL {
			t.Fatalf("stream does not end with EOL")
		}
	})
}
