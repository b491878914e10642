package lexer

// Kind represents the type of token identified by the scanner.
type Kind uint8

const (
	KindEOL Kind = iota
	KindNumber
	KindIdentifier
	KindKeyword   // print, set, input, LET, PRINT, EXIT, IF
	KindArrayDecl // array
	KindLoop      // for, end, in, while
	KindOperator  // + - * / == != < > <= >=
	KindSpecial   // [ ]
	KindString
)

var kindNames = [...]string{
	KindEOL:        "EOL",
	KindNumber:     "Number",
	KindIdentifier: "Identifier",
	KindKeyword:    "Keyword",
	KindArrayDecl:  "ArrayDecl",
	KindLoop:       "Loop",
	KindOperator:   "Operator",
	KindSpecial:    "Special",
	KindString:     "String",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Token is a classified lexical unit. Line is 1-based.
type Token struct {
	Kind Kind
	Text string
	Line int
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

var statementKeywords = map[string]Kind{
	"print": KindKeyword,
	"set":   KindKeyword,
	"input": KindKeyword,
	"array": KindArrayDecl,
}

var loopKeywords = map[string]bool{
	"for":   true,
	"end":   true,
	"in":    true,
	"while": true,
}

var operators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
}

// legacy uppercase spellings kept for old scripts
var legacyKeywords = map[string]bool{
	"LET":   true,
	"PRINT": true,
	"EXIT":  true,
	"IF":    true,
}
