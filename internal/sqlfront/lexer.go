package sqlfront

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tokenKind enumerates the lexical categories the parser consumes. The
// sentinel-range style (tokOperatorBeg/End) is the standard Go convention
// for bracketing a contiguous sub-range of an iota enum, not something
// specific to SQL tokenizers.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord           // identifier or bare (unquoted) value; keyword-ness is decided by the parser
	tokString         // single-quoted string literal
	tokComma
	tokLParen
	tokRParen
	tokStar

	tokOperatorBeg
	tokOpGE // >=
	tokOpLE // <=
	tokOpNE // != or <>
	tokOpEQ // =
	tokOpGT // >
	tokOpLT // <
	tokOperatorEnd
)

type token struct {
	kind tokenKind
	text string // literal text; for tokString, the unquoted contents
}

var foldCaser = cases.Fold()

// foldEqual reports whether a and b are equal under Unicode case folding,
// used for case-insensitive keyword matching (§4.4 of the design).
func foldEqual(a, b string) bool {
	return foldCaser.String(a) == foldCaser.String(b)
}

// FoldKey folds s to its canonical case-insensitive form using the same
// Unicode fold as keyword matching, trimmed of surrounding whitespace. It
// is exported so callers outside this package (the planner's cache key)
// can normalize text the same way the lexer does, instead of keeping a
// second, looser case-folding rule in sync by hand.
func FoldKey(s string) string {
	return foldCaser.String(strings.TrimSpace(s))
}

// lexer tokenizes a single SQL statement. It assumes the caller has already
// trimmed surrounding whitespace from the full input (the parser contract
// requires consuming the entire trimmed input).
type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isIdentByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// next returns the next token and advances the cursor. At end of input it
// returns a tokEOF token forever.
func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.input) {
		return token{kind: tokEOF}, nil
	}

	c := l.input[l.pos]
	switch c {
	case ',':
		l.pos++
		return token{kind: tokComma, text: ","}, nil
	case '(':
		l.pos++
		return token{kind: tokLParen, text: "("}, nil
	case ')':
		l.pos++
		return token{kind: tokRParen, text: ")"}, nil
	case '*':
		l.pos++
		return token{kind: tokStar, text: "*"}, nil
	case '\'':
		return l.lexQuotedString()
	}

	// Longest-match-first operator tokenization (B6): >= and <= and != must
	// be tried before their single-character prefixes, and <> before the
	// bare < fallback.
	if op, ok := l.lexOperator(); ok {
		return op, nil
	}

	if isIdentByte(c) {
		start := l.pos
		for l.pos < len(l.input) && isIdentByte(l.input[l.pos]) {
			l.pos++
		}
		return token{kind: tokWord, text: l.input[start:l.pos]}, nil
	}

	return token{}, parseErrorf("unexpected character %q at position %d", c, l.pos)
}

func (l *lexer) lexOperator() (token, bool) {
	rest := l.input[l.pos:]
	two := ""
	if len(rest) >= 2 {
		two = rest[:2]
	}
	switch two {
	case ">=":
		l.pos += 2
		return token{kind: tokOpGE, text: ">="}, true
	case "<=":
		l.pos += 2
		return token{kind: tokOpLE, text: "<="}, true
	case "!=":
		l.pos += 2
		return token{kind: tokOpNE, text: "!="}, true
	case "<>":
		l.pos += 2
		return token{kind: tokOpNE, text: "<>"}, true
	}
	switch rest[0] {
	case '=':
		l.pos++
		return token{kind: tokOpEQ, text: "="}, true
	case '>':
		l.pos++
		return token{kind: tokOpGT, text: ">"}, true
	case '<':
		l.pos++
		return token{kind: tokOpLT, text: "<"}, true
	}
	return token{}, false
}

func (l *lexer) lexQuotedString() (token, error) {
	start := l.pos
	l.pos++ // consume opening quote
	var sb strings.Builder
	for l.pos < len(l.input) {
		if l.input[l.pos] == '\'' {
			l.pos++
			return token{kind: tokString, text: sb.String()}, nil
		}
		sb.WriteByte(l.input[l.pos])
		l.pos++
	}
	return token{}, parseErrorf("unterminated string literal starting at position %d", start)
}
