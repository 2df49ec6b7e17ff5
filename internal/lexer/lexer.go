// Package lexer implements the single-pass byte-to-token scanner described
// in spec §4.1: a lazy token sequence, whitespace and end-of-line filtered
// before delivery, terminated by an end-of-file sentinel.
//
// Recognition order is first-match-wins: keywords, then operators (longest
// match within the family), then literals, then end markers, identifiers,
// punctuation, and finally a generic fall-through run. Column positions
// count Unicode code points, not bytes, following the teacher lexer's
// convention for multi-byte input.
package lexer

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cwbudde/go-lox/internal/token"
)

// Lexer scans source bytes into a lazy sequence of Tokens.
type Lexer struct {
	input        string
	position     int // byte offset of ch
	readPosition int // byte offset of the next rune
	line         int
	column       int
	ch           rune

	logger *slog.Logger
	halted bool // set once an unrecognized prefix is hit; no recovery inside the lexer
	errMsg string
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithLogger routes lexer diagnostics (illegal input) to the given logger
// instead of the default slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lexer) { l.logger = logger }
}

// New creates a Lexer over the given source text.
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// Halted reports whether the lexer stopped early because of an
// unrecognizable input prefix. The caller sees a premature EndOfFile.
func (l *Lexer) Halted() bool { return l.halted }

// HaltMessage returns the diagnostic for why the lexer halted, or "" if it
// did not.
func (l *Lexer) HaltMessage() string { return l.errMsg }

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

func (l *Lexer) halt(msg string, pos token.Position) {
	l.halted = true
	l.errMsg = msg
	l.logger.Error("lex: unrecognized input", "message", msg, "line", pos.Line, "column", pos.Column)
}

// Next returns the next meaningful token: whitespace (space/tab) and
// end-of-line are consumed internally and never returned. Once EndOfFile (or
// a halt) has been produced, subsequent calls keep returning EndOfFile.
func (l *Lexer) Next() token.Token {
	l.skipWhitespaceAndNewlines()

	pos := l.currentPos()

	if l.halted || l.ch == 0 {
		return token.Token{Kind: token.EOF, Lexeme: "", Pos: pos}
	}

	switch {
	case isLetterStart(l.ch):
		return l.readIdentifierOrKeywordOrLiteralWord(pos)
	case isDigit(l.ch):
		return l.readNumber(pos)
	}

	if tok, ok := l.readOperatorOrPunctuation(pos); ok {
		return tok
	}

	switch l.ch {
	case '\'', '"':
		return l.readString(pos)
	}

	// Nothing recognized: halt (no recovery inside the lexer).
	run := l.readGenericRun()
	l.halt("unrecognized input: "+run, pos)
	return token.Token{Kind: token.EOF, Lexeme: "", Pos: pos}
}

func (l *Lexer) skipWhitespaceAndNewlines() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readChar()
		case '\n':
			l.line++
			l.column = 0
			l.readChar()
		default:
			return
		}
	}
}

// readOperatorOrPunctuation handles the fixed operator/punctuation alphabet,
// matching the longest operator first (e.g. "!=" before "!").
func (l *Lexer) readOperatorOrPunctuation(pos token.Position) (token.Token, bool) {
	ch := l.ch
	switch ch {
	case '!':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return token.Token{Kind: token.Operator, Lexeme: token.NotEq, Pos: pos}, true
		}
		return token.Token{Kind: token.Operator, Lexeme: token.Not, Pos: pos}, true
	case '=':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return token.Token{Kind: token.Operator, Lexeme: token.Eq, Pos: pos}, true
		}
		return token.Token{Kind: token.Operator, Lexeme: token.Assign, Pos: pos}, true
	case '>':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return token.Token{Kind: token.Operator, Lexeme: token.GreaterE, Pos: pos}, true
		}
		return token.Token{Kind: token.Operator, Lexeme: token.Greater, Pos: pos}, true
	case '<':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return token.Token{Kind: token.Operator, Lexeme: token.LessE, Pos: pos}, true
		}
		return token.Token{Kind: token.Operator, Lexeme: token.Less, Pos: pos}, true
	case '&':
		l.readChar()
		if l.ch == '&' {
			l.readChar()
			return token.Token{Kind: token.Operator, Lexeme: token.AndAnd, Pos: pos}, true
		}
		return token.Token{Kind: token.Punctuation, Lexeme: token.Amp, Pos: pos}, true
	case '|':
		l.readChar()
		if l.ch == '|' {
			l.readChar()
			return token.Token{Kind: token.Operator, Lexeme: token.OrOr, Pos: pos}, true
		}
		return token.Token{Kind: token.Punctuation, Lexeme: token.Pipe, Pos: pos}, true
	case '+':
		l.readChar()
		return token.Token{Kind: token.Operator, Lexeme: token.Plus, Pos: pos}, true
	case '-':
		l.readChar()
		return token.Token{Kind: token.Operator, Lexeme: token.Minus, Pos: pos}, true
	case '*':
		l.readChar()
		return token.Token{Kind: token.Operator, Lexeme: token.Star, Pos: pos}, true
	case '/':
		l.readChar()
		return token.Token{Kind: token.Operator, Lexeme: token.Slash, Pos: pos}, true
	case '(':
		l.readChar()
		return token.Token{Kind: token.Punctuation, Lexeme: token.LParen, Pos: pos}, true
	case ')':
		l.readChar()
		return token.Token{Kind: token.Punctuation, Lexeme: token.RParen, Pos: pos}, true
	case '{':
		l.readChar()
		return token.Token{Kind: token.Punctuation, Lexeme: token.LBrace, Pos: pos}, true
	case '}':
		l.readChar()
		return token.Token{Kind: token.Punctuation, Lexeme: token.RBrace, Pos: pos}, true
	case ';':
		l.readChar()
		return token.Token{Kind: token.Punctuation, Lexeme: token.Semi, Pos: pos}, true
	case ':':
		l.readChar()
		return token.Token{Kind: token.Punctuation, Lexeme: token.Colon, Pos: pos}, true
	case ',':
		l.readChar()
		return token.Token{Kind: token.Punctuation, Lexeme: token.Comma, Pos: pos}, true
	case '.':
		l.readChar()
		return token.Token{Kind: token.Punctuation, Lexeme: token.Dot, Pos: pos}, true
	}
	return token.Token{}, false
}

func isLetterStart(ch rune) bool {
	return ch == '_' || ch == '$' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch > 127
}

func isIdentContinue(ch rune) bool {
	return isLetterStart(ch) || isDigit(ch)
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

// readIdentifierOrKeywordOrLiteralWord reads a run of identifier characters
// and classifies it: keyword, boolean/null literal, or plain identifier.
// Booleans and null are attempted before plain identifiers per spec §4.1.
func (l *Lexer) readIdentifierOrKeywordOrLiteralWord(pos token.Position) token.Token {
	start := l.position
	for isIdentContinue(l.ch) {
		l.readChar()
	}
	word := l.input[start:l.position]

	switch word {
	case "true":
		return token.Token{Kind: token.Boolean, Lexeme: word, Literal: true, Pos: pos}
	case "false":
		return token.Token{Kind: token.Boolean, Lexeme: word, Literal: false, Pos: pos}
	case "null":
		return token.Token{Kind: token.Null, Lexeme: word, Pos: pos}
	}
	if _, ok := token.Keywords[word]; ok {
		return token.Token{Kind: token.Keyword, Lexeme: word, Pos: pos}
	}
	return token.Token{Kind: token.Identifier, Lexeme: word, Pos: pos}
}

// readNumber reads a numeric literal: digit runs separated by optional '_'
// group separators, with an optional fractional part under the same rule.
// Underscores are stripped before parsing as IEEE-754 double.
func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.position
	l.consumeDigitRun()
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume '.'
		l.consumeDigitRun()
	}
	lexeme := l.input[start:l.position]
	clean := strings.ReplaceAll(lexeme, "_", "")
	n, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		l.halt("invalid numeric literal: "+lexeme, pos)
		return token.Token{Kind: token.EOF, Pos: pos}
	}
	return token.Token{Kind: token.Number, Lexeme: lexeme, Literal: n, Pos: pos}
}

func (l *Lexer) consumeDigitRun() {
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
}

// readString reads a quoted string literal body verbatim, with no escape
// processing, up to the matching closing quote.
func (l *Lexer) readString(pos token.Position) token.Token {
	quote := l.ch
	l.readChar() // skip opening quote

	var sb strings.Builder
	for l.ch != quote && l.ch != 0 {
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == 0 {
		l.halt("unterminated string literal", pos)
		return token.Token{Kind: token.EOF, Pos: pos}
	}
	l.readChar() // skip closing quote
	return token.Token{Kind: token.String, Lexeme: sb.String(), Literal: sb.String(), Pos: pos}
}

// readGenericRun reads the remainder of the current line as the fall-through
// diagnostic payload for a halt.
func (l *Lexer) readGenericRun() string {
	start := l.position
	for l.ch != 0 && l.ch != '\n' {
		l.readChar()
	}
	return l.input[start:l.position]
}

// Tokens drains the lexer eagerly into a slice, stopping at (and including)
// the terminal EndOfFile token, for callers that want the whole stream at
// once instead of pulling tokens one at a time with Next.
func (l *Lexer) Tokens() []token.Token {
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}
