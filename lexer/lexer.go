// Package lexer turns gorb source text into a stream of tokens.
package lexer

import (
	"io"

	"github.com/teatov/gorb/token"
)

// New reads all of r into memory and returns a Lexer over it. file is an
// optional label attached to every emitted token for diagnostics; pass
// the empty string when there is none (e.g. REPL input).
func New(r io.Reader, file string) *Lexer {
	buf, _ := io.ReadAll(r)
	l := &Lexer{
		input: buf,
		file:  file,
		pos:   token.Position{Line: 1, Column: 0},
	}
	l.readChar()
	return l
}

// NewFromString is a convenience wrapper around New for callers that
// already have the source in memory (the REPL, tests).
func NewFromString(input, file string) *Lexer {
	l := &Lexer{
		input: []byte(input),
		file:  file,
		pos:   token.Position{Line: 1, Column: 0},
	}
	l.readChar()
	return l
}

// Lexer is a pure function of its input: it scans an in-memory byte
// buffer one byte at a time, tracking line and column as it goes.
type Lexer struct {
	input        []byte
	file         string
	position     int
	readPosition int
	ch           byte
	pos          token.Position
	lineStart    int
}

// NextToken returns the next token in the stream. Once it returns a
// token.EOF it keeps returning token.EOF forever.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	var tok token.Token

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			ch := l.ch
			l.readChar()
			tok = l.tokenAt(token.EQUALS, string(ch)+string(l.ch))
		} else {
			tok = l.newToken(token.ASSIGN)
		}
	case '+':
		tok = l.newToken(token.PLUS)
	case '-':
		tok = l.newToken(token.MINUS)
	case '!':
		if l.peekChar() == '=' {
			ch := l.ch
			l.readChar()
			tok = l.tokenAt(token.NOT_EQUALS, string(ch)+string(l.ch))
		} else {
			tok = l.newToken(token.BANG)
		}
	case '*':
		tok = l.newToken(token.ASTERISK)
	case '/':
		tok = l.newToken(token.SLASH)
	case '<':
		tok = l.newToken(token.LESS_THAN)
	case '>':
		tok = l.newToken(token.GREATER_THAN)
	case ',':
		tok = l.newToken(token.COMMA)
	case ':':
		tok = l.newToken(token.COLON)
	case ';':
		tok = l.newToken(token.SEMICOLON)
	case '(':
		tok = l.newToken(token.PAREN_OPEN)
	case ')':
		tok = l.newToken(token.PAREN_CLOSE)
	case '{':
		tok = l.newToken(token.BRACE_OPEN)
	case '}':
		tok = l.newToken(token.BRACE_CLOSE)
	case '[':
		tok = l.newToken(token.BRACKET_OPEN)
	case ']':
		tok = l.newToken(token.BRACKET_CLOSE)
	case '"':
		pos := l.pos
		literal := l.readString()
		return token.Token{Kind: token.STRING, Literal: literal, Position: pos, LineText: l.currentLineText(), File: l.file}
	case 0:
		tok = l.tokenAt(token.EOF, "")
	default:
		switch {
		case isLetter(l.ch):
			pos := l.pos
			lit := l.readIdentifier()
			return token.Token{Kind: token.LookupIdentifier(lit), Literal: lit, Position: pos, LineText: l.currentLineText(), File: l.file}
		case isDigit(l.ch):
			pos := l.pos
			lit := l.readNumber()
			return token.Token{Kind: token.INTEGER, Literal: lit, Position: pos, LineText: l.currentLineText(), File: l.file}
		default:
			tok = l.newToken(token.ILLEGAL)
		}
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(kind token.Kind) token.Token {
	return l.tokenAt(kind, string(l.ch))
}

func (l *Lexer) tokenAt(kind token.Kind, literal string) token.Token {
	return token.Token{
		Kind:     kind,
		Literal:  literal,
		Position: l.pos,
		LineText: l.currentLineText(),
		File:     l.file,
	}
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.pos.Column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		if l.ch == '\n' {
			l.pos.Line++
			l.pos.Column = 0
			l.lineStart = l.readPosition
		}
		l.readChar()
	}
}

func (l *Lexer) currentLineText() string {
	end := l.lineStart
	for end < len(l.input) && l.input[end] != '\n' {
		end++
	}
	return string(l.input[l.lineStart:end])
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) {
		l.readChar()
	}
	return string(l.input[start:l.position])
}

func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return string(l.input[start:l.position])
}

// readString consumes the opening quote, the body (applying the
// recognized escapes), and the closing quote if present. It is not an
// error for a string to run to end-of-input unterminated; the caller
// sees whatever was decoded.
func (l *Lexer) readString() string {
	var out []byte
	l.readChar() // skip opening quote

	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			switch l.peekChar() {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case '\\':
				out = append(out, '\\')
			case '"':
				out = append(out, '"')
			default:
				out = append(out, l.peekChar())
			}
			l.readChar()
			l.readChar()
			continue
		}
		out = append(out, l.ch)
		l.readChar()
	}

	if l.ch == '"' {
		l.readChar()
	}
	return string(out)
}
