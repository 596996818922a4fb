/*
 * ecalox
 */

/*
Package scanner turns source text into an ordered token sequence.

The lexer runs as a goroutine driven by a state function (stateFn)
that emits onto a channel, closed once the input is exhausted.
*/
package scanner

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/loxlang/ecalox/internal/errs"
	"github.com/loxlang/ecalox/token"
)

// runeEOF is returned by next() once the input is exhausted.
const runeEOF = -1

/*
stateFn represents the current state of the scanner and returns the
next state, or nil when scanning is complete.
*/
type stateFn func(*scanner) stateFn

/*
scanner holds the state of one Scan invocation.
*/
type scanner struct {
	name     string
	input    string
	start    int // start offset of the lexeme being scanned
	pos      int // current cursor
	width    int // width in bytes of the last rune returned by next()
	line     int
	tokens   chan token.Token
	reporter errs.Reporter
}

/*
Scan lexes input and returns a channel of tokens terminated by a
single token.EOF, produced by a lexer running in its own goroutine.
The parser does not read this channel directly; it takes the slice
built by ScanToList.
*/
func Scan(name, input string, reporter errs.Reporter) chan token.Token {
	s := &scanner{name: name, input: input, line: 1, tokens: make(chan token.Token), reporter: reporter}
	go s.run()
	return s.tokens
}

/*
ScanToList drains Scan into a slice, the form the parser and tests
actually consume.
*/
func ScanToList(name, input string, reporter errs.Reporter) []token.Token {
	var tokens []token.Token
	for t := range Scan(name, input, reporter) {
		tokens = append(tokens, t)
	}
	return tokens
}

/*
run is the scanner's main loop.
*/
func (s *scanner) run() {
	for state := lexToken; state != nil; {
		state = state(s)
	}
	s.emit(token.EOF, "")
	close(s.tokens)
}

func (s *scanner) atEnd() bool {
	return s.pos >= len(s.input)
}

/*
next consumes and returns the next rune, or runeEOF at end of input.
*/
func (s *scanner) next() rune {
	if s.atEnd() {
		s.width = 0
		return runeEOF
	}
	r, w := utf8.DecodeRuneInString(s.input[s.pos:])
	s.width = w
	s.pos += w
	if r == '\n' {
		s.line++
	}
	return r
}

/*
peek returns the next rune without consuming it.
*/
func (s *scanner) peek() rune {
	if s.atEnd() {
		return runeEOF
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.pos:])
	return r
}

/*
peekNext returns the rune after the next one without consuming either.
*/
func (s *scanner) peekNext() rune {
	if s.atEnd() {
		return runeEOF
	}
	_, w := utf8.DecodeRuneInString(s.input[s.pos:])
	if s.pos+w >= len(s.input) {
		return runeEOF
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.pos+w:])
	return r
}

/*
backup un-consumes the last rune returned by next. A newline consumed
this way decrements the line counter again.
*/
func (s *scanner) backup() {
	s.pos -= s.width
	if s.width > 0 && s.input[s.pos] == '\n' {
		s.line--
	}
}

/*
match consumes the next rune if it equals r.
*/
func (s *scanner) match(r rune) bool {
	if s.peek() != r {
		return false
	}
	s.next()
	return true
}

func (s *scanner) startNew() {
	s.start = s.pos
}

func (s *scanner) emit(kind token.Kind, literal interface{}) {
	s.tokens <- token.New(kind, s.input[s.start:s.pos], literal, s.line)
}

func (s *scanner) errorf(msg string) {
	s.reporter.Report(s.line, "", msg)
}

/*
lexToken is the top-level scanner state: skip one token's worth of
whitespace/comments, then dispatch on the first rune.
*/
func lexToken(s *scanner) stateFn {
	for {
		s.startNew()
		r := s.next()

		switch r {
		case runeEOF:
			return nil
		case ' ', '\r', '\t', '\n':
			continue
		case '/':
			if s.peek() == '/' {
				for s.peek() != '\n' && !s.atEnd() {
					s.next()
				}
				continue
			}
			s.emit(token.Slash, nil)
			continue
		case '(':
			s.emit(token.LeftParen, nil)
		case ')':
			s.emit(token.RightParen, nil)
		case '{':
			s.emit(token.LeftBrace, nil)
		case '}':
			s.emit(token.RightBrace, nil)
		case ',':
			s.emit(token.Comma, nil)
		case '.':
			s.emit(token.Dot, nil)
		case '-':
			s.emit(token.Minus, nil)
		case '+':
			s.emit(token.Plus, nil)
		case ';':
			s.emit(token.Semicolon, nil)
		case '*':
			s.emit(token.Star, nil)
		case '!':
			if s.match('=') {
				s.emit(token.BangEqual, nil)
			} else {
				s.emit(token.Bang, nil)
			}
		case '=':
			if s.match('=') {
				s.emit(token.EqualEqual, nil)
			} else {
				s.emit(token.Equal, nil)
			}
		case '<':
			if s.match('=') {
				s.emit(token.LessEqual, nil)
			} else {
				s.emit(token.Less, nil)
			}
		case '>':
			if s.match('=') {
				s.emit(token.GreaterEqual, nil)
			} else {
				s.emit(token.Greater, nil)
			}
		case '"':
			lexString(s)
		default:
			if isDigit(r) {
				lexNumber(s)
			} else if isAlpha(r) {
				lexIdentifier(s)
			} else {
				s.errorf("Unexpected character.")
			}
		}

		return lexToken
	}
}

/*
lexString consumes a "..." literal. The opening quote has already been
consumed by lexToken.
*/
func lexString(s *scanner) {
	for s.peek() != '"' && !s.atEnd() {
		s.next()
	}

	if s.atEnd() {
		s.errorf("Unterminated string.")
		return
	}

	s.next() // closing quote

	value := s.input[s.start+1 : s.pos-1]
	s.emit(token.String, value)
}

/*
lexNumber consumes a NUMBER literal: digits, optionally followed by a
'.' and more digits. A leading/trailing '.' is not part of the number.
*/
func lexNumber(s *scanner) {
	for isDigit(s.peek()) {
		s.next()
	}

	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.next() // consume the '.'
		for isDigit(s.peek()) {
			s.next()
		}
	}

	value, _ := strconv.ParseFloat(s.input[s.start:s.pos], 64)
	s.emit(token.Number, value)
}

/*
lexIdentifier consumes an identifier or keyword.
*/
func lexIdentifier(s *scanner) {
	for isAlphaNumeric(s.peek()) {
		s.next()
	}

	text := s.input[s.start:s.pos]
	if kind, ok := token.Keywords[text]; ok {
		s.emit(kind, nil)
		return
	}
	s.emit(token.Identifier, nil)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
