package lexer

// TokenStream is a cursor over a finished token sequence. The sequence never
// changes after tokenization; only the cursor moves. A stream is meant for a
// single reader and does no locking.
type TokenStream struct {
	tokens []Token
	pos    int
}

func newTokenStream(tokens []Token) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Read returns the token at the cursor and advances past it. It reports false
// once the stream is exhausted.
func (s *TokenStream) Read() (Token, bool) {
	if s.pos < len(s.tokens) {
		tok := s.tokens[s.pos]
		s.pos++
		return tok, true
	}
	return Token{}, false
}

// Peek returns the token Read would return without moving the cursor.
func (s *TokenStream) Peek() (Token, bool) {
	if s.pos < len(s.tokens) {
		return s.tokens[s.pos], true
	}
	return Token{}, false
}

// Unread steps the cursor back by one token. It does nothing at the start.
func (s *TokenStream) Unread() {
	if s.pos > 0 {
		s.pos--
	}
}

func (s *TokenStream) Position() int {
	return s.pos
}

// SetPosition moves the cursor to pos when pos indexes a token. Any other
// value, including Len(), leaves the cursor where it is.
func (s *TokenStream) SetPosition(pos int) {
	if pos >= 0 && pos < len(s.tokens) {
		s.pos = pos
	}
}

func (s *TokenStream) Len() int {
	return len(s.tokens)
}

// Remaining is the number of tokens Read can still return.
func (s *TokenStream) Remaining() int {
	return len(s.tokens) - s.pos
}

// Tokens returns a copy of the full sequence, independent of the cursor.
func (s *TokenStream) Tokens() []Token {
	out := make([]Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Reset moves the cursor back to the first token.
func (s *TokenStream) Reset() {
	s.pos = 0
}

// Mark records the cursor for a later Rewind.
type Mark int

func (s *TokenStream) Mark() Mark {
	return Mark(s.pos)
}

// Rewind restores a cursor saved with Mark. Unlike SetPosition it can return
// to the end of the stream, since a mark taken there is a valid cursor.
func (s *TokenStream) Rewind(m Mark) {
	if int(m) == len(s.tokens) {
		s.pos = len(s.tokens)
		return
	}
	s.SetPosition(int(m))
}
