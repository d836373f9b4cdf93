package lexer

import (
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"
)

// EOFPolicy decides what happens to a token that is still being built when
// the input ends.
type EOFPolicy uint8

const (
	// EOFFlush emits the pending token.
	EOFFlush EOFPolicy = iota
	// EOFDrop discards the pending token without a diagnostic.
	EOFDrop
	// EOFFail fails the call with ErrUnterminatedToken.
	EOFFail
)

func (p EOFPolicy) String() string {
	switch p {
	case EOFFlush:
		return "flush"
	case EOFDrop:
		return "drop"
	case EOFFail:
		return "fail"
	default:
		return fmt.Sprintf("EOFPolicy(%d)", uint8(p))
	}
}

// ParseEOFPolicy accepts the String form of a policy.
func ParseEOFPolicy(s string) (EOFPolicy, error) {
	switch s {
	case "flush":
		return EOFFlush, nil
	case "drop":
		return EOFDrop, nil
	case "fail":
		return EOFFail, nil
	}
	return 0, fmt.Errorf("unknown end-of-input policy %q (want flush, drop or fail)", s)
}

// Config controls a tokenization. The zero value is the default behavior:
// flush the pending token at end of input, skip unrecognized characters,
// single character '=' and the full reserved word set.
type Config struct {
	EOF EOFPolicy

	// Strict fails on the first character outside the vocabulary instead
	// of skipping it.
	Strict bool

	// GreedyAssignment keeps appending non-blank characters to an '='
	// token, as the reference lexer did.
	GreedyAssignment bool

	// Keywords restricts the reserved words that are recognized. Nil means
	// DefaultKeywords; an empty non-nil slice disables keywords.
	Keywords []string

	// BlankKeywordBoundary only accepts a keyword when a blank follows it.
	// A keyword followed by anything else is an identifier.
	BlankKeywordBoundary bool

	Logger *zap.Logger
}

// LegacyConfig reproduces the reference lexer: the last pending token is
// dropped, '=' is greedy and only "int" followed by a blank is a keyword.
func LegacyConfig() Config {
	return Config{
		EOF:                  EOFDrop,
		GreedyAssignment:     true,
		Keywords:             []string{"int"},
		BlankKeywordBoundary: true,
	}
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c Config) newMachine(input string) (*machine, error) {
	keywords := defaultKeywordTrie
	if c.Keywords != nil {
		trie, err := newKeywordTrie(c.Keywords)
		if err != nil {
			return nil, err
		}
		keywords = trie
	}
	return &machine{
		input:         input,
		keywords:      keywords,
		greedyAssign:  c.GreedyAssignment,
		blankBoundary: c.BlankKeywordBoundary,
	}, nil
}

// Tokenize scans the whole input and returns a stream positioned at its first
// token. On error no stream is returned.
func Tokenize(input string, cfg Config) (*TokenStream, error) {
	tokens, _, err := scan(input, cfg, true)
	if err != nil {
		return nil, err
	}
	return newTokenStream(tokens), nil
}

// Diagnose scans the whole input and reports every unrecognized character,
// plus an unterminated token when cfg.EOF is EOFFail. Unlike Tokenize it
// does not stop at the first problem, and it treats unrecognized characters
// as problems whether or not cfg.Strict is set. The returned error is only
// set for an invalid Config.
func Diagnose(input string, cfg Config) ([]*LexError, error) {
	cfg.Strict = true
	_, diags, err := scan(input, cfg, false)
	return diags, err
}

func scan(input string, cfg Config, failFast bool) ([]Token, []*LexError, error) {
	m, err := cfg.newMachine(input)
	if err != nil {
		return nil, nil, err
	}
	log := cfg.logger()

	var (
		st      = stateInitial
		p       pending
		tokens  = make([]Token, 0, len(input)/2+1)
		diags   []*LexError
		line    = 1
		column  = 0
		skipped = 0
	)
	for offset := 0; offset < len(input); {
		r, width := utf8.DecodeRuneInString(input[offset:])
		column++
		at := Position{Offset: offset, Line: line, Column: column}

		res := m.step(st, p, r, at, width)
		if res.ok {
			tokens = append(tokens, res.emitted)
		}
		if res.unrecognized {
			if cfg.Strict {
				e := &LexError{Code: ErrUnrecognizedCharacter, Pos: at, Char: r, source: input}
				if failFast {
					return nil, nil, e
				}
				diags = append(diags, e)
			}
			skipped++
			log.Debug("skipped unrecognized character",
				zap.String("char", string(r)),
				zap.Stringer("pos", at))
		}
		st, p = res.state, res.pending

		if r == '\n' {
			line++
			column = 0
		}
		offset += width
	}

	if tok, ok := m.finish(st, p); ok {
		switch cfg.EOF {
		case EOFFlush:
			tokens = append(tokens, tok)
		case EOFDrop:
			log.Debug("dropped pending token at end of input",
				zap.Stringer("type", tok.typ),
				zap.String("text", tok.literal))
		case EOFFail:
			e := &LexError{
				Code:    ErrUnterminatedToken,
				Pos:     tok.pos,
				Partial: tok.literal,
				Kind:    tok.typ,
				source:  input,
			}
			if failFast {
				return nil, nil, e
			}
			diags = append(diags, e)
		}
	}

	log.Debug("tokenized input",
		zap.Int("bytes", len(input)),
		zap.Int("tokens", len(tokens)),
		zap.Int("skipped", skipped))
	return tokens, diags, nil
}

// MustTokenize tokenizes with the default Config and panics on error. The
// default Config never fails, so this only panics on a package bug.
func MustTokenize(input string) *TokenStream {
	s, err := Tokenize(input, Config{})
	if err != nil {
		panic(err)
	}
	return s
}
