package lexer

// state is a node of the tokenizer automaton. Per-kind states are entered from
// stateInitial by classifying the first character of a token.
type state uint8

const (
	stateInitial state = iota
	stateKeyword       // first letters still match a reserved word prefix
	stateIdent
	stateIntLiteral
	stateGT
	stateGE
	stateAssignment
	stateOperator // single character operator or punctuation, already complete
)

// pending is the token under construction: its kind so far and the byte range
// of input it covers.
type pending struct {
	typ   TokenType
	start int
	end   int
	pos   Position
	node  *keywordNode
}

func (p pending) extend(width int) pending {
	p.end += width
	return p
}

// stepResult is what one character does to the automaton. At most one token is
// emitted per character because starting a token never completes one.
type stepResult struct {
	state        state
	pending      pending
	emitted      Token
	ok           bool
	unrecognized bool
}

// machine holds the fixed parameters of a tokenization. It carries no scan
// state; step is a pure function of its arguments.
type machine struct {
	input         string
	keywords      *keywordTrie
	greedyAssign  bool
	blankBoundary bool
}

func (m *machine) step(st state, p pending, r rune, at Position, width int) stepResult {
	switch st {
	case stateInitial:
		return m.begin(r, at, width)

	case stateKeyword:
		if isIdentifierRune(r) {
			if next := p.node.child(r); next != nil {
				p.node = next
				return stepResult{state: stateKeyword, pending: p.extend(width)}
			}
			p.node = nil
			return stepResult{state: stateIdent, pending: p.extend(width)}
		}
		return m.emitThenBegin(m.resolveKeyword(p, isBlank(r)), r, at, width)

	case stateIdent:
		if isIdentifierRune(r) {
			return stepResult{state: stateIdent, pending: p.extend(width)}
		}

	case stateIntLiteral:
		if isDigit(r) {
			return stepResult{state: stateIntLiteral, pending: p.extend(width)}
		}

	case stateGT:
		if r == '=' {
			p.typ = GE
			return stepResult{state: stateGE, pending: p.extend(width)}
		}

	case stateAssignment:
		if m.greedyAssign && !isBlank(r) {
			p.typ = Assignment
			return stepResult{state: stateAssignment, pending: p.extend(width)}
		}

	case stateGE, stateOperator:
	}
	return m.emitThenBegin(p, r, at, width)
}

// begin classifies the first character of a token from the initial state.
func (m *machine) begin(r rune, at Position, width int) stepResult {
	p := pending{start: at.Offset, end: at.Offset + width, pos: at}
	switch {
	case isAlpha(r):
		p.typ = Identifier
		if node := m.keywords.root.child(r); node != nil {
			p.node = node
			return stepResult{state: stateKeyword, pending: p}
		}
		return stepResult{state: stateIdent, pending: p}
	case isDigit(r):
		p.typ = IntLiteral
		return stepResult{state: stateIntLiteral, pending: p}
	case r == '>':
		p.typ = GT
		return stepResult{state: stateGT, pending: p}
	case r == '=':
		p.typ = Assignment
		return stepResult{state: stateAssignment, pending: p}
	case isBlank(r):
		return stepResult{state: stateInitial}
	}
	if typ, ok := operatorTypes[r]; ok {
		p.typ = typ
		return stepResult{state: stateOperator, pending: p}
	}
	return stepResult{state: stateInitial, unrecognized: true}
}

func (m *machine) emitThenBegin(done pending, r rune, at Position, width int) stepResult {
	res := m.begin(r, at, width)
	res.emitted = m.token(done)
	res.ok = true
	return res
}

// resolveKeyword decides the kind of a word that ended while still inside the
// reserved-word automaton. Only a complete keyword followed by an acceptable
// boundary is a keyword; every other prefix is an identifier.
func (m *machine) resolveKeyword(p pending, followedByBlank bool) pending {
	p.typ = Identifier
	if p.node != nil && p.node.terminal && (followedByBlank || !m.blankBoundary) {
		p.typ = p.node.typ
	}
	p.node = nil
	return p
}

// finish returns the token still under construction when input runs out.
func (m *machine) finish(st state, p pending) (Token, bool) {
	switch st {
	case stateInitial:
		return Token{}, false
	case stateKeyword:
		p = m.resolveKeyword(p, true)
	}
	return m.token(p), true
}

func (m *machine) token(p pending) Token {
	return Token{typ: p.typ, literal: m.input[p.start:p.end], pos: p.pos}
}
