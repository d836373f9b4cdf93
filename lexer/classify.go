package lexer

func isAlpha(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isBlank matches the separators between tokens. Carriage returns are not
// blanks and count as unrecognized characters.
func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

func isIdentifierRune(r rune) bool {
	return isAlpha(r) || isDigit(r)
}

var operatorTypes = map[rune]TokenType{
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	';': SemiColon,
	'(': LeftParen,
	')': RightParen,
}
