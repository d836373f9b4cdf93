// Package lexer tokenizes a small imperative language made of integer
// declarations, assignments and arithmetic expression statements:
//
//	programme           -> intDeclare | expressionStatement | assignmentStatement
//	intDeclare          -> 'int' Id ( '=' additive ) ';'
//	expressionStatement -> additive ';'
//	additive            -> multiplicative ( ('+' | '-') multiplicative )*
//	multiplicative      -> primary ( ('*' | '/') primary )*
//	primary             -> IntLiteral | Id | '(' additive ')'
//
// Tokenize runs a deterministic finite automaton over the whole input and
// returns a TokenStream, a cursor with Read, Peek, Unread and absolute seeks
// for backtracking parsers. Reserved words are recognized by a prefix
// automaton that falls back to an identifier as soon as a word deviates
// from, or extends past, every keyword.
//
// Blanks (space, tab, newline) separate tokens. Other characters outside the
// vocabulary are skipped unless Config.Strict is set. LegacyConfig restores
// the quirks of the reference lexer, including dropping the final token.
package lexer
