package lexer

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// reservedWords maps every word the token set has a keyword type for.
var reservedWords = map[string]TokenType{
	"int":  Int,
	"if":   If,
	"else": Else,
}

// DefaultKeywords returns the reserved words recognized when Config.Keywords
// is nil, sorted.
func DefaultKeywords() []string {
	words := maps.Keys(reservedWords)
	slices.Sort(words)
	return words
}

// keywordNode is one state of the reserved-word prefix automaton. A node is
// terminal when the path from the root spells a complete keyword.
type keywordNode struct {
	children map[rune]*keywordNode
	typ      TokenType
	terminal bool
}

func (n *keywordNode) child(r rune) *keywordNode {
	if n == nil {
		return nil
	}
	return n.children[r]
}

type keywordTrie struct {
	root *keywordNode
}

func newKeywordTrie(words []string) (*keywordTrie, error) {
	root := &keywordNode{children: make(map[rune]*keywordNode)}
	for _, word := range words {
		typ, ok := reservedWords[word]
		if !ok {
			return nil, fmt.Errorf("lexer: %q is not a reserved word", word)
		}
		node := root
		for _, r := range word {
			next, ok := node.children[r]
			if !ok {
				next = &keywordNode{children: make(map[rune]*keywordNode)}
				node.children[r] = next
			}
			node = next
		}
		node.terminal = true
		node.typ = typ
	}
	return &keywordTrie{root: root}, nil
}

var defaultKeywordTrie = mustKeywordTrie(DefaultKeywords())

func mustKeywordTrie(words []string) *keywordTrie {
	trie, err := newKeywordTrie(words)
	if err != nil {
		panic(err)
	}
	return trie
}
