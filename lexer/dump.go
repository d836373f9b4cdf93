package lexer

import (
	"bufio"
	"fmt"
	"io"
)

const dumpHeader = "text\t\ttype"

// Dump reads the stream to exhaustion and writes each token as a
// "text\t\ttype" line below the same header.
func Dump(w io.Writer, s *TokenStream) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, dumpHeader); err != nil {
		return err
	}
	for {
		tok, ok := s.Read()
		if !ok {
			break
		}
		if _, err := fmt.Fprintf(bw, "%s\t\t%s\n", tok.literal, tok.typ); err != nil {
			return err
		}
	}
	return bw.Flush()
}
