package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/mgomes/simplelex/lexer"
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

type jsonToken struct {
	Text   string `json:"text"`
	Type   string `json:"type"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func dumpCommand(args []string) error {
	fs := newCommandFlags("dump")
	lf := registerLexFlags(fs)
	format := fs.String("format", "table", "output format: table, spew or json")
	only := fs.String("only", "", "comma separated token types to print")
	color := fs.Bool("color", false, "style the table by token category")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("simplelex dump: source path required")
	}

	filter, err := parseTypeFilter(*only)
	if err != nil {
		return err
	}
	log, err := fs.logger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cfg, err := lf.config(log)
	if err != nil {
		return err
	}
	input, err := readSource(remaining[0])
	if err != nil {
		return err
	}
	stream, err := lexer.Tokenize(input, cfg)
	if err != nil {
		return fmt.Errorf("tokenize failed: %w", err)
	}

	switch *format {
	case "table":
		if filter == nil && !*color {
			return lexer.Dump(os.Stdout, stream)
		}
		return writeTable(os.Stdout, filterTokens(stream, filter), *color)
	case "spew":
		spewConfig.Fdump(os.Stdout, filterTokens(stream, filter))
		return nil
	case "json":
		return writeJSON(os.Stdout, filterTokens(stream, filter))
	default:
		return fmt.Errorf("simplelex dump: unknown format %q", *format)
	}
}

func parseTypeFilter(spec string) (map[lexer.TokenType]bool, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}
	filter := make(map[lexer.TokenType]bool)
	for _, name := range strings.Split(spec, ",") {
		name = strings.TrimSpace(name)
		tt, ok := lexer.LookupTokenType(name)
		if !ok {
			return nil, fmt.Errorf("simplelex dump: unknown token type %q", name)
		}
		filter[tt] = true
	}
	return filter, nil
}

// filterTokens reads the stream to exhaustion, keeping tokens whose type is in
// filter. A nil filter keeps everything.
func filterTokens(stream *lexer.TokenStream, filter map[lexer.TokenType]bool) []lexer.Token {
	out := make([]lexer.Token, 0, stream.Remaining())
	for {
		tok, ok := stream.Read()
		if !ok {
			return out
		}
		if filter == nil || filter[tok.Type()] {
			out = append(out, tok)
		}
	}
}

func writeTable(w io.Writer, tokens []lexer.Token, color bool) error {
	if _, err := fmt.Fprintln(w, "text\t\ttype"); err != nil {
		return err
	}
	for _, tok := range tokens {
		text := tok.Literal()
		if color {
			text = categoryStyle(tok.Type().Category()).Render(text)
		}
		if _, err := fmt.Fprintf(w, "%s\t\t%s\n", text, tok.Type()); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, tokens []lexer.Token) error {
	out := make([]jsonToken, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, jsonToken{
			Text:   tok.Literal(),
			Type:   tok.Type().String(),
			Line:   tok.Pos().Line,
			Column: tok.Pos().Column,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
