package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mgomes/simplelex/lexer"
)

const sourceExt = ".sl"

func fmtCommand(args []string) error {
	fs := newCommandFlags("fmt")
	write := fs.Bool("w", false, "write result to source files instead of stdout")
	check := fs.Bool("check", false, "fail if any source file needs formatting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	targets := fs.Args()
	if len(targets) == 0 {
		return errors.New("simplelex fmt: path required")
	}
	log, err := fs.logger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	files, err := collectSourceFiles(targets)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	changedCount := 0
	for _, path := range files {
		originalBytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		original := string(originalBytes)
		formatted, err := formatSource(original, lexer.Config{Strict: true, Logger: log})
		if err != nil {
			return fmt.Errorf("format %s: %w", path, err)
		}
		changed := formatted != original
		if changed {
			changedCount++
		}

		switch {
		case *write && changed:
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		case !*write && !*check:
			fmt.Print(formatted)
		}
	}

	if *check && changedCount > 0 {
		return fmt.Errorf("simplelex fmt: %d file(s) need formatting", changedCount)
	}

	return nil
}

// formatSource re-spaces source from its tokens: one space between tokens,
// none before ';' or ')' or after '(', and a line break after every ';'.
func formatSource(source string, cfg lexer.Config) (string, error) {
	stream, err := lexer.Tokenize(source, cfg)
	if err != nil {
		return "", err
	}
	if stream.Len() == 0 {
		return "", nil
	}

	var b strings.Builder
	lineStart := true
	var prev lexer.Token
	for {
		tok, ok := stream.Read()
		if !ok {
			break
		}
		if !lineStart && needsSpace(prev, tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Literal())
		lineStart = false
		if tok.Type() == lexer.SemiColon {
			b.WriteByte('\n')
			lineStart = true
		}
		prev = tok
	}
	if !lineStart {
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func needsSpace(prev, next lexer.Token) bool {
	switch next.Type() {
	case lexer.SemiColon, lexer.RightParen:
		return false
	}
	return prev.Type() != lexer.LeftParen
}

func collectSourceFiles(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	files := make([]string, 0)
	addFile := func(path string) {
		if filepath.Ext(path) != sourceExt {
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		files = append(files, abs)
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			addFile(target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() {
				return nil
			}
			addFile(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
