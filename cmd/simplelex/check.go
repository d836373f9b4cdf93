package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/mgomes/simplelex/lexer"
)

type checkIssue struct {
	Path    string
	Pos     lexer.Position
	Message string
}

func checkCommand(args []string) error {
	fs := newCommandFlags("check")
	eof := fs.String("eof", "flush", "end of input policy: flush, drop or fail")
	if err := fs.Parse(args); err != nil {
		return err
	}

	targets := fs.Args()
	if len(targets) == 0 {
		return errors.New("simplelex check: path required")
	}
	policy, err := lexer.ParseEOFPolicy(*eof)
	if err != nil {
		return err
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

	var issues []checkIssue
	for _, path := range files {
		input, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		found, err := checkSource(path, string(input), lexer.Config{EOF: policy, Logger: log})
		if err != nil {
			return err
		}
		issues = append(issues, found...)
	}

	if len(issues) == 0 {
		fmt.Println("No issues found")
		return nil
	}
	for _, issue := range issues {
		fmt.Printf("%s:%d:%d: %s\n", issue.Path, issue.Pos.Line, issue.Pos.Column, issue.Message)
	}
	return fmt.Errorf("check found %d issue(s)", len(issues))
}

func checkSource(path, source string, cfg lexer.Config) ([]checkIssue, error) {
	diags, err := lexer.Diagnose(source, cfg)
	if err != nil {
		return nil, err
	}
	issues := make([]checkIssue, 0, len(diags))
	for _, diag := range diags {
		issues = append(issues, checkIssue{Path: path, Pos: diag.Pos, Message: diag.Message()})
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Pos.Offset < issues[j].Pos.Offset
	})
	return issues, nil
}
