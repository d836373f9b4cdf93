package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mgomes/simplelex/lexer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "dump":
		return dumpCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "lsp":
		return lspCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  dump <file|->     print the tokens of a source file")
	fmt.Fprintln(os.Stderr, "  check <paths...>  report characters outside the vocabulary")
	fmt.Fprintln(os.Stderr, "  fmt <paths...>    rewrite sources with canonical token spacing")
	fmt.Fprintln(os.Stderr, "  lsp               serve diagnostics over stdio")
	fmt.Fprintln(os.Stderr, "  repl              tokenize lines interactively")
	fmt.Fprintln(os.Stderr, "Lexing flags (dump, repl):")
	fmt.Fprintln(os.Stderr, "  -legacy")
	fmt.Fprintln(os.Stderr, "    reproduce the reference lexer quirks")
	fmt.Fprintln(os.Stderr, "  -strict")
	fmt.Fprintln(os.Stderr, "    fail on characters outside the vocabulary")
	fmt.Fprintln(os.Stderr, "  -eof flush|drop|fail")
	fmt.Fprintln(os.Stderr, "    what to do with a token unfinished at end of input")
	fmt.Fprintln(os.Stderr, "Every command accepts -log-level (default \"warn\").")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

// commandFlags is a flag set with the options every subcommand shares.
type commandFlags struct {
	*flag.FlagSet
	level zapcore.Level
}

func newCommandFlags(name string) *commandFlags {
	fs := &commandFlags{
		FlagSet: flag.NewFlagSet(name, flag.ContinueOnError),
		level:   zapcore.WarnLevel,
	}
	fs.SetOutput(new(flagErrorSink))
	fs.Var(&fs.level, "log-level", "minimum log level (debug, info, warn, error)")
	return fs
}

func (fs *commandFlags) logger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(fs.level)
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log.Named(fs.Name()), nil
}

// lexFlags are the tokenizer options exposed on the command line.
type lexFlags struct {
	legacy bool
	strict bool
	eof    string
}

func registerLexFlags(fs *commandFlags) *lexFlags {
	lf := &lexFlags{}
	fs.BoolVar(&lf.legacy, "legacy", false, "reproduce the reference lexer quirks")
	fs.BoolVar(&lf.strict, "strict", false, "fail on characters outside the vocabulary")
	fs.StringVar(&lf.eof, "eof", "", "end of input policy: flush, drop or fail")
	return lf
}

func (lf *lexFlags) config(log *zap.Logger) (lexer.Config, error) {
	cfg := lexer.Config{}
	if lf.legacy {
		cfg = lexer.LegacyConfig()
	}
	cfg.Strict = lf.strict
	if lf.eof != "" {
		policy, err := lexer.ParseEOFPolicy(lf.eof)
		if err != nil {
			return lexer.Config{}, err
		}
		cfg.EOF = policy
	}
	cfg.Logger = log
	return cfg, nil
}

func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve source path: %w", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}
