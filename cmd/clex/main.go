package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/xplshn/clex/pkg/cli"
	"github.com/xplshn/clex/pkg/config"
	"github.com/xplshn/clex/pkg/diag"
	"github.com/xplshn/clex/pkg/lint"
	"github.com/xplshn/clex/pkg/scanner"
	"github.com/xplshn/clex/pkg/token"
)

func main() {
	app, _ := newApp(os.Stdout, diag.NewStderrReporter())
	if err := app.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// newApp wires the flags, config and reporter together. The returned config
// is the one the action will use.
func newApp(stdout io.Writer, rep *diag.Reporter) (*cli.App, *config.Config) {
	stderr := rep.Writer()
	app := cli.NewApp("clex")
	app.Synopsis = "[options] <file.c> ..."
	app.Description = "A lexical scanner for C. Prints every token of each input file with its position; '-' reads standard input."
	app.Authors = []string{"xplshn"}
	app.Repository = "<https://github.com/xplshn/clex>"
	app.Since = 2025
	app.Stdout, app.Stderr = stdout, stderr

	cfg := config.NewConfig()
	cfg.SetFeature(config.FeatColor, rep.Color())

	fs := app.FlagSet
	fs.String(&cfg.Output, "output", "o", "-", "Place the token dump into <file>.", "file")
	fs.String(&cfg.Format, "format", "f", "text", "Dump format (text, json).", "format")
	fs.Int(&cfg.MaxErrors, "max-errors", "", 0, "Stop scanning a file after <n> errors (0 = no limit).", "n")
	fs.AddFlagGroup(cli.FlagGroup{Name: "Warnings", Prefix: "W", Entries: warningEntries(cfg), Apply: cfg.ApplyFlag})
	fs.AddFlagGroup(cli.FlagGroup{Name: "Features", Prefix: "F", Entries: featureEntries(cfg), Apply: cfg.ApplyFlag})

	app.Action = func(inputFiles []string) error {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(stderr, "clex: error: %v\n", err)
			return err
		}
		if len(inputFiles) == 0 {
			err := errors.New("no input files specified")
			fmt.Fprintf(stderr, "clex: error: %v\n", err)
			return err
		}

		rep.SetColor(cfg.IsFeatureEnabled(config.FeatColor))
		rep.SetCaret(cfg.IsFeatureEnabled(config.FeatCaret))
		rep.MaxErrors = cfg.MaxErrors

		out := stdout
		var file *os.File
		if cfg.Output != "-" {
			f, err := os.Create(cfg.Output)
			if err != nil {
				fmt.Fprintf(stderr, "clex: error: %v\n", err)
				return err
			}
			file, out = f, f
		}
		w := bufio.NewWriter(out)
		err := run(cfg, rep, w, inputFiles)
		werr := w.Flush()
		if file != nil {
			if cerr := file.Close(); werr == nil {
				werr = cerr
			}
		}
		if werr != nil && err == nil {
			err = fmt.Errorf("failed to write token dump: %w", werr)
			fmt.Fprintf(stderr, "clex: error: %v\n", err)
		}
		if s := rep.Summary(); s != "" {
			fmt.Fprintf(stderr, "%s generated.\n", s)
		}
		if err != nil {
			return err
		}
		if rep.ErrorCount() > 0 {
			return fmt.Errorf("%d lexical errors", rep.ErrorCount())
		}
		return nil
	}
	return app, cfg
}

func warningEntries(cfg *config.Config) []cli.GroupEntry {
	entries := make([]cli.GroupEntry, 0, config.WarnCount)
	for i := config.Warning(0); i < config.WarnCount; i++ {
		info := cfg.Warnings[i]
		entries = append(entries, cli.GroupEntry{Name: info.Name, Usage: info.Description, Enabled: info.Enabled})
	}
	return entries
}

func featureEntries(cfg *config.Config) []cli.GroupEntry {
	entries := make([]cli.GroupEntry, 0, config.FeatCount)
	for i := config.Feature(0); i < config.FeatCount; i++ {
		info := cfg.Features[i]
		entries = append(entries, cli.GroupEntry{Name: info.Name, Usage: info.Description, Enabled: info.Enabled})
	}
	return entries
}

type fileDump struct {
	File   string        `json:"file"`
	Tokens []token.Token `json:"tokens"`
}

func run(cfg *config.Config, rep *diag.Reporter, w io.Writer, paths []string) error {
	var dumps []fileDump
	for _, path := range paths {
		name, src, err := readSource(path)
		if err != nil {
			fmt.Fprintf(rep.Writer(), "clex: error: %v\n", err)
			return err
		}
		rep.AddSource(name, src)

		toks, err := scanFile(cfg, rep, name, src)
		if cfg.Format == "json" {
			dumps = append(dumps, fileDump{File: name, Tokens: toks})
		} else {
			writeText(cfg, w, toks)
		}
		if err != nil {
			break
		}
	}
	if cfg.Format == "json" {
		data, err := json.Marshal(dumps, jsontext.WithIndent("  "))
		if err != nil {
			return fmt.Errorf("failed to encode tokens: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			err = fmt.Errorf("failed to write tokens: %w", err)
			fmt.Fprintf(rep.Writer(), "clex: error: %v\n", err)
			return err
		}
	}
	if rep.Exhausted() {
		return diag.ErrTooManyErrors
	}
	return nil
}

func readSource(path string) (string, []byte, error) {
	if path == "-" {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", nil, fmt.Errorf("could not read standard input: %w", err)
		}
		return "<stdin>", src, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("could not read file '%s': %w", path, err)
	}
	return path, src, nil
}

// scanFile pulls tokens until EOF, or until the reporter's error limit is
// reached. Scanner errors are held until their token is known so the caret
// can span the whole Illegal lexeme.
func scanFile(cfg *config.Config, rep *diag.Reporter, name string, src []byte) ([]token.Token, error) {
	var pending []diag.Diagnostic
	s := scanner.New(src, name, func(pos token.Position, msg string) {
		pending = append(pending, diag.Diagnostic{Severity: diag.Error, Pos: pos, Span: 1, Message: msg})
	})
	var toks []token.Token
	for {
		kind, pos, lit := s.Scan()
		for _, d := range pending {
			if kind == token.Illegal && d.Pos == pos {
				d.Span = len(lit)
			}
			rep.ErrorSpan(d.Pos, d.Span, d.Message)
		}
		pending = pending[:0]
		tok := token.Token{Kind: kind, Pos: pos, Lit: lit}
		toks = append(toks, tok)
		if kind == token.EOF {
			return toks, nil
		}
		lint.Check(cfg, rep, tok)
		if rep.Exhausted() {
			if cfg.IsWarningEnabled(config.WarnErrorLimit) {
				rep.Notef(pos, "too many errors, stopped scanning %s", name)
			}
			return toks, fmt.Errorf("%s: %w", name, diag.ErrTooManyErrors)
		}
	}
}

func writeText(cfg *config.Config, w io.Writer, toks []token.Token) {
	for _, tok := range toks {
		if cfg.IsFeatureEnabled(config.FeatPositions) {
			fmt.Fprintf(w, "%-16s ", tok.Pos)
		}
		fmt.Fprintf(w, "%-10s %q\n", tok.Kind, tok.Lit)
	}
}
