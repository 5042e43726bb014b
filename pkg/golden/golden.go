// Package golden stores token dumps of source files and compares fresh scans
// against them.
package golden

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/xplshn/clex/pkg/scanner"
	"github.com/xplshn/clex/pkg/token"
)

// ErrStale means the source changed since its golden file was written.
var ErrStale = errors.New("golden file is stale")

type Entry struct {
	Pos     token.Position `json:"pos"`
	Message string         `json:"message"`
}

type Record struct {
	File        string        `json:"file"`
	Hash        string        `json:"hash"`
	Tokens      []token.Token `json:"tokens"`
	Diagnostics []Entry       `json:"diagnostics,omitempty"`
}

// MismatchError carries the difference between a golden file and a new scan.
type MismatchError struct {
	File string
	Diff string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: tokens differ from golden file (-want +got):\n%s", e.File, e.Diff)
}

// Hash returns the hex xxhash of src.
func Hash(src []byte) string { return fmt.Sprintf("%016x", xxhash.Sum64(src)) }

// Path returns where the golden file for source lives: .<base>.json next to
// the source, or inside dir when dir is set.
func Path(source, dir string) string {
	name := "." + filepath.Base(source) + ".json"
	if dir != "" {
		return filepath.Join(dir, name)
	}
	return filepath.Join(filepath.Dir(source), name)
}

// FromSource scans src and records its tokens and errors. Positions carry no
// filename so records do not depend on where the file lives.
func FromSource(name string, src []byte) *Record {
	rec := &Record{File: filepath.ToSlash(name), Hash: Hash(src)}
	rec.Tokens = scanner.Tokenize(src, "", func(pos token.Position, msg string) {
		rec.Diagnostics = append(rec.Diagnostics, Entry{Pos: pos, Message: msg})
	})
	return rec
}

func Generate(path string) (*Record, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read '%s': %w", path, err)
	}
	return FromSource(path, src), nil
}

func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode golden file %s: %w", path, err)
	}
	return &rec, nil
}

func Save(path string, rec *Record) error {
	data, err := json.Marshal(rec, jsontext.WithIndent("  "))
	if err != nil {
		return fmt.Errorf("failed to encode golden data: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Diff returns a cmp diff of the tokens and diagnostics of want and got, or
// "" when they match.
func Diff(want, got *Record) string {
	return cmp.Diff(want, got, cmpopts.EquateEmpty(), cmpopts.IgnoreFields(Record{}, "File", "Hash"))
}

// Check scans source and compares it with its golden file in dir.
func Check(source, dir string) (*Record, error) {
	got, err := Generate(source)
	if err != nil {
		return nil, err
	}
	want, err := Load(Path(source, dir))
	if err != nil {
		return got, err
	}
	if want.Hash != got.Hash {
		return got, fmt.Errorf("%s: %w (have %s, golden %s)", source, ErrStale, got.Hash, want.Hash)
	}
	if d := Diff(want, got); d != "" {
		return got, &MismatchError{File: source, Diff: d}
	}
	return got, nil
}
