package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/xplshn/clex/pkg/golden"
)

var (
	testFiles  = flag.String("test-files", "tests/*.c", "Glob pattern(s) for files to test (space-separated).")
	skipFiles  = flag.String("skip-files", "", "Files to skip (space-separated).")
	generate   = flag.String("generate-golden", "", "Write golden files for the given source files (space-separated globs).")
	jsonDir    = flag.String("dir", "", "Directory to store/read golden JSON files (defaults to source file dir).")
	outputJSON = flag.String("output", "", "Write a JSON test report to this file.")
	jobs       = flag.Int("j", 4, "Number of parallel test jobs.")
	verbose    = flag.Bool("v", false, "Print diffs for failing files.")
)

const (
	cRed    = "\x1b[91m"
	cYellow = "\x1b[93m"
	cGreen  = "\x1b[92m"
	cCyan   = "\x1b[96m"
	cBold   = "\x1b[1m"
	cNone   = "\x1b[0m"
)

const (
	StatusPass  = "PASS"
	StatusFail  = "FAIL"
	StatusStale = "STALE"
	StatusError = "ERROR"
)

type FileResult struct {
	File    string `json:"file"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Diff    string `json:"diff,omitempty"`
	Tokens  int    `json:"tokens"`
}

func main() {
	flag.Parse()
	log.SetFlags(0)

	if *generate != "" {
		files, err := expandGlobPatterns(*generate)
		if err != nil {
			log.Fatalf("%s[ERROR]%s Invalid glob pattern(s): %v\n", cRed, cNone, err)
		}
		for _, f := range files {
			path, err := generateGolden(f, *jsonDir)
			if err != nil {
				log.Fatalf("%s[ERROR]%s %v\n", cRed, cNone, err)
			}
			log.Printf("%s[SUCCESS]%s Golden file created at %s\n", cGreen, cNone, path)
		}
		return
	}

	files, err := expandGlobPatterns(*testFiles)
	if err != nil {
		log.Fatalf("%s[ERROR]%s Invalid glob pattern(s): %v\n", cRed, cNone, err)
	}
	files = filterSkipped(files, strings.Fields(*skipFiles))
	if len(files) == 0 {
		log.Println("No test files found matching the pattern(s).")
		return
	}

	results := runSuite(files, *jsonDir, *jobs)
	printResults(results, *verbose)

	if *outputJSON != "" {
		if err := writeReport(*outputJSON, results); err != nil {
			log.Fatalf("%s[ERROR]%s %v\n", cRed, cNone, err)
		}
	}
	for _, r := range results {
		if r.Status != StatusPass {
			os.Exit(1)
		}
	}
}

func generateGolden(source, dir string) (string, error) {
	rec, err := golden.Generate(source)
	if err != nil {
		return "", err
	}
	path := golden.Path(source, dir)
	if err := golden.Save(path, rec); err != nil {
		return "", fmt.Errorf("could not write golden file for %s: %w", source, err)
	}
	return path, nil
}

func expandGlobPatterns(patterns string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range strings.Fields(patterns) {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func filterSkipped(files, skip []string) []string {
	if len(skip) == 0 {
		return files
	}
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[filepath.Clean(s)] = true
	}
	kept := files[:0:0]
	for _, f := range files {
		if !skipped[filepath.Clean(f)] && !skipped[filepath.Base(f)] {
			kept = append(kept, f)
		}
	}
	return kept
}

// runSuite checks every file against its golden file using a pool of
// workers. Results come back in the order of files.
func runSuite(files []string, dir string, workers int) []*FileResult {
	if workers < 1 {
		workers = 1
	}
	results := make([]*FileResult, len(files))
	jobsCh := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobsCh {
				results[i] = checkFile(files[i], dir)
			}
		}()
	}
	for i := range files {
		jobsCh <- i
	}
	close(jobsCh)
	wg.Wait()
	return results
}

func checkFile(file, dir string) *FileResult {
	res := &FileResult{File: file}
	rec, err := golden.Check(file, dir)
	if rec != nil {
		res.Tokens = len(rec.Tokens)
	}

	var mismatch *golden.MismatchError
	switch {
	case err == nil:
		res.Status = StatusPass
	case errors.As(err, &mismatch):
		res.Status = StatusFail
		res.Message = "tokens differ from golden file"
		res.Diff = mismatch.Diff
	case errors.Is(err, golden.ErrStale):
		res.Status = StatusStale
		res.Message = "source changed; regenerate with -generate-golden"
	case errors.Is(err, os.ErrNotExist) && rec != nil:
		res.Status = StatusError
		res.Message = "no golden file; create one with -generate-golden"
	default:
		res.Status = StatusError
		res.Message = err.Error()
	}
	return res
}

func printResults(results []*FileResult, verbose bool) {
	counts := make(map[string]int)
	for _, r := range results {
		counts[r.Status]++
		color := cGreen
		switch r.Status {
		case StatusFail, StatusError:
			color = cRed
		case StatusStale:
			color = cYellow
		}
		line := fmt.Sprintf("%s[%s]%s %s", color, r.Status, cNone, r.File)
		if r.Message != "" {
			line += ": " + r.Message
		}
		log.Println(line)
		if verbose && r.Diff != "" {
			log.Printf("%s%s%s", cCyan, r.Diff, cNone)
		}
	}
	log.Printf("\n%s%d passed, %d failed, %d stale, %d errors%s\n", cBold,
		counts[StatusPass], counts[StatusFail], counts[StatusStale], counts[StatusError], cNone)
}

func writeReport(path string, results []*FileResult) error {
	data, err := json.Marshal(results, jsontext.WithIndent("  "))
	if err != nil {
		return fmt.Errorf("failed to marshal test report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write test report %s: %w", path, err)
	}
	return nil
}
